// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package move

import (
	"github.com/pkg/errors"

	"github.com/vechain/mvm/bcs"
)

// EncodeTypeTag writes t in canonical binary form.
func EncodeTypeTag(enc *bcs.Encoder, t TypeTag) {
	enc.Uleb128(uint64(t.Kind))
	switch t.Kind {
	case TypeVector:
		EncodeTypeTag(enc, *t.Elem)
	case TypeStruct:
		EncodeStructTag(enc, *t.Struct)
	}
}

// EncodeStructTag writes s in canonical binary form.
func EncodeStructTag(enc *bcs.Encoder, s StructTag) {
	enc.FixedBytes(s.Address[:])
	enc.WriteString(string(s.Module))
	enc.WriteString(string(s.Name))
	enc.Uleb128(uint64(len(s.TypeParams)))
	for _, p := range s.TypeParams {
		EncodeTypeTag(enc, p)
	}
}

// StructTagBytes returns the canonical binary form of s.
func StructTagBytes(s StructTag) []byte {
	enc := bcs.NewEncoder()
	EncodeStructTag(enc, s)
	return enc.Bytes()
}

// DecodeStructTagBytes decodes a struct tag that must span all of data.
func DecodeStructTagBytes(data []byte) (StructTag, error) {
	dec := bcs.NewDecoder(data)
	tag, err := DecodeStructTag(dec)
	if err != nil {
		return StructTag{}, err
	}
	if err := dec.Finish(); err != nil {
		return StructTag{}, errors.Wrap(ErrMalformedTag, err.Error())
	}
	return tag, nil
}

// DecodeTypeTag reads a type tag.
func DecodeTypeTag(dec *bcs.Decoder) (TypeTag, error) {
	return decodeTypeTag(dec, 0)
}

// DecodeStructTag reads a struct tag.
func DecodeStructTag(dec *bcs.Decoder) (StructTag, error) {
	return decodeStructTag(dec, 0)
}

func decodeTypeTag(dec *bcs.Decoder, depth int) (TypeTag, error) {
	if depth > maxTypeDepth {
		return TypeTag{}, errors.Wrap(ErrMalformedTag, "type nesting too deep")
	}
	v, err := dec.Uleb128()
	if err != nil {
		return TypeTag{}, errors.Wrap(ErrMalformedTag, err.Error())
	}
	kind := TypeKind(v)
	switch {
	case kind == TypeVector:
		elem, err := decodeTypeTag(dec, depth+1)
		if err != nil {
			return TypeTag{}, err
		}
		return VectorOf(elem), nil
	case kind == TypeStruct:
		s, err := decodeStructTag(dec, depth+1)
		if err != nil {
			return TypeTag{}, err
		}
		return StructType(s), nil
	case v <= uint64(TypeU256):
		return Primitive(kind), nil
	}
	return TypeTag{}, errors.Wrapf(ErrMalformedTag, "unknown type variant %d", v)
}

func decodeStructTag(dec *bcs.Decoder, depth int) (StructTag, error) {
	wrap := func(err error) error { return errors.Wrap(ErrMalformedTag, err.Error()) }

	var tag StructTag
	addr, err := dec.FixedBytes(AddressLength)
	if err != nil {
		return StructTag{}, wrap(err)
	}
	copy(tag.Address[:], addr)

	for _, id := range []*Identifier{&tag.Module, &tag.Name} {
		s, err := dec.ReadString()
		if err != nil {
			return StructTag{}, wrap(err)
		}
		if *id, err = NewIdentifier(s); err != nil {
			return StructTag{}, wrap(err)
		}
	}

	n, err := dec.Length()
	if err != nil {
		return StructTag{}, wrap(err)
	}
	for range n {
		p, err := decodeTypeTag(dec, depth+1)
		if err != nil {
			return StructTag{}, err
		}
		tag.TypeParams = append(tag.TypeParams, p)
	}
	return tag, nil
}
