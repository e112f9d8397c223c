// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bytecode

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/vechain/mvm/bcs"
)

// TokenKind is the serialized tag of a signature token.
type TokenKind byte

const (
	TokenBool TokenKind = iota + 0x1
	TokenU8
	TokenU64
	TokenU128
	TokenAddress
	TokenReference
	TokenMutableReference
	TokenStruct
	TokenTypeParameter
	TokenVector
	TokenStructInst
	TokenSigner
	TokenU16
	TokenU32
	TokenU256
)

// maxTokenDepth bounds nesting of signature tokens.
const maxTokenDepth = 256

var tokenNames = map[TokenKind]string{
	TokenBool:    "bool",
	TokenU8:      "u8",
	TokenU16:     "u16",
	TokenU32:     "u32",
	TokenU64:     "u64",
	TokenU128:    "u128",
	TokenU256:    "u256",
	TokenAddress: "address",
	TokenSigner:  "signer",
}

// SignatureToken is one parameter type of a signature.
type SignatureToken struct {
	Kind     TokenKind
	Inner    *SignatureToken  // reference and vector element
	Index    uint64           // struct handle or type parameter index
	TypeArgs []SignatureToken // struct instantiation arguments
}

// Token returns a token without inner data.
func Token(kind TokenKind) SignatureToken { return SignatureToken{Kind: kind} }

// Ref returns &inner.
func Ref(inner SignatureToken) SignatureToken {
	return SignatureToken{Kind: TokenReference, Inner: &inner}
}

// MutRef returns &mut inner.
func MutRef(inner SignatureToken) SignatureToken {
	return SignatureToken{Kind: TokenMutableReference, Inner: &inner}
}

// VectorOf returns vector<elem>.
func VectorOf(elem SignatureToken) SignatureToken {
	return SignatureToken{Kind: TokenVector, Inner: &elem}
}

// Struct refers to the struct handle at idx.
func Struct(idx uint64) SignatureToken {
	return SignatureToken{Kind: TokenStruct, Index: idx}
}

// StructInst instantiates the generic struct handle at idx.
func StructInst(idx uint64, args ...SignatureToken) SignatureToken {
	return SignatureToken{Kind: TokenStructInst, Index: idx, TypeArgs: args}
}

// TypeParam refers to the type parameter at idx.
func TypeParam(idx uint64) SignatureToken {
	return SignatureToken{Kind: TokenTypeParameter, Index: idx}
}

// IsSigner returns whether t is signer.
func (t SignatureToken) IsSigner() bool {
	return t.Kind == TokenSigner
}

func (t SignatureToken) String() string {
	switch t.Kind {
	case TokenReference:
		return "&" + t.Inner.String()
	case TokenMutableReference:
		return "&mut " + t.Inner.String()
	case TokenVector:
		return "vector<" + t.Inner.String() + ">"
	case TokenStruct:
		return "struct#" + strconv.FormatUint(t.Index, 10)
	case TokenTypeParameter:
		return "T" + strconv.FormatUint(t.Index, 10)
	case TokenStructInst:
		args := make([]string, 0, len(t.TypeArgs))
		for _, a := range t.TypeArgs {
			args = append(args, a.String())
		}
		return "struct#" + strconv.FormatUint(t.Index, 10) + "<" + strings.Join(args, ", ") + ">"
	}
	if name, ok := tokenNames[t.Kind]; ok {
		return name
	}
	return "token#" + strconv.Itoa(int(t.Kind))
}

func (t SignatureToken) encode(enc *bcs.Encoder) {
	enc.U8(byte(t.Kind))
	switch t.Kind {
	case TokenReference, TokenMutableReference, TokenVector:
		t.Inner.encode(enc)
	case TokenStruct, TokenTypeParameter:
		enc.Uleb128(t.Index)
	case TokenStructInst:
		enc.Uleb128(t.Index)
		enc.Uleb128(uint64(len(t.TypeArgs)))
		for _, a := range t.TypeArgs {
			a.encode(enc)
		}
	}
}

func decodeToken(dec *bcs.Decoder, depth int) (SignatureToken, error) {
	if depth > maxTokenDepth {
		return SignatureToken{}, errors.New("signature token nesting too deep")
	}
	b, err := dec.U8()
	if err != nil {
		return SignatureToken{}, err
	}
	t := SignatureToken{Kind: TokenKind(b)}
	switch t.Kind {
	case TokenBool, TokenU8, TokenU16, TokenU32, TokenU64, TokenU128, TokenU256, TokenAddress, TokenSigner:
	case TokenReference, TokenMutableReference, TokenVector:
		inner, err := decodeToken(dec, depth+1)
		if err != nil {
			return SignatureToken{}, err
		}
		t.Inner = &inner
	case TokenStruct, TokenTypeParameter:
		if t.Index, err = dec.Uleb128(); err != nil {
			return SignatureToken{}, err
		}
	case TokenStructInst:
		if t.Index, err = dec.Uleb128(); err != nil {
			return SignatureToken{}, err
		}
		arity, err := dec.Length()
		if err != nil {
			return SignatureToken{}, err
		}
		if arity == 0 {
			return SignatureToken{}, errors.New("struct instantiation without type arguments")
		}
		for range arity {
			arg, err := decodeToken(dec, depth+1)
			if err != nil {
				return SignatureToken{}, err
			}
			t.TypeArgs = append(t.TypeArgs, arg)
		}
	default:
		return SignatureToken{}, errors.Errorf("unknown signature token %#x", b)
	}
	return t, nil
}
