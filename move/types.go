// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package move

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedTag is returned when a type tag can't be parsed or decoded.
var ErrMalformedTag = errors.New("malformed type tag")

// Identifier names a module, struct or function.
type Identifier string

// IsValid reports whether id is a valid identifier: a letter or underscore
// followed by letters, digits or underscores. A lone underscore is not valid.
func (id Identifier) IsValid() bool {
	if len(id) == 0 || id == "_" {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// NewIdentifier validates s.
func NewIdentifier(s string) (Identifier, error) {
	id := Identifier(s)
	if !id.IsValid() {
		return "", errors.Errorf("invalid identifier %q", s)
	}
	return id, nil
}

// ModuleID is the address and name of a published module.
type ModuleID struct {
	Address Address
	Name    Identifier
}

func (m ModuleID) String() string {
	return m.Address.ShortString() + "::" + string(m.Name)
}

// TypeKind enumerates type tag variants. The values are the canonical
// variant indices.
type TypeKind uint8

const (
	TypeBool TypeKind = iota
	TypeU8
	TypeU64
	TypeU128
	TypeAddress
	TypeSigner
	TypeVector
	TypeStruct
	TypeU16
	TypeU32
	TypeU256
)

var primitiveNames = map[TypeKind]string{
	TypeBool:    "bool",
	TypeU8:      "u8",
	TypeU16:     "u16",
	TypeU32:     "u32",
	TypeU64:     "u64",
	TypeU128:    "u128",
	TypeU256:    "u256",
	TypeAddress: "address",
	TypeSigner:  "signer",
}

// TypeTag is a fully instantiated type.
type TypeTag struct {
	Kind   TypeKind
	Elem   *TypeTag   // TypeVector only
	Struct *StructTag // TypeStruct only
}

// Primitive returns the tag of a non-generic builtin type.
func Primitive(kind TypeKind) TypeTag {
	return TypeTag{Kind: kind}
}

// VectorOf returns vector<elem>.
func VectorOf(elem TypeTag) TypeTag {
	return TypeTag{Kind: TypeVector, Elem: &elem}
}

// StructType wraps a struct tag.
func StructType(tag StructTag) TypeTag {
	return TypeTag{Kind: TypeStruct, Struct: &tag}
}

func (t TypeTag) String() string {
	switch t.Kind {
	case TypeVector:
		return "vector<" + t.Elem.String() + ">"
	case TypeStruct:
		return t.Struct.String()
	}
	return primitiveNames[t.Kind]
}

// StructTag identifies a resource type.
type StructTag struct {
	Address    Address
	Module     Identifier
	Name       Identifier
	TypeParams []TypeTag
}

// ModuleID returns the id of the declaring module.
func (s StructTag) ModuleID() ModuleID {
	return ModuleID{s.Address, s.Module}
}

// String returns the canonical text form, e.g. 0x1::coin::Coin<u64>.
// It is also the key of the resource inside an account record.
func (s StructTag) String() string {
	var b strings.Builder
	b.WriteString(s.Address.ShortString())
	b.WriteString("::")
	b.WriteString(string(s.Module))
	b.WriteString("::")
	b.WriteString(string(s.Name))
	if len(s.TypeParams) > 0 {
		b.WriteByte('<')
		for i, p := range s.TypeParams {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteByte('>')
	}
	return b.String()
}

// Equal reports whether two tags denote the same type.
func (s StructTag) Equal(other StructTag) bool {
	return s.String() == other.String()
}
