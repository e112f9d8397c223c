// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package move

import (
	"strings"

	"github.com/pkg/errors"
)

// maxTypeDepth bounds nesting of parsed and decoded type tags.
const maxTypeDepth = 64

// ParseTypeTag parses the text form of a type, e.g. vector<0x1::coin::Coin<u8>>.
func ParseTypeTag(s string) (TypeTag, error) {
	p := &tagParser{s: s}
	t, err := p.typeTag(0)
	if err != nil {
		return TypeTag{}, err
	}
	if p.skipSpace(); p.pos != len(p.s) {
		return TypeTag{}, p.fail("unexpected trailing input")
	}
	return t, nil
}

// ParseStructTag parses the text form of a struct type.
func ParseStructTag(s string) (StructTag, error) {
	t, err := ParseTypeTag(s)
	if err != nil {
		return StructTag{}, err
	}
	if t.Kind != TypeStruct {
		return StructTag{}, errors.Wrapf(ErrMalformedTag, "%q is not a struct type", s)
	}
	return *t.Struct, nil
}

type tagParser struct {
	s   string
	pos int
}

func (p *tagParser) fail(msg string) error {
	return errors.Wrapf(ErrMalformedTag, "%s at offset %d in %q", msg, p.pos, p.s)
}

func (p *tagParser) skipSpace() {
	for p.pos < len(p.s) && p.s[p.pos] == ' ' {
		p.pos++
	}
}

func (p *tagParser) consume(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.s[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

// word reads a run of identifier characters, which also covers 0x literals.
func (p *tagParser) word() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		break
	}
	return p.s[start:p.pos]
}

func (p *tagParser) typeTag(depth int) (TypeTag, error) {
	if depth > maxTypeDepth {
		return TypeTag{}, p.fail("type nesting too deep")
	}
	w := p.word()
	for kind, name := range primitiveNames {
		if w == name {
			return Primitive(kind), nil
		}
	}
	if w == "vector" {
		if !p.consume("<") {
			return TypeTag{}, p.fail("expected '<'")
		}
		elem, err := p.typeTag(depth + 1)
		if err != nil {
			return TypeTag{}, err
		}
		if !p.consume(">") {
			return TypeTag{}, p.fail("expected '>'")
		}
		return VectorOf(elem), nil
	}
	if strings.HasPrefix(w, "0x") || strings.HasPrefix(w, "0X") {
		tag, err := p.structTag(w, depth)
		if err != nil {
			return TypeTag{}, err
		}
		return StructType(tag), nil
	}
	return TypeTag{}, p.fail("unknown type")
}

func (p *tagParser) structTag(addrLit string, depth int) (StructTag, error) {
	addr, err := ParseAddress(addrLit)
	if err != nil {
		return StructTag{}, p.fail(err.Error())
	}
	tag := StructTag{Address: addr}
	if !p.consume("::") {
		return StructTag{}, p.fail("expected '::'")
	}
	if tag.Module, err = NewIdentifier(p.word()); err != nil {
		return StructTag{}, p.fail(err.Error())
	}
	if !p.consume("::") {
		return StructTag{}, p.fail("expected '::'")
	}
	if tag.Name, err = NewIdentifier(p.word()); err != nil {
		return StructTag{}, p.fail(err.Error())
	}
	if !p.consume("<") {
		return tag, nil
	}
	for {
		param, err := p.typeTag(depth + 1)
		if err != nil {
			return StructTag{}, err
		}
		tag.TypeParams = append(tag.TypeParams, param)
		if p.consume(",") {
			continue
		}
		if p.consume(">") {
			return tag, nil
		}
		return StructTag{}, p.fail("expected ',' or '>'")
	}
}
