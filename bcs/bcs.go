// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bcs implements the subset of the canonical binary encoding used by the
// Move engine for bundles, type tags and resource payloads.
//
// Integers are little-endian, sequence lengths and enum variants are ULEB128.
package bcs

import (
	"encoding/binary"
	"math"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// MaxSequenceLength bounds every decoded length prefix.
const MaxSequenceLength = math.MaxInt32

var (
	ErrUnexpectedEOF  = errors.New("bcs: unexpected end of input")
	ErrTrailingBytes  = errors.New("bcs: trailing bytes")
	ErrLengthOverflow = errors.New("bcs: length overflow")
	ErrInvalidBool    = errors.New("bcs: invalid bool")
	ErrNonCanonical   = errors.New("bcs: non-canonical uleb128")
)

// Encoder appends encoded values to an internal buffer.
type Encoder struct {
	buf []byte
}

// NewEncoder creates an encoder with an empty buffer.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded bytes.
func (e *Encoder) Bytes() []byte { return e.buf }

func (e *Encoder) Uleb128(v uint64) {
	e.buf = binary.AppendUvarint(e.buf, v)
}

func (e *Encoder) U8(v uint8) {
	e.buf = append(e.buf, v)
}

func (e *Encoder) Bool(v bool) {
	if v {
		e.U8(1)
	} else {
		e.U8(0)
	}
}

func (e *Encoder) U64(v uint64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
}

// U128 writes the low 128 bits of v.
func (e *Encoder) U128(v *uint256.Int) {
	e.U64(v[0])
	e.U64(v[1])
}

// FixedBytes writes b without a length prefix.
func (e *Encoder) FixedBytes(b []byte) {
	e.buf = append(e.buf, b...)
}

// WriteBytes writes a length-prefixed byte sequence.
func (e *Encoder) WriteBytes(b []byte) {
	e.Uleb128(uint64(len(b)))
	e.FixedBytes(b)
}

func (e *Encoder) WriteString(s string) {
	e.WriteBytes([]byte(s))
}

// Decoder reads encoded values from a byte slice.
type Decoder struct {
	data []byte
	pos  int
}

// NewDecoder creates a decoder over data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.data) - d.pos }

// Finish checks that all input was consumed.
func (d *Decoder) Finish() error {
	if d.Remaining() != 0 {
		return ErrTrailingBytes
	}
	return nil
}

func (d *Decoder) Uleb128() (uint64, error) {
	v, n := binary.Uvarint(d.data[d.pos:])
	if n == 0 {
		return 0, ErrUnexpectedEOF
	}
	if n < 0 {
		return 0, ErrLengthOverflow
	}
	// a trailing zero byte means the value could have been encoded shorter
	if n > 1 && d.data[d.pos+n-1] == 0 {
		return 0, ErrNonCanonical
	}
	d.pos += n
	return v, nil
}

// Length reads a sequence length prefix.
func (d *Decoder) Length() (int, error) {
	v, err := d.Uleb128()
	if err != nil {
		return 0, err
	}
	if v > MaxSequenceLength {
		return 0, ErrLengthOverflow
	}
	return int(v), nil
}

func (d *Decoder) U8() (uint8, error) {
	if d.Remaining() < 1 {
		return 0, ErrUnexpectedEOF
	}
	v := d.data[d.pos]
	d.pos++
	return v, nil
}

func (d *Decoder) Bool() (bool, error) {
	v, err := d.U8()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, ErrInvalidBool
}

func (d *Decoder) U64() (uint64, error) {
	if d.Remaining() < 8 {
		return 0, ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint64(d.data[d.pos:])
	d.pos += 8
	return v, nil
}

func (d *Decoder) U128() (*uint256.Int, error) {
	lo, err := d.U64()
	if err != nil {
		return nil, err
	}
	hi, err := d.U64()
	if err != nil {
		return nil, err
	}
	return &uint256.Int{lo, hi, 0, 0}, nil
}

// FixedBytes reads exactly n bytes. The result is a copy.
func (d *Decoder) FixedBytes(n int) ([]byte, error) {
	if n < 0 || d.Remaining() < n {
		return nil, ErrUnexpectedEOF
	}
	b := make([]byte, n)
	copy(b, d.data[d.pos:d.pos+n])
	d.pos += n
	return b, nil
}

// ReadBytes reads a length-prefixed byte sequence.
func (d *Decoder) ReadBytes() ([]byte, error) {
	n, err := d.Length()
	if err != nil {
		return nil, err
	}
	return d.FixedBytes(n)
}

func (d *Decoder) ReadString() (string, error) {
	b, err := d.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
