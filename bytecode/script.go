// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bytecode reads the parts of compiled binaries needed outside the
// engine: script parameter signatures and module bundles.
package bytecode

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/mvm/bcs"
)

var (
	ErrInvalidSignature             = errors.New("invalid signature")
	ErrInvalidMainFunctionSignature = errors.New("invalid main function signature")
)

// Magic prefixes every compiled binary.
var Magic = []byte{0xA1, 0x1C, 0xEB, 0x0B}

const (
	minVersion = 1
	maxVersion = 7

	// tableSignatures is the kind of the table holding signatures.
	tableSignatures = 0x5
)

type tableHeader struct {
	kind   byte
	offset uint64
	length uint64
}

// VerifyScript checks that the script's parameters put all signers first
// and that the rest are transaction argument types. It returns the number
// of leading signer parameters.
//
// A parameter is a signer if it is signer or &signer. After the signers,
// only bool, integers, address and vectors of those are allowed.
func VerifyScript(code []byte) (int, error) {
	params, err := scriptParams(code)
	if err != nil {
		return 0, errors.Wrap(ErrInvalidSignature, err.Error())
	}

	signers := 0
	for _, p := range params {
		if !isSignerParam(p) {
			break
		}
		signers++
	}
	for i, p := range params[signers:] {
		if !isTxnArg(p) {
			return 0, errors.Wrapf(ErrInvalidMainFunctionSignature, "parameter %d: %v not allowed", signers+i, p)
		}
	}
	return signers, nil
}

// isSignerParam matches signer and &signer. &mut signer is not a signer.
func isSignerParam(t SignatureToken) bool {
	return t.IsSigner() || (t.Kind == TokenReference && t.Inner.IsSigner())
}

func isTxnArg(t SignatureToken) bool {
	switch t.Kind {
	case TokenBool, TokenU8, TokenU16, TokenU32, TokenU64, TokenU128, TokenU256, TokenAddress:
		return true
	case TokenVector:
		return isTxnArg(*t.Inner)
	}
	return false
}

// scriptParams reads the first signature of the binary's signature table.
func scriptParams(code []byte) ([]SignatureToken, error) {
	if !bytes.HasPrefix(code, Magic) {
		return nil, errors.New("bad magic")
	}
	dec := bcs.NewDecoder(code[len(Magic):])
	raw, err := dec.FixedBytes(4)
	if err != nil {
		return nil, errors.Wrap(err, "version")
	}
	if v := binary.LittleEndian.Uint32(raw); v < minVersion || v > maxVersion {
		return nil, errors.Errorf("unsupported version %d", v)
	}

	count, err := dec.Length()
	if err != nil {
		return nil, errors.Wrap(err, "table count")
	}
	var sigs *tableHeader
	for range count {
		var h tableHeader
		if h.kind, err = dec.U8(); err != nil {
			return nil, errors.Wrap(err, "table kind")
		}
		if h.offset, err = dec.Uleb128(); err != nil {
			return nil, errors.Wrap(err, "table offset")
		}
		if h.length, err = dec.Uleb128(); err != nil {
			return nil, errors.Wrap(err, "table length")
		}
		if h.kind == tableSignatures && sigs == nil {
			sigs = &h
		}
	}
	if sigs == nil {
		return nil, errors.New("no signature table")
	}

	// table offsets are relative to the end of the table headers.
	content := code[len(code)-dec.Remaining():]
	if sigs.offset > uint64(len(content)) || sigs.length > uint64(len(content))-sigs.offset {
		return nil, errors.New("signature table out of bounds")
	}
	if sigs.length == 0 {
		return nil, errors.New("empty signature table")
	}

	table := bcs.NewDecoder(content[sigs.offset : sigs.offset+sigs.length])
	n, err := table.Length()
	if err != nil {
		return nil, errors.Wrap(err, "signature length")
	}
	params := make([]SignatureToken, 0, min(n, table.Remaining()))
	for range n {
		t, err := decodeToken(table, 0)
		if err != nil {
			return nil, err
		}
		params = append(params, t)
	}
	return params, nil
}

// MinimalScript returns a binary holding only a signature table with one
// signature. The engine rejects it; it exercises VerifyScript.
func MinimalScript(version uint32, params ...SignatureToken) []byte {
	sig := bcs.NewEncoder()
	sig.Uleb128(uint64(len(params)))
	for _, p := range params {
		p.encode(sig)
	}
	table := sig.Bytes()

	enc := bcs.NewEncoder()
	enc.FixedBytes(Magic)
	enc.FixedBytes(binary.LittleEndian.AppendUint32(nil, version))
	enc.Uleb128(1)
	enc.U8(tableSignatures)
	enc.Uleb128(0)
	enc.Uleb128(uint64(len(table)))
	enc.FixedBytes(table)
	return enc.Bytes()
}
