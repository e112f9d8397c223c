// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bytecode

import (
	"github.com/pkg/errors"

	"github.com/vechain/mvm/bcs"
	"github.com/vechain/mvm/move"
)

// ErrMalformedBundle is returned when a bundle can't be decoded.
var ErrMalformedBundle = errors.New("malformed module bundle")

// EncodeBundle serializes modules as a length-prefixed sequence.
func EncodeBundle(modules [][]byte) []byte {
	enc := bcs.NewEncoder()
	enc.Uleb128(uint64(len(modules)))
	for _, m := range modules {
		enc.WriteBytes(m)
	}
	return enc.Bytes()
}

// DecodeBundle parses a bundle. The whole input must be consumed.
func DecodeBundle(data []byte) ([][]byte, error) {
	dec := bcs.NewDecoder(data)
	n, err := dec.Length()
	if err != nil {
		return nil, errors.Wrap(ErrMalformedBundle, err.Error())
	}
	modules := make([][]byte, 0, min(n, dec.Remaining()))
	for range n {
		m, err := dec.ReadBytes()
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedBundle, "module %d: %v", len(modules), err)
		}
		modules = append(modules, m)
	}
	if err := dec.Finish(); err != nil {
		return nil, errors.Wrap(ErrMalformedBundle, err.Error())
	}
	return modules, nil
}

// ScriptTransaction is the serialized form of a script call.
// Signer arguments are carried as addresses.
type ScriptTransaction struct {
	Bytecode []byte
	Args     [][]byte
	TypeArgs []move.TypeTag
}

// Encode serializes tx.
func (tx *ScriptTransaction) Encode() []byte {
	enc := bcs.NewEncoder()
	enc.WriteBytes(tx.Bytecode)
	enc.Uleb128(uint64(len(tx.Args)))
	for _, a := range tx.Args {
		enc.WriteBytes(a)
	}
	enc.Uleb128(uint64(len(tx.TypeArgs)))
	for _, t := range tx.TypeArgs {
		move.EncodeTypeTag(enc, t)
	}
	return enc.Bytes()
}

// DecodeScriptTransaction parses a serialized script call.
func DecodeScriptTransaction(data []byte) (*ScriptTransaction, error) {
	dec := bcs.NewDecoder(data)
	var (
		tx  ScriptTransaction
		err error
	)
	if tx.Bytecode, err = dec.ReadBytes(); err != nil {
		return nil, errors.Wrap(err, "bytecode")
	}
	n, err := dec.Length()
	if err != nil {
		return nil, errors.Wrap(err, "args")
	}
	for range n {
		a, err := dec.ReadBytes()
		if err != nil {
			return nil, errors.Wrap(err, "args")
		}
		tx.Args = append(tx.Args, a)
	}
	if n, err = dec.Length(); err != nil {
		return nil, errors.Wrap(err, "type args")
	}
	for range n {
		t, err := move.DecodeTypeTag(dec)
		if err != nil {
			return nil, err
		}
		tx.TypeArgs = append(tx.TypeArgs, t)
	}
	if err := dec.Finish(); err != nil {
		return nil, err
	}
	return &tx, nil
}
