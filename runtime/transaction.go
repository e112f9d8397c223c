// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/vechain/mvm/bytecode"
	"github.com/vechain/mvm/move"
)

// Call is what a transaction runs: a ScriptCall or a FunctionCall.
type Call interface {
	isCall()
}

// ScriptCall runs script bytecode once.
type ScriptCall struct {
	Code []byte
}

// FunctionCall runs an entry function of a published module.
type FunctionCall struct {
	Module   move.ModuleID
	Function move.Identifier
}

func (ScriptCall) isCall()   {}
func (FunctionCall) isCall() {}

// Transaction is a call with its arguments.
type Transaction struct {
	Call     Call
	TypeArgs []move.TypeTag
	Args     [][]byte
}

// ResolveTransaction decodes a serialized script transaction.
func ResolveTransaction(data []byte) (*Transaction, error) {
	stx, err := bytecode.DecodeScriptTransaction(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode script transaction")
	}
	return &Transaction{
		Call:     ScriptCall{stx.Bytecode},
		TypeArgs: stx.TypeArgs,
		Args:     stx.Args,
	}, nil
}
