// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/vechain/mvm/bytecode"
	"github.com/vechain/mvm/gas"
	"github.com/vechain/mvm/move"
	"github.com/vechain/mvm/vm"
)

// Output is the outcome of one runtime call.
type Output struct {
	Status  move.StatusCode
	Message string
	GasUsed uint64
	Events  []vm.Event
}

// Succeeded returns whether the call executed.
func (o *Output) Succeeded() bool {
	return o.Status == move.StatusExecuted
}

// Err returns nil on success, or the failure as a *vm.Error.
func (o *Output) Err() error {
	if o.Succeeded() {
		return nil
	}
	return &vm.Error{Status: o.Status, Message: o.Message}
}

// statusOf classifies a failure that happened before changes were applied.
func statusOf(err error) move.StatusCode {
	if status, _, ok := vm.StatusOf(err); ok {
		return status
	}
	switch {
	case errors.Is(err, gas.ErrOutOfGas):
		return move.StatusOutOfGas
	case errors.Is(err, bytecode.ErrInvalidSignature):
		return move.StatusInvalidSignature
	case errors.Is(err, bytecode.ErrInvalidMainFunctionSignature):
		return move.StatusInvalidMainFunctionSignature
	case errors.Is(err, bytecode.ErrMalformedBundle):
		return move.StatusMalformedBundle
	case errors.Is(err, move.ErrMalformedTag):
		return move.StatusDataFormatError
	}
	return move.StatusUnknownRuntime
}

func failed(status move.StatusCode, err error, gasUsed uint64) *Output {
	msg := err.Error()
	if _, m, ok := vm.StatusOf(err); ok {
		msg = m
	}
	return &Output{Status: status, Message: msg, GasUsed: gasUsed}
}
