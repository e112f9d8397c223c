// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bridge connects contract-side value transfers to the node's
// native balances.
package bridge

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/mvm/move"
)

var (
	ErrUnavailable         = errors.New("balance bridge unavailable")
	ErrInsufficientCheque  = errors.New("insufficient cheque")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAmountOverflow      = errors.New("amount exceeds 128 bits")
)

// Handler moves native value on behalf of executing code.
//
// A cheque is the part of an account's total balance pre-authorized for
// transfer during one execution.
type Handler interface {
	Transfer(src, dst move.Address, amount *uint256.Int) (bool, error)
	ChequeAmount(account move.Address) (*uint256.Int, error)
	TotalAmount(account move.Address) (*uint256.Int, error)
}

// Unavailable is the handler used where no value may move, e.g. genesis.
type Unavailable struct{}

var _ Handler = Unavailable{}

func (Unavailable) Transfer(_, _ move.Address, _ *uint256.Int) (bool, error) {
	return false, ErrUnavailable
}

func (Unavailable) ChequeAmount(move.Address) (*uint256.Int, error) {
	return nil, ErrUnavailable
}

func (Unavailable) TotalAmount(move.Address) (*uint256.Int, error) {
	return nil, ErrUnavailable
}

// CheckAmount rejects amounts wider than u128.
func CheckAmount(amount *uint256.Int) error {
	if amount.BitLen() > 128 {
		return ErrAmountOverflow
	}
	return nil
}
