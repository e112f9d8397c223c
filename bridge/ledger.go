// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bridge

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/mvm/kv"
	"github.com/vechain/mvm/log"
	"github.com/vechain/mvm/move"
)

var logger = log.WithContext("pkg", "bridge")

// Balance is the ledger entry of one account.
// RLP encoded objects are stored in the ledger store.
type Balance struct {
	Total  *uint256.Int
	Cheque *uint256.Int
}

// IsEmpty returns whether both amounts are zero.
func (b *Balance) IsEmpty() bool {
	return b.Total.IsZero() && b.Cheque.IsZero()
}

func emptyBalance() *Balance {
	return &Balance{Total: new(uint256.Int), Cheque: new(uint256.Int)}
}

// Ledger is a Handler keeping balances in a kv store, keyed by address.
type Ledger struct {
	store kv.GetPutter
}

var _ Handler = (*Ledger)(nil)

// NewLedger creates a ledger over store.
func NewLedger(store kv.GetPutter) *Ledger {
	return &Ledger{store}
}

// Balance loads the entry of addr. Missing entries are zero.
func (l *Ledger) Balance(addr move.Address) (*Balance, error) {
	data, err := l.store.Get(addr[:])
	if err != nil {
		if l.store.IsNotFound(err) {
			return emptyBalance(), nil
		}
		return nil, errors.Wrap(err, "get balance")
	}
	var b Balance
	if err := rlp.DecodeBytes(data, &b); err != nil {
		return nil, errors.Wrap(err, "decode balance")
	}
	if b.Total == nil {
		b.Total = new(uint256.Int)
	}
	if b.Cheque == nil {
		b.Cheque = new(uint256.Int)
	}
	return &b, nil
}

func (l *Ledger) setBalance(addr move.Address, b *Balance) error {
	if b.IsEmpty() {
		return l.store.Delete(addr[:])
	}
	data, err := rlp.EncodeToBytes(b)
	if err != nil {
		return err
	}
	return l.store.Put(addr[:], data)
}

// Mint credits amount to the total of addr.
func (l *Ledger) Mint(addr move.Address, amount *uint256.Int) error {
	if err := CheckAmount(amount); err != nil {
		return err
	}
	b, err := l.Balance(addr)
	if err != nil {
		return err
	}
	b.Total = new(uint256.Int).Add(b.Total, amount)
	if err := CheckAmount(b.Total); err != nil {
		return err
	}
	return l.setBalance(addr, b)
}

// WriteCheque sets the transferable part of addr's balance.
func (l *Ledger) WriteCheque(addr move.Address, amount *uint256.Int) error {
	b, err := l.Balance(addr)
	if err != nil {
		return err
	}
	if amount.Gt(b.Total) {
		return errors.Wrapf(ErrInsufficientBalance, "cheque %v exceeds total %v", amount, b.Total)
	}
	b.Cheque = amount.Clone()
	return l.setBalance(addr, b)
}

// Transfer moves amount from src to dst, consuming src's cheque.
func (l *Ledger) Transfer(src, dst move.Address, amount *uint256.Int) (bool, error) {
	if err := CheckAmount(amount); err != nil {
		return false, err
	}
	from, err := l.Balance(src)
	if err != nil {
		return false, err
	}
	if amount.Gt(from.Cheque) {
		return false, errors.Wrapf(ErrInsufficientCheque, "%v has %v, wants %v", src, from.Cheque, amount)
	}
	from.Cheque = new(uint256.Int).Sub(from.Cheque, amount)
	if src == dst {
		return true, l.setBalance(src, from)
	}
	from.Total = new(uint256.Int).Sub(from.Total, amount)

	to, err := l.Balance(dst)
	if err != nil {
		return false, err
	}
	to.Total = new(uint256.Int).Add(to.Total, amount)
	if err := CheckAmount(to.Total); err != nil {
		return false, err
	}

	if err := l.setBalance(src, from); err != nil {
		return false, err
	}
	if err := l.setBalance(dst, to); err != nil {
		return false, err
	}
	logger.Debug("transferred", "from", src, "to", dst, "amount", amount)
	return true, nil
}

// ChequeAmount implements Handler.
func (l *Ledger) ChequeAmount(account move.Address) (*uint256.Int, error) {
	b, err := l.Balance(account)
	if err != nil {
		return nil, err
	}
	return b.Cheque, nil
}

// TotalAmount implements Handler.
func (l *Ledger) TotalAmount(account move.Address) (*uint256.Int, error) {
	b, err := l.Balance(account)
	if err != nil {
		return nil, err
	}
	return b.Total, nil
}
