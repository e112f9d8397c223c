// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package warehouse

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/mvm/bcs"
	"github.com/vechain/mvm/bridge"
	"github.com/vechain/mvm/metrics"
	"github.com/vechain/mvm/move"
)

var (
	ErrMalformedDeposit = errors.New("malformed deposit")
	ErrTransferRejected = errors.New("deposit transfer rejected")

	metricDepositCount = metrics.LazyLoadCounterVec("warehouse_deposits_count", []string{"result"})
)

// DepositTag marks resource writes that are value transfers rather than state.
var DepositTag = move.StructTag{
	Address: move.CoreCodeAddress,
	Module:  "deposit",
	Name:    "Deposit",
}

// Deposit is the payload of a deposit marker.
type Deposit struct {
	Destination move.Address
	Amount      *uint256.Int
}

// Encode returns the canonical encoding of d.
func (d *Deposit) Encode() []byte {
	enc := bcs.NewEncoder()
	enc.FixedBytes(d.Destination[:])
	enc.U128(d.Amount)
	return enc.Bytes()
}

// DecodeDeposit decodes a deposit payload.
func DecodeDeposit(data []byte) (*Deposit, error) {
	dec := bcs.NewDecoder(data)
	dst, err := dec.FixedBytes(move.AddressLength)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedDeposit, err.Error())
	}
	amount, err := dec.U128()
	if err != nil {
		return nil, errors.Wrap(ErrMalformedDeposit, err.Error())
	}
	if err := dec.Finish(); err != nil {
		return nil, errors.Wrap(ErrMalformedDeposit, err.Error())
	}
	return &Deposit{move.BytesToAddress(dst), amount}, nil
}

type depositInterceptor struct {
	handler bridge.Handler
}

// DepositInterceptor forwards deposit markers written under an account to
// h as transfers from that account. Deleting a marker does nothing.
func DepositInterceptor(h bridge.Handler) Interceptor {
	return &depositInterceptor{h}
}

func (d *depositInterceptor) Match(tag move.StructTag) bool {
	return tag.Equal(DepositTag)
}

func (d *depositInterceptor) Prepare(owner move.Address, op move.Op) (func() error, error) {
	if op.Kind == move.OpDelete {
		return nil, nil
	}
	deposit, err := DecodeDeposit(op.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "deposit from %v", owner)
	}
	return func() error {
		ok, err := d.handler.Transfer(owner, deposit.Destination, deposit.Amount)
		if err != nil {
			metricDepositCount().AddWithLabel(1, map[string]string{"result": "error"})
			return errors.Wrapf(err, "deposit %v -> %v", owner, deposit.Destination)
		}
		if !ok {
			metricDepositCount().AddWithLabel(1, map[string]string{"result": "rejected"})
			return errors.Wrapf(ErrTransferRejected, "%v -> %v", owner, deposit.Destination)
		}
		metricDepositCount().AddWithLabel(1, map[string]string{"result": "ok"})
		logger.Debug("deposit", "from", owner, "to", deposit.Destination, "amount", deposit.Amount)
		return nil
	}, nil
}
