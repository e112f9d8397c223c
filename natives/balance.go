// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package natives

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/mvm/bcs"
	"github.com/vechain/mvm/bridge"
	"github.com/vechain/mvm/gas"
	"github.com/vechain/mvm/move"
)

// Balance returns the natives of the balance module, bound to h.
//
//	transfer(src: &signer, dst: address, amount: u128): bool
//	cheque_amount(account: address): u128
//	total_amount(account: address): u128
//
// Each charges its base cost before calling the bridge.
func Balance(h bridge.Handler) Set {
	return Set{
		"balance::transfer": func(m *gas.Meter, args [][]byte) ([][]byte, error) {
			const name = "balance::transfer"
			if err := checkArgs(name, args, 3); err != nil {
				return nil, err
			}
			src, err := decodeAddress(name, args[0])
			if err != nil {
				return nil, err
			}
			dst, err := decodeAddress(name, args[1])
			if err != nil {
				return nil, err
			}
			amount, err := decodeU128(name, args[2])
			if err != nil {
				return nil, err
			}
			if err := m.ChargeNative(name, 0); err != nil {
				return nil, err
			}
			ok, err := h.Transfer(src, dst, amount)
			if err != nil {
				return nil, err
			}
			enc := bcs.NewEncoder()
			enc.Bool(ok)
			return [][]byte{enc.Bytes()}, nil
		},
		"balance::cheque_amount": amountQuery("balance::cheque_amount", h.ChequeAmount),
		"balance::total_amount":  amountQuery("balance::total_amount", h.TotalAmount),
	}
}

func amountQuery(name string, query func(move.Address) (*uint256.Int, error)) Func {
	return func(m *gas.Meter, args [][]byte) ([][]byte, error) {
		if err := checkArgs(name, args, 1); err != nil {
			return nil, err
		}
		addr, err := decodeAddress(name, args[0])
		if err != nil {
			return nil, err
		}
		if err := m.ChargeNative(name, 0); err != nil {
			return nil, err
		}
		amount, err := query(addr)
		if err != nil {
			return nil, err
		}
		if err := bridge.CheckAmount(amount); err != nil {
			return nil, err
		}
		enc := bcs.NewEncoder()
		enc.U128(amount)
		return [][]byte{enc.Bytes()}, nil
	}
}

func decodeAddress(name string, arg []byte) (move.Address, error) {
	if len(arg) != move.AddressLength {
		return move.Address{}, errors.Wrapf(ErrBadArguments, "%s: address must be %d bytes", name, move.AddressLength)
	}
	return move.BytesToAddress(arg), nil
}

func decodeU128(name string, arg []byte) (*uint256.Int, error) {
	dec := bcs.NewDecoder(arg)
	v, err := dec.U128()
	if err == nil {
		err = dec.Finish()
	}
	if err != nil {
		return nil, errors.Wrapf(ErrBadArguments, "%s: %v", name, err)
	}
	return v, nil
}

// All returns every native bound to h.
func All(h bridge.Handler) Set {
	return Balance(h).Merge(Hash()).Merge(SubstrateHash())
}

// Schedule returns s with the default cost of every native in All registered.
func Schedule(s *gas.Schedule) *gas.Schedule {
	return s.WithNatives(All(bridge.Unavailable{}).Costs(gas.DefaultNativeCost))
}
