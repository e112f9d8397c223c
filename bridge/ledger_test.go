// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bridge_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mvm/bridge"
	"github.com/vechain/mvm/kv"
	"github.com/vechain/mvm/lvldb"
	"github.com/vechain/mvm/move"
)

func newLedger(t *testing.T) *bridge.Ledger {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return bridge.NewLedger(kv.Bucket("l").NewGetPutter(db))
}

func TestLedgerTransfer(t *testing.T) {
	l := newLedger(t)
	alice := move.MustParseAddress("0xa11ce")
	bob := move.MustParseAddress("0xb0b")

	require.NoError(t, l.Mint(alice, uint256.NewInt(100)))
	require.NoError(t, l.WriteCheque(alice, uint256.NewInt(40)))

	ok, err := l.Transfer(alice, bob, uint256.NewInt(50))
	assert.False(t, ok)
	assert.ErrorIs(t, err, bridge.ErrInsufficientCheque)

	ok, err = l.Transfer(alice, bob, uint256.NewInt(30))
	require.NoError(t, err)
	assert.True(t, ok)

	total, err := l.TotalAmount(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(70), total.Uint64())

	cheque, err := l.ChequeAmount(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), cheque.Uint64())

	total, err = l.TotalAmount(bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), total.Uint64())
}

func TestLedgerSelfTransfer(t *testing.T) {
	l := newLedger(t)
	alice := move.MustParseAddress("0xa11ce")
	require.NoError(t, l.Mint(alice, uint256.NewInt(10)))
	require.NoError(t, l.WriteCheque(alice, uint256.NewInt(10)))

	ok, err := l.Transfer(alice, alice, uint256.NewInt(4))
	require.NoError(t, err)
	assert.True(t, ok)

	b, err := l.Balance(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), b.Total.Uint64())
	assert.Equal(t, uint64(6), b.Cheque.Uint64())
}

func TestLedgerLimits(t *testing.T) {
	l := newLedger(t)
	addr := move.MustParseAddress("0x1")

	assert.ErrorIs(t, l.WriteCheque(addr, uint256.NewInt(1)), bridge.ErrInsufficientBalance)

	max128 := new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))
	require.NoError(t, l.Mint(addr, max128))
	assert.ErrorIs(t, l.Mint(addr, uint256.NewInt(1)), bridge.ErrAmountOverflow)

	b, err := l.Balance(move.MustParseAddress("0x2"))
	require.NoError(t, err)
	assert.True(t, b.IsEmpty())
}

func TestUnavailable(t *testing.T) {
	var h bridge.Handler = bridge.Unavailable{}
	_, err := h.Transfer(move.Address{}, move.Address{}, uint256.NewInt(1))
	assert.ErrorIs(t, err, bridge.ErrUnavailable)
	_, err = h.TotalAmount(move.Address{})
	assert.ErrorIs(t, err, bridge.ErrUnavailable)
}
