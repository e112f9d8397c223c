// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package move_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mvm/move"
)

func TestParseAddress(t *testing.T) {
	addr, err := move.ParseAddress("0x1")
	require.NoError(t, err)
	assert.Equal(t, move.CoreCodeAddress, addr)
	assert.Equal(t, "0x1", addr.ShortString())

	addr, err = move.ParseAddress("0xCAFE")
	require.NoError(t, err)
	assert.Equal(t, byte(0xca), addr[30])
	assert.Equal(t, byte(0xfe), addr[31])

	full := "0xab" + strings.Repeat("0", 61) + "1"
	addr, err = move.ParseAddress(full)
	require.NoError(t, err)
	assert.Equal(t, full, addr.String())

	_, err = move.ParseAddress("cafe")
	assert.Error(t, err)
	_, err = move.ParseAddress("0x" + full[2:] + "00")
	assert.Error(t, err)
	_, err = move.ParseAddress("0xzz")
	assert.Error(t, err)

	assert.Equal(t, "0x0", move.Address{}.ShortString())
}

func TestAddressJSON(t *testing.T) {
	addr := move.MustParseAddress("0x42")
	data, err := json.Marshal(&addr)
	require.NoError(t, err)

	var got move.Address
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, addr, got)
}

func TestIdentifier(t *testing.T) {
	for _, s := range []string{"deposit", "Deposit", "_x", "a1_b2"} {
		assert.True(t, move.Identifier(s).IsValid(), s)
	}
	for _, s := range []string{"", "_", "1abc", "a-b", "a::b"} {
		assert.False(t, move.Identifier(s).IsValid(), s)
	}
}

func TestParseStructTag(t *testing.T) {
	tag, err := move.ParseStructTag("0x1::coin::Coin<u64, vector<0xcafe::m::T>>")
	require.NoError(t, err)
	assert.Equal(t, move.CoreCodeAddress, tag.Address)
	assert.Equal(t, move.Identifier("coin"), tag.Module)
	assert.Equal(t, move.Identifier("Coin"), tag.Name)
	require.Len(t, tag.TypeParams, 2)
	assert.Equal(t, move.TypeU64, tag.TypeParams[0].Kind)
	assert.Equal(t, "vector<0xcafe::m::T>", tag.TypeParams[1].String())
	assert.Equal(t, "0x1::coin::Coin<u64, vector<0xcafe::m::T>>", tag.String())

	for _, bad := range []string{"u64", "0x1::coin", "0x1::coin::Coin<", "0x1::1x::C", "0x1::a::B>"} {
		_, err := move.ParseStructTag(bad)
		assert.ErrorIs(t, err, move.ErrMalformedTag, bad)
	}
}

func TestStructTagEncoding(t *testing.T) {
	tag := move.StructTag{
		Address:    move.MustParseAddress("0xcafe"),
		Module:     "basic_coin",
		Name:       "Balance",
		TypeParams: []move.TypeTag{move.VectorOf(move.Primitive(move.TypeU8)), move.Primitive(move.TypeU256)},
	}
	data := move.StructTagBytes(tag)

	got, err := move.DecodeStructTagBytes(data)
	require.NoError(t, err)
	assert.True(t, tag.Equal(got))

	_, err = move.DecodeStructTagBytes(data[:len(data)-1])
	assert.ErrorIs(t, err, move.ErrMalformedTag)

	_, err = move.DecodeStructTagBytes(append(data, 0))
	assert.ErrorIs(t, err, move.ErrMalformedTag)
}

func TestChangeSet(t *testing.T) {
	cs := move.NewChangeSet()
	b := move.MustParseAddress("0xb")
	a := move.MustParseAddress("0xa")

	require.NoError(t, cs.AddModuleOp(move.ModuleID{Address: b, Name: "m"}, move.Create([]byte{1})))
	require.NoError(t, cs.AddModuleOp(move.ModuleID{Address: a, Name: "m"}, move.Create([]byte{1})))
	assert.Error(t, cs.AddModuleOp(move.ModuleID{Address: a, Name: "m"}, move.Delete()))

	tag := move.StructTag{Address: a, Module: "m", Name: "R"}
	require.NoError(t, cs.AddResourceOp(a, tag, move.Create([]byte{2})))
	assert.Error(t, cs.AddResourceOp(a, tag, move.Update([]byte{3})))

	assert.Equal(t, []move.Address{a, b}, cs.Addresses())
	assert.Len(t, cs.Account(a).Resources, 1)
	assert.Nil(t, cs.Account(move.MustParseAddress("0xc")))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "EXECUTED", move.StatusExecuted.String())
	assert.Equal(t, "STATUS_4999", move.StatusCode(4999).String())
}
