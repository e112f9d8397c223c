// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testvm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mvm/gas"
	"github.com/vechain/mvm/lvldb"
	"github.com/vechain/mvm/move"
	"github.com/vechain/mvm/test/testvm"
	"github.com/vechain/mvm/vm"
	"github.com/vechain/mvm/warehouse"
)

func TestParseModule(t *testing.T) {
	dep := move.ModuleID{Address: move.CoreCodeAddress, Name: "vector"}
	name, deps, err := testvm.ParseModule(testvm.Module("coin", "x|y", dep))
	require.NoError(t, err)
	assert.Equal(t, move.Identifier("coin"), name)
	assert.Equal(t, []move.ModuleID{dep}, deps)

	_, _, err = testvm.ParseModule([]byte("coin"))
	assert.Error(t, err)
	_, _, err = testvm.ParseModule([]byte("coin|0x1|"))
	assert.Error(t, err)
}

func TestSessionChanges(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	w := warehouse.New(db)
	a := move.MustParseAddress("0xa")
	kept := move.StructTag{Address: a, Module: "m", Name: "Kept"}
	gone := move.StructTag{Address: a, Module: "m", Name: "Gone"}
	temp := move.StructTag{Address: a, Module: "m", Name: "Temp"}

	cs := move.NewChangeSet()
	require.NoError(t, cs.AddResourceOp(a, kept, move.Create([]byte{1})))
	require.NoError(t, cs.AddResourceOp(a, gone, move.Create([]byte{1})))
	require.NoError(t, w.ApplyChanges(cs))

	engine := &testvm.Engine{}
	s := engine.NewSession(vm.Context{Resolver: w, Meter: gas.NewMeter(gas.DefaultSchedule(), gas.Unmetered())}).(*testvm.Session)

	require.NoError(t, s.Update(a, kept, []byte{2}))
	require.NoError(t, s.Delete(a, gone))
	require.NoError(t, s.MoveTo(a, temp, []byte{3}))
	require.NoError(t, s.Delete(a, temp))

	err = s.MoveTo(a, kept, []byte{4})
	status, _, ok := vm.StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, move.StatusResourceAlreadyExists, status)

	changes, _, err := s.Finish()
	require.NoError(t, err)
	res := changes.Account(a).Resources
	require.Len(t, res, 2)
	assert.Equal(t, move.OpUpdate, res[0].Op.Kind)
	assert.Equal(t, move.OpDelete, res[1].Op.Kind)

	_, _, err = s.Finish()
	assert.Error(t, err)
}
