// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mvm/bcs"
	"github.com/vechain/mvm/bridge"
	"github.com/vechain/mvm/bytecode"
	"github.com/vechain/mvm/gas"
	"github.com/vechain/mvm/kv"
	"github.com/vechain/mvm/lvldb"
	"github.com/vechain/mvm/move"
	"github.com/vechain/mvm/runtime"
	"github.com/vechain/mvm/test/testvm"
	"github.com/vechain/mvm/warehouse"
)

var (
	alice   = move.MustParseAddress("0xa11ce")
	bob     = move.MustParseAddress("0xb0b")
	counter = move.StructTag{Address: alice, Module: "counter", Name: "Counter"}

	signerScript = bytecode.MinimalScript(6, bytecode.Token(bytecode.TokenSigner), bytecode.Token(bytecode.TokenU64))
)

type testEnv struct {
	engine *testvm.Engine
	ledger *bridge.Ledger
	rt     *runtime.Runtime
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	engine := &testvm.Engine{Functions: map[string]testvm.ScriptFunc{}}
	ledger := bridge.NewLedger(kv.Bucket("l").NewGetPutter(db))
	rt := runtime.New(engine, kv.Bucket("s").NewGetPutter(db), ledger)
	return &testEnv{engine, ledger, rt}
}

func TestPublishAndGetModule(t *testing.T) {
	env := newTestEnv(t)
	code := testvm.Module("coin", "x")

	out := env.rt.PublishModule(code, alice, gas.Metered(100))
	require.NoError(t, out.Err())
	// 100 per byte, rounded up
	assert.Equal(t, uint64(1), out.GasUsed)

	got, err := env.rt.GetModule(alice, "coin")
	require.NoError(t, err)
	assert.Equal(t, code, got)

	got, err = env.rt.GetModule(alice, "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)

	// republishing updates
	code2 := testvm.Module("coin", "y")
	require.NoError(t, env.rt.PublishModule(code2, alice, gas.Metered(100)).Err())
	got, _ = env.rt.GetModule(alice, "coin")
	assert.Equal(t, code2, got)
}

func TestPublishModuleBundle(t *testing.T) {
	env := newTestEnv(t)
	base := move.ModuleID{Address: alice, Name: "base"}

	bundle := bytecode.EncodeBundle([][]byte{
		testvm.Module("base", ""),
		testvm.Module("coin", "", base),
	})
	require.NoError(t, env.rt.PublishModuleBundle(bundle, alice, gas.Metered(1000)).Err())

	// dependencies may also come from storage
	out := env.rt.PublishModuleBundle(bytecode.EncodeBundle([][]byte{testvm.Module("nft", "", base)}), alice, gas.Metered(1000))
	require.NoError(t, out.Err())

	out = env.rt.PublishModuleBundle(bytecode.EncodeBundle([][]byte{
		testvm.Module("a", ""),
		testvm.Module("b", "", move.ModuleID{Address: bob, Name: "missing"}),
	}), alice, gas.Metered(1000))
	assert.Equal(t, move.StatusLinkerError, out.Status)

	got, err := env.rt.GetModule(alice, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMalformedBundle(t *testing.T) {
	env := newTestEnv(t)
	bundle := bytecode.EncodeBundle([][]byte{testvm.Module("m", "")})

	out := env.rt.PublishModuleBundle(bundle[:len(bundle)-1], alice, gas.Metered(1000))
	assert.Equal(t, move.StatusMalformedBundle, out.Status)
	assert.Equal(t, uint64(0), out.GasUsed)
	assert.Zero(t, env.engine.Sessions)
}

func TestAdmissionGate(t *testing.T) {
	env := newTestEnv(t)
	env.engine.Script = func(*testvm.Session, []move.TypeTag, [][]byte) error { return nil }

	require.NoError(t, env.rt.ExecuteScript(signerScript, nil, nil, gas.Metered(10)).Err())

	bad := bytecode.MinimalScript(6, bytecode.Token(bytecode.TokenU64), bytecode.Token(bytecode.TokenSigner))
	out := env.rt.ExecuteScript(bad, nil, nil, gas.Metered(10))
	assert.Equal(t, move.StatusInvalidMainFunctionSignature, out.Status)

	out = env.rt.ExecuteScript([]byte{1, 2, 3}, nil, nil, gas.Metered(10))
	assert.Equal(t, move.StatusInvalidSignature, out.Status)
	assert.Equal(t, 1, env.engine.Sessions)

	out = env.rt.ExecuteScript(bad, nil, nil, gas.Metered(10))
	assert.Equal(t, move.StatusInvalidMainFunctionSignature, out.Status)
	_, hit, miss := env.rt.AdmissionStats().Stats()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(3), miss)
}

func TestOutOfGas(t *testing.T) {
	env := newTestEnv(t)
	env.engine.Script = func(s *testvm.Session, _ []move.TypeTag, _ [][]byte) error {
		if err := s.MoveTo(alice, counter, []byte{1}); err != nil {
			return err
		}
		for range 2 {
			if err := s.Charge(gas.RET, 0); err != nil {
				return err
			}
		}
		return nil
	}

	out := env.rt.ExecuteScript(signerScript, nil, nil, gas.Metered(1))
	assert.Equal(t, move.StatusOutOfGas, out.Status)
	assert.LessOrEqual(t, out.GasUsed, uint64(1))

	res, err := env.rt.GetResourceByTag(alice, counter)
	require.NoError(t, err)
	assert.Nil(t, res)

	out = env.rt.ExecuteScript(signerScript, nil, nil, gas.Unmetered())
	require.NoError(t, out.Err())
	assert.Equal(t, uint64(0), out.GasUsed)

	res, _ = env.rt.GetResourceByTag(alice, counter)
	assert.Equal(t, []byte{1}, res)
}

func TestDryRun(t *testing.T) {
	env := newTestEnv(t)
	env.engine.Script = func(s *testvm.Session, _ []move.TypeTag, _ [][]byte) error {
		if err := s.Charge(gas.MOVE_FROM, 0); err != nil {
			return err
		}
		return s.MoveTo(alice, counter, []byte{1})
	}

	out := env.rt.ExecuteScript(signerScript, nil, nil, gas.DryRun())
	require.NoError(t, out.Err())
	assert.Equal(t, uint64(1), out.GasUsed)

	res, err := env.rt.GetResourceByTag(alice, counter)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestEngineError(t *testing.T) {
	env := newTestEnv(t)
	env.engine.Script = func(s *testvm.Session, _ []move.TypeTag, _ [][]byte) error {
		if err := s.MoveTo(alice, counter, []byte{1}); err != nil {
			return err
		}
		return testvm.Abort(7)
	}

	out := env.rt.ExecuteScript(signerScript, nil, nil, gas.Metered(10))
	assert.Equal(t, move.StatusAborted, out.Status)
	assert.Equal(t, "abort code 7", out.Message)

	res, _ := env.rt.GetResourceByTag(alice, counter)
	assert.Nil(t, res)
}

func TestExecuteFunction(t *testing.T) {
	env := newTestEnv(t)
	module := move.ModuleID{Address: alice, Name: "counter"}
	env.engine.Functions["0xa11ce::counter::incr"] = func(s *testvm.Session, _ []move.TypeTag, args [][]byte) error {
		cur, err := s.Resource(alice, counter)
		if err != nil {
			return err
		}
		if cur == nil {
			return s.MoveTo(alice, counter, args[0])
		}
		return s.Update(alice, counter, append(cur, args[0]...))
	}

	out := env.rt.ExecuteFunction(module, "incr", nil, [][]byte{{1}}, gas.Metered(10))
	assert.Equal(t, move.StatusLinkerError, out.Status)

	require.NoError(t, env.rt.PublishModule(testvm.Module("counter", ""), alice, gas.Metered(10)).Err())

	tx := &runtime.Transaction{
		Call: runtime.FunctionCall{Module: module, Function: "incr"},
		Args: [][]byte{{1}},
	}
	require.NoError(t, env.rt.Execute(tx, gas.Metered(10)).Err())
	tx.Args = [][]byte{{2}}
	require.NoError(t, env.rt.Execute(tx, gas.Metered(10)).Err())

	res, err := env.rt.GetResource(alice, move.StructTagBytes(counter))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, res)

	_, err = env.rt.GetResource(alice, []byte{0xff})
	assert.ErrorIs(t, err, move.ErrMalformedTag)

	out = env.rt.ExecuteFunction(module, "decr", nil, nil, gas.Metered(10))
	assert.Equal(t, move.StatusUnknownVerification, out.Status)
}

func TestDeposit(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ledger.Mint(alice, uint256.NewInt(100)))
	require.NoError(t, env.ledger.WriteCheque(alice, uint256.NewInt(50)))

	env.engine.Script = func(s *testvm.Session, _ []move.TypeTag, _ [][]byte) error {
		return s.Deposit(alice, bob, uint256.NewInt(30))
	}
	require.NoError(t, env.rt.ExecuteScript(signerScript, nil, nil, gas.Metered(10)).Err())

	total, err := env.ledger.TotalAmount(bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), total.Uint64())

	res, err := env.rt.GetResourceByTag(alice, warehouse.DepositTag)
	require.NoError(t, err)
	assert.Nil(t, res)

	// the remaining cheque can't cover a second deposit
	out := env.rt.ExecuteScript(signerScript, nil, nil, gas.Metered(10))
	assert.Equal(t, move.StatusStorageError, out.Status)
}

func TestBalanceNatives(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ledger.Mint(alice, uint256.NewInt(10)))
	require.NoError(t, env.ledger.WriteCheque(alice, uint256.NewInt(10)))

	env.engine.Script = func(s *testvm.Session, _ []move.TypeTag, _ [][]byte) error {
		enc := bcs.NewEncoder()
		enc.U128(uint256.NewInt(4))
		ret, err := s.CallNative("balance::transfer", alice.Bytes(), bob.Bytes(), enc.Bytes())
		if err != nil {
			return err
		}
		s.Emit(move.Primitive(move.TypeBool), ret[0])
		return nil
	}

	out := env.rt.ExecuteScript(signerScript, nil, nil, gas.Metered(10))
	require.NoError(t, out.Err())
	require.Len(t, out.Events, 1)
	assert.Equal(t, []byte{1}, out.Events[0].Data)
	assert.Equal(t, uint64(1), out.GasUsed)

	total, _ := env.ledger.TotalAmount(bob)
	assert.Equal(t, uint64(4), total.Uint64())
}

func TestResolveTransaction(t *testing.T) {
	stx := &bytecode.ScriptTransaction{
		Bytecode: signerScript,
		Args:     [][]byte{alice.Bytes()},
		TypeArgs: []move.TypeTag{move.Primitive(move.TypeU64)},
	}
	tx, err := runtime.ResolveTransaction(stx.Encode())
	require.NoError(t, err)
	assert.Equal(t, runtime.ScriptCall{Code: signerScript}, tx.Call)
	assert.Equal(t, stx.Args, tx.Args)

	_, err = runtime.ResolveTransaction([]byte{0x05})
	assert.Error(t, err)
}
