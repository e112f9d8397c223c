// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime is the single entry point for publishing and executing
// code. Every call runs in its own engine session and yields one Output.
package runtime

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/vechain/mvm/bridge"
	"github.com/vechain/mvm/bytecode"
	"github.com/vechain/mvm/cache"
	"github.com/vechain/mvm/gas"
	"github.com/vechain/mvm/kv"
	"github.com/vechain/mvm/log"
	"github.com/vechain/mvm/move"
	"github.com/vechain/mvm/natives"
	"github.com/vechain/mvm/vm"
	"github.com/vechain/mvm/warehouse"
)

const admissionCacheSize = 1024

var logger = log.WithContext("pkg", "runtime")

type admission struct {
	signers int
	err     error
}

// Runtime drives the engine against a store. It is not safe for concurrent
// use; callers serialize calls.
type Runtime struct {
	engine   vm.Engine
	store    kv.GetPutter
	natives  natives.Set
	schedule *gas.Schedule
	bridge   bridge.Handler

	admitted *cache.LRU[[32]byte, admission]
}

// New create a Runtime object. Value moved by natives and deposits goes
// through h.
func New(engine vm.Engine, store kv.GetPutter, h bridge.Handler) *Runtime {
	admitted, _ := cache.NewLRU[[32]byte, admission](admissionCacheSize)
	return &Runtime{
		engine:   engine,
		store:    store,
		natives:  natives.All(h),
		schedule: natives.Schedule(gas.DefaultSchedule()),
		bridge:   h,
		admitted: admitted,
	}
}

// SetSchedule replaces the gas schedule.
// Returns this runtime.
func (rt *Runtime) SetSchedule(s *gas.Schedule) *Runtime {
	rt.schedule = s
	return rt
}

func (rt *Runtime) Schedule() *gas.Schedule { return rt.schedule }

// AdmissionStats returns the hit/miss counters of the script admission cache.
func (rt *Runtime) AdmissionStats() *cache.Stats { return rt.admitted.Stats() }

func (rt *Runtime) warehouse() *warehouse.Warehouse {
	return warehouse.New(rt.store, warehouse.DepositInterceptor(rt.bridge))
}

// run opens one session, drives it with fn and applies the resulting changes.
func (rt *Runtime) run(op string, strategy gas.Strategy, fn func(s vm.Session, m *gas.Meter) error) (out *Output) {
	defer func() {
		metricCallCount().AddWithLabel(1, map[string]string{"op": op, "status": out.Status.String()})
		metricGasUsed().ObserveWithLabels(int64(out.GasUsed), map[string]string{"op": op})
		if out.Succeeded() {
			logger.Debug("call executed", "op", op, "strategy", strategy, "gas", out.GasUsed, "events", len(out.Events))
		} else {
			logger.Debug("call failed", "op", op, "strategy", strategy, "status", out.Status, "msg", out.Message)
		}
	}()

	meter := gas.NewMeter(rt.schedule, strategy)
	w := rt.warehouse()
	session := rt.engine.NewSession(vm.Context{
		Resolver: w,
		Meter:    meter,
		Natives:  rt.natives,
	})

	if err := fn(session, meter); err != nil {
		return failed(statusOf(err), err, meter.Used())
	}
	cs, events, err := session.Finish()
	if err != nil {
		return failed(statusOf(err), err, meter.Used())
	}
	logger.Trace("gas breakdown", "op", op, "breakdown", meter.Breakdown())

	if !strategy.IsDryRun() {
		if err := w.ApplyChanges(cs); err != nil {
			logger.Warn("failed to apply changes", "op", op, "err", err)
			return failed(move.StatusStorageError, err, meter.Used())
		}
	}
	return &Output{
		Status:  move.StatusExecuted,
		GasUsed: meter.Used(),
		Events:  events,
	}
}

func publish(s vm.Session, m *gas.Meter, code []byte, sender move.Address) error {
	if err := m.ChargePublish(uint64(len(code))); err != nil {
		return err
	}
	metricPublishedBytes().Observe(int64(len(code)))
	return s.PublishModule(code, sender)
}

// PublishModule publishes one module under sender.
func (rt *Runtime) PublishModule(code []byte, sender move.Address, strategy gas.Strategy) *Output {
	return rt.run("publish", strategy, func(s vm.Session, m *gas.Meter) error {
		return publish(s, m, code, sender)
	})
}

// PublishModuleBundle publishes the modules of an encoded bundle in order.
// A module may depend on earlier modules of the bundle.
func (rt *Runtime) PublishModuleBundle(bundle []byte, sender move.Address, strategy gas.Strategy) *Output {
	modules, err := bytecode.DecodeBundle(bundle)
	if err != nil {
		out := failed(move.StatusMalformedBundle, err, 0)
		metricCallCount().AddWithLabel(1, map[string]string{"op": "publish_bundle", "status": out.Status.String()})
		return out
	}
	return rt.run("publish_bundle", strategy, func(s vm.Session, m *gas.Meter) error {
		for i, code := range modules {
			if err := publish(s, m, code, sender); err != nil {
				if _, _, ok := vm.StatusOf(err); ok {
					return err
				}
				return errors.Wrapf(err, "module %d", i)
			}
		}
		return nil
	})
}

// admit runs the admission gate on code, memoized by code hash.
func (rt *Runtime) admit(code []byte) (int, error) {
	event := "hit"
	// rejections are cached too, the loader never fails
	a, _ := rt.admitted.GetOrLoad(blake2b.Sum256(code), func([32]byte) (admission, error) {
		event = "miss"
		signers, err := bytecode.VerifyScript(code)
		return admission{signers, err}, nil
	})
	metricAdmissionCache().AddWithLabel(1, map[string]string{"event": event})

	if changed, hit, miss := rt.admitted.Stats().Stats(); changed {
		metricAdmissionStats().SetWithLabel(hit*100/(hit+miss), map[string]string{"stat": "hit_rate"})
	}
	metricAdmissionStats().SetWithLabel(int64(rt.admitted.Len()), map[string]string{"stat": "entries"})
	return a.signers, a.err
}

// ExecuteScript executes script bytecode. Scripts failing the admission
// gate never reach the engine.
func (rt *Runtime) ExecuteScript(code []byte, typeArgs []move.TypeTag, args [][]byte, strategy gas.Strategy) *Output {
	signers, err := rt.admit(code)
	if err != nil {
		out := failed(statusOf(err), err, 0)
		metricCallCount().AddWithLabel(1, map[string]string{"op": "script", "status": out.Status.String()})
		return out
	}
	logger.Trace("script admitted", "signers", signers, "args", len(args))
	return rt.run("script", strategy, func(s vm.Session, _ *gas.Meter) error {
		return s.ExecuteScript(code, typeArgs, args)
	})
}

// ExecuteFunction executes an entry function of a published module.
func (rt *Runtime) ExecuteFunction(module move.ModuleID, function move.Identifier, typeArgs []move.TypeTag, args [][]byte, strategy gas.Strategy) *Output {
	return rt.run("function", strategy, func(s vm.Session, _ *gas.Meter) error {
		return s.ExecuteFunction(module, function, typeArgs, args)
	})
}

// Execute dispatches tx to ExecuteScript or ExecuteFunction.
func (rt *Runtime) Execute(tx *Transaction, strategy gas.Strategy) *Output {
	switch call := tx.Call.(type) {
	case ScriptCall:
		return rt.ExecuteScript(call.Code, tx.TypeArgs, tx.Args, strategy)
	case FunctionCall:
		return rt.ExecuteFunction(call.Module, call.Function, tx.TypeArgs, tx.Args, strategy)
	}
	return &Output{Status: move.StatusUnknownValidation, Message: "unknown call type"}
}

// GetModule returns the bytecode of a published module, or nil.
func (rt *Runtime) GetModule(addr move.Address, name move.Identifier) ([]byte, error) {
	return rt.warehouse().GetModule(move.ModuleID{Address: addr, Name: name})
}

// GetResource returns the resource whose encoded struct tag is tag, or nil.
func (rt *Runtime) GetResource(addr move.Address, tag []byte) ([]byte, error) {
	st, err := move.DecodeStructTagBytes(tag)
	if err != nil {
		return nil, err
	}
	return rt.GetResourceByTag(addr, st)
}

func (rt *Runtime) GetResourceByTag(addr move.Address, tag move.StructTag) ([]byte, error) {
	return rt.warehouse().GetResource(addr, tag)
}
