// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testvm provides a scripted engine for tests. Modules are opaque
// byte strings naming their dependencies, and scripts and entry functions
// are Go callbacks operating on the session.
package testvm

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/mvm/gas"
	"github.com/vechain/mvm/move"
	"github.com/vechain/mvm/vm"
	"github.com/vechain/mvm/warehouse"
)

// ScriptFunc is the body of a script or an entry function.
type ScriptFunc func(s *Session, typeArgs []move.TypeTag, args [][]byte) error

// Engine runs Script for every script and looks up entry functions by
// "module::function", e.g. "0xa::coin::mint".
type Engine struct {
	Script    ScriptFunc
	Functions map[string]ScriptFunc

	// Sessions counts the sessions opened.
	Sessions int
}

var _ vm.Engine = (*Engine)(nil)

func (e *Engine) NewSession(ctx vm.Context) vm.Session {
	e.Sessions++
	return &Session{
		engine:    e,
		ctx:       ctx,
		modules:   make(map[move.ModuleID]*pendingModule),
		resources: make(map[string]*pendingResource),
	}
}

type pendingModule struct {
	id      move.ModuleID
	code    []byte
	existed bool
}

type pendingResource struct {
	addr    move.Address
	tag     move.StructTag
	data    []byte
	existed bool
	present bool
}

// Session buffers the effects of one engine operation.
type Session struct {
	engine *Engine
	ctx    vm.Context

	modules     map[move.ModuleID]*pendingModule
	moduleOrder []move.ModuleID

	resources     map[string]*pendingResource
	resourceOrder []string

	events   []vm.Event
	finished bool
}

func (s *Session) module(id move.ModuleID) ([]byte, error) {
	if m, ok := s.modules[id]; ok {
		return m.code, nil
	}
	return s.ctx.Resolver.GetModule(id)
}

func (s *Session) PublishModule(code []byte, sender move.Address) error {
	name, deps, err := ParseModule(code)
	if err != nil {
		return vm.NewError(move.StatusUnknownBinaryError, "%v", err)
	}
	id := move.ModuleID{Address: sender, Name: name}
	if _, dup := s.modules[id]; dup {
		return vm.NewError(move.StatusUnknownVerification, "module %v published twice", id)
	}
	for _, dep := range deps {
		dc, err := s.module(dep)
		if err != nil {
			return err
		}
		if dc == nil {
			return vm.NewError(move.StatusLinkerError, "%v: missing dependency %v", id, dep)
		}
	}
	prev, err := s.ctx.Resolver.GetModule(id)
	if err != nil {
		return err
	}
	s.modules[id] = &pendingModule{id, code, prev != nil}
	s.moduleOrder = append(s.moduleOrder, id)
	return nil
}

func (s *Session) ExecuteScript(code []byte, typeArgs []move.TypeTag, args [][]byte) error {
	if s.engine.Script == nil {
		return vm.NewError(move.StatusUnknownRuntime, "no script body")
	}
	return s.engine.Script(s, typeArgs, args)
}

func (s *Session) ExecuteFunction(module move.ModuleID, function move.Identifier, typeArgs []move.TypeTag, args [][]byte) error {
	code, err := s.module(module)
	if err != nil {
		return err
	}
	if code == nil {
		return vm.NewError(move.StatusLinkerError, "module %v not published", module)
	}
	fn, ok := s.engine.Functions[module.String()+"::"+string(function)]
	if !ok {
		return vm.NewError(move.StatusUnknownVerification, "function %v::%v not found", module, function)
	}
	return fn(s, typeArgs, args)
}

func (s *Session) Finish() (*move.ChangeSet, []vm.Event, error) {
	if s.finished {
		return nil, nil, errors.New("session already finished")
	}
	s.finished = true

	cs := move.NewChangeSet()
	for _, id := range s.moduleOrder {
		m := s.modules[id]
		op := move.Create(m.code)
		if m.existed {
			op = move.Update(m.code)
		}
		if err := cs.AddModuleOp(id, op); err != nil {
			return nil, nil, err
		}
	}
	for _, key := range s.resourceOrder {
		r := s.resources[key]
		var op move.Op
		switch {
		case r.existed && r.present:
			op = move.Update(r.data)
		case r.existed:
			op = move.Delete()
		case r.present:
			op = move.Create(r.data)
		default:
			continue
		}
		if err := cs.AddResourceOp(r.addr, r.tag, op); err != nil {
			return nil, nil, err
		}
	}
	return cs, s.events, nil
}

// Meter returns the meter of the session.
func (s *Session) Meter() *gas.Meter { return s.ctx.Meter }

// Charge charges one instruction.
func (s *Session) Charge(op gas.Opcode, size uint64) error {
	return s.ctx.Meter.ChargeInstr(op, size)
}

// CallNative invokes a native function.
func (s *Session) CallNative(name string, args ...[]byte) ([][]byte, error) {
	return s.ctx.Natives.Call(s.ctx.Meter, name, args)
}

func (s *Session) resource(addr move.Address, tag move.StructTag) (*pendingResource, error) {
	key := addr.String() + "/" + tag.String()
	if r, ok := s.resources[key]; ok {
		return r, nil
	}
	data, err := s.ctx.Resolver.GetResource(addr, tag)
	if err != nil {
		return nil, err
	}
	r := &pendingResource{addr: addr, tag: tag, data: data, existed: data != nil, present: data != nil}
	s.resources[key] = r
	s.resourceOrder = append(s.resourceOrder, key)
	return r, nil
}

// Resource returns the current value of a resource, or nil.
func (s *Session) Resource(addr move.Address, tag move.StructTag) ([]byte, error) {
	r, err := s.resource(addr, tag)
	if err != nil {
		return nil, err
	}
	if !r.present {
		return nil, nil
	}
	return r.data, nil
}

// MoveTo publishes a new resource under addr.
func (s *Session) MoveTo(addr move.Address, tag move.StructTag, data []byte) error {
	r, err := s.resource(addr, tag)
	if err != nil {
		return err
	}
	if r.present {
		return vm.NewError(move.StatusResourceAlreadyExists, "%v at %v", tag, addr.ShortString())
	}
	r.data, r.present = data, true
	return nil
}

// Update replaces an existing resource.
func (s *Session) Update(addr move.Address, tag move.StructTag, data []byte) error {
	r, err := s.resource(addr, tag)
	if err != nil {
		return err
	}
	if !r.present {
		return vm.NewError(move.StatusResourceDoesNotExist, "%v at %v", tag, addr.ShortString())
	}
	r.data = data
	return nil
}

// Delete removes an existing resource.
func (s *Session) Delete(addr move.Address, tag move.StructTag) error {
	r, err := s.resource(addr, tag)
	if err != nil {
		return err
	}
	if !r.present {
		return vm.NewError(move.StatusResourceDoesNotExist, "%v at %v", tag, addr.ShortString())
	}
	r.data, r.present = nil, false
	return nil
}

// Deposit writes a deposit marker under from, moving amount to to once the
// changes are applied.
func (s *Session) Deposit(from, to move.Address, amount *uint256.Int) error {
	d := &warehouse.Deposit{Destination: to, Amount: amount}
	return s.MoveTo(from, warehouse.DepositTag, d.Encode())
}

// Emit records an event.
func (s *Session) Emit(typ move.TypeTag, data []byte) {
	s.events = append(s.events, vm.Event{Type: typ, Data: data})
}

// Abort fails the operation with an abort code.
func Abort(code uint64) error {
	return vm.NewError(move.StatusAborted, "abort code %d", code)
}
