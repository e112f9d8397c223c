// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package warehouse stores modules and resources of accounts in a kv store,
// one record per address.
package warehouse

import (
	"github.com/pkg/errors"

	"github.com/vechain/mvm/kv"
	"github.com/vechain/mvm/log"
	"github.com/vechain/mvm/metrics"
	"github.com/vechain/mvm/move"
	"github.com/vechain/mvm/vm"
)

var (
	ErrKeyExists  = errors.New("key already exists")
	ErrKeyMissing = errors.New("key does not exist")

	logger = log.WithContext("pkg", "warehouse")

	metricRecordsWritten = metrics.LazyLoadCounter("warehouse_records_written_count")
)

// Interceptor diverts resource operations on reserved tags away from storage.
type Interceptor interface {
	Match(tag move.StructTag) bool
	// Prepare validates op and returns the action to run once the owner's
	// genuine operations are applied. A nil action is allowed.
	Prepare(owner move.Address, op move.Op) (func() error, error)
}

// Warehouse resolves modules and resources for the engine and applies the
// change sets it produces.
type Warehouse struct {
	store        kv.GetPutter
	interceptors []Interceptor
}

var _ vm.Resolver = (*Warehouse)(nil)

// New creates a warehouse over store. Interceptors are consulted in order,
// the first match wins.
func New(store kv.GetPutter, interceptors ...Interceptor) *Warehouse {
	return &Warehouse{store, interceptors}
}

// load returns the record of addr, or an empty one if nothing is stored.
func (w *Warehouse) load(addr move.Address) (*record, error) {
	data, err := w.store.Get(addr[:])
	if err != nil {
		if w.store.IsNotFound(err) {
			return newRecord(), nil
		}
		return nil, errors.Wrapf(err, "get record %v", addr)
	}
	r, err := decodeRecord(data)
	if err != nil {
		return nil, errors.Wrapf(err, "record %v", addr)
	}
	return r, nil
}

func (w *Warehouse) save(addr move.Address, r *record) error {
	data, err := r.encode()
	if err != nil {
		return errors.Wrapf(err, "encode record %v", addr)
	}
	if err := w.store.Put(addr[:], data); err != nil {
		return errors.Wrapf(err, "put record %v", addr)
	}
	metricRecordsWritten().Add(1)
	return nil
}

// GetModule returns the bytecode of the module, or nil if absent.
func (w *Warehouse) GetModule(id move.ModuleID) ([]byte, error) {
	r, err := w.load(id.Address)
	if err != nil {
		return nil, err
	}
	return r.modules[string(id.Name)], nil
}

// GetResource returns the resource stored under addr, or nil if absent.
func (w *Warehouse) GetResource(addr move.Address, tag move.StructTag) ([]byte, error) {
	r, err := w.load(addr)
	if err != nil {
		return nil, err
	}
	return r.resources[tag.String()], nil
}

// Account returns a read-only view of the record of addr.
func (w *Warehouse) Account(addr move.Address) (*Account, error) {
	r, err := w.load(addr)
	if err != nil {
		return nil, err
	}
	return &Account{addr, r}, nil
}

type accountPlan struct {
	addr      move.Address
	changes   *move.AccountChangeSet
	resources []move.ResourceChange
	actions   []func() error
}

func (w *Warehouse) interceptor(tag move.StructTag) Interceptor {
	for _, i := range w.interceptors {
		if i.Match(tag) {
			return i
		}
	}
	return nil
}

// plan splits the resource operations of every account into genuine ones
// and intercepted actions. Nothing is written.
func (w *Warehouse) plan(cs *move.ChangeSet) ([]*accountPlan, error) {
	addrs := cs.Addresses()
	plans := make([]*accountPlan, 0, len(addrs))
	for _, addr := range addrs {
		p := &accountPlan{addr: addr, changes: cs.Account(addr)}
		for _, rc := range p.changes.Resources {
			i := w.interceptor(rc.Tag)
			if i == nil {
				p.resources = append(p.resources, rc)
				continue
			}
			action, err := i.Prepare(addr, rc.Op)
			if err != nil {
				return nil, err
			}
			if action != nil {
				p.actions = append(p.actions, action)
			}
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// ApplyChanges applies cs account by account in ascending address order.
//
// Interceptor payloads are validated before anything is written. A failure
// aborts the call, but accounts written before the failing one stay
// written.
func (w *Warehouse) ApplyChanges(cs *move.ChangeSet) error {
	plans, err := w.plan(cs)
	if err != nil {
		return err
	}
	for _, p := range plans {
		if err := w.applyAccount(p); err != nil {
			return errors.Wrapf(err, "account %v", p.addr)
		}
	}
	return nil
}

func (w *Warehouse) applyAccount(p *accountPlan) error {
	r, err := w.load(p.addr)
	if err != nil {
		return err
	}
	for _, mc := range p.changes.Modules {
		if err := apply(r.modules, string(mc.Name), mc.Op); err != nil {
			return errors.Wrap(err, "module")
		}
	}
	for _, rc := range p.resources {
		if err := apply(r.resources, rc.Tag.String(), rc.Op); err != nil {
			return errors.Wrap(err, "resource")
		}
	}
	for _, action := range p.actions {
		if err := action(); err != nil {
			return err
		}
	}
	if err := w.save(p.addr, r); err != nil {
		return err
	}
	logger.Trace("account updated",
		"addr", p.addr,
		"modules", len(p.changes.Modules),
		"resources", len(p.resources),
		"intercepted", len(p.actions),
	)
	return nil
}
