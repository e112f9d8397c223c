// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package move

import (
	"slices"

	"github.com/pkg/errors"
)

// OpKind is the kind of a storage operation.
type OpKind uint8

const (
	OpCreate OpKind = iota + 1
	OpUpdate
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

// Op is one storage operation. Data is nil for deletes.
type Op struct {
	Kind OpKind
	Data []byte
}

func Create(data []byte) Op { return Op{OpCreate, data} }
func Update(data []byte) Op { return Op{OpUpdate, data} }
func Delete() Op            { return Op{Kind: OpDelete} }

type ModuleChange struct {
	Name Identifier
	Op   Op
}

type ResourceChange struct {
	Tag StructTag
	Op  Op
}

// AccountChangeSet holds the ordered operations for one address.
type AccountChangeSet struct {
	Modules   []ModuleChange
	Resources []ResourceChange
}

// IsEmpty returns whether no operations are recorded.
func (a *AccountChangeSet) IsEmpty() bool {
	return len(a.Modules) == 0 && len(a.Resources) == 0
}

// ChangeSet groups the effects of one engine call by account.
type ChangeSet struct {
	accounts map[Address]*AccountChangeSet
}

// NewChangeSet creates an empty change set.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{accounts: make(map[Address]*AccountChangeSet)}
}

func (cs *ChangeSet) account(addr Address) *AccountChangeSet {
	acc, ok := cs.accounts[addr]
	if !ok {
		acc = &AccountChangeSet{}
		cs.accounts[addr] = acc
	}
	return acc
}

// AddModuleOp records an operation on a module. Each module may be touched once.
func (cs *ChangeSet) AddModuleOp(id ModuleID, op Op) error {
	acc := cs.account(id.Address)
	for _, m := range acc.Modules {
		if m.Name == id.Name {
			return errors.Errorf("duplicate operation on module %v", id)
		}
	}
	acc.Modules = append(acc.Modules, ModuleChange{id.Name, op})
	return nil
}

// AddResourceOp records an operation on a resource. Each resource may be touched once.
func (cs *ChangeSet) AddResourceOp(addr Address, tag StructTag, op Op) error {
	acc := cs.account(addr)
	key := tag.String()
	for _, r := range acc.Resources {
		if r.Tag.String() == key {
			return errors.Errorf("duplicate operation on resource %v at %v", key, addr)
		}
	}
	acc.Resources = append(acc.Resources, ResourceChange{tag, op})
	return nil
}

// Account returns the operations for addr, or nil.
func (cs *ChangeSet) Account(addr Address) *AccountChangeSet {
	return cs.accounts[addr]
}

// Addresses returns the touched addresses in ascending order.
func (cs *ChangeSet) Addresses() []Address {
	addrs := make([]Address, 0, len(cs.accounts))
	for addr := range cs.accounts {
		addrs = append(addrs, addr)
	}
	slices.SortFunc(addrs, Address.Compare)
	return addrs
}

// Len returns the number of touched addresses.
func (cs *ChangeSet) Len() int {
	return len(cs.accounts)
}
