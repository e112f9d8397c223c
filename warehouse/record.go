// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package warehouse

import (
	"maps"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/mvm/move"
)

// ErrMalformedRecord is returned when a stored account record can't be decoded.
var ErrMalformedRecord = errors.New("malformed account record")

type entry struct {
	Key   string
	Value []byte
}

// storedRecord is the RLP form of a record. Entries are sorted by key.
type storedRecord struct {
	Modules   []entry
	Resources []entry
}

// record holds everything stored under one address.
type record struct {
	modules   map[string][]byte
	resources map[string][]byte
}

func newRecord() *record {
	return &record{
		modules:   make(map[string][]byte),
		resources: make(map[string][]byte),
	}
}

func loadEntries(m map[string][]byte, entries []entry) error {
	for _, e := range entries {
		if _, dup := m[e.Key]; dup {
			return errors.Wrapf(ErrMalformedRecord, "duplicate key %q", e.Key)
		}
		m[e.Key] = e.Value
	}
	return nil
}

func decodeRecord(data []byte) (*record, error) {
	var stored storedRecord
	if err := rlp.DecodeBytes(data, &stored); err != nil {
		return nil, errors.Wrap(ErrMalformedRecord, err.Error())
	}
	r := newRecord()
	if err := loadEntries(r.modules, stored.Modules); err != nil {
		return nil, err
	}
	if err := loadEntries(r.resources, stored.Resources); err != nil {
		return nil, err
	}
	return r, nil
}

func sortedEntries(m map[string][]byte) []entry {
	entries := make([]entry, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		entries = append(entries, entry{k, m[k]})
	}
	return entries
}

func (r *record) encode() ([]byte, error) {
	return rlp.EncodeToBytes(&storedRecord{
		Modules:   sortedEntries(r.modules),
		Resources: sortedEntries(r.resources),
	})
}

// apply performs op on m[key] under the create/update/delete invariants.
func apply(m map[string][]byte, key string, op move.Op) error {
	_, exists := m[key]
	switch op.Kind {
	case move.OpCreate:
		if exists {
			return errors.Wrap(ErrKeyExists, key)
		}
		m[key] = op.Data
	case move.OpUpdate:
		if !exists {
			return errors.Wrap(ErrKeyMissing, key)
		}
		m[key] = op.Data
	case move.OpDelete:
		if !exists {
			return errors.Wrap(ErrKeyMissing, key)
		}
		delete(m, key)
	default:
		return errors.Errorf("unknown op kind %d on %s", op.Kind, key)
	}
	return nil
}

// Account is a read-only view of one account record.
type Account struct {
	Address move.Address
	r       *record
}

// IsEmpty returns whether the account holds no modules or resources.
func (a *Account) IsEmpty() bool {
	return len(a.r.modules) == 0 && len(a.r.resources) == 0
}

// Modules returns the sorted names of the published modules.
func (a *Account) Modules() []move.Identifier {
	names := make([]move.Identifier, 0, len(a.r.modules))
	for _, k := range slices.Sorted(maps.Keys(a.r.modules)) {
		names = append(names, move.Identifier(k))
	}
	return names
}

// Resources returns the sorted canonical tags of the stored resources.
func (a *Account) Resources() []string {
	return slices.Sorted(maps.Keys(a.r.resources))
}

func (a *Account) Module(name move.Identifier) []byte {
	return a.r.modules[string(name)]
}

func (a *Account) Resource(tag move.StructTag) []byte {
	return a.r.resources[tag.String()]
}
