// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/vechain/mvm/kv"
	"github.com/vechain/mvm/stackedmap"
)

var errNotFound = errors.New("not found")

// staged is a pending write. A nil value with deleted set is a removal.
type staged struct {
	value   []byte
	deleted bool
}

// overlay buffers writes to store. Reads see staged writes first.
type overlay struct {
	store  kv.GetPutter
	staged *stackedmap.StackedMap[string, staged]
}

var _ kv.GetPutter = (*overlay)(nil)

func newOverlay(store kv.GetPutter) *overlay {
	return &overlay{
		store: store,
		staged: stackedmap.New(func(key string) (staged, bool, error) {
			val, err := store.Get([]byte(key))
			if err != nil {
				if store.IsNotFound(err) {
					return staged{}, false, nil
				}
				return staged{}, false, err
			}
			return staged{value: val}, true, nil
		}),
	}
}

func (o *overlay) Get(key []byte) ([]byte, error) {
	s, found, err := o.staged.Get(string(key))
	if err != nil {
		return nil, err
	}
	if !found || s.deleted {
		return nil, errNotFound
	}
	return bytes.Clone(s.value), nil
}

func (o *overlay) Has(key []byte) (bool, error) {
	s, found, err := o.staged.Get(string(key))
	if err != nil {
		return false, err
	}
	return found && !s.deleted, nil
}

func (o *overlay) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound) || o.store.IsNotFound(err)
}

func (o *overlay) Put(key, val []byte) error {
	o.staged.Put(string(key), staged{value: bytes.Clone(val)})
	return nil
}

func (o *overlay) Delete(key []byte) error {
	o.staged.Put(string(key), staged{deleted: true})
	return nil
}

// checkpoint opens a new staging level and returns the depth to revert to.
func (o *overlay) checkpoint() int {
	depth := o.staged.Depth()
	o.staged.Push()
	return depth
}

// revert discards the writes staged since the checkpoint returning depth.
func (o *overlay) revert(depth int) {
	o.staged.PopTo(depth)
}

// Len returns the number of distinct staged keys.
func (o *overlay) Len() int {
	return o.staged.Len()
}

// journal replays the staged writes in order.
func (o *overlay) journal(cb func(key []byte, s staged) error) error {
	var err error
	o.staged.Journal(func(key string, s staged) bool {
		err = cb([]byte(key), s)
		return err == nil
	})
	return err
}

// commit flushes staged writes to the store, through a batch if the store
// supports one.
func (o *overlay) commit() error {
	var (
		putter kv.Putter = o.store
		batch  kv.Batch
	)
	if b, ok := o.store.(kv.Batcher); ok {
		batch = b.NewBatch()
		putter = batch
	}
	err := o.journal(func(key []byte, s staged) error {
		if s.deleted {
			return putter.Delete(key)
		}
		return putter.Put(key, s.value)
	})
	if err != nil {
		return err
	}
	if batch != nil {
		return batch.Write()
	}
	return nil
}
