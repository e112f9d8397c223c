// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis publishes the baseline module bundles into an empty or
// existing store, all or nothing.
package genesis

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/vechain/mvm/bridge"
	"github.com/vechain/mvm/gas"
	"github.com/vechain/mvm/kv"
	"github.com/vechain/mvm/log"
	"github.com/vechain/mvm/lvldb"
	"github.com/vechain/mvm/metrics"
	"github.com/vechain/mvm/move"
	"github.com/vechain/mvm/runtime"
	"github.com/vechain/mvm/vm"
)

var (
	logger = log.WithContext("pkg", "genesis")

	metricStagedKeys = metrics.LazyLoadGauge("genesis_staged_keys")
)

// ID identifies a genesis by the writes it commits.
type ID [32]byte

func (id ID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// Error is returned when a bundle fails to publish. Nothing was written.
type Error struct {
	Index   int
	Address move.Address
	Output  *runtime.Output
}

func (e *Error) Error() string {
	return fmt.Sprintf("genesis: bundle %d at %v: %v: %s", e.Index, e.Address.ShortString(), e.Output.Status, e.Output.Message)
}

func (e *Error) Unwrap() error {
	return e.Output.Err()
}

type bundle struct {
	addr move.Address
	code []byte
}

// Builder helper to build genesis state.
type Builder struct {
	bundles []bundle
}

// Bundle adds an encoded module bundle published under addr.
// Bundles are published in the order added.
func (b *Builder) Bundle(addr move.Address, code []byte) *Builder {
	b.bundles = append(b.bundles, bundle{addr, code})
	return b
}

// Len returns the number of bundles.
func (b *Builder) Len() int {
	return len(b.bundles)
}

// ComputeID compute genesis ID by building against an empty store.
func (b *Builder) ComputeID(engine vm.Engine) (ID, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return ID{}, err
	}
	defer db.Close()
	return b.Build(engine, db)
}

// Build publishes every bundle unmetered and commits the result to store.
// If any bundle fails, a *Error is returned and store is left untouched.
func (b *Builder) Build(engine vm.Engine, store kv.GetPutter) (ID, error) {
	ov := newOverlay(store)
	rt := runtime.New(engine, ov, bridge.Unavailable{})

	for i, bdl := range b.bundles {
		// each bundle stages on its own level
		depth := ov.checkpoint()
		out := rt.PublishModuleBundle(bdl.code, bdl.addr, gas.Unmetered())
		if !out.Succeeded() {
			before := ov.Len()
			ov.revert(depth)
			metricStagedKeys().Set(int64(ov.Len()))
			logger.Warn("genesis bundle failed", "index", i, "addr", bdl.addr, "status", out.Status, "msg", out.Message,
				"discarded", before-ov.Len())
			return ID{}, &Error{i, bdl.addr, out}
		}
		metricStagedKeys().Set(int64(ov.Len()))
		logger.Debug("genesis bundle staged", "index", i, "addr", bdl.addr, "staged", ov.Len())
	}

	id, err := computeID(ov)
	if err != nil {
		return ID{}, err
	}
	if err := ov.commit(); err != nil {
		return ID{}, errors.Wrap(err, "commit genesis")
	}
	logger.Info("genesis committed", "id", id, "bundles", len(b.bundles), "keys", ov.Len())
	return id, nil
}

func computeID(ov *overlay) (id ID, err error) {
	hasher, _ := blake2b.New256(nil)
	err = ov.journal(func(key []byte, s staged) error {
		var buf [binary.MaxVarintLen64]byte
		hasher.Write(buf[:binary.PutUvarint(buf[:], uint64(len(key)))])
		hasher.Write(key)
		if s.deleted {
			hasher.Write([]byte{0})
			return nil
		}
		hasher.Write([]byte{1})
		hasher.Write(buf[:binary.PutUvarint(buf[:], uint64(len(s.value)))])
		hasher.Write(s.value)
		return nil
	})
	hasher.Sum(id[:0])
	return
}
