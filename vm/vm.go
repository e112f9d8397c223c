// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package vm defines the contract between the storage backend and the
// bytecode engine. The engine itself lives outside this module.
package vm

import (
	"github.com/vechain/mvm/gas"
	"github.com/vechain/mvm/move"
	"github.com/vechain/mvm/natives"
)

// Resolver gives the engine read access to published state.
// Both lookups return (nil, nil) when the entry does not exist.
type Resolver interface {
	GetModule(id move.ModuleID) ([]byte, error)
	GetResource(addr move.Address, tag move.StructTag) ([]byte, error)
}

// Context binds a session to its collaborators.
type Context struct {
	Resolver Resolver
	Meter    *gas.Meter
	Natives  natives.Set
}

// Event is emitted by executing code.
type Event struct {
	Type move.TypeTag
	Data []byte
}

// Session runs exactly one operation, then Finish collects its effects.
// Sessions are single use.
type Session interface {
	PublishModule(code []byte, sender move.Address) error
	ExecuteScript(code []byte, typeArgs []move.TypeTag, args [][]byte) error
	ExecuteFunction(module move.ModuleID, function move.Identifier, typeArgs []move.TypeTag, args [][]byte) error

	// Finish returns the changes made by the session. A session that failed
	// must not be finished.
	Finish() (*move.ChangeSet, []Event, error)
}

// Engine creates sessions.
type Engine interface {
	NewSession(ctx Context) Session
}
