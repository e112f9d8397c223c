// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gas

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// InternalMultiplier scales external gas units into internal units, so that
// table costs below one external unit can be expressed.
const InternalMultiplier = 1000

// MaxAmount is the largest budget expressible in external units.
const MaxAmount = math.MaxUint64 / InternalMultiplier

// ErrBudgetTooBig is returned for budgets above MaxAmount.
var ErrBudgetTooBig = errors.New("gas budget too big")

type strategyKind uint8

const (
	kindMetered strategyKind = iota
	kindDryRun
	kindUnmetered
)

// Strategy selects how a call is metered.
type Strategy struct {
	kind   strategyKind
	budget uint64
}

// NewMetered bounds execution by budget external units.
func NewMetered(budget uint64) (Strategy, error) {
	if budget > MaxAmount {
		return Strategy{}, errors.Wrapf(ErrBudgetTooBig, "%d > %d", budget, uint64(MaxAmount))
	}
	return Strategy{kindMetered, budget}, nil
}

// Metered is like NewMetered but panics if budget is above MaxAmount.
func Metered(budget uint64) Strategy {
	s, err := NewMetered(budget)
	if err != nil {
		panic(err)
	}
	return s
}

// DryRun meters with the maximum budget. Effects of a dry run are never persisted.
func DryRun() Strategy {
	return Strategy{kindDryRun, MaxAmount}
}

// Unmetered disables accounting. Only trusted initialization paths use it.
func Unmetered() Strategy {
	return Strategy{kind: kindUnmetered}
}

// IsDryRun returns whether effects must be discarded.
func (s Strategy) IsDryRun() bool { return s.kind == kindDryRun }

// IsUnmetered returns whether no accounting happens.
func (s Strategy) IsUnmetered() bool { return s.kind == kindUnmetered }

// Budget returns the budget in external units, 0 for unmetered.
func (s Strategy) Budget() uint64 { return s.budget }

func (s Strategy) String() string {
	switch s.kind {
	case kindDryRun:
		return "dry-run"
	case kindUnmetered:
		return "unmetered"
	}
	return fmt.Sprintf("metered(%d)", s.budget)
}
