// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gas

import (
	"fmt"
	"math/bits"

	"github.com/pkg/errors"
)

var (
	ErrOutOfGas           = errors.New("out of gas")
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrUnknownNative      = errors.New("unknown native function")
)

// Meter tracks the budget of one call. It is not safe for concurrent use.
//
// All charges are in internal units. A charge either succeeds in full or fails
// with ErrOutOfGas leaving the balance untouched.
type Meter struct {
	schedule  *Schedule
	strategy  Strategy
	initial   uint64
	remaining uint64

	instrOps, nativeOps, publishedBytes uint64
	instrGas, nativeGas, storageGas     uint64
}

// NewMeter creates a meter for one call.
func NewMeter(schedule *Schedule, strategy Strategy) *Meter {
	// Metered and DryRun budgets never exceed MaxAmount, so this never overflows.
	initial := strategy.Budget() * InternalMultiplier
	return &Meter{
		schedule:  schedule,
		strategy:  strategy,
		initial:   initial,
		remaining: initial,
	}
}

// Strategy returns the strategy the meter was created with.
func (m *Meter) Strategy() Strategy {
	return m.strategy
}

// Schedule returns the cost table.
func (m *Meter) Schedule() *Schedule {
	return m.schedule
}

// linear computes base + rate*n, reporting overflow.
func linear(c Cost, n uint64) (uint64, bool) {
	hi, lo := bits.Mul64(c.Rate, n)
	if hi != 0 {
		return 0, false
	}
	sum, carry := bits.Add64(c.Base, lo, 0)
	return sum, carry == 0
}

func (m *Meter) deduct(amount uint64, ok bool) error {
	if m.strategy.IsUnmetered() {
		return nil
	}
	if !ok || amount > m.remaining {
		return errors.WithStack(ErrOutOfGas)
	}
	m.remaining -= amount
	return nil
}

// ChargeInstr charges one instruction. Size is the abstract size of the
// operands; sizes below one count as one.
func (m *Meter) ChargeInstr(op Opcode, size uint64) error {
	cost, found := m.schedule.Instruction(op)
	if !found {
		return errors.Wrapf(ErrUnknownInstruction, "%v", op)
	}
	amount, ok := linear(cost, max(size, 1))
	if err := m.deduct(amount, ok); err != nil {
		return err
	}
	m.instrOps++
	m.instrGas += amount
	return nil
}

// ChargeNative charges a native function call named "module::function".
func (m *Meter) ChargeNative(name string, size uint64) error {
	cost, found := m.schedule.Native(name)
	if !found {
		return errors.Wrap(ErrUnknownNative, name)
	}
	amount, ok := linear(cost, size)
	if err := m.deduct(amount, ok); err != nil {
		return err
	}
	m.nativeOps++
	m.nativeGas += amount
	return nil
}

// ChargePublish charges storing numBytes of published code.
func (m *Meter) ChargePublish(numBytes uint64) error {
	amount, ok := linear(Cost{Rate: m.schedule.PerPublishedByte()}, numBytes)
	if err := m.deduct(amount, ok); err != nil {
		return err
	}
	m.publishedBytes += numBytes
	m.storageGas += amount
	return nil
}

// Remaining returns the balance in external units, rounded down.
func (m *Meter) Remaining() uint64 {
	return m.remaining / InternalMultiplier
}

// Used returns consumed gas in external units, rounded up. It is 0 for
// unmetered calls.
func (m *Meter) Used() uint64 {
	if m.strategy.IsUnmetered() {
		return 0
	}
	delta := m.initial - m.remaining
	return delta/InternalMultiplier + min(delta%InternalMultiplier, 1)
}

// Breakdown summarizes charges per category, in internal units.
func (m *Meter) Breakdown() string {
	return fmt.Sprintf(
		"INSTR: %d ops (%d gas) | NATIVE: %d ops (%d gas) | STORAGE: %d bytes (%d gas) | TOTAL: %d gas",
		m.instrOps,
		m.instrGas,
		m.nativeOps,
		m.nativeGas,
		m.publishedBytes,
		m.storageGas,
		m.instrGas+m.nativeGas+m.storageGas,
	)
}
