// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vechain/mvm/move"
)

// Error is a structured failure reported by the engine.
type Error struct {
	Status  move.StatusCode
	Message string
}

// NewError creates an engine error.
func NewError(status move.StatusCode, format string, args ...any) *Error {
	return &Error{status, fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("vm: %v", e.Status)
	}
	return fmt.Sprintf("vm: %v: %s", e.Status, e.Message)
}

// StatusOf extracts the engine status carried by err, if any.
func StatusOf(err error) (move.StatusCode, string, bool) {
	var vmErr *Error
	if errors.As(err, &vmErr) {
		return vmErr.Status, vmErr.Message, true
	}
	return 0, "", false
}
