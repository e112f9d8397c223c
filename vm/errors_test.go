// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/vechain/mvm/move"
	"github.com/vechain/mvm/vm"
)

func TestStatusOf(t *testing.T) {
	err := errors.Wrap(vm.NewError(move.StatusLinkerError, "missing %v", "0x1::m"), "publish")

	status, msg, ok := vm.StatusOf(err)
	assert.True(t, ok)
	assert.Equal(t, move.StatusLinkerError, status)
	assert.Equal(t, "missing 0x1::m", msg)
	assert.Equal(t, "publish: vm: LINKER_ERROR: missing 0x1::m", err.Error())

	_, _, ok = vm.StatusOf(errors.New("plain"))
	assert.False(t, ok)
}
