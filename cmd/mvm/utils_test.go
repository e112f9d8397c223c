// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	v, err := parseAmount("1000")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), v.Uint64())

	v, err = parseAmount("0xff")
	require.NoError(t, err)
	assert.Equal(t, uint64(255), v.Uint64())

	_, err = parseAmount("ten")
	assert.Error(t, err)
}

func TestParseAddress(t *testing.T) {
	addr, err := parseAddress("0x1")
	require.NoError(t, err)
	assert.Equal(t, "0x1", addr.ShortString())

	_, err = parseAddress("1")
	assert.Error(t, err)
}

func TestNewLogHandler(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	h := newLogHandler(&buf, level, false)

	// non-terminal writers get JSON
	require.NoError(t, h.Handle(t.Context(), slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)))
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}
