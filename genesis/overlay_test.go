// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mvm/lvldb"
)

func TestOverlay(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Put([]byte("a"), []byte("1")))
	require.NoError(t, db.Put([]byte("b"), []byte("2")))

	ov := newOverlay(db)
	v, err := ov.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	require.NoError(t, ov.Put([]byte("a"), []byte("3")))
	require.NoError(t, ov.Delete([]byte("b")))
	require.NoError(t, ov.Put([]byte("c"), []byte("4")))

	v, _ = ov.Get([]byte("a"))
	assert.Equal(t, []byte("3"), v)
	_, err = ov.Get([]byte("b"))
	assert.True(t, ov.IsNotFound(err))
	has, _ := ov.Has([]byte("b"))
	assert.False(t, has)
	_, err = ov.Get([]byte("z"))
	assert.True(t, ov.IsNotFound(err))
	assert.Equal(t, 3, ov.Len())

	// nothing reaches the store before commit
	v, _ = db.Get([]byte("a"))
	assert.Equal(t, []byte("1"), v)
	has, _ = db.Has([]byte("c"))
	assert.False(t, has)

	require.NoError(t, ov.commit())
	v, _ = db.Get([]byte("a"))
	assert.Equal(t, []byte("3"), v)
	has, _ = db.Has([]byte("b"))
	assert.False(t, has)
	v, _ = db.Get([]byte("c"))
	assert.Equal(t, []byte("4"), v)
}

func TestOverlayRevert(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Put([]byte("a"), []byte("1")))

	ov := newOverlay(db)
	first := ov.checkpoint()
	require.NoError(t, ov.Put([]byte("b"), []byte("2")))

	second := ov.checkpoint()
	assert.Equal(t, first+1, second)
	require.NoError(t, ov.Put([]byte("a"), []byte("3")))
	require.NoError(t, ov.Delete([]byte("b")))
	require.NoError(t, ov.Put([]byte("c"), []byte("4")))
	assert.Equal(t, 3, ov.Len())

	ov.revert(second)
	assert.Equal(t, 1, ov.Len())
	v, err := ov.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
	v, err = ov.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
	has, _ := ov.Has([]byte("c"))
	assert.False(t, has)

	// only the surviving level reaches the store
	require.NoError(t, ov.commit())
	v, _ = db.Get([]byte("b"))
	assert.Equal(t, []byte("2"), v)
	has, _ = db.Has([]byte("c"))
	assert.False(t, has)
}
