// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/mvm/stackedmap"
)

type getResult struct {
	v     string
	found bool
}

func TestStackedMap(t *testing.T) {
	src := map[string]string{"foo": "bar"}
	sm := stackedmap.New(func(key string) (string, bool, error) {
		v, ok := src[key]
		return v, ok, nil
	})

	get := func(key string) getResult {
		v, ok, err := sm.Get(key)
		assert.NoError(t, err)
		return getResult{v, ok}
	}

	tests := []struct {
		f        func()
		depth    int
		putKey   string
		putValue string
		getKey   string
		want     getResult
	}{
		{func() {}, 1, "", "", "foo", getResult{"bar", true}},
		{func() { sm.Push() }, 2, "foo", "baz", "foo", getResult{"baz", true}},
		{func() {}, 2, "foo", "baz1", "foo", getResult{"baz1", true}},
		{func() { sm.Push() }, 3, "foo", "qux", "foo", getResult{"qux", true}},
		{func() { sm.Pop() }, 2, "", "", "foo", getResult{"baz1", true}},
		{func() { sm.Pop() }, 1, "", "", "foo", getResult{"bar", true}},
		{func() {}, 1, "", "", "nope", getResult{"", false}},

		{func() { sm.Push(); sm.Push() }, 3, "", "", "", getResult{}},
		{func() { sm.PopTo(0) }, 0, "", "", "", getResult{}},
	}

	for _, test := range tests {
		test.f()
		assert.Equal(t, test.depth, sm.Depth())
		if test.putKey != "" {
			sm.Put(test.putKey, test.putValue)
		}
		if test.getKey != "" {
			assert.Equal(t, test.want, get(test.getKey))
		}
	}
	assert.Zero(t, sm.Len())
}

func TestStackedMapPuts(t *testing.T) {
	sm := stackedmap.New(func(int) ([]byte, bool, error) {
		return nil, false, nil
	})

	kvs := []struct {
		k int
		v []byte
	}{
		{1, []byte{1}},
		{1, []byte{1}},
		{2, nil},
		{3, []byte{3}},
	}

	for _, kv := range kvs {
		sm.Push()
		sm.Put(kv.k, kv.v)
	}
	assert.Equal(t, 3, sm.Len())

	i := 0
	sm.Journal(func(k int, v []byte) bool {
		assert.Equal(t, kvs[i].k, k)
		assert.Equal(t, kvs[i].v, v)
		i++
		return true
	})
	assert.Equal(t, len(kvs), i)

	i = 0
	sm.Journal(func(int, []byte) bool {
		i++
		return false
	})
	assert.Equal(t, 1, i, "Journal traverse should abort")
}

func TestSourceError(t *testing.T) {
	boom := errors.New("boom")
	sm := stackedmap.New(func(string) (int, bool, error) {
		return 0, false, boom
	})
	_, _, err := sm.Get("a")
	assert.ErrorIs(t, err, boom)

	sm.Put("a", 1)
	v, ok, err := sm.Get("a")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
