// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stackedmap provides a map with snapshot/revert levels over a
// read-only source.
package stackedmap

// StackedMap maintains maps in a stack.
// Each map inherits key/value of map that is at lower level.
type StackedMap[K comparable, V any] struct {
	src       Source[K, V]
	levels    stack[*level[K, V]]
	revisions map[K]*stack[int]
}

type level[K comparable, V any] struct {
	kvs     map[K]V
	journal []JournalEntry[K, V]
}

// JournalEntry is one recorded Put.
type JournalEntry[K comparable, V any] struct {
	Key   K
	Value V
}

// Source reads keys missing from every level.
type Source[K comparable, V any] func(key K) (value V, exist bool, err error)

// New create an instance of StackedMap over src.
// The returned map has one level pushed.
func New[K comparable, V any](src func(key K) (V, bool, error)) *StackedMap[K, V] {
	sm := &StackedMap[K, V]{
		src:       src,
		revisions: make(map[K]*stack[int]),
	}
	sm.Push()
	return sm
}

// Depth returns depth of stack.
func (sm *StackedMap[K, V]) Depth() int {
	return len(sm.levels)
}

// Push pushes a new map on stack.
// It returns stack depth before push.
func (sm *StackedMap[K, V]) Push() int {
	sm.levels.push(&level[K, V]{kvs: make(map[K]V)})
	return len(sm.levels) - 1
}

// Pop reverts all Put operations since the last Push.
func (sm *StackedMap[K, V]) Pop() {
	for key := range sm.levels.top().kvs {
		revs := sm.revisions[key]
		revs.pop()
		if len(*revs) == 0 {
			delete(sm.revisions, key)
		}
	}
	sm.levels.pop()
}

// PopTo pops levels until the depth is reached.
func (sm *StackedMap[K, V]) PopTo(depth int) {
	for len(sm.levels) > depth {
		sm.Pop()
	}
}

// Get returns the value of key from the topmost level holding it, falling
// back to the source.
func (sm *StackedMap[K, V]) Get(key K) (V, bool, error) {
	if revs, ok := sm.revisions[key]; ok {
		if v, ok := sm.levels[revs.top()].kvs[key]; ok {
			return v, true, nil
		}
	}
	return sm.src(key)
}

// Put sets key at the top level.
// It will panic if stack is empty.
func (sm *StackedMap[K, V]) Put(key K, value V) {
	top := sm.levels.top()
	top.kvs[key] = value
	top.journal = append(top.journal, JournalEntry[K, V]{key, value})

	rev := len(sm.levels) - 1
	if revs, ok := sm.revisions[key]; ok {
		if revs.top() != rev {
			revs.push(rev)
		}
	} else {
		sm.revisions[key] = &stack[int]{rev}
	}
}

// Len returns the number of distinct keys put in all levels.
func (sm *StackedMap[K, V]) Len() int {
	return len(sm.revisions)
}

// Journal traverses all Put operations in order.
// The traversal aborts if cb returns false.
func (sm *StackedMap[K, V]) Journal(cb func(key K, value V) bool) {
	for _, lvl := range sm.levels {
		for _, entry := range lvl.journal {
			if !cb(entry.Key, entry.Value) {
				return
			}
		}
	}
}

type stack[T any] []T

func (s *stack[T]) pop() {
	*s = (*s)[:len(*s)-1]
}

func (s *stack[T]) push(v T) {
	*s = append(*s, v)
}

func (s stack[T]) top() T {
	return s[len(s)-1]
}
