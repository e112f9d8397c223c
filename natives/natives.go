// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package natives implements host functions callable from contract code.
// Arguments and results use the canonical binary encoding.
package natives

import (
	"maps"
	"slices"

	"github.com/pkg/errors"

	"github.com/vechain/mvm/bcs"
	"github.com/vechain/mvm/gas"
)

var (
	ErrUnknownNative = errors.New("unknown native function")
	ErrBadArguments  = errors.New("bad native arguments")
)

// Func is a native function. It charges its own cost on m.
type Func func(m *gas.Meter, args [][]byte) ([][]byte, error)

// Set maps "module::function" names to implementations.
type Set map[string]Func

// Merge returns a set holding the functions of s and other. Entries of
// other win on conflict.
func (s Set) Merge(other Set) Set {
	merged := maps.Clone(s)
	if merged == nil {
		merged = make(Set, len(other))
	}
	maps.Copy(merged, other)
	return merged
}

// Names returns the sorted function names.
func (s Set) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// Call invokes the named function.
func (s Set) Call(m *gas.Meter, name string, args [][]byte) ([][]byte, error) {
	fn, ok := s[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownNative, name)
	}
	return fn(m, args)
}

// Costs assigns cost to every function of s, for gas.Schedule.WithNatives.
func (s Set) Costs(cost gas.Cost) map[string]gas.Cost {
	costs := make(map[string]gas.Cost, len(s))
	for name := range s {
		costs[name] = cost
	}
	return costs
}

func checkArgs(name string, args [][]byte, n int) error {
	if len(args) != n {
		return errors.Wrapf(ErrBadArguments, "%s: want %d arguments, got %d", name, n, len(args))
	}
	return nil
}

// decodeBytes reads a vector<u8> argument.
func decodeBytes(name string, arg []byte) ([]byte, error) {
	dec := bcs.NewDecoder(arg)
	b, err := dec.ReadBytes()
	if err == nil {
		err = dec.Finish()
	}
	if err != nil {
		return nil, errors.Wrapf(ErrBadArguments, "%s: %v", name, err)
	}
	return b, nil
}

func encodeBytes(b []byte) []byte {
	enc := bcs.NewEncoder()
	enc.WriteBytes(b)
	return enc.Bytes()
}
