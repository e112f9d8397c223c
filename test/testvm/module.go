// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testvm

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/vechain/mvm/move"
)

// Module builds a fake module binary of the form "name|dep,dep|payload".
func Module(name string, payload string, deps ...move.ModuleID) []byte {
	ids := make([]string, 0, len(deps))
	for _, d := range deps {
		ids = append(ids, d.String())
	}
	return []byte(name + "|" + strings.Join(ids, ",") + "|" + payload)
}

// ParseModule splits a fake module binary into its name and dependencies.
func ParseModule(code []byte) (move.Identifier, []move.ModuleID, error) {
	parts := strings.SplitN(string(code), "|", 3)
	if len(parts) != 3 {
		return "", nil, errors.New("not a module binary")
	}
	name, err := move.NewIdentifier(parts[0])
	if err != nil {
		return "", nil, err
	}
	if parts[1] == "" {
		return name, nil, nil
	}
	var deps []move.ModuleID
	for _, s := range strings.Split(parts[1], ",") {
		addr, mod, ok := strings.Cut(s, "::")
		if !ok {
			return "", nil, errors.Errorf("bad dependency %q", s)
		}
		a, err := move.ParseAddress(addr)
		if err != nil {
			return "", nil, err
		}
		m, err := move.NewIdentifier(mod)
		if err != nil {
			return "", nil, err
		}
		deps = append(deps, move.ModuleID{Address: a, Name: m})
	}
	return name, deps, nil
}
