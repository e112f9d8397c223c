// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package datagen generates random test values.
package datagen

import (
	"crypto/rand"
	mathrand "math/rand/v2"

	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"

	"github.com/vechain/mvm/move"
)

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}

func RandBytes(n int) []byte {
	b := make([]byte, n)
	rand.Read(b)
	return b
}

func RandAddress() (addr move.Address) {
	rand.Read(addr[:])
	return
}

// RandU128 returns a random amount of at most 128 bits.
func RandU128() *uint256.Int {
	var v [2]uint64
	fuzz.New().Fuzz(&v)
	return &uint256.Int{v[0], v[1], 0, 0}
}

const identChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_0123456789"

// RandIdentifier returns a valid identifier of 1 to 16 characters.
func RandIdentifier() move.Identifier {
	n := 1 + RandIntN(16)
	b := make([]byte, n)
	b[0] = identChars[RandIntN(52)]
	for i := 1; i < n; i++ {
		b[i] = identChars[RandIntN(len(identChars))]
	}
	return move.Identifier(b)
}

// RandStructTag returns a tag with up to two primitive type parameters.
func RandStructTag() move.StructTag {
	tag := move.StructTag{
		Address: RandAddress(),
		Module:  RandIdentifier(),
		Name:    RandIdentifier(),
	}
	for range RandIntN(3) {
		tag.TypeParams = append(tag.TypeParams, move.Primitive(move.TypeU64))
	}
	return tag
}
