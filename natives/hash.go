// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package natives

import (
	"crypto/sha256"
	"crypto/sha512"

	"github.com/dchest/siphash"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
	"golang.org/x/crypto/sha3"

	"github.com/vechain/mvm/bcs"
	"github.com/vechain/mvm/gas"
)

type digestFunc func([]byte) []byte

// std::hash
var stdDigests = map[string]digestFunc{
	"sha2_256": func(b []byte) []byte {
		h := sha256.Sum256(b)
		return h[:]
	},
	"sha3_256": func(b []byte) []byte {
		h := sha3.Sum256(b)
		return h[:]
	},
}

// std::substrate_hash, sip_hash excluded
var substrateDigests = map[string]digestFunc{
	"blake2b_256": func(b []byte) []byte {
		h := blake2b.Sum256(b)
		return h[:]
	},
	"keccak256": func(b []byte) []byte { return crypto.Keccak256(b) },
	"sha2_512": func(b []byte) []byte {
		h := sha512.Sum512(b)
		return h[:]
	},
	"sha3_512": func(b []byte) []byte {
		h := sha3.Sum512(b)
		return h[:]
	},
	"ripemd160": func(b []byte) []byte {
		h := ripemd160.New()
		h.Write(b)
		return h.Sum(nil)
	},
}

// hashNative builds a native taking one vector<u8>. It charges base plus
// rate per input byte, then encodes the result of fn.
func hashNative(name string, fn func([]byte) []byte) Func {
	return func(m *gas.Meter, args [][]byte) ([][]byte, error) {
		if err := checkArgs(name, args, 1); err != nil {
			return nil, err
		}
		input, err := decodeBytes(name, args[0])
		if err != nil {
			return nil, err
		}
		if err := m.ChargeNative(name, uint64(len(input))); err != nil {
			return nil, err
		}
		return [][]byte{fn(input)}, nil
	}
}

func digestSet(module string, digests map[string]digestFunc) Set {
	set := make(Set, len(digests))
	for fn, digest := range digests {
		name := module + "::" + fn
		set[name] = hashNative(name, func(b []byte) []byte { return encodeBytes(digest(b)) })
	}
	return set
}

// Hash returns the std::hash natives. Each returns the digest as vector<u8>.
func Hash() Set {
	return digestSet("hash", stdDigests)
}

// SubstrateHash returns the std::substrate_hash natives. sip_hash returns
// SipHash-2-4 with a zero key as u64, the others a vector<u8> digest.
func SubstrateHash() Set {
	set := digestSet("substrate_hash", substrateDigests)
	set["substrate_hash::sip_hash"] = hashNative("substrate_hash::sip_hash", func(b []byte) []byte {
		enc := bcs.NewEncoder()
		enc.U64(siphash.Hash(0, 0, b))
		return enc.Bytes()
	})
	return set
}
