// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bcs_test

import (
	"bytes"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"

	"github.com/vechain/mvm/bcs"
)

type fuzzRecord struct {
	Flag   bool
	Small  uint8
	Number uint64
	Lo, Hi uint64
	Data   []byte
	Name   string
}

func (r *fuzzRecord) encode() []byte {
	enc := bcs.NewEncoder()
	enc.Bool(r.Flag)
	enc.U8(r.Small)
	enc.U64(r.Number)
	enc.U128(&uint256.Int{r.Lo, r.Hi, 0, 0})
	enc.WriteBytes(r.Data)
	enc.WriteString(r.Name)
	return enc.Bytes()
}

func decodeRecord(data []byte) (*fuzzRecord, error) {
	var (
		r   fuzzRecord
		err error
	)
	dec := bcs.NewDecoder(data)
	if r.Flag, err = dec.Bool(); err != nil {
		return nil, err
	}
	if r.Small, err = dec.U8(); err != nil {
		return nil, err
	}
	if r.Number, err = dec.U64(); err != nil {
		return nil, err
	}
	v, err := dec.U128()
	if err != nil {
		return nil, err
	}
	r.Lo, r.Hi = v[0], v[1]
	if r.Data, err = dec.ReadBytes(); err != nil {
		return nil, err
	}
	if r.Name, err = dec.ReadString(); err != nil {
		return nil, err
	}
	return &r, dec.Finish()
}

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte{0})
	f.Add([]byte("some seed input of reasonable length"))
	f.Fuzz(func(t *testing.T, seed []byte) {
		var r fuzzRecord
		fuzz.NewFromGoFuzz(seed).NilChance(0).Fuzz(&r)

		got, err := decodeRecord(r.encode())
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !bytes.Equal(got.encode(), r.encode()) {
			t.Fatalf("round trip mismatch: %+v != %+v", got, r)
		}
	})
}

func FuzzDecoding(f *testing.F) {
	f.Add([]byte{1, 2, 0, 0, 0, 0, 0, 0, 0, 0})
	f.Add([]byte{0x80, 0x80, 0x00})
	f.Fuzz(func(t *testing.T, data []byte) {
		r, err := decodeRecord(data)
		if err != nil {
			return
		}
		// canonical input re-encodes to itself
		if !bytes.Equal(r.encode(), data) {
			t.Fatalf("re-encoding differs for %x", data)
		}
	})
}
