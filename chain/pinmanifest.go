// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"coinjecture.dev/consensus/chainhash"
	"coinjecture.dev/consensus/gcs"
)

// pinFilterP is the GCS false-positive parameter: collision probability
// 1/2^P. This mirrors the P the teacher's compact block filters use.
const pinFilterP = 19

// PinManifestKeySize is the size of the SipHash key a PinManifest is built
// and queried under.
const PinManifestKeySize = gcs.KeySize

// PinManifest is a compact, probabilistic membership filter over the
// content IDs (Cids) a block pins for off-chain retrieval — the same
// Golomb-coded-set structure the teacher uses for compact block filters
// (gcs.Filter), repurposed here from output scripts to content addresses.
// A querier can cheaply check "might this block pin Cid X?" without
// fetching the block body; a positive still requires fetching and
// confirming the body, same as any Bloom-style filter.
type PinManifest struct {
	filter *gcs.Filter
	key    [PinManifestKeySize]byte
}

// BuildPinManifest constructs a PinManifest over cids under key. The same
// key must be supplied to MightPin for queries to make sense.
func BuildPinManifest(key [PinManifestKeySize]byte, cids []chainhash.Hash) (*PinManifest, error) {
	data := make([][]byte, len(cids))
	for i, c := range cids {
		data[i] = c.Bytes()
	}
	filter, err := gcs.NewFilter(pinFilterP, key, data)
	if err != nil {
		return nil, err
	}
	return &PinManifest{filter: filter, key: key}, nil
}

// MightPin reports whether cid may be a member of the manifest. False
// positives occur at rate 1/2^P; false negatives never occur.
func (m *PinManifest) MightPin(cid chainhash.Hash) bool {
	return m.filter.Match(m.key, cid.Bytes())
}

// Bytes returns the serialized filter body (without N or the key),
// suitable for carrying inside a block.
func (m *PinManifest) Bytes() []byte {
	return m.filter.Bytes()
}

// LoadPinManifest reconstructs a PinManifest from a serialized filter body
// produced by Bytes, given the element count n and key it was built with.
func LoadPinManifest(key [PinManifestKeySize]byte, n uint32, data []byte) (*PinManifest, error) {
	filter, err := gcs.FromBytes(n, pinFilterP, data)
	if err != nil {
		return nil, err
	}
	return &PinManifest{filter: filter, key: key}, nil
}
