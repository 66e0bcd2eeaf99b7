// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides the opaque 256-bit digest type used
// throughout the consensus core and the single hash function permitted to
// produce one.
//
// The algorithm is fixed at BLAKE2b-256 (golang.org/x/crypto/blake2b).
// Switching it is a hard fork — every node must agree bit-for-bit.
package chainhash

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// HashSize is the size of the hash, in bytes.
const HashSize = 32

// Hash is a 256-bit opaque digest of a byte string.
type Hash [HashSize]byte

// ZeroHash is the Hash value of all zero bytes.
var ZeroHash = Hash{}

// Sum256 computes the canonical consensus hash of data.
func Sum256(data []byte) Hash {
	return Hash(blake2b.Sum256(data))
}

// String returns the Hash as the lowercase hex encoding of bytes.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Bytes returns a copy of the raw 32 bytes of the hash.
func (h Hash) Bytes() []byte {
	out := make([]byte, HashSize)
	copy(out, h[:])
	return out
}

// IsZero reports whether h is the all-zero hash.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// NewHashFromStr creates a Hash from a hex string. The string must decode
// to exactly HashSize bytes.
func NewHashFromStr(s string) (Hash, error) {
	var h Hash
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("chainhash: malformed hex: %w", err)
	}
	if len(decoded) != HashSize {
		return h, fmt.Errorf("chainhash: invalid hash length %d, want %d", len(decoded), HashSize)
	}
	copy(h[:], decoded)
	return h, nil
}
