// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2016-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"sync"

	"coinjecture.dev/consensus/address"
	"coinjecture.dev/consensus/chainhash"
	"golang.org/x/crypto/ed25519"
)

// sigCacheEntry is keyed by a transaction's hash. A cache hit still compares
// the signer and signature before being trusted, in case of a hash
// collision.
type sigCacheEntry struct {
	signer address.Address
	sig    [SignatureSize]byte
}

// SigCache is an Ed25519 signature-verification cache with a randomized
// eviction policy, adapted from this family of chains' ECDSA SigCache to
// the single-key-algorithm signature scheme spec §6 fixes. Only
// signatures that have already verified are added; a cache hit lets a
// caller skip re-running Verify for a transaction it has seen before
// (e.g. once in the mempool, again while validating the block that
// includes it).
type SigCache struct {
	mu         sync.RWMutex
	validSigs  map[chainhash.Hash]sigCacheEntry
	maxEntries uint
}

// NewSigCache creates a SigCache that holds at most maxEntries verified
// signatures.
func NewSigCache(maxEntries uint) *SigCache {
	return &SigCache{
		validSigs:  make(map[chainhash.Hash]sigCacheEntry, maxEntries),
		maxEntries: maxEntries,
	}
}

// Exists reports whether txHash's signature by signer has already been
// recorded as valid.
func (s *SigCache) Exists(txHash chainhash.Hash, signer address.Address, sig [SignatureSize]byte) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.validSigs[txHash]
	return ok && entry.signer == signer && entry.sig == sig
}

// Add records txHash's signature as valid. If the cache is full, a random
// entry is evicted — iteration order over a Go map is unspecified, and an
// adversary would need a hash preimage to target a specific victim entry,
// so this is no weaker than any other eviction choice here.
func (s *SigCache) Add(txHash chainhash.Hash, signer address.Address, sig [SignatureSize]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxEntries == 0 {
		return
	}
	if uint(len(s.validSigs)+1) > s.maxEntries {
		for k := range s.validSigs {
			delete(s.validSigs, k)
			break
		}
	}
	s.validSigs[txHash] = sigCacheEntry{signer: signer, sig: sig}
}

// VerifyWithCache behaves like (*Transaction).Verify but consults and
// populates cache, so repeated verification of the same transaction (once
// in the mempool, again during block validation) skips the Ed25519
// scalar-multiplication cost on a cache hit.
func (tx *Transaction) VerifyWithCache(pubKey ed25519.PublicKey, cache *SigCache) error {
	txHash, err := tx.Hash()
	if err != nil {
		return err
	}
	if cache != nil && cache.Exists(txHash, tx.From, tx.Signature) {
		return nil
	}
	if err := tx.Verify(pubKey); err != nil {
		return err
	}
	if cache != nil {
		cache.Add(txHash, tx.From, tx.Signature)
	}
	return nil
}
