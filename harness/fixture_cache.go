// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package harness

import (
	"github.com/syndtr/goleveldb/leveldb"

	"coinjecture.dev/consensus/chainhash"
	"coinjecture.dev/consensus/problem"
)

// FixtureCache memoizes reveal-verification outcomes on disk so repeated
// conformance runs over the same fixture set skip redundant work. It holds
// no consensus state — every entry is rebuildable from scratch at any time
// by re-running the fixtures, the same way the teacher's on-disk indexes
// are rebuildable from chain data.
type FixtureCache struct {
	db *leveldb.DB
}

// OpenFixtureCache opens (creating if absent) a goleveldb-backed cache at
// dir.
func OpenFixtureCache(dir string) (*FixtureCache, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, err
	}
	return &FixtureCache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *FixtureCache) Close() error {
	return c.db.Close()
}

func fixtureKey(p *problem.Problem, s *problem.Solution, epochSalt chainhash.Hash) ([]byte, error) {
	pHash, err := p.Hash()
	if err != nil {
		return nil, err
	}
	sHash, err := s.Hash()
	if err != nil {
		return nil, err
	}
	key := make([]byte, 0, 3*chainhash.HashSize)
	key = append(key, pHash.Bytes()...)
	key = append(key, sHash.Bytes()...)
	key = append(key, epochSalt.Bytes()...)
	return key, nil
}

// Lookup returns a previously stored verification outcome for the
// (problem, solution, epochSalt) triple, if any. ok reports whether an
// entry was found.
func (c *FixtureCache) Lookup(p *problem.Problem, s *problem.Solution, epochSalt chainhash.Hash) (got bool, ok bool, err error) {
	key, err := fixtureKey(p, s, epochSalt)
	if err != nil {
		return false, false, nil
	}
	val, err := c.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return false, false, nil
	}
	if err != nil {
		return false, false, nil
	}
	if len(val) != 1 {
		return false, false, nil
	}
	// Store writes 1 for verified=false and 2 for verified=true (errored
	// outcomes are never stored); any other value is treated as a miss.
	switch val[0] {
	case 2:
		return true, true, nil
	case 1:
		return false, true, nil
	default:
		return false, false, nil
	}
}

// Store records the outcome of verifying (problem, solution, epochSalt).
// Errored outcomes are not cached — a transient error (e.g. a tightened
// VerifyBudget on a later run) should not be memoized as permanent.
func (c *FixtureCache) Store(p *problem.Problem, s *problem.Solution, epochSalt chainhash.Hash, got bool, verifyErr error) {
	if verifyErr != nil {
		return
	}
	key, err := fixtureKey(p, s, epochSalt)
	if err != nil {
		return
	}
	val := byte(1)
	if got {
		val = 2
	}
	_ = c.db.Put(key, []byte{val}, nil)
}
