// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package commitment implements the commit-reveal mining protocol (spec
// §4.3): a miner binds (problem, solution, epoch_salt) to a fixed-size
// digest before spending effort on proof-of-work, so a solution cannot be
// swapped in after the fact.
package commitment

import (
	"coinjecture.dev/consensus/chainhash"
	"coinjecture.dev/consensus/codec"
	cerrors "coinjecture.dev/consensus/errors"
	"coinjecture.dev/consensus/problem"
)

// Commitment binds a problem and solution to a digest without revealing
// the solution. It is immutable once created.
type Commitment struct {
	Hash        chainhash.Hash
	ProblemHash chainhash.Hash
}

// Create computes hash = H(problem_hash ‖ epoch_salt ‖ H(canonical_encode(solution))),
// where problem_hash = H(canonical_encode(problem)).
func Create(p *problem.Problem, s *problem.Solution, epochSalt chainhash.Hash) (Commitment, error) {
	problemHash, err := p.Hash()
	if err != nil {
		return Commitment{}, err
	}
	solutionHash, err := s.Hash()
	if err != nil {
		return Commitment{}, err
	}

	w := codec.NewWriter()
	w.WriteHash(problemHash)
	w.WriteHash(epochSalt)
	w.WriteHash(solutionHash)

	return Commitment{
		Hash:        chainhash.Sum256(w.Bytes()),
		ProblemHash: problemHash,
	}, nil
}

// Verify re-derives the commitment from problem, solution, and epochSalt
// and compares both the top-level hash and the problem hash.
func Verify(c Commitment, p *problem.Problem, s *problem.Solution, epochSalt chainhash.Hash) (bool, error) {
	expected, err := Create(p, s, epochSalt)
	if err != nil {
		return false, err
	}
	return c.Hash == expected.Hash && c.ProblemHash == expected.ProblemHash, nil
}

// Reveal is the object a miner broadcasts once a valid header nonce is
// found: the problem and solution the block's commitment was bound to.
type Reveal struct {
	Problem    *problem.Problem
	Solution   *problem.Solution
	Commitment Commitment
}

// Verify checks that the reveal's commitment re-derives under epochSalt
// and that the solution verifies against the problem, per spec §4.3.
func (r *Reveal) Verify(epochSalt chainhash.Hash, budget problem.VerifyBudget) (bool, error) {
	committed, err := Verify(r.Commitment, r.Problem, r.Solution, epochSalt)
	if err != nil {
		return false, err
	}
	if !committed {
		return false, nil
	}
	return problem.Verify(r.Solution, r.Problem, budget)
}

// MustMatchCommitment returns a CommitmentMismatch error when the reveal
// does not re-derive its carried commitment or its solution does not
// verify against its problem, for callers (block
// acceptance) that want a structured error rather than a bool.
func (r *Reveal) MustMatchCommitment(epochSalt chainhash.Hash, budget problem.VerifyBudget) error {
	ok, err := r.Verify(epochSalt, budget)
	if err != nil {
		return err
	}
	if !ok {
		return cerrors.CommitmentMismatch("reveal does not match carried commitment or solution is invalid")
	}
	return nil
}
