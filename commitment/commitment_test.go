// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package commitment

import (
	"testing"

	"coinjecture.dev/consensus/chainhash"
	"coinjecture.dev/consensus/problem"
)

func TestCreateAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	p := &problem.Problem{Kind: problem.KindSubsetSum, SubsetSum: &problem.SubsetSumProblem{
		Numbers: []int64{1, 2, 3, 4, 5}, Target: 9,
	}}
	s := &problem.Solution{Kind: problem.KindSubsetSum, SubsetSumIndices: []uint32{1, 2, 3}}
	epochSalt := chainhash.Sum256([]byte("parent_block_hash"))

	c, err := Create(p, s, epochSalt)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := Verify(c, p, s, epochSalt)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected commitment to verify against the same inputs")
	}
}

func TestVerifyRejectsWrongSolution(t *testing.T) {
	t.Parallel()

	p := &problem.Problem{Kind: problem.KindSubsetSum, SubsetSum: &problem.SubsetSumProblem{
		Numbers: []int64{1, 2, 3, 4, 5}, Target: 9,
	}}
	s := &problem.Solution{Kind: problem.KindSubsetSum, SubsetSumIndices: []uint32{1, 2, 3}}
	wrong := &problem.Solution{Kind: problem.KindSubsetSum, SubsetSumIndices: []uint32{0, 1}}
	epochSalt := chainhash.Sum256([]byte("parent_block_hash"))

	c, err := Create(p, s, epochSalt)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := Verify(c, p, wrong, epochSalt)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("expected commitment to reject a mismatched solution")
	}
}

func TestVerifyRejectsDifferentEpochSalt(t *testing.T) {
	t.Parallel()

	p := &problem.Problem{Kind: problem.KindSubsetSum, SubsetSum: &problem.SubsetSumProblem{
		Numbers: []int64{5, 10, 15, 20}, Target: 25,
	}}
	s := &problem.Solution{Kind: problem.KindSubsetSum, SubsetSumIndices: []uint32{0, 3}}

	c, err := Create(p, s, chainhash.Sum256([]byte("epoch_salt_a")))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := Verify(c, p, s, chainhash.Sum256([]byte("epoch_salt_b")))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("expected commitment bound to one epoch salt to reject another")
	}
}

func TestRevealVerifySucceedsForValidSolution(t *testing.T) {
	t.Parallel()

	p := &problem.Problem{Kind: problem.KindSubsetSum, SubsetSum: &problem.SubsetSumProblem{
		Numbers: []int64{5, 10, 15, 20}, Target: 25,
	}}
	s := &problem.Solution{Kind: problem.KindSubsetSum, SubsetSumIndices: []uint32{0, 3}}
	epochSalt := chainhash.Sum256([]byte("epoch_salt"))

	c, err := Create(p, s, epochSalt)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	reveal := &Reveal{Problem: p, Solution: s, Commitment: c}
	ok, err := reveal.Verify(epochSalt, problem.DefaultVerifyBudget)
	if err != nil {
		t.Fatalf("Reveal.Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected reveal to verify")
	}
}

func TestRevealVerifyFailsWhenSolutionDoesNotSolveProblem(t *testing.T) {
	t.Parallel()

	p := &problem.Problem{Kind: problem.KindSubsetSum, SubsetSum: &problem.SubsetSumProblem{
		Numbers: []int64{1, 2, 3}, Target: 100,
	}}
	s := &problem.Solution{Kind: problem.KindSubsetSum, SubsetSumIndices: []uint32{0, 1, 2}}
	epochSalt := chainhash.Sum256([]byte("salt"))

	c, err := Create(p, s, epochSalt)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	reveal := &Reveal{Problem: p, Solution: s, Commitment: c}
	ok, err := reveal.Verify(epochSalt, problem.DefaultVerifyBudget)
	if err != nil {
		t.Fatalf("Reveal.Verify: %v", err)
	}
	if ok {
		t.Fatalf("expected reveal verification to fail when solution does not solve problem")
	}

	if err := reveal.MustMatchCommitment(epochSalt, problem.DefaultVerifyBudget); err == nil {
		t.Fatalf("expected MustMatchCommitment to return CommitmentMismatch")
	}
}
