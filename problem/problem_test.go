// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package problem

import (
	"testing"

	"coinjecture.dev/consensus/chainhash"
	cerrors "coinjecture.dev/consensus/errors"
)

func requireCode(t *testing.T, err error, code cerrors.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	ce, ok := err.(*cerrors.ConsensusError)
	if !ok {
		t.Fatalf("expected *cerrors.ConsensusError, got %T", err)
	}
	if ce.Code != code {
		t.Fatalf("expected code %s, got %s", code, ce.Code)
	}
}

func TestValidateSubsetSumBudget(t *testing.T) {
	t.Parallel()

	numbers := make([]int64, MaxSubsetSumNumbers+1)
	p := &Problem{Kind: KindSubsetSum, SubsetSum: &SubsetSumProblem{Numbers: numbers, Target: 1}}
	requireCode(t, p.Validate(), cerrors.ErrOutOfRange)
}

func TestValidateSATRejectsZeroLiteral(t *testing.T) {
	t.Parallel()

	p := &Problem{
		Kind: KindSAT,
		SAT: &SATProblem{
			Variables: 3,
			Clauses:   []Clause{{Literals: []int32{0, 2}}},
		},
	}
	requireCode(t, p.Validate(), cerrors.ErrInvalidParameter)
}

func TestValidateSATRejectsOutOfRangeLiteral(t *testing.T) {
	t.Parallel()

	p := &Problem{
		Kind: KindSAT,
		SAT: &SATProblem{
			Variables: 2,
			Clauses:   []Clause{{Literals: []int32{1, -5}}},
		},
	}
	requireCode(t, p.Validate(), cerrors.ErrInvalidParameter)
}

func TestValidateSATAcceptsWellFormed(t *testing.T) {
	t.Parallel()

	p := &Problem{
		Kind: KindSAT,
		SAT: &SATProblem{
			Variables: 3,
			Clauses: []Clause{
				{Literals: []int32{1, -2}},
				{Literals: []int32{2, 3}},
			},
		},
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateTSPRequiresSquareMatrix(t *testing.T) {
	t.Parallel()

	p := &Problem{
		Kind: KindTSP,
		TSP: &TSPProblem{
			Cities:    3,
			Distances: [][]uint64{{0, 1}, {1, 0}, {1, 1}},
		},
	}
	requireCode(t, p.Validate(), cerrors.ErrInvalidParameter)
}

func TestValidateTSPRejectsSingleCity(t *testing.T) {
	t.Parallel()

	p := &Problem{
		Kind: KindTSP,
		TSP:  &TSPProblem{Cities: 1, Distances: [][]uint64{{0}}},
	}
	requireCode(t, p.Validate(), cerrors.ErrInvalidParameter)
}

func TestValidateCustomRequiresPayload(t *testing.T) {
	t.Parallel()

	p := &Problem{Kind: KindCustom}
	requireCode(t, p.Validate(), cerrors.ErrMissingField)
}

func square(rows ...[]uint64) [][]uint64 { return rows }

func TestProblemBinaryRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []*Problem{
		{Kind: KindSubsetSum, SubsetSum: &SubsetSumProblem{Numbers: []int64{1, 2, 3, 4, 5}, Target: 9}},
		{Kind: KindSAT, SAT: &SATProblem{Variables: 3, Clauses: []Clause{{Literals: []int32{1, -2}}, {Literals: []int32{2, 3}}}}},
		{Kind: KindTSP, TSP: &TSPProblem{Cities: 3, Distances: square([]uint64{0, 1, 2}, []uint64{1, 0, 3}, []uint64{2, 3, 0})}},
		{Kind: KindCustom, Custom: &CustomProblem{ProblemID: mustHash(t, "deadbeef"), Data: []byte{1, 2, 3}}},
	}

	for _, p := range cases {
		enc, err := p.EncodeBinary()
		if err != nil {
			t.Fatalf("EncodeBinary(%s): %v", p.Kind, err)
		}
		got, err := DecodeProblemBinary(enc)
		if err != nil {
			t.Fatalf("DecodeProblemBinary(%s): %v", p.Kind, err)
		}
		if got.Kind != p.Kind {
			t.Fatalf("kind mismatch: got %s want %s", got.Kind, p.Kind)
		}
	}
}

func TestProblemBinaryRejectsTrailingData(t *testing.T) {
	t.Parallel()

	p := &Problem{Kind: KindSubsetSum, SubsetSum: &SubsetSumProblem{Numbers: []int64{1, 2}, Target: 3}}
	enc, err := p.EncodeBinary()
	if err != nil {
		t.Fatalf("EncodeBinary: %v", err)
	}
	enc = append(enc, 0xff)
	_, err = DecodeProblemBinary(enc)
	requireCode(t, err, cerrors.ErrTrailingData)
}

func TestProblemJSONRoundTrip(t *testing.T) {
	t.Parallel()

	p := &Problem{Kind: KindSubsetSum, SubsetSum: &SubsetSumProblem{Numbers: []int64{1, 2, 3, 4, 5}, Target: 9}}
	data, err := p.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var got Problem
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if got.Kind != KindSubsetSum || got.SubsetSum.Target != 9 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestProblemJSONRejectsUnknownTag(t *testing.T) {
	t.Parallel()

	var p Problem
	err := p.UnmarshalJSON([]byte(`{"bogus": {}}`))
	requireCode(t, err, cerrors.ErrUnknownField)
}

func TestSolutionBinaryRoundTrip(t *testing.T) {
	t.Parallel()

	s := &Solution{Kind: KindSubsetSum, SubsetSumIndices: []uint32{0, 2, 4}}
	enc, err := s.EncodeBinary()
	if err != nil {
		t.Fatalf("EncodeBinary: %v", err)
	}
	got, err := DecodeSolutionBinary(enc)
	if err != nil {
		t.Fatalf("DecodeSolutionBinary: %v", err)
	}
	if len(got.SubsetSumIndices) != 3 {
		t.Fatalf("got %v", got.SubsetSumIndices)
	}
}

func TestSolutionJSONRoundTrip(t *testing.T) {
	t.Parallel()

	s := &Solution{Kind: KindSAT, SATAssignment: []bool{true, false, true}}
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var got Solution
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if len(got.SATAssignment) != 3 || !got.SATAssignment[0] {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestProblemHashDeterministic(t *testing.T) {
	t.Parallel()

	p := &Problem{Kind: KindSubsetSum, SubsetSum: &SubsetSumProblem{Numbers: []int64{1, 2, 3}, Target: 3}}
	h1, err := p.Hash()
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := p.Hash()
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("hash not deterministic: %s != %s", h1, h2)
	}
}

func mustHash(t *testing.T, hexPrefix string) chainhash.Hash {
	t.Helper()
	padded := hexPrefix
	for len(padded) < 64 {
		padded += "0"
	}
	h, err := chainhash.NewHashFromStr(padded)
	if err != nil {
		t.Fatalf("bad test hex: %v", err)
	}
	return h
}
