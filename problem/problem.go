// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package problem implements the NP-hard problem/solution tagged unions,
// their polynomial-time verifiers, and the quality and difficulty-weight
// functions that feed the work-score calculation (spec §3, §4.2).
package problem

import (
	"coinjecture.dev/consensus/chainhash"
	cerrors "coinjecture.dev/consensus/errors"
)

// Kind discriminates the Problem/Solution tagged union. It is always the
// first field encoded, so binary decoding can dispatch without look-ahead.
type Kind uint8

const (
	// KindSubsetSum identifies a subset-sum instance.
	KindSubsetSum Kind = iota
	// KindSAT identifies a boolean satisfiability instance.
	KindSAT
	// KindTSP identifies a travelling-salesman instance.
	KindTSP
	// KindCustom identifies an opaque, out-of-band problem.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindSubsetSum:
		return "subset_sum"
	case KindSAT:
		return "sat"
	case KindTSP:
		return "tsp"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Field budgets from spec §6. Exceeding any of these at decode time is an
// ErrOutOfRange error.
const (
	MaxSubsetSumNumbers = 1024
	MaxSATVariables     = 4096
	MaxSATLiterals      = 65536
	MaxTSPCities        = 256
)

// Clause is a disjunction of literals. A positive literal asserts its
// variable; a negative literal asserts its negation. Magnitude is the
// 1-indexed variable number.
type Clause struct {
	Literals []int32
}

// SubsetSumProblem asks whether some subset of Numbers sums to Target.
type SubsetSumProblem struct {
	Numbers []int64
	Target  int64
}

// SATProblem is a boolean formula in conjunctive normal form.
type SATProblem struct {
	Variables uint32
	Clauses   []Clause
}

// TSPProblem asks for the shortest tour visiting every city exactly once.
// Distances is a Cities x Cities row-major matrix.
type TSPProblem struct {
	Cities    uint32
	Distances [][]uint64
}

// CustomProblem is an opaque, out-of-band problem the consensus verifier
// cannot evaluate on its own.
type CustomProblem struct {
	ProblemID chainhash.Hash
	Data      []byte
}

// Problem is the tagged union of NP-hard problem instances. Exactly one of
// the variant fields is populated, matching Kind.
type Problem struct {
	Kind      Kind
	SubsetSum *SubsetSumProblem
	SAT       *SATProblem
	TSP       *TSPProblem
	Custom    *CustomProblem
}

// Validate checks the structural invariants from spec §3: SAT literal
// magnitudes must be in range, TSP's distance matrix must be square, and
// every variant must respect its field budget.
func (p *Problem) Validate() error {
	switch p.Kind {
	case KindSubsetSum:
		s := p.SubsetSum
		if s == nil {
			return cerrors.MissingField("subset_sum")
		}
		if len(s.Numbers) > MaxSubsetSumNumbers {
			return cerrors.OutOfRange("numbers", "exceeds subset-sum numbers budget")
		}
		return nil

	case KindSAT:
		s := p.SAT
		if s == nil {
			return cerrors.MissingField("sat")
		}
		if s.Variables > MaxSATVariables {
			return cerrors.OutOfRange("variables", "exceeds SAT variable budget")
		}
		totalLiterals := 0
		for _, c := range s.Clauses {
			if len(c.Literals) == 0 {
				return cerrors.InvalidParameter("clause", "clause has no literals")
			}
			totalLiterals += len(c.Literals)
			for _, lit := range c.Literals {
				if lit == 0 {
					return cerrors.InvalidParameter("literal", "literal must be non-zero")
				}
				mag := lit
				if mag < 0 {
					mag = -mag
				}
				if uint32(mag) > s.Variables {
					return cerrors.InvalidParameter("literal", "literal magnitude exceeds variable count")
				}
			}
		}
		if totalLiterals > MaxSATLiterals {
			return cerrors.OutOfRange("clauses", "exceeds SAT total literal budget")
		}
		return nil

	case KindTSP:
		s := p.TSP
		if s == nil {
			return cerrors.MissingField("tsp")
		}
		if s.Cities > MaxTSPCities {
			return cerrors.OutOfRange("cities", "exceeds TSP city budget")
		}
		if s.Cities < 2 {
			return cerrors.InvalidParameter("cities", "must have at least 2 cities")
		}
		if uint32(len(s.Distances)) != s.Cities {
			return cerrors.InvalidParameter("distances", "row count must equal cities")
		}
		for _, row := range s.Distances {
			if uint32(len(row)) != s.Cities {
				return cerrors.InvalidParameter("distances", "matrix must be square")
			}
		}
		return nil

	case KindCustom:
		if p.Custom == nil {
			return cerrors.MissingField("custom")
		}
		return nil

	default:
		return cerrors.InvalidParameter("kind", "unknown problem kind")
	}
}

// Solution is the tagged union of candidate answers, parallel to Problem.
// A solution is valid for a problem only when their Kinds match.
type Solution struct {
	Kind Kind

	// SubsetSumIndices selects which entries of a SubsetSumProblem's
	// Numbers are summed.
	SubsetSumIndices []uint32

	// SATAssignment is a boolean value per SAT variable (index i holds
	// the value of variable i+1).
	SATAssignment []bool

	// TSPTour is a permutation of city indices for a TSPProblem.
	TSPTour []uint32

	// CustomData is opaque solution material for a CustomProblem.
	CustomData []byte
}
