// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package problem

import (
	"math"
	"time"

	cerrors "coinjecture.dev/consensus/errors"
)

// VerifyBudget bounds the cost a single Verify call may spend. A verifier
// honours the budget by checking these ceilings at loop heads so a
// pathological input terminates with ErrVerifyBudgetExceeded instead of
// running unbounded (spec §5, §6).
type VerifyBudget struct {
	MaxOps         uint64
	MaxDurationMS  uint64
	MaxMemoryBytes uint64
}

// DefaultVerifyBudget is generous enough that any well-formed, in-budget
// (per the field limits in this package) problem instance verifies well
// within it; it exists as the harness's default, not a consensus constant.
var DefaultVerifyBudget = VerifyBudget{
	MaxOps:         10_000_000,
	MaxDurationMS:  1000,
	MaxMemoryBytes: 64 * 1024 * 1024,
}

// budgetGuard tracks operation counts and wall-clock elapsed time against a
// VerifyBudget. Only MaxOps is consulted bit-for-bit deterministically;
// MaxDurationMS is an additional, best-effort safety valve measured against
// wall-clock time.
type budgetGuard struct {
	budget VerifyBudget
	ops    uint64
	start  time.Time
}

func newBudgetGuard(b VerifyBudget) *budgetGuard {
	return &budgetGuard{budget: b, start: time.Now()}
}

func (g *budgetGuard) tick() error {
	g.ops++
	if g.budget.MaxOps != 0 && g.ops > g.budget.MaxOps {
		return cerrors.VerifyBudgetExceeded("operation count ceiling reached")
	}
	if g.budget.MaxDurationMS != 0 {
		if time.Since(g.start) > time.Duration(g.budget.MaxDurationMS)*time.Millisecond {
			return cerrors.VerifyBudgetExceeded("duration ceiling reached")
		}
	}
	return nil
}

// estimateMemoryBytes gives a coarse, up-front estimate of the working set
// a Verify call needs for the given problem, used to honour MaxMemoryBytes
// without instrumenting every allocation.
func estimateMemoryBytes(p *Problem) uint64 {
	switch p.Kind {
	case KindSubsetSum:
		return uint64(len(p.SubsetSum.Numbers)) * 8
	case KindSAT:
		total := uint64(0)
		for _, c := range p.SAT.Clauses {
			total += uint64(len(c.Literals)) * 4
		}
		return total + uint64(p.SAT.Variables)
	case KindTSP:
		return uint64(p.TSP.Cities) * uint64(p.TSP.Cities) * 8
	default:
		return uint64(len(p.Custom.Data))
	}
}

// Verify checks s against p in polynomial time under budget. Semantics per
// spec §4.2:
//
//   - SubsetSum: indices in range, distinct, sum to target.
//   - SAT: assignment length matches variable count, every clause satisfied.
//   - TSP: tour visits every city exactly once.
//   - Custom: always false — custom problems need an out-of-band oracle.
func Verify(s *Solution, p *Problem, budget VerifyBudget) (bool, error) {
	if s.Kind != p.Kind {
		return false, nil
	}

	if budget.MaxMemoryBytes != 0 && estimateMemoryBytes(p) > budget.MaxMemoryBytes {
		return false, cerrors.VerifyBudgetExceeded("memory ceiling reached")
	}
	guard := newBudgetGuard(budget)

	switch p.Kind {
	case KindSubsetSum:
		return verifySubsetSum(s, p, guard)
	case KindSAT:
		return verifySAT(s, p, guard)
	case KindTSP:
		return verifyTSP(s, p, guard)
	case KindCustom:
		return false, nil
	default:
		return false, nil
	}
}

func verifySubsetSum(s *Solution, p *Problem, guard *budgetGuard) (bool, error) {
	numbers := p.SubsetSum.Numbers
	seen := make(map[uint32]struct{}, len(s.SubsetSumIndices))
	var sum int64
	for _, idx := range s.SubsetSumIndices {
		if err := guard.tick(); err != nil {
			return false, err
		}
		if idx >= uint32(len(numbers)) {
			return false, nil
		}
		if _, dup := seen[idx]; dup {
			return false, nil
		}
		seen[idx] = struct{}{}
		sum += numbers[idx]
	}
	return sum == p.SubsetSum.Target, nil
}

func verifySAT(s *Solution, p *Problem, guard *budgetGuard) (bool, error) {
	sat := p.SAT
	if uint32(len(s.SATAssignment)) != sat.Variables {
		return false, nil
	}
	for _, clause := range sat.Clauses {
		if err := guard.tick(); err != nil {
			return false, err
		}
		satisfied := false
		for _, lit := range clause.Literals {
			mag := lit
			negate := false
			if mag < 0 {
				mag = -mag
				negate = true
			}
			varIdx := uint32(mag) - 1
			if varIdx >= uint32(len(s.SATAssignment)) {
				continue
			}
			value := s.SATAssignment[varIdx]
			if negate {
				value = !value
			}
			if value {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false, nil
		}
	}
	return true, nil
}

func verifyTSP(s *Solution, p *Problem, guard *budgetGuard) (bool, error) {
	tsp := p.TSP
	if uint32(len(s.TSPTour)) != tsp.Cities {
		return false, nil
	}
	visited := make([]bool, tsp.Cities)
	for _, city := range s.TSPTour {
		if err := guard.tick(); err != nil {
			return false, err
		}
		if city >= tsp.Cities || visited[city] {
			return false, nil
		}
		visited[city] = true
	}
	return true, nil
}

// TourLength computes the length of a validated TSP tour:
// Σ distances[tour[i]][tour[(i+1) mod cities]].
func TourLength(s *Solution, p *Problem) uint64 {
	tsp := p.TSP
	cities := tsp.Cities
	var length uint64
	for i := uint32(0); i < cities; i++ {
		from := s.TSPTour[i]
		to := s.TSPTour[(i+1)%cities]
		length += tsp.Distances[from][to]
	}
	return length
}

// Quality returns a real in [0,1] measuring solution quality, per spec
// §4.2: exact problems (SubsetSum, SAT) score 1 or 0; TSP rewards shorter
// tours; Custom always scores 0.
func Quality(s *Solution, p *Problem, budget VerifyBudget) (float64, error) {
	ok, err := Verify(s, p, budget)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	switch p.Kind {
	case KindSubsetSum, KindSAT:
		return 1, nil
	case KindTSP:
		length := TourLength(s, p)
		return 1 / (float64(length) + 1), nil
	default:
		return 0, nil
	}
}

// clampedLog2 is log2(x) clamped to 0 for x < 2, resolving the Open
// Question in spec §9: difficulty_weight must not go negative or
// undefined for small inputs.
func clampedLog2(x float64) float64 {
	if x < 2 {
		return 0
	}
	return math.Log2(x)
}

// DifficultyWeight returns a problem's difficulty weight per spec §4.2.
func DifficultyWeight(p *Problem) float64 {
	switch p.Kind {
	case KindSubsetSum:
		return clampedLog2(float64(len(p.SubsetSum.Numbers)))
	case KindSAT:
		return float64(p.SAT.Variables) * clampedLog2(float64(len(p.SAT.Clauses)))
	case KindTSP:
		c := float64(p.TSP.Cities)
		return c * c
	default:
		return 1
	}
}
