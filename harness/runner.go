// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package harness runs batches of (problem, solution, epoch salt) fixtures
// through the consensus core and reports pass/fail, without itself being
// part of the consensus-critical surface (spec §1: the conformance harness
// is an external collaborator, not a core subsystem).
package harness

import (
	"github.com/decred/slog"

	"coinjecture.dev/consensus/chainhash"
	"coinjecture.dev/consensus/commitment"
	"coinjecture.dev/consensus/problem"
)

// log is the package-level logger, wired up by SetLogger the way the
// teacher's node binaries wire each package's logger from a shared backend
// (see cmd/consensuscheck/log.go).
var log = slog.Disabled

// SetLogger installs the logger every harness routine writes through.
func SetLogger(l slog.Logger) {
	log = l
}

// Fixture is one conformance case: a committed (problem, solution) pair
// under a given epoch salt, expected to either verify or not.
type Fixture struct {
	Name      string
	Problem   *problem.Problem
	Solution  *problem.Solution
	EpochSalt chainhash.Hash
	Budget    problem.VerifyBudget
	Want      bool
}

// Result is the outcome of running a single Fixture.
type Result struct {
	Name   string
	Got    bool
	Want   bool
	Err    error
	Passed bool
}

// Run evaluates every fixture by creating its commitment, building the
// corresponding reveal, and checking reveal verification against Want. It
// honours each fixture's own VerifyBudget; a VerifyBudgetExceeded error
// counts as a failed fixture rather than aborting the batch.
func Run(fixtures []Fixture, cache *FixtureCache) []Result {
	results := make([]Result, 0, len(fixtures))
	for _, f := range fixtures {
		results = append(results, runOne(f, cache))
	}
	return results
}

func runOne(f Fixture, cache *FixtureCache) Result {
	if cache != nil {
		if got, ok, err := cache.Lookup(f.Problem, f.Solution, f.EpochSalt); ok {
			log.Debugf("harness: cache hit for fixture %q", f.Name)
			return Result{Name: f.Name, Got: got, Want: f.Want, Err: err, Passed: err == nil && got == f.Want}
		}
	}

	c, err := commitment.Create(f.Problem, f.Solution, f.EpochSalt)
	if err != nil {
		return Result{Name: f.Name, Want: f.Want, Err: err}
	}
	reveal := commitment.Reveal{Problem: f.Problem, Solution: f.Solution, Commitment: c}

	got, err := reveal.Verify(f.EpochSalt, f.Budget)
	if cache != nil {
		cache.Store(f.Problem, f.Solution, f.EpochSalt, got, err)
	}
	return Result{
		Name:   f.Name,
		Got:    got,
		Want:   f.Want,
		Err:    err,
		Passed: err == nil && got == f.Want,
	}
}

// Summarize logs a one-line pass/fail tally for results, in the teacher's
// leveled-logging style.
func Summarize(results []Result) (passed, failed int) {
	for _, r := range results {
		if r.Passed {
			passed++
			continue
		}
		failed++
		if r.Err != nil {
			log.Warnf("harness: fixture %q errored: %v", r.Name, r.Err)
		} else {
			log.Warnf("harness: fixture %q wanted %v, got %v", r.Name, r.Want, r.Got)
		}
	}
	log.Infof("harness: %d passed, %d failed", passed, failed)
	return passed, failed
}
