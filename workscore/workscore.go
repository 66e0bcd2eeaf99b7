// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package workscore computes the dimensionless work-score that
// determines block reward (spec §4.4): a product of solve/verify time
// and memory asymmetry, problem difficulty, solution quality, and
// energy efficiency.
package workscore

import "math"

// DefaultK is the dimensionless base constant used when no
// consensus-governed override is supplied.
const DefaultK = 1.0

// minVerifyDurationSeconds floors verify_time so a division never blows
// up for a verifier that ran in (near) zero measured time.
const minVerifyDurationSeconds = 0.001

// minVerifyMemoryBytes floors verify_memory for the same reason.
const minVerifyMemoryBytes = 1.0

// maxScore is the clamp ceiling from spec §4.4 (f64::MAX/2).
var maxScore = math.MaxFloat64 / 2

// Inputs collects the six measured factors behind a single work-score
// calculation.
type Inputs struct {
	K                 float64
	SolveTimeSeconds  float64
	VerifyTimeSeconds float64
	SolveMemoryBytes  uint64
	VerifyMemoryBytes uint64
	DifficultyWeight  float64
	Quality           float64
	EnergyPerOp       float64
}

// Calculate evaluates the work-score formula. Implementations MUST
// perform the multiplications in this exact left-to-right order so the
// result is bit-reproducible across platforms using the same IEEE-754
// rounding mode — do not reassociate or reorder these operations.
func Calculate(in Inputs) float64 {
	verifyTime := in.VerifyTimeSeconds
	if verifyTime < minVerifyDurationSeconds {
		verifyTime = minVerifyDurationSeconds
	}
	timeRatio := in.SolveTimeSeconds / verifyTime

	verifyMemory := float64(in.VerifyMemoryBytes)
	if verifyMemory < minVerifyMemoryBytes {
		verifyMemory = minVerifyMemoryBytes
	}
	spaceRatio := math.Sqrt(float64(in.SolveMemoryBytes) / verifyMemory)

	energyEfficiency := 1 / (in.EnergyPerOp + 1)

	score := in.K
	score = score * timeRatio
	score = score * spaceRatio
	score = score * in.DifficultyWeight
	score = score * in.Quality
	score = score * energyEfficiency

	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
