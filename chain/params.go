// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import "math/big"

// Field budgets enforced at decode time (spec §6).
const (
	MaxExtraDataBytes       = 32
	MaxTransactionDataBytes = 65536
	SignatureSize           = 64
)

// NetworkParams bundles the consensus-governed constants a validator
// needs: the work-score base constant, proof-of-work ceiling, and the
// escrow bounds re-exported here so a single params value configures an
// entire validation run — the same role chaincfg.Params plays for the
// teacher network.
type NetworkParams struct {
	Name string

	// WorkScoreK is the work-score calculator's base constant (spec
	// §4.4's K).
	WorkScoreK float64

	// RewardPerWorkScoreUnit is the external, consensus-governed
	// multiplier DeriveReward applies to a block's work-score to yield
	// its coinbase amount. This is the "constant the tokenomics
	// dimension publishes" referred to in spec §1 — the core consumes
	// it as an opaque number, never the vesting schedule that produced
	// it.
	RewardPerWorkScoreUnit float64

	// PowLimit is the highest proof-of-work target permitted on this
	// network; difficulty_target values decode to targets at or below
	// it.
	PowLimit *big.Int

	// PowLimitBits is PowLimit in compact ("nBits") form.
	PowLimitBits uint32

	MinEscrowAmount   uint64
	MinEscrowDuration uint64
	MaxEscrowDuration uint64
}

// bigOne is reused by the compact-bits conversions in pow.go.
var bigOne = big.NewInt(1)

// MainNetParams returns the production network parameters.
func MainNetParams() *NetworkParams {
	powLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)
	return &NetworkParams{
		Name:                   "mainnet",
		WorkScoreK:             1.0,
		RewardPerWorkScoreUnit: 1.0,
		PowLimit:               powLimit,
		PowLimitBits:           BigToCompact(powLimit),
		MinEscrowAmount:        1000,
		MinEscrowDuration:      100,
		MaxEscrowDuration:      100_000,
	}
}

// RegressionNetParams returns relaxed parameters suitable for local
// conformance runs and tests: a trivially satisfiable proof-of-work
// target.
func RegressionNetParams() *NetworkParams {
	powLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
	return &NetworkParams{
		Name:                   "regtest",
		WorkScoreK:             1.0,
		RewardPerWorkScoreUnit: 1.0,
		PowLimit:               powLimit,
		PowLimitBits:           BigToCompact(powLimit),
		MinEscrowAmount:        1000,
		MinEscrowDuration:      100,
		MaxEscrowDuration:      100_000,
	}
}
