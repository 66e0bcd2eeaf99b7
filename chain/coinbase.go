// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"math"

	"coinjecture.dev/consensus/address"
	"coinjecture.dev/consensus/chainhash"
	"coinjecture.dev/consensus/codec"
)

// CoinbaseTransaction is the unsigned, block-reward-minting transaction a
// miner includes alongside its signed user transactions. It mirrors the
// distinction the teacher draws between regular transactions and the
// implicit block-one ledger payout (blockOneCoinbasePaysTokens in
// blockchain/subsidy.go): an account transaction moves value someone
// already owns, a coinbase transaction creates it.
type CoinbaseTransaction struct {
	To     address.Address
	Reward uint64
	Height uint64
}

// EncodeBinary writes the strict binary form of a CoinbaseTransaction.
func (c *CoinbaseTransaction) EncodeBinary() []byte {
	w := codec.NewWriter()
	w.WriteHash(c.To)
	w.WriteUint64(c.Reward)
	w.WriteUint64(c.Height)
	return w.Bytes()
}

// DecodeCoinbaseTransactionBinary parses the strict binary form of a
// CoinbaseTransaction.
func DecodeCoinbaseTransactionBinary(data []byte) (*CoinbaseTransaction, error) {
	r := codec.NewReader(data)
	to, err := r.ReadHash("to")
	if err != nil {
		return nil, err
	}
	reward, err := r.ReadUint64("reward")
	if err != nil {
		return nil, err
	}
	height, err := r.ReadUint64("height")
	if err != nil {
		return nil, err
	}
	if err := r.FinishStrict(); err != nil {
		return nil, err
	}
	return &CoinbaseTransaction{To: address.Address(to), Reward: reward, Height: height}, nil
}

// Hash returns H(canonical_encode(c)).
func (c *CoinbaseTransaction) Hash() chainhash.Hash {
	return chainhash.Sum256(c.EncodeBinary())
}

// DeriveReward converts a computed work-score into a coinbase amount,
// following the same "plain function over explicit network params" shape
// as the teacher's blockchain/subsidy.go CalcBlockSubsidy: reward scales
// linearly with work-score under a params-governed multiplier, and is
// clamped so a pathological (e.g. NaN or infinite) score can never mint an
// unrepresentable or negative amount.
func DeriveReward(workScore float64, params *NetworkParams) uint64 {
	if math.IsNaN(workScore) || workScore <= 0 {
		return 0
	}
	reward := workScore * params.RewardPerWorkScoreUnit
	if reward >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(reward)
}
