// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"math"
	"testing"

	"coinjecture.dev/consensus/address"
)

func TestCoinbaseTransactionRoundTrip(t *testing.T) {
	t.Parallel()

	var to address.Address
	to[0] = 5
	c := &CoinbaseTransaction{To: to, Reward: 12345, Height: 100}

	got, err := DecodeCoinbaseTransactionBinary(c.EncodeBinary())
	if err != nil {
		t.Fatalf("DecodeCoinbaseTransactionBinary: %v", err)
	}
	if *got != *c {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, c)
	}
}

func TestDeriveRewardScalesWithWorkScore(t *testing.T) {
	t.Parallel()

	params := MainNetParams()
	params.RewardPerWorkScoreUnit = 2.0

	if got := DeriveReward(10, params); got != 20 {
		t.Fatalf("DeriveReward(10) = %d, want 20", got)
	}
	if got := DeriveReward(20, params); got != 40 {
		t.Fatalf("DeriveReward(20) = %d, want 40", got)
	}
}

func TestDeriveRewardZeroForNonPositiveOrNaN(t *testing.T) {
	t.Parallel()

	params := MainNetParams()
	if got := DeriveReward(0, params); got != 0 {
		t.Fatalf("DeriveReward(0) = %d, want 0", got)
	}
	if got := DeriveReward(-5, params); got != 0 {
		t.Fatalf("DeriveReward(-5) = %d, want 0", got)
	}
	if got := DeriveReward(math.NaN(), params); got != 0 {
		t.Fatalf("DeriveReward(NaN) = %d, want 0", got)
	}
}
