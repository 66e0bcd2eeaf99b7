// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"math/big"

	"coinjecture.dev/consensus/chainhash"
	cerrors "coinjecture.dev/consensus/errors"
)

// CompactToBig converts a compact representation of a whole number N to an
// unsigned 32-bit number. The representation is similar to IEEE754 floating
// point numbers: the high 8 bits are an exponent in bytes, and the low 23
// bits are the mantissa. Bit 24 is a sign bit. This is the same "nBits"
// encoding difficulty targets use throughout this family of chains.
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := compact >> 24

	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, uint(8*(exponent-3)))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}
	return bn
}

// BigToCompact converts a whole number N to a compact representation.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var mantissa uint32
	exponent := uint(len(n.Bytes()))

	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}
	return compact
}

// CheckProofOfWork reports whether headerHash, interpreted as a little-endian
// unsigned integer (see hashToBig), is at or below the target encoded by difficultyTarget,
// and that the target itself does not exceed the network's proof-of-work
// ceiling.
func CheckProofOfWork(headerHash chainhash.Hash, difficultyTarget uint32, params *NetworkParams) (bool, error) {
	target := CompactToBig(difficultyTarget)
	if target.Sign() <= 0 {
		return false, cerrors.InvalidParameter("difficulty_target", "target must be positive")
	}
	if target.Cmp(params.PowLimit) > 0 {
		return false, cerrors.InvalidParameter("difficulty_target", "target exceeds network proof-of-work limit")
	}

	hashNum := hashToBig(headerHash)
	return hashNum.Cmp(target) <= 0, nil
}

// hashToBig interprets a hash's raw bytes, reversed into big-endian order,
// as an unsigned integer, matching the little-endian-in-memory convention
// these hashes are displayed with.
func hashToBig(h chainhash.Hash) *big.Int {
	var reversed chainhash.Hash
	for i, b := range h[:] {
		reversed[chainhash.HashSize-1-i] = b
	}
	return new(big.Int).SetBytes(reversed[:])
}
