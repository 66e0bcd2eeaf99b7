// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package escrow implements the bounty-escrow state machine (spec §4.5):
// a deterministic lifecycle from Locked to either Released or Refunded,
// with strict transition rules and a deterministic escrow identity.
package escrow

import (
	"encoding/binary"

	"coinjecture.dev/consensus/address"
	"coinjecture.dev/consensus/chainhash"
	cerrors "coinjecture.dev/consensus/errors"
)

// Consensus constants governing escrow creation (native units / block
// counts).
const (
	MinEscrowAmount   = 1000
	MinEscrowDuration = 100
	MaxEscrowDuration = 100_000
)

// State is a BountyEscrow's lifecycle position.
type State uint8

const (
	// StateLocked is the initial state: funds held, awaiting a valid
	// solution or expiry.
	StateLocked State = iota
	// StateReleased is terminal: funds paid to the solver.
	StateReleased
	// StateRefunded is terminal: funds returned to the submitter.
	StateRefunded
)

func (s State) String() string {
	switch s {
	case StateLocked:
		return "Locked"
	case StateReleased:
		return "Released"
	case StateRefunded:
		return "Refunded"
	default:
		return "Unknown"
	}
}

// BountyEscrow is a bounty locked against a problem until a solver claims
// it or it expires back to the submitter.
type BountyEscrow struct {
	ID           chainhash.Hash
	Submitter    address.Address
	Amount       uint64
	ProblemHash  chainhash.Hash
	CreatedBlock uint64
	ExpiryBlock  uint64
	State        State
	Recipient    *address.Address
	SettledBlock *uint64
	SettlementTx *chainhash.Hash
}

// ComputeEscrowID derives the deterministic escrow identity
// H(submitter ‖ problem_hash ‖ created_block_le_bytes).
func ComputeEscrowID(submitter address.Address, problemHash chainhash.Hash, createdBlock uint64) chainhash.Hash {
	preimage := make([]byte, 0, address.Size+chainhash.HashSize+8)
	preimage = append(preimage, submitter.Bytes()...)
	preimage = append(preimage, problemHash.Bytes()...)

	var blockLE [8]byte
	binary.LittleEndian.PutUint64(blockLE[:], createdBlock)
	preimage = append(preimage, blockLE[:]...)

	return chainhash.Sum256(preimage)
}

// ValidateCreation checks amount, block ordering, and duration against
// the consensus constants, per spec §4.5.
func ValidateCreation(amount, createdBlock, expiryBlock uint64) error {
	if amount < MinEscrowAmount {
		return cerrors.InsufficientBalance(amount, MinEscrowAmount)
	}
	if expiryBlock <= createdBlock {
		return cerrors.InvalidParameter("expiry_block", "must be after created_block")
	}

	duration := expiryBlock - createdBlock
	if duration < MinEscrowDuration {
		return cerrors.InvalidParameter("duration", "below minimum escrow duration")
	}
	if duration > MaxEscrowDuration {
		return cerrors.InvalidParameter("duration", "exceeds maximum escrow duration")
	}
	return nil
}

// ValidateStateTransition allows only Locked→Released, Locked→Refunded,
// and same-state (idempotent) moves. Every other transition, including
// any backward move, fails with InvalidStateTransition.
func ValidateStateTransition(current, next State) error {
	if current == next {
		return nil
	}
	if current == StateLocked && (next == StateReleased || next == StateRefunded) {
		return nil
	}
	return cerrors.InvalidStateTransition(current.String(), next.String())
}

// ValidateRelease checks that escrow is Locked and recipient is not the
// all-zero address.
func ValidateRelease(e *BountyEscrow, recipient address.Address) error {
	if e.State != StateLocked {
		return cerrors.InvalidStateTransition(e.State.String(), StateReleased.String())
	}
	if recipient.IsZero() {
		return cerrors.InvalidParameter("recipient", "cannot be the zero address")
	}
	return nil
}

// ValidateRefund checks that escrow is Locked and currentBlock has
// reached expiry.
func ValidateRefund(e *BountyEscrow, currentBlock uint64) error {
	if e.State != StateLocked {
		return cerrors.InvalidStateTransition(e.State.String(), StateRefunded.String())
	}
	if currentBlock < e.ExpiryBlock {
		return cerrors.InvalidParameter("current_block", "cannot refund before expiry")
	}
	return nil
}
