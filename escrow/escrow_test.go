// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package escrow

import (
	"testing"

	"coinjecture.dev/consensus/address"
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

func testAddress(t *testing.T, fill byte) address.Address {
	t.Helper()
	var raw [32]byte
	for i := range raw {
		raw[i] = fill
	}
	a, err := address.FromBytes(raw[:])
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	return a
}

func TestComputeEscrowIDDeterministic(t *testing.T) {
	t.Parallel()

	submitter := testAddress(t, 1)
	problemHash := chainhash.Sum256([]byte("problem"))

	id1 := ComputeEscrowID(submitter, problemHash, 1000)
	id2 := ComputeEscrowID(submitter, problemHash, 1000)
	if id1 != id2 {
		t.Fatalf("expected deterministic escrow ID")
	}
}

func TestComputeEscrowIDUniquePerBlock(t *testing.T) {
	t.Parallel()

	submitter := testAddress(t, 1)
	problemHash := chainhash.Sum256([]byte("problem"))

	id1 := ComputeEscrowID(submitter, problemHash, 1000)
	id2 := ComputeEscrowID(submitter, problemHash, 1001)
	if id1 == id2 {
		t.Fatalf("expected different blocks to produce different escrow IDs")
	}
}

func TestValidateCreationValid(t *testing.T) {
	t.Parallel()

	if err := ValidateCreation(MinEscrowAmount, 1000, 1000+MinEscrowDuration); err != nil {
		t.Fatalf("ValidateCreation: %v", err)
	}
}

func TestValidateCreationAmountTooLow(t *testing.T) {
	t.Parallel()

	err := ValidateCreation(MinEscrowAmount-1, 1000, 1000+MinEscrowDuration)
	requireCode(t, err, cerrors.ErrInsufficientBalance)
}

func TestValidateCreationDurationTooShort(t *testing.T) {
	t.Parallel()

	err := ValidateCreation(MinEscrowAmount, 1000, 1000+50)
	requireCode(t, err, cerrors.ErrInvalidParameter)
}

func TestValidateCreationDurationTooLong(t *testing.T) {
	t.Parallel()

	err := ValidateCreation(MinEscrowAmount, 1000, 1000+MaxEscrowDuration+1)
	requireCode(t, err, cerrors.ErrInvalidParameter)
}

func TestValidateCreationBadBlockOrder(t *testing.T) {
	t.Parallel()

	err := ValidateCreation(MinEscrowAmount, 1000, 999)
	requireCode(t, err, cerrors.ErrInvalidParameter)
}

func TestValidateStateTransitionLockedToReleased(t *testing.T) {
	t.Parallel()

	if err := ValidateStateTransition(StateLocked, StateReleased); err != nil {
		t.Fatalf("ValidateStateTransition: %v", err)
	}
}

func TestValidateStateTransitionLockedToRefunded(t *testing.T) {
	t.Parallel()

	if err := ValidateStateTransition(StateLocked, StateRefunded); err != nil {
		t.Fatalf("ValidateStateTransition: %v", err)
	}
}

func TestValidateStateTransitionRejectsRollback(t *testing.T) {
	t.Parallel()

	requireCode(t, ValidateStateTransition(StateReleased, StateLocked), cerrors.ErrInvalidStateTransition)
	requireCode(t, ValidateStateTransition(StateRefunded, StateLocked), cerrors.ErrInvalidStateTransition)
	requireCode(t, ValidateStateTransition(StateReleased, StateRefunded), cerrors.ErrInvalidStateTransition)
}

func TestValidateStateTransitionIdempotent(t *testing.T) {
	t.Parallel()

	if err := ValidateStateTransition(StateLocked, StateLocked); err != nil {
		t.Fatalf("Locked->Locked: %v", err)
	}
	if err := ValidateStateTransition(StateReleased, StateReleased); err != nil {
		t.Fatalf("Released->Released: %v", err)
	}
	if err := ValidateStateTransition(StateRefunded, StateRefunded); err != nil {
		t.Fatalf("Refunded->Refunded: %v", err)
	}
}

func lockedEscrow(t *testing.T) *BountyEscrow {
	t.Helper()
	return &BountyEscrow{
		ID:           chainhash.ZeroHash,
		Submitter:    testAddress(t, 1),
		Amount:       MinEscrowAmount,
		ProblemHash:  chainhash.Sum256([]byte("problem")),
		CreatedBlock: 1000,
		ExpiryBlock:  2000,
		State:        StateLocked,
	}
}

func TestValidateReleaseValid(t *testing.T) {
	t.Parallel()

	e := lockedEscrow(t)
	if err := ValidateRelease(e, testAddress(t, 3)); err != nil {
		t.Fatalf("ValidateRelease: %v", err)
	}
}

func TestValidateReleaseRejectsAlreadyReleased(t *testing.T) {
	t.Parallel()

	e := lockedEscrow(t)
	e.State = StateReleased
	requireCode(t, ValidateRelease(e, testAddress(t, 3)), cerrors.ErrInvalidStateTransition)
}

func TestValidateReleaseRejectsZeroRecipient(t *testing.T) {
	t.Parallel()

	e := lockedEscrow(t)
	requireCode(t, ValidateRelease(e, address.ZeroAddress), cerrors.ErrInvalidParameter)
}

func TestValidateRefundValid(t *testing.T) {
	t.Parallel()

	e := lockedEscrow(t)
	if err := ValidateRefund(e, 2000); err != nil {
		t.Fatalf("ValidateRefund: %v", err)
	}
}

func TestValidateRefundBeforeExpiry(t *testing.T) {
	t.Parallel()

	e := lockedEscrow(t)
	requireCode(t, ValidateRefund(e, 1999), cerrors.ErrInvalidParameter)
}

func TestValidateRefundAlreadyRefunded(t *testing.T) {
	t.Parallel()

	e := lockedEscrow(t)
	e.State = StateRefunded
	requireCode(t, ValidateRefund(e, 2000), cerrors.ErrInvalidStateTransition)
}
