// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package errors defines the consensus-critical error taxonomy shared by
// every validator in this module. Every exported error is a value of type
// *ConsensusError so callers can branch on Code with errors.As instead of
// string matching.
package errors

import "fmt"

// ErrorCode identifies a class of consensus-critical failure.
type ErrorCode int

const (
	// ErrUnknownField means a decoded payload carried a key the target
	// schema does not declare.
	ErrUnknownField ErrorCode = iota

	// ErrTrailingData means bytes or tokens remained after the single
	// top-level value was decoded.
	ErrTrailingData

	// ErrMissingField means a schema-required key was absent.
	ErrMissingField

	// ErrTypeMismatch means a field decoded to the wrong Go type.
	ErrTypeMismatch

	// ErrOutOfRange means a length or numeric field budget was violated.
	ErrOutOfRange

	// ErrInvalidSignature means signature verification failed, or the
	// transaction's from address did not match the signer's key image.
	ErrInvalidSignature

	// ErrInvalidParameter means a semantic validation rule was violated
	// (duration, block ordering, recipient, and similar).
	ErrInvalidParameter

	// ErrInsufficientBalance means a value fell below a required
	// threshold.
	ErrInsufficientBalance

	// ErrInvalidStateTransition means a disallowed escrow state move was
	// attempted.
	ErrInvalidStateTransition

	// ErrVerifyBudgetExceeded means a verifier's op/time/memory ceiling
	// was hit before a verdict could be reached.
	ErrVerifyBudgetExceeded

	// ErrCommitmentMismatch means a reveal's recomputed commitment
	// differed from the one carried in the block header.
	ErrCommitmentMismatch
)

var errorCodeStrings = map[ErrorCode]string{
	ErrUnknownField:           "ErrUnknownField",
	ErrTrailingData:           "ErrTrailingData",
	ErrMissingField:           "ErrMissingField",
	ErrTypeMismatch:           "ErrTypeMismatch",
	ErrOutOfRange:             "ErrOutOfRange",
	ErrInvalidSignature:       "ErrInvalidSignature",
	ErrInvalidParameter:       "ErrInvalidParameter",
	ErrInsufficientBalance:    "ErrInsufficientBalance",
	ErrInvalidStateTransition: "ErrInvalidStateTransition",
	ErrVerifyBudgetExceeded:   "ErrVerifyBudgetExceeded",
	ErrCommitmentMismatch:     "ErrCommitmentMismatch",
}

// String returns the English name of the error code.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// ConsensusError is the concrete error type returned by every validator,
// verifier, and codec routine in this module. It is never constructed with
// a bare string; each field below is populated by the specific helper for
// its error kind so callers can recover structured detail.
type ConsensusError struct {
	Code ErrorCode

	// Field-specific detail, populated according to Code. Zero values
	// are left unset when not applicable to the code.
	Param       string
	Reason      string
	FieldName   string
	Offset      int
	Available   uint64
	Required    uint64
	FromState   string
	ToState     string
}

// Error implements the error interface.
func (e *ConsensusError) Error() string {
	switch e.Code {
	case ErrUnknownField:
		return fmt.Sprintf("%s: unexpected field %q", e.Code, e.FieldName)
	case ErrTrailingData:
		return fmt.Sprintf("%s: unexpected data at offset %d", e.Code, e.Offset)
	case ErrMissingField:
		return fmt.Sprintf("%s: missing required field %q", e.Code, e.FieldName)
	case ErrTypeMismatch:
		return fmt.Sprintf("%s: field %q has the wrong type", e.Code, e.FieldName)
	case ErrOutOfRange:
		return fmt.Sprintf("%s: field %q out of range: %s", e.Code, e.FieldName, e.Reason)
	case ErrInvalidSignature:
		return fmt.Sprintf("%s: %s", e.Code, e.Reason)
	case ErrInvalidParameter:
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Param, e.Reason)
	case ErrInsufficientBalance:
		return fmt.Sprintf("%s: available %d, required %d", e.Code, e.Available, e.Required)
	case ErrInvalidStateTransition:
		return fmt.Sprintf("%s: %s -> %s", e.Code, e.FromState, e.ToState)
	case ErrVerifyBudgetExceeded:
		return fmt.Sprintf("%s: %s", e.Code, e.Reason)
	case ErrCommitmentMismatch:
		return fmt.Sprintf("%s: %s", e.Code, e.Reason)
	default:
		return e.Code.String()
	}
}

// Is reports whether target is a *ConsensusError with the same Code,
// allowing callers to use errors.Is(err, &ConsensusError{Code: SomeCode}).
func (e *ConsensusError) Is(target error) bool {
	t, ok := target.(*ConsensusError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// UnknownField builds an ErrUnknownField error.
func UnknownField(name string) *ConsensusError {
	return &ConsensusError{Code: ErrUnknownField, FieldName: name}
}

// TrailingData builds an ErrTrailingData error.
func TrailingData(offset int) *ConsensusError {
	return &ConsensusError{Code: ErrTrailingData, Offset: offset}
}

// MissingField builds an ErrMissingField error.
func MissingField(name string) *ConsensusError {
	return &ConsensusError{Code: ErrMissingField, FieldName: name}
}

// TypeMismatch builds an ErrTypeMismatch error.
func TypeMismatch(name string) *ConsensusError {
	return &ConsensusError{Code: ErrTypeMismatch, FieldName: name}
}

// OutOfRange builds an ErrOutOfRange error.
func OutOfRange(name, reason string) *ConsensusError {
	return &ConsensusError{Code: ErrOutOfRange, FieldName: name, Reason: reason}
}

// InvalidSignature builds an ErrInvalidSignature error.
func InvalidSignature(reason string) *ConsensusError {
	return &ConsensusError{Code: ErrInvalidSignature, Reason: reason}
}

// InvalidParameter builds an ErrInvalidParameter error.
func InvalidParameter(param, reason string) *ConsensusError {
	return &ConsensusError{Code: ErrInvalidParameter, Param: param, Reason: reason}
}

// InsufficientBalance builds an ErrInsufficientBalance error.
func InsufficientBalance(available, required uint64) *ConsensusError {
	return &ConsensusError{Code: ErrInsufficientBalance, Available: available, Required: required}
}

// InvalidStateTransition builds an ErrInvalidStateTransition error.
func InvalidStateTransition(from, to string) *ConsensusError {
	return &ConsensusError{Code: ErrInvalidStateTransition, FromState: from, ToState: to}
}

// VerifyBudgetExceeded builds an ErrVerifyBudgetExceeded error.
func VerifyBudgetExceeded(reason string) *ConsensusError {
	return &ConsensusError{Code: ErrVerifyBudgetExceeded, Reason: reason}
}

// CommitmentMismatch builds an ErrCommitmentMismatch error.
func CommitmentMismatch(reason string) *ConsensusError {
	return &ConsensusError{Code: ErrCommitmentMismatch, Reason: reason}
}
