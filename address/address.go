// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address implements the 32-byte account address used throughout
// the consensus core, displayed in base58 per spec §3.
package address

import (
	"fmt"

	"github.com/EXCCoin/base58"
)

// Size is the length of an Address in bytes.
const Size = 32

// Address identifies an account. It is the byte-identical image of the
// Ed25519 public key that controls it.
type Address [Size]byte

// ZeroAddress is the all-zero address, used as the "no recipient" sentinel
// in BountyEscrow and rejected as an explicit release recipient.
var ZeroAddress = Address{}

// FromPublicKey derives the Address for an Ed25519 public key. The
// transform is the identity — the address is the public key's bytes.
func FromPublicKey(pubKey []byte) (Address, error) {
	var a Address
	if len(pubKey) != Size {
		return a, errMalformedKey(len(pubKey))
	}
	copy(a[:], pubKey)
	return a, nil
}

// FromBytes wraps a raw 32-byte slice as an Address.
func FromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != Size {
		return a, errMalformedKey(len(b))
	}
	copy(a[:], b)
	return a, nil
}

// Bytes returns a copy of the raw address bytes.
func (a Address) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, a[:])
	return out
}

// IsZero reports whether a is the all-zero sentinel address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// String returns the base58 encoding of the address.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// FromBase58 decodes a base58-encoded address string.
func FromBase58(s string) (Address, error) {
	decoded := base58.Decode(s)
	return FromBytes(decoded)
}

type malformedKeyError struct {
	gotLen int
}

func (e *malformedKeyError) Error() string {
	return fmt.Sprintf("address: expected %d bytes, got %d", Size, e.gotLen)
}

func errMalformedKey(gotLen int) error {
	return &malformedKeyError{gotLen: gotLen}
}
