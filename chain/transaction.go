// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"coinjecture.dev/consensus/address"
	"coinjecture.dev/consensus/chainhash"
	"coinjecture.dev/consensus/codec"
	cerrors "coinjecture.dev/consensus/errors"
	"golang.org/x/crypto/ed25519"
)

// TxType discriminates what a Transaction does; CoinbaseTransaction
// carries the reward-minting variant instead, so every TxType here is a
// signed, fee-paying account transaction.
type TxType uint8

const (
	// TxTransfer moves Amount from From to To.
	TxTransfer TxType = iota
	// TxBountyCreate locks Amount into a new BountyEscrow.
	TxBountyCreate
	// TxBountySettle releases or refunds an existing BountyEscrow.
	TxBountySettle
)

// Transaction is a signed, account-based value transfer (spec §3). From
// must equal the address derived from the public key that produced
// Signature; the signature covers every other field in their canonical
// binary encoding.
type Transaction struct {
	CodecVersion uint8
	TxType       TxType
	From         address.Address
	To           address.Address
	Amount       uint64
	Nonce        uint64
	GasLimit     uint64
	GasPrice     uint64
	Signature    [SignatureSize]byte
	Data         []byte
	Timestamp    uint64
}

// encodeFields writes every field except Signature, in declaration
// order, into w.
func (tx *Transaction) encodeFields(w *codec.Writer) error {
	w.WriteUint8(uint8(tx.CodecVersion))
	w.WriteUint8(uint8(tx.TxType))
	w.WriteHash(tx.From)
	w.WriteHash(tx.To)
	w.WriteUint64(tx.Amount)
	w.WriteUint64(tx.Nonce)
	w.WriteUint64(tx.GasLimit)
	w.WriteUint64(tx.GasPrice)
	if err := w.WriteVarBytes("data", MaxTransactionDataBytes, tx.Data); err != nil {
		return err
	}
	w.WriteUint64(tx.Timestamp)
	return nil
}

// signingPayload is the canonical encoding of every field except
// Signature — the exact bytes Sign and Verify operate over.
func (tx *Transaction) signingPayload() ([]byte, error) {
	w := codec.NewWriter()
	if err := tx.encodeFields(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Sign computes tx.Signature over the canonical signing payload using
// privKey, and sets tx.From to the address derived from the matching
// public key.
func (tx *Transaction) Sign(privKey ed25519.PrivateKey) error {
	pub, ok := privKey.Public().(ed25519.PublicKey)
	if !ok {
		return cerrors.InvalidSignature("private key has no matching ed25519 public key")
	}
	from, err := address.FromPublicKey(pub)
	if err != nil {
		return err
	}
	tx.From = from

	payload, err := tx.signingPayload()
	if err != nil {
		return err
	}
	sig := ed25519.Sign(privKey, payload)
	copy(tx.Signature[:], sig)
	return nil
}

// Verify checks that Signature is a valid Ed25519 signature over the
// canonical signing payload under the public key matching From, and that
// From is indeed the identity-derived address of that key.
func (tx *Transaction) Verify(pubKey ed25519.PublicKey) error {
	derived, err := address.FromPublicKey(pubKey)
	if err != nil {
		return err
	}
	if derived != tx.From {
		return cerrors.InvalidSignature("from does not match the address derived from the signing key")
	}
	payload, err := tx.signingPayload()
	if err != nil {
		return err
	}
	if !ed25519.Verify(pubKey, payload, tx.Signature[:]) {
		return cerrors.InvalidSignature("signature does not verify")
	}
	return nil
}

// Hash returns H(canonical_encode(tx)), including the signature.
func (tx *Transaction) Hash() (chainhash.Hash, error) {
	enc, err := tx.EncodeBinary()
	if err != nil {
		return chainhash.Hash{}, err
	}
	return chainhash.Sum256(enc), nil
}

// EncodeBinary writes the strict binary form of tx, signature included.
func (tx *Transaction) EncodeBinary() ([]byte, error) {
	w := codec.NewWriter()
	if err := tx.encodeFields(w); err != nil {
		return nil, err
	}
	if err := w.WriteVarBytes("signature", SignatureSize, tx.Signature[:]); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// DecodeTransactionBinary parses the strict binary form of a
// Transaction, rejecting trailing bytes, oversized signatures, and
// oversized data payloads.
func DecodeTransactionBinary(data []byte) (*Transaction, error) {
	r := codec.NewReader(data)
	tx := &Transaction{}

	codecVersion, err := r.ReadUint8("codec_version")
	if err != nil {
		return nil, err
	}
	txType, err := r.ReadUint8("tx_type")
	if err != nil {
		return nil, err
	}
	from, err := r.ReadHash("from")
	if err != nil {
		return nil, err
	}
	to, err := r.ReadHash("to")
	if err != nil {
		return nil, err
	}
	amount, err := r.ReadUint64("amount")
	if err != nil {
		return nil, err
	}
	nonce, err := r.ReadUint64("nonce")
	if err != nil {
		return nil, err
	}
	gasLimit, err := r.ReadUint64("gas_limit")
	if err != nil {
		return nil, err
	}
	gasPrice, err := r.ReadUint64("gas_price")
	if err != nil {
		return nil, err
	}
	txData, err := r.ReadVarBytes("data", MaxTransactionDataBytes)
	if err != nil {
		return nil, err
	}
	timestamp, err := r.ReadUint64("timestamp")
	if err != nil {
		return nil, err
	}
	sig, err := r.ReadVarBytes("signature", SignatureSize)
	if err != nil {
		return nil, err
	}
	if len(sig) != SignatureSize {
		return nil, cerrors.OutOfRange("signature", "must be exactly 64 bytes")
	}
	if err := r.FinishStrict(); err != nil {
		return nil, err
	}

	tx.CodecVersion = codecVersion
	tx.TxType = TxType(txType)
	tx.From = address.Address(from)
	tx.To = address.Address(to)
	tx.Amount = amount
	tx.Nonce = nonce
	tx.GasLimit = gasLimit
	tx.GasPrice = gasPrice
	tx.Data = txData
	tx.Timestamp = timestamp
	copy(tx.Signature[:], sig)
	return tx, nil
}
