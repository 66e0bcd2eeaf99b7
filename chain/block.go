// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"coinjecture.dev/consensus/address"
	"coinjecture.dev/consensus/chainhash"
	"coinjecture.dev/consensus/codec"
	"coinjecture.dev/consensus/commitment"
)

// BlockHeader carries everything needed to check a block's proof-of-work
// and its binding to a commit-reveal pair (spec §3). All fields are
// required; ExtraData is bounded by MaxExtraDataBytes.
type BlockHeader struct {
	CodecVersion     uint8
	BlockIndex       uint64
	Timestamp        uint64
	ParentHash       chainhash.Hash
	MerkleRoot       chainhash.Hash
	MinerAddress     address.Address
	Commitment       chainhash.Hash
	DifficultyTarget uint32
	Nonce            uint64
	ExtraData        []byte
}

// EncodeBinary writes the strict binary form of h.
func (h *BlockHeader) EncodeBinary() ([]byte, error) {
	w := codec.NewWriter()
	w.WriteUint8(h.CodecVersion)
	w.WriteUint64(h.BlockIndex)
	w.WriteUint64(h.Timestamp)
	w.WriteHash(h.ParentHash)
	w.WriteHash(h.MerkleRoot)
	w.WriteHash(h.MinerAddress)
	w.WriteHash(h.Commitment)
	w.WriteUint32(h.DifficultyTarget)
	w.WriteUint64(h.Nonce)
	if err := w.WriteVarBytes("extra_data", MaxExtraDataBytes, h.ExtraData); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// DecodeBlockHeaderBinary parses the strict binary form of a BlockHeader.
func DecodeBlockHeaderBinary(data []byte) (*BlockHeader, error) {
	r := codec.NewReader(data)
	h := &BlockHeader{}

	var err error
	if h.CodecVersion, err = r.ReadUint8("codec_version"); err != nil {
		return nil, err
	}
	if h.BlockIndex, err = r.ReadUint64("block_index"); err != nil {
		return nil, err
	}
	if h.Timestamp, err = r.ReadUint64("timestamp"); err != nil {
		return nil, err
	}
	parentHash, err := r.ReadHash("parent_hash")
	if err != nil {
		return nil, err
	}
	h.ParentHash = chainhash.Hash(parentHash)
	merkleRoot, err := r.ReadHash("merkle_root")
	if err != nil {
		return nil, err
	}
	h.MerkleRoot = chainhash.Hash(merkleRoot)
	minerAddr, err := r.ReadHash("miner_address")
	if err != nil {
		return nil, err
	}
	h.MinerAddress = address.Address(minerAddr)
	commitHash, err := r.ReadHash("commitment")
	if err != nil {
		return nil, err
	}
	h.Commitment = chainhash.Hash(commitHash)
	if h.DifficultyTarget, err = r.ReadUint32("difficulty_target"); err != nil {
		return nil, err
	}
	if h.Nonce, err = r.ReadUint64("nonce"); err != nil {
		return nil, err
	}
	if h.ExtraData, err = r.ReadVarBytes("extra_data", MaxExtraDataBytes); err != nil {
		return nil, err
	}
	if err := r.FinishStrict(); err != nil {
		return nil, err
	}
	return h, nil
}

// Hash returns H(canonical_encode(header)).
func (h *BlockHeader) Hash() (chainhash.Hash, error) {
	enc, err := h.EncodeBinary()
	if err != nil {
		return chainhash.Hash{}, err
	}
	return chainhash.Sum256(enc), nil
}

// Block is a header together with its transactions and the commit-reveal
// pair it carries. Cid is an optional content address for out-of-band
// storage of the block's payload (e.g. a pin manifest entry).
type Block struct {
	Header       BlockHeader
	Transactions []*Transaction
	Reveal       *commitment.Reveal
	Cid          *chainhash.Hash
}

// ComputeMerkleRoot derives the Merkle root over the block's transaction
// hashes, in encoded order.
func (b *Block) ComputeMerkleRoot() (chainhash.Hash, error) {
	leaves := make([]chainhash.Hash, len(b.Transactions))
	for i, tx := range b.Transactions {
		h, err := tx.Hash()
		if err != nil {
			return chainhash.Hash{}, err
		}
		leaves[i] = h
	}
	return BuildMerkleRoot(leaves), nil
}
