// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"testing"

	"coinjecture.dev/consensus/chainhash"
)

func TestBuildMerkleRootEmpty(t *testing.T) {
	t.Parallel()

	if root := BuildMerkleRoot(nil); root != chainhash.ZeroHash {
		t.Fatalf("expected zero hash for empty leaf set, got %s", root)
	}
}

func TestMerkleProofVerifiesEveryLeaf(t *testing.T) {
	t.Parallel()

	leaves := []chainhash.Hash{
		chainhash.Sum256([]byte("a")),
		chainhash.Sum256([]byte("b")),
		chainhash.Sum256([]byte("c")),
		chainhash.Sum256([]byte("d")),
		chainhash.Sum256([]byte("e")),
	}
	root := BuildMerkleRoot(leaves)

	for i, leaf := range leaves {
		proof, err := BuildMerkleProof(leaves, uint32(i))
		if err != nil {
			t.Fatalf("BuildMerkleProof(%d): %v", i, err)
		}
		if !proof.Verify(leaf, root) {
			t.Fatalf("proof for leaf %d failed to verify", i)
		}
	}
}

func TestMerkleProofRejectsWrongLeaf(t *testing.T) {
	t.Parallel()

	leaves := []chainhash.Hash{
		chainhash.Sum256([]byte("a")),
		chainhash.Sum256([]byte("b")),
		chainhash.Sum256([]byte("c")),
	}
	root := BuildMerkleRoot(leaves)

	proof, err := BuildMerkleProof(leaves, 1)
	if err != nil {
		t.Fatalf("BuildMerkleProof: %v", err)
	}
	if proof.Verify(leaves[0], root) {
		t.Fatalf("expected proof for leaf 1 to reject leaf 0")
	}
}

func TestBuildMerkleProofRejectsOutOfRangeIndex(t *testing.T) {
	t.Parallel()

	leaves := []chainhash.Hash{chainhash.Sum256([]byte("a"))}
	if _, err := BuildMerkleProof(leaves, 5); err == nil {
		t.Fatalf("expected an error for an out-of-range leaf index")
	}
}
