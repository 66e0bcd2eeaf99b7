// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"testing"

	"coinjecture.dev/consensus/chainhash"
)

func TestPinManifestMembership(t *testing.T) {
	t.Parallel()

	var key [PinManifestKeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	cids := []chainhash.Hash{
		chainhash.Sum256([]byte("cid-a")),
		chainhash.Sum256([]byte("cid-b")),
		chainhash.Sum256([]byte("cid-c")),
	}

	manifest, err := BuildPinManifest(key, cids)
	if err != nil {
		t.Fatalf("BuildPinManifest: %v", err)
	}
	for _, c := range cids {
		if !manifest.MightPin(c) {
			t.Fatalf("expected pinned cid %s to match", c)
		}
	}
}

func TestPinManifestSerializationRoundTrip(t *testing.T) {
	t.Parallel()

	var key [PinManifestKeySize]byte
	cids := []chainhash.Hash{
		chainhash.Sum256([]byte("cid-a")),
		chainhash.Sum256([]byte("cid-b")),
	}
	manifest, err := BuildPinManifest(key, cids)
	if err != nil {
		t.Fatalf("BuildPinManifest: %v", err)
	}

	loaded, err := LoadPinManifest(key, uint32(len(cids)), manifest.Bytes())
	if err != nil {
		t.Fatalf("LoadPinManifest: %v", err)
	}
	for _, c := range cids {
		if !loaded.MightPin(c) {
			t.Fatalf("expected reloaded manifest to still match %s", c)
		}
	}
}
