/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft

import "testing"

func TestEncodeDecodeProposalRoundTrips(t *testing.T) {
	codec := NewOrderedCBORCodec[string]()
	txs := []string{"alpha", "beta", "gamma"}

	data, err := encodeProposal(codec, txs)
	if err != nil {
		t.Fatalf("encodeProposal: %v", err)
	}

	got, err := decodeProposal(codec, data)
	if err != nil {
		t.Fatalf("decodeProposal: %v", err)
	}
	if len(got) != len(txs) {
		t.Fatalf("len = %d, want %d", len(got), len(txs))
	}
	for i, tx := range txs {
		if got[i] != tx {
			t.Fatalf("decodeProposal()[%d] = %q, want %q", i, got[i], tx)
		}
	}
}

func TestEncodeDecodeProposalEmpty(t *testing.T) {
	codec := NewOrderedCBORCodec[int]()
	data, err := encodeProposal[int](codec, nil)
	if err != nil {
		t.Fatalf("encodeProposal: %v", err)
	}
	got, err := decodeProposal[int](codec, data)
	if err != nil {
		t.Fatalf("decodeProposal: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestOrderedCBORCodecLess(t *testing.T) {
	codec := NewOrderedCBORCodec[int]()
	if !codec.Less(1, 2) {
		t.Fatal("Less(1, 2) = false, want true")
	}
	if codec.Less(2, 1) {
		t.Fatal("Less(2, 1) = true, want false")
	}
}

func TestUnionDecodedProposalsDedupsAndOrders(t *testing.T) {
	codec := NewOrderedCBORCodec[int]()

	encode := func(txs []int) []byte {
		data, err := encodeProposal(codec, txs)
		if err != nil {
			t.Fatalf("encodeProposal: %v", err)
		}
		return data
	}

	outputs := map[int][]byte{
		0: encode([]int{3, 1}),
		1: encode([]int{1, 2}),
		2: encode([]int{2, 3}),
	}

	got, err := unionDecodedProposals[int, int](codec, outputs)
	if err != nil {
		t.Fatalf("unionDecodedProposals: %v", err)
	}

	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("unionDecodedProposals()[%d] = %d, want %d", i, got[i], v)
		}
	}
}
