/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft_test

import (
	"fmt"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	hbbft "github.com/lab10-coop/hbbft"
	"github.com/lab10-coop/hbbft/pkg/acs/simpleacs"
)

// envelope is one message in flight between simulated nodes.
type envelope struct {
	sender int
	msg    hbbft.Message[int]
}

// driveToQuiescence round-robins queued messages between engines for up
// to maxRounds rounds, broadcasting to every other member and unicasting
// to a specific target as directed by each message's wire.Target. The
// engines never go quiet on their own: each epoch advance proposes into
// the next epoch, so every round moves them on by another epoch and extra
// rounds only queue more batches behind the ones a test reads.
func driveToQuiescence(engines map[int]*hbbft.Engine[int, string], allIDs []int, maxRounds int) {
	inboxes := make(map[int][]envelope, len(engines))

	for round := 0; round < maxRounds; round++ {
		for id, e := range engines {
			for {
				tm, ok := e.NextMessage()
				if !ok {
					break
				}
				if dest, unicast := tm.Target.NodeID(); unicast {
					inboxes[dest] = append(inboxes[dest], envelope{sender: id, msg: tm.Message})
					continue
				}
				for _, peer := range allIDs {
					if peer == id {
						continue
					}
					inboxes[peer] = append(inboxes[peer], envelope{sender: id, msg: tm.Message})
				}
			}
		}

		for id, e := range engines {
			pending := inboxes[id]
			inboxes[id] = nil
			for _, env := range pending {
				Expect(e.HandleMessage(env.sender, env.msg)).To(Succeed())
			}
		}
	}
}

func newTestEngines(n int, batchSize, txsPerNode int) (map[int]*hbbft.Engine[int, string], []int) {
	allIDs := make([]int, n)
	for i := range allIDs {
		allIDs[i] = i
	}

	engines := make(map[int]*hbbft.Engine[int, string], n)
	for i := 0; i < n; i++ {
		seed := make([]string, 0, txsPerNode)
		for j := 0; j < txsPerNode; j++ {
			seed = append(seed, fmt.Sprintf("node%d-tx%d", i, j))
		}
		e, err := hbbft.New(hbbft.Config[int, string]{
			ID:         i,
			AllIDs:     allIDs,
			BatchSize:  batchSize,
			InitialTxs: seed,
			Codec:      hbbft.NewOrderedCBORCodec[string](),
			NewACS:     simpleacs.NewFactory[int](),
		})
		Expect(err).NotTo(HaveOccurred())
		engines[i] = e
	}
	return engines, allIDs
}

var _ = Describe("Engine", func() {
	Describe("a single node with no peers", func() {
		It("delivers its own proposal as a batch without any message exchange", func() {
			engines, _ := newTestEngines(1, 4, 3)
			e := engines[0]

			batch, ok := e.NextOutput()
			Expect(ok).To(BeTrue())
			Expect(batch.Epoch).To(Equal(uint64(0)))
			Expect(batch.Transactions).NotTo(BeEmpty())
			Expect(e.Epoch()).To(Equal(uint64(1)))
		})
	})

	Describe("four honest nodes", func() {
		It("all converge on the same epoch-0 batch", func() {
			engines, allIDs := newTestEngines(4, 8, 2)
			driveToQuiescence(engines, allIDs, 50)

			var batches []hbbft.Batch[string]
			for _, id := range allIDs {
				batch, ok := engines[id].NextOutput()
				Expect(ok).To(BeTrue())
				Expect(batch.Epoch).To(Equal(uint64(0)))
				batches = append(batches, batch)
			}

			for _, b := range batches[1:] {
				Expect(b.Transactions).To(Equal(batches[0].Transactions))
			}
		})

		It("advances through several epochs as batches keep draining", func() {
			engines, allIDs := newTestEngines(4, 8, 6)

			for epoch := uint64(0); epoch < 3; epoch++ {
				driveToQuiescence(engines, allIDs, 50)
				for _, id := range allIDs {
					batch, ok := engines[id].NextOutput()
					Expect(ok).To(BeTrue())
					Expect(batch.Epoch).To(Equal(epoch))
				}
			}
		})
	})

	Describe("HandleMessage", func() {
		It("rejects a message from a non-member sender", func() {
			engines, _ := newTestEngines(3, 6, 2)
			e := engines[0]
			before := e.Epoch()

			err := e.HandleMessage(99, hbbft.Message[int]{Epoch: 0})
			Expect(err).To(MatchError(hbbft.ErrUnknownSender))
			Expect(e.Epoch()).To(Equal(before))
		})

		It("silently drops a message addressed to an already-completed epoch", func() {
			engines, allIDs := newTestEngines(4, 8, 2)
			driveToQuiescence(engines, allIDs, 50)
			for _, id := range allIDs {
				_, _ = engines[id].NextOutput()
			}
			Expect(engines[0].Epoch()).To(BeNumerically(">=", 1))

			err := engines[0].HandleMessage(allIDs[1], hbbft.Message[int]{Epoch: 0, AcsMsg: struct{}{}})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("buffer pruning", func() {
		It("does not resample transactions already delivered in an earlier batch", func() {
			engines, allIDs := newTestEngines(4, 8, 6)

			driveToQuiescence(engines, allIDs, 50)
			first, ok := engines[0].NextOutput()
			Expect(ok).To(BeTrue())
			delivered := make(map[string]struct{}, len(first.Transactions))
			for _, tx := range first.Transactions {
				delivered[tx] = struct{}{}
			}

			driveToQuiescence(engines, allIDs, 50)
			second, ok := engines[0].NextOutput()
			Expect(ok).To(BeTrue())
			for _, tx := range second.Transactions {
				_, dup := delivered[tx]
				Expect(dup).To(BeFalse())
			}
		})
	})
})
