/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft

import (
	"github.com/lab10-coop/hbbft/pkg/acs"
	"github.com/lab10-coop/hbbft/pkg/wire"
)

// Batch is the deterministic, ordered output of one epoch.
type Batch[T comparable] struct {
	Epoch        uint64
	Transactions []T
}

// assembleOutputs is the output assembler: while the
// current epoch's ACS instance has an output waiting, decode it, union
// and dedup the decoded transactions into canonical order, prune them
// from the buffer, emit the batch, and advance the epoch. After the
// loop, if the epoch advanced at all, propose into the new epoch exactly
// once (not once per epoch advanced) — pruning the buffer before emitting
// keeps a batch's delivered transactions and their removal from the
// mempool observable together, and proposing only after the whole loop
// avoids proposing into a stale epoch.
func (e *Engine[N, T]) assembleOutputs() error {
	startEpoch := e.epoch

	for {
		inst, ok := e.acsRegistry.get(e.epoch)
		if !ok {
			break
		}
		outputs, ok := inst.NextOutput()
		if !ok {
			break
		}

		transactions, err := unionDecodedProposals[N, T](e.cfg.Codec, outputs)
		if err != nil {
			return &CodecError{Op: "decode", Err: err}
		}

		seen := make(map[T]struct{}, len(transactions))
		for _, tx := range transactions {
			seen[tx] = struct{}{}
		}
		e.buffer.retainNotIn(seen)
		e.metrics.setBufferLength(e.buffer.len())

		e.logger.Log(LevelDebug, "epoch output",
			"node_id", e.cfg.ID, "epoch", e.epoch, "transactions", len(transactions))

		e.outBatches = append(e.outBatches, Batch[T]{
			Epoch:        e.epoch,
			Transactions: transactions,
		})
		e.metrics.observeBatch(len(transactions), e.epoch)

		e.epoch++
	}

	assertGreaterThanOrEqual(e.epoch, startEpoch, "epoch counter must never move backward")
	if e.epoch == startEpoch {
		return nil
	}

	return e.propose()
}

// propose gives this node's sampled proposal to the ACS instance for the
// current epoch (creating it if this is the first reference), then
// drains whatever outbound messages that produced.
func (e *Engine[N, T]) propose() error {
	data, _, err := e.sampleProposal()
	if err != nil {
		return &CodecError{Op: "encode", Err: err}
	}

	inst, err := e.acsRegistry.getOrCreate(e.epoch, e.epoch)
	if err != nil {
		return &ACSError{Epoch: e.epoch, Err: err}
	}

	if err := inst.Input(data); err != nil {
		return &ACSError{Epoch: e.epoch, Err: err}
	}

	e.drainACSMessages(e.epoch, inst)
	return nil
}

// drainACSMessages pops every queued outbound message from inst, wraps
// it as a CommonSubset envelope for epoch, and appends it to the
// engine's outbound queue, preserving the ACS's own emission order.
func (e *Engine[N, T]) drainACSMessages(epoch uint64, inst acs.Instance[N]) {
	for _, tm := range inst.Messages() {
		wrapped := wire.MapTargeted(tm, func(acsMsg any) Message[N] {
			return Message[N]{Epoch: epoch, AcsMsg: acsMsg}
		})
		e.outMsgs = append(e.outMsgs, wrapped)
	}
}
