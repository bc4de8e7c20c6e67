/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft

import "github.com/lab10-coop/hbbft/pkg/wire"

// Engine is the epoch engine / driver: the top-level
// state machine that owns the mempool buffer, the epoch counter, the
// per-epoch ACS registry, and the outbound message and batch queues. It
// is pull-based (see doc.go) and is not safe for concurrent use.
type Engine[N comparable, T comparable] struct {
	cfg       Config[N, T]
	memberSet map[N]struct{}

	buffer      *buffer[T]
	epoch       uint64
	acsRegistry *registry[N]

	outMsgs    []wire.TargetedMessage[N, Message[N]]
	outBatches []Batch[T]

	logger  Logger
	metrics *Metrics
}

// New constructs an Engine and immediately proposes in epoch 0. It
// returns ErrOwnIDMissing if cfg.ID is not a member of cfg.AllIDs, or
// any error the sampler/ACS construction produces while proposing.
func New[N comparable, T comparable](cfg Config[N, T]) (*Engine[N, T], error) {
	if len(cfg.AllIDs) == 0 {
		return nil, ErrOwnIDMissing
	}

	members := make(map[N]struct{}, len(cfg.AllIDs))
	for _, id := range cfg.AllIDs {
		members[id] = struct{}{}
	}
	if _, ok := members[cfg.ID]; !ok {
		return nil, ErrOwnIDMissing
	}

	cfg.setDefaults()

	e := &Engine[N, T]{
		cfg:         cfg,
		memberSet:   members,
		buffer:      newBuffer(cfg.InitialTxs),
		acsRegistry: newRegistry(cfg.ID, cfg.AllIDs, cfg.NewACS),
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
	}
	e.metrics.setBufferLength(e.buffer.len())

	if err := e.propose(); err != nil {
		return nil, err
	}

	// Our own input may already satisfy the freshly created ACS instance
	// (the single-node, f=0 configuration always does, since need=1 and
	// propose() just supplied it) — with no peer message ever arriving to
	// trigger assembleOutputs via HandleMessage, attempt it once here too.
	if err := e.assembleOutputs(); err != nil {
		return nil, err
	}

	e.logger.Log(LevelInfo, "engine started",
		"node_id", e.cfg.ID, "members", len(members), "batch_size", e.cfg.BatchSize)

	return e, nil
}

// Input appends one transaction to the mempool buffer.
func (e *Engine[N, T]) Input(tx T) {
	e.AddTransactions([]T{tx})
}

// AddTransactions appends all given transactions to the mempool buffer.
func (e *Engine[N, T]) AddTransactions(txs []T) {
	e.buffer.add(txs)
	e.metrics.setBufferLength(e.buffer.len())
}

// NextMessage pops and returns one queued outbound message in FIFO
// order, or the zero value and false if none is queued.
func (e *Engine[N, T]) NextMessage() (wire.TargetedMessage[N, Message[N]], bool) {
	if len(e.outMsgs) == 0 {
		var zero wire.TargetedMessage[N, Message[N]]
		return zero, false
	}
	msg := e.outMsgs[0]
	e.outMsgs = e.outMsgs[1:]
	return msg, true
}

// NextOutput pops and returns one delivered batch in FIFO (and hence
// strictly increasing epoch) order, or the zero value and false if none
// is queued.
func (e *Engine[N, T]) NextOutput() (Batch[T], bool) {
	if len(e.outBatches) == 0 {
		var zero Batch[T]
		return zero, false
	}
	batch := e.outBatches[0]
	e.outBatches = e.outBatches[1:]
	return batch, true
}

// Terminated always reports false: Honey Badger is a long-running
// protocol with no terminal state.
func (e *Engine[N, T]) Terminated() bool {
	return false
}

// OurID returns this engine's own node identity.
func (e *Engine[N, T]) OurID() N {
	return e.cfg.ID
}

// Epoch returns the current epoch counter, primarily for diagnostics;
// see pkg/status for a fuller snapshot.
func (e *Engine[N, T]) Epoch() uint64 {
	return e.epoch
}
