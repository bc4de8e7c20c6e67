/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft

import (
	"crypto/rand"
	"io"
	"math/big"
)

// sampleWithoutReplacement returns k elements drawn without replacement
// from population, via a Fisher-Yates partial shuffle over a copy. If
// k >= len(population), the whole (copied) population is returned — a
// short window is not an error.
func sampleWithoutReplacement[T any](rnd io.Reader, population []T, k int) ([]T, error) {
	pool := make([]T, len(population))
	copy(pool, population)
	if k >= len(pool) {
		return pool, nil
	}
	for i := 0; i < k; i++ {
		j, err := randIntn(rnd, len(pool)-i)
		if err != nil {
			return nil, err
		}
		swapAt := i + j
		pool[i], pool[swapAt] = pool[swapAt], pool[i]
	}
	return pool[:k], nil
}

// randIntn returns a uniform random integer in [0, n) read from rnd. It
// panics for n <= 0, same as math/rand.Intn, since that indicates a
// caller bug rather than a runtime condition.
func randIntn(rnd io.Reader, n int) (int, error) {
	if n <= 0 {
		panic("hbbft: randIntn called with n <= 0")
	}
	v, err := rand.Int(rnd, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// sampleProposal implements the proposal sampler:
// amount = max(1, floor(batch_size / |all_ids|)), drawn without
// replacement from the head window of the buffer bounded by batch_size.
// It returns the serialized proposal along with the transactions chosen
// (so the caller doesn't need to re-decode its own proposal).
func (e *Engine[N, T]) sampleProposal() ([]byte, []T, error) {
	n := len(e.cfg.AllIDs)
	amount := e.cfg.BatchSize / n
	if amount < 1 {
		amount = 1
	}

	windowSize := e.cfg.BatchSize
	if windowSize > e.buffer.len() {
		windowSize = e.buffer.len()
	}
	window := e.buffer.window(windowSize)

	chosen, err := sampleWithoutReplacement(e.cfg.Rand, window, amount)
	if err != nil {
		return nil, nil, err
	}

	data, err := encodeProposal(e.cfg.Codec, chosen)
	if err != nil {
		return nil, nil, err
	}

	e.logger.Log(LevelDebug, "sampled proposal",
		"node_id", e.cfg.ID, "epoch", e.epoch, "chosen", len(chosen), "window", len(window))

	return data, chosen, nil
}
