/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft

import (
	"crypto/rand"
	"io"

	"github.com/lab10-coop/hbbft/pkg/acs"
)

// Config holds the construction-time parameters.
type Config[N comparable, T comparable] struct {
	// ID is this node's identity; must be a member of AllIDs.
	ID N

	// AllIDs is the membership set, including ID. Must be non-empty.
	AllIDs []N

	// BatchSize is the target number of transactions per batch; it
	// shapes the sampler's per-node share. Recommended on
	// the order of n^2*log(n), per the Honey Badger paper's sizing note.
	BatchSize int

	// InitialTxs seeds the mempool buffer. May be empty.
	InitialTxs []T

	// Codec encodes/decodes/orders T. Required.
	Codec Codec[T]

	// NewACS constructs one ACS instance per epoch. Required.
	NewACS acs.Factory[N]

	// Logger receives structured diagnostic events. Defaults to
	// NopLogger.
	Logger Logger

	// Rand is the randomness source the sampler draws from. Defaults to
	// crypto/rand.Reader. Production deployments must use a
	// cryptographically unpredictable source: predictable
	// sampling leaks transaction inclusion to the adversary.
	Rand io.Reader

	// Metrics, if non-nil, receives Prometheus observations for every
	// batch emitted and every buffer mutation. Optional.
	Metrics *Metrics
}

func (c *Config[N, T]) setDefaults() {
	if c.Logger == nil {
		c.Logger = NopLogger{}
	}
	if c.Rand == nil {
		c.Rand = rand.Reader
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize(len(c.AllIDs))
	}
}

// defaultBatchSize follows the usual Honey Badger sizing
// guidance of roughly n^2*log(n), floored to a sane minimum so a
// single-node or two-node configuration still proposes something.
func defaultBatchSize(n int) int {
	if n <= 0 {
		return 1
	}
	logN := 0
	for x := n; x > 1; x /= 2 {
		logN++
	}
	if logN < 1 {
		logN = 1
	}
	size := n * n * logN
	if size < n {
		size = n
	}
	return size
}
