/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft

import (
	"fmt"

	"github.com/lab10-coop/hbbft/pkg/status"
)

// Status returns a point-in-time diagnostic snapshot. It performs no
// mutation and may be called freely from the goroutine that owns the
// engine (see doc.go on the engine's single-owner concurrency model).
func (e *Engine[N, T]) Status() status.Engine {
	return status.Engine{
		NodeID:           fmt.Sprint(e.cfg.ID),
		Epoch:            e.epoch,
		BufferLength:     e.buffer.len(),
		LiveACSInstances: e.acsRegistry.len(),
		PendingMessages:  len(e.outMsgs),
		PendingBatches:   len(e.outBatches),
	}
}
