/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package status defines a point-in-time diagnostic snapshot of an
// engine, the same aggregate-snapshot shape a StateMachine.Status()
// call returns.
package status

import "fmt"

// Engine is a read-only snapshot; producing one never mutates the
// engine it was taken from.
type Engine struct {
	NodeID           string `json:"node_id"`
	Epoch            uint64 `json:"epoch"`
	BufferLength     int    `json:"buffer_length"`
	LiveACSInstances int    `json:"live_acs_instances"`
	PendingMessages  int    `json:"pending_messages"`
	PendingBatches   int    `json:"pending_batches"`
}

func (s Engine) String() string {
	return fmt.Sprintf(
		"node=%s epoch=%d buffer=%d live_acs=%d pending_msgs=%d pending_batches=%d",
		s.NodeID, s.Epoch, s.BufferLength, s.LiveACSInstances, s.PendingMessages, s.PendingBatches,
	)
}
