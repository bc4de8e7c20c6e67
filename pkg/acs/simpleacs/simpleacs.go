/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package simpleacs is a reference Asynchronous Common Subset
// implementation satisfying the acs.Instance contract.
//
// It is explicitly NOT Byzantine fault tolerant: it satisfies validity,
// agreement, and totality only when every participant in the run is
// honest and the surrounding transport delivers every message (no
// network partition, no adversarial silence). It exists for tests and
// for cmd/hbsim's local simulation, where those conditions hold by
// construction. A production deployment must supply a real
// Reliable-Broadcast + Binary-Byzantine-Agreement composition, per
// the module's external interfaces.
package simpleacs

import (
	"fmt"

	"github.com/lab10-coop/hbbft/pkg/acs"
	"github.com/lab10-coop/hbbft/pkg/wire"
)

// proposalMsg is the only message this ACS ever exchanges: "here is my
// proposal for this epoch."
type proposalMsg struct {
	Proposal []byte
}

// ACS is one epoch's instance. It broadcasts its own input on Input,
// collects peers' proposals via HandleMessage, and becomes ready once it
// has given its own input and holds the proposals of the first n-f
// members of allIDs, where f = floor((n-1)/3); its output is exactly
// those n-f proposals. Every node must therefore be given allIDs in the
// same order.
type ACS[N comparable] struct {
	own    N
	allIDs []N
	need   int

	sentInput bool
	received  map[N][]byte

	outbox []wire.TargetedMessage[N, any]

	delivered  bool
	terminated bool
}

// NewFactory returns an acs.Factory that builds simpleacs instances.
func NewFactory[N comparable]() acs.Factory[N] {
	return func(own N, allIDs []N) (acs.Instance[N], error) {
		n := len(allIDs)
		f := (n - 1) / 3
		need := n - f
		if need < 1 {
			need = 1
		}
		ids := make([]N, len(allIDs))
		copy(ids, allIDs)
		return &ACS[N]{
			own:      own,
			allIDs:   ids,
			need:     need,
			received: make(map[N][]byte, n),
		}, nil
	}
}

func (a *ACS[N]) Input(proposal []byte) error {
	if a.sentInput {
		return fmt.Errorf("simpleacs: input already given for this epoch")
	}
	a.sentInput = true
	a.received[a.own] = proposal
	a.outbox = append(a.outbox, wire.TargetedMessage[N, any]{
		Target:  wire.Broadcast[N](),
		Message: proposalMsg{Proposal: proposal},
	})
	return nil
}

func (a *ACS[N]) HandleMessage(sender N, msg any) error {
	pm, ok := msg.(proposalMsg)
	if !ok {
		return fmt.Errorf("simpleacs: unexpected message type %T", msg)
	}
	if _, ok := a.received[sender]; !ok {
		a.received[sender] = pm.Proposal
	}
	return nil
}

func (a *ACS[N]) Messages() []wire.TargetedMessage[N, any] {
	out := a.outbox
	a.outbox = nil
	return out
}

func (a *ACS[N]) NextOutput() (map[N][]byte, bool) {
	if a.delivered || !a.ready() {
		return nil, false
	}
	a.delivered = true
	a.terminated = true
	out := make(map[N][]byte, a.need)
	for _, id := range a.allIDs[:a.need] {
		out[id] = a.received[id]
	}
	return out, true
}

func (a *ACS[N]) Terminated() bool {
	return a.terminated
}

func (a *ACS[N]) ready() bool {
	if !a.sentInput {
		return false
	}
	for _, id := range a.allIDs[:a.need] {
		if _, ok := a.received[id]; !ok {
			return false
		}
	}
	return true
}
