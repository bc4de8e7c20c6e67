/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package acs defines the Asynchronous Common Subset contract that the
// Honey Badger epoch engine drives one instance of per epoch. ACS itself
// — a composition of Reliable Broadcast and Binary Byzantine Agreement —
// is an external collaborator; this package only pins down its
// black-box shape (validity, agreement, totality, Byzantine tolerance up
// to floor((n-1)/3) are semantic obligations on whatever Instance an
// embedder supplies, not something this package can enforce).
package acs

import "github.com/lab10-coop/hbbft/pkg/wire"

// Instance is one ACS run, scoped to a single epoch. Input is called at
// most once. HandleMessage may be called many times, with messages
// destined for this instance already demultiplexed by epoch. Messages
// drains whatever outbound traffic Input/HandleMessage produced since
// the last drain. NextOutput returns at most one non-nil result over the
// instance's lifetime; once it has, Terminated eventually becomes true
// (monotone false -> true, never back).
type Instance[N comparable] interface {
	Input(proposal []byte) error
	HandleMessage(sender N, msg any) error
	Messages() []wire.TargetedMessage[N, any]
	NextOutput() (map[N][]byte, bool)
	Terminated() bool
}

// Factory constructs a fresh Instance for one epoch, scoped to the given
// membership. It is called at most once per epoch, lazily, the first
// time that epoch is referenced.
type Factory[N comparable] func(own N, allIDs []N) (Instance[N], error)
