/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft

import "github.com/pkg/errors"

// ErrOwnIDMissing is returned by New when the configured own ID is not a
// member of AllIDs. Fatal: construction did not succeed.
var ErrOwnIDMissing = errors.New("hbbft: own id is not a member of all_ids")

// ErrUnknownSender is returned by HandleMessage when the sender is not a
// member. Not fatal: the engine rejects the single message and its state
// is otherwise unchanged.
var ErrUnknownSender = errors.New("hbbft: message from unknown sender")

// ACSError wraps an error returned by the ACS instance for a given
// epoch. The engine does not attempt to heal the ACS; the error is
// surfaced verbatim to the caller.
type ACSError struct {
	Epoch uint64
	Err   error
}

func (e *ACSError) Error() string {
	return errors.Wrapf(e.Err, "hbbft: acs error in epoch %d", e.Epoch).Error()
}

func (e *ACSError) Unwrap() error {
	return e.Err
}

// CodecError wraps a proposal encode or decode failure. Op is "encode"
// (the sampler failed to serialize this node's own proposal, which
// indicates an embedder bug) or "decode" (an ACS output entry failed to
// deserialize, which may indicate a Byzantine proposal or a broken ACS
// contract — see the design notes on malformed proposals).
type CodecError struct {
	Op  string
	Err error
}

func (e *CodecError) Error() string {
	return errors.Wrapf(e.Err, "hbbft: proposal %s failed", e.Op).Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}
