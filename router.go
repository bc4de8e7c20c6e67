/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft

// Message is the wire envelope: Message ::=
// CommonSubset(epoch, acs_msg). AcsMsg is opaque to the engine; it is
// whatever type the embedder's ACS implementation defines for itself.
type Message[N comparable] struct {
	Epoch  uint64
	AcsMsg any
}

// HandleMessage is the inbound message router. It
// rejects messages from non-members, drops messages for epochs already
// past, creates or fetches the ACS instance for the message's epoch,
// delivers the payload, drains whatever outbound traffic that produced,
// runs the output assembler if the message targeted the current epoch,
// and garbage-collects terminated instances in [epoch, engine.epoch).
func (e *Engine[N, T]) HandleMessage(sender N, msg Message[N]) error {
	if !e.isMember(sender) {
		return ErrUnknownSender
	}

	epoch := msg.Epoch
	if epoch < e.epoch {
		// Obsolete: already delivered. a still-live instance that could still help a laggard is not reused here; the
		// conservative reading is to drop and let the laggard catch up via gossip.
		return nil
	}

	inst, err := e.acsRegistry.getOrCreate(epoch, e.epoch)
	if err != nil {
		if err == errObsoleteEpoch {
			return nil
		}
		return &ACSError{Epoch: epoch, Err: err}
	}

	if err := inst.HandleMessage(sender, msg.AcsMsg); err != nil {
		return &ACSError{Epoch: epoch, Err: err}
	}

	e.drainACSMessages(epoch, inst)

	if epoch == e.epoch {
		if err := e.assembleOutputs(); err != nil {
			return err
		}
	}

	e.acsRegistry.gc(epoch, e.epoch)

	return nil
}

func (e *Engine[N, T]) isMember(id N) bool {
	_, ok := e.memberSet[id]
	return ok
}
