/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft

import "github.com/lab10-coop/hbbft/pkg/acs"

// errObsoleteEpoch is returned internally by registry.getOrCreate when
// asked to resurrect an epoch that has already terminated and advanced
// past; it never escapes the package (router.go treats it as "nothing
// to do", and assembler.go only ever asks for the current epoch).
var errObsoleteEpoch = &obsoleteEpochError{}

type obsoleteEpochError struct{}

func (*obsoleteEpochError) Error() string { return "hbbft: epoch is obsolete" }

// registry is the ACS registry: an ordered-by-key (in
// effect, since epochs only ever increase) mapping from epoch to live
// ACS instance, with lazy construction and termination-based eviction.
type registry[N comparable] struct {
	factory acs.Factory[N]
	own     N
	allIDs  []N
	live    map[uint64]acs.Instance[N]
}

func newRegistry[N comparable](own N, allIDs []N, factory acs.Factory[N]) *registry[N] {
	return &registry[N]{
		factory: factory,
		own:     own,
		allIDs:  allIDs,
		live:    make(map[uint64]acs.Instance[N]),
	}
}

// getOrCreate returns the instance for epoch, constructing it on first
// reference. It refuses (errObsoleteEpoch) any epoch strictly less than
// currentEpoch, preventing resurrection of completed epochs.
func (r *registry[N]) getOrCreate(epoch, currentEpoch uint64) (acs.Instance[N], error) {
	if inst, ok := r.live[epoch]; ok {
		return inst, nil
	}
	if epoch < currentEpoch {
		return nil, errObsoleteEpoch
	}
	inst, err := r.factory(r.own, r.allIDs)
	if err != nil {
		return nil, err
	}
	assertTrue(inst != nil, "acs factory returned a nil instance with a nil error")
	r.live[epoch] = inst
	return inst, nil
}

func (r *registry[N]) get(epoch uint64) (acs.Instance[N], bool) {
	inst, ok := r.live[epoch]
	return inst, ok
}

func (r *registry[N]) remove(epoch uint64) {
	delete(r.live, epoch)
}

// gc scans [from, to) and evicts every terminated instance in range, the
// discipline that is mandatory for correctness: a version that only
// removes on epoch advance can strand a terminated-but-past instance
// when a later message arrives addressed to a still-older epoch.
func (r *registry[N]) gc(from, to uint64) {
	for e := from; e < to; e++ {
		if inst, ok := r.live[e]; ok && inst.Terminated() {
			delete(r.live, e)
		}
	}
}

func (r *registry[N]) len() int {
	return len(r.live)
}
