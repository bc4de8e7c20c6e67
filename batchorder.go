/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft

import "sort"

// unionDecodedProposals decodes every proposal in an ACS output map,
// deduplicates the resulting transactions into a set, and returns them
// in the canonical order Codec.Less defines. Map iteration order of
// outputs is irrelevant to the result since duplicates collapse and the
// final order is re-derived from Less, not from iteration order.
func unionDecodedProposals[N comparable, T comparable](codec Codec[T], outputs map[N][]byte) ([]T, error) {
	seen := make(map[T]struct{})
	var ordered []T
	for _, raw := range outputs {
		txs, err := decodeProposal(codec, raw)
		if err != nil {
			return nil, err
		}
		for _, tx := range txs {
			if _, dup := seen[tx]; dup {
				continue
			}
			seen[tx] = struct{}{}
			ordered = append(ordered, tx)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		return codec.Less(ordered[i], ordered[j])
	})
	return ordered, nil
}
