/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft

import "fmt"

// assertFailed panics with a message flagging a broken internal
// invariant rather than a runtime condition a caller could have
// avoided; these never fire unless the engine itself has a bug.
func assertFailed(failure, format string, args ...interface{}) {
	panic(fmt.Sprintf(fmt.Sprintf("hbbft: assertion failed, code bug? -- %s -- %%%s", failure, format), args...))
}

func assertTrue(value bool, text string) {
	if !value {
		assertFailed("expected false to be true", text)
	}
}

func assertGreaterThanOrEqual(lhs, rhs uint64, text string) {
	if lhs < rhs {
		assertFailed(fmt.Sprintf("expected %v >= %v", lhs, rhs), text)
	}
}
