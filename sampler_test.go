/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft

import (
	"crypto/rand"
	"testing"
)

func TestSampleWithoutReplacementShortWindowReturnsWhole(t *testing.T) {
	population := []int{1, 2, 3}
	got, err := sampleWithoutReplacement(rand.Reader, population, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(population) {
		t.Fatalf("len = %d, want %d", len(got), len(population))
	}
}

func TestSampleWithoutReplacementReturnsDistinctElements(t *testing.T) {
	population := []int{1, 2, 3, 4, 5, 6, 7, 8}
	got, err := sampleWithoutReplacement(rand.Reader, population, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	seen := make(map[int]struct{}, len(got))
	for _, v := range got {
		if _, dup := seen[v]; dup {
			t.Fatalf("sampleWithoutReplacement returned duplicate element %d", v)
		}
		seen[v] = struct{}{}
	}
}

func TestSampleWithoutReplacementDoesNotMutatePopulation(t *testing.T) {
	population := []int{1, 2, 3, 4}
	cp := append([]int(nil), population...)
	if _, err := sampleWithoutReplacement(rand.Reader, population, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range population {
		if population[i] != cp[i] {
			t.Fatalf("population mutated: got %v, want %v", population, cp)
		}
	}
}

func TestRandIntnPanicsOnNonPositiveN(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected randIntn(0) to panic")
		}
	}()
	_, _ = randIntn(rand.Reader, 0)
}
