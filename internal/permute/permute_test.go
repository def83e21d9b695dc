package permute

import (
	"math/big"
	"testing"
)

func TestProductSpaceRoundTrip(t *testing.T) {
	space := NewProductSpace([][]int{{1, 2}, {5, 6, 7}, {0, 9}})
	total := space.Len()
	for r := int64(0); r < total.Int64(); r++ {
		rank := big.NewInt(r)
		words := space.Unrank(rank)
		got := space.Rank(words)
		if got.Cmp(rank) != 0 {
			t.Fatalf("rank(unrank(%d)) = %s, want %d", r, got, r)
		}
	}
}

func TestProductSpaceLen(t *testing.T) {
	space := NewProductSpace([][]int{{1, 2}, {5, 6, 7}})
	if got := space.Len(); got.Cmp(big.NewInt(6)) != 0 {
		t.Errorf("Len() = %s, want 6", got)
	}
}

func TestMultisetSpaceRoundTrip(t *testing.T) {
	// 3 anchors at positions 0,1,2; 4 floating singleton slots competing
	// for the 3 remaining positions: P(4,3) = 24.
	anchorWord := []int{100, 101, 102, -1, -1, -1}
	floating := [][]int{{10}, {11}, {12}, {13}}
	space := NewMultisetSpace(anchorWord, floating)

	total := space.Len()
	want := big.NewInt(24)
	if total.Cmp(want) != 0 {
		t.Fatalf("Len() = %s, want %s", total, want)
	}

	for r := int64(0); r < 24; r++ {
		rank := big.NewInt(r)
		words := space.Unrank(rank)
		got := space.Rank(words)
		if got.Cmp(rank) != 0 {
			t.Errorf("rank(unrank(%d)) = %s, want %d (words=%v)", r, got, r, words)
		}
	}
}

func TestMultisetSpaceDistinctCandidates(t *testing.T) {
	anchorWord := []int{-1, -1, -1}
	floating := [][]int{{1}, {2}, {3}}
	space := NewMultisetSpace(anchorWord, floating)

	seen := make(map[[3]int]bool)
	total := space.Len().Int64()
	for r := int64(0); r < total; r++ {
		words := space.Unrank(big.NewInt(r))
		key := [3]int{words[0], words[1], words[2]}
		if seen[key] {
			t.Fatalf("duplicate candidate %v at rank %d", key, r)
		}
		seen[key] = true
	}
	if int64(len(seen)) != total {
		t.Errorf("expected %d distinct candidates, got %d", total, len(seen))
	}
}

func TestMultisetSpaceWithWildcardSlot(t *testing.T) {
	// One anchor, two floating slots: one singleton, one 2-word set.
	// K=2 positions, slots of cardinality {1,2}: Len = 2!*e_2(1,2) = 2*2 = 4.
	anchorWord := []int{7, -1, -1}
	floating := [][]int{{1}, {20, 21}}
	space := NewMultisetSpace(anchorWord, floating)

	if got := space.Len(); got.Cmp(big.NewInt(4)) != 0 {
		t.Fatalf("Len() = %s, want 4", got)
	}
	for r := int64(0); r < 4; r++ {
		words := space.Unrank(big.NewInt(r))
		got := space.Rank(words)
		if got.Cmp(big.NewInt(r)) != 0 {
			t.Errorf("rank(unrank(%d)) = %s, want %d", r, got, r)
		}
	}
}
