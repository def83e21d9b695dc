package enumerate

import (
	"sync/atomic"
	"testing"

	"github.com/dzita/seedcat/internal/permute"
)

func TestRunCountConsistency(t *testing.T) {
	space := permute.NewProductSpace([][]int{{1, 2, 3}, {4, 5}, {6, 7, 8, 9}})

	for _, workers := range []int{1, 2, 4} {
		ch := Run(space, Options{Workers: workers, ChecksumEnabled: false}, nil)
		n := 0
		for range ch {
			n++
		}
		want := space.Len().Int64()
		if int64(n) != want {
			t.Errorf("workers=%d: got %d candidates, want %d", workers, n, want)
		}
	}
}

func TestRunDeterminism(t *testing.T) {
	space := permute.NewProductSpace([][]int{{1, 2, 3}, {4, 5}, {6, 7, 8, 9}})

	collect := func(workers int) map[[3]int]bool {
		seen := make(map[[3]int]bool)
		ch := Run(space, Options{Workers: workers, ChecksumEnabled: false}, nil)
		for c := range ch {
			seen[[3]int{c.Words[0], c.Words[1], c.Words[2]}] = true
		}
		return seen
	}

	a := collect(1)
	b := collect(3)
	if len(a) != len(b) {
		t.Fatalf("different candidate counts across worker counts: %d vs %d", len(a), len(b))
	}
	for k := range a {
		if !b[k] {
			t.Errorf("candidate %v present with 1 worker but missing with 3", k)
		}
	}
}

func TestRunSplitCorrectnessNoDuplicates(t *testing.T) {
	space := permute.NewProductSpace([][]int{{1, 2, 3, 4}, {5, 6, 7}})
	seen := make(map[[2]int]int)
	ch := Run(space, Options{Workers: 3, ChecksumEnabled: false}, nil)
	for c := range ch {
		seen[[2]int{c.Words[0], c.Words[1]}]++
	}
	for k, count := range seen {
		if count != 1 {
			t.Errorf("candidate %v emitted %d times, want 1", k, count)
		}
	}
	if int64(len(seen)) != space.Len().Int64() {
		t.Errorf("got %d distinct candidates, want %d", len(seen), space.Len().Int64())
	}
}

func TestRunCancellation(t *testing.T) {
	space := permute.NewProductSpace([][]int{{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, {1, 2, 3, 4, 5, 6, 7, 8, 9, 10}})
	var stop int32
	atomic.StoreInt32(&stop, 1)

	ch := Run(space, Options{Workers: 2, ChecksumEnabled: false}, &stop)
	n := 0
	for range ch {
		n++
	}
	if n != 0 {
		t.Errorf("expected 0 candidates with stop pre-set, got %d", n)
	}
}

func TestCountMatchesChecksumFilter(t *testing.T) {
	// All 2048 choices for the last word of an otherwise all-"abandon"
	// 12-word phrase; exactly 2048/16 = 128 satisfy the checksum (CS=4).
	words := make([][]int, 12)
	for i := 0; i < 11; i++ {
		words[i] = []int{0}
	}
	all := make([]int, 2048)
	for i := range all {
		all[i] = i
	}
	words[11] = all

	space := permute.NewProductSpace(words)
	if got := Count(space, true); got != 128 {
		t.Errorf("Count(checksumEnabled=true) = %d, want 128", got)
	}
	if got := Count(space, false); got != 2048 {
		t.Errorf("Count(checksumEnabled=false) = %d, want 2048", got)
	}
}
