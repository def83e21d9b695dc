// Package enumerate produces the deterministic, splittable candidate
// stream described in spec §4.6: a fixed worker pool partitions the
// pre-checksum rank space into contiguous ranges using the Permutation
// Ranker, each worker walks its range in ascending rank order, filters
// through the Checksum Filter, and writes survivors to a bounded queue
// drained by the Backend Driver.
package enumerate

import (
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/dzita/seedcat/internal/checksum"
	"github.com/dzita/seedcat/internal/permute"
)

// QueueCapacity is the bounded candidate queue's capacity (spec §4.6:
// "bounded by ~64K candidates; a full queue blocks producers").
const QueueCapacity = 1 << 16

// Candidate is one materialized, checksum-valid seed phrase.
type Candidate struct {
	Words []int
	Rank  *big.Int
}

// Options configures a Run call.
type Options struct {
	Workers         int  // worker count; defaults to 1 if <= 0
	ChecksumEnabled bool // when false, every candidate in the space is emitted (used for count-consistency tests)
}

// Run partitions space across Options.Workers goroutines and streams
// surviving candidates on the returned channel. Stop, if non-nil, is
// checked between every candidate; setting it to nonzero causes every
// worker to exit at its next iteration boundary (spec §5 cancellation).
// The returned channel is closed once every worker has exited.
func Run(space permute.Space, opts Options, stop *int32) <-chan Candidate {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	out := make(chan Candidate, QueueCapacity)
	total := space.Len()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start, end := rankRange(total, workers, w)
		wg.Add(1)
		go func(start, end *big.Int) {
			defer wg.Done()
			runWorker(space, start, end, opts.ChecksumEnabled, stop, out)
		}(start, end)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

func runWorker(space permute.Space, start, end *big.Int, checksumEnabled bool, stop *int32, out chan<- Candidate) {
	rank := new(big.Int).Set(start)
	one := big.NewInt(1)
	for rank.Cmp(end) < 0 {
		if stop != nil && atomic.LoadInt32(stop) != 0 {
			return
		}
		words := space.Unrank(rank)
		if !checksumEnabled || checksum.Valid(words) {
			out <- Candidate{Words: words, Rank: new(big.Int).Set(rank)}
		}
		rank.Add(rank, one)
	}
}

// rankRange returns the contiguous half-open range [start, end) assigned
// to worker index w out of workers total, covering [0, total) with no
// gaps or overlaps: worker w gets ranks [w*total/workers,
// (w+1)*total/workers).
func rankRange(total *big.Int, workers, w int) (*big.Int, *big.Int) {
	W := big.NewInt(int64(workers))
	start := new(big.Int).Mul(total, big.NewInt(int64(w)))
	start.Div(start, W)
	end := new(big.Int).Mul(total, big.NewInt(int64(w+1)))
	end.Div(end, W)
	return start, end
}

// Count drains space's full candidate stream single-threaded (no
// parallelism, no cancellation) and returns how many candidates pass the
// checksum filter when enabled, or the raw space size when it is not.
// Used by tests to verify count consistency against the Cardinality
// Engine (spec §8 property 1) on spaces small enough to enumerate.
func Count(space permute.Space, checksumEnabled bool) int {
	total := space.Len()
	n := 0
	rank := big.NewInt(0)
	one := big.NewInt(1)
	for rank.Cmp(total) < 0 {
		words := space.Unrank(rank)
		if !checksumEnabled || checksum.Valid(words) {
			n++
		}
		rank.Add(rank, one)
	}
	return n
}
