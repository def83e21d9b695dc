package permute

import "math/big"

// MultisetSpace ranks `--combinations` mode: anchored positions keep
// their declared word, and the remaining K = N - anchored positions are
// filled by an ordered, duplicate-free selection from the floating
// slots, each contributing one word drawn from its own admissible set.
//
// The ranking generalizes spec §4.4's factoradic algorithm from single
// words to slots that may admit more than one word: at each position we
// choose the slot (and, within it, the word) whose block of completions
// covers the residual rank, using the elementary symmetric polynomial of
// the remaining slots' cardinalities to size each block exactly (see
// cardinality.permutedCardinality, which computes the same quantity for
// the total count). Advancing to the next candidate re-derives via
// Unrank(rank+1) rather than an incremental O(L) step; with phrase
// lengths capped at 24 this costs at most 24 steps per candidate, each
// one symmetric-polynomial computation plus one deflation per remaining
// floating slot tried, which is not the asymptotic bound spec §4.4
// describes but is exact and simple (documented in DESIGN.md).
type MultisetSpace struct {
	length      int   // full phrase length N
	anchorWord  []int // anchorWord[pos] is the fixed word at an anchored position, else -1
	floating    [][]int // floating slots' admissible word sets, in declared order
	nonAnchored []int   // positions (ascending) to be filled by the floating selection
	k           int     // len(nonAnchored)
}

// NewMultisetSpace builds a MultisetSpace. anchorWord must have length N
// with -1 at every non-anchored position. floating lists the admissible
// word sets of the slots competing for the non-anchored positions, in
// their original declaration order.
func NewMultisetSpace(anchorWord []int, floating [][]int) *MultisetSpace {
	var nonAnchored []int
	for pos, w := range anchorWord {
		if w == -1 {
			nonAnchored = append(nonAnchored, pos)
		}
	}
	return &MultisetSpace{
		length:      len(anchorWord),
		anchorWord:  anchorWord,
		floating:    floating,
		nonAnchored: nonAnchored,
		k:           len(nonAnchored),
	}
}

func (s *MultisetSpace) Len() *big.Int {
	if s.k > len(s.floating) {
		return big.NewInt(0)
	}
	e := symmetricPoly(s.cardinalities(allSlots(len(s.floating))), s.k)
	return new(big.Int).Mul(e[s.k], factorial(s.k))
}

func (s *MultisetSpace) cardinalities(slots []int) []int64 {
	out := make([]int64, len(slots))
	for i, j := range slots {
		out[i] = int64(len(s.floating[j]))
	}
	return out
}

func allSlots(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// stepInfo holds the per-position bookkeeping Rank computes while walking
// the available-slot pool forward; the final rank is combined from these
// entries afterwards.
type stepInfo struct {
	slot      int
	wordInSet int
	offset    *big.Int // cumulative weight of every candidate skipped before the chosen one
	block     *big.Int // size of one word-block within the chosen slot: d! * rest
}

func (s *MultisetSpace) Unrank(rank *big.Int) []int {
	result := make([]int, s.length)
	copy(result, s.anchorWord)

	available := allSlots(len(s.floating))
	r := new(big.Int).Set(rank)

	for step := 0; step < s.k; step++ {
		d := s.k - step - 1
		e := symmetricPoly(s.cardinalitiesOf(available), d+1)

		chosen := -1
		for _, j := range available {
			c := int64(len(s.floating[j]))
			e2 := deflate(e, c)
			rest := e2[d]
			block := new(big.Int).Mul(factorial(d), rest)

			wordRank := new(big.Int).Div(r, blockOrOne(block))
			// total weight of slot j across all its words
			weight := new(big.Int).Mul(block, big.NewInt(c))
			if r.Cmp(weight) < 0 {
				chosen = j
				wi := wordRank.Int64()
				result[s.nonAnchored[step]] = s.floating[j][wi]
				r.Sub(r, new(big.Int).Mul(block, wordRank))
				break
			}
			r.Sub(r, weight)
		}
		if chosen == -1 {
			// rank out of range; clamp to the last candidate deterministically
			chosen = available[len(available)-1]
			result[s.nonAnchored[step]] = s.floating[chosen][0]
		}
		available = removeSlot(available, chosen)
	}
	return result
}

func blockOrOne(b *big.Int) *big.Int {
	if b.Sign() == 0 {
		return big.NewInt(1)
	}
	return b
}

func (s *MultisetSpace) cardinalitiesOf(slots []int) []int64 {
	out := make([]int64, len(slots))
	for i, j := range slots {
		out[i] = int64(len(s.floating[j]))
	}
	return out
}

func removeSlot(available []int, target int) []int {
	out := make([]int, 0, len(available)-1)
	for _, j := range available {
		if j != target {
			out = append(out, j)
		}
	}
	return out
}

func (s *MultisetSpace) Rank(words []int) *big.Int {
	available := allSlots(len(s.floating))
	infos := make([]stepInfo, s.k)

	for step := 0; step < s.k; step++ {
		d := s.k - step - 1
		target := words[s.nonAnchored[step]]
		e := symmetricPoly(s.cardinalitiesOf(available), d+1)

		offset := big.NewInt(0)
		found := false
		for _, j := range available {
			c := int64(len(s.floating[j]))
			e2 := deflate(e, c)
			rest := e2[d]
			block := new(big.Int).Mul(factorial(d), rest)

			if !found && containsInt(s.floating[j], target) {
				wi := indexOf(s.floating[j], target)
				infos[step] = stepInfo{slot: j, wordInSet: wi, offset: new(big.Int).Set(offset), block: block}
				found = true
				available = removeSlot(available, j)
				break
			}
			offset.Add(offset, new(big.Int).Mul(block, big.NewInt(c)))
		}
		if !found {
			infos[step] = stepInfo{slot: -1, offset: big.NewInt(0), block: big.NewInt(1)}
		}
	}

	rank := big.NewInt(0)
	for t := s.k - 1; t >= 0; t-- {
		info := infos[t]
		contribution := new(big.Int).Add(info.offset, new(big.Int).Mul(big.NewInt(int64(info.wordInSet)), info.block))
		rank = new(big.Int).Add(contribution, rank)
	}
	return rank
}

func containsInt(sorted []int, v int) bool {
	i := indexOf(sorted, v)
	return i < len(sorted) && sorted[i] == v
}

// symmetricPoly returns e[0..maxDegree], the elementary symmetric
// polynomials of cardinalities, truncated to maxDegree.
func symmetricPoly(cardinalities []int64, maxDegree int) []*big.Int {
	e := make([]*big.Int, maxDegree+1)
	e[0] = big.NewInt(1)
	for j := 1; j <= maxDegree; j++ {
		e[j] = big.NewInt(0)
	}
	for _, c := range cardinalities {
		cb := big.NewInt(c)
		for j := maxDegree; j >= 1; j-- {
			e[j].Add(e[j], new(big.Int).Mul(e[j-1], cb))
		}
	}
	return e
}

// deflate divides the generating polynomial prod(1+c_i x) (given as its
// coefficient array e) by the factor (1+c x), returning the one-degree-
// shorter coefficient array of the remaining product.
func deflate(e []*big.Int, c int64) []*big.Int {
	n := len(e) - 1
	out := make([]*big.Int, n)
	out[0] = big.NewInt(1)
	cb := big.NewInt(c)
	for j := 1; j < n; j++ {
		out[j] = new(big.Int).Sub(e[j], new(big.Int).Mul(cb, out[j-1]))
	}
	return out
}

func factorial(n int) *big.Int {
	f := big.NewInt(1)
	for i := 2; i <= n; i++ {
		f.Mul(f, big.NewInt(int64(i)))
	}
	return f
}
