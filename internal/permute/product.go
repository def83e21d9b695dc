package permute

import "math/big"

// ProductSpace ranks the plain cartesian product of independent per-slot
// admissible word sets -- the numbering scheme for a SeedPattern with no
// `--combinations`. Slot i is the i-th most significant digit in a
// mixed-radix representation with radix equal to that slot's
// cardinality; words[i] is consulted to turn a digit back into a word
// index.
type ProductSpace struct {
	words [][]int // admissible word indices per slot, in declared order
}

// NewProductSpace builds a ProductSpace over admissibleWords, one sorted
// slice of word indices per phrase position.
func NewProductSpace(admissibleWords [][]int) *ProductSpace {
	return &ProductSpace{words: admissibleWords}
}

func (s *ProductSpace) Len() *big.Int {
	total := big.NewInt(1)
	for _, set := range s.words {
		total.Mul(total, big.NewInt(int64(len(set))))
	}
	return total
}

func (s *ProductSpace) Unrank(rank *big.Int) []int {
	digits := make([]int, len(s.words))
	rem := new(big.Int).Set(rank)
	for i := len(s.words) - 1; i >= 0; i-- {
		radix := big.NewInt(int64(len(s.words[i])))
		q, m := new(big.Int).QuoRem(rem, radix, new(big.Int))
		digits[i] = s.words[i][m.Int64()]
		rem = q
	}
	return digits
}

func (s *ProductSpace) Rank(wordIndices []int) *big.Int {
	rank := big.NewInt(0)
	for i, set := range s.words {
		pos := indexOf(set, wordIndices[i])
		rank.Mul(rank, big.NewInt(int64(len(set))))
		rank.Add(rank, big.NewInt(int64(pos)))
	}
	return rank
}

func indexOf(sorted []int, v int) int {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := (lo + hi) / 2
		if sorted[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
