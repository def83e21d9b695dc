// Package permute implements lexicographic rank/unrank over the two
// candidate-numbering schemes the Enumerator needs: a plain mixed-radix
// product space for unpermuted SeedPatterns, and a factoradic-style
// multiset permutation space for patterns using `--combinations`. Both
// let a worker seek directly to the start of its assigned rank range via
// Unrank. Neither has an incremental successor step: the Enumerator
// re-derives each candidate via Unrank (see MultisetSpace doc comment).
package permute

import "math/big"

// Space is the numbering scheme the Enumerator iterates: Len gives the
// total candidate count, Unrank maps a rank to the full phrase (word
// indices per position, length L), and Rank is Unrank's inverse (used by
// tests to verify the round-trip property).
type Space interface {
	Len() *big.Int
	Unrank(rank *big.Int) []int
	Rank(words []int) *big.Int
}
