// Package cardinality computes exact, arbitrary-precision candidate
// counts for a parsed pattern before any enumeration happens, so the
// Mode Planner and the configuration preview never have to enumerate the
// search space just to size it.
package cardinality

import (
	"math/big"

	"github.com/dzita/seedcat/internal/pattern"
	"github.com/dzita/seedcat/internal/wordlist"
)

// SeedCounts holds both the pre-filter product (used for the preview's
// "Seeds" figure and for Total Guesses) and the post-checksum-filter
// expected count (used to size how many valid mnemonics the Enumerator
// and Checksum Filter should actually produce).
type SeedCounts struct {
	Prefilter *big.Int
	Expected  *big.Int
}

// Seed computes the exact pre-filter product and the expected
// post-checksum-filter count for p.
//
// Non-permuted patterns: the pre-filter count is the product of each
// slot's cardinality. Permuted patterns: the pre-filter count is the
// number of ways to assign an ordered, duplicate-free selection of K =
// N - anchored floating slots to the K non-anchored positions, each
// contributing a word drawn from its own admissible set -- i.e. K! times
// the K-th elementary symmetric polynomial of the floating slots'
// cardinalities (see DESIGN.md for why this generalizes the "multiset
// permutation count" of spec §4.3 to slots with more than one
// admissible word).
func Seed(p *pattern.SeedPattern) SeedCounts {
	var prefilter *big.Int
	if p.Permuted() {
		prefilter = permutedCardinality(p)
	} else {
		prefilter = big.NewInt(1)
		for _, slot := range p.Slots {
			prefilter.Mul(prefilter, big.NewInt(int64(slot.Cardinality())))
		}
	}

	cs := wordlist.ChecksumBits(p.Length())
	divisor := new(big.Int).Lsh(big.NewInt(1), uint(cs))
	expected := new(big.Int).Div(prefilter, divisor)

	return SeedCounts{Prefilter: prefilter, Expected: expected}
}

func permutedCardinality(p *pattern.SeedPattern) *big.Int {
	var floating []pattern.SeedSlot
	for _, slot := range p.Slots {
		if !slot.Anchored {
			floating = append(floating, slot)
		}
	}
	k := p.Combinations - p.AnchorCount()
	if k < 0 || k > len(floating) {
		return big.NewInt(0)
	}

	// e[j] accumulates the j-th elementary symmetric polynomial of the
	// floating slots' cardinalities via the standard
	// prod(1 + c_i*x) expansion, truncated to degree k.
	e := make([]*big.Int, k+1)
	e[0] = big.NewInt(1)
	for j := 1; j <= k; j++ {
		e[j] = big.NewInt(0)
	}
	for _, slot := range floating {
		c := big.NewInt(int64(slot.Cardinality()))
		for j := k; j >= 1; j-- {
			term := new(big.Int).Mul(e[j-1], c)
			e[j].Add(e[j], term)
		}
	}

	return new(big.Int).Mul(e[k], factorial(k))
}

func factorial(n int) *big.Int {
	f := big.NewInt(1)
	for i := 2; i <= n; i++ {
		f.Mul(f, big.NewInt(int64(i)))
	}
	return f
}

// Derivation returns the exact size of the derivation set: the number
// of concrete paths the cartesian union of templates expands to (1 for
// an XPUB target, whose empty template list still counts as a single
// "no derivation needed" case).
func Derivation(p *pattern.DerivationPattern) *big.Int {
	if len(p.Templates) == 0 {
		return big.NewInt(1)
	}
	return big.NewInt(int64(len(p.Expand())))
}

// Passphrase returns the exact product of every segment's cardinality,
// or 1 when no passphrase attack was configured.
func Passphrase(a *pattern.PassphraseAttack) *big.Int {
	if a == nil || len(a.Segments) == 0 {
		return big.NewInt(1)
	}
	return big.NewInt(int64(a.Cardinality()))
}

// TotalGuesses is the pre-filter seed product times the derivation and
// passphrase cardinalities (spec §4.3: "Total Guesses is pre-filter-
// product x |derivations| x |passphrases|").
func TotalGuesses(seedPrefilter, derivations, passphrases *big.Int) *big.Int {
	total := new(big.Int).Mul(seedPrefilter, derivations)
	total.Mul(total, passphrases)
	return total
}
