package bench

import (
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/dzita/seedcat/internal/address"
	"github.com/dzita/seedcat/internal/checksum"
	"github.com/dzita/seedcat/internal/permute"
	"github.com/dzita/seedcat/internal/refimpl"
)

// BenchmarkChecksumValid benchmarks the BIP-39 checksum filter, the
// per-candidate hot path of the Enumerator (spec §4.5).
func BenchmarkChecksumValid(b *testing.B) {
	words := make([]int, 12)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		words[11] = i % 2048
		_ = checksum.Valid(words)
	}
}

// BenchmarkMultisetUnrank benchmarks the Permutation Ranker's Unrank path
// used by the Enumerator in --combinations mode (spec §4.4).
func BenchmarkMultisetUnrank(b *testing.B) {
	anchorWord := []int{0, 1, 2, -1, -1, -1, -1, -1, -1, -1, -1, -1}
	floating := make([][]int, 9)
	for i := range floating {
		floating[i] = []int{100 + i}
	}
	space := permute.NewMultisetSpace(anchorWord, floating)
	total := space.Len()

	b.ResetTimer()
	b.ReportAllocs()

	rank := new(big.Int)
	for i := 0; i < b.N; i++ {
		rank.Mod(big.NewInt(int64(i)), total)
		_ = space.Unrank(rank)
	}
}

// BenchmarkProductUnrank benchmarks the plain (non-permuted) ranking path.
func BenchmarkProductUnrank(b *testing.B) {
	admissible := make([][]int, 12)
	for i := range admissible {
		admissible[i] = []int{0, 1, 2, 3}
	}
	space := permute.NewProductSpace(admissible)
	total := space.Len()

	b.ResetTimer()
	b.ReportAllocs()

	rank := new(big.Int)
	for i := 0; i < b.N; i++ {
		rank.Mod(big.NewInt(int64(i)), total)
		_ = space.Unrank(rank)
	}
}

// BenchmarkDeriveSeed benchmarks the PBKDF2-HMAC-SHA512 seed derivation
// used by the CPU reference path (internal/refimpl) for self-test.
func BenchmarkDeriveSeed(b *testing.B) {
	words := []string{
		"abandon", "abandon", "abandon", "abandon", "abandon", "abandon",
		"abandon", "abandon", "abandon", "abandon", "abandon", "about",
	}
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = refimpl.DeriveSeed(words, "")
	}
}

// BenchmarkEncodeAddress benchmarks the reverse address-encoding check
// performed against every candidate's derived public key.
func BenchmarkEncodeAddress(b *testing.B) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := address.Encode(address.P2PKH, priv.PubKey()); err != nil {
			b.Fatal(err)
		}
	}
}
