package cardinality

import (
	"math/big"
	"testing"

	"github.com/dzita/seedcat/internal/address"
	"github.com/dzita/seedcat/internal/pattern"
	"github.com/dzita/seedcat/internal/wordlist"
)

func TestSeedNonPermuted(t *testing.T) {
	p, err := pattern.ParseSeed(
		[]string{"?", "?", "?", "ethics", "vapor", "struggle", "ramp", "dune", "join", "nothing", "wait", "length"},
		0, wordlist.English,
	)
	if err != nil {
		t.Fatalf("ParseSeed failed: %v", err)
	}
	counts := Seed(p)

	// 2048^3 = 8,589,934,592, matching spec §8 scenario 1's
	// "Preview Seeds=8.59B" literally, not the wordlist's reported size.
	want := big.NewInt(8589934592)
	if counts.Prefilter.Cmp(want) != 0 {
		t.Errorf("Prefilter = %s, want %s", counts.Prefilter, want)
	}

	divisor := new(big.Int).Lsh(big.NewInt(1), 4) // CS(12) = 4
	wantExpected := new(big.Int).Div(want, divisor)
	if counts.Expected.Cmp(wantExpected) != 0 {
		t.Errorf("Expected = %s, want %s", counts.Expected, wantExpected)
	}
}

func TestSeedPermutedAllSingletons(t *testing.T) {
	tokens := []string{
		"^toy", "^donkey", "^chaos",
		"zoo", "vapor", "struggle", "zone", "nothing", "join", "ethics", "ramp", "wait", "length", "dune",
	}
	p, err := pattern.ParseSeed(tokens, 12, wordlist.English)
	if err != nil {
		t.Fatalf("ParseSeed failed: %v", err)
	}
	counts := Seed(p)

	// P(11,9) = 11!/(11-9)! = 19,958,400, matching spec §8 scenario 3's
	// "Preview Seeds=20.0M".
	want := big.NewInt(19958400)
	if counts.Prefilter.Cmp(want) != 0 {
		t.Errorf("Prefilter = %s, want %s", counts.Prefilter, want)
	}
}

func TestDerivationDefault(t *testing.T) {
	p, err := pattern.DefaultDerivation(address.P2PKH)
	if err != nil {
		t.Fatalf("DefaultDerivation failed: %v", err)
	}
	if got := Derivation(p); got.Cmp(big.NewInt(2)) != 0 {
		t.Errorf("Derivation() = %s, want 2", got)
	}
}

func TestTotalGuesses(t *testing.T) {
	seed := big.NewInt(2048)
	deriv := big.NewInt(10)
	pass := big.NewInt(1)
	got := TotalGuesses(seed, deriv, pass)
	if want := big.NewInt(20480); got.Cmp(want) != 0 {
		t.Errorf("TotalGuesses() = %s, want %s", got, want)
	}
}
