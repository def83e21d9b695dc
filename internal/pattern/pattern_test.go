package pattern

import (
	"testing"

	"github.com/dzita/seedcat/internal/address"
	"github.com/dzita/seedcat/internal/wordlist"
)

func TestParseSeedFixedAndAnyOf(t *testing.T) {
	p, err := ParseSeed(
		[]string{"toy", "?", "chaos", "ethics", "vapor", "struggle", "ramp", "dune", "join", "nothing", "wait", "length"},
		0, wordlist.English)
	if err != nil {
		t.Fatalf("ParseSeed failed: %v", err)
	}
	if p.Slots[0].Kind != Fixed || p.Slots[1].Kind != AnyOf || p.Slots[2].Kind != Fixed {
		t.Fatalf("unexpected slot kinds: %+v", p.Slots)
	}
	if p.Slots[1].Cardinality() != wordlist.English.Size() {
		t.Errorf("AnyOf cardinality = %d, want %d", p.Slots[1].Cardinality(), wordlist.English.Size())
	}
}

func TestParseSeedMaskAlternation(t *testing.T) {
	p, err := ParseSeed(
		[]string{"do?|da?", "donkey", "chaos", "ethics", "vapor", "struggle", "ramp", "dune", "join", "nothing", "wait", "length"},
		0, wordlist.English)
	if err != nil {
		t.Fatalf("ParseSeed failed: %v", err)
	}
	if p.Slots[0].Kind != WildcardSet {
		t.Fatalf("expected WildcardSet, got %v", p.Slots[0].Kind)
	}
	if len(p.Slots[0].Words) == 0 {
		t.Error("expected nonempty wildcard set")
	}
}

func TestParseSeedAnchor(t *testing.T) {
	p, err := ParseSeed([]string{"^toy", "donkey"}, 12, wordlist.English)
	if err != nil {
		t.Fatalf("ParseSeed failed: %v", err)
	}
	if !p.Slots[0].Anchored {
		t.Error("expected first slot anchored")
	}
	if p.AnchorCount() != 1 {
		t.Errorf("AnchorCount() = %d, want 1", p.AnchorCount())
	}
}

func TestParseSeedEmptyWordSet(t *testing.T) {
	if _, err := ParseSeed([]string{"zzzzzzzzzz?"}, 0, wordlist.English); err == nil {
		t.Error("expected EmptyWordSet error")
	}
}

func TestParseSeedRawIndex(t *testing.T) {
	p, err := ParseSeed([]string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}, 0, wordlist.English)
	if err != nil {
		t.Fatalf("ParseSeed failed: %v", err)
	}
	if p.Slots[0].Word != 0 || p.Slots[1].Word != 1 {
		t.Errorf("unexpected raw index slots: %+v", p.Slots)
	}
}

func TestDefaultDerivation(t *testing.T) {
	p, err := DefaultDerivation(address.P2WPKH)
	if err != nil {
		t.Fatalf("DefaultDerivation failed: %v", err)
	}
	paths := p.Expand()
	if len(paths) != 1 {
		t.Fatalf("expected 1 default path, got %d", len(paths))
	}
	if got := PathString(paths[0]); got != "m/84'/0'/0'/0/0" {
		t.Errorf("PathString = %q, want m/84'/0'/0'/0/0", got)
	}
}

func TestDefaultDerivationXPUB(t *testing.T) {
	p, err := DefaultDerivation(address.XPUB)
	if err != nil {
		t.Fatalf("DefaultDerivation failed: %v", err)
	}
	if len(p.Templates) != 0 {
		t.Error("expected no derivation templates for XPUB target")
	}
}

func TestParseDerivationWildcard(t *testing.T) {
	p, err := ParseDerivation("m/0/?4 m/44h/0h/0h/0/?4", address.P2PKH)
	if err != nil {
		t.Fatalf("ParseDerivation failed: %v", err)
	}
	paths := p.Expand()
	if len(paths) != 10 {
		t.Fatalf("expected 10 expanded paths, got %d", len(paths))
	}
}

func TestParsePassphraseMaskCardinality(t *testing.T) {
	attack, err := ParsePassphrase([]string{"secret?d?d?d"}, nil)
	if err != nil {
		t.Fatalf("ParsePassphrase failed: %v", err)
	}
	if got := attack.Cardinality(); got != 1000 {
		t.Errorf("Cardinality() = %d, want 1000", got)
	}
}

func TestParsePassphraseSegments(t *testing.T) {
	attack, err := ParsePassphrase([]string{"hello,world"}, nil)
	if err != nil {
		t.Fatalf("ParsePassphrase failed: %v", err)
	}
	if len(attack.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(attack.Segments))
	}
}

func TestParsePassphraseBadMask(t *testing.T) {
	if _, err := ParsePassphrase([]string{"secret?z"}, nil); err == nil {
		t.Error("expected MaskSyntaxError for unknown class")
	}
}
