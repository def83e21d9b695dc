package checksum

import "testing"

// A known-good BIP-39 12-word test vector: entropy of all zero bits
// ("abandon" repeated 11 times) ends in "about".
func TestValidKnownVector(t *testing.T) {
	// abandon=0, about=3 in the English list.
	words := []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3}
	if !Valid(words) {
		t.Error("expected the all-zero-entropy vector to satisfy the checksum")
	}
}

func TestValidRejectsWrongChecksum(t *testing.T) {
	words := []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 4}
	if Valid(words) {
		t.Error("expected a mismatched final word to fail the checksum")
	}
}

func TestFreeLastWordValuesContainsKnownGood(t *testing.T) {
	prefix := []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	candidates := FreeLastWordValues(prefix, 12)
	found := false
	for _, c := range candidates {
		if c == 3 {
			found = true
		}
	}
	if !found {
		t.Error("expected FreeLastWordValues to include the known-good final word")
	}
	// CS=4 for 12 words: the final word carries 7 entropy bits and 4
	// checksum bits, and each of the 128 entropy values fixes exactly one
	// checksum, so exactly 2048/16 = 128 final words qualify.
	if len(candidates) != 128 {
		t.Errorf("expected exactly 128 valid final words for the all-zero prefix, got %d", len(candidates))
	}
}
