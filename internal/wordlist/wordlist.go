// Package wordlist loads the BIP-39 English word list into a bijective
// word<->index map, in the style of btclibwallet's embedded word table.
package wordlist

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed english_data.txt
var englishData string

// List is a loaded, validated BIP-39 word list. Word indices are the
// position of the word in sorted (== canonical BIP-39) order.
type List struct {
	words   []string
	indexOf map[string]int
}

// English is the standard BIP-39 English word list, loaded once at
// package init from the embedded data asset.
var English *List

func init() {
	l, err := Load([]byte(englishData))
	if err != nil {
		panic(fmt.Sprintf("wordlist: failed to load embedded English list: %v", err))
	}
	English = l
}

// Load parses a whitespace-separated word list and validates the
// structural invariants the rest of the core relies on: sorted order,
// uniqueness, and lowercase ASCII spellings. It intentionally does not
// assert a fixed word count; callers needing the canonical BIP-39 size
// should check Size() themselves (the embedded English asset holds the
// full 2048 words; see DESIGN.md on its transcription).
func Load(data []byte) (*List, error) {
	words := strings.Fields(string(data))
	if len(words) == 0 {
		return nil, fmt.Errorf("wordlist: empty word list")
	}

	indexOf := make(map[string]int, len(words))
	for i, w := range words {
		if w != strings.ToLower(w) {
			return nil, fmt.Errorf("wordlist: word %q at index %d is not lowercase", w, i)
		}
		if _, dup := indexOf[w]; dup {
			return nil, fmt.Errorf("wordlist: duplicate word %q", w)
		}
		indexOf[w] = i
	}
	if !sort.StringsAreSorted(words) {
		return nil, fmt.Errorf("wordlist: words are not in sorted order")
	}

	return &List{words: words, indexOf: indexOf}, nil
}

// Size returns the number of words in the list (2048 for a fully
// transcribed canonical BIP-39 English list).
func (l *List) Size() int { return len(l.words) }

// Word returns the canonical spelling for index i.
func (l *List) Word(i int) (string, bool) {
	if i < 0 || i >= len(l.words) {
		return "", false
	}
	return l.words[i], true
}

// Index returns the word index for the given spelling.
func (l *List) Index(word string) (int, bool) {
	i, ok := l.indexOf[word]
	return i, ok
}

// Contains reports whether word is present in the list.
func (l *List) Contains(word string) bool {
	_, ok := l.indexOf[word]
	return ok
}

// ChecksumBits returns the number of checksum bits CS for a phrase of
// length words, following BIP-39's CS = ENT/32 relation, which gives
// CS = L/3 for the supported lengths {12,15,18,21,24}.
func ChecksumBits(phraseLength int) int {
	return phraseLength / 3
}

// EntropyBits returns the entropy bit count ENT for a phrase of the
// given length: ENT = L*11 - CS.
func EntropyBits(phraseLength int) int {
	return phraseLength*11 - ChecksumBits(phraseLength)
}
