package pattern

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dzita/seedcat/internal/seedcaterr"
	"github.com/dzita/seedcat/internal/wordlist"
)

var validLengths = map[int]bool{12: true, 15: true, 18: true, 21: true, 24: true}

// ParseSeed parses a space-separated sequence of seed tokens into a
// SeedPattern, optionally enabling permutation mode at length
// combinations (0 disables it).
func ParseSeed(tokens []string, combinations int, list *wordlist.List) (*SeedPattern, error) {
	slots := make([]SeedSlot, 0, len(tokens))
	for _, tok := range tokens {
		slot, err := parseSeedToken(tok, list)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	p := &SeedPattern{Slots: slots, Combinations: combinations}

	if combinations != 0 {
		if !validLengths[combinations] {
			return nil, seedcaterr.Wrap("pattern", seedcaterr.ErrInvalidCombinations)
		}
		// anchored_count <= N, per spec §3 SeedPattern invariant. The
		// number of tokens is not checked against N here.
		if p.AnchorCount() > combinations {
			return nil, seedcaterr.Wrap("pattern", seedcaterr.ErrInvalidCombinations)
		}
	} else if len(slots) > 0 && !validLengths[len(slots)] {
		return nil, seedcaterr.Wrap("pattern", seedcaterr.ErrInvalidCombinations)
	}

	return p, nil
}

func parseSeedToken(tok string, list *wordlist.List) (SeedSlot, error) {
	anchored := false
	if strings.HasPrefix(tok, "^") {
		anchored = true
		tok = tok[1:]
	}

	if tok == "?" {
		return SeedSlot{Kind: AnyOf, Words: allIndices(list), Anchored: anchored}, nil
	}

	if idx, err := strconv.Atoi(tok); err == nil {
		if idx < 0 || idx >= list.Size() {
			return SeedSlot{}, seedcaterr.Wrap("pattern", seedcaterr.ErrEmptyWordSet)
		}
		return SeedSlot{Kind: Fixed, Word: idx, Anchored: anchored}, nil
	}

	alts := strings.Split(tok, "|")
	if len(alts) == 1 && !strings.Contains(alts[0], "?") {
		idx, ok := list.Index(alts[0])
		if !ok {
			return SeedSlot{}, seedcaterr.Wrap("pattern", seedcaterr.ErrEmptyWordSet)
		}
		return SeedSlot{Kind: Fixed, Word: idx, Anchored: anchored}, nil
	}

	set := make(map[int]struct{})
	for _, alt := range alts {
		matches, err := matchMask(alt, list)
		if err != nil {
			return SeedSlot{}, err
		}
		for _, idx := range matches {
			set[idx] = struct{}{}
		}
	}
	if len(set) == 0 {
		return SeedSlot{}, seedcaterr.Wrap("pattern", seedcaterr.ErrEmptyWordSet)
	}
	words := make([]int, 0, len(set))
	for idx := range set {
		words = append(words, idx)
	}
	sort.Ints(words)
	return SeedSlot{Kind: WildcardSet, Words: words, Anchored: anchored}, nil
}

// matchMask expands a single letter-wildcard mask (`?` standing for any
// single letter at that position) into the sorted list of matching
// wordlist indices.
func matchMask(mask string, list *wordlist.List) ([]int, error) {
	if !strings.Contains(mask, "?") {
		idx, ok := list.Index(mask)
		if !ok {
			return nil, seedcaterr.Wrap("pattern", seedcaterr.ErrEmptyWordSet)
		}
		return []int{idx}, nil
	}

	pattern := "^" + regexp.QuoteMeta(mask) + "$"
	pattern = strings.ReplaceAll(pattern, regexp.QuoteMeta("?"), ".")
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, seedcaterr.Wrap("pattern", seedcaterr.ErrMaskSyntaxError)
	}

	var matches []int
	for i := 0; i < list.Size(); i++ {
		word, _ := list.Word(i)
		if re.MatchString(word) {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return nil, seedcaterr.Wrap("pattern", seedcaterr.ErrEmptyWordSet)
	}
	return matches, nil
}

func allIndices(list *wordlist.List) []int {
	words := make([]int, list.Size())
	for i := range words {
		words[i] = i
	}
	return words
}
