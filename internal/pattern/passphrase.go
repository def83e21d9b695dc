package pattern

import (
	"bufio"
	"os"
	"strings"

	"github.com/dzita/seedcat/internal/seedcaterr"
)

const maxDictionaryWords = 1_000_000_000

var builtinClasses = map[byte][]rune{
	'l': runeRange('a', 'z'),
	'u': runeRange('A', 'Z'),
	'd': runeRange('0', '9'),
	's': []rune(" !\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"),
	'h': append(runeRange('0', '9'), runeRange('a', 'f')...),
	'H': append(runeRange('0', '9'), runeRange('A', 'F')...),
	'b': runeRange(0, 255),
}

func init() {
	var all []rune
	all = append(all, builtinClasses['l']...)
	all = append(all, builtinClasses['u']...)
	all = append(all, builtinClasses['d']...)
	all = append(all, builtinClasses['s']...)
	builtinClasses['a'] = all
}

func runeRange(lo, hi rune) []rune {
	out := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, r)
	}
	return out
}

// ParsePassphrase parses zero, one, or two `--passphrase` argument
// strings into a single combined PassphraseAttack, concatenating the
// segments of a second argument after the first's without deduplicating
// overlapping charsets (spec §9 Open Question (b): preserve this
// behavior rather than guess at a "smarter" merge).
func ParsePassphrase(attackStrings []string, customClasses map[byte][]rune) (*PassphraseAttack, error) {
	attack := &PassphraseAttack{}
	for _, raw := range attackStrings {
		if raw == "" {
			continue
		}
		for _, token := range strings.Split(raw, ",") {
			seg, err := parsePassphraseSegment(token, customClasses)
			if err != nil {
				return nil, err
			}
			attack.Segments = append(attack.Segments, seg)
		}
	}
	return attack, nil
}

func parsePassphraseSegment(token string, customClasses map[byte][]rune) (PassphraseSegment, error) {
	if strings.HasPrefix(token, "./") {
		words, err := loadDictionary(token)
		if err != nil {
			return PassphraseSegment{}, err
		}
		return PassphraseSegment{Kind: Dictionary, Value: token, Words: words}, nil
	}

	if !strings.Contains(token, "?") {
		return PassphraseSegment{Kind: Literal, Value: token, Classes: literalClasses(token)}, nil
	}

	classes, err := parseMaskClasses(token, customClasses)
	if err != nil {
		return PassphraseSegment{}, err
	}
	return PassphraseSegment{Kind: Mask, Value: token, Classes: classes}, nil
}

func literalClasses(s string) [][]rune {
	classes := make([][]rune, 0, len(s))
	for _, r := range s {
		classes = append(classes, []rune{r})
	}
	return classes
}

// parseMaskClasses walks token left to right; a literal character becomes
// a singleton class, and a recognized `?x` token becomes the full
// character class for position x.
func parseMaskClasses(token string, customClasses map[byte][]rune) ([][]rune, error) {
	var classes [][]rune
	runes := []rune(token)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '?' || i+1 >= len(runes) {
			classes = append(classes, []rune{runes[i]})
			continue
		}
		sel := byte(runes[i+1])
		if class, ok := builtinClasses[sel]; ok {
			classes = append(classes, class)
			i++
			continue
		}
		if sel >= '1' && sel <= '4' {
			class, ok := customClasses[sel]
			if !ok || len(class) == 0 {
				return nil, seedcaterr.Wrap("pattern", seedcaterr.ErrMaskSyntaxError)
			}
			classes = append(classes, class)
			i++
			continue
		}
		return nil, seedcaterr.Wrap("pattern", seedcaterr.ErrMaskSyntaxError)
	}
	return classes, nil
}

func loadDictionary(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, seedcaterr.Wrap("pattern", seedcaterr.ErrDictionaryMissing)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		words = append(words, line)
		if len(words) > maxDictionaryWords {
			return nil, seedcaterr.Wrap("pattern", seedcaterr.ErrDictionaryTooLarge)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, seedcaterr.Wrap("pattern", seedcaterr.ErrIO)
	}
	return words, nil
}
