package pattern

import (
	"strconv"
	"strings"

	"github.com/dzita/seedcat/internal/address"
	"github.com/dzita/seedcat/internal/seedcaterr"
)

const maxPathDepth = 16

// DefaultDerivation returns the reference default derivation templates
// for an address kind, per spec §4.2: legacy tries both the raw `m/0/0`
// chain and the BIP-44 account path; P2SH-P2WPKH and P2WPKH use their
// BIP-49/84 account paths; XPUB targets need no derivation.
func DefaultDerivation(kind address.Kind) (*DerivationPattern, error) {
	switch kind {
	case address.XPUB:
		return &DerivationPattern{}, nil
	case address.P2PKH:
		return ParseDerivation("m/0/0 m/44'/0'/0'/0/0", kind)
	case address.P2SHP2WPKH:
		return ParseDerivation("m/49'/0'/0'/0/0", kind)
	case address.P2WPKH:
		return ParseDerivation("m/84'/0'/0'/0/0", kind)
	default:
		return nil, seedcaterr.Wrap("pattern", seedcaterr.ErrInvalidDerivationPath)
	}
}

// ParseDerivation parses a space/comma-separated list of derivation path
// templates. Each component is either a literal index (optionally
// hardened with `h` or `'`) or a wildcard `?k` meaning "try 0..k
// inclusive at this depth".
func ParseDerivation(spec string, kind address.Kind) (*DerivationPattern, error) {
	if strings.TrimSpace(spec) == "" {
		return DefaultDerivation(kind)
	}
	if kind == address.XPUB {
		return &DerivationPattern{}, nil
	}

	fields := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ' ' || r == ','
	})

	pattern := &DerivationPattern{}
	for _, field := range fields {
		tmpl, err := parseDerivationTemplate(field)
		if err != nil {
			return nil, err
		}
		pattern.Templates = append(pattern.Templates, tmpl)
	}
	return pattern, nil
}

func parseDerivationTemplate(field string) (DerivationTemplate, error) {
	field = strings.TrimPrefix(field, "m/")
	field = strings.TrimPrefix(field, "m")
	field = strings.Trim(field, "/")
	if field == "" {
		return DerivationTemplate{}, nil
	}

	parts := strings.Split(field, "/")
	if len(parts) > maxPathDepth {
		return nil, seedcaterr.Wrap("pattern", seedcaterr.ErrPathTooDeep)
	}

	tmpl := make(DerivationTemplate, 0, len(parts))
	for _, part := range parts {
		comp, err := parseDerivationComponent(part)
		if err != nil {
			return nil, err
		}
		tmpl = append(tmpl, comp)
	}
	return tmpl, nil
}

func parseDerivationComponent(part string) (DerivationComponent, error) {
	hardened := false
	if strings.HasSuffix(part, "'") {
		hardened = true
		part = part[:len(part)-1]
	} else if strings.HasSuffix(part, "h") || strings.HasSuffix(part, "H") {
		hardened = true
		part = part[:len(part)-1]
	}

	if strings.HasPrefix(part, "?") {
		max, err := strconv.ParseUint(part[1:], 10, 32)
		if err != nil {
			return DerivationComponent{}, seedcaterr.Wrap("pattern", seedcaterr.ErrInvalidDerivationPath)
		}
		return DerivationComponent{Wildcard: true, Max: uint32(max), Hardened: hardened}, nil
	}

	idx, err := strconv.ParseUint(part, 10, 32)
	if err != nil {
		return DerivationComponent{}, seedcaterr.Wrap("pattern", seedcaterr.ErrInvalidDerivationPath)
	}
	return DerivationComponent{Index: uint32(idx), Hardened: hardened}, nil
}

// Expand enumerates every concrete path in the cartesian union described
// by the pattern's templates, each as a list of BIP-32 child indices
// (with the hardened bit already applied).
func (p *DerivationPattern) Expand() [][]uint32 {
	var out [][]uint32
	for _, tmpl := range p.Templates {
		out = append(out, expandTemplate(tmpl)...)
	}
	return out
}

const hardenedOffset = 0x80000000

func expandTemplate(tmpl DerivationTemplate) [][]uint32 {
	paths := [][]uint32{{}}
	for _, comp := range tmpl {
		var next [][]uint32
		values := comp.candidateIndices()
		for _, path := range paths {
			for _, v := range values {
				extended := append(append([]uint32{}, path...), v)
				next = append(next, extended)
			}
		}
		paths = next
	}
	return paths
}

func (c DerivationComponent) candidateIndices() []uint32 {
	apply := func(v uint32) uint32 {
		if c.Hardened {
			return v + hardenedOffset
		}
		return v
	}
	if !c.Wildcard {
		return []uint32{apply(c.Index)}
	}
	values := make([]uint32, 0, c.Max+1)
	for v := uint32(0); v <= c.Max; v++ {
		values = append(values, apply(v))
	}
	return values
}

// String renders a concrete path (as returned by Expand) in canonical
// form, e.g. "m/44'/0'/0'/0/0".
func PathString(path []uint32) string {
	var b strings.Builder
	b.WriteString("m")
	for _, v := range path {
		b.WriteString("/")
		if v >= hardenedOffset {
			b.WriteString(strconv.FormatUint(uint64(v-hardenedOffset), 10))
			b.WriteString("'")
		} else {
			b.WriteString(strconv.FormatUint(uint64(v), 10))
		}
	}
	return b.String()
}
