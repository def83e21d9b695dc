// Package planner implements the Mode Planner (spec §4.7): choosing
// between Pure GPU, Binary-Charset, and Stdin dispatch based on the
// cardinalities the Cardinality Engine reports and whether the final
// seed slot is unconstrained.
package planner

import "math/big"

// Mode is the selected dispatch strategy.
type Mode int

const (
	PureGPU Mode = iota
	BinaryCharset
	Stdin
)

func (m Mode) String() string {
	switch m {
	case PureGPU:
		return "Pure GPU"
	case BinaryCharset:
		return "Binary-Charset"
	case Stdin:
		return "Stdin"
	default:
		return "unknown"
	}
}

// PureGPUSeedDerivationCutoff is the fixed Sv*D threshold above which
// Pure GPU mode is not selected. Spec §9 Open Question (a) asks whether
// this should scale with GPU count; the reference implementation uses a
// fixed threshold, and this implementation preserves that rather than
// guessing at a scaling rule.
var PureGPUSeedDerivationCutoff = big.NewInt(10_000_000)

// Inputs are the quantities the planner selects on.
type Inputs struct {
	PostFilterSeedCount *big.Int // Sv
	DerivationCount      *big.Int // D
	PassphraseCount      *big.Int // P
	LastSeedSlotFree     bool
	IsXPUBTarget         bool
	PassphraseHasDictionary bool // forces Stdin when true, even if the last slot is free
}

// Select applies the three rules from spec §4.7 in order.
func Select(in Inputs) Mode {
	sv := in.PostFilterSeedCount
	d := in.DerivationCount
	p := in.PassphraseCount

	svTimesD := new(big.Int).Mul(sv, d)
	if svTimesD.Cmp(PureGPUSeedDerivationCutoff) <= 0 && p.Cmp(big.NewInt(1)) >= 0 {
		return PureGPU
	}
	if in.LastSeedSlotFree && !in.PassphraseHasDictionary {
		return BinaryCharset
	}
	return Stdin
}
