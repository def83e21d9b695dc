package planner

import (
	"math/big"
	"testing"
)

func TestSelectPureGPU(t *testing.T) {
	mode := Select(Inputs{
		PostFilterSeedCount: big.NewInt(100),
		DerivationCount:     big.NewInt(2),
		PassphraseCount:     big.NewInt(1000),
	})
	if mode != PureGPU {
		t.Errorf("Select() = %s, want Pure GPU", mode)
	}
}

func TestSelectBinaryCharset(t *testing.T) {
	mode := Select(Inputs{
		PostFilterSeedCount: big.NewInt(1_000_000_000),
		DerivationCount:     big.NewInt(2),
		PassphraseCount:     big.NewInt(1),
		LastSeedSlotFree:    true,
	})
	if mode != BinaryCharset {
		t.Errorf("Select() = %s, want Binary-Charset", mode)
	}
}

func TestSelectStdinFallback(t *testing.T) {
	mode := Select(Inputs{
		PostFilterSeedCount: big.NewInt(1_000_000_000),
		DerivationCount:     big.NewInt(2),
		PassphraseCount:     big.NewInt(1),
		LastSeedSlotFree:    false,
	})
	if mode != Stdin {
		t.Errorf("Select() = %s, want Stdin", mode)
	}
}

func TestSelectStdinWhenDictionaryForcesIt(t *testing.T) {
	mode := Select(Inputs{
		PostFilterSeedCount:     big.NewInt(1_000_000_000),
		DerivationCount:         big.NewInt(2),
		PassphraseCount:         big.NewInt(1),
		LastSeedSlotFree:        true,
		PassphraseHasDictionary: true,
	})
	if mode != Stdin {
		t.Errorf("Select() = %s, want Stdin when a dictionary segment is present", mode)
	}
}
