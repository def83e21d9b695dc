// Package seedcaterr defines the sentinel error kinds shared across the
// recovery core, and the exit-code policy that binds them to the process.
package seedcaterr

import (
	"errors"
	"fmt"
)

// Configuration errors (fatal, process exit code 1).
var (
	ErrInvalidAddress        = errors.New("invalid address")
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
	ErrEmptyWordSet          = errors.New("wildcard matches no wordlist entry")
	ErrInvalidCombinations   = errors.New("invalid combinations length")
	ErrDictionaryMissing     = errors.New("dictionary file missing")
	ErrDictionaryTooLarge    = errors.New("dictionary exceeds maximum size")
	ErrMaskSyntaxError       = errors.New("invalid mask syntax")
	ErrIncompatibleAnchors   = errors.New("anchors incompatible with pattern")
	ErrPathTooDeep           = errors.New("derivation path exceeds maximum depth")
)

// Runtime errors (fatal, process exit code 2).
var (
	ErrBackendLaunchFailed     = errors.New("backend launch failed")
	ErrBackendCrashed          = errors.New("backend crashed")
	ErrQueueClosedUnexpectedly = errors.New("candidate queue closed unexpectedly")
	ErrIO                      = errors.New("i/o error")
)

// ErrSearchExhausted is not an error: it reports that every candidate in
// the declared space was tried and none matched the target.
var ErrSearchExhausted = errors.New("search exhausted: no match found")

// Wrap attaches the originating component name to err, per the propagation
// policy that every error carries the name of the component that raised it.
func Wrap(component string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", component, err)
}

// ExitCode classifies err into the process exit code policy from §7:
// 0 for nil or ErrSearchExhausted, 1 for configuration errors, 2 otherwise.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, ErrSearchExhausted) {
		return 0
	}
	for _, configErr := range []error{
		ErrInvalidAddress, ErrInvalidDerivationPath, ErrEmptyWordSet,
		ErrInvalidCombinations, ErrDictionaryMissing, ErrDictionaryTooLarge,
		ErrMaskSyntaxError, ErrIncompatibleAnchors, ErrPathTooDeep,
	} {
		if errors.Is(err, configErr) {
			return 1
		}
	}
	return 2
}
