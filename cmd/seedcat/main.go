/*
seedcat - BIP-39 Seed Phrase and Passphrase Recovery Tool

Description:

	Recovers a Bitcoin wallet's BIP-39 mnemonic and/or passphrase from a
	partial description of the seed (known words, letter-wildcards, word
	alternations, and an optional permutation set), a set of candidate
	HD derivation paths, and an optional passphrase attack (mask or
	dictionary), by checking each candidate's derived address against a
	single known target.

Algorithm:
 1. Parse --seed/--combinations into a SeedPattern, --derivation into a
    DerivationPattern, and --passphrase into a PassphraseAttack.
 2. Classify --address into an address.Target.
 3. Compute exact candidate counts with the Cardinality Engine and print
    the Seedcat Configuration preview; require interactive confirmation.
 4. Select a dispatch Mode (Pure GPU, Binary-Charset, or Stdin) with the
    Mode Planner.
 5. Enumerate checksum-valid seed candidates, drive the external GPU
    backend (or the CPU reference derivation when no backend is
    configured), and report the first match.

Author: David Zita
License: MIT
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dzita/seedcat/internal/address"
	"github.com/dzita/seedcat/internal/backend"
	"github.com/dzita/seedcat/internal/cardinality"
	"github.com/dzita/seedcat/internal/enumerate"
	"github.com/dzita/seedcat/internal/pattern"
	"github.com/dzita/seedcat/internal/permute"
	"github.com/dzita/seedcat/internal/planner"
	"github.com/dzita/seedcat/internal/refimpl"
	"github.com/dzita/seedcat/internal/seedcaterr"
	"github.com/dzita/seedcat/internal/wordlist"
)

// config collects every flag accepted by the CLI subset spec §6 names.
type config struct {
	addressArg      string
	seedArg         string
	combinations    int
	derivationArg   string
	passphraseArgs  stringSliceFlag
	backendPath     string
	yes             bool
	workers         int
	hashesFilePath  string
	resultsFilePath string
}

// stringSliceFlag collects a flag that may be repeated, matching
// spec §6's "zero, one, or two occurrences" for --passphrase.
type stringSliceFlag []string

func (s *stringSliceFlag) String() string { return strings.Join(*s, ",") }
func (s *stringSliceFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.addressArg, "address", "", "target address or extended public key")
	flag.StringVar(&cfg.seedArg, "seed", "", "space-separated seed pattern tokens")
	flag.IntVar(&cfg.combinations, "combinations", 0, "enable permutation mode with this phrase length")
	flag.StringVar(&cfg.derivationArg, "derivation", "", "override the default derivation path templates")
	flag.Var(&cfg.passphraseArgs, "passphrase", "passphrase attack spec (may be given twice)")
	flag.StringVar(&cfg.backendPath, "backend", "", "path to the external GPU backend executable")
	flag.BoolVar(&cfg.yes, "y", false, "skip the interactive confirmation prompt")
	flag.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "number of enumeration worker goroutines")
	flag.StringVar(&cfg.hashesFilePath, "hashes-file", "seedcat-hashes.txt", "hashes file path for Pure GPU mode")
	flag.StringVar(&cfg.resultsFilePath, "results-file", "seedcat-results.txt", "results file path the backend appends to")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()

	target, pat, deriv, attack, err := buildPattern(cfg)
	if err != nil {
		log.Printf("seedcat: %v", err)
		os.Exit(seedcaterr.ExitCode(err))
	}

	seedCounts := cardinality.Seed(pat)
	derivCount := cardinality.Derivation(deriv)
	passCount := cardinality.Passphrase(attack)
	totalGuesses := cardinality.TotalGuesses(seedCounts.Prefilter, derivCount, passCount)

	printConfiguration(cfg, target, seedCounts, derivCount, passCount, totalGuesses)

	if !cfg.yes && !confirm() {
		fmt.Println("Aborted.")
		return
	}

	space, err := buildSpace(pat)
	if err != nil {
		log.Printf("seedcat: %v", err)
		os.Exit(seedcaterr.ExitCode(err))
	}

	mode := planner.Select(planner.Inputs{
		PostFilterSeedCount:     seedCounts.Expected,
		DerivationCount:         derivCount,
		PassphraseCount:         passCount,
		LastSeedSlotFree:        lastSlotFree(pat),
		IsXPUBTarget:            target.Kind == address.XPUB,
		PassphraseHasDictionary: hasDictionary(attack),
	})
	fmt.Printf("Dispatch mode: %s\n", mode)

	result, err := run(cfg, mode, target, space, deriv, attack)
	if err != nil {
		if err == seedcaterr.ErrSearchExhausted {
			fmt.Println("No match found.")
			return
		}
		log.Printf("seedcat: %v", err)
		os.Exit(seedcaterr.ExitCode(err))
	}
	fmt.Println(result)
}

func buildPattern(cfg config) (*address.Target, *pattern.SeedPattern, *pattern.DerivationPattern, *pattern.PassphraseAttack, error) {
	target, err := address.Classify(cfg.addressArg)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	tokens := strings.Fields(cfg.seedArg)
	pat, err := pattern.ParseSeed(tokens, cfg.combinations, wordlist.English)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	var deriv *pattern.DerivationPattern
	if cfg.derivationArg == "" {
		deriv, err = pattern.DefaultDerivation(target.Kind)
	} else {
		deriv, err = pattern.ParseDerivation(cfg.derivationArg, target.Kind)
	}
	if err != nil {
		return nil, nil, nil, nil, err
	}

	attack, err := pattern.ParsePassphrase(cfg.passphraseArgs, nil)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return target, pat, deriv, attack, nil
}

// buildSpace picks the ranking Space that matches pat's mode: a
// MultisetSpace when --combinations enables permutation (each anchored
// slot keeps its word at its own declared index in pat.Slots, matching
// spec §8 scenario 3), else a plain
// ProductSpace over each slot's own admissible set.
func buildSpace(pat *pattern.SeedPattern) (permute.Space, error) {
	if !pat.Permuted() {
		admissible := make([][]int, len(pat.Slots))
		for i, slot := range pat.Slots {
			admissible[i] = slot.AdmissibleWords()
		}
		return permute.NewProductSpace(admissible), nil
	}

	anchorWord := make([]int, pat.Combinations)
	for i := range anchorWord {
		anchorWord[i] = -1
	}
	var floating [][]int
	for i, slot := range pat.Slots {
		if slot.Anchored {
			anchorWord[i] = slot.Word
			continue
		}
		floating = append(floating, slot.AdmissibleWords())
	}
	return permute.NewMultisetSpace(anchorWord, floating), nil
}

func lastSlotFree(pat *pattern.SeedPattern) bool {
	if len(pat.Slots) == 0 {
		return false
	}
	last := pat.Slots[len(pat.Slots)-1]
	return last.Kind == pattern.AnyOf
}

func hasDictionary(a *pattern.PassphraseAttack) bool {
	if a == nil {
		return false
	}
	for _, seg := range a.Segments {
		if seg.Kind == pattern.Dictionary {
			return true
		}
	}
	return false
}

func printConfiguration(cfg config, target *address.Target, seedCounts cardinality.SeedCounts, derivCount, passCount, totalGuesses *big.Int) {
	fmt.Println("==================== Seedcat Configuration ====================")
	fmt.Printf("Address:       %s (%s)\n", cfg.addressArg, target.Kind)
	fmt.Printf("Seeds:         %s\n", humanizeBigInt(seedCounts.Prefilter))
	fmt.Printf("Derivations:   %s\n", derivCount)
	fmt.Printf("Passphrases:   %s\n", humanizeBigInt(passCount))
	fmt.Printf("Total Guesses: %s\n", humanizeBigInt(totalGuesses))
	fmt.Printf("Workers:       %d\n", cfg.workers)
	fmt.Println("=================================================================")
}

// humanizeBigInt renders large counts with a K/M/B/T suffix, the style
// spec §8's worked examples use ("Preview Seeds=8.59B").
func humanizeBigInt(n *big.Int) string {
	f := new(big.Float).SetInt(n)
	units := []struct {
		suffix string
		div    float64
	}{{"T", 1e12}, {"B", 1e9}, {"M", 1e6}, {"K", 1e3}}
	val, _ := f.Float64()
	for _, u := range units {
		if val >= u.div {
			return fmt.Sprintf("%.2f%s", val/u.div, u.suffix)
		}
	}
	return n.String()
}

func confirm() bool {
	fmt.Print("Proceed? [y/N]: ")
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	return line == "y" || line == "yes"
}

// run dispatches candidates through the external GPU backend when
// --backend is set, or otherwise walks the space on the CPU using the
// reference derivation (internal/refimpl) -- the path spec §8's worked
// scenarios exercise without a GPU. It returns the formatted "Found
// Seed:"/"Found Passphrase:" line on success.
func run(cfg config, mode planner.Mode, target *address.Target, space permute.Space, deriv *pattern.DerivationPattern, attack *pattern.PassphraseAttack) (string, error) {
	if cfg.backendPath == "" {
		return runSelfTest(cfg, target, space, deriv, attack)
	}
	return runBackend(cfg, mode, target, space, deriv)
}

func runSelfTest(cfg config, target *address.Target, space permute.Space, deriv *pattern.DerivationPattern, attack *pattern.PassphraseAttack) (string, error) {
	paths := deriv.Expand()
	if len(paths) == 0 {
		paths = [][]uint32{nil}
	}
	passphrases := expandPassphrases(attack)

	var stop int32
	candidates := enumerate.Run(space, enumerate.Options{Workers: cfg.workers, ChecksumEnabled: true}, &stop)
	reportProgress(&stop)

	for cand := range candidates {
		if atomic.LoadInt32(&stop) != 0 {
			break
		}
		words := refimpl.MnemonicWords(cand.Words, wordlist.English)
		for _, passphrase := range passphrases {
			seed := refimpl.DeriveSeed(words, passphrase)
			for _, path := range paths {
				found, err := matches(target, seed, path)
				if err != nil {
					continue
				}
				if found {
					atomic.StoreInt32(&stop, 1)
					return formatFound(words, passphrase), nil
				}
			}
		}
	}
	return "", seedcaterr.ErrSearchExhausted
}

func matches(target *address.Target, seed []byte, path []uint32) (bool, error) {
	if target.Kind == address.XPUB {
		xpub, err := refimpl.ExtendedPublicKey(seed, path)
		if err != nil {
			return false, err
		}
		return xpub.String() == target.String(), nil
	}
	priv, err := refimpl.DerivePath(seed, path)
	if err != nil {
		return false, err
	}
	addr, err := refimpl.EncodeAddress(target.Kind, priv)
	if err != nil {
		return false, err
	}
	return addr == target.String(), nil
}

func formatFound(words []string, passphrase string) string {
	var b strings.Builder
	b.WriteString("Found Seed: ")
	b.WriteString(strings.Join(words, ","))
	if passphrase != "" {
		b.WriteString("\nFound Passphrase: ")
		b.WriteString(passphrase)
	}
	return b.String()
}

// expandPassphrases materializes every passphrase string the attack
// describes. Only used by the CPU self-test path; the external backend
// consumes the attack spec directly via its own --passphrase flag.
func expandPassphrases(a *pattern.PassphraseAttack) []string {
	if a == nil || len(a.Segments) == 0 {
		return []string{""}
	}
	out := []string{""}
	for _, seg := range a.Segments {
		values := segmentValues(seg)
		var next []string
		for _, prefix := range out {
			for _, v := range values {
				next = append(next, prefix+v)
			}
		}
		out = next
	}
	return out
}

func segmentValues(seg pattern.PassphraseSegment) []string {
	switch seg.Kind {
	case pattern.Literal:
		return []string{seg.Value}
	case pattern.Dictionary:
		return seg.Words
	case pattern.Mask:
		return expandClasses(seg.Classes)
	default:
		return nil
	}
}

func expandClasses(classes [][]rune) []string {
	out := []string{""}
	for _, class := range classes {
		var next []string
		for _, prefix := range out {
			for _, r := range class {
				next = append(next, prefix+string(r))
			}
		}
		out = next
	}
	return out
}

// runBackend drives the external GPU backend in the selected mode and
// waits for its first result.
func runBackend(cfg config, mode planner.Mode, target *address.Target, space permute.Space, deriv *pattern.DerivationPattern) (string, error) {
	var stop int32
	backendCfg := backend.Config{
		BinaryPath:      cfg.backendPath,
		Mode:            mode,
		AddressTarget:   cfg.addressArg,
		DerivationSpecs: derivationSpecStrings(deriv),
		PassphraseSpec:  strings.Join(cfg.passphraseArgs, "|"),
		HashesFilePath:  cfg.hashesFilePath,
		ResultsFilePath: cfg.resultsFilePath,
	}

	driver, err := backend.Launch(backendCfg, backend.NewProcess(backendCfg), &stop)
	if err != nil {
		return "", err
	}

	if mode == planner.Stdin {
		candidates := enumerate.Run(space, enumerate.Options{Workers: cfg.workers, ChecksumEnabled: true}, &stop)
		paths := deriv.Expand()
		if len(paths) == 0 {
			paths = [][]uint32{nil}
		}
		for cand := range candidates {
			for _, path := range paths {
				line := backend.FormatSeedLine(path, cand.Words, wordlist.English)
				if err := driver.StreamCandidate(line); err != nil {
					return "", err
				}
			}
		}
		if err := driver.CloseStdin(); err != nil {
			return "", err
		}
	}

	res, err := driver.TailResults(target.String())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Found Seed: %s", res.Value), nil
}

func derivationSpecStrings(deriv *pattern.DerivationPattern) []string {
	var specs []string
	for _, path := range deriv.Expand() {
		specs = append(specs, pattern.PathString(path))
	}
	return specs
}

// reportProgress prints a progress line every ten seconds until stop is
// set, in the teacher's statsReporter style (bitcoin-wallet-bruteforce-
// offline.go's ticker-driven statsReporter, adapted to a cancellable
// recovery run instead of an unbounded one).
func reportProgress(stop *int32) {
	go func() {
		start := time.Now()
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if atomic.LoadInt32(stop) != 0 {
				return
			}
			fmt.Printf("[Recovery] Elapsed: %.0fs\n", time.Since(start).Seconds())
		}
	}()
}
