// Package backend marshals work to the external GPU hashing process and
// reads its results. The backend is treated as an opaque collaborator
// reached only through argv, stdin bytes, a results file, and its exit
// code (spec §4.8, §9 "backend process lifecycle").
package backend

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dzita/seedcat/internal/pattern"
	"github.com/dzita/seedcat/internal/planner"
	"github.com/dzita/seedcat/internal/seedcaterr"
	"github.com/dzita/seedcat/internal/wordlist"
)

// linePool reuses the byte buffers used to format stdin candidate
// records, avoiding one allocation per candidate on the hot streaming
// path -- the same sync.Pool idiom the teacher used for its per-address
// scratch buffers.
var linePool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, 256)
		return &buf
	},
}

// FormatSeedLine renders one Stdin-mode candidate record: "<path>:
// <word1>,<word2>,...,<wordL>" (spec §6).
func FormatSeedLine(path []uint32, wordIndices []int, list *wordlist.List) string {
	bufPtr := linePool.Get().(*[]byte)
	buf := (*bufPtr)[:0]
	defer func() {
		*bufPtr = buf
		linePool.Put(bufPtr)
	}()

	buf = append(buf, pattern.PathString(path)...)
	buf = append(buf, ':')
	for i, idx := range wordIndices {
		if i > 0 {
			buf = append(buf, ',')
		}
		word, _ := list.Word(idx)
		buf = append(buf, word...)
	}
	return string(buf)
}

// FormatPassphraseLine renders one Stdin-mode passphrase record.
func FormatPassphraseLine(passphrase string) string {
	bufPtr := linePool.Get().(*[]byte)
	buf := (*bufPtr)[:0]
	defer func() {
		*bufPtr = buf
		linePool.Put(bufPtr)
	}()
	buf = append(buf, passphrase...)
	return string(buf)
}

// Config describes one recovery run's backend invocation.
type Config struct {
	BinaryPath       string
	Mode             planner.Mode
	AddressTarget    string
	DerivationSpecs  []string
	PassphraseSpec   string
	HashesFilePath   string
	ResultsFilePath  string
	CharsetFilePaths []string
}

// Argv builds the command-line arguments the external backend expects,
// encoding the chosen mode, address target, derivation set, and
// passphrase attack (spec §4.8).
func (c Config) Argv() []string {
	argv := []string{
		"--mode", modeFlag(c.Mode),
		"--address", c.AddressTarget,
	}
	if len(c.DerivationSpecs) > 0 {
		argv = append(argv, "--derivation", strings.Join(c.DerivationSpecs, ","))
	}
	if c.PassphraseSpec != "" {
		argv = append(argv, "--passphrase", c.PassphraseSpec)
	}
	if c.HashesFilePath != "" {
		argv = append(argv, "--hashes", c.HashesFilePath)
	}
	if c.ResultsFilePath != "" {
		argv = append(argv, "--results", c.ResultsFilePath)
	}
	for _, charset := range c.CharsetFilePaths {
		argv = append(argv, "--charset", charset)
	}
	return argv
}

func modeFlag(m planner.Mode) string {
	switch m {
	case planner.PureGPU:
		return "pure-gpu"
	case planner.BinaryCharset:
		return "binary-charset"
	default:
		return "stdin"
	}
}

// Process is the subset of a running backend process the Driver needs.
// Satisfied by *exec.Cmd in production and by a fake in tests.
type Process interface {
	StdinPipe() (io.WriteCloser, error)
	Start() error
	Wait() error
}

// execProcess adapts *exec.Cmd to the Process interface.
type execProcess struct{ cmd *exec.Cmd }

func (p *execProcess) StdinPipe() (io.WriteCloser, error) { return p.cmd.StdinPipe() }
func (p *execProcess) Start() error                       { return p.cmd.Start() }
func (p *execProcess) Wait() error                        { return p.cmd.Wait() }

// NewProcess launches cfg's backend as a real OS process.
func NewProcess(cfg Config) Process {
	cmd := exec.Command(cfg.BinaryPath, cfg.Argv()...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return &execProcess{cmd: cmd}
}

// Driver launches the backend, streams candidates to it in Stdin mode,
// and tails its results file for the first matching line.
type Driver struct {
	cfg     Config
	process Process
	stdin   io.WriteCloser
	stop    *int32
}

// Launch starts the backend process. stop is the shared atomic
// cancellation flag from spec §5; the driver sets it on first match or
// backend crash.
func Launch(cfg Config, process Process, stop *int32) (*Driver, error) {
	d := &Driver{cfg: cfg, process: process, stop: stop}

	if cfg.Mode == planner.Stdin {
		stdin, err := process.StdinPipe()
		if err != nil {
			return nil, seedcaterr.Wrap("backend", seedcaterr.ErrBackendLaunchFailed)
		}
		d.stdin = stdin
	}

	if err := process.Start(); err != nil {
		return nil, seedcaterr.Wrap("backend", seedcaterr.ErrBackendLaunchFailed)
	}
	return d, nil
}

// StreamCandidate writes one newline-delimited candidate record to the
// backend's standard input (Stdin mode wire format, spec §6).
func (d *Driver) StreamCandidate(line string) error {
	if d.stdin == nil {
		return nil
	}
	if _, err := io.WriteString(d.stdin, line+"\n"); err != nil {
		return seedcaterr.Wrap("backend", seedcaterr.ErrIO)
	}
	return nil
}

// CloseStdin signals end of stream to the backend.
func (d *Driver) CloseStdin() error {
	if d.stdin == nil {
		return nil
	}
	return d.stdin.Close()
}

// Result is a parsed line from the results file: "<target>:<value>".
type Result struct {
	Target string
	Value  string
}

// TailResults polls the results file for a line whose target matches
// target, setting the shared stop flag and returning the match. It
// returns seedcaterr.ErrSearchExhausted if the backend process exits
// clean without ever producing a matching line.
func (d *Driver) TailResults(target string) (Result, error) {
	done := make(chan error, 1)
	go func() { done <- d.process.Wait() }()

	var offset int64
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			if res, ok, tailErr := scanResultsFrom(d.cfg.ResultsFilePath, &offset, target); tailErr == nil && ok {
				atomic.StoreInt32(d.stop, 1)
				return res, nil
			}
			if err != nil {
				atomic.StoreInt32(d.stop, 1)
				return Result{}, seedcaterr.Wrap("backend", seedcaterr.ErrBackendCrashed)
			}
			return Result{}, seedcaterr.ErrSearchExhausted
		case <-ticker.C:
			if res, ok, err := scanResultsFrom(d.cfg.ResultsFilePath, &offset, target); err == nil && ok {
				atomic.StoreInt32(d.stop, 1)
				return res, nil
			}
		}
	}
}

func scanResultsFrom(path string, offset *int64, target string) (Result, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, false, err
	}
	defer f.Close()

	if _, err := f.Seek(*offset, io.SeekStart); err != nil {
		return Result{}, false, err
	}
	scanner := bufio.NewScanner(f)
	var consumed int64
	for scanner.Scan() {
		line := scanner.Text()
		consumed += int64(len(line)) + 1
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if parts[0] == target {
			*offset += consumed
			return Result{Target: parts[0], Value: parts[1]}, true, nil
		}
	}
	*offset += consumed
	return Result{}, false, nil
}

// WriteHashesFile writes one line per target/pre-materialized seed for
// Pure GPU mode (spec §6 hashes-file format).
func WriteHashesFile(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return seedcaterr.Wrap("backend", seedcaterr.ErrIO)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return seedcaterr.Wrap("backend", seedcaterr.ErrIO)
		}
	}
	return seedcaterr.Wrap("backend", w.Flush())
}
