// Package backforth provides the public API for the backforth interpreter.
package backforth

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"nickandperla.net/backforth/internal/parser"
	"nickandperla.net/backforth/internal/shell"
	"nickandperla.net/backforth/internal/store"
	"nickandperla.net/backforth/internal/word"
)

// Word is a backforth value.
type Word = word.Word

// Runtime is the backforth interpreter runtime.
type Runtime struct {
	shell        *shell.Shell
	store        Store
	logger       *slog.Logger
	inputReader  func(prompt string) (string, error)
	outputWriter func(text string) error
	prelude      string // Custom prelude source (if empty, uses DefaultPrelude)
	noStdlib     bool   // If true, skip loading prelude
	strict       bool
	err          error // First error raised by an option
}

// ErrNoHistory is returned by History when the store keeps no versions.
var ErrNoHistory = errors.New("store does not keep history")

// New creates a new backforth runtime with the given options.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(r)
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.store == nil {
		r.store = store.NewMemory()
	}

	shellOpts := []shell.Option{
		shell.WithStore(r.store),
		shell.WithLogger(r.logger),
		shell.WithStrictEffects(r.strict),
	}
	if r.inputReader != nil {
		shellOpts = append(shellOpts, shell.WithInputReader(r.inputReader))
	}
	if r.outputWriter != nil {
		shellOpts = append(shellOpts, shell.WithOutputWriter(r.outputWriter))
	}
	r.shell = shell.New(shellOpts...)

	// Load prelude unless disabled
	if !r.noStdlib {
		prelude := r.prelude
		if prelude == "" {
			prelude = DefaultPrelude
		}

		// Check for database override
		src, ok, err := r.store.Get(StdlibKey)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", StdlibKey, err)
		}
		if ok && strings.TrimSpace(src) != "" {
			r.logger.Debug("using stored prelude", "key", StdlibKey)
			prelude = src
		}

		if err := r.Eval(prelude); err != nil {
			return nil, fmt.Errorf("prelude: %w", err)
		}
	}

	return r, nil
}

// Eval evaluates backforth source. After a failure the pending code is
// discarded; the data stack and the dictionary are kept.
func (r *Runtime) Eval(src string) error {
	return r.EvalReader(strings.NewReader(src))
}

// EvalReader evaluates backforth source from a reader.
func (r *Runtime) EvalReader(reader io.Reader) error {
	words, err := parser.ParseReader(reader)
	if err != nil {
		return err
	}
	return r.Run(words...)
}

// EvalFile evaluates a backforth file.
func (r *Runtime) EvalFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.EvalReader(f)
}

// Run executes already parsed words.
func (r *Runtime) Run(words ...Word) error {
	r.shell.Load(words...)
	if err := r.shell.Run(); err != nil {
		r.shell.Reset()
		return err
	}
	return nil
}

// Stack returns the data stack, top first.
func (r *Runtime) Stack() []Word {
	return r.shell.Stack()
}

// Binding describes one dictionary entry.
type Binding struct {
	Name       string `json:"name" yaml:"name"`
	Effect     string `json:"effect" yaml:"effect"`
	Builtin    bool   `json:"builtin" yaml:"builtin"`
	Definition string `json:"definition,omitempty" yaml:"definition,omitempty"`
}

// Bindings lists the dictionary in definition order.
func (r *Runtime) Bindings() []Binding {
	names := r.shell.Names()
	out := make([]Binding, 0, len(names))
	for _, name := range names {
		b, _ := r.shell.Lookup(name)
		entry := Binding{Name: name, Effect: b.Spec().String()}
		switch b := b.(type) {
		case shell.Builtin:
			entry.Builtin = true
		case shell.Interpreted:
			entry.Definition = b.Value.String()
		}
		out = append(out, entry)
	}
	return out
}

// Store returns the definition store.
func (r *Runtime) Store() Store {
	return r.store
}

// History returns stored versions of name, newest first. A limit of 0
// returns every version.
func (r *Runtime) History(name string, limit int) ([]VersionEntry, error) {
	hs, ok := r.store.(store.HistoryStore)
	if !ok {
		return nil, ErrNoHistory
	}
	return hs.GetHistory(name, limit)
}

// Close releases resources.
func (r *Runtime) Close() error {
	return r.store.Close()
}
