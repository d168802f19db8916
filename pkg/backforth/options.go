package backforth

import (
	"io"
	"log/slog"

	"nickandperla.net/backforth/internal/store"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithSQLiteStore configures SQLite persistence at the given path.
func WithSQLiteStore(path string) Option {
	return func(r *Runtime) {
		s, err := store.NewSQLite(path)
		if err != nil {
			r.err = err
			return
		}
		r.store = s
	}
}

// WithMemoryStore configures an in-memory store (for testing).
func WithMemoryStore() Option {
	return func(r *Runtime) {
		r.store = store.NewMemory()
	}
}

// WithStore configures a custom store.
func WithStore(s Store) Option {
	return func(r *Runtime) {
		r.store = s
	}
}

// WithInputReader sets the input reader for the prompt word.
func WithInputReader(reader func(prompt string) (string, error)) Option {
	return func(r *Runtime) {
		r.inputReader = reader
	}
}

// WithOutputWriter sets the output writer for echo, debug and inspect.
func WithOutputWriter(writer func(text string) error) Option {
	return func(r *Runtime) {
		r.outputWriter = writer
	}
}

// WithOutput sets the io.Writer for output.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.outputWriter = func(text string) error {
			_, err := io.WriteString(w, text)
			return err
		}
	}
}

// WithPrelude sets a custom prelude source to be loaded on startup.
// If not set, DefaultPrelude is used.
func WithPrelude(source string) Option {
	return func(r *Runtime) {
		r.prelude = source
	}
}

// WithNoStdlib disables loading the standard library prelude.
func WithNoStdlib() Option {
	return func(r *Runtime) {
		r.noStdlib = true
	}
}

// WithStrictEffects rejects rebinding a word to a body with a different
// exact stack effect.
func WithStrictEffects() Option {
	return func(r *Runtime) {
		r.strict = true
	}
}

// WithLogger sets the logger used by the runtime and its shell.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = l
	}
}

// Store interface for custom stores.
type Store = store.Store

// VersionEntry is one stored version of a definition.
type VersionEntry = store.VersionEntry
