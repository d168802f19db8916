// Package shell implements the backforth stack machine.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"strings"

	"nickandperla.net/backforth/internal/parser"
	"nickandperla.net/backforth/internal/store"
	"nickandperla.net/backforth/internal/word"
)

// Store is the persistence interface used by persist and recall.
type Store interface {
	Get(name string) (source string, ok bool, err error)
	Put(name, source string) error
}

// InputReader reads one line of user input after writing prompt.
type InputReader func(prompt string) (string, error)

// OutputWriter writes output (for echo, debug and inspect).
type OutputWriter func(text string) error

// FileLoader reads a whole file (for load).
type FileLoader func(path string) (string, error)

// CommandRunner runs an external process and returns its standard output.
type CommandRunner func(name string, args []string) (string, error)

// env is a recovery snapshot taken by try.
type env struct {
	dict *Dictionary
	data []word.Word
	code []word.Word
}

// Shell executes words against a data stack, a code stack and a dictionary.
// The top of both stacks is the end of the slice.
type Shell struct {
	dict    *Dictionary
	data    []word.Word
	code    []word.Word
	restore []env

	store   Store
	input   InputReader
	output  OutputWriter
	load    FileLoader
	command CommandRunner
	logger  *slog.Logger
	strict  bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithStore sets the persistence store.
func WithStore(st Store) Option {
	return func(s *Shell) { s.store = st }
}

// WithInputReader sets the input reader for prompt.
func WithInputReader(r InputReader) Option {
	return func(s *Shell) { s.input = r }
}

// WithOutputWriter sets the output writer.
func WithOutputWriter(w OutputWriter) Option {
	return func(s *Shell) { s.output = w }
}

// WithFileLoader sets the file loader for load.
func WithFileLoader(l FileLoader) Option {
	return func(s *Shell) { s.load = l }
}

// WithCommandRunner sets the process runner for command.
func WithCommandRunner(r CommandRunner) Option {
	return func(s *Shell) { s.command = r }
}

// WithLogger sets the logger for binding and recovery events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) { s.logger = l }
}

// WithStrictEffects rejects rebinding an exactly typed word to a body with a
// different exact stack effect.
func WithStrictEffects(strict bool) Option {
	return func(s *Shell) { s.strict = strict }
}

// New creates a new Shell with the given options.
func New(opts ...Option) *Shell {
	stdin := bufio.NewReader(os.Stdin)
	s := &Shell{
		dict:  NewDictionary(),
		store: store.NewMemory(),
		input: func(prompt string) (string, error) {
			fmt.Print(prompt)
			return stdin.ReadString('\n')
		},
		output: func(text string) error {
			fmt.Print(text)
			return nil
		},
		load: func(path string) (string, error) {
			b, err := os.ReadFile(path)
			return string(b), err
		},
		command: runCommand,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func runCommand(name string, args []string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		err = nil
	}
	return string(out), err
}

// Load schedules words for execution. They run in the order a program
// parsed from source would run them.
func (s *Shell) Load(words ...word.Word) {
	s.code = append(s.code, words...)
}

// Eval parses src, loads it and runs the shell.
func (s *Shell) Eval(src string) error {
	words, err := parser.Parse(src)
	if err != nil {
		return err
	}
	s.Load(words...)
	return s.Run()
}

// Run executes until the code stack is empty or an error is not recovered.
// On failure the failing atom is put back on the code stack, so both stacks
// stand as they did at the failing call.
func (s *Shell) Run() error {
	for len(s.code) > 0 {
		w := s.popCode()
		name, ok := w.(word.Atom)
		if !ok {
			s.push(w)
			continue
		}

		err := s.exec(string(name))
		if err == nil {
			continue
		}
		failure := &Error{Name: string(name), Err: err}
		if len(s.restore) == 0 || isFatal(err) {
			s.code = append(s.code, w)
			s.logger.Debug("halted", "word", string(name), "err", err)
			return failure
		}

		snap := s.restore[len(s.restore)-1]
		s.restore = s.restore[:len(s.restore)-1]
		s.dict, s.data, s.code = snap.dict, snap.data, snap.code
		s.push(word.Str(failure.Error()))
		s.logger.Debug("recovered", "word", string(name), "err", err)
	}
	return nil
}

func (s *Shell) exec(name string) error {
	b, ok := s.dict.Get(name)
	if !ok {
		return &CantUnderstandError{Name: name}
	}
	spec := b.Spec()
	if spec.Exact && len(s.data) < spec.Input {
		return ErrStackUnderflow
	}

	switch b := b.(type) {
	case Builtin:
		return s.dispatch(b)
	case Interpreted:
		if l, ok := b.Value.(word.List); ok {
			s.splice(l)
		} else {
			s.code = append(s.code, b.Value)
		}
	}
	return nil
}

// Reset drops pending code and recovery snapshots. The data stack and the
// dictionary are kept.
func (s *Shell) Reset() {
	s.code = nil
	s.restore = nil
}

// Stack returns a copy of the data stack, top first.
func (s *Shell) Stack() []word.Word {
	out := make([]word.Word, len(s.data))
	for i, w := range s.data {
		out[len(out)-1-i] = w
	}
	return out
}

// Code returns a copy of the code stack, next word last.
func (s *Shell) Code() []word.Word {
	return slices.Clone(s.code)
}

// Lookup retrieves a binding by name.
func (s *Shell) Lookup(name string) (Binding, bool) {
	return s.dict.Get(name)
}

// Names returns every bound name in definition order.
func (s *Shell) Names() []string {
	return s.dict.Names()
}

func (s *Shell) splice(l word.List) {
	s.code = append(s.code, l...)
}

func (s *Shell) popCode() word.Word {
	w := s.code[len(s.code)-1]
	s.code = s.code[:len(s.code)-1]
	return w
}

func (s *Shell) push(ws ...word.Word) {
	s.data = append(s.data, ws...)
}

func (s *Shell) drop(n int) {
	s.data = s.data[:len(s.data)-n]
}

// peek returns the i-th value from the top without removing it.
func (s *Shell) peek(i int) (word.Word, error) {
	if i >= len(s.data) {
		return nil, ErrStackUnderflow
	}
	return s.data[len(s.data)-1-i], nil
}

func (s *Shell) peekList(i int) (word.List, error) {
	w, err := s.peek(i)
	if err != nil {
		return nil, err
	}
	return asList(w)
}

func (s *Shell) peekInt(i int) (int32, error) {
	w, err := s.peek(i)
	if err != nil {
		return 0, err
	}
	return asInt(w)
}

func (s *Shell) write(op, text string) error {
	if err := s.output(text); err != nil {
		return &IOError{Op: op, Err: err}
	}
	return nil
}

func stripNewline(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
