package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nickandperla.net/backforth/internal/config"
	"nickandperla.net/backforth/pkg/backforth"
)

// eofLine is handed to the interpreter when input runs out, so the repl
// word ends the way an explicit bye would.
const eofLine = "bye"

// Prompter reads one line after showing prompt.
type Prompter func(prompt string) (string, error)

// lineReader returns a prompter over a plain reader. The prompt is written to
// w before each read.
func lineReader(r io.Reader, w io.Writer) Prompter {
	br := bufio.NewReader(r)
	return func(prompt string) (string, error) {
		if prompt != "" {
			_, _ = io.WriteString(w, prompt)
		}
		line, err := br.ReadString('\n')
		if errors.Is(err, io.EOF) {
			if line == "" {
				return eofLine, nil
			}
			return line, nil
		}
		return line, err
	}
}

// readlinePrompter returns a prompter with line editing and history.
func readlinePrompter(historyFile string) (Prompter, func() error, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       eofLine,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize REPL: %w", err)
	}
	prompt := func(prompt string) (string, error) {
		rl.SetPrompt(prompt)
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			return "", nil
		case errors.Is(err, io.EOF):
			return eofLine, nil
		case err != nil:
			return "", err
		}
		return line, nil
	}
	return prompt, rl.Close, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runREPL(cmd *cobra.Command, cfg *config.Config) error {
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()

	prompt := lineReader(in, out)
	if isTerminal(in) {
		p, closeFn, err := readlinePrompter(cfg.HistoryFile)
		if err != nil {
			return err
		}
		defer closeFn()
		prompt = p
		printBanner(out)
	}

	rt, err := openRuntime(cmd, cfg, backforth.WithInputReader(prompt))
	if err != nil {
		return err
	}
	defer rt.Close()

	if !cfg.NoStdlib {
		return rt.Eval("repl")
	}
	return basicREPL(cmd, rt, prompt)
}

// basicREPL reads and evaluates lines without the standard library's repl
// word. Errors are reported and the loop goes on.
func basicREPL(cmd *cobra.Command, rt *backforth.Runtime, prompt Prompter) error {
	for {
		line, err := prompt("> ")
		if err != nil {
			return err
		}
		if strings.TrimRight(line, "\r\n") == eofLine {
			return nil
		}
		if err := rt.Eval(line); err != nil {
			PrintError(cmd.ErrOrStderr(), err)
		}
	}
}
