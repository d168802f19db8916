// Package cli provides the command-line interface for backforth.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"nickandperla.net/backforth/internal/config"
	"nickandperla.net/backforth/pkg/backforth"
)

// Version information (set at build time).
var Version = "0.1.0"

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		evalSrc string
	)

	rootCmd := &cobra.Command{
		Use:   "backforth [file]",
		Short: "backforth - a small concatenative scripting language",
		Long: `backforth runs programs for a stack machine with prefix notation.

With a file argument the file is evaluated. Without one an interactive
prompt is started; bye or end of input leaves it.`,
		Version: Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			if cfg.Verbose && cfg.File != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", cfg.File)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			switch {
			case evalSrc != "":
				return runEval(cmd, cfg, evalSrc)
			case len(args) == 1:
				return runFile(cmd, cfg, args[0])
			}
			return runREPL(cmd, cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./backforth.yaml)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database for persisted definitions (empty for in-memory)")
	rootCmd.PersistentFlags().String("history-file", "", "REPL history file")
	rootCmd.PersistentFlags().Bool("no-stdlib", false, "Disable the standard library prelude")
	rootCmd.PersistentFlags().Bool("strict", false, "Reject rebinding a word with a different stack effect")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.Flags().StringVarP(&evalSrc, "eval", "e", "", "Evaluate source and print the stack")

	rootCmd.AddCommand(NewVersionCommand(Version))
	rootCmd.AddCommand(NewWordsCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewForgetCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		PrintError(os.Stderr, err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Return default config if none in context
	return &config.Config{}
}

// openRuntime builds a runtime from the configuration. Output goes to the
// command's stdout.
func openRuntime(cmd *cobra.Command, cfg *config.Config, extra ...backforth.Option) (*backforth.Runtime, error) {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	opts := []backforth.Option{
		backforth.WithLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))),
		backforth.WithOutput(cmd.OutOrStdout()),
	}
	if cfg.DB != "" {
		opts = append(opts, backforth.WithSQLiteStore(cfg.DB))
	}
	if cfg.NoStdlib {
		opts = append(opts, backforth.WithNoStdlib())
	}
	if cfg.Strict {
		opts = append(opts, backforth.WithStrictEffects())
	}
	rt, err := backforth.New(append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to start runtime: %w", err)
	}
	return rt, nil
}

func runEval(cmd *cobra.Command, cfg *config.Config, src string) error {
	rt, err := openRuntime(cmd, cfg, backforth.WithInputReader(lineReader(cmd.InOrStdin(), cmd.OutOrStdout())))
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.Eval(src); err != nil {
		return err
	}
	printStack(cmd.OutOrStdout(), rt.Stack())
	return nil
}

func runFile(cmd *cobra.Command, cfg *config.Config, path string) error {
	rt, err := openRuntime(cmd, cfg, backforth.WithInputReader(lineReader(cmd.InOrStdin(), cmd.OutOrStdout())))
	if err != nil {
		return err
	}
	defer rt.Close()
	return rt.EvalFile(path)
}

func printStack(w io.Writer, stack []backforth.Word) {
	for _, v := range stack {
		_, _ = fmt.Fprintln(w, v)
	}
}
