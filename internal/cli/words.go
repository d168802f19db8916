package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"nickandperla.net/backforth/pkg/backforth"
)

// Output formats for listing commands.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// NewWordsCommand creates the words command.
func NewWordsCommand() *cobra.Command {
	var (
		format string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "words",
		Short: "List dictionary words and their stack effects",
		Long: `List the words defined by the standard library and the database prelude.
Builtins are included with --all.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd, GetConfig(cmd.Context()))
			if err != nil {
				return err
			}
			defer rt.Close()

			var bindings []backforth.Binding
			for _, b := range rt.Bindings() {
				if all || !b.Builtin {
					bindings = append(bindings, b)
				}
			}
			return renderWords(cmd.OutOrStdout(), bindings, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatTable, "Output format (table|json|yaml)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include builtins")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{FormatTable, FormatJSON, FormatYAML}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func renderWords(w io.Writer, bindings []backforth.Binding, format string) error {
	if bindings == nil {
		bindings = []backforth.Binding{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(bindings)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(bindings); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable:
	default:
		return fmt.Errorf("unknown format %q (use table, json or yaml)", format)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Word", "Effect", "Definition"})
	for _, b := range bindings {
		def := b.Definition
		if b.Builtin {
			def = "<builtin>"
		}
		t.AppendRow(table.Row{b.Name, b.Effect, def})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d words)\n", len(bindings))
	return nil
}
