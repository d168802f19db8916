package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"nickandperla.net/backforth/pkg/backforth"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [NAME]",
		Short: "Show stored versions of a persisted word",
		Long: `Show the stored versions of NAME, newest first. Without NAME the
persisted words are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd, GetConfig(cmd.Context()))
			if err != nil {
				return err
			}
			defer rt.Close()

			w := cmd.OutOrStdout()
			if len(args) == 0 {
				return listPersisted(w, rt.Store())
			}

			name := args[0]
			history, err := rt.History(name, limit)
			if err != nil {
				return err
			}
			if len(history) == 0 {
				_, _ = fmt.Fprintf(w, "no history for %s\n", name)
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(w)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Version", "Saved", "Source"})
			for _, e := range history {
				t.AppendRow(table.Row{e.Version, e.Ts, e.Source})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many versions (0 for all)")
	return cmd
}

func listPersisted(w io.Writer, st backforth.Store) error {
	names, err := st.Names()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		_, _ = fmt.Fprintln(w, "no persisted words")
		return nil
	}
	for _, name := range names {
		_, _ = fmt.Fprintln(w, name)
	}
	return nil
}
