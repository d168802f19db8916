package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewForgetCommand creates the forget command.
func NewForgetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "forget NAME...",
		Short: "Remove persisted words and their history from the store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd, GetConfig(cmd.Context()))
			if err != nil {
				return err
			}
			defer rt.Close()

			for _, name := range args {
				if err := rt.Store().Delete(name); err != nil {
					return fmt.Errorf("failed to forget %s: %w", name, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "forgot %s\n", name)
			}
			return nil
		},
	}
}
