package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered names",
	Long:  `List every name the registry has minted a GUID for, oldest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		names, err := registry.Names(ctx)
		if err != nil {
			return fmt.Errorf("failed to list names: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd, map[string]interface{}{
				"names": names,
				"count": len(names),
			})
		}

		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No names registered yet.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "📇 Registered names (%d):\n\n", len(names))
		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
		}

		return nil
	},
}
