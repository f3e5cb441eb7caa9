package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/greet-cli/internal/services"
)

var registerQuiet bool

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Register a name and print its GUID",
	Long: `Register a name, minting a GUID for it if one does not exist yet.
Registering the same name again returns the original GUID unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name := args[0]

		identifier, err := registry.Generate(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to register %q: %w", name, err)
		}

		if jsonOutput {
			return printJSON(cmd, map[string]interface{}{
				"name":       name,
				"identifier": identifier,
			})
		}

		if registerQuiet {
			fmt.Fprintln(cmd.OutOrStdout(), identifier)
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), services.Greeting(name, identifier))
		return nil
	},
}

func init() {
	registerCmd.Flags().BoolVarP(&registerQuiet, "quiet", "q", false, "Print only the GUID")
}
