package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"github.com/xvierd/greet-cli/internal/domain"
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Look up the GUID registered for a name",
	Long: `Look up the GUID for a name without registering it.
If the name is unknown nothing is minted; close matches are suggested instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name := args[0]

		identifier, err := registry.Retrieve(ctx, name)
		if err != nil {
			if errors.Is(err, domain.ErrNameNotFound) {
				return reportUnknownName(ctx, cmd, name)
			}
			return fmt.Errorf("failed to look up %q: %w", name, err)
		}

		if jsonOutput {
			return printJSON(cmd, map[string]interface{}{
				"name":       name,
				"identifier": identifier,
			})
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, identifier)
		return nil
	},
}

// reportUnknownName tells the user the name is unregistered and offers
// fuzzy-matched suggestions from the known names.
func reportUnknownName(ctx context.Context, cmd *cobra.Command, name string) error {
	suggestions := suggestNames(ctx, name)

	if jsonOutput {
		return printJSON(cmd, map[string]interface{}{
			"name":        name,
			"identifier":  nil,
			"suggestions": suggestions,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "No GUID registered for %q.\n", name)
	if len(suggestions) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Did you mean:")
		for _, s := range suggestions {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", s)
		}
	}
	return nil
}

// suggestNames returns up to three registered names ranked by fuzzy match.
func suggestNames(ctx context.Context, name string) []string {
	names, err := registry.Names(ctx)
	if err != nil {
		return nil
	}

	matches := fuzzy.Find(name, names)
	suggestions := []string{}
	for i, m := range matches {
		if i == 3 {
			break
		}
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}

func printJSON(cmd *cobra.Command, data interface{}) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}
