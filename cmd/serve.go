package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/greet-cli/internal/adapters/httpapi"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the registry HTTP server",
	Long: `Run the registry as an HTTP server so other greet instances can share
one set of GUIDs. Point clients at it with --server or server.base_url.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if remoteBaseURL() != "" {
			return fmt.Errorf("serve exposes local storage; remove --server / server.base_url")
		}

		addr := serveAddr
		if addr == "" {
			addr = appConfig.Server.Addr
		}

		fmt.Fprintf(cmd.OutOrStdout(), "🌐 Serving registry on http://%s\n", addr)
		fmt.Fprintln(cmd.OutOrStdout(), "   Press Ctrl+C to stop")

		ctx := setupSignalHandler()

		server := httpapi.New(addr, registry)
		if err := server.Run(ctx); err != nil {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: config server.addr)")
}
