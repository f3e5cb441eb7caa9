// Package cmd provides the CLI commands for the Greet application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/greet-cli/internal/adapters/console"
	"github.com/xvierd/greet-cli/internal/adapters/httpclient"
	"github.com/xvierd/greet-cli/internal/adapters/memstore"
	"github.com/xvierd/greet-cli/internal/adapters/notification"
	"github.com/xvierd/greet-cli/internal/adapters/storage"
	"github.com/xvierd/greet-cli/internal/adapters/tui"
	"github.com/xvierd/greet-cli/internal/config"
	"github.com/xvierd/greet-cli/internal/ports"
	"github.com/xvierd/greet-cli/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	serverURL  string
	jsonOutput bool
	plainMode  bool
	memoryMode bool

	// Global dependencies
	storageAdapter ports.Storage
	registry       ports.Registry
	notifier       *notification.Notifier
	appConfig      *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "greet",
	Short: "Greet - A persistent Hello World with durable GUIDs",
	Long: `Greet remembers everyone it has ever met. The first time a name is
entered it mints a GUID for it; every later run reproduces the same GUID.

Run "greet" with no arguments for the interactive greeting flow.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runGreet,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.greet/greet.db)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Base URL of a remote registry server (default: local storage)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&plainMode, "plain", "p", false, "Plain line-based prompts (no styled TUI)")
	rootCmd.PersistentFlags().BoolVar(&memoryMode, "memory", false, "Keep the registry in memory only (nothing persists)")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Greet CLI\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
}

// initializeServices sets up the registry backend and supporting adapters.
func initializeServices() error {
	// Load configuration
	var err error
	appConfig, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
	}

	// Initialize notifier
	notifier = notification.New(&appConfig.Notifications)

	// Remote mode: talk to a running "greet serve" instead of local storage
	if baseURL := remoteBaseURL(); baseURL != "" {
		client, err := httpclient.New(baseURL, time.Duration(appConfig.Server.Timeout))
		if err != nil {
			return fmt.Errorf("invalid server URL: %w", err)
		}
		registry = client
		return nil
	}

	if memoryMode || appConfig.Storage.InMemory {
		store := memstore.New()
		storageAdapter = store
		registry = services.NewRegistryService(store)
		return nil
	}

	// Determine database path
	if dbPath == "" {
		dbPath = config.GetDBPath(appConfig)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Initialize storage
	storageAdapter, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	registry = services.NewRegistryService(storageAdapter)
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if storageAdapter != nil {
		return storageAdapter.Close()
	}
	return nil
}

// remoteBaseURL resolves the remote server URL: --server flag > config.
func remoteBaseURL() string {
	if serverURL != "" {
		return serverURL
	}
	return appConfig.Server.BaseURL
}

// newConsole picks between the styled TUI prompt and plain stdin/stdout.
func newConsole() ports.Console {
	if plainMode || appConfig.UI.Plain {
		return console.New()
	}
	return tui.New(&appConfig.UI.Theme)
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// runGreet implements the interactive greeting flow for the bare "greet" command.
func runGreet(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()

	greeter := services.NewGreeterService(registry, newConsole())
	greeter.SetOnRegistered(func(name string) {
		if !notifier.IsEnabled() {
			return
		}
		if err := notifier.NotifyRegistered(name); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: notification failed: %v\n", err)
		}
	})

	if err := greeter.Run(ctx); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			return nil
		}
		return fmt.Errorf("greeting failed: %w", err)
	}
	return nil
}
