package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/greet-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit the greet configuration",
	Long:  `Interactively configure the server address, remote registry URL, prompt style, and notifications.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		baseURL := appConfig.Server.BaseURL
		if baseURL == "" {
			baseURL = "(none, local storage)"
		}
		promptStyle := "styled"
		if appConfig.UI.Plain {
			promptStyle = "plain"
		}
		notifStatus := "off"
		if appConfig.Notifications.Enabled {
			notifStatus = "on"
		}

		fmt.Println()
		fmt.Println("  Current configuration:")
		fmt.Println()
		fmt.Printf("    Server address:  %s\n", appConfig.Server.Addr)
		fmt.Printf("    Registry URL:    %s\n", baseURL)
		fmt.Printf("    Data directory:  %s\n", appConfig.Storage.DataDir)
		fmt.Printf("    Prompt style:    %s\n", promptStyle)
		fmt.Printf("    Notifications:   %s\n", notifStatus)
		fmt.Println()
		fmt.Println("  What would you like to change?")
		fmt.Println("    [a] Server address")
		fmt.Println("    [r] Registry URL")
		fmt.Println("    [p] Toggle prompt style")
		fmt.Println("    [n] Toggle notifications")
		fmt.Println("    [q] Quit without saving")
		fmt.Print("  Choose: ")

		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(strings.ToLower(choice))

		switch choice {
		case "a":
			fmt.Printf("  Listen address [%s]: ", appConfig.Server.Addr)
			value, _ := reader.ReadString('\n')
			if value = strings.TrimSpace(value); value != "" {
				appConfig.Server.Addr = value
			}
		case "r":
			fmt.Print("  Registry URL (empty for local storage): ")
			value, _ := reader.ReadString('\n')
			appConfig.Server.BaseURL = strings.TrimSpace(value)
		case "p":
			appConfig.UI.Plain = !appConfig.UI.Plain
		case "n":
			appConfig.Notifications.Enabled = !appConfig.Notifications.Enabled
		case "q", "":
			return nil
		default:
			return fmt.Errorf("unknown option: %q", choice)
		}

		if err := config.Save(appConfig); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		path, _ := config.GetConfigPath()
		fmt.Printf("\n  Saved to %s\n", path)
		return nil
	},
}
