package ports

import "context"

// Console is the input/output capability consumed by the application
// layer. This is a driven port: concrete platform adapters (plain
// terminal, Bubble Tea prompt) implement it.
type Console interface {
	// Prompt displays label and returns the line of text the user entered.
	Prompt(ctx context.Context, label string) (string, error)

	// Display renders a message to the user.
	Display(message string)
}
