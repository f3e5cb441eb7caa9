// Package tui provides the Bubble Tea implementation of the Console port.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/greet-cli/internal/config"
	"github.com/xvierd/greet-cli/internal/ports"
)

// ErrAborted is returned when the user abandons the prompt (esc/ctrl+c).
var ErrAborted = errors.New("input aborted")

// Prompt is a styled console backed by a Bubble Tea text input.
type Prompt struct {
	theme config.ThemeConfig
}

// Ensure Prompt implements ports.Console.
var _ ports.Console = (*Prompt)(nil)

// New creates a styled console with the given theme.
func New(theme *config.ThemeConfig) *Prompt {
	return &Prompt{theme: resolveTheme(theme)}
}

// Prompt launches a text input program and returns the entered line.
func (p *Prompt) Prompt(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	result := runTextPrompt(strings.TrimSpace(label), "", p.theme)
	if result.Aborted {
		return "", ErrAborted
	}
	return result.Value, nil
}

// Display renders a message styled with the theme's title color.
func (p *Prompt) Display(message string) {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.theme.ColorTitle))
	fmt.Println(style.Render("  " + message))
}

// resolveTheme fills any empty fields in the given ThemeConfig with defaults.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	resolved := config.DefaultThemeConfig()
	if theme == nil {
		return resolved
	}
	if theme.ColorTitle != "" {
		resolved.ColorTitle = theme.ColorTitle
	}
	if theme.ColorAccent != "" {
		resolved.ColorAccent = theme.ColorAccent
	}
	if theme.ColorHelp != "" {
		resolved.ColorHelp = theme.ColorHelp
	}
	return resolved
}

// --- Styled text prompt ---

// textPromptResult holds the outcome of a text prompt.
type textPromptResult struct {
	Value   string
	Aborted bool
}

type textPromptModel struct {
	title   string
	input   textinput.Model
	aborted bool
	theme   config.ThemeConfig
}

func (m textPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textPromptModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+m.title) + " ")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  enter confirm · esc cancel") + "\n")

	return b.String()
}

// runTextPrompt launches a styled text input prompt.
func runTextPrompt(title string, placeholder string, theme config.ThemeConfig) textPromptResult {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 50
	ti.Focus()

	m := textPromptModel{
		title: title,
		input: ti,
		theme: theme,
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return textPromptResult{Aborted: true}
	}

	final := result.(textPromptModel)
	if final.aborted {
		return textPromptResult{Aborted: true}
	}
	return textPromptResult{Value: strings.TrimSpace(final.input.Value())}
}
