package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestConsole_Prompt(t *testing.T) {
	t.Run("reads one trimmed line", func(t *testing.T) {
		var out bytes.Buffer
		c := NewWithStreams(strings.NewReader("  Alice  \n"), &out)

		got, err := c.Prompt(context.Background(), "Please enter your name: ")
		if err != nil {
			t.Fatalf("Prompt() error = %v", err)
		}
		if got != "Alice" {
			t.Errorf("Prompt() = %q, want %q", got, "Alice")
		}
		if out.String() != "Please enter your name: " {
			t.Errorf("Prompt() wrote %q", out.String())
		}
	})

	t.Run("reads final line without newline", func(t *testing.T) {
		var out bytes.Buffer
		c := NewWithStreams(strings.NewReader("Bob"), &out)

		got, err := c.Prompt(context.Background(), "> ")
		if err != nil {
			t.Fatalf("Prompt() error = %v", err)
		}
		if got != "Bob" {
			t.Errorf("Prompt() = %q, want %q", got, "Bob")
		}
	})

	t.Run("fails on closed input", func(t *testing.T) {
		var out bytes.Buffer
		c := NewWithStreams(strings.NewReader(""), &out)

		if _, err := c.Prompt(context.Background(), "> "); err == nil {
			t.Error("Prompt() should fail when input is exhausted")
		}
	})

	t.Run("fails on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var out bytes.Buffer
		c := NewWithStreams(strings.NewReader("Alice\n"), &out)

		if _, err := c.Prompt(ctx, "> "); err == nil {
			t.Error("Prompt() should fail on cancelled context")
		}
	})
}

func TestConsole_Display(t *testing.T) {
	var out bytes.Buffer
	c := NewWithStreams(strings.NewReader(""), &out)

	c.Display("Welcome to the persistent Hello World application!")
	if out.String() != "Welcome to the persistent Hello World application!\n" {
		t.Errorf("Display() wrote %q", out.String())
	}
}
