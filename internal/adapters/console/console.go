// Package console provides the plain terminal implementation of the
// Console port.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xvierd/greet-cli/internal/ports"
)

// Console reads prompts from an input stream and writes messages to an
// output stream, one line at a time.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// Ensure Console implements ports.Console.
var _ ports.Console = (*Console)(nil)

// New creates a console bound to stdin and stdout.
func New() *Console {
	return NewWithStreams(os.Stdin, os.Stdout)
}

// NewWithStreams creates a console over arbitrary streams.
func NewWithStreams(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Prompt displays the label and reads one line of input.
func (c *Console) Prompt(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(c.out, label)

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// Display renders a message followed by a newline.
func (c *Console) Display(message string) {
	fmt.Fprintln(c.out, message)
}
