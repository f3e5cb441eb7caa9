package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/xvierd/greet-cli/internal/domain"
	"github.com/xvierd/greet-cli/internal/ports"
)

// Fixed user-facing strings of the greeting flow.
const (
	WelcomeMessage = "Welcome to the persistent Hello World application!"
	NamePrompt     = "Please enter your name: "
)

// Greeting composes the user-facing greeting for a name and its identifier.
func Greeting(name, identifier string) string {
	return fmt.Sprintf("Hello, %s! Your unique GUID is: %s", name, identifier)
}

// GreeterService orchestrates the read-or-create greeting flow over two
// capabilities: a registry and a console. It holds no state of its own
// beyond the injected ports.
type GreeterService struct {
	registry     ports.Registry
	console      ports.Console
	onRegistered func(name string)
}

// Ensure GreeterService implements ports.Greeter.
var _ ports.Greeter = (*GreeterService)(nil)

// NewGreeterService creates a new greeter service. The console may be nil
// when only Greet is used.
func NewGreeterService(registry ports.Registry, console ports.Console) *GreeterService {
	return &GreeterService{registry: registry, console: console}
}

// SetOnRegistered installs a callback fired after a new identifier is
// minted for a name.
func (s *GreeterService) SetOnRegistered(fn func(name string)) {
	s.onRegistered = fn
}

// Run executes the interactive flow: welcome, prompt for a name,
// retrieve-or-generate the identifier, display the greeting. The sequence
// is linear with no retries; any failure aborts the run and propagates to
// the caller.
func (s *GreeterService) Run(ctx context.Context) error {
	s.console.Display(WelcomeMessage)

	name, err := s.console.Prompt(ctx, NamePrompt)
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}

	greeting, _, err := s.Greet(ctx, name)
	if err != nil {
		return err
	}

	s.console.Display(greeting)
	return nil
}

// Greet runs the read-or-create flow for name and returns the greeting
// along with whether a new identifier was minted.
func (s *GreeterService) Greet(ctx context.Context, name string) (string, bool, error) {
	identifier, err := s.registry.Retrieve(ctx, name)
	minted := false

	switch {
	case errors.Is(err, domain.ErrNameNotFound):
		identifier, err = s.registry.Generate(ctx, name)
		if err != nil {
			return "", false, fmt.Errorf("failed to generate identifier: %w", err)
		}
		minted = true
		if s.onRegistered != nil {
			s.onRegistered(name)
		}
	case err != nil:
		return "", false, fmt.Errorf("failed to retrieve identifier: %w", err)
	}

	return Greeting(name, identifier), minted, nil
}
