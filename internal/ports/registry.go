// Package ports defines the capability interfaces (driving and driven
// ports) for the greet application following hexagonal architecture
// principles. These interfaces define the contracts between the domain
// layer and external infrastructure.
package ports

import "context"

// Registry is the name-to-identifier capability consumed by the
// application layer. It is implemented locally by services.RegistryService
// and remotely by the HTTP client adapter; the application cannot tell
// the difference.
type Registry interface {
	// Retrieve returns the identifier stored for name. Absence is signalled
	// with domain.ErrNameNotFound and is not a failure. No side effects.
	Retrieve(ctx context.Context, name string) (string, error)

	// Generate returns the identifier for name, minting and persisting a
	// new one if the name is unregistered. Generate is idempotent: calling
	// it for a registered name returns the existing identifier unchanged.
	Generate(ctx context.Context, name string) (string, error)

	// Names returns all registered names in registration order.
	Names(ctx context.Context) ([]string, error)
}

// Greeter produces the user-facing greeting for a name, registering the
// name on first use. This is a driving port (implemented by the services
// layer, called by transport adapters).
type Greeter interface {
	// Greet runs the read-or-create flow for name and returns the greeting
	// along with whether a new identifier was minted.
	Greet(ctx context.Context, name string) (greeting string, minted bool, err error)
}
