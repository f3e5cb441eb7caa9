package ports

import (
	"context"

	"github.com/xvierd/greet-cli/internal/domain"
)

// EntryRepository defines the interface for registry entry persistence.
// This is a driven port (implemented by adapters).
type EntryRepository interface {
	// FindByName retrieves the entry for a name, or domain.ErrNameNotFound.
	FindByName(ctx context.Context, name string) (*domain.Entry, error)

	// FindOrCreate atomically stores candidate unless an entry for its name
	// already exists, and returns the stored entry. This is the check-and-set
	// that guarantees at most one identifier is minted per name under
	// concurrent callers.
	FindOrCreate(ctx context.Context, candidate *domain.Entry) (*domain.Entry, error)

	// FindAll retrieves all entries ordered by registration time.
	FindAll(ctx context.Context) ([]*domain.Entry, error)
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Entries provides access to registry entry operations.
	Entries() EntryRepository

	// Close closes the storage connection.
	Close() error

	// Migrate prepares the storage schema.
	Migrate() error
}
