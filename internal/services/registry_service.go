// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"fmt"

	"github.com/xvierd/greet-cli/internal/domain"
	"github.com/xvierd/greet-cli/internal/ports"
)

// RegistryService implements the registry semantics on top of an entry
// repository: at most one identifier minted per name, immutable once
// assigned.
type RegistryService struct {
	entries ports.EntryRepository
}

// Ensure RegistryService implements ports.Registry.
var _ ports.Registry = (*RegistryService)(nil)

// NewRegistryService creates a new registry service.
func NewRegistryService(storage ports.Storage) *RegistryService {
	return &RegistryService{entries: storage.Entries()}
}

// Retrieve returns the identifier stored for name, or
// domain.ErrNameNotFound when the name is unregistered.
func (s *RegistryService) Retrieve(ctx context.Context, name string) (string, error) {
	if err := domain.ValidateName(name); err != nil {
		return "", err
	}

	entry, err := s.entries.FindByName(ctx, name)
	if err != nil {
		return "", err
	}
	return entry.Identifier, nil
}

// Generate returns the identifier for name, minting and persisting a new
// one if the name is unregistered. The repository's FindOrCreate is the
// atomic check-and-set, which also makes Generate idempotent: for a
// registered name the stored identifier is returned and the freshly
// minted candidate is discarded.
func (s *RegistryService) Generate(ctx context.Context, name string) (string, error) {
	candidate, err := domain.NewEntry(name)
	if err != nil {
		return "", err
	}

	stored, err := s.entries.FindOrCreate(ctx, candidate)
	if err != nil {
		return "", fmt.Errorf("failed to register %q: %w", name, err)
	}
	return stored.Identifier, nil
}

// Names returns all registered names in registration order.
func (s *RegistryService) Names(ctx context.Context) ([]string, error) {
	entries, err := s.entries.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	return names, nil
}
