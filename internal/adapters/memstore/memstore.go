// Package memstore provides an in-memory implementation of the storage
// ports. It matches the reference registry behavior: a process-scoped
// map guarded by a mutex, discarded when the process exits.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/xvierd/greet-cli/internal/domain"
	"github.com/xvierd/greet-cli/internal/ports"
)

// Store implements ports.Storage backed by a plain map.
type Store struct {
	mu          sync.RWMutex
	entries     map[string]*domain.Entry
	identifiers map[string]string // identifier -> name, collision tripwire
	order       []string          // names in registration order
}

// Ensure Store implements both storage ports.
var (
	_ ports.Storage         = (*Store)(nil)
	_ ports.EntryRepository = (*Store)(nil)
)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		entries:     make(map[string]*domain.Entry),
		identifiers: make(map[string]string),
	}
}

// Entries returns the registry entry repository.
func (s *Store) Entries() ports.EntryRepository { return s }

// Close releases nothing; the store is plain memory.
func (s *Store) Close() error { return nil }

// Migrate is a no-op for the in-memory store.
func (s *Store) Migrate() error { return nil }

// FindByName retrieves the entry for a name.
func (s *Store) FindByName(ctx context.Context, name string) (*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[name]
	if !ok {
		return nil, domain.ErrNameNotFound
	}
	return copyEntry(entry), nil
}

// FindOrCreate stores candidate unless the name is already registered and
// returns the stored entry. The whole check-and-set happens under one
// lock, so concurrent callers for the same name all observe a single
// minted identifier.
func (s *Store) FindOrCreate(ctx context.Context, candidate *domain.Entry) (*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[candidate.Name]; ok {
		return copyEntry(existing), nil
	}

	if owner, taken := s.identifiers[candidate.Identifier]; taken && owner != candidate.Name {
		return nil, domain.ErrIdentifierCollision
	}

	stored := copyEntry(candidate)
	s.entries[stored.Name] = stored
	s.identifiers[stored.Identifier] = stored.Name
	s.order = append(s.order, stored.Name)

	return copyEntry(stored), nil
}

// FindAll retrieves all entries ordered by registration time.
func (s *Store) FindAll(ctx context.Context) ([]*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*domain.Entry, 0, len(s.order))
	for _, name := range s.order {
		entries = append(entries, copyEntry(s.entries[name]))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	return entries, nil
}

// copyEntry clones an entry; stored state is never handed out directly.
func copyEntry(entry *domain.Entry) *domain.Entry {
	c := *entry
	return &c
}
