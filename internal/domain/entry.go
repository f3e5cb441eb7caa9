// Package domain contains the core entities of the greet registry.
// These entities represent the name-to-identifier mapping and are
// independent of any external frameworks or infrastructure.
package domain

import (
	"errors"
	"strings"
	"time"
)

// Common domain errors.
var (
	ErrInvalidName         = errors.New("name cannot be empty")
	ErrNameNotFound        = errors.New("name not registered")
	ErrRegistryUnavailable = errors.New("registry unavailable")
	ErrIdentifierCollision = errors.New("identifier collision detected")
)

// Entry associates a name with its identifier. The identifier is minted
// exactly once per name and never changes afterwards.
type Entry struct {
	Name       string
	Identifier string
	CreatedAt  time.Time
}

// NewEntry creates a candidate entry for the given name with a freshly
// minted identifier. Whether the candidate becomes the stored entry is up
// to the repository: if the name is already registered, the stored entry
// wins and the candidate is discarded.
func NewEntry(name string) (*Entry, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	return &Entry{
		Name:       name,
		Identifier: newIdentifier(),
		CreatedAt:  time.Now(),
	}, nil
}

// ValidateName ensures the name is usable as a registry key.
// Names are case-sensitive; only emptiness is rejected.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	return nil
}
