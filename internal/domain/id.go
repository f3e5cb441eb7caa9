package domain

import "github.com/google/uuid"

// newIdentifier mints a new globally unique identifier in the canonical
// hyphenated form (8-4-4-4-12 hexadecimal groups).
func newIdentifier() string {
	return uuid.New().String()
}

// ValidIdentifier reports whether s is a canonically formatted identifier.
func ValidIdentifier(s string) bool {
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return id.String() == s
}
