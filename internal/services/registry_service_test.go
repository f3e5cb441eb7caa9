package services

import (
	"context"
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/xvierd/greet-cli/internal/adapters/memstore"
	"github.com/xvierd/greet-cli/internal/domain"
)

func TestRegistryService_Retrieve(t *testing.T) {
	service := NewRegistryService(memstore.New())
	ctx := context.Background()

	t.Run("absent before any generate", func(t *testing.T) {
		_, err := service.Retrieve(ctx, "Alice")
		if !errors.Is(err, domain.ErrNameNotFound) {
			t.Errorf("Retrieve() error = %v, want ErrNameNotFound", err)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := service.Retrieve(ctx, "")
		if !errors.Is(err, domain.ErrInvalidName) {
			t.Errorf("Retrieve(\"\") error = %v, want ErrInvalidName", err)
		}
	})

	t.Run("returns generated identifier", func(t *testing.T) {
		generated, err := service.Generate(ctx, "Alice")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		retrieved, err := service.Retrieve(ctx, "Alice")
		if err != nil {
			t.Fatalf("Retrieve() error = %v", err)
		}
		if retrieved != generated {
			t.Errorf("Retrieve() = %q, want %q", retrieved, generated)
		}
	})
}

func TestRegistryService_Generate(t *testing.T) {
	service := NewRegistryService(memstore.New())
	ctx := context.Background()

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := service.Generate(ctx, "")
		if !errors.Is(err, domain.ErrInvalidName) {
			t.Errorf("Generate(\"\") error = %v, want ErrInvalidName", err)
		}
	})

	t.Run("mints canonical identifier", func(t *testing.T) {
		identifier, err := service.Generate(ctx, "Alice")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if !domain.ValidIdentifier(identifier) {
			t.Errorf("Generate() identifier %q is not canonical", identifier)
		}
	})

	t.Run("idempotent for registered name", func(t *testing.T) {
		first, err := service.Generate(ctx, "Bob")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		second, err := service.Generate(ctx, "Bob")
		if err != nil {
			t.Fatalf("Generate() second call error = %v", err)
		}
		if first != second {
			t.Errorf("Generate() not idempotent: %q then %q", first, second)
		}
	})

	t.Run("no cross contamination between names", func(t *testing.T) {
		alice, err := service.Retrieve(ctx, "Alice")
		if err != nil {
			t.Fatalf("Retrieve(Alice) error = %v", err)
		}

		bob, err := service.Generate(ctx, "Bob")
		if err != nil {
			t.Fatalf("Generate(Bob) error = %v", err)
		}
		if alice == bob {
			t.Error("Alice and Bob share an identifier")
		}

		aliceAfter, err := service.Retrieve(ctx, "Alice")
		if err != nil {
			t.Fatalf("Retrieve(Alice) after Bob error = %v", err)
		}
		if aliceAfter != alice {
			t.Errorf("Alice's identifier changed after Bob registered: %q -> %q", alice, aliceAfter)
		}
	})
}

func TestRegistryService_Names(t *testing.T) {
	service := NewRegistryService(memstore.New())
	ctx := context.Background()

	names, err := service.Names(ctx)
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Names() on empty registry = %v", names)
	}

	for _, name := range []string{"Alice", "Bob"} {
		if _, err := service.Generate(ctx, name); err != nil {
			t.Fatalf("Generate(%q) error = %v", name, err)
		}
	}

	names, err = service.Names(ctx)
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	if len(names) != 2 || names[0] != "Alice" || names[1] != "Bob" {
		t.Errorf("Names() = %v, want [Alice Bob]", names)
	}
}

// TestRegistryService_Properties checks the registry invariants over
// generated inputs: lookups are stable, generate is idempotent, and
// distinct names never share an identifier.
func TestRegistryService_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		service := NewRegistryService(memstore.New())
		ctx := context.Background()

		names := rapid.SliceOfNDistinct(
			rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ]{0,20}[A-Za-z0-9]`),
			1, 10, rapid.ID[string],
		).Draw(t, "names")

		assigned := make(map[string]string)
		for _, name := range names {
			identifier, err := service.Generate(ctx, name)
			if err != nil {
				t.Fatalf("Generate(%q) error = %v", name, err)
			}

			for other, otherID := range assigned {
				if other != name && otherID == identifier {
					t.Fatalf("names %q and %q share identifier %q", name, other, identifier)
				}
			}
			assigned[name] = identifier
		}

		for _, name := range names {
			again, err := service.Generate(ctx, name)
			if err != nil {
				t.Fatalf("repeat Generate(%q) error = %v", name, err)
			}
			if again != assigned[name] {
				t.Fatalf("Generate(%q) not idempotent: %q then %q", name, assigned[name], again)
			}

			retrieved, err := service.Retrieve(ctx, name)
			if err != nil {
				t.Fatalf("Retrieve(%q) error = %v", name, err)
			}
			if retrieved != assigned[name] {
				t.Fatalf("Retrieve(%q) = %q, want %q", name, retrieved, assigned[name])
			}
		}
	})
}
