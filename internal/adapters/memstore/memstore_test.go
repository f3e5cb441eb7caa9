package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/xvierd/greet-cli/internal/domain"
)

func TestStore_FindOrCreate(t *testing.T) {
	store := New()
	ctx := context.Background()

	t.Run("stores new entry", func(t *testing.T) {
		candidate, _ := domain.NewEntry("Alice")
		stored, err := store.FindOrCreate(ctx, candidate)
		if err != nil {
			t.Fatalf("FindOrCreate() error = %v", err)
		}
		if stored.Identifier != candidate.Identifier {
			t.Errorf("FindOrCreate() identifier = %q, want %q", stored.Identifier, candidate.Identifier)
		}
	})

	t.Run("existing entry wins", func(t *testing.T) {
		first, _ := domain.NewEntry("Bob")
		stored, _ := store.FindOrCreate(ctx, first)

		second, _ := domain.NewEntry("Bob")
		again, err := store.FindOrCreate(ctx, second)
		if err != nil {
			t.Fatalf("FindOrCreate() error = %v", err)
		}
		if again.Identifier != stored.Identifier {
			t.Errorf("FindOrCreate() reassigned identifier: %q -> %q", stored.Identifier, again.Identifier)
		}
	})

	t.Run("detects identifier collision", func(t *testing.T) {
		first, _ := domain.NewEntry("Carol")
		if _, err := store.FindOrCreate(ctx, first); err != nil {
			t.Fatalf("FindOrCreate() error = %v", err)
		}

		forged := &domain.Entry{Name: "Mallory", Identifier: first.Identifier}
		_, err := store.FindOrCreate(ctx, forged)
		if !errors.Is(err, domain.ErrIdentifierCollision) {
			t.Errorf("FindOrCreate() error = %v, want ErrIdentifierCollision", err)
		}
	})

	t.Run("returned entries are copies", func(t *testing.T) {
		candidate, _ := domain.NewEntry("Dana")
		stored, _ := store.FindOrCreate(ctx, candidate)
		stored.Identifier = "tampered"

		found, err := store.FindByName(ctx, "Dana")
		if err != nil {
			t.Fatalf("FindByName() error = %v", err)
		}
		if found.Identifier == "tampered" {
			t.Error("mutating a returned entry leaked into the store")
		}
	})
}

func TestStore_FindByName(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.FindByName(ctx, "Nobody")
	if !errors.Is(err, domain.ErrNameNotFound) {
		t.Errorf("FindByName() error = %v, want ErrNameNotFound", err)
	}

	candidate, _ := domain.NewEntry("Alice")
	store.FindOrCreate(ctx, candidate)

	found, err := store.FindByName(ctx, "Alice")
	if err != nil {
		t.Fatalf("FindByName() error = %v", err)
	}
	if found.Identifier != candidate.Identifier {
		t.Errorf("FindByName() identifier = %q, want %q", found.Identifier, candidate.Identifier)
	}
}

func TestStore_FindAll(t *testing.T) {
	store := New()
	ctx := context.Background()

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		candidate, _ := domain.NewEntry(name)
		if _, err := store.FindOrCreate(ctx, candidate); err != nil {
			t.Fatalf("FindOrCreate(%q) error = %v", name, err)
		}
	}

	entries, err := store.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("FindAll() returned %d entries, want 3", len(entries))
	}
	if entries[0].Name != "Alice" || entries[2].Name != "Carol" {
		t.Errorf("FindAll() order = %q, %q, %q", entries[0].Name, entries[1].Name, entries[2].Name)
	}
}

func TestStore_ConcurrentFindOrCreate(t *testing.T) {
	store := New()
	ctx := context.Background()

	const workers = 64
	identifiers := make([]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			candidate, _ := domain.NewEntry("Alice")
			stored, err := store.FindOrCreate(ctx, candidate)
			if err != nil {
				t.Errorf("FindOrCreate() error = %v", err)
				return
			}
			identifiers[i] = stored.Identifier
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if identifiers[i] != identifiers[0] {
			t.Fatalf("concurrent FindOrCreate minted multiple identifiers: %q and %q", identifiers[0], identifiers[i])
		}
	}
}
