package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xvierd/greet-cli/internal/domain"
	"github.com/xvierd/greet-cli/internal/ports"
)

// entryRepository implements ports.EntryRepository using SQLite.
type entryRepository struct {
	db *sql.DB
}

// newEntryRepository creates a new registry entry repository.
func newEntryRepository(db *sql.DB) ports.EntryRepository {
	return &entryRepository{db: db}
}

// FindByName retrieves the entry for a name.
func (r *entryRepository) FindByName(ctx context.Context, name string) (*domain.Entry, error) {
	query := `
		SELECT name, identifier, created_at
		FROM entries
		WHERE name = ?
	`

	var entry domain.Entry
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&entry.Name,
		&entry.Identifier,
		&entry.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrNameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query entry: %v", domain.ErrRegistryUnavailable, err)
	}

	return &entry, nil
}

// FindOrCreate stores candidate unless the name is already registered and
// returns the stored entry. ON CONFLICT(name) DO NOTHING makes the insert
// a no-op when the name exists, so the subsequent read always observes the
// entry that won; concurrent callers for the same name all receive the
// same identifier.
func (r *entryRepository) FindOrCreate(ctx context.Context, candidate *domain.Entry) (*domain.Entry, error) {
	query := `
		INSERT INTO entries (name, identifier, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		candidate.Name,
		candidate.Identifier,
		candidate.CreatedAt,
	)

	if err != nil {
		// Name conflicts are swallowed by ON CONFLICT, so a unique
		// violation here means the identifier itself collided.
		if isUniqueConstraintError(err) {
			return nil, domain.ErrIdentifierCollision
		}
		return nil, fmt.Errorf("%w: failed to store entry: %v", domain.ErrRegistryUnavailable, err)
	}

	return r.FindByName(ctx, candidate.Name)
}

// FindAll retrieves all entries ordered by registration time.
func (r *entryRepository) FindAll(ctx context.Context) ([]*domain.Entry, error) {
	query := `
		SELECT name, identifier, created_at
		FROM entries
		ORDER BY created_at, name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query entries: %v", domain.ErrRegistryUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*domain.Entry
	for rows.Next() {
		var entry domain.Entry
		if err := rows.Scan(&entry.Name, &entry.Identifier, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan entry: %v", domain.ErrRegistryUnavailable, err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
