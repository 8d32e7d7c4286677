// Package repository declares persistence interfaces implemented by the
// postgres subpackage and by test fakes.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/thelogs/shelflife/internal/model"
)

// EntryRepository provides CRUD access to journal entries.
type EntryRepository interface {
	// Create inserts a new entry with its ID and AddedAt already set.
	Create(ctx context.Context, e model.Entry) error

	// Update replaces the mutable fields of an entry. AddedAt is never touched.
	Update(ctx context.Context, e model.Entry) error

	// Get returns a single entry by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.Entry, error)

	// List returns all entries, newest first.
	List(ctx context.Context) ([]model.Entry, error)

	// ListByTab returns all entries belonging to one tab, newest first.
	ListByTab(ctx context.Context, tabID uuid.UUID) ([]model.Entry, error)

	// Delete removes an entry.
	Delete(ctx context.Context, id uuid.UUID) error
}
