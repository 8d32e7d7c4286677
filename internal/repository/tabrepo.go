package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/thelogs/shelflife/internal/model"
)

// TabRepository provides access to tabs and their embedded canvases.
type TabRepository interface {
	// Create inserts a new tab with its ID already set.
	Create(ctx context.Context, t model.Tab) error

	// Get returns a single tab, canvas included.
	Get(ctx context.Context, id uuid.UUID) (*model.Tab, error)

	// List returns all tabs.
	List(ctx context.Context) ([]model.Tab, error)

	// UpdateColor sets the tab's display color.
	UpdateColor(ctx context.Context, id uuid.UUID, color string) error

	// ReplaceCanvasImages overwrites the tab's full canvas item set.
	ReplaceCanvasImages(ctx context.Context, id uuid.UUID, images []model.CanvasImage) error

	// Delete removes the tab and all entries referencing it in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
