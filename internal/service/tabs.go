package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/thelogs/shelflife/internal/canvas"
	"github.com/thelogs/shelflife/internal/errs"
	"github.com/thelogs/shelflife/internal/model"
	"github.com/thelogs/shelflife/internal/repository"
)

// defaultTabColor matches the color a fresh tab gets before the user picks one.
const defaultTabColor = "#C0C0C0"

// TabService defines operations over tabs and their canvases.
type TabService interface {
	// Create persists a new tab with the default color.
	Create(ctx context.Context, label string, typ model.EntryType) (model.Tab, error)
	// Get returns a single tab, canvas included.
	Get(ctx context.Context, id uuid.UUID) (*model.Tab, error)
	// List returns all tabs.
	List(ctx context.Context) ([]model.Tab, error)
	// SetColor updates the tab's display color.
	SetColor(ctx context.Context, id uuid.UUID, color string) error
	// ReplaceCanvasImages commits the full canvas item set for a tab.
	ReplaceCanvasImages(ctx context.Context, id uuid.UUID, images []model.CanvasImage) error
	// Delete removes the tab and cascades to its entries and canvas.
	Delete(ctx context.Context, id uuid.UUID) error
}

type TabServiceImpl struct {
	repo repository.TabRepository
}

// NewTabService constructs TabService.
func NewTabService(repo repository.TabRepository) *TabServiceImpl {
	return &TabServiceImpl{repo: repo}
}

// Create validates and persists a new tab.
func (s *TabServiceImpl) Create(ctx context.Context, label string, typ model.EntryType) (model.Tab, error) {
	if strings.TrimSpace(label) == "" {
		return model.Tab{}, fmt.Errorf("%w: empty tab label", errs.ErrValidation)
	}
	t := model.Tab{
		ID:     uuid.Must(uuid.NewV4()),
		Label:  label,
		Type:   typ,
		Color:  defaultTabColor,
		Canvas: []model.CanvasImage{},
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return model.Tab{}, fmt.Errorf("create tab: %w", err)
	}
	return t, nil
}

// Get returns a single tab.
func (s *TabServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Tab, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: empty tab id", errs.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// List returns all tabs.
func (s *TabServiceImpl) List(ctx context.Context) ([]model.Tab, error) {
	return s.repo.List(ctx)
}

// SetColor updates the display color.
func (s *TabServiceImpl) SetColor(ctx context.Context, id uuid.UUID, color string) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: empty tab id", errs.ErrValidation)
	}
	if color == "" {
		return fmt.Errorf("%w: empty color", errs.ErrValidation)
	}
	return s.repo.UpdateColor(ctx, id, color)
}

// ReplaceCanvasImages commits the full item set. Geometry invariants are
// enforced here as the last line before persistence: sizes clamp to the
// canvas minimum and every item needs an ID and URL.
func (s *TabServiceImpl) ReplaceCanvasImages(ctx context.Context, id uuid.UUID, images []model.CanvasImage) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: empty tab id", errs.ErrValidation)
	}
	for i := range images {
		if images[i].ID == "" || images[i].URL == "" {
			return fmt.Errorf("%w: canvas image [%d] missing id or url", errs.ErrValidation, i)
		}
		if images[i].Width < canvas.MinSize {
			images[i].Width = canvas.MinSize
		}
		if images[i].Height < canvas.MinSize {
			images[i].Height = canvas.MinSize
		}
	}
	return s.repo.ReplaceCanvasImages(ctx, id, images)
}

// Delete removes the tab; the repository cascades to its entries and canvas
// in a single transaction.
func (s *TabServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: empty tab id", errs.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
