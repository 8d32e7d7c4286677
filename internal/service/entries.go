package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/thelogs/shelflife/internal/blocks"
	"github.com/thelogs/shelflife/internal/errs"
	"github.com/thelogs/shelflife/internal/model"
	"github.com/thelogs/shelflife/internal/repository"
)

// placeholderCover is used when an entry is saved without any cover image.
const placeholderCover = "https://picsum.photos/400/600"

// EntryService defines operations over journal entries.
type EntryService interface {
	// Create validates and persists a new entry, returning it with ID and AddedAt set.
	Create(ctx context.Context, e model.Entry) (model.Entry, error)
	// Update replaces an existing entry's mutable fields. AddedAt is preserved.
	Update(ctx context.Context, e model.Entry) (model.Entry, error)
	// Get returns a single entry by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.Entry, error)
	// List returns all entries, optionally filtered by tab.
	List(ctx context.Context, tabID uuid.UUID) ([]model.Entry, error)
	// Delete removes an entry.
	Delete(ctx context.Context, id uuid.UUID) error
}

type EntryServiceImpl struct {
	repo repository.EntryRepository
	tabs repository.TabRepository
	now  func() time.Time
}

// NewEntryService constructs EntryService.
func NewEntryService(repo repository.EntryRepository, tabs repository.TabRepository) *EntryServiceImpl {
	return &EntryServiceImpl{repo: repo, tabs: tabs, now: time.Now}
}

// Create validates the entry, derives the denormalized fields and persists it.
// Validation rules:
// - TabID must reference an existing tab (no entry is saved without a tab)
// - publishing requires a non-empty title
func (s *EntryServiceImpl) Create(ctx context.Context, e model.Entry) (model.Entry, error) {
	tab, err := s.requireTab(ctx, e.TabID)
	if err != nil {
		return model.Entry{}, err
	}
	if err := validateStatus(e); err != nil {
		return model.Entry{}, err
	}
	e.ID = uuid.Must(uuid.NewV4())
	e.AddedAt = s.now()
	normalize(&e, tab)
	if err := s.repo.Create(ctx, e); err != nil {
		return model.Entry{}, fmt.Errorf("create entry: %w", err)
	}
	return e, nil
}

// Update validates and persists changes to an existing entry. AddedAt is
// immutable: the stored value always wins.
func (s *EntryServiceImpl) Update(ctx context.Context, e model.Entry) (model.Entry, error) {
	if e.ID == uuid.Nil {
		return model.Entry{}, fmt.Errorf("%w: empty entry id", errs.ErrValidation)
	}
	tab, err := s.requireTab(ctx, e.TabID)
	if err != nil {
		return model.Entry{}, err
	}
	if err := validateStatus(e); err != nil {
		return model.Entry{}, err
	}
	current, err := s.repo.Get(ctx, e.ID)
	if err != nil {
		return model.Entry{}, err
	}
	e.AddedAt = current.AddedAt
	normalize(&e, tab)
	if err := s.repo.Update(ctx, e); err != nil {
		return model.Entry{}, fmt.Errorf("update entry: %w", err)
	}
	return e, nil
}

// Get returns a single entry by id.
func (s *EntryServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Entry, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: empty entry id", errs.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// List returns all entries, or only one tab's when tabID is set.
func (s *EntryServiceImpl) List(ctx context.Context, tabID uuid.UUID) ([]model.Entry, error) {
	if tabID == uuid.Nil {
		return s.repo.List(ctx)
	}
	return s.repo.ListByTab(ctx, tabID)
}

// Delete removes an entry.
func (s *EntryServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: empty entry id", errs.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func (s *EntryServiceImpl) requireTab(ctx context.Context, tabID uuid.UUID) (*model.Tab, error) {
	if tabID == uuid.Nil {
		return nil, fmt.Errorf("%w: no tab selected", errs.ErrValidation)
	}
	tab, err := s.tabs.Get(ctx, tabID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown tab", errs.ErrValidation)
		}
		return nil, fmt.Errorf("load tab: %w", err)
	}
	return tab, nil
}

func validateStatus(e model.Entry) error {
	switch e.Status {
	case "", model.StatusDraft, model.StatusPublished:
	default:
		return fmt.Errorf("%w: bad status %q", errs.ErrValidation, e.Status)
	}
	if e.Status == model.StatusPublished && strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: cannot publish without a title", errs.ErrValidation)
	}
	return nil
}

// normalize derives the denormalized fields: the entry takes the tab's type,
// notes is regenerated from the block list (the source of truth), apps
// entries derive a favicon cover from the creator URL, and a missing cover
// falls back to the placeholder.
func normalize(e *model.Entry, tab *model.Tab) {
	e.Type = tab.Type
	if e.Status == "" {
		e.Status = model.StatusDraft
	}
	e.Notes = blocks.FlattenHTML(e.Content)
	if tab.Type == model.EntryTypeApps && e.Creator != "" {
		if fav := FaviconURL(e.Creator); fav != "" {
			e.ImageURL = fav
		}
	}
	if e.ImageURL == "" {
		e.ImageURL = placeholderCover
	}
}

// FaviconURL derives a favicon image URL from a site address, tolerating a
// missing scheme. Returns "" for unparseable input.
func FaviconURL(raw string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return "https://icons.duckduckgo.com/ip3/" + u.Hostname() + ".ico"
}
