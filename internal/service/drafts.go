package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/thelogs/shelflife/internal/autosave"
	"github.com/thelogs/shelflife/internal/model"
)

// DraftStore adapts EntryService to the autosave coordinator's Saver
// contract: the first save of a brand-new draft creates the entry and yields
// its persistent ID, later saves replace the record in place.
type DraftStore struct {
	entries EntryService
}

var _ autosave.Saver = (*DraftStore)(nil)

// NewDraftStore constructs the adapter.
func NewDraftStore(entries EntryService) *DraftStore {
	return &DraftStore{entries: entries}
}

// Create persists a draft for the first time and returns the assigned ID.
func (s *DraftStore) Create(ctx context.Context, d autosave.Draft) (uuid.UUID, error) {
	e, err := s.entries.Create(ctx, entryFromDraft(d))
	if err != nil {
		return uuid.Nil, err
	}
	return e.ID, nil
}

// Update replaces an already-persisted draft.
func (s *DraftStore) Update(ctx context.Context, id uuid.UUID, d autosave.Draft) error {
	e := entryFromDraft(d)
	e.ID = id
	_, err := s.entries.Update(ctx, e)
	return err
}

func entryFromDraft(d autosave.Draft) model.Entry {
	status := d.Status
	if status == "" {
		status = model.StatusDraft
	}
	return model.Entry{
		TabID:    d.TabID,
		Type:     d.Type,
		Title:    d.Title,
		Creator:  d.Creator,
		ImageURL: d.ImageURL,
		Content:  d.Content,
		Status:   status,
	}
}
