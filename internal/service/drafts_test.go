package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/thelogs/shelflife/internal/autosave"
	"github.com/thelogs/shelflife/internal/model"
)

func TestDraftStore_CreateThenUpdate(t *testing.T) {
	tab := bookTab()
	repo := &fakeEntryRepo{}
	store := NewDraftStore(NewEntryService(repo, &fakeTabRepo{getOut: tab}))

	d := autosave.Draft{TabID: tab.ID, Title: "wip"}
	id, err := store.Create(context.Background(), d)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)
	require.Equal(t, model.StatusDraft, repo.created.Status)

	repo.getOut = repo.created
	d.Title = "wip 2"
	require.NoError(t, store.Update(context.Background(), id, d))
	require.Equal(t, id, repo.updated.ID)
	require.Equal(t, "wip 2", repo.updated.Title)
}
