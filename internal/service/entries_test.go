package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/thelogs/shelflife/internal/errs"
	"github.com/thelogs/shelflife/internal/model"
	"github.com/thelogs/shelflife/internal/repository"
)

type fakeEntryRepo struct {
	created *model.Entry
	updated *model.Entry
	deleted uuid.UUID

	getOut  *model.Entry
	getErr  error
	listOut []model.Entry
	listErr error

	byTabIn  uuid.UUID
	byTabOut []model.Entry
}

var _ repository.EntryRepository = (*fakeEntryRepo)(nil)

func (f *fakeEntryRepo) Create(_ context.Context, e model.Entry) error {
	f.created = &e
	return nil
}
func (f *fakeEntryRepo) Update(_ context.Context, e model.Entry) error {
	f.updated = &e
	return nil
}
func (f *fakeEntryRepo) Get(_ context.Context, id uuid.UUID) (*model.Entry, error) {
	return f.getOut, f.getErr
}
func (f *fakeEntryRepo) List(_ context.Context) ([]model.Entry, error) {
	return f.listOut, f.listErr
}
func (f *fakeEntryRepo) ListByTab(_ context.Context, tabID uuid.UUID) ([]model.Entry, error) {
	f.byTabIn = tabID
	return f.byTabOut, nil
}
func (f *fakeEntryRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = id
	return nil
}

type fakeTabRepo struct {
	createdTab *model.Tab
	getOut     *model.Tab
	getErr     error
	listOut    []model.Tab

	colorID    uuid.UUID
	color      string
	canvasID   uuid.UUID
	canvasIn   []model.CanvasImage
	deletedTab uuid.UUID
	repoErr    error
}

var _ repository.TabRepository = (*fakeTabRepo)(nil)

func (f *fakeTabRepo) Create(_ context.Context, t model.Tab) error {
	f.createdTab = &t
	return f.repoErr
}
func (f *fakeTabRepo) Get(_ context.Context, id uuid.UUID) (*model.Tab, error) {
	return f.getOut, f.getErr
}
func (f *fakeTabRepo) List(_ context.Context) ([]model.Tab, error) {
	return f.listOut, nil
}
func (f *fakeTabRepo) UpdateColor(_ context.Context, id uuid.UUID, color string) error {
	f.colorID, f.color = id, color
	return f.repoErr
}
func (f *fakeTabRepo) ReplaceCanvasImages(_ context.Context, id uuid.UUID, images []model.CanvasImage) error {
	f.canvasID, f.canvasIn = id, images
	return f.repoErr
}
func (f *fakeTabRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deletedTab = id
	return f.repoErr
}

func bookTab() *model.Tab {
	return &model.Tab{ID: uuid.Must(uuid.NewV4()), Label: "Books", Type: model.EntryTypeBook}
}

func TestEntryService_Create_RequiresTab(t *testing.T) {
	s := NewEntryService(&fakeEntryRepo{}, &fakeTabRepo{getErr: errs.ErrNotFound})

	_, err := s.Create(context.Background(), model.Entry{Title: "x"})
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = s.Create(context.Background(), model.Entry{Title: "x", TabID: uuid.Must(uuid.NewV4())})
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestEntryService_Create_TabStoreOutageIsNotValidation(t *testing.T) {
	s := NewEntryService(&fakeEntryRepo{}, &fakeTabRepo{getErr: errors.New("connection refused")})

	_, err := s.Create(context.Background(), model.Entry{Title: "x", TabID: uuid.Must(uuid.NewV4())})
	require.Error(t, err)
	require.NotErrorIs(t, err, errs.ErrValidation)
}

func TestEntryService_Create_SetsDerivedFields(t *testing.T) {
	repo := &fakeEntryRepo{}
	tab := bookTab()
	s := NewEntryService(repo, &fakeTabRepo{getOut: tab})

	e, err := s.Create(context.Background(), model.Entry{
		TabID: tab.ID,
		Title: "Dune",
		Content: []model.Block{
			{ID: "p1", Type: model.BlockParagraph, Rich: model.PlainFragment("great read")},
		},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, e.ID)
	require.False(t, e.AddedAt.IsZero())
	require.Equal(t, model.EntryTypeBook, e.Type)
	require.Equal(t, model.StatusDraft, e.Status)
	require.Equal(t, "<p>great read</p>", e.Notes)
	require.Equal(t, placeholderCover, e.ImageURL)
	require.NotNil(t, repo.created)
}

func TestEntryService_Create_PublishNeedsTitle(t *testing.T) {
	tab := bookTab()
	s := NewEntryService(&fakeEntryRepo{}, &fakeTabRepo{getOut: tab})

	_, err := s.Create(context.Background(), model.Entry{
		TabID:  tab.ID,
		Status: model.StatusPublished,
	})
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestEntryService_Create_AppsFavicon(t *testing.T) {
	tab := bookTab()
	tab.Type = model.EntryTypeApps
	s := NewEntryService(&fakeEntryRepo{}, &fakeTabRepo{getOut: tab})

	e, err := s.Create(context.Background(), model.Entry{
		TabID:   tab.ID,
		Title:   "Linear",
		Creator: "linear.app",
	})
	require.NoError(t, err)
	require.Equal(t, "https://icons.duckduckgo.com/ip3/linear.app.ico", e.ImageURL)
}

func TestEntryService_Update_PreservesAddedAt(t *testing.T) {
	added := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tab := bookTab()
	repo := &fakeEntryRepo{getOut: &model.Entry{ID: uuid.Must(uuid.NewV4()), AddedAt: added}}
	s := NewEntryService(repo, &fakeTabRepo{getOut: tab})

	e, err := s.Update(context.Background(), model.Entry{
		ID:      repo.getOut.ID,
		TabID:   tab.ID,
		Title:   "new title",
		AddedAt: time.Now(), // must be ignored
	})
	require.NoError(t, err)
	require.Equal(t, added, e.AddedAt)
	require.Equal(t, added, repo.updated.AddedAt)
}

func TestEntryService_Update_NotFound(t *testing.T) {
	tab := bookTab()
	repo := &fakeEntryRepo{getErr: errs.ErrNotFound}
	s := NewEntryService(repo, &fakeTabRepo{getOut: tab})

	_, err := s.Update(context.Background(), model.Entry{ID: uuid.Must(uuid.NewV4()), TabID: tab.ID})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestEntryService_List_TabFilter(t *testing.T) {
	repo := &fakeEntryRepo{listOut: []model.Entry{{Title: "all"}}, byTabOut: []model.Entry{{Title: "tabbed"}}}
	s := NewEntryService(repo, &fakeTabRepo{})

	all, err := s.List(context.Background(), uuid.Nil)
	require.NoError(t, err)
	require.Equal(t, "all", all[0].Title)

	tabID := uuid.Must(uuid.NewV4())
	some, err := s.List(context.Background(), tabID)
	require.NoError(t, err)
	require.Equal(t, "tabbed", some[0].Title)
	require.Equal(t, tabID, repo.byTabIn)
}

func TestFaviconURL(t *testing.T) {
	require.Equal(t, "https://icons.duckduckgo.com/ip3/example.com.ico", FaviconURL("example.com"))
	require.Equal(t, "https://icons.duckduckgo.com/ip3/example.com.ico", FaviconURL("https://example.com/path"))
	require.Equal(t, "", FaviconURL(""))
}
