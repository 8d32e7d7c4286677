// Package canvas implements the freeform mood-board: a mutable set of
// positioned, sized, rotated images on an unbounded 2D surface, with
// direct-manipulation gestures for edit mode.
package canvas

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/thelogs/shelflife/internal/errs"
	"github.com/thelogs/shelflife/internal/model"
)

const (
	// MinSize is the lower bound for item width and height in pixels.
	MinSize = 50
	// DefaultSize is the initial width and height of a newly added image.
	DefaultSize = 200
)

// presetSlots is the fixed rotation of starting placements for new images,
// indexed by item count so successive drops scatter instead of stacking.
var presetSlots = []struct {
	x, y, rotation float64
}{
	{100, 100, 0},
	{340, 160, -6},
	{180, 380, 4},
	{520, 120, 8},
	{420, 420, -3},
	{80, 560, 5},
}

// Uploader hosts raw image bytes and returns the final URL. The engine never
// adds an item until the URL is final.
type Uploader interface {
	Upload(ctx context.Context, data []byte, name string) (string, error)
}

// Saver persists the full item set for a tab with replace-all semantics.
type Saver interface {
	ReplaceCanvasImages(ctx context.Context, tabID uuid.UUID, images []model.CanvasImage) error
}

// Engine owns the canvas item set of one tab plus the single-item selection.
// It is a single editing session's state: one writer, no locking.
type Engine struct {
	tabID      uuid.UUID
	items      []model.CanvasImage
	selectedID string
	uploader   Uploader
	saver      Saver
}

// NewEngine starts an editing session over the tab's current item set.
func NewEngine(tabID uuid.UUID, items []model.CanvasImage, up Uploader, saver Saver) *Engine {
	return &Engine{
		tabID:    tabID,
		items:    append([]model.CanvasImage(nil), items...),
		uploader: up,
		saver:    saver,
	}
}

// Items returns a copy of the current item set in z-order.
func (e *Engine) Items() []model.CanvasImage {
	return append([]model.CanvasImage(nil), e.items...)
}

// AddImage uploads the image bytes (raw or data URI) and, only once the
// hosted URL is final, appends a new item at the next preset slot. A failed
// upload adds nothing: the canvas never holds a broken entry.
func (e *Engine) AddImage(ctx context.Context, data []byte) (model.CanvasImage, error) {
	if e.uploader == nil {
		return model.CanvasImage{}, fmt.Errorf("add image: no uploader configured: %w", errs.ErrUpstream)
	}
	name := uuid.Must(uuid.NewV4()).String()
	url, err := e.uploader.Upload(ctx, data, name)
	if err != nil {
		return model.CanvasImage{}, fmt.Errorf("add image: upload: %w", err)
	}
	return e.AddImageURL(url), nil
}

// AddImageURL appends an already-hosted image at the next preset slot.
func (e *Engine) AddImageURL(url string) model.CanvasImage {
	slot := presetSlots[len(e.items)%len(presetSlots)]
	item := model.CanvasImage{
		ID:       uuid.Must(uuid.NewV4()).String(),
		URL:      url,
		X:        slot.x,
		Y:        slot.y,
		Width:    DefaultSize,
		Height:   DefaultSize,
		Rotation: slot.rotation,
	}
	e.items = append(e.items, item)
	return item
}

// UpdateItem replaces the item with the same ID. Width and height are clamped
// to MinSize; an unknown ID is ignored.
func (e *Engine) UpdateItem(item model.CanvasImage) {
	item.Width = clampSize(item.Width)
	item.Height = clampSize(item.Height)
	for i := range e.items {
		if e.items[i].ID == item.ID {
			e.items[i] = item
			return
		}
	}
}

// DeleteItem removes the item and clears the selection if it was selected.
func (e *Engine) DeleteItem(id string) {
	for i := range e.items {
		if e.items[i].ID == id {
			e.items = append(e.items[:i], e.items[i+1:]...)
			break
		}
	}
	if e.selectedID == id {
		e.selectedID = ""
	}
}

// Select marks the item as the single selection, implicitly deselecting any
// previous one. Selecting an unknown ID clears the selection, which is also
// how clicking empty canvas behaves.
func (e *Engine) Select(id string) {
	if _, ok := e.find(id); !ok {
		e.selectedID = ""
		return
	}
	e.selectedID = id
}

// Deselect clears the selection.
func (e *Engine) Deselect() { e.selectedID = "" }

// SelectedID returns the selected item's ID, or "" when nothing is selected.
func (e *Engine) SelectedID() string { return e.selectedID }

// Save hands the full current item set to the persistence collaborator. This
// is the explicit user-triggered commit; a failure leaves local state
// untouched so the user may retry.
func (e *Engine) Save(ctx context.Context) error {
	if e.saver == nil {
		return fmt.Errorf("save canvas: no saver configured: %w", errs.ErrUpstream)
	}
	if err := e.saver.ReplaceCanvasImages(ctx, e.tabID, e.Items()); err != nil {
		return fmt.Errorf("save canvas: %w", err)
	}
	return nil
}

// ResizeToWidth is the slider resize variant: it sets the width and scales
// height to preserve the item's current aspect ratio.
func (e *Engine) ResizeToWidth(id string, width float64) (model.CanvasImage, error) {
	item, ok := e.find(id)
	if !ok {
		return model.CanvasImage{}, errs.ErrNotFound
	}
	width = clampSize(width)
	ratio := item.Height / item.Width
	item.Width = width
	item.Height = clampSize(width * ratio)
	e.UpdateItem(item)
	return item, nil
}

func (e *Engine) find(id string) (model.CanvasImage, bool) {
	for _, it := range e.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.CanvasImage{}, false
}

func clampSize(v float64) float64 {
	if v < MinSize {
		return MinSize
	}
	return v
}
