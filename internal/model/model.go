// Package model defines domain entities used by services, repositories and the editing engines.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// EntryType drives the default cover presentation and which metadata search applies.
type EntryType string

const (
	EntryTypeBook  EntryType = "book"
	EntryTypeMovie EntryType = "movie"
	EntryTypeMusic EntryType = "music"
	EntryTypeBlog  EntryType = "blog"
	EntryTypeAnime EntryType = "anime"
	EntryTypeManga EntryType = "manga"
	EntryTypeTV    EntryType = "tv"
	EntryTypeApps  EntryType = "apps"
)

// EntryStatus marks whether an entry is visible on the public shelf.
type EntryStatus string

const (
	StatusDraft     EntryStatus = "draft"
	StatusPublished EntryStatus = "published"
)

// Entry is a single journaled item. The block list in Content is the source of
// truth when non-empty; Notes is a derived HTML rendering kept as a fallback
// for older data and simplified rendering paths.
type Entry struct {
	ID       uuid.UUID   `json:"id"`
	TabID    uuid.UUID   `json:"tabId"`
	Type     EntryType   `json:"type"`
	Title    string      `json:"title"`
	Creator  string      `json:"creator"` // author, director, artist
	ImageURL string      `json:"imageUrl"`
	Notes    string      `json:"notes"`
	Content  []Block     `json:"content"`
	Status   EntryStatus `json:"status"`
	AddedAt  time.Time   `json:"addedAt"` // set once at creation, immutable
}

// Tab is a user-defined category. It owns its canvas images outright; entries
// reference it by TabID.
type Tab struct {
	ID     uuid.UUID     `json:"id"`
	Label  string        `json:"label"`
	Type   EntryType     `json:"type"`
	Color  string        `json:"color"`
	Canvas []CanvasImage `json:"canvas"`
}

// CanvasImage is one positioned item on a tab's mood-board canvas.
// Coordinates are canvas-local pixels and may be negative or exceed the
// viewport. Rotation is degrees and is not stored normalized.
type CanvasImage struct {
	ID       string  `json:"id"`
	URL      string  `json:"url"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
}

// SearchResult is the normalized record returned by every metadata provider.
type SearchResult struct {
	Title      string `json:"title"`
	Creator    string `json:"creator"`
	ImageURL   string `json:"imageUrl"`
	ExternalID string `json:"externalId"`
}
