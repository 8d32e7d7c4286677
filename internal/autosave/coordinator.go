// Package autosave debounces rapid editor changes into at most one draft save
// per quiet period.
package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/thelogs/shelflife/internal/blocks"
	"github.com/thelogs/shelflife/internal/model"
)

// DefaultWindow is the debounce quiet period.
const DefaultWindow = 2 * time.Second

// Draft is the editor's in-memory state as handed to the coordinator. It is a
// full snapshot: saves are idempotent replacements, not deltas, so a retry by
// superseding edit is always safe.
type Draft struct {
	TabID    uuid.UUID
	Type     model.EntryType
	Title    string
	Creator  string
	ImageURL string
	Content  []model.Block
	Status   model.EntryStatus
}

// Empty reports whether the draft carries nothing worth persisting: no title
// and no block content.
func (d Draft) Empty() bool {
	return d.Title == "" && blocks.ContentEmpty(d.Content)
}

// Saver persists draft snapshots. Create returns the assigned persistent ID;
// Update replaces the record in place.
type Saver interface {
	Create(ctx context.Context, d Draft) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, d Draft) error
}

// Coordinator debounces Update calls: each one resets the timer, and once the
// quiet period elapses without further edits exactly one save is issued with
// the latest snapshot. The first successful save of a brand-new draft captures
// the assigned ID so subsequent saves update the same record.
//
// A failed save is reported softly (logged) and never touches the in-memory
// draft; the timer is re-armed so the latest content is retried.
type Coordinator struct {
	saver  Saver
	window time.Duration
	log    *zap.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	timer   *time.Timer
	draft   Draft
	gen     uint64 // bumped on every Update; identifies the draft revision
	dirty   bool
	saving  bool
	closed  bool
	entryID uuid.UUID
}

// New constructs a coordinator. A non-positive window falls back to
// DefaultWindow.
func New(saver Saver, window time.Duration, log *zap.Logger) *Coordinator {
	if window <= 0 {
		window = DefaultWindow
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &Coordinator{saver: saver, window: window, log: log}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Update records the latest draft snapshot and resets the debounce timer.
func (c *Coordinator) Update(d Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.draft = d
	c.gen++
	c.dirty = true
	c.arm(c.window)
}

// EntryID returns the persistent ID captured by the first successful save, or
// uuid.Nil while the draft has never been persisted.
func (c *Coordinator) EntryID() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entryID
}

// Flush saves the pending draft immediately, bypassing the debounce window.
// An empty draft is suppressed and reported as success. A save already in
// flight is waited out first; if it did not cover the latest revision the
// flush issues its own save, so success always means the current draft is
// persisted.
func (c *Coordinator) Flush(ctx context.Context) error {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	for c.saving {
		c.cond.Wait()
	}
	if !c.dirty || c.draft.Empty() {
		c.dirty = false
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	return c.save(ctx)
}

// Close stops the timer; no further saves are issued.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// arm resets the timer. Callers must hold c.mu.
func (c *Coordinator) arm(d time.Duration) {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(d, c.fire)
}

func (c *Coordinator) fire() {
	c.mu.Lock()
	if c.closed || !c.dirty || c.saving {
		c.mu.Unlock()
		return
	}
	if c.draft.Empty() {
		// Empty drafts are never persisted, regardless of elapsed time.
		c.dirty = false
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.window)
	defer cancel()
	if err := c.save(ctx); err != nil {
		c.log.Warn("autosave failed, will retry", zap.Error(err))
	}
}

func (c *Coordinator) save(ctx context.Context) error {
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return nil
	}
	c.saving = true
	snapshot := c.draft
	gen := c.gen
	id := c.entryID
	c.mu.Unlock()

	var err error
	var newID uuid.UUID
	if id == uuid.Nil {
		newID, err = c.saver.Create(ctx, snapshot)
	} else {
		err = c.saver.Update(ctx, id, snapshot)
	}

	c.mu.Lock()
	c.saving = false
	if err == nil {
		if id == uuid.Nil {
			c.entryID = newID
		}
		// Edits that landed during the save bumped the generation; only a
		// save of the current revision clears the dirty flag.
		if c.gen == gen {
			c.dirty = false
		}
	}
	// A still-dirty draft means a failed save or a revision this save did not
	// cover. Either way the timer owns the retry; timer fires that found a
	// save in flight rely on this re-arm.
	if c.dirty && !c.closed {
		c.arm(c.window)
	}
	c.cond.Broadcast()
	c.mu.Unlock()
	return err
}
