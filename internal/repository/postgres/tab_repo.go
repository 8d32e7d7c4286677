package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/thelogs/shelflife/internal/errs"
	"github.com/thelogs/shelflife/internal/model"
)

// TabRepo implements TabRepository using PostgreSQL. The canvas item set is
// embedded on the tab row as JSONB, which keeps the replace-all save a single
// atomic row update.
type TabRepo struct{ db *DB }

// NewTabRepo constructs a tab repository.
func NewTabRepo(db *DB) *TabRepo { return &TabRepo{db: db} }

// Create inserts a new tab.
func (r *TabRepo) Create(ctx context.Context, t model.Tab) error {
	canvas, err := marshalCanvas(t.Canvas)
	if err != nil {
		return err
	}
	const q = `INSERT INTO tabs (id, label, type, color, canvas) VALUES ($1,$2,$3,$4,$5)`
	_, err = r.db.Pool.Exec(ctx, q, t.ID, t.Label, string(t.Type), t.Color, canvas)
	return err
}

// Get returns a single tab with its canvas.
func (r *TabRepo) Get(ctx context.Context, id uuid.UUID) (*model.Tab, error) {
	const q = `SELECT id, label, type, color, canvas FROM tabs WHERE id=$1`
	t, err := scanTab(r.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns all tabs ordered by label.
func (r *TabRepo) List(ctx context.Context) ([]model.Tab, error) {
	const q = `SELECT id, label, type, color, canvas FROM tabs ORDER BY label`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Tab
	for rows.Next() {
		t, err := scanTab(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// UpdateColor sets the display color.
func (r *TabRepo) UpdateColor(ctx context.Context, id uuid.UUID, color string) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE tabs SET color=$2 WHERE id=$1`, id, color)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ReplaceCanvasImages overwrites the full canvas item set on the tab row.
func (r *TabRepo) ReplaceCanvasImages(ctx context.Context, id uuid.UUID, images []model.CanvasImage) error {
	canvas, err := marshalCanvas(images)
	if err != nil {
		return err
	}
	tag, err := r.db.Pool.Exec(ctx, `UPDATE tabs SET canvas=$2 WHERE id=$1`, id, canvas)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes the tab together with every entry referencing it. Both
// deletes run in one transaction; canvas images live on the tab row and go
// with it.
func (r *TabRepo) Delete(ctx context.Context, id uuid.UUID) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM entries WHERE tab_id=$1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM tabs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func marshalCanvas(images []model.CanvasImage) ([]byte, error) {
	if images == nil {
		images = []model.CanvasImage{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("marshal canvas: %w", err)
	}
	return b, nil
}

func scanTab(row pgx.Row) (*model.Tab, error) {
	var (
		t         model.Tab
		typ       string
		canvasRaw []byte
	)
	if err := row.Scan(&t.ID, &t.Label, &typ, &t.Color, &canvasRaw); err != nil {
		return nil, err
	}
	t.Type = model.EntryType(typ)
	if len(canvasRaw) > 0 {
		if err := json.Unmarshal(canvasRaw, &t.Canvas); err != nil {
			return nil, fmt.Errorf("unmarshal canvas: %w", err)
		}
	}
	return &t, nil
}
