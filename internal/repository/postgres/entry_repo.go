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

// EntryRepo implements EntryRepository using PostgreSQL. Block content is
// stored as JSONB, so legacy plain-string paragraph content migrates through
// the Block JSON codec on read.
type EntryRepo struct{ db *DB }

// NewEntryRepo constructs an entry repository.
func NewEntryRepo(db *DB) *EntryRepo { return &EntryRepo{db: db} }

const entryColumns = `id, tab_id, type, title, creator, image_url, notes, content, status, added_at`

// Create inserts a new entry.
func (r *EntryRepo) Create(ctx context.Context, e model.Entry) error {
	content, err := json.Marshal(e.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	const q = `INSERT INTO entries (id, tab_id, type, title, creator, image_url, notes, content, status, added_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err = r.db.Pool.Exec(ctx, q,
		e.ID, e.TabID, string(e.Type), e.Title, e.Creator, e.ImageURL, e.Notes, content, string(e.Status), e.AddedAt)
	return err
}

// Update replaces the mutable fields. AddedAt is immutable and never written.
func (r *EntryRepo) Update(ctx context.Context, e model.Entry) error {
	content, err := json.Marshal(e.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	const q = `UPDATE entries SET tab_id=$2, type=$3, title=$4, creator=$5, image_url=$6, notes=$7, content=$8, status=$9
WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q,
		e.ID, e.TabID, string(e.Type), e.Title, e.Creator, e.ImageURL, e.Notes, content, string(e.Status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Get returns a single entry by id.
func (r *EntryRepo) Get(ctx context.Context, id uuid.UUID) (*model.Entry, error) {
	q := `SELECT ` + entryColumns + ` FROM entries WHERE id=$1`
	e, err := scanEntry(r.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns all entries, newest first.
func (r *EntryRepo) List(ctx context.Context) ([]model.Entry, error) {
	q := `SELECT ` + entryColumns + ` FROM entries ORDER BY added_at DESC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

// ListByTab returns the entries referencing one tab, newest first.
func (r *EntryRepo) ListByTab(ctx context.Context, tabID uuid.UUID) ([]model.Entry, error) {
	q := `SELECT ` + entryColumns + ` FROM entries WHERE tab_id=$1 ORDER BY added_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, tabID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

// Delete removes an entry.
func (r *EntryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM entries WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func scanEntry(row pgx.Row) (*model.Entry, error) {
	var (
		e          model.Entry
		typ, st    string
		contentRaw []byte
	)
	if err := row.Scan(&e.ID, &e.TabID, &typ, &e.Title, &e.Creator, &e.ImageURL, &e.Notes, &contentRaw, &st, &e.AddedAt); err != nil {
		return nil, err
	}
	e.Type = model.EntryType(typ)
	e.Status = model.EntryStatus(st)
	if len(contentRaw) > 0 {
		if err := json.Unmarshal(contentRaw, &e.Content); err != nil {
			return nil, fmt.Errorf("unmarshal content: %w", err)
		}
	}
	return &e, nil
}

func collectEntries(rows pgx.Rows) ([]model.Entry, error) {
	var out []model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}
