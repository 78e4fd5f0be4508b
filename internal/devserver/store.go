package devserver

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"noted-cli/internal/model"
)

// Store is the SQLite backing for the development server. Path ":memory:"
// works for tests.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS notes (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    content    TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// Each pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) ListNotes(ctx context.Context) ([]model.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, created_at, updated_at FROM notes ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var out []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) GetNote(ctx context.Context, id string) (model.Note, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, created_at, updated_at FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return model.Note{}, false, nil
	}
	if err != nil {
		return model.Note{}, false, err
	}
	return n, true, nil
}

func (s *Store) CreateNote(ctx context.Context, title, content string) (model.Note, error) {
	now := time.Now().UTC().Truncate(time.Second)
	n := model.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Content, fmtTime(now), fmtTime(now))
	if err != nil {
		return model.Note{}, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

func (s *Store) UpdateNote(ctx context.Context, id, title, content string) (model.Note, bool, error) {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		title, content, fmtTime(now), id)
	if err != nil {
		return model.Note{}, false, fmt.Errorf("update note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Note{}, false, err
	}
	if affected == 0 {
		return model.Note{}, false, nil
	}
	return s.GetNote(ctx, id)
}

func (s *Store) DeleteNote(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (model.Note, error) {
	var n model.Note
	var createdAt, updatedAt string
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &createdAt, &updatedAt); err != nil {
		return model.Note{}, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		n.CreatedAt = &t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		n.UpdatedAt = &t
	}
	return n, nil
}

func fmtTime(t time.Time) string { return t.Format(time.RFC3339) }
