package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// History is the append-only ledger of recorded events.
type History struct {
	db *sql.DB
}

// OpenHistory opens (creating if needed) the SQLite history database.
func OpenHistory(ctx context.Context, dbPath string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	h := &History{db: db}
	if err := h.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS events (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  goal TEXT NOT NULL,
  kind TEXT NOT NULL,
  awarded INTEGER NOT NULL,
  score INTEGER NOT NULL,
  level INTEGER NOT NULL,
  recorded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_goal ON events(goal);
`
	if _, err := h.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create events table: %w", err)
	}
	return nil
}

// Append stores e and returns its assigned ID.
func (h *History) Append(ctx context.Context, e Event) (int64, error) {
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
	res, err := h.db.ExecContext(ctx, `
INSERT INTO events (goal, kind, awarded, score, level, recorded_at)
VALUES (?, ?, ?, ?, ?, ?);
`, e.Goal, e.Kind, e.Awarded, e.Score, e.Level, e.RecordedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("append event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append event id: %w", err)
	}
	return id, nil
}

// List returns up to limit events, newest first.
func (h *History) List(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := h.db.QueryContext(ctx, `
SELECT id, goal, kind, awarded, score, level, recorded_at
FROM events
ORDER BY id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	out := make([]Event, 0)
	for rows.Next() {
		var e Event
		var at string
		if err := rows.Scan(&e.ID, &e.Goal, &e.Kind, &e.Awarded, &e.Score, &e.Level, &at); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.RecordedAt, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parse event time: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

func (h *History) Close() error {
	return h.db.Close()
}
