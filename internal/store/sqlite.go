// Package store persists collections to SQLite so a parsed log set can be
// reloaded without re-ingesting. Each saved collection is a snapshot;
// loading one restores every event field in insertion order.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure Go SQLite driver, no CGO

	"github.com/TigerhawkT3/sto-loot-parser/internal/loot"
	"github.com/TigerhawkT3/sto-loot-parser/internal/model"
)

// Snapshot describes one saved collection.
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	Events    int
}

// Store is a SQLite-backed snapshot store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the snapshot database at path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: %w", err)
	}
	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS events (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id),
		seq INTEGER NOT NULL,
		ts DATETIME NOT NULL,
		interaction TEXT NOT NULL,
		winner TEXT NOT NULL,
		gain_item TEXT NOT NULL,
		gain_value INTEGER NOT NULL,
		loss_item TEXT NOT NULL,
		loss_value INTEGER NOT NULL,
		PRIMARY KEY (snapshot_id, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_events_snapshot ON events(snapshot_id, seq);
	`
	_, err := db.Exec(schema)
	return err
}

// Save writes the collection as a new snapshot and returns its id.
func (s *Store) Save(ctx context.Context, col *loot.Collection) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, created_at) VALUES (?, ?)`,
		id, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("store: insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events
			(snapshot_id, seq, ts, interaction, winner, gain_item, gain_value, loss_item, loss_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	seq := 0
	for ev := range col.All() {
		if _, err := stmt.ExecContext(ctx, id, seq,
			ev.Timestamp.Format(time.RFC3339Nano), ev.Interaction, ev.Winner,
			ev.GainItem, ev.GainValue, ev.LossItem, ev.LossValue); err != nil {
			return "", fmt.Errorf("store: insert event %d: %w", seq, err)
		}
		seq++
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit: %w", err)
	}
	return id, nil
}

// Load restores the snapshot with the given id.
func (s *Store) Load(ctx context.Context, id string) (*loot.Collection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ts, interaction, winner, gain_item, gain_value, loss_item, loss_value
		FROM events WHERE snapshot_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	defer rows.Close()

	col := loot.NewCollection()
	found := false
	for rows.Next() {
		found = true
		var ev model.Event
		var ts string
		if err := rows.Scan(&ts, &ev.Interaction, &ev.Winner,
			&ev.GainItem, &ev.GainValue, &ev.LossItem, &ev.LossValue); err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		ev.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("store: timestamp %q: %w", ts, err)
		}
		col.Add(ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if !found {
		var exists int
		err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM snapshots WHERE id = ?`, id).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		if exists == 0 {
			return nil, fmt.Errorf("store: no snapshot %s", id)
		}
	}
	return col, nil
}

// Snapshots lists saved snapshots, newest first.
func (s *Store) Snapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.created_at, COUNT(e.seq)
		FROM snapshots s LEFT JOIN events e ON e.snapshot_id = s.id
		GROUP BY s.id ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.CreatedAt, &snap.Events); err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
