package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements history storage using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate creates the necessary tables.
func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sync_history (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		destination TEXT NOT NULL,
		status TEXT NOT NULL,
		message TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_run_id ON sync_history(run_id);
	CREATE INDEX IF NOT EXISTS idx_history_created_at ON sync_history(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveEntry persists one history entry.
func (s *SQLiteStore) SaveEntry(e *Entry) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO sync_history (id, run_id, destination, status, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.RunID, e.Destination, e.Status, e.Message, e.CreatedAt)
	return err
}

// ListEntries lists recent entries, newest first.
func (s *SQLiteStore) ListEntries(limit int) ([]*Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, destination, status, message, created_at
		FROM sync_history
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListRun lists all entries of one run in insertion order.
func (s *SQLiteStore) ListRun(runID string) ([]*Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, destination, status, message, created_at
		FROM sync_history
		WHERE run_id = ?
		ORDER BY rowid ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	entries := make([]*Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.RunID, &e.Destination, &e.Status, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
