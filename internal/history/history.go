// Package history journals per-destination sync outcomes so past runs
// can be inspected after the fact.
package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	syncerrors "github.com/myai-oss/memsync/internal/errors"
	"github.com/myai-oss/memsync/internal/syncer"
)

// Entry is one per-destination outcome within a sync run.
type Entry struct {
	ID          string    `json:"id"`
	RunID       string    `json:"run_id"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store defines the interface for history storage backends.
type Store interface {
	SaveEntry(e *Entry) error
	ListEntries(limit int) ([]*Entry, error)
	ListRun(runID string) ([]*Entry, error)
	Close() error
}

// Manager records sync runs into a history store.
type Manager struct {
	store Store
}

// NewManager creates a history manager with the given driver
// ("memory", "" or "sqlite").
func NewManager(driver, path string) (*Manager, error) {
	var store Store
	var err error

	switch driver {
	case "memory", "":
		store = NewMemoryStore()
	case "sqlite":
		store, err = NewSQLiteStore(path)
		if err != nil {
			return nil, syncerrors.Wrap(syncerrors.CodeHistoryError, "create sqlite store", err)
		}
	default:
		return nil, syncerrors.New(syncerrors.CodeHistoryError,
			fmt.Sprintf("unsupported history driver: %s", driver))
	}

	return &Manager{store: store}, nil
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

// RecordRun journals every result of a sync run.
func (m *Manager) RecordRun(run syncer.Run) error {
	now := time.Now().UTC()
	for _, res := range run.Results {
		entry := &Entry{
			ID:          uuid.New().String(),
			RunID:       run.ID,
			Destination: res.Destination,
			Status:      string(res.Status),
			Message:     res.Message,
			CreatedAt:   now,
		}
		if err := m.store.SaveEntry(entry); err != nil {
			return syncerrors.Wrap(syncerrors.CodeHistoryError, "save history entry", err)
		}
	}
	return nil
}

// List returns the most recent entries, newest first.
func (m *Manager) List(limit int) ([]*Entry, error) {
	return m.store.ListEntries(limit)
}

// Run returns all entries of one run.
func (m *Manager) Run(runID string) ([]*Entry, error) {
	return m.store.ListRun(runID)
}
