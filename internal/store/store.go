// Package store persists the canonical memory document, its
// timestamped backups, and named presets on the local filesystem.
package store

import (
	"os"
	"path/filepath"

	syncerrors "github.com/myai-oss/memsync/internal/errors"
)

// Store is the canonical document store: one authoritative file that
// every destination is synchronized from. Mutating writes are guarded
// by the backup manager — no write happens without a fresh snapshot of
// the previous content.
type Store struct {
	path    string
	backups *BackupManager
}

// NewStore creates a canonical store at path with backups in backupDir.
func NewStore(path, backupDir string) *Store {
	return &Store{
		path:    path,
		backups: NewBackupManager(path, backupDir),
	}
}

// Path returns the canonical file path.
func (s *Store) Path() string {
	return s.path
}

// Backups returns the backup manager guarding this store.
func (s *Store) Backups() *BackupManager {
	return s.backups
}

// Exists reports whether the canonical file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the canonical document text. A missing file is reported
// via os.ErrNotExist so the caller can synthesize a default document.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", err
		}
		return "", syncerrors.Wrap(syncerrors.CodeStoreIO, "read canonical store", err)
	}
	return string(data), nil
}

// Save writes content to the canonical file. When the file already
// exists a backup is taken first; backup failure aborts the write
// entirely.
func (s *Store) Save(content string) error {
	if s.Exists() {
		if _, err := s.backups.CreateBackup(); err != nil {
			return syncerrors.Wrap(syncerrors.CodeBackupFailed,
				"refusing to overwrite canonical store without a backup", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return syncerrors.Wrap(syncerrors.CodeStoreIO, "create store directory", err)
	}
	if err := os.WriteFile(s.path, []byte(content), 0644); err != nil {
		return syncerrors.Wrap(syncerrors.CodeStoreIO, "write canonical store", err)
	}
	return nil
}
