package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	syncerrors "github.com/myai-oss/memsync/internal/errors"
)

const backupPrefix = "memory-"

// BackupManager snapshots the canonical store before destructive
// writes. Snapshot names embed a nanosecond UTC timestamp so they sort
// chronologically; collisions within the same nanosecond get a numeric
// suffix.
type BackupManager struct {
	storePath string
	dir       string
}

// NewBackupManager creates a manager snapshotting storePath into dir.
func NewBackupManager(storePath, dir string) *BackupManager {
	return &BackupManager{storePath: storePath, dir: dir}
}

// Dir returns the backup directory.
func (b *BackupManager) Dir() string {
	return b.dir
}

// CreateBackup copies the canonical store's current bytes into a new
// timestamped file and returns the backup's name.
func (b *BackupManager) CreateBackup() (string, error) {
	data, err := os.ReadFile(b.storePath)
	if err != nil {
		return "", syncerrors.Wrap(syncerrors.CodeBackupFailed, "read canonical store", err)
	}

	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return "", syncerrors.Wrap(syncerrors.CodeBackupFailed, "create backup directory", err)
	}

	stamp := time.Now().UTC().Format("20060102-150405.000000000")
	name := backupPrefix + stamp + ".md"
	for i := 1; ; i++ {
		if _, err := os.Stat(filepath.Join(b.dir, name)); os.IsNotExist(err) {
			break
		}
		name = fmt.Sprintf("%s%s-%d.md", backupPrefix, stamp, i)
	}

	if err := os.WriteFile(filepath.Join(b.dir, name), data, 0644); err != nil {
		return "", syncerrors.Wrap(syncerrors.CodeBackupFailed, "write backup", err)
	}
	return name, nil
}

// ListBackups returns backup names, newest first.
func (b *BackupManager) ListBackups() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, syncerrors.Wrap(syncerrors.CodeBackupFailed, "read backup directory", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), backupPrefix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// RestoreFromBackup copies the named backup over the canonical store.
// The current (about-to-be-overwritten) content is snapshotted first.
func (b *BackupManager) RestoreFromBackup(name string) error {
	if strings.ContainsAny(name, "/\\") {
		return syncerrors.New(syncerrors.CodeBackupFailed,
			fmt.Sprintf("invalid backup name %q", name))
	}

	data, err := os.ReadFile(filepath.Join(b.dir, name))
	if err != nil {
		return syncerrors.Wrap(syncerrors.CodeBackupFailed,
			fmt.Sprintf("backup %q not readable", name), err)
	}

	if _, err := b.CreateBackup(); err != nil {
		return err
	}

	if err := os.WriteFile(b.storePath, data, 0644); err != nil {
		return syncerrors.Wrap(syncerrors.CodeBackupFailed, "restore canonical store", err)
	}
	return nil
}
