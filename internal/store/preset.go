package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	syncerrors "github.com/myai-oss/memsync/internal/errors"
)

// PresetStore keeps named snapshots of whole documents, one serialized
// document file per preset name.
type PresetStore struct {
	dir string
}

// NewPresetStore creates a preset store over dir.
func NewPresetStore(dir string) *PresetStore {
	return &PresetStore{dir: dir}
}

// Dir returns the preset directory.
func (p *PresetStore) Dir() string {
	return p.dir
}

// List returns preset names sorted alphabetically.
func (p *PresetStore) List() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, syncerrors.Wrap(syncerrors.CodeStoreIO, "read preset directory", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(names)
	return names, nil
}

// Load returns the serialized document stored under name.
func (p *PresetStore) Load(name string) (string, error) {
	path, err := p.pathFor(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", syncerrors.New(syncerrors.CodePresetNotFound,
				fmt.Sprintf("preset %q not found", name))
		}
		return "", syncerrors.Wrap(syncerrors.CodeStoreIO, "read preset", err)
	}
	return string(data), nil
}

// Create writes content under name, overwriting any existing preset.
func (p *PresetStore) Create(name, content string) error {
	path, err := p.pathFor(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return syncerrors.Wrap(syncerrors.CodeStoreIO, "create preset directory", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return syncerrors.Wrap(syncerrors.CodeStoreIO, "write preset", err)
	}
	return nil
}

func (p *PresetStore) pathFor(name string) (string, error) {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, "/\\") {
		return "", syncerrors.New(syncerrors.CodeStoreIO,
			fmt.Sprintf("invalid preset name %q", name))
	}
	return filepath.Join(p.dir, name+".md"), nil
}
