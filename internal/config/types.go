// Package config loads and validates memsync.yaml.
package config

// Config represents the main project configuration (memsync.yaml)
type Config struct {
	Name      string           `yaml:"name" json:"name"`
	Memory    MemoryConfig     `yaml:"memory" json:"memory"`
	Platforms []PlatformConfig `yaml:"platforms" json:"platforms"`
	Sync      SyncConfig       `yaml:"sync" json:"sync"`
	History   HistoryConfig    `yaml:"history" json:"history"`
	Logging   LoggingConfig    `yaml:"logging" json:"logging"`
	Hooks     HooksConfig      `yaml:"hooks" json:"hooks"`
}

// MemoryConfig locates the canonical document and its sibling stores.
type MemoryConfig struct {
	Path      string `yaml:"path" json:"path"`             // canonical document file
	BackupDir string `yaml:"backup_dir" json:"backup_dir"` // timestamped snapshots
	PresetDir string `yaml:"preset_dir" json:"preset_dir"` // named document snapshots
}

// PlatformConfig describes one sync destination.
type PlatformConfig struct {
	Name string `yaml:"name" json:"name"`
	Path string `yaml:"path" json:"path"`
}

// SyncConfig tunes the synchronizer.
type SyncConfig struct {
	Cooldown string `yaml:"cooldown" json:"cooldown"` // e.g. "5s", per-destination throttle
	Debounce string `yaml:"debounce" json:"debounce"` // watch-mode debounce, e.g. "500ms"
}

// HistoryConfig configures the sync-history journal.
type HistoryConfig struct {
	Driver string `yaml:"driver" json:"driver"` // sqlite, memory
	Path   string `yaml:"path" json:"path"`     // file path for sqlite
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // text, json
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// HooksConfig configures lifecycle event hooks.
type HooksConfig struct {
	Enabled bool         `yaml:"enabled" json:"enabled"`
	Hooks   []HookConfig `yaml:"hooks" json:"hooks"`
}

// HookConfig defines a single hook.
type HookConfig struct {
	Name     string   `yaml:"name" json:"name"`
	Type     string   `yaml:"type" json:"type"`     // shell, webhook, log
	Events   []string `yaml:"events" json:"events"` // event types to match
	Blocking bool     `yaml:"blocking" json:"blocking"`
	Command  string   `yaml:"command,omitempty" json:"command,omitempty"` // for shell hooks
	URL      string   `yaml:"url,omitempty" json:"url,omitempty"`         // for webhook hooks
	Level    string   `yaml:"level,omitempty" json:"level,omitempty"`     // for log hooks (debug, info, warn)
}
