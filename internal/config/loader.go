package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the config directory.
const FileName = "memsync.yaml"

// Load loads the configuration from dir/memsync.yaml. A missing file
// yields the default configuration rooted under ~/.memsync.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile loads the configuration from an explicit file path.
func LoadFile(configFile string) (*Config, error) {
	content, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := defaultConfig()
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Interpolate environment variables
	content = []byte(interpolateEnv(string(content)))

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// interpolateEnv replaces ${env.VAR} and ${VAR} with environment values
func interpolateEnv(content string) string {
	// Match ${env.VAR} pattern
	envPattern := regexp.MustCompile(`\$\{env\.([^}]+)\}`)
	content = envPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := envPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // keep original if not found
	})

	// Match ${VAR} pattern
	varPattern := regexp.MustCompile(`\$\{([^}]+)\}`)
	content = varPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := varPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return content
}

func defaultConfig() *Config {
	return &Config{
		Name: "memsync",
		Platforms: []PlatformConfig{
			{Name: "claude", Path: expandHome("~/CLAUDE.md")},
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Name == "" {
		cfg.Name = "memsync"
	}
	if cfg.Memory.Path == "" {
		cfg.Memory.Path = expandHome("~/.memsync/memory.md")
	}
	if cfg.Memory.BackupDir == "" {
		cfg.Memory.BackupDir = expandHome("~/.memsync/backups")
	}
	if cfg.Memory.PresetDir == "" {
		cfg.Memory.PresetDir = expandHome("~/.memsync/presets")
	}
	if cfg.Sync.Cooldown == "" {
		cfg.Sync.Cooldown = "5s"
	}
	if cfg.Sync.Debounce == "" {
		cfg.Sync.Debounce = "500ms"
	}
	if cfg.History.Driver == "" {
		cfg.History.Driver = "sqlite"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = expandHome("~/.memsync/history.db")
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	cfg.Memory.Path = expandHome(cfg.Memory.Path)
	cfg.Memory.BackupDir = expandHome(cfg.Memory.BackupDir)
	cfg.Memory.PresetDir = expandHome(cfg.Memory.PresetDir)
	cfg.History.Path = expandHome(cfg.History.Path)
	for i := range cfg.Platforms {
		cfg.Platforms[i].Path = expandHome(cfg.Platforms[i].Path)
	}
}

// expandHome resolves a leading ~/ against the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
