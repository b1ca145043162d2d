package config

import (
	"fmt"
	"strings"
	"time"

	syncerrors "github.com/myai-oss/memsync/internal/errors"
)

// Validate checks a loaded configuration for structural problems.
func Validate(cfg *Config) error {
	var errors []string

	if cfg.Memory.Path == "" {
		errors = append(errors, "memory.path is required")
	}

	seen := map[string]bool{}
	for i, p := range cfg.Platforms {
		if p.Name == "" {
			errors = append(errors, fmt.Sprintf("platforms[%d]: name is required", i))
		}
		if p.Path == "" {
			errors = append(errors, fmt.Sprintf("platforms[%d]: path is required", i))
		}
		lower := strings.ToLower(p.Name)
		if p.Name != "" && seen[lower] {
			errors = append(errors, fmt.Sprintf("duplicate platform name: %s", p.Name))
		}
		seen[lower] = true
	}

	if cfg.Sync.Cooldown != "" {
		if _, err := time.ParseDuration(cfg.Sync.Cooldown); err != nil {
			errors = append(errors, fmt.Sprintf("invalid sync.cooldown: %s", cfg.Sync.Cooldown))
		}
	}
	if cfg.Sync.Debounce != "" {
		if _, err := time.ParseDuration(cfg.Sync.Debounce); err != nil {
			errors = append(errors, fmt.Sprintf("invalid sync.debounce: %s", cfg.Sync.Debounce))
		}
	}

	validDrivers := map[string]bool{"sqlite": true, "memory": true, "": true}
	if !validDrivers[cfg.History.Driver] {
		errors = append(errors, fmt.Sprintf("invalid history driver: %s", cfg.History.Driver))
	}

	validHookTypes := map[string]bool{"shell": true, "webhook": true, "log": true}
	for _, h := range cfg.Hooks.Hooks {
		if h.Name == "" {
			errors = append(errors, "hook name is required")
		}
		if !validHookTypes[h.Type] {
			errors = append(errors, fmt.Sprintf("invalid hook type: %s", h.Type))
		}
		if h.Type == "shell" && h.Command == "" {
			errors = append(errors, fmt.Sprintf("hook %s: shell hooks need a command", h.Name))
		}
		if h.Type == "webhook" && h.URL == "" {
			errors = append(errors, fmt.Sprintf("hook %s: webhook hooks need a url", h.Name))
		}
	}

	if len(errors) > 0 {
		return syncerrors.New(syncerrors.CodeConfigInvalid,
			"config validation failed: "+strings.Join(errors, "; "))
	}
	return nil
}

// Cooldown returns the parsed cooldown duration.
func (c *Config) Cooldown() time.Duration {
	d, err := time.ParseDuration(c.Sync.Cooldown)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// Debounce returns the parsed watch-mode debounce duration.
func (c *Config) Debounce() time.Duration {
	d, err := time.ParseDuration(c.Sync.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}
