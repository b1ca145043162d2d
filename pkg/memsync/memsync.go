// Package memsync provides a public API for embedding the memory-sync
// engine.
//
// Example usage:
//
//	import "github.com/myai-oss/memsync/pkg/memsync"
//
//	svc, err := memsync.Open(".")
//	if err != nil { ... }
//	defer svc.Close()
//
//	if err := svc.UpdateSection("User Information", "-~- Name: Alice"); err != nil { ... }
//	run := svc.SyncAll()
package memsync

import (
	"fmt"

	"github.com/myai-oss/memsync/internal/config"
	"github.com/myai-oss/memsync/internal/service"
	"github.com/myai-oss/memsync/internal/telemetry"
)

// Service is the memory-sync engine handle.
type Service = service.Service

// Open loads configDir/memsync.yaml and constructs the engine. A
// missing config file yields the default setup under ~/.memsync.
func Open(configDir string) (*Service, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return OpenConfig(cfg)
}

// OpenConfig constructs the engine from an explicit configuration.
func OpenConfig(cfg *config.Config) (*Service, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logger := telemetry.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if cfg.Logging.File != "" {
		if err := logger.WithFile(cfg.Logging.File); err != nil {
			return nil, err
		}
	}
	return service.New(cfg, logger)
}

// Config re-exports the configuration type for embedders that build
// one programmatically.
type Config = config.Config
