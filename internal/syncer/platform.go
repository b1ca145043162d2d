// Package syncer replicates the serialized memory document into
// destination files: one Platform per destination with a cooldown
// throttle, and an Orchestrator fanning a document out to all of them.
package syncer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/myai-oss/memsync/internal/telemetry"
	"github.com/myai-oss/memsync/internal/template"
)

// DefaultCooldown is the minimum interval between effective writes to
// one destination.
const DefaultCooldown = 5 * time.Second

// Status distinguishes an actual write from a throttled no-op. The
// legacy Success flag stays true for skipped syncs so transports that
// only look at Success keep working.
type Status string

const (
	StatusSynced  Status = "synced"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result is the per-destination outcome of one sync call.
type Result struct {
	Destination string `json:"destination"`
	Success     bool   `json:"success"`
	Status      Status `json:"status"`
	Message     string `json:"message"`
}

// Platform writes synchronized content into one destination file. The
// destination owns everything from the banner line to end-of-file (the
// memory region); text before the banner is preserved verbatim.
type Platform struct {
	name     string
	path     string
	cooldown time.Duration
	logger   *telemetry.Logger

	mu          sync.Mutex
	lastAttempt time.Time
	now         func() time.Time
}

// NewPlatform creates a syncer for one destination file. A negative
// cooldown falls back to DefaultCooldown; zero disables throttling.
func NewPlatform(name, path string, cooldown time.Duration, logger *telemetry.Logger) *Platform {
	if cooldown < 0 {
		cooldown = DefaultCooldown
	}
	return &Platform{
		name:     name,
		path:     path,
		cooldown: cooldown,
		logger:   logger,
		now:      time.Now,
	}
}

// Name returns the destination identifier.
func (p *Platform) Name() string {
	return p.name
}

// Path returns the destination file path.
func (p *Platform) Path() string {
	return p.path
}

// InCooldown reports whether a sync right now would be throttled.
func (p *Platform) InCooldown() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.lastAttempt.IsZero() && p.now().Sub(p.lastAttempt) < p.cooldown
}

// Sync writes content into the destination's memory region. A call
// inside the cooldown window performs no I/O and reports skipped with
// Success=true. The destination file is rewritten in a single write so
// an interrupted sync never leaves a partially patched file.
func (p *Platform) Sync(content string) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.lastAttempt.IsZero() {
		if since := p.now().Sub(p.lastAttempt); since < p.cooldown {
			p.logger.Debug("sync skipped by cooldown", "destination", p.name, "since", since)
			return Result{
				Destination: p.name,
				Success:     true,
				Status:      StatusSkipped,
				Message:     fmt.Sprintf("skipped: cooldown active (%s since last sync)", since.Round(time.Millisecond)),
			}
		}
	}

	if err := p.ensureWritable(); err != nil {
		return Result{
			Destination: p.name,
			Success:     false,
			Status:      StatusFailed,
			Message:     fmt.Sprintf("destination not writable: %v", err),
		}
	}

	existing, err := os.ReadFile(p.path)
	if err != nil && !os.IsNotExist(err) {
		return Result{
			Destination: p.name,
			Success:     false,
			Status:      StatusFailed,
			Message:     fmt.Sprintf("read destination: %v", err),
		}
	}

	merged := spliceMemoryRegion(string(existing), content)

	writeErr := os.WriteFile(p.path, []byte(merged), 0644)
	// Cooldown starts at the attempted write, successful or not.
	p.lastAttempt = p.now()

	if writeErr != nil {
		return Result{
			Destination: p.name,
			Success:     false,
			Status:      StatusFailed,
			Message:     fmt.Sprintf("write destination: %v", writeErr),
		}
	}

	p.logger.Debug("destination synced", "destination", p.name, "path", p.path)
	return Result{
		Destination: p.name,
		Success:     true,
		Status:      StatusSynced,
		Message:     "synced",
	}
}

// ensureWritable self-heals the destination: missing parent directories
// are created, a missing file is created, and an unwritable file gets
// its permissions relaxed.
func (p *Platform) ensureWritable() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	info, err := os.Stat(p.path)
	if os.IsNotExist(err) {
		f, createErr := os.OpenFile(p.path, os.O_CREATE|os.O_WRONLY, 0644)
		if createErr != nil {
			return fmt.Errorf("create destination file: %w", createErr)
		}
		return f.Close()
	}
	if err != nil {
		return fmt.Errorf("stat destination file: %w", err)
	}

	if info.Mode().Perm()&0200 == 0 {
		if err := os.Chmod(p.path, info.Mode().Perm()|0644); err != nil {
			return fmt.Errorf("relax permissions: %w", err)
		}
	}
	return nil
}

// spliceMemoryRegion replaces everything from the banner line to
// end-of-file with content, preserving whatever precedes the banner.
// Destinations without a banner get content appended after a blank
// separator line.
func spliceMemoryRegion(existing, content string) string {
	if idx := bannerOffset(existing); idx >= 0 {
		return existing[:idx] + content
	}
	if strings.TrimSpace(existing) == "" {
		return content
	}
	return strings.TrimRight(existing, "\n") + "\n\n" + content
}

// bannerOffset returns the byte offset of the first line that is
// exactly the banner, or -1. Matching whole lines only: prose that
// merely mentions the banner text must not start the memory region.
func bannerOffset(existing string) int {
	offset := 0
	for {
		line := existing[offset:]
		end := strings.IndexByte(line, '\n')
		if end >= 0 {
			line = line[:end]
		}
		if strings.TrimSpace(strings.TrimSuffix(line, "\r")) == template.Banner {
			return offset
		}
		if end < 0 {
			return -1
		}
		offset += end + 1
	}
}
