package telemetry

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects runtime counters for the sync engine.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	SyncsAttempted  int64
	SyncsCompleted  int64
	SyncsSkipped    int64
	SyncsFailed     int64
	SectionMerges   int64
	DocumentUpdates int64
	BackupsCreated  int64
	Extractions     int64

	// Histogram (simplified)
	syncDurations []time.Duration
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		syncDurations: make([]time.Duration, 0, 256),
	}
}

// IncSyncsAttempted increments the attempted-sync counter.
func (m *Metrics) IncSyncsAttempted() {
	atomic.AddInt64(&m.SyncsAttempted, 1)
}

// IncSyncsCompleted increments the completed-sync counter.
func (m *Metrics) IncSyncsCompleted() {
	atomic.AddInt64(&m.SyncsCompleted, 1)
}

// IncSyncsSkipped increments the cooldown-skip counter.
func (m *Metrics) IncSyncsSkipped() {
	atomic.AddInt64(&m.SyncsSkipped, 1)
}

// IncSyncsFailed increments the failed-sync counter.
func (m *Metrics) IncSyncsFailed() {
	atomic.AddInt64(&m.SyncsFailed, 1)
}

// IncSectionMerges increments the section-merge counter.
func (m *Metrics) IncSectionMerges() {
	atomic.AddInt64(&m.SectionMerges, 1)
}

// IncDocumentUpdates increments the whole-document-replace counter.
func (m *Metrics) IncDocumentUpdates() {
	atomic.AddInt64(&m.DocumentUpdates, 1)
}

// IncBackupsCreated increments the backup counter.
func (m *Metrics) IncBackupsCreated() {
	atomic.AddInt64(&m.BackupsCreated, 1)
}

// IncExtractions increments the free-text extraction counter.
func (m *Metrics) IncExtractions() {
	atomic.AddInt64(&m.Extractions, 1)
}

// RecordSyncDuration records how long one fan-out took.
func (m *Metrics) RecordSyncDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncDurations = append(m.syncDurations, d)
}

// GetSummary returns a summary of collected metrics.
func (m *Metrics) GetSummary() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summary := map[string]interface{}{
		"syncs_attempted":  atomic.LoadInt64(&m.SyncsAttempted),
		"syncs_completed":  atomic.LoadInt64(&m.SyncsCompleted),
		"syncs_skipped":    atomic.LoadInt64(&m.SyncsSkipped),
		"syncs_failed":     atomic.LoadInt64(&m.SyncsFailed),
		"section_merges":   atomic.LoadInt64(&m.SectionMerges),
		"document_updates": atomic.LoadInt64(&m.DocumentUpdates),
		"backups_created":  atomic.LoadInt64(&m.BackupsCreated),
		"extractions":      atomic.LoadInt64(&m.Extractions),
	}

	if len(m.syncDurations) > 0 {
		var total time.Duration
		for _, d := range m.syncDurations {
			total += d
		}
		summary["avg_sync_duration_ms"] = total.Milliseconds() / int64(len(m.syncDurations))
	}

	return summary
}

// Reset resets all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	atomic.StoreInt64(&m.SyncsAttempted, 0)
	atomic.StoreInt64(&m.SyncsCompleted, 0)
	atomic.StoreInt64(&m.SyncsSkipped, 0)
	atomic.StoreInt64(&m.SyncsFailed, 0)
	atomic.StoreInt64(&m.SectionMerges, 0)
	atomic.StoreInt64(&m.DocumentUpdates, 0)
	atomic.StoreInt64(&m.BackupsCreated, 0)
	atomic.StoreInt64(&m.Extractions, 0)

	m.syncDurations = m.syncDurations[:0]
}
