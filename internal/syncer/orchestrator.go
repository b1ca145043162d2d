package syncer

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	syncerrors "github.com/myai-oss/memsync/internal/errors"
	"github.com/myai-oss/memsync/internal/telemetry"
)

// Run is the outcome of one fan-out across all destinations.
type Run struct {
	ID       string        `json:"id"`
	Results  []Result      `json:"results"`
	Duration time.Duration `json:"duration"`
}

// Orchestrator fans a serialized document out to every configured
// platform in parallel and collects all results; one destination
// failing never short-circuits its siblings.
type Orchestrator struct {
	platforms []*Platform
	logger    *telemetry.Logger
	metrics   *telemetry.Metrics
}

// NewOrchestrator creates an orchestrator over the given platforms.
func NewOrchestrator(platforms []*Platform, logger *telemetry.Logger, metrics *telemetry.Metrics) *Orchestrator {
	return &Orchestrator{platforms: platforms, logger: logger, metrics: metrics}
}

// Platforms returns the configured destination names in order.
func (o *Orchestrator) Platforms() []string {
	names := make([]string, len(o.platforms))
	for i, p := range o.platforms {
		names[i] = p.Name()
	}
	return names
}

// Platform returns the platform with the given name, or nil.
func (o *Orchestrator) Platform(name string) *Platform {
	for _, p := range o.platforms {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// SyncAll pushes content to every platform concurrently and returns
// one result per destination, in configuration order.
func (o *Orchestrator) SyncAll(content string) Run {
	run := Run{ID: uuid.New().String(), Results: make([]Result, len(o.platforms))}
	start := time.Now()

	o.logger.Info("sync fan-out started", "run", run.ID, "destinations", len(o.platforms))

	var wg sync.WaitGroup
	for i, p := range o.platforms {
		wg.Add(1)
		go func(i int, p *Platform) {
			defer wg.Done()
			o.metrics.IncSyncsAttempted()
			res := p.Sync(content)
			o.record(res)
			run.Results[i] = res
		}(i, p)
	}
	wg.Wait()

	run.Duration = time.Since(start)
	o.metrics.RecordSyncDuration(run.Duration)
	o.logger.Info("sync fan-out finished", "run", run.ID, "duration", run.Duration)
	return run
}

// SyncOne pushes content to a single named destination.
func (o *Orchestrator) SyncOne(name, content string) (Run, error) {
	p := o.Platform(name)
	if p == nil {
		return Run{}, syncerrors.New(syncerrors.CodeSyncFailed,
			fmt.Sprintf("unknown destination %q", name))
	}

	run := Run{ID: uuid.New().String()}
	start := time.Now()

	o.metrics.IncSyncsAttempted()
	res := p.Sync(content)
	o.record(res)

	run.Results = []Result{res}
	run.Duration = time.Since(start)
	return run, nil
}

func (o *Orchestrator) record(res Result) {
	switch res.Status {
	case StatusSynced:
		o.metrics.IncSyncsCompleted()
	case StatusSkipped:
		o.metrics.IncSyncsSkipped()
	case StatusFailed:
		o.metrics.IncSyncsFailed()
		o.logger.Warn("destination sync failed", "destination", res.Destination, "message", res.Message)
	}
}
