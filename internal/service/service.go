// Package service wires the codec, merger, stores, and syncers into
// one engine. Every transport (CLI commands, the MCP server, the
// embedding facade) talks to a Service; none of them reimplement
// document logic. A single Service instance replaces any global state:
// construct it once and pass it into every handler.
package service

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/myai-oss/memsync/internal/config"
	syncerrors "github.com/myai-oss/memsync/internal/errors"
	"github.com/myai-oss/memsync/internal/event"
	"github.com/myai-oss/memsync/internal/extract"
	"github.com/myai-oss/memsync/internal/history"
	"github.com/myai-oss/memsync/internal/store"
	"github.com/myai-oss/memsync/internal/syncer"
	"github.com/myai-oss/memsync/internal/telemetry"
	"github.com/myai-oss/memsync/internal/template"
)

// Service is the memory-sync engine. All document mutations are
// serialized through its mutex, so overlapping updates from any
// transport cannot race.
type Service struct {
	cfg          *config.Config
	codec        *template.Codec
	merger       *template.Merger
	store        *store.Store
	presets      *store.PresetStore
	orchestrator *syncer.Orchestrator
	history      *history.Manager
	bus          *event.Bus
	logger       *telemetry.Logger
	metrics      *telemetry.Metrics

	mu  sync.Mutex
	doc *template.Document
}

// New constructs a service from configuration. The canonical document
// is loaded eagerly; if the store does not exist yet a default
// document is synthesized and persisted.
func New(cfg *config.Config, logger *telemetry.Logger) (*Service, error) {
	codec := template.NewCodec()
	canonical := store.NewStore(cfg.Memory.Path, cfg.Memory.BackupDir)

	hist, err := history.NewManager(cfg.History.Driver, cfg.History.Path)
	if err != nil {
		return nil, err
	}

	metrics := telemetry.NewMetrics()
	platforms := make([]*syncer.Platform, 0, len(cfg.Platforms))
	for _, p := range cfg.Platforms {
		platforms = append(platforms, syncer.NewPlatform(p.Name, p.Path, cfg.Cooldown(), logger))
	}

	s := &Service{
		cfg:          cfg,
		codec:        codec,
		merger:       template.NewMerger(codec, extract.NewExtractor()),
		store:        canonical,
		presets:      store.NewPresetStore(cfg.Memory.PresetDir),
		orchestrator: syncer.NewOrchestrator(platforms, logger, metrics),
		history:      hist,
		bus:          buildBus(cfg.Hooks, logger),
		logger:       logger,
		metrics:      metrics,
	}

	if err := s.loadDocument(); err != nil {
		hist.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the history store.
func (s *Service) Close() error {
	return s.history.Close()
}

// Metrics returns the engine's metrics collector.
func (s *Service) Metrics() *telemetry.Metrics {
	return s.metrics
}

// Config returns the configuration the service was built from.
func (s *Service) Config() *config.Config {
	return s.cfg
}

func (s *Service) loadDocument() error {
	text, err := s.store.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		doc := template.NewDefaultDocument()
		if saveErr := s.store.Save(s.codec.Generate(doc)); saveErr != nil {
			return saveErr
		}
		s.doc = doc
		s.logger.Info("canonical store created", "path", s.store.Path())
		return nil
	}
	s.doc = s.codec.Parse(text)
	return nil
}

// GetTemplate returns the serialized document.
func (s *Service) GetTemplate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codec.Generate(s.doc)
}

// GetSection returns the serialized form of one section, located
// case-insensitively.
func (s *Service) GetSection(title string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec := s.doc.FindSection(title)
	if sec == nil {
		return "", syncerrors.New(syncerrors.CodeSectionNotFound,
			fmt.Sprintf("section %q not found", title))
	}

	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(sec.Title)
	b.WriteString("\n")
	if sec.Description != "" {
		b.WriteString("## ")
		b.WriteString(sec.Description)
		b.WriteString("\n")
	}
	for _, item := range sec.Items {
		b.WriteString(template.ItemMarker)
		b.WriteString(" ")
		b.WriteString(item.Key)
		b.WriteString(": ")
		b.WriteString(item.Value)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// ListSections returns the section titles in document order.
func (s *Service) ListSections() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	titles := make([]string, len(s.doc.Sections))
	for i, sec := range s.doc.Sections {
		titles[i] = sec.Title
	}
	return titles
}

// UpdateSection merges content into the named section and persists the
// result. The in-memory document only advances when the
// backup-guarded write succeeds.
func (s *Service) UpdateSection(title, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !strings.Contains(content, template.ItemMarker+" ") {
		s.metrics.IncExtractions()
	}

	merged, err := s.merger.UpdateSection(s.doc, title, content)
	if err != nil {
		return err
	}
	if err := s.store.Save(s.codec.Generate(merged)); err != nil {
		return err
	}

	s.doc = merged
	s.metrics.IncSectionMerges()
	s.emit(event.SectionUpdated, map[string]interface{}{"section": title})
	s.logger.Info("section updated", "section", title)
	return nil
}

// UpdateTemplate replaces the whole document. Invalid input leaves the
// prior state untouched.
func (s *Service) UpdateTemplate(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceDocument(text, event.TemplateReplaced)
}

// replaceDocument validates, persists, and installs a new document.
// Callers must hold s.mu.
func (s *Service) replaceDocument(text string, ev event.EventType) error {
	doc, err := s.merger.UpdateDocument(text)
	if err != nil {
		return err
	}
	if err := s.store.Save(s.codec.Generate(doc)); err != nil {
		return err
	}

	s.doc = doc
	s.metrics.IncDocumentUpdates()
	s.emit(ev, map[string]interface{}{"sections": len(doc.Sections)})
	s.logger.Info("document replaced", "sections", len(doc.Sections))
	return nil
}

// SyncAll fans the current document out to every destination and
// journals the results.
func (s *Service) SyncAll() syncer.Run {
	content := s.GetTemplate()

	s.emit(event.SyncStarted, map[string]interface{}{"destinations": len(s.orchestrator.Platforms())})
	run := s.orchestrator.SyncAll(content)
	s.recordRun(run)
	return run
}

// SyncOne syncs a single named destination.
func (s *Service) SyncOne(name string) (syncer.Run, error) {
	content := s.GetTemplate()

	run, err := s.orchestrator.SyncOne(name, content)
	if err != nil {
		return syncer.Run{}, err
	}
	s.recordRun(run)
	return run, nil
}

func (s *Service) recordRun(run syncer.Run) {
	if err := s.history.RecordRun(run); err != nil {
		s.logger.Warn("history write failed", "error", err)
	}

	failed := 0
	for _, res := range run.Results {
		if !res.Success {
			failed++
		}
	}
	data := map[string]interface{}{"run": run.ID, "failed": failed}
	if failed > 0 {
		s.emit(event.SyncFailed, data)
	} else {
		s.emit(event.SyncCompleted, data)
	}
}

// ListPlatforms returns the configured destination names.
func (s *Service) ListPlatforms() []string {
	return s.orchestrator.Platforms()
}

// PlatformStates reports each destination's path and cooldown state.
func (s *Service) PlatformStates() []PlatformState {
	states := make([]PlatformState, 0, len(s.cfg.Platforms))
	for _, name := range s.orchestrator.Platforms() {
		p := s.orchestrator.Platform(name)
		states = append(states, PlatformState{
			Name:       p.Name(),
			Path:       p.Path(),
			InCooldown: p.InCooldown(),
		})
	}
	return states
}

// PlatformState is a snapshot of one destination for status output.
type PlatformState struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	InCooldown bool   `json:"in_cooldown"`
}

// ListPresets returns the stored preset names.
func (s *Service) ListPresets() ([]string, error) {
	return s.presets.List()
}

// CreatePreset snapshots the current document under name.
func (s *Service) CreatePreset(name string) error {
	if err := s.presets.Create(name, s.GetTemplate()); err != nil {
		return err
	}
	s.emit(event.PresetCreated, map[string]interface{}{"preset": name})
	return nil
}

// LoadPreset replaces the document with the named preset and fans the
// result out to all destinations.
func (s *Service) LoadPreset(name string) (syncer.Run, error) {
	text, err := s.presets.Load(name)
	if err != nil {
		return syncer.Run{}, err
	}

	s.mu.Lock()
	err = s.replaceDocument(text, event.PresetLoaded)
	s.mu.Unlock()
	if err != nil {
		return syncer.Run{}, err
	}

	return s.SyncAll(), nil
}

// ListBackups returns backup names, newest first.
func (s *Service) ListBackups() ([]string, error) {
	return s.store.Backups().ListBackups()
}

// CreateBackup snapshots the canonical store on demand.
func (s *Service) CreateBackup() (string, error) {
	name, err := s.store.Backups().CreateBackup()
	if err != nil {
		return "", err
	}
	s.metrics.IncBackupsCreated()
	s.emit(event.BackupCreated, map[string]interface{}{"backup": name})
	return name, nil
}

// RestoreBackup copies the named backup over the canonical store and
// reloads the in-memory document from it.
func (s *Service) RestoreBackup(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Backups().RestoreFromBackup(name); err != nil {
		return err
	}

	text, err := s.store.Load()
	if err != nil {
		return err
	}
	s.doc = s.codec.Parse(text)
	s.emit(event.BackupRestored, map[string]interface{}{"backup": name})
	s.logger.Info("backup restored", "backup", name)
	return nil
}

// ReloadDocument re-reads the canonical store, used by watch mode when
// the file changes behind the service's back.
func (s *Service) ReloadDocument() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, err := s.store.Load()
	if err != nil {
		return err
	}
	s.doc = s.codec.Parse(text)
	return nil
}

// StorePath returns the canonical document path.
func (s *Service) StorePath() string {
	return s.store.Path()
}

// History returns the most recent sync journal entries.
func (s *Service) History(limit int) ([]*history.Entry, error) {
	return s.history.List(limit)
}

// RegisterHook attaches a lifecycle hook to the engine's event bus.
// Embedders use this to observe document and sync events directly
// instead of going through configured hooks.
func (s *Service) RegisterHook(h event.Hook) {
	s.bus.Register(h)
	s.bus.SetEnabled(true)
}

func (s *Service) emit(t event.EventType, data map[string]interface{}) {
	if err := s.bus.Emit(event.NewEvent(t, data)); err != nil {
		s.logger.Warn("event hook failed", "event", string(t), "error", err)
	}
}

// buildBus constructs the event bus from hook configuration. A
// disabled hooks section yields a disabled bus.
func buildBus(cfg config.HooksConfig, logger *telemetry.Logger) *event.Bus {
	bus := event.NewBus(logger)
	if !cfg.Enabled {
		bus.SetEnabled(false)
		return bus
	}

	for _, h := range cfg.Hooks {
		events := make([]event.EventType, len(h.Events))
		for i, e := range h.Events {
			events[i] = event.EventType(e)
		}

		switch h.Type {
		case "shell":
			bus.Register(event.NewShellHook(h.Name, h.Command, events, h.Blocking))
		case "webhook":
			bus.Register(event.NewWebhookHook(h.Name, h.URL, events, h.Blocking))
		case "log":
			bus.Register(event.NewLogHook(h.Name, events, logger, h.Level))
		}
	}
	return bus
}
