// Package event dispatches memory lifecycle events (section updates,
// backups, sync runs) to configured hooks.
package event

import (
	"fmt"
	"sync"
)

// Bus fans lifecycle events out to registered hooks. The engine emits
// every document mutation and sync outcome through one bus; hooks
// observe the engine but never drive it.
//
// Blocking hooks run in registration order and can veto the emitting
// operation by returning an error. Non-blocking hooks run in their own
// goroutines; their errors and panics are logged and otherwise
// ignored. A nil *Bus drops every event, so callers without hooks need
// no guard.
type Bus struct {
	mu      sync.RWMutex
	hooks   []Hook
	enabled bool
	logger  Logger
}

// Logger is a minimal logging interface so the bus doesn't depend on telemetry.
type Logger interface {
	Warn(msg string, keyvals ...interface{})
}

// NewBus creates an enabled event bus. Pass nil logger for silent operation.
func NewBus(logger Logger) *Bus {
	return &Bus{enabled: true, logger: logger}
}

// Register adds a hook to the bus.
func (b *Bus) Register(h Hook) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hooks = append(b.hooks, h)
}

// SetEnabled controls whether the bus dispatches events.
func (b *Bus) SetEnabled(enabled bool) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = enabled
}

// Emit dispatches an event to all hooks matching its type. The first
// error from a blocking hook stops dispatch and is returned.
func (b *Bus) Emit(ev Event) error {
	if b == nil {
		return nil
	}

	for _, h := range b.snapshot() {
		if !h.Matches(ev.Type) {
			continue
		}
		if h.IsBlocking() {
			if err := h.Handle(ev); err != nil {
				return fmt.Errorf("blocking hook %s failed: %w", h.Name(), err)
			}
			continue
		}
		go b.dispatchAsync(h, ev)
	}
	return nil
}

// snapshot copies the hook list so dispatch never holds the lock while
// hooks execute. A disabled bus yields no hooks.
func (b *Bus) snapshot() []Hook {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.enabled {
		return nil
	}
	return append([]Hook(nil), b.hooks...)
}

func (b *Bus) dispatchAsync(h Hook, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.warn("event hook panicked", "hook", h.Name(), "event", string(ev.Type), "panic", r)
		}
	}()
	if err := h.Handle(ev); err != nil {
		b.warn("event hook failed", "hook", h.Name(), "event", string(ev.Type), "error", err)
	}
}

func (b *Bus) warn(msg string, keyvals ...interface{}) {
	if b.logger != nil {
		b.logger.Warn(msg, keyvals...)
	}
}
