package event

import "time"

// EventType identifies the kind of lifecycle event.
type EventType string

const (
	// Document lifecycle
	SectionUpdated   EventType = "section.updated"
	TemplateReplaced EventType = "template.replaced"
	BackupCreated    EventType = "backup.created"
	BackupRestored   EventType = "backup.restored"
	PresetLoaded     EventType = "preset.loaded"
	PresetCreated    EventType = "preset.created"

	// Sync lifecycle
	SyncStarted   EventType = "sync.started"
	SyncCompleted EventType = "sync.completed"
	SyncFailed    EventType = "sync.failed"
)

// Event carries data about a lifecycle occurrence.
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(t EventType, data map[string]interface{}) Event {
	return Event{
		Type:      t,
		Timestamp: time.Now(),
		Data:      data,
	}
}
