package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes used across the system.
const (
	TypeUserRegistered = "USER_REGISTERED"
	TypeNoteCreated    = "NOTE_CREATED"
	TypeNoteDeleted    = "NOTE_DELETED"
	TypeAiResultSaved  = "AI_RESULT_SAVED"
)

func NewUserRegistered(userId, email string) Event {
	return BaseEvent{
		Type:       TypeUserRegistered,
		Data:       map[string]interface{}{"user_id": userId, "email": email},
		OccurredAt: time.Now(),
	}
}

func NewNoteCreated(noteId, userId string) Event {
	return BaseEvent{
		Type:       TypeNoteCreated,
		Data:       map[string]interface{}{"note_id": noteId, "user_id": userId},
		OccurredAt: time.Now(),
	}
}

func NewNoteDeleted(noteId, userId string) Event {
	return BaseEvent{
		Type:       TypeNoteDeleted,
		Data:       map[string]interface{}{"note_id": noteId, "user_id": userId},
		OccurredAt: time.Now(),
	}
}

func NewAiResultSaved(noteId, field string) Event {
	return BaseEvent{
		Type:       TypeAiResultSaved,
		Data:       map[string]interface{}{"note_id": noteId, "field": field},
		OccurredAt: time.Now(),
	}
}
