package eventstream

import (
	"time"

	"github.com/parleyco/parley/pkg/conversation"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeTurnRecorded is emitted after a conversation turn is persisted.
	EventTypeTurnRecorded = "parley.turn.recorded"
)

// TurnRecordedEvent is a transport-neutral event payload for a recorded turn.
type TurnRecordedEvent struct {
	SchemaVersion int               `json:"schema_version"`
	EventType     string            `json:"event_type"`
	EventID       string            `json:"event_id"`
	EmittedAt     time.Time         `json:"emitted_at"`
	Source        EventSource       `json:"source"`
	Turn          conversation.Turn `json:"turn"`
}

// EventSource identifies where the turn originated.
type EventSource struct {
	// Surface is the entry point that produced the turn ("chat", "api", "mcp").
	Surface string `json:"surface"`

	// Voice and Language are the agent selections at the time of the turn.
	Voice    string `json:"voice,omitempty"`
	Language string `json:"language,omitempty"`
}
