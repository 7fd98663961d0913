package eventstream_test

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parleyco/parley/pkg/conversation"
	"github.com/parleyco/parley/pkg/eventstream"
)

var _ = Describe("Event", func() {
	It("marshals TurnRecordedEvent with expected top-level keys", func() {
		now := time.Unix(1735689600, 0).UTC()
		event := eventstream.TurnRecordedEvent{
			SchemaVersion: eventstream.SchemaVersionV1,
			EventType:     eventstream.EventTypeTurnRecorded,
			EventID:       "evt_123",
			EmittedAt:     now,
			Source: eventstream.EventSource{
				Surface:  "chat",
				Voice:    "friendly",
				Language: "en",
			},
			Turn: conversation.Turn{
				ID:        "turn_123",
				Role:      conversation.RoleAssistant,
				Content:   "hello",
				Voice:     "friendly",
				Language:  "en",
				CreatedAt: now,
			},
		}

		payload, err := json.Marshal(event)
		Expect(err).NotTo(HaveOccurred())

		var decoded map[string]json.RawMessage
		Expect(json.Unmarshal(payload, &decoded)).To(Succeed())
		Expect(decoded).To(HaveKey("schema_version"))
		Expect(decoded).To(HaveKey("event_type"))
		Expect(decoded).To(HaveKey("event_id"))
		Expect(decoded).To(HaveKey("emitted_at"))
		Expect(decoded).To(HaveKey("source"))
		Expect(decoded).To(HaveKey("turn"))
	})

	It("round-trips the turn payload", func() {
		event := eventstream.TurnRecordedEvent{
			SchemaVersion: eventstream.SchemaVersionV1,
			EventType:     eventstream.EventTypeTurnRecorded,
			Turn: conversation.Turn{
				ID:      "turn_456",
				Role:    conversation.RoleUser,
				Content: "what is streaming?",
			},
		}

		payload, err := json.Marshal(event)
		Expect(err).NotTo(HaveOccurred())

		var decoded eventstream.TurnRecordedEvent
		Expect(json.Unmarshal(payload, &decoded)).To(Succeed())
		Expect(decoded.Turn.ID).To(Equal("turn_456"))
		Expect(decoded.Turn.Role).To(Equal(conversation.RoleUser))
		Expect(decoded.Turn.Content).To(Equal("what is streaming?"))
	})
})
