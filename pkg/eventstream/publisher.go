// Package eventstream defines the event payloads and publisher interface
// for broadcasting recorded conversation turns to external consumers.
package eventstream

import "context"

// Publisher publishes turn events to an event stream backend.
type Publisher interface {
	PublishTurn(ctx context.Context, event *TurnRecordedEvent) error
	Close() error
}
