// Package sse provides a minimal SSE (Server-Sent Events) codec for the
// parley streaming API. The Writer serializes response fragments as SSE
// events for the /v1/respond/sse endpoint, and the Reader parses them back
// on the client side.
//
// This package intentionally implements only the subset of the SSE wire
// format that parley emits.
//
// See the SSE specification:
// https://html.spec.whatwg.org/multipage/server-sent-events.html
package sse

// Event represents a single SSE event, delimited by a blank line
// in the byte stream.
type Event struct {
	// Type is the SSE event type from the "event:" field.
	// An empty string means the default "message" type per the SSE spec.
	Type string

	// Data is the concatenated contents of all "data:" lines for this event,
	// joined with "\n" (per the SSE spec, multiple data fields are joined
	// with a single newline).
	Data string

	// ID is the last event ID from the "id:" field, if present.
	ID string
}
