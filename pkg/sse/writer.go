package sse

import (
	"fmt"
	"io"
	"strings"
)

// Writer serializes SSE events to a destination io.Writer.
// The destination typically backs an io.Pipe connected to the HTTP
// response body.
type Writer struct {
	dest io.Writer
}

// NewWriter returns a Writer that emits SSE events to dest.
func NewWriter(dest io.Writer) *Writer {
	return &Writer{dest: dest}
}

// Write emits a single event. Data containing newlines is split into
// multiple "data:" lines per the SSE spec so the Reader reassembles the
// original value.
func (w *Writer) Write(ev *Event) error {
	if ev == nil {
		return nil
	}

	if ev.Type != "" {
		if _, err := fmt.Fprintf(w.dest, "event: %s\n", ev.Type); err != nil {
			return err
		}
	}
	if ev.ID != "" {
		if _, err := fmt.Fprintf(w.dest, "id: %s\n", ev.ID); err != nil {
			return err
		}
	}
	for _, line := range strings.Split(ev.Data, "\n") {
		if _, err := fmt.Fprintf(w.dest, "data: %s\n", line); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w.dest, "\n")
	return err
}
