package agent

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/parleyco/parley/pkg/conversation"
)

// Fragment is one word of a streamed response, carrying its trailing
// separator so that concatenating fragments in order reproduces the
// blocking response up to whitespace normalization: Stream splits on
// whitespace, so runs of spaces, tabs, or newlines in the response
// come back as a single space between words.
type Fragment struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// RespondStream produces the templated response for input as a lazy
// sequence of word fragments. Each fragment is preceded by the agent's
// configured delay. Because the response is split on whitespace, any
// whitespace runs the input carried into the echoed response collapse
// to single spaces in the fragments. The channel is closed once the
// response is exhausted or ctx is cancelled; a drained channel cannot
// be replayed.
func (a *Agent) RespondStream(ctx context.Context, input string) <-chan Fragment {
	a.mu.RLock()
	delay := a.delay
	a.mu.RUnlock()
	return Stream(ctx, Respond(input), delay)
}

// Stream splits text into whitespace-delimited words and emits them one
// at a time, each with a single trailing space, pausing delay before
// every emission. Splitting normalizes whitespace: consecutive spaces,
// tabs, and newlines in text are not preserved, so the concatenated
// fragments equal strings.Join(strings.Fields(text), " ") plus a
// trailing space. It is the producer half of the streaming simulation;
// RespondStream is the templated entry point.
func Stream(ctx context.Context, text string, delay time.Duration) <-chan Fragment {
	out := make(chan Fragment)
	go func() {
		defer close(out)
		for i, word := range strings.Fields(text) {
			if !pause(ctx, delay) {
				return
			}
			select {
			case out <- Fragment{Text: word + " ", Index: i}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func pause(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// Speak consumes a fragment stream, writing each fragment to w as it
// arrives and accumulating the full text. It returns the accumulated
// string once the stream is exhausted.
func Speak(w io.Writer, stream <-chan Fragment) string {
	var b strings.Builder
	for f := range stream {
		io.WriteString(w, f.Text)
		b.WriteString(f.Text)
	}
	return b.String()
}

// Process runs one full turn: the user input is recorded, the streamed
// response is written to w fragment by fragment, and the completed
// response is recorded with trailing whitespace trimmed. It returns the
// assistant turn.
func (a *Agent) Process(ctx context.Context, w io.Writer, input string) conversation.Turn {
	a.recordTurn(conversation.RoleUser, input)
	full := Speak(w, a.RespondStream(ctx, input))
	return a.recordTurn(conversation.RoleAssistant, strings.TrimSpace(full))
}
