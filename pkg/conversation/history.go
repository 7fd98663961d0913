package conversation

import "sync"

// History is an append-only, in-order record of conversation turns.
// It only grows; there is no eviction and no mutation of stored turns.
// The lock exists because the HTTP surface can share one agent across
// concurrent requests; the interactive loop itself is single-threaded.
type History struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append adds a turn to the end of the history.
func (h *History) Append(t Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, t)
}

// Turns returns a copy of the recorded turns in append order.
func (h *History) Turns() []Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of recorded turns.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.turns)
}

// Last returns the most recent turn and true, or a zero turn and false when
// the history is empty.
func (h *History) Last() (Turn, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.turns) == 0 {
		return Turn{}, false
	}
	return h.turns[len(h.turns)-1], true
}
