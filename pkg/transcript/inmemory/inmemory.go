// Package inmemory provides a transcript store backed by process memory.
// It is the default backend for the chat loop, where persistence across
// runs is not needed.
package inmemory

import (
	"context"
	"sync"

	"github.com/parleyco/parley/pkg/conversation"
	"github.com/parleyco/parley/pkg/transcript"
)

// Store implements transcript.Store using an in-memory slice.
type Store struct {
	// mu guards turns and index
	mu sync.RWMutex

	// turns holds every saved turn in insertion order
	turns []conversation.Turn

	// index maps turn ID to its position in turns
	index map[string]int
}

// NewStore creates a new in-memory transcript store.
func NewStore() *Store {
	return &Store{
		index: make(map[string]int),
	}
}

// Save persists a turn. Re-saving an existing ID is a no-op.
func (s *Store) Save(_ context.Context, turn conversation.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[turn.ID]; ok {
		return nil
	}

	s.index[turn.ID] = len(s.turns)
	s.turns = append(s.turns, turn)
	return nil
}

// Get retrieves a turn by its ID.
func (s *Store) Get(_ context.Context, id string) (conversation.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return conversation.Turn{}, transcript.NotFoundError{ID: id}
	}
	return s.turns[i], nil
}

// List returns turns matching the query in insertion order.
func (s *Store) List(_ context.Context, query transcript.Query) ([]conversation.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []conversation.Turn
	for _, t := range s.turns {
		if query.Role != "" && t.Role != query.Role {
			continue
		}
		if query.Voice != "" && t.Voice != query.Voice {
			continue
		}
		if query.Language != "" && t.Language != query.Language {
			continue
		}
		matched = append(matched, t)
	}

	if query.Offset > 0 {
		if query.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[query.Offset:]
	}
	if query.Limit > 0 && query.Limit < len(matched) {
		matched = matched[:query.Limit]
	}

	out := make([]conversation.Turn, len(matched))
	copy(out, matched)
	return out, nil
}

// Count returns the number of stored turns.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns), nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
