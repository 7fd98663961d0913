// Package transcript defines the storage interface for persisted
// conversation turns.
package transcript

import (
	"context"

	"github.com/parleyco/parley/pkg/conversation"
)

// Store defines the interface for persisting and retrieving
// conversation turns in a storage backend.
type Store interface {
	// Save persists a turn. Saving the same turn ID twice is a no-op.
	Save(ctx context.Context, turn conversation.Turn) error

	// Get retrieves a turn by its ID.
	Get(ctx context.Context, id string) (conversation.Turn, error)

	// List returns turns matching the query, oldest first.
	List(ctx context.Context, query Query) ([]conversation.Turn, error)

	// Count returns the number of stored turns.
	Count(ctx context.Context) (int, error)

	// Close closes the store and releases any resources.
	Close() error
}

// Query defines query parameters for filtering turns.
type Query struct {
	Role     conversation.Role
	Voice    string
	Language string
	Limit    int
	Offset   int
}
