// Package sqlite provides a SQLite-backed transcript store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/parleyco/parley/pkg/conversation"
	"github.com/parleyco/parley/pkg/transcript"
)

const schema = `
CREATE TABLE IF NOT EXISTS turns (
	id         TEXT PRIMARY KEY,
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	voice      TEXT NOT NULL DEFAULT '',
	language   TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_turns_role ON turns (role);
CREATE INDEX IF NOT EXISTS idx_turns_created_at ON turns (created_at);
`

// Store implements transcript.Store using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite-backed transcript store.
// The dbPath can be a file path or ":memory:" for an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	// github.com/mattn/go-sqlite3 registers itself as "sqlite3"
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Save persists a turn. Re-saving an existing ID is a no-op.
func (s *Store) Save(ctx context.Context, turn conversation.Turn) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (id, role, content, voice, language, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO NOTHING`,
		turn.ID, string(turn.Role), turn.Content, turn.Voice, turn.Language, turn.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save turn: %w", err)
	}
	return nil
}

// Get retrieves a turn by its ID.
func (s *Store) Get(ctx context.Context, id string) (conversation.Turn, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, role, content, voice, language, created_at FROM turns WHERE id = ?`, id)

	turn, err := scanTurn(row)
	if err == sql.ErrNoRows {
		return conversation.Turn{}, transcript.NotFoundError{ID: id}
	}
	if err != nil {
		return conversation.Turn{}, fmt.Errorf("failed to get turn: %w", err)
	}
	return turn, nil
}

// List returns turns matching the query, oldest first.
func (s *Store) List(ctx context.Context, query transcript.Query) ([]conversation.Turn, error) {
	q := `SELECT id, role, content, voice, language, created_at FROM turns WHERE 1=1`
	var args []any

	if query.Role != "" {
		q += ` AND role = ?`
		args = append(args, string(query.Role))
	}
	if query.Voice != "" {
		q += ` AND voice = ?`
		args = append(args, query.Voice)
	}
	if query.Language != "" {
		q += ` AND language = ?`
		args = append(args, query.Language)
	}
	q += ` ORDER BY created_at ASC, id ASC`
	if query.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, query.Limit)
	}
	if query.Offset > 0 {
		if query.Limit <= 0 {
			q += ` LIMIT -1`
		}
		q += ` OFFSET ?`
		args = append(args, query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	defer rows.Close()

	var turns []conversation.Turn
	for rows.Next() {
		turn, err := scanTurn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}

// Count returns the number of stored turns.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM turns`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTurn(row scanner) (conversation.Turn, error) {
	var (
		turn      conversation.Turn
		role      string
		createdAt time.Time
	)
	if err := row.Scan(&turn.ID, &role, &turn.Content, &turn.Voice, &turn.Language, &createdAt); err != nil {
		return conversation.Turn{}, err
	}
	turn.Role = conversation.Role(role)
	turn.CreatedAt = createdAt.UTC()
	return turn, nil
}
