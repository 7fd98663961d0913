// Package worker provides an asynchronous worker pool for persisting
// conversation turns using the provided transcript.Store and publishing
// turn events using the provided eventstream.Publisher.
//
// The pool decouples persistence from the response hot path so that the
// streamed reply reaches the user without waiting on storage.
package worker

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parleyco/parley/pkg/conversation"
	"github.com/parleyco/parley/pkg/eventstream"
	"github.com/parleyco/parley/pkg/transcript"
	"github.com/parleyco/parley/pkg/utils"
)

var (
	defaultNumWorkers   uint = 3
	defaultJobQueueSize uint = 256
)

// maxLoggedContent caps turn content in log lines so long replies do not
// flood the persistence log.
const maxLoggedContent = 80

// Job is a unit of work for the worker pool to execute against.
type Job struct {
	// Surface is the entry point that produced the turn ("chat", "api", "mcp").
	Surface string

	// Turn is the conversation turn to persist.
	Turn conversation.Turn
}

// Config is the configuration options for the worker pool.
type Config struct {
	// Store is the transcript backend for persisting turns.
	Store transcript.Store

	// Publisher is the optional eventstream publisher for turn events.
	Publisher eventstream.Publisher

	// NumWorkers is the number of background workers in the pool.
	NumWorkers uint

	// QueueSize is the capacity of the buffered job channel (defaults to 256).
	QueueSize uint

	// Logger is the provided zap logger
	Logger *zap.Logger
}

// Pool processes persistence jobs asynchronously via a worker pool.
type Pool struct {
	config *Config
	queue  chan Job
	wg     sync.WaitGroup
	logger *zap.Logger
}

// NewPool creates a new Pool and starts its worker goroutines.
func NewPool(c *Config) (*Pool, error) {
	if c.Store == nil {
		return nil, fmt.Errorf("a transcript store is required")
	}

	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultJobQueueSize
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	wp := &Pool{
		config: c,
		queue:  make(chan Job, c.QueueSize),
		logger: c.Logger,
	}

	wp.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go wp.worker(i)
	}

	return wp, nil
}

// Enqueue submits a job for processing by the worker pool.
// Returns true if enqueued, false if the queue is full, resulting in the job being dropped
func (p *Pool) Enqueue(job Job) bool {
	select {
	case p.queue <- job:
		p.logger.Debug("job queued",
			zap.String("surface", job.Surface),
			zap.String("turn_id", job.Turn.ID),
		)
		return true
	default:
		p.logger.Error("job not queued, queue full, job dropped",
			zap.String("surface", job.Surface),
			zap.String("turn_id", job.Turn.ID),
		)
		return false
	}
}

// Close signals workers to stop and waits for in-flight jobs to drain.
// Call this during graceful shutdown after the server has stopped.
func (p *Pool) Close() {
	close(p.queue)
	p.wg.Wait()
}

// worker is the inner worker thread that continuously pulls jobs off the jobs queue
func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("worker started", zap.Uint("worker_id", id))

	for job := range p.queue {
		p.processJob(job)
	}

	p.logger.Debug("transcript worker stopped", zap.Uint("worker_id", id))
}

// processJob persists the turn and, if a publisher is configured,
// emits a turn recorded event.
func (p *Pool) processJob(job Job) {
	ctx := context.Background()

	if err := p.config.Store.Save(ctx, job.Turn); err != nil {
		p.logger.Error("async turn persistence failed",
			zap.String("surface", job.Surface),
			zap.String("turn_id", job.Turn.ID),
			zap.Error(err),
		)
		return
	}

	p.logger.Info("turn persisted",
		zap.String("surface", job.Surface),
		zap.String("turn_id", job.Turn.ID),
		zap.String("role", string(job.Turn.Role)),
		zap.String("content", utils.Truncate(job.Turn.Content, maxLoggedContent)),
	)

	if p.config.Publisher == nil {
		return
	}

	event := &eventstream.TurnRecordedEvent{
		SchemaVersion: eventstream.SchemaVersionV1,
		EventType:     eventstream.EventTypeTurnRecorded,
		EventID:       uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		Source: eventstream.EventSource{
			Surface:  job.Surface,
			Voice:    job.Turn.Voice,
			Language: job.Turn.Language,
		},
		Turn: job.Turn,
	}

	if err := p.config.Publisher.PublishTurn(ctx, event); err != nil {
		p.logger.Error("turn event publish failed",
			zap.String("event_id", event.EventID),
			zap.String("turn_id", job.Turn.ID),
			zap.Error(err),
		)
	}
}
