package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/parleyco/parley/pkg/language"
	"github.com/parleyco/parley/pkg/transcript"
	"github.com/parleyco/parley/pkg/transcript/worker"
	"github.com/parleyco/parley/pkg/voice"
)

// Server is the API server exposing the voice agent over HTTP.
type Server struct {
	mu        sync.RWMutex
	config    Config
	voices    *voice.Registry
	languages *language.Registry
	store     transcript.Store
	pool      *worker.Pool
	logger    *zap.Logger
	app       *fiber.App
}

// NewServer creates a new API server.
// The store and pool are injected to allow sharing with other components.
// mcpHandler, when non-nil, is mounted at /mcp.
func NewServer(config Config, store transcript.Store, pool *worker.Pool, mcpHandler http.Handler, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:    config,
		voices:    voice.NewRegistry(),
		languages: language.NewRegistry(),
		store:     store,
		pool:      pool,
		logger:    logger,
		app:       app,
	}

	app.Get("/ping", s.handlePing)
	app.Get("/v1/voices", s.handleListVoices)
	app.Get("/v1/languages", s.handleListLanguages)
	app.Post("/v1/respond", s.handleRespond)
	app.Post("/v1/respond/stream", s.handleRespondStream)
	app.Post("/v1/respond/sse", s.handleRespondSSE)
	app.Get("/v1/transcript", s.handleGetTranscript)

	if mcpHandler != nil {
		app.All("/mcp", adaptor.HTTPHandler(mcpHandler))
	}

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// SetDefaults replaces the default voice, language, and stream delay applied
// to requests that omit them. Safe to call while the server is running; the
// serve command uses it when the config file changes on disk.
func (s *Server) SetDefaults(voiceKey, langKey string, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Voice = voiceKey
	s.config.Language = langKey
	s.config.StreamDelay = delay
}

func (s *Server) defaults() (string, string, time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.Voice, s.config.Language, s.config.StreamDelay
}
