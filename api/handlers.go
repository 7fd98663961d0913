package api

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/parleyco/parley/pkg/agent"
	"github.com/parleyco/parley/pkg/conversation"
	"github.com/parleyco/parley/pkg/language"
	"github.com/parleyco/parley/pkg/sse"
	"github.com/parleyco/parley/pkg/transcript"
	"github.com/parleyco/parley/pkg/transcript/worker"
	"github.com/parleyco/parley/pkg/voice"
)

// ErrorResponse is the JSON error body returned by the API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondRequest is the request body for /v1/respond and /v1/respond/stream.
type RespondRequest struct {
	Input    string `json:"input"`
	Voice    string `json:"voice,omitempty"`
	Language string `json:"language,omitempty"`
}

// RespondResponse is the response body for /v1/respond.
type RespondResponse struct {
	Response string `json:"response"`
	Voice    string `json:"voice"`
	Language string `json:"language"`
	TurnID   string `json:"turn_id,omitempty"`
}

// StreamChunk is one NDJSON line of a streamed response. Fragment lines
// carry Text and Index; the final line sets Done with the full response.
type StreamChunk struct {
	Text     string `json:"text,omitempty"`
	Index    int    `json:"index"`
	Done     bool   `json:"done"`
	Response string `json:"response,omitempty"`
}

// TranscriptResponse is the response body for /v1/transcript.
type TranscriptResponse struct {
	Count int                 `json:"count"`
	Turns []conversation.Turn `json:"turns"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleListVoices returns every registered voice profile.
func (s *Server) handleListVoices(c *fiber.Ctx) error {
	return c.JSON(map[string]any{
		"default": voice.DefaultKey,
		"voices":  s.voices.All(),
	})
}

// handleListLanguages returns every supported language.
func (s *Server) handleListLanguages(c *fiber.Ctx) error {
	return c.JSON(map[string]any{
		"default":   language.DefaultKey,
		"languages": s.languages.All(),
	})
}

// handleRespond returns the full templated response in a single blocking call.
func (s *Server) handleRespond(c *fiber.Ctx) error {
	var req RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	v, l, err := s.resolveSelection(req.Voice, req.Language)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	response := agent.Respond(req.Input)
	turnID := s.recordExchange(req.Input, response, v, l)

	return c.JSON(RespondResponse{
		Response: response,
		Voice:    v.Key,
		Language: l.Key,
		TurnID:   turnID,
	})
}

// handleRespondStream streams the templated response as NDJSON fragments.
func (s *Server) handleRespondStream(c *fiber.Ctx) error {
	var req RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	v, l, err := s.resolveSelection(req.Voice, req.Language)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/x-ndjson")

	// io.Pipe gives direct backpressure: pw.Write blocks until fasthttp's
	// chunked writer consumes the data, so every fragment reaches the
	// client as soon as it is produced.
	pr, pw := io.Pipe()
	go s.streamResponse(pw, req.Input, v, l)

	// Unknown size (-1) triggers chunked transfer encoding in fasthttp.
	c.Context().Response.SetBodyStream(pr, -1)

	return nil
}

func (s *Server) streamResponse(pw *io.PipeWriter, input string, v voice.Profile, l language.Language) {
	defer pw.Close()

	// context.Background() instead of the request context: fasthttp
	// recycles its RequestCtx after the handler returns, but this
	// callback keeps running in a separate goroutine.
	ctx := context.Background()
	enc := json.NewEncoder(pw)

	var full strings.Builder
	for f := range agent.Stream(ctx, agent.Respond(input), s.delay()) {
		full.WriteString(f.Text)
		if err := enc.Encode(StreamChunk{Text: f.Text, Index: f.Index}); err != nil {
			s.logger.Error("failed to write stream chunk", zap.Error(err))
			return
		}
	}

	response := strings.TrimSpace(full.String())
	turnID := s.recordExchange(input, response, v, l)

	if err := enc.Encode(StreamChunk{Done: true, Response: response}); err != nil {
		s.logger.Error("failed to write final stream chunk",
			zap.String("turn_id", turnID),
			zap.Error(err),
		)
	}
}

// handleRespondSSE streams the templated response as Server-Sent Events.
// Each fragment arrives as an "event: fragment" with its index as the id;
// the closing "event: done" carries the full response.
func (s *Server) handleRespondSSE(c *fiber.Ctx) error {
	var req RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	v, l, err := s.resolveSelection(req.Voice, req.Language)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")

	pr, pw := io.Pipe()
	go s.streamResponseSSE(pw, req.Input, v, l)

	c.Context().Response.SetBodyStream(pr, -1)

	return nil
}

func (s *Server) streamResponseSSE(pw *io.PipeWriter, input string, v voice.Profile, l language.Language) {
	defer pw.Close()

	ctx := context.Background()
	w := sse.NewWriter(pw)

	var full strings.Builder
	for f := range agent.Stream(ctx, agent.Respond(input), s.delay()) {
		full.WriteString(f.Text)
		err := w.Write(&sse.Event{
			Type: "fragment",
			ID:   strconv.Itoa(f.Index),
			Data: f.Text,
		})
		if err != nil {
			s.logger.Error("failed to write SSE fragment", zap.Error(err))
			return
		}
	}

	response := strings.TrimSpace(full.String())
	turnID := s.recordExchange(input, response, v, l)

	if err := w.Write(&sse.Event{Type: "done", Data: response}); err != nil {
		s.logger.Error("failed to write final SSE event",
			zap.String("turn_id", turnID),
			zap.Error(err),
		)
	}
}

// handleGetTranscript returns persisted turns matching the query parameters.
func (s *Server) handleGetTranscript(c *fiber.Ctx) error {
	if s.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: "transcript store not configured"})
	}

	query := transcript.Query{
		Role:     conversation.Role(c.Query("role")),
		Voice:    c.Query("voice"),
		Language: c.Query("language"),
		Limit:    c.QueryInt("limit"),
		Offset:   c.QueryInt("offset"),
	}

	turns, err := s.store.List(c.Context(), query)
	if err != nil {
		s.logger.Error("failed to list transcript", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to list transcript"})
	}

	if turns == nil {
		turns = []conversation.Turn{}
	}

	return c.JSON(TranscriptResponse{
		Count: len(turns),
		Turns: turns,
	})
}

// resolveSelection maps request keys onto registry entries, falling back
// to the server defaults when a key is omitted.
func (s *Server) resolveSelection(voiceKey, langKey string) (voice.Profile, language.Language, error) {
	defaultVoice, defaultLang, _ := s.defaults()
	if voiceKey == "" {
		voiceKey = defaultVoice
	}
	if voiceKey == "" {
		voiceKey = voice.DefaultKey
	}
	if langKey == "" {
		langKey = defaultLang
	}
	if langKey == "" {
		langKey = language.DefaultKey
	}

	v, err := s.voices.Get(voiceKey)
	if err != nil {
		return voice.Profile{}, language.Language{}, err
	}
	l, err := s.languages.Get(langKey)
	if err != nil {
		return voice.Profile{}, language.Language{}, err
	}
	return v, l, nil
}

// recordExchange enqueues both sides of the exchange for async
// persistence and returns the assistant turn ID.
func (s *Server) recordExchange(input, response string, v voice.Profile, l language.Language) string {
	if s.pool == nil {
		return ""
	}

	user := conversation.NewTurn(conversation.RoleUser, input)
	user.Voice = v.Key
	user.Language = l.Key
	s.pool.Enqueue(worker.Job{Surface: "api", Turn: user})

	assistant := conversation.NewTurn(conversation.RoleAssistant, response)
	assistant.Voice = v.Key
	assistant.Language = l.Key
	s.pool.Enqueue(worker.Job{Surface: "api", Turn: assistant})

	return assistant.ID
}

func (s *Server) delay() time.Duration {
	_, _, configured := s.defaults()
	switch {
	case configured == 0:
		return agent.DefaultStreamDelay
	case configured < 0:
		return 0
	default:
		return configured
	}
}
