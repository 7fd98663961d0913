// Package agent implements a simulated voice agent: a deterministic
// response generator with a streaming fragment producer, switchable
// voice profiles, and per-language greetings and goodbyes.
package agent

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/parleyco/parley/pkg/conversation"
	"github.com/parleyco/parley/pkg/language"
	"github.com/parleyco/parley/pkg/voice"
)

// DefaultStreamDelay is the simulated processing latency applied before
// each fragment is produced.
const DefaultStreamDelay = 50 * time.Millisecond

// Config carries the options for constructing an Agent.
type Config struct {
	// Voice is the initial voice profile key. Empty selects the default.
	Voice string

	// Language is the initial language key. Empty selects the default.
	Language string

	// StreamDelay is the per-fragment latency. Zero selects
	// DefaultStreamDelay; negative disables the delay entirely.
	StreamDelay time.Duration

	// Logger receives debug events. Nil disables logging.
	Logger *slog.Logger
}

// Agent holds the conversation state for one simulated voice session.
// Methods are safe for concurrent use.
type Agent struct {
	mu       sync.RWMutex
	voice    voice.Profile
	language language.Language
	delay    time.Duration

	voices    *voice.Registry
	languages *language.Registry
	history   *conversation.History
	logger    *slog.Logger
}

// New constructs an Agent from cfg. Unknown voice or language keys are
// rejected up front rather than falling back to defaults silently.
func New(cfg Config) (*Agent, error) {
	voices := voice.NewRegistry()
	languages := language.NewRegistry()

	v := voices.Default()
	if cfg.Voice != "" {
		var err error
		if v, err = voices.Get(cfg.Voice); err != nil {
			return nil, err
		}
	}

	l := languages.Default()
	if cfg.Language != "" {
		var err error
		if l, err = languages.Get(cfg.Language); err != nil {
			return nil, err
		}
	}

	delay := cfg.StreamDelay
	switch {
	case delay == 0:
		delay = DefaultStreamDelay
	case delay < 0:
		delay = 0
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Agent{
		voice:     v,
		language:  l,
		delay:     delay,
		voices:    voices,
		languages: languages,
		history:   conversation.NewHistory(),
		logger:    logger,
	}, nil
}

// Respond builds the full templated response for input in a single
// blocking call. The result is identical to the concatenation of every
// fragment RespondStream would produce for the same input.
func Respond(input string) string {
	return fmt.Sprintf(
		"Thank you for asking about '%s'. "+
			"Let me provide you with a detailed response. "+
			"Streaming allows me to start speaking while still generating text, "+
			"which significantly reduces the perceived latency. "+
			"This creates a more natural conversation flow.",
		input,
	)
}

// SetVoice switches the active voice profile. On an unknown key the
// current selection is left unchanged and the error wraps
// voice.ErrUnknownProfile.
func (a *Agent) SetVoice(key string) error {
	p, err := a.voices.Get(key)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.voice = p
	a.mu.Unlock()
	a.logger.Debug("voice switched", "voice", p.Key, "voice_id", p.VoiceID)
	return nil
}

// SetLanguage switches the active language. On an unknown key the
// current selection is left unchanged and the error wraps
// language.ErrUnsupported.
func (a *Agent) SetLanguage(key string) error {
	l, err := a.languages.Get(key)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.language = l
	a.mu.Unlock()
	a.logger.Debug("language switched", "language", l.Key, "code", l.Code)
	return nil
}

// Voice returns the active voice profile.
func (a *Agent) Voice() voice.Profile {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.voice
}

// Language returns the active language.
func (a *Agent) Language() language.Language {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.language
}

// Voices returns the voice registry the agent selects from.
func (a *Agent) Voices() *voice.Registry {
	return a.voices
}

// Languages returns the language registry the agent selects from.
func (a *Agent) Languages() *language.Registry {
	return a.languages
}

// Greeting returns the greeting phrase for the active language.
func (a *Agent) Greeting() string {
	return a.Language().Greeting
}

// Goodbye returns the goodbye phrase for the active language.
func (a *Agent) Goodbye() string {
	return a.Language().Goodbye
}

// History returns the conversation history.
func (a *Agent) History() *conversation.History {
	return a.history
}

func (a *Agent) recordTurn(role conversation.Role, content string) conversation.Turn {
	t := conversation.NewTurn(role, content)
	t.Voice = a.Voice().Key
	t.Language = a.Language().Key
	a.history.Append(t)
	return t
}
