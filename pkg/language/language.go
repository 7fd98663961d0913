// Package language holds the catalog of languages an agent can respond
// in, with localized greetings and goodbyes for each.
package language

import (
	"fmt"
	"sort"
)

// ErrUnsupported is returned when a language key has no entry in the
// registry. The caller's current selection is left untouched.
var ErrUnsupported = fmt.Errorf("unsupported language")

// Language describes a single supported language.
type Language struct {
	Key      string `json:"key" toml:"key"`
	Name     string `json:"name" toml:"name"`
	Code     string `json:"code" toml:"code"`
	Greeting string `json:"greeting" toml:"greeting"`
	Goodbye  string `json:"goodbye" toml:"goodbye"`
	VoiceID  string `json:"voice_id" toml:"voice_id"`
}

// DefaultKey is the language agents start with.
const DefaultKey = "en"

// Registry is a read-only lookup of languages by key.
type Registry struct {
	languages map[string]Language
}

// NewRegistry returns a registry populated with the built-in languages.
func NewRegistry() *Registry {
	return &Registry{
		languages: map[string]Language{
			"en": {
				Key:      "en",
				Name:     "English",
				Code:     "en-US",
				Greeting: "Hello! How can I help you today?",
				Goodbye:  "Goodbye! Have a great day!",
				VoiceID:  "en_voice_001",
			},
			"es": {
				Key:      "es",
				Name:     "Spanish",
				Code:     "es-ES",
				Greeting: "¡Hola! ¿Cómo puedo ayudarte hoy?",
				Goodbye:  "¡Adiós! ¡Que tengas un gran día!",
				VoiceID:  "es_voice_001",
			},
			"fr": {
				Key:      "fr",
				Name:     "French",
				Code:     "fr-FR",
				Greeting: "Bonjour! Comment puis-je vous aider aujourd'hui?",
				Goodbye:  "Au revoir! Passez une excellente journée!",
				VoiceID:  "fr_voice_001",
			},
			"de": {
				Key:      "de",
				Name:     "German",
				Code:     "de-DE",
				Greeting: "Hallo! Wie kann ich Ihnen heute helfen?",
				Goodbye:  "Auf Wiedersehen! Haben Sie einen schönen Tag!",
				VoiceID:  "de_voice_001",
			},
			"zh": {
				Key:      "zh",
				Name:     "Chinese",
				Code:     "zh-CN",
				Greeting: "你好！今天我能帮你什么？",
				Goodbye:  "再见！祝你有美好的一天！",
				VoiceID:  "zh_voice_001",
			},
			"ja": {
				Key:      "ja",
				Name:     "Japanese",
				Code:     "ja-JP",
				Greeting: "こんにちは！今日はどうすればお手伝いできますか？",
				Goodbye:  "さようなら！良い一日を！",
				VoiceID:  "ja_voice_001",
			},
			"hi": {
				Key:      "hi",
				Name:     "Hindi",
				Code:     "hi-IN",
				Greeting: "नमस्ते! आज मैं आपकी कैसे मदद कर सकता हूं?",
				Goodbye:  "अलविदा! आपका दिन शुभ हो!",
				VoiceID:  "hi_voice_001",
			},
			"ar": {
				Key:      "ar",
				Name:     "Arabic",
				Code:     "ar-SA",
				Greeting: "مرحبا! كيف يمكنني مساعدتك اليوم؟",
				Goodbye:  "وداعا! أتمنى لك يوما سعيدا!",
				VoiceID:  "ar_voice_001",
			},
		},
	}
}

// Get looks up a language by key.
func (r *Registry) Get(key string) (Language, error) {
	l, ok := r.languages[key]
	if !ok {
		return Language{}, fmt.Errorf("%w: %q", ErrUnsupported, key)
	}
	return l, nil
}

// Has reports whether key names a registered language.
func (r *Registry) Has(key string) bool {
	_, ok := r.languages[key]
	return ok
}

// Keys returns all language keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.languages))
	for k := range r.languages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns every language, ordered by key.
func (r *Registry) All() []Language {
	keys := r.Keys()
	out := make([]Language, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.languages[k])
	}
	return out
}

// Default returns the default language.
func (r *Registry) Default() Language {
	return r.languages[DefaultKey]
}

// Thanks returns the thank-you phrase used by the translation demo,
// keyed by language. Only a subset of languages carry one.
func Thanks() map[string]string {
	return map[string]string{
		"en": "Thank you for using the voice agent!",
		"es": "¡Gracias por usar el agente de voz!",
		"fr": "Merci d'utiliser l'agent vocal!",
		"de": "Vielen Dank für die Nutzung des Sprachagenten!",
		"zh": "感谢您使用语音代理！",
		"ja": "音声エージェントをご利用いただきありがとうございます！",
	}
}
