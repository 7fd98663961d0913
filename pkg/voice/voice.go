// Package voice holds the catalog of voice profiles an agent can speak
// with and the selection rules for switching between them.
package voice

import (
	"fmt"
	"sort"
)

// ErrUnknownProfile is returned when a profile key has no entry in the
// registry. The caller's current selection is left untouched.
var ErrUnknownProfile = fmt.Errorf("unknown voice profile")

// Profile describes a single synthetic voice.
type Profile struct {
	Key         string  `json:"key" toml:"key"`
	Name        string  `json:"name" toml:"name"`
	VoiceID     string  `json:"voice_id" toml:"voice_id"`
	Speed       float64 `json:"speed" toml:"speed"`
	Pitch       float64 `json:"pitch" toml:"pitch"`
	Personality string  `json:"personality" toml:"personality"`
}

// DefaultKey is the profile agents start with.
const DefaultKey = "friendly"

// Registry is a read-only lookup of voice profiles by key.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry returns a registry populated with the built-in profiles.
func NewRegistry() *Registry {
	return &Registry{
		profiles: map[string]Profile{
			"professional": {
				Key:         "professional",
				Name:        "Professional",
				VoiceID:     "prof_001",
				Speed:       1.0,
				Pitch:       1.0,
				Personality: "professional and courteous",
			},
			"friendly": {
				Key:         "friendly",
				Name:        "Friendly",
				VoiceID:     "friend_001",
				Speed:       1.1,
				Pitch:       1.05,
				Personality: "warm and friendly",
			},
			"energetic": {
				Key:         "energetic",
				Name:        "Energetic",
				VoiceID:     "energy_001",
				Speed:       1.2,
				Pitch:       1.1,
				Personality: "enthusiastic and energetic",
			},
			"calm": {
				Key:         "calm",
				Name:        "Calm",
				VoiceID:     "calm_001",
				Speed:       0.9,
				Pitch:       0.95,
				Personality: "calm and soothing",
			},
		},
	}
}

// Get looks up a profile by key.
func (r *Registry) Get(key string) (Profile, error) {
	p, ok := r.profiles[key]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, key)
	}
	return p, nil
}

// Has reports whether key names a registered profile.
func (r *Registry) Has(key string) bool {
	_, ok := r.profiles[key]
	return ok
}

// Keys returns all profile keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.profiles))
	for k := range r.profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns every profile, ordered by key.
func (r *Registry) All() []Profile {
	keys := r.Keys()
	out := make([]Profile, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.profiles[k])
	}
	return out
}

// Default returns the default profile.
func (r *Registry) Default() Profile {
	return r.profiles[DefaultKey]
}
