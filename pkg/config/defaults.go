package config

const (
	defaultVoice         = "friendly"
	defaultLanguage      = "en"
	defaultStreamDelayMs = 50

	defaultAPIListen       = ":8080"
	defaultClientAPITarget = "http://localhost:8080"

	defaultStorageDriver = "memory"

	defaultEventsTopic = "parley.turns"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Agent: AgentConfig{
			Voice:         defaultVoice,
			Language:      defaultLanguage,
			StreamDelayMs: defaultStreamDelayMs,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Client: ClientConfig{
			APITarget: defaultClientAPITarget,
		},
		Storage: StorageConfig{
			Driver: defaultStorageDriver,
		},
		Events: EventsConfig{
			Topic: defaultEventsTopic,
		},
	}
}
