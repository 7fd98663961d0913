package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent parley configuration stored as config.toml
// in the .parley/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version int           `toml:"version"`
	Agent   AgentConfig   `toml:"agent"`
	API     APIConfig     `toml:"api"`
	Client  ClientConfig  `toml:"client"`
	Storage StorageConfig `toml:"storage"`
	Events  EventsConfig  `toml:"events"`
}

// AgentConfig holds the defaults for the simulated voice agent itself.
type AgentConfig struct {
	Voice         string `toml:"voice,omitempty"`
	Language      string `toml:"language,omitempty"`
	StreamDelayMs uint   `toml:"stream_delay_ms,omitempty"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// ClientConfig holds settings for CLI commands that connect to a running
// parley API server (e.g. parley chat --remote). Values are full URLs
// (scheme + host + port).
type ClientConfig struct {
	APITarget string `toml:"api_target,omitempty"`
}

// StorageConfig holds transcript store settings shared by the serve command
// and the chat loop.
type StorageConfig struct {
	Driver      string `toml:"driver,omitempty"`
	SQLitePath  string `toml:"sqlite_path,omitempty"`
	PostgresURL string `toml:"postgres_url,omitempty"`
}

// EventsConfig holds turn event stream settings.
type EventsConfig struct {
	Enabled bool   `toml:"enabled,omitempty"`
	Brokers string `toml:"brokers,omitempty"`
	Topic   string `toml:"topic,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"agent.voice": {
		get: func(c *Config) string { return c.Agent.Voice },
		set: func(c *Config, v string) error { c.Agent.Voice = v; return nil },
	},
	"agent.language": {
		get: func(c *Config) string { return c.Agent.Language },
		set: func(c *Config, v string) error { c.Agent.Language = v; return nil },
	},
	"agent.stream_delay_ms": {
		get: func(c *Config) string {
			if c.Agent.StreamDelayMs == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Agent.StreamDelayMs), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for agent.stream_delay_ms: %w", err)
			}
			c.Agent.StreamDelayMs = uint(n)
			return nil
		},
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"client.api_target": {
		get: func(c *Config) string { return c.Client.APITarget },
		set: func(c *Config, v string) error { c.Client.APITarget = v; return nil },
	},
	"storage.driver": {
		get: func(c *Config) string { return c.Storage.Driver },
		set: func(c *Config, v string) error { c.Storage.Driver = v; return nil },
	},
	"storage.sqlite_path": {
		get: func(c *Config) string { return c.Storage.SQLitePath },
		set: func(c *Config, v string) error { c.Storage.SQLitePath = v; return nil },
	},
	"storage.postgres_url": {
		get: func(c *Config) string { return c.Storage.PostgresURL },
		set: func(c *Config, v string) error { c.Storage.PostgresURL = v; return nil },
	},
	"events.enabled": {
		get: func(c *Config) string { return strconv.FormatBool(c.Events.Enabled) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for events.enabled: %w", err)
			}
			c.Events.Enabled = b
			return nil
		},
	},
	"events.brokers": {
		get: func(c *Config) string { return c.Events.Brokers },
		set: func(c *Config, v string) error { c.Events.Brokers = v; return nil },
	},
	"events.topic": {
		get: func(c *Config) string { return c.Events.Topic },
		set: func(c *Config, v string) error { c.Events.Topic = v; return nil },
	},
}
