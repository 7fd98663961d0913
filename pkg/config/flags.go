package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --voice
// on both "parley chat" and "parley serve").
type Flag struct {
	// Name is the long flag name (e.g. "voice").
	Name string

	// Shorthand is the one-letter short flag (e.g. "v"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "agent.voice").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddUintFlag,
// and BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagVoice         = "voice"
	FlagLanguage      = "language"
	FlagStreamDelay   = "stream-delay"
	FlagAPIListen     = "api-listen"
	FlagAPITarget     = "api-target"
	FlagStorageDriver = "storage-driver"
	FlagSQLite        = "sqlite"
	FlagPostgres      = "postgres"
	FlagEventsBrokers = "events-brokers"
	FlagEventsTopic   = "events-topic"
)

// DefaultFlagSet returns the shared flag registry used across parley commands.
func DefaultFlagSet() FlagSet {
	return FlagSet{
		FlagVoice: {
			Name:        "voice",
			ViperKey:    "agent.voice",
			Description: "Voice profile to use (professional, friendly, energetic, calm)",
		},
		FlagLanguage: {
			Name:        "language",
			Shorthand:   "l",
			ViperKey:    "agent.language",
			Description: "Language code to use (en, es, fr, de, zh, ja, hi, ar)",
		},
		FlagStreamDelay: {
			Name:        "stream-delay",
			ViperKey:    "agent.stream_delay_ms",
			Description: "Per-fragment streaming delay in milliseconds",
		},
		FlagAPIListen: {
			Name:        "listen",
			ViperKey:    "api.listen",
			Description: "Address for the API server to listen on",
		},
		FlagAPITarget: {
			Name:        "api-target",
			Shorthand:   "a",
			ViperKey:    "client.api_target",
			Description: "Parley API server URL",
		},
		FlagStorageDriver: {
			Name:        "storage-driver",
			ViperKey:    "storage.driver",
			Description: "Transcript storage driver (memory, sqlite, postgres)",
		},
		FlagSQLite: {
			Name:        "sqlite",
			Shorthand:   "s",
			ViperKey:    "storage.sqlite_path",
			Description: "Path to SQLite transcript database",
		},
		FlagPostgres: {
			Name:        "postgres",
			ViperKey:    "storage.postgres_url",
			Description: "PostgreSQL connection URL for the transcript store",
		},
		FlagEventsBrokers: {
			Name:        "events-brokers",
			ViperKey:    "events.brokers",
			Description: "Comma-separated Kafka broker addresses for turn events",
		},
		FlagEventsTopic: {
			Name:        "events-topic",
			ViperKey:    "events.topic",
			Description: "Kafka topic for turn events",
		},
	}
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddUintFlag registers a uint flag on cmd from the given FlagSet.
func AddUintFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultUint(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().UintVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().UintVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}

// defaultUint returns the default uint value for a viper key from NewDefaultConfig.
func defaultUint(viperKey string) uint {
	v := viper.New()
	setViperDefaults(v)
	return v.GetUint(viperKey)
}
