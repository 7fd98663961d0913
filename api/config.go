// Package api provides an HTTP API server for the simulated voice agent.
package api

import "time"

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8080")
	ListenAddr string

	// Voice is the default voice profile key for requests that omit one.
	Voice string

	// Language is the default language key for requests that omit one.
	Language string

	// StreamDelay is the per-fragment latency for streamed responses.
	// Zero selects the agent default; negative disables the delay.
	StreamDelay time.Duration
}
