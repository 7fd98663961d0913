package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/parleyco/parley/pkg/language"
	"github.com/parleyco/parley/pkg/voice"
)

var (
	listVoicesToolName    = "list_voices"
	listVoicesDescription = "List every available voice profile with its voice ID, speed, pitch, and personality."

	listLanguagesToolName    = "list_languages"
	listLanguagesDescription = "List every supported language with its locale code and localized greeting and goodbye."
)

// ListVoicesInput represents the (empty) input for the list_voices tool.
type ListVoicesInput struct{}

// ListVoicesOutput represents the output of the list_voices tool.
type ListVoicesOutput struct {
	Default string          `json:"default"`
	Voices  []voice.Profile `json:"voices"`
	Count   int             `json:"count"`
}

// ListLanguagesInput represents the (empty) input for the list_languages tool.
type ListLanguagesInput struct{}

// ListLanguagesOutput represents the output of the list_languages tool.
type ListLanguagesOutput struct {
	Default   string              `json:"default"`
	Languages []language.Language `json:"languages"`
	Count     int                 `json:"count"`
}

// handleListVoices returns the voice catalog.
func (s *Server) handleListVoices(_ context.Context, _ *mcp.CallToolRequest, _ ListVoicesInput) (*mcp.CallToolResult, ListVoicesOutput, error) {
	all := s.voices.All()
	output := ListVoicesOutput{
		Default: voice.DefaultKey,
		Voices:  all,
		Count:   len(all),
	}
	return toolResult(s.config.Logger, output, ListVoicesOutput{})
}

// handleListLanguages returns the language catalog.
func (s *Server) handleListLanguages(_ context.Context, _ *mcp.CallToolRequest, _ ListLanguagesInput) (*mcp.CallToolResult, ListLanguagesOutput, error) {
	all := s.languages.All()
	output := ListLanguagesOutput{
		Default:   language.DefaultKey,
		Languages: all,
		Count:     len(all),
	}
	return toolResult(s.config.Logger, output, ListLanguagesOutput{})
}
