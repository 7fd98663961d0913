package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/parleyco/parley/pkg/agent"
)

var (
	respondToolName    = "respond"
	respondDescription = "Generate the voice agent's response for a given input. Optionally selects a voice profile and language; returns the full response text along with the resolved voice and language."
)

// RespondInput represents the input arguments for the respond tool.
type RespondInput struct {
	Input    string `json:"input" jsonschema:"the user input text to respond to"`
	Voice    string `json:"voice,omitempty" jsonschema:"voice profile key (default: friendly)"`
	Language string `json:"language,omitempty" jsonschema:"language key (default: en)"`
}

// RespondOutput represents the output of the respond tool.
type RespondOutput struct {
	Response string `json:"response"`
	Voice    string `json:"voice"`
	Language string `json:"language"`
	Greeting string `json:"greeting"`
}

// handleRespond processes a respond request.
func (s *Server) handleRespond(_ context.Context, _ *mcp.CallToolRequest, input RespondInput) (*mcp.CallToolResult, RespondOutput, error) {
	logger := s.config.Logger

	voiceKey := input.Voice
	if voiceKey == "" {
		voiceKey = s.voices.Default().Key
	}
	langKey := input.Language
	if langKey == "" {
		langKey = s.languages.Default().Key
	}

	logger.Debug("MCP respond request",
		zap.String("voice", voiceKey),
		zap.String("language", langKey),
	)

	v, err := s.voices.Get(voiceKey)
	if err != nil {
		return toolError(fmt.Sprintf("Unknown voice: %v", err)), RespondOutput{}, nil
	}
	l, err := s.languages.Get(langKey)
	if err != nil {
		return toolError(fmt.Sprintf("Unknown language: %v", err)), RespondOutput{}, nil
	}

	output := RespondOutput{
		Response: agent.Respond(input.Input),
		Voice:    v.Key,
		Language: l.Key,
		Greeting: l.Greeting,
	}

	return toolResult(logger, output, RespondOutput{})
}

// toolError wraps an error message in an MCP error result.
func toolError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
	}
}

// toolResult serializes the structured output as JSON for the text field.
// Per MCP spec: tools returning structured content should also return
// serialized JSON in a TextContent block for backwards compatibility.
func toolResult[T any](logger *zap.Logger, output, zero T) (*mcp.CallToolResult, T, error) {
	jsonBytes, err := json.Marshal(output)
	if err != nil {
		logger.Error("failed to marshal tool output", zap.Error(err))
		return toolError(fmt.Sprintf("Failed to serialize results: %v", err)), zero, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
