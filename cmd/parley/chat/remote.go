package chatcmder

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/parleyco/parley/pkg/agent"
	"github.com/parleyco/parley/pkg/conversation"
)

// respondRequest is the request body for the API server's streaming endpoint.
type respondRequest struct {
	Input    string `json:"input"`
	Voice    string `json:"voice,omitempty"`
	Language string `json:"language,omitempty"`
}

// streamChunk is one NDJSON line of the streamed response.
type streamChunk struct {
	Text     string `json:"text,omitempty"`
	Index    int    `json:"index"`
	Done     bool   `json:"done"`
	Response string `json:"response,omitempty"`
}

// sendAndStream sends the input to the API server and streams fragments
// to stdout as they arrive. The completed exchange is recorded in the
// local conversation history.
func (c *chatCommander) sendAndStream(a *agent.Agent, input string) error {
	reqBody := respondRequest{
		Input:    input,
		Voice:    a.Voice().Key,
		Language: a.Language().Key,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	c.logger.Debug("sending respond request",
		zap.String("api_target", c.apiTarget),
		zap.String("voice", reqBody.Voice),
		zap.String("language", reqBody.Language),
	)

	url := c.apiTarget + "/v1/respond/stream"
	httpReq, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Timeout: time.Minute,
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sending request to API server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API server returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var fullContent strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var chunk streamChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			c.logger.Debug("failed to parse stream chunk",
				zap.Error(err),
				zap.String("line", string(line)),
			)
			continue
		}

		if chunk.Text != "" {
			fmt.Print(chunk.Text)
			fullContent.WriteString(chunk.Text)
		}

		if chunk.Done {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stream: %w", err)
	}

	history := a.History()
	history.Append(conversation.NewTurn(conversation.RoleUser, input))
	history.Append(conversation.NewTurn(conversation.RoleAssistant, strings.TrimSpace(fullContent.String())))

	return nil
}
