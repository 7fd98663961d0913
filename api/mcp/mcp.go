// Package mcp provides an MCP (Model Context Protocol) server for the
// voice agent, so MCP clients can generate responses and inspect the
// voice and language catalogs.
package mcp

import (
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/parleyco/parley/pkg/language"
	"github.com/parleyco/parley/pkg/utils"
	"github.com/parleyco/parley/pkg/voice"
)

type Config struct {
	// Noop for empty MCP server
	Noop bool

	// Logger is the configured zap logger
	Logger *zap.Logger
}

type Server struct {
	config    Config
	voices    *voice.Registry
	languages *language.Registry
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the respond and catalog tools.
func NewServer(c Config) (*Server, error) {
	s := &Server{
		config:    c,
		voices:    voice.NewRegistry(),
		languages: language.NewRegistry(),
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "parley",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	if c.Noop {
		// return the empty MCP server with no tools configured
		// if the noop flag is set (i.e., MCP capabilities are disabled)
		s.mcpServer = mcpServer
		return s, nil
	}

	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        respondToolName,
		Description: respondDescription,
	}, s.handleRespond)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        listVoicesToolName,
		Description: listVoicesDescription,
	}, s.handleListVoices)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        listLanguagesToolName,
		Description: listLanguagesDescription,
	}, s.handleListLanguages)

	s.mcpServer = mcpServer

	// Create a streamable HTTP net/http handler for stateless operations
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server, or nil when MCP
// capabilities are disabled.
func (s *Server) Handler() http.Handler {
	if s.handler == nil {
		return nil
	}
	return s.handler
}
