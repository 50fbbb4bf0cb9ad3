// Package mcp exposes the hub's local store to MCP clients over stdio.
package mcp

import (
	"context"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/meadbax/hub/internal/config"
	"github.com/meadbax/hub/internal/database"
	"github.com/meadbax/hub/internal/suggest"
)

const (
	serverName    = "hub"
	serverVersion = "0.1.0"
)

// Server implements an MCP server over stdio
type Server struct {
	db        *database.DB
	config    *config.Config
	generator *suggest.Generator
	now       func() time.Time
	mcp       *server.MCPServer
}

// New creates a new MCP server with every tool and resource registered
func New(db *database.DB, cfg *config.Config, generator *suggest.Generator) *Server {
	s := &Server{
		db:        db,
		config:    cfg,
		generator: generator,
		now:       time.Now,
		mcp: server.NewMCPServer(
			serverName,
			serverVersion,
			server.WithToolCapabilities(true),
			server.WithResourceCapabilities(false, false),
		),
	}
	s.registerHandlers()
	s.registerResources()
	return s
}

// Start runs the MCP server on stdio until ctx is done or stdin closes
func (s *Server) Start(ctx context.Context) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
}

// location is the zone dates are resolved in
func (s *Server) location() *time.Location {
	if s.config == nil {
		return time.Local
	}
	loc, err := s.config.Gmail.Location()
	if err != nil {
		return time.Local
	}
	return loc
}
