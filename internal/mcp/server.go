// Package mcp exposes ticket operations as MCP tools over stdio so coding
// agents can drive the tracker.
//
// This is pure wiring: every tool validates its input, calls the store, and
// returns the ticket's wire JSON. No business logic lives here.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/cmwen/minpmt/internal/config"
	"github.com/cmwen/minpmt/internal/store"
)

// serverVersion is reported during the MCP handshake.
const serverVersion = "0.1.0"

// Server wraps the MCP server with the ticket store it operates on.
type Server struct {
	mcp *server.MCPServer
	cfg config.Config
	st  *store.Store
}

// NewServer creates the MCP server with all ticket tools registered.
func NewServer(cfg config.Config, st *store.Store) *Server {
	s := &Server{
		mcp: server.NewMCPServer(
			"min-pmt",
			serverVersion,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
			server.WithInstructions(
				"Minimal project management: tickets are markdown files with "+
					"frontmatter in the project's ticket folder. Use list-tickets "+
					"to see current work, move-ticket to change status.",
			),
		),
		cfg: cfg,
		st:  st,
	}

	s.registerTools()

	return s
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}
