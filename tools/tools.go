// Package tools exposes the LinkedIn operations as MCP tools.
//
// Every handler follows the same pattern: validate input, acquire the shared
// session, call the upstream through the session's client, and wrap the
// outcome in the standard response envelope. All decision logic (repair,
// resolution, extraction) lives in the session, resolve and identity
// packages; this layer is field renaming and error mapping only.
package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cwikio/Hexa-Puffs/identity"
	"github.com/cwikio/Hexa-Puffs/logging"
	"github.com/cwikio/Hexa-Puffs/resolve"
	"github.com/cwikio/Hexa-Puffs/session"
)

// Deps aggregates the collaborators shared by every tool handler.
type Deps struct {
	Sessions *session.Manager
	Resolver *resolve.Resolver
	Identity *identity.Extractor
	Logger   logging.Logger
}

// Register adds every tool to the MCP server.
func Register(s *server.MCPServer, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = logging.NoOpLogger{}
	}
	registerProfileTools(s, deps)
	registerSearchTools(s, deps)
	registerMessagingTools(s, deps)
	registerNetworkTools(s, deps)
	registerPostTools(s, deps)
}

type handler = server.ToolHandlerFunc

// logged wraps a handler with duration logging.
func logged(name string, deps Deps, h handler) handler {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		res, err := h(ctx, req)
		deps.Logger.Info("tool call completed", "tool", name, "duration", time.Since(start), "error", err != nil)
		return res, err
	}
}
