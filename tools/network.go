package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// maxInviteNoteLen is the upstream limit on connection request notes.
const maxInviteNoteLen = 300

func registerNetworkTools(s *server.MCPServer, deps Deps) {
	getConnections := mcp.NewTool("get_connections",
		mcp.WithDescription("List the authenticated user's LinkedIn connections."),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(50),
			mcp.Description("Maximum number of connections to return"),
		),
	)
	s.AddTool(getConnections, logged("get_connections", deps, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetConnections(ctx, deps, req.GetInt("limit", 50))
	}))

	sendInvite := mcp.NewTool("send_connection_request",
		mcp.WithDescription("Send a connection request to a LinkedIn user."),
		mcp.WithString("profile_public_id",
			mcp.Required(),
			mcp.Description("The public ID of the person to connect with"),
		),
		mcp.WithString("message",
			mcp.Description("Optional personalized note (max 300 characters)"),
		),
	)
	s.AddTool(sendInvite, logged("send_connection_request", deps, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		publicID, err := req.RequireString("profile_public_id")
		if err != nil {
			return errorResult(codeValidation, "profile_public_id is required")
		}
		return handleSendConnectionRequest(ctx, deps, publicID, req.GetString("message", ""))
	}))
}

func handleGetConnections(ctx context.Context, deps Deps, limit int) (*mcp.CallToolResult, error) {
	sess, err := deps.Sessions.Acquire(ctx)
	if err != nil {
		return failure(err)
	}
	// Listing connections needs the account's own URN id first.
	ownID, err := deps.Identity.OwnID(ctx, sess)
	if err != nil {
		return failure(err)
	}
	connections, err := sess.Client().GetProfileConnections(ctx, ownID, limit)
	if err != nil {
		return failure(err)
	}
	return successResult(map[string]any{"connections": connections, "count": len(connections)})
}

func handleSendConnectionRequest(ctx context.Context, deps Deps, publicID, message string) (*mcp.CallToolResult, error) {
	if len(message) > maxInviteNoteLen {
		return errorResult(codeValidation, "connection request message must be 300 characters or fewer")
	}
	sess, err := deps.Sessions.Acquire(ctx)
	if err != nil {
		return failure(err)
	}
	if err := sess.Client().AddConnection(ctx, publicID, message); err != nil {
		return failure(err)
	}
	return successResult(map[string]any{"sent": true, "profilePublicId": publicID})
}
