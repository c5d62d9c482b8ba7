package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerProfileTools(s *server.MCPServer, deps Deps) {
	getProfile := mcp.NewTool("get_profile",
		mcp.WithDescription("Get a LinkedIn profile by public ID."),
		mcp.WithString("public_id",
			mcp.Required(),
			mcp.Description("The LinkedIn public identifier from the profile URL (e.g. 'john-doe-123abc' from linkedin.com/in/john-doe-123abc)"),
		),
	)
	s.AddTool(getProfile, logged("get_profile", deps, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		publicID, err := req.RequireString("public_id")
		if err != nil {
			return errorResult(codeValidation, "public_id is required")
		}
		return handleGetProfile(ctx, deps, publicID)
	}))

	getOwnProfile := mcp.NewTool("get_own_profile",
		mcp.WithDescription("Get the authenticated user's own LinkedIn profile."),
	)
	s.AddTool(getOwnProfile, logged("get_own_profile", deps, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetOwnProfile(ctx, deps)
	}))
}

func handleGetProfile(ctx context.Context, deps Deps, publicID string) (*mcp.CallToolResult, error) {
	sess, err := deps.Sessions.Acquire(ctx)
	if err != nil {
		return failure(err)
	}
	profile, err := sess.Client().GetProfile(ctx, publicID)
	if err != nil {
		return failure(err)
	}
	return successResult(profile)
}

func handleGetOwnProfile(ctx context.Context, deps Deps) (*mcp.CallToolResult, error) {
	sess, err := deps.Sessions.Acquire(ctx)
	if err != nil {
		return failure(err)
	}
	handle, err := deps.Identity.OwnHandle(ctx, sess)
	if err != nil {
		return failure(err)
	}
	profile, err := sess.Client().GetProfile(ctx, handle)
	if err != nil {
		return failure(err)
	}
	return successResult(profile)
}
