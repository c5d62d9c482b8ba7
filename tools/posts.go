package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerPostTools(s *server.MCPServer, deps Deps) {
	getFeedPosts := mcp.NewTool("get_feed_posts",
		mcp.WithDescription("Read recent posts from the LinkedIn feed."),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(10),
			mcp.Description("Maximum number of posts to return"),
		),
	)
	s.AddTool(getFeedPosts, logged("get_feed_posts", deps, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetFeedPosts(ctx, deps, req.GetInt("limit", 10))
	}))
}

func handleGetFeedPosts(ctx context.Context, deps Deps, limit int) (*mcp.CallToolResult, error) {
	sess, err := deps.Sessions.Acquire(ctx)
	if err != nil {
		return failure(err)
	}
	posts, err := sess.Client().GetFeedPosts(ctx, limit)
	if err != nil {
		return failure(err)
	}
	return successResult(map[string]any{"posts": posts, "count": len(posts)})
}
