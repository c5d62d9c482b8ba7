package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cwikio/Hexa-Puffs/voyager"
)

func registerMessagingTools(s *server.MCPServer, deps Deps) {
	getConversations := mcp.NewTool("get_conversations",
		mcp.WithDescription("List recent conversations from the LinkedIn messaging inbox."),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(20),
			mcp.Description("Maximum number of conversations to return"),
		),
	)
	s.AddTool(getConversations, logged("get_conversations", deps, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetConversations(ctx, deps, req.GetInt("limit", 20))
	}))

	getConversation := mcp.NewTool("get_conversation",
		mcp.WithDescription("Read the messages of one LinkedIn conversation."),
		mcp.WithString("conversation_id",
			mcp.Required(),
			mcp.Description("The conversation ID from get_conversations"),
		),
	)
	s.AddTool(getConversation, logged("get_conversation", deps, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("conversation_id")
		if err != nil {
			return errorResult(codeValidation, "conversation_id is required")
		}
		return handleGetConversation(ctx, deps, id)
	}))

	sendMessage := mcp.NewTool("send_message",
		mcp.WithDescription("Send a LinkedIn message to a recipient or an existing conversation."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The message text"),
		),
		mcp.WithString("recipient",
			mcp.Description("Recipient name or URN ID; names are resolved via search and conversation history"),
		),
		mcp.WithString("conversation_id",
			mcp.Description("Existing conversation to post into; alternative to recipient"),
		),
	)
	s.AddTool(sendMessage, logged("send_message", deps, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return errorResult(codeValidation, "text is required")
		}
		return handleSendMessage(ctx, deps, text, req.GetString("recipient", ""), req.GetString("conversation_id", ""))
	}))
}

func handleGetConversations(ctx context.Context, deps Deps, limit int) (*mcp.CallToolResult, error) {
	sess, err := deps.Sessions.Acquire(ctx)
	if err != nil {
		return failure(err)
	}
	conversations, err := sess.Client().GetConversations(ctx)
	if err != nil {
		return failure(err)
	}
	if limit > 0 && len(conversations) > limit {
		conversations = conversations[:limit]
	}

	type conversationView struct {
		ConversationID string          `json:"conversationId"`
		Participants   []string        `json:"participants"`
		LastMessage    voyager.Message `json:"lastMessage"`
		UnreadCount    int             `json:"unreadCount"`
	}
	views := make([]conversationView, 0, len(conversations))
	for _, conv := range conversations {
		view := conversationView{
			ConversationID: conv.ID,
			Participants:   []string{},
			LastMessage:    conv.LastMessage,
			UnreadCount:    conv.UnreadCount,
		}
		for _, p := range conv.Participants {
			if name := p.FullName(); name != "" {
				view.Participants = append(view.Participants, name)
			}
		}
		views = append(views, view)
	}
	return successResult(map[string]any{"conversations": views, "count": len(views)})
}

func handleGetConversation(ctx context.Context, deps Deps, conversationID string) (*mcp.CallToolResult, error) {
	sess, err := deps.Sessions.Acquire(ctx)
	if err != nil {
		return failure(err)
	}
	messages, err := sess.Client().GetConversation(ctx, conversationID)
	if err != nil {
		return failure(err)
	}
	return successResult(map[string]any{
		"conversationId": conversationID,
		"messages":       messages,
		"count":          len(messages),
	})
}

func handleSendMessage(ctx context.Context, deps Deps, text, recipient, conversationID string) (*mcp.CallToolResult, error) {
	// Validation happens before any session or network work.
	if strings.TrimSpace(text) == "" {
		return errorResult(codeValidation, "message text must not be empty")
	}
	if recipient == "" && conversationID == "" {
		return errorResult(codeValidation, "either recipient or conversation_id is required")
	}
	if recipient != "" && conversationID != "" {
		return errorResult(codeValidation, "recipient and conversation_id are mutually exclusive")
	}

	sess, err := deps.Sessions.Acquire(ctx)
	if err != nil {
		return failure(err)
	}

	send := voyager.SendRequest{Body: text, ConversationID: conversationID}
	if recipient != "" {
		id, err := deps.Resolver.Resolve(ctx, sess, recipient)
		if err != nil {
			return failure(err)
		}
		send.Recipients = []string{id}
	}

	outcome, err := sess.Client().SendMessage(ctx, send)
	if err != nil {
		return failure(err)
	}
	if outcome != voyager.SendSent {
		return errorResult(codeUpstream, "message rejected by LinkedIn")
	}
	return successResult(map[string]any{"sent": true})
}
