package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/geniespace/genie-mcp/internal/conversation"
	"github.com/geniespace/genie-mcp/internal/genie"
)

// ContinueConversationTool handles the continue_conversation MCP tool: a
// follow-up question in an existing conversation.
type ContinueConversationTool struct {
	orchestrator *conversation.Orchestrator
	timeout      time.Duration
	interval     time.Duration
}

// NewContinueConversationTool creates the tool with its orchestrator and
// the configured default timeout and poll interval.
func NewContinueConversationTool(o *conversation.Orchestrator, timeout, interval time.Duration) *ContinueConversationTool {
	return &ContinueConversationTool{orchestrator: o, timeout: timeout, interval: interval}
}

// Definition returns the MCP tool definition for registration.
func (t *ContinueConversationTool) Definition() mcp.Tool {
	return mcp.NewTool("continue_conversation",
		mcp.WithDescription(
			"Ask a follow-up question in an existing Genie conversation, preserving "+
				"its context. When conversation_id is omitted, the most recent "+
				"conversation in the space is continued; recency is tracked for 30 "+
				"minutes per space.",
		),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("ID of the space the conversation lives in"),
		),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The follow-up question"),
		),
		mcp.WithString("conversation_id",
			mcp.Description("Conversation to continue (defaults to the space's most recent)"),
		),
		mcp.WithNumber("timeout_seconds",
			mcp.Description("How long to wait for an answer (default 300)"),
		),
		mcp.WithNumber("poll_interval_seconds",
			mcp.Description("How often to check for completion (default 2)"),
		),
	)
}

// Handle processes the continue_conversation tool call.
func (t *ContinueConversationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spaceID := req.GetString("space_id", "")
	question := req.GetString("question", "")
	if spaceID == "" {
		return mcp.NewToolResultError("'space_id' is required"), nil
	}
	if question == "" {
		return mcp.NewToolResultError("'question' is required"), nil
	}

	conversationID := req.GetString("conversation_id", "")
	if conversationID == "" {
		tracked, ok := t.orchestrator.ActiveConversation(spaceID)
		if !ok {
			return errorResult(&genie.ValidationError{Message: "no recent conversation in this space; pass conversation_id or use ask_genie to start one"})
		}
		conversationID = tracked.ConversationID
	}

	timeout, interval := pollArgs(req, t.timeout, t.interval)
	result, err := t.orchestrator.ContinueConversation(ctx, spaceID, conversationID, question, timeout, interval)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(result)
}
