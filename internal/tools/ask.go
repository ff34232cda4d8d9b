package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/geniespace/genie-mcp/internal/conversation"
)

// AskGenieTool handles the ask_genie MCP tool: it starts a new
// conversation and waits for the answer.
type AskGenieTool struct {
	orchestrator *conversation.Orchestrator
	timeout      time.Duration
	interval     time.Duration
}

// NewAskGenieTool creates the tool with its orchestrator and the
// configured default timeout and poll interval.
func NewAskGenieTool(o *conversation.Orchestrator, timeout, interval time.Duration) *AskGenieTool {
	return &AskGenieTool{orchestrator: o, timeout: timeout, interval: interval}
}

// Definition returns the MCP tool definition for registration.
func (t *AskGenieTool) Definition() mcp.Tool {
	return mcp.NewTool("ask_genie",
		mcp.WithDescription(
			"Ask a natural-language question in a Genie space. Starts a new "+
				"conversation, waits for the engine to answer, and returns the "+
				"generated SQL and query results when available. Use "+
				"continue_conversation for follow-up questions.",
		),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("ID of the space to query"),
		),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The natural-language question"),
		),
		mcp.WithNumber("timeout_seconds",
			mcp.Description("How long to wait for an answer (default 300)"),
		),
		mcp.WithNumber("poll_interval_seconds",
			mcp.Description("How often to check for completion (default 2)"),
		),
	)
}

// Handle processes the ask_genie tool call.
func (t *AskGenieTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spaceID := req.GetString("space_id", "")
	question := req.GetString("question", "")
	if spaceID == "" {
		return mcp.NewToolResultError("'space_id' is required"), nil
	}
	if question == "" {
		return mcp.NewToolResultError("'question' is required"), nil
	}

	timeout, interval := pollArgs(req, t.timeout, t.interval)
	result, err := t.orchestrator.AskQuestion(ctx, spaceID, question, timeout, interval)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(result)
}

// pollArgs resolves per-call timeout and interval overrides, falling
// back to the configured defaults for absent or non-positive values.
func pollArgs(req mcp.CallToolRequest, defTimeout, defInterval time.Duration) (timeout, interval time.Duration) {
	timeout = defTimeout
	interval = defInterval
	if secs := req.GetInt("timeout_seconds", 0); secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}
	if secs := req.GetInt("poll_interval_seconds", 0); secs > 0 {
		interval = time.Duration(secs) * time.Second
	}
	return timeout, interval
}
