package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/geniespace/genie-mcp/internal/conversation"
	"github.com/geniespace/genie-mcp/internal/genie"
)

// QueryResultsTool handles the get_query_results MCP tool: it re-fetches
// the result set of an already-answered message.
type QueryResultsTool struct {
	client *genie.Client
}

// NewQueryResultsTool creates the tool with its remote client.
func NewQueryResultsTool(client *genie.Client) *QueryResultsTool {
	return &QueryResultsTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *QueryResultsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_query_results",
		mcp.WithDescription(
			"Fetch the query results of a completed message. ask_genie and "+
				"continue_conversation already include results; use this to re-fetch "+
				"them later or to read a specific attachment. Results are capped at "+
				"5,000 rows by the platform.",
		),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("ID of the space"),
		),
		mcp.WithString("conversation_id",
			mcp.Required(),
			mcp.Description("ID of the conversation"),
		),
		mcp.WithString("message_id",
			mcp.Required(),
			mcp.Description("ID of the completed message"),
		),
		mcp.WithString("attachment_id",
			mcp.Description("Specific query attachment (defaults to the message's primary result)"),
		),
	)
}

// Handle processes the get_query_results tool call.
func (t *QueryResultsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spaceID := req.GetString("space_id", "")
	conversationID := req.GetString("conversation_id", "")
	messageID := req.GetString("message_id", "")
	if spaceID == "" || conversationID == "" || messageID == "" {
		return mcp.NewToolResultError("'space_id', 'conversation_id' and 'message_id' are required"), nil
	}

	qr, err := t.client.GetMessageQueryResult(ctx, spaceID, conversationID, messageID, req.GetString("attachment_id", ""))
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(conversation.ShapeQueryResult(qr))
}
