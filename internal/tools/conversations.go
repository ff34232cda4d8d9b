package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/geniespace/genie-mcp/internal/genie"
)

// ListConversationsTool handles the list_conversations MCP tool.
type ListConversationsTool struct {
	client *genie.Client
}

// NewListConversationsTool creates the tool with its remote client.
func NewListConversationsTool(client *genie.Client) *ListConversationsTool {
	return &ListConversationsTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *ListConversationsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_conversations",
		mcp.WithDescription("List conversations in a Genie space, newest first, paginated."),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("ID of the space"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Number of conversations per page (platform default when omitted)"),
		),
		mcp.WithString("page_token",
			mcp.Description("Pagination token from a previous call"),
		),
	)
}

// Handle processes the list_conversations tool call.
func (t *ListConversationsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spaceID := req.GetString("space_id", "")
	if spaceID == "" {
		return mcp.NewToolResultError("'space_id' is required"), nil
	}

	resp, err := t.client.ListConversations(ctx, spaceID, req.GetInt("page_size", 0), req.GetString("page_token", ""))
	if err != nil {
		return errorResult(err)
	}

	conversations := make([]map[string]any, 0, len(resp.Conversations))
	for i := range resp.Conversations {
		c := &resp.Conversations[i]
		entry := map[string]any{
			"conversation_id": c.ConversationID,
			"title":           c.Title,
		}
		if c.CreatedTimestamp != nil {
			entry["created_at"] = *c.CreatedTimestamp
		}
		if c.UpdatedTimestamp != nil {
			entry["updated_at"] = *c.UpdatedTimestamp
		}
		conversations = append(conversations, entry)
	}

	payload := map[string]any{
		"space_id":      spaceID,
		"conversations": conversations,
	}
	if resp.NextPageToken != "" {
		payload["next_page_token"] = resp.NextPageToken
	}
	return jsonResult(payload)
}

// ConversationHistoryTool handles the get_conversation_history MCP tool.
type ConversationHistoryTool struct {
	client *genie.Client
}

// NewConversationHistoryTool creates the tool with its remote client.
func NewConversationHistoryTool(client *genie.Client) *ConversationHistoryTool {
	return &ConversationHistoryTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *ConversationHistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_conversation_history",
		mcp.WithDescription(
			"Fetch the full message history of a conversation, including each "+
				"message's status and any generated SQL.",
		),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("ID of the space"),
		),
		mcp.WithString("conversation_id",
			mcp.Required(),
			mcp.Description("ID of the conversation"),
		),
	)
}

// Handle processes the get_conversation_history tool call.
func (t *ConversationHistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spaceID := req.GetString("space_id", "")
	conversationID := req.GetString("conversation_id", "")
	if spaceID == "" || conversationID == "" {
		return mcp.NewToolResultError("'space_id' and 'conversation_id' are required"), nil
	}

	detail, err := t.client.GetConversation(ctx, spaceID, conversationID)
	if err != nil {
		return errorResult(err)
	}

	messages := make([]map[string]any, 0, len(detail.Messages))
	for i := range detail.Messages {
		msg := &detail.Messages[i]
		entry := map[string]any{
			"message_id": msg.MessageID,
			"content":    msg.Content,
			"status":     msg.Status,
		}
		if msg.Error != nil {
			entry["error"] = *msg.Error
		}
		if msg.CreatedTimestamp != nil {
			entry["created_at"] = *msg.CreatedTimestamp
		}
		for _, att := range msg.Attachments {
			if att.Query != nil {
				entry["sql_query"] = att.Query.Query
				break
			}
		}
		messages = append(messages, entry)
	}

	return jsonResult(map[string]any{
		"conversation_id": detail.ConversationID,
		"space_id":        spaceID,
		"title":           detail.Title,
		"messages":        messages,
	})
}
