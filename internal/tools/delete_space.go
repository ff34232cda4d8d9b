package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/geniespace/genie-mcp/internal/genie"
)

// DeleteSpaceTool handles the delete_space MCP tool.
type DeleteSpaceTool struct {
	client *genie.Client
}

// NewDeleteSpaceTool creates the tool with its remote client.
func NewDeleteSpaceTool(client *genie.Client) *DeleteSpaceTool {
	return &DeleteSpaceTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteSpaceTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_space",
		mcp.WithDescription(
			"Move a Genie space to the trash. This is a soft delete; the space can "+
				"be restored from the workspace trash.",
		),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("ID of the space to trash"),
		),
	)
}

// Handle processes the delete_space tool call.
func (t *DeleteSpaceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spaceID := req.GetString("space_id", "")
	if spaceID == "" {
		return mcp.NewToolResultError("'space_id' is required"), nil
	}

	if err := t.client.TrashSpace(ctx, spaceID); err != nil {
		return errorResult(err)
	}
	return jsonResult(map[string]string{
		"status":  "success",
		"message": "Space " + spaceID + " moved to trash (restorable from the workspace trash)",
	})
}
