package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/geniespace/genie-mcp/internal/genie"
)

// ListSpacesTool handles the list_spaces MCP tool.
type ListSpacesTool struct {
	client *genie.Client
}

// NewListSpacesTool creates the tool with its remote client.
func NewListSpacesTool(client *genie.Client) *ListSpacesTool {
	return &ListSpacesTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *ListSpacesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_spaces",
		mcp.WithDescription("List Genie spaces in the workspace, paginated."),
		mcp.WithNumber("page_size",
			mcp.Description("Number of spaces per page (platform default when omitted)"),
		),
		mcp.WithString("page_token",
			mcp.Description("Pagination token from a previous call"),
		),
	)
}

// Handle processes the list_spaces tool call.
func (t *ListSpacesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := t.client.ListSpaces(ctx, req.GetInt("page_size", 0), req.GetString("page_token", ""))
	if err != nil {
		return errorResult(err)
	}

	spaces := make([]map[string]any, 0, len(resp.Spaces))
	for i := range resp.Spaces {
		spaces = append(spaces, map[string]any{
			"space_id":     resp.Spaces[i].SpaceID,
			"title":        resp.Spaces[i].Title,
			"description":  resp.Spaces[i].Description,
			"warehouse_id": resp.Spaces[i].WarehouseID,
		})
	}

	payload := map[string]any{"spaces": spaces}
	if resp.NextPageToken != "" {
		payload["next_page_token"] = resp.NextPageToken
	}
	return jsonResult(payload)
}
