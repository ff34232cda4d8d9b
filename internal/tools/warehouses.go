package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/geniespace/genie-mcp/internal/genie"
)

// ListWarehousesTool handles the list_warehouses MCP tool.
type ListWarehousesTool struct {
	client *genie.Client
}

// NewListWarehousesTool creates the tool with its remote client.
func NewListWarehousesTool(client *genie.Client) *ListWarehousesTool {
	return &ListWarehousesTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *ListWarehousesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_warehouses",
		mcp.WithDescription(
			"List the workspace's SQL warehouses, for picking a warehouse_id for "+
				"create_space. Pass a purpose to also get a recommendation: "+
				"development prefers small running warehouses, production large ones.",
		),
		mcp.WithString("purpose",
			mcp.Description("Optional: 'development' or 'production' to recommend a warehouse"),
		),
	)
}

// Handle processes the list_warehouses tool call.
func (t *ListWarehousesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	purpose := req.GetString("purpose", "")
	if purpose != "" && purpose != "development" && purpose != "production" {
		return mcp.NewToolResultError("'purpose' must be 'development' or 'production'"), nil
	}

	warehouses, err := t.client.ListWarehouses(ctx)
	if err != nil {
		return errorResult(err)
	}

	list := make([]map[string]any, 0, len(warehouses))
	for _, w := range warehouses {
		list = append(list, map[string]any{
			"id":           w.ID,
			"name":         w.Name,
			"state":        w.State,
			"cluster_size": w.ClusterSize,
		})
	}

	payload := map[string]any{"warehouses": list}
	if purpose != "" {
		if id := genie.RecommendWarehouse(warehouses, purpose); id != "" {
			payload["recommended_warehouse_id"] = id
		}
	}
	return jsonResult(payload)
}
