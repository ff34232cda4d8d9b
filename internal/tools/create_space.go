package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/geniespace/genie-mcp/internal/genie"
)

// CreateSpaceTool handles the create_space MCP tool.
type CreateSpaceTool struct {
	client *genie.Client
}

// NewCreateSpaceTool creates the tool with its remote client.
func NewCreateSpaceTool(client *genie.Client) *CreateSpaceTool {
	return &CreateSpaceTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateSpaceTool) Definition() mcp.Tool {
	return mcp.NewTool("create_space",
		mcp.WithDescription(
			"Create a new Genie space. Accepts either a rich space configuration "+
				"(space_name, tables, instructions, example_sql_queries, ...) or an "+
				"already-serialized wire document; rich configs are converted to the "+
				"platform's version-2 format automatically. Note: example query "+
				"descriptions are not stored by the platform and are dropped.",
		),
		mcp.WithString("warehouse_id",
			mcp.Required(),
			mcp.Description("SQL warehouse ID used to run generated queries"),
		),
		mcp.WithString("config",
			mcp.Required(),
			mcp.Description("JSON space configuration or serialized wire document"),
		),
		mcp.WithString("title",
			mcp.Description("Space title (defaults to the config's space_name)"),
		),
		mcp.WithString("description",
			mcp.Description("Space description (defaults to the config's description)"),
		),
		mcp.WithString("parent_path",
			mcp.Description("Optional parent path in the workspace"),
		),
	)
}

// Handle processes the create_space tool call.
func (t *CreateSpaceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	warehouseID := req.GetString("warehouse_id", "")
	rawConfig := req.GetString("config", "")

	if warehouseID == "" {
		return mcp.NewToolResultError("'warehouse_id' is required"), nil
	}
	if rawConfig == "" {
		return mcp.NewToolResultError("'config' is required"), nil
	}

	serialized, cfg, err := serializeConfigArg(rawConfig)
	if err != nil {
		return errorResult(err)
	}

	title := req.GetString("title", "")
	description := req.GetString("description", "")
	if cfg != nil {
		if len(cfg.Tables) == 0 {
			return errorResult(&genie.ValidationError{Message: "configuration has no tables; a space needs at least one"})
		}
		if title == "" {
			title = cfg.SpaceName
		}
		if description == "" {
			description = cfg.Description
		}
	}

	created, err := t.client.CreateSpace(ctx, genie.CreateSpaceRequest{
		WarehouseID:     warehouseID,
		SerializedSpace: serialized,
		Title:           title,
		Description:     description,
		ParentPath:      req.GetString("parent_path", ""),
	})
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(spacePayload(created))
}
