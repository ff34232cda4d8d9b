package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/geniespace/genie-mcp/internal/genie"
)

// UpdateSpaceTool handles the update_space MCP tool.
type UpdateSpaceTool struct {
	client *genie.Client
}

// NewUpdateSpaceTool creates the tool with its remote client.
func NewUpdateSpaceTool(client *genie.Client) *UpdateSpaceTool {
	return &UpdateSpaceTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateSpaceTool) Definition() mcp.Tool {
	return mcp.NewTool("update_space",
		mcp.WithDescription(
			"Update an existing Genie space. Only the provided fields change; a new "+
				"config replaces the space's stored configuration wholesale. Accepts "+
				"rich configs or serialized wire documents, same as create_space.",
		),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("ID of the space to update"),
		),
		mcp.WithString("config",
			mcp.Description("Replacement JSON space configuration or wire document"),
		),
		mcp.WithString("title",
			mcp.Description("New space title"),
		),
		mcp.WithString("description",
			mcp.Description("New space description"),
		),
		mcp.WithString("warehouse_id",
			mcp.Description("New SQL warehouse ID"),
		),
	)
}

// Handle processes the update_space tool call.
func (t *UpdateSpaceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spaceID := req.GetString("space_id", "")
	if spaceID == "" {
		return mcp.NewToolResultError("'space_id' is required"), nil
	}

	update := genie.UpdateSpaceRequest{
		Title:       req.GetString("title", ""),
		Description: req.GetString("description", ""),
		WarehouseID: req.GetString("warehouse_id", ""),
	}

	if rawConfig := req.GetString("config", ""); rawConfig != "" {
		serialized, cfg, err := serializeConfigArg(rawConfig)
		if err != nil {
			return errorResult(err)
		}
		if cfg != nil && len(cfg.Tables) == 0 {
			return errorResult(&genie.ValidationError{Message: "configuration has no tables; a space needs at least one"})
		}
		update.SerializedSpace = serialized
	}

	if update == (genie.UpdateSpaceRequest{}) {
		return mcp.NewToolResultError("nothing to update: provide at least one of config, title, description, warehouse_id"), nil
	}

	updated, err := t.client.UpdateSpace(ctx, spaceID, update)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(spacePayload(updated))
}
