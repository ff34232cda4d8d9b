package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/geniespace/genie-mcp/internal/genie"
	"github.com/geniespace/genie-mcp/internal/space"
)

// GetSpaceTool handles the get_space MCP tool.
type GetSpaceTool struct {
	client *genie.Client
}

// NewGetSpaceTool creates the tool with its remote client.
func NewGetSpaceTool(client *genie.Client) *GetSpaceTool {
	return &GetSpaceTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *GetSpaceTool) Definition() mcp.Tool {
	return mcp.NewTool("get_space",
		mcp.WithDescription(
			"Get a Genie space's metadata. With include_config, also fetches the "+
				"serialized configuration and returns it both raw (serialized_space, "+
				"suitable for passing back to update_space verbatim) and decoded "+
				"into the rich format (config). The "+
				"decode is lossy: multi-variant sample questions keep only their "+
				"first variant and narrative text instructions come back as opaque "+
				"text rather than reconstructed fields.",
		),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("ID of the space to fetch"),
		),
		mcp.WithBoolean("include_config",
			mcp.Description("Also fetch and decode the space configuration"),
		),
	)
}

// Handle processes the get_space tool call.
func (t *GetSpaceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spaceID := req.GetString("space_id", "")
	if spaceID == "" {
		return mcp.NewToolResultError("'space_id' is required"), nil
	}
	includeConfig := req.GetBool("include_config", false)

	s, err := t.client.GetSpace(ctx, spaceID, includeConfig)
	if err != nil {
		return errorResult(err)
	}

	payload := spacePayload(s)
	if includeConfig && s.SerializedSpace != "" {
		cfg, err := space.DecodeJSON([]byte(s.SerializedSpace))
		if err != nil {
			return errorResult(err)
		}
		payload["config"] = cfg
		// The raw wire document round-trips verbatim through
		// update_space; the decoded config does not.
		payload["serialized_space"] = s.SerializedSpace
	}
	return jsonResult(payload)
}
