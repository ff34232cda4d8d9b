package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/geniespace/genie-mcp/internal/validate"
)

// ValidateConfigTool handles the validate_config MCP tool. Validation is
// purely local; no remote calls are made.
type ValidateConfigTool struct{}

// NewValidateConfigTool creates the tool.
func NewValidateConfigTool() *ValidateConfigTool {
	return &ValidateConfigTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ValidateConfigTool) Definition() mcp.Tool {
	return mcp.NewTool("validate_config",
		mcp.WithDescription(
			"Validate a space configuration before creating or updating a space. "+
				"Returns errors, warnings, a 0-100 quality score and improvement "+
				"recommendations. A config is valid when it has no errors; warnings "+
				"lower the score but do not block.",
		),
		mcp.WithString("config",
			mcp.Required(),
			mcp.Description("JSON space configuration to validate"),
		),
		mcp.WithBoolean("validate_sql",
			mcp.Description("Run SQL sanity checks on examples and snippets (default true)"),
		),
		mcp.WithString("catalog_name",
			mcp.Description("Expected catalog; tables elsewhere produce a warning"),
		),
	)
}

// Handle processes the validate_config tool call.
func (t *ValidateConfigTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("config", "")
	if raw == "" {
		return mcp.NewToolResultError("'config' is required"), nil
	}

	opts := validate.DefaultOptions()
	opts.ValidateSQL = req.GetBool("validate_sql", true)
	opts.CatalogName = req.GetString("catalog_name", "")

	report := validate.ValidateJSON([]byte(raw), opts)
	return jsonResult(report)
}
