package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/geniespace/genie-mcp/internal/space"
)

// ConfigSchemaTool handles the get_config_schema MCP tool.
type ConfigSchemaTool struct{}

// NewConfigSchemaTool creates the tool.
func NewConfigSchemaTool() *ConfigSchemaTool {
	return &ConfigSchemaTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ConfigSchemaTool) Definition() mcp.Tool {
	return mcp.NewTool("get_config_schema",
		mcp.WithDescription(
			"Get the space configuration schema: field documentation, validation "+
				"rules, the quality-scoring rubric, best practices and a complete "+
				"example configuration.",
		),
	)
}

// Handle processes the get_config_schema tool call.
func (t *ConfigSchemaTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(space.SchemaDocument())
}
