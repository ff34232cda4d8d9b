package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/geniespace/genie-mcp/internal/space"
)

// ConfigTemplateTool handles the get_config_template MCP tool.
type ConfigTemplateTool struct{}

// NewConfigTemplateTool creates the tool.
func NewConfigTemplateTool() *ConfigTemplateTool {
	return &ConfigTemplateTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ConfigTemplateTool) Definition() mcp.Tool {
	return mcp.NewTool("get_config_template",
		mcp.WithDescription(
			"Get a starter space configuration for a domain ("+
				strings.Join(space.Domains(), ", ")+"). With catalog and schema, "+
				"the template's [CATALOG], [SCHEMA] and [TABLE_NAME] placeholders "+
				"are substituted to produce a ready-to-validate configuration; "+
				"otherwise the raw template is returned with placeholders intact. "+
				"Call without a domain to list the available domains.",
		),
		mcp.WithString("domain",
			mcp.Description("Template domain (omit to list available domains)"),
		),
		mcp.WithString("catalog",
			mcp.Description("Catalog to substitute for [CATALOG]"),
		),
		mcp.WithString("schema",
			mcp.Description("Schema to substitute for [SCHEMA]"),
		),
		mcp.WithArray("table_names",
			mcp.Description("Table names to substitute for [TABLE_NAME] (first name) and to list as data sources"),
			mcp.WithStringItems(),
		),
		mcp.WithString("space_name",
			mcp.Description("Override the generated space name"),
		),
		mcp.WithString("description",
			mcp.Description("Override the template description"),
		),
	)
}

// Handle processes the get_config_template tool call.
func (t *ConfigTemplateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	domain := req.GetString("domain", "")
	if domain == "" {
		return jsonResult(map[string]any{"domains": space.Domains()})
	}

	catalog := req.GetString("catalog", "")
	schema := req.GetString("schema", "")

	if catalog == "" && schema == "" {
		cfg, err := space.Template(domain)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]any{
			"domain":   domain,
			"template": cfg,
			"note":     "replace the [CATALOG], [SCHEMA] and [TABLE_NAME] placeholders before use",
		})
	}

	if catalog == "" || schema == "" {
		return mcp.NewToolResultError("'catalog' and 'schema' must be provided together"), nil
	}

	cfg, err := space.FromTemplate(domain, catalog, schema,
		req.GetStringSlice("table_names", nil),
		req.GetString("space_name", ""),
		req.GetString("description", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"domain":   domain,
		"template": cfg,
	})
}
