// Genie MCP server.
//
// An MCP server that manages Genie spaces on a Databricks workspace:
// space CRUD, natural-language questions with SQL generation and query
// results, and local configuration validation/templating.
//
// Usage:
//
//	genie-mcp serve      # Start MCP server (stdio transport)
//	genie-mcp version    # Print the version
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	geniesrv "github.com/geniespace/genie-mcp/internal/server"
)

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
	case "--version", "-v", "version":
		fmt.Printf("genie-mcp v%s\n", geniesrv.Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, cleanup, err := geniesrv.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `genie-mcp v%s — Genie space management MCP server

Usage:
  genie-mcp serve      Start the MCP server (stdio transport)
  genie-mcp version    Print the version

Configuration (environment, .env supported):
  DATABRICKS_HOST             Workspace URL (required)
  DATABRICKS_TOKEN            Personal access token
  DATABRICKS_CLIENT_ID        OAuth M2M client ID (with CLIENT_SECRET,
  DATABRICKS_CLIENT_SECRET    alternative to TOKEN)
  DATABRICKS_TIMEOUT_SECONDS        Question timeout in seconds (default 300)
  DATABRICKS_POLL_INTERVAL_SECONDS  Poll interval in seconds (default 2)

MCP client config:

  {
    "mcpServers": {
      "genie": {
        "command": "genie-mcp",
        "args": ["serve"],
        "env": { "DATABRICKS_HOST": "...", "DATABRICKS_TOKEN": "..." }
      }
    }
  }
`, geniesrv.Version)
}
