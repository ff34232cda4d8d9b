// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it loads configuration, builds the
// remote client, rate limiter, conversation tracker and orchestrator,
// and injects them into the tools. No business logic lives here — only
// wiring.
package server

import (
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/geniespace/genie-mcp/internal/config"
	"github.com/geniespace/genie-mcp/internal/conversation"
	"github.com/geniespace/genie-mcp/internal/genie"
	"github.com/geniespace/genie-mcp/internal/ratelimit"
	"github.com/geniespace/genie-mcp/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Question submission is throttled client-side; the platform enforces
// its own limits on top of this.
const (
	questionsPerWindow = 5
	questionWindow     = time.Minute
)

func noop() {}

// New creates and configures the MCP server with all tools registered.
// This is the single place where all dependencies are resolved.
//
// The returned cleanup function flushes the logger and must be called
// on shutdown (typically via defer). It is always non-nil.
func New() (*server.MCPServer, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, noop, err
	}

	logger, err := newLogger()
	if err != nil {
		return nil, noop, fmt.Errorf("creating logger: %w", err)
	}
	cleanup := func() { _ = logger.Sync() }

	// --- Create shared dependencies ---

	client := genie.NewClient(cfg, logger)
	limiter := ratelimit.New(questionsPerWindow, questionWindow)
	tracker := conversation.NewTracker(conversation.DefaultTTL)
	orchestrator := conversation.NewOrchestrator(client, limiter, tracker, logger)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"genie-mcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register space management tools ---

	createSpace := tools.NewCreateSpaceTool(client)
	s.AddTool(createSpace.Definition(), createSpace.Handle)

	listSpaces := tools.NewListSpacesTool(client)
	s.AddTool(listSpaces.Definition(), listSpaces.Handle)

	getSpace := tools.NewGetSpaceTool(client)
	s.AddTool(getSpace.Definition(), getSpace.Handle)

	updateSpace := tools.NewUpdateSpaceTool(client)
	s.AddTool(updateSpace.Definition(), updateSpace.Handle)

	deleteSpace := tools.NewDeleteSpaceTool(client)
	s.AddTool(deleteSpace.Definition(), deleteSpace.Handle)

	listWarehouses := tools.NewListWarehousesTool(client)
	s.AddTool(listWarehouses.Definition(), listWarehouses.Handle)

	// --- Register conversation tools ---

	ask := tools.NewAskGenieTool(orchestrator, cfg.Timeout, cfg.PollInterval)
	s.AddTool(ask.Definition(), ask.Handle)

	continueConv := tools.NewContinueConversationTool(orchestrator, cfg.Timeout, cfg.PollInterval)
	s.AddTool(continueConv.Definition(), continueConv.Handle)

	queryResults := tools.NewQueryResultsTool(client)
	s.AddTool(queryResults.Definition(), queryResults.Handle)

	listConversations := tools.NewListConversationsTool(client)
	s.AddTool(listConversations.Definition(), listConversations.Handle)

	history := tools.NewConversationHistoryTool(client)
	s.AddTool(history.Definition(), history.Handle)

	// --- Register configuration tools ---
	//
	// These are purely local: they validate, document and template
	// space configurations without touching the remote platform.

	validateConfig := tools.NewValidateConfigTool()
	s.AddTool(validateConfig.Definition(), validateConfig.Handle)

	configSchema := tools.NewConfigSchemaTool()
	s.AddTool(configSchema.Definition(), configSchema.Handle)

	configTemplate := tools.NewConfigTemplateTool()
	s.AddTool(configTemplate.Definition(), configTemplate.Handle)

	return s, cleanup, nil
}

// newLogger builds a structured logger that writes to stderr. Stdout is
// reserved for the MCP stdio transport and must stay clean.
func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}

func serverInstructions() string {
	return `This server manages Genie spaces: natural-language query interfaces over
warehouse tables.

Typical workflow:
1. get_config_template or get_config_schema to draft a space configuration.
2. validate_config to check it (fix errors; warnings lower the quality score
   but do not block).
3. create_space with a warehouse_id (list_warehouses finds one) and the
   configuration.
4. ask_genie to ask questions; continue_conversation for follow-ups in the
   same context.

Questions are throttled to 5 per minute; calls beyond that wait rather than
fail. Answers can take a while to generate — raise timeout_seconds for
complex questions.`
}
