// Package tools implements the MCP tool handlers for Genie space
// management: space CRUD, question asking, and configuration
// validation/templating.
//
// Each tool is a struct that receives its dependencies at construction
// and exposes a Definition for registration plus a Handle compatible
// with mcp-go's CallToolRequest signature. Every tool returns a
// JSON-serializable payload even on failure — structured error payloads,
// never bare stack traces.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/geniespace/genie-mcp/internal/genie"
	"github.com/geniespace/genie-mcp/internal/space"
)

// jsonResult marshals a payload as an indented JSON tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult shapes a failure as a structured JSON error payload.
func errorResult(err error) (*mcp.CallToolResult, error) {
	payload := map[string]any{
		"error": map[string]string{
			"type":    errorType(err),
			"message": err.Error(),
		},
	}
	data, mErr := json.MarshalIndent(payload, "", "  ")
	if mErr != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultError(string(data)), nil
}

// errorType names the taxonomy bucket of an error for callers that
// dispatch on it. Taxonomy errors arrive wrapped with call context, so
// each bucket is matched through the chain.
func errorType(err error) string {
	var (
		authErr       *genie.AuthenticationError
		notFoundErr   *genie.SpaceNotFoundError
		rateLimitErr  *genie.RateLimitError
		validationErr *genie.ValidationError
		generationErr *genie.GenerationError
		timeoutErr    *genie.TimeoutError
		apiErr        *genie.APIError
	)
	switch {
	case errors.As(err, &authErr):
		return "authentication_error"
	case errors.As(err, &notFoundErr):
		return "space_not_found"
	case errors.As(err, &rateLimitErr):
		return "rate_limit_error"
	case errors.As(err, &validationErr):
		return "validation_error"
	case errors.As(err, &generationErr):
		return "generation_error"
	case errors.As(err, &timeoutErr):
		return "timeout_error"
	case errors.As(err, &apiErr):
		return "api_error"
	default:
		return "error"
	}
}

// serializeConfigArg accepts either a rich space configuration or an
// already-serialized wire document and returns wire-document JSON ready
// for the platform, plus the rich config when one was supplied (nil for
// wire-document input).
func serializeConfigArg(raw string) (serialized string, cfg *space.Config, err error) {
	var sniff struct {
		Version     *int            `json:"version"`
		DataSources json.RawMessage `json:"data_sources"`
	}
	if err := json.Unmarshal([]byte(raw), &sniff); err != nil {
		return "", nil, fmt.Errorf("config is not valid JSON: %w", err)
	}

	// A version tag plus data_sources marks a wire document; pass it
	// through untouched so callers can round-trip exported configs.
	if sniff.Version != nil && sniff.DataSources != nil {
		return raw, nil, nil
	}

	var c space.Config
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return "", nil, fmt.Errorf("parsing space configuration: %w", err)
	}
	serialized, err = space.EncodeJSON(&c)
	if err != nil {
		return "", nil, err
	}
	return serialized, &c, nil
}

// spacePayload maps a remote space onto the tool-surface field names.
func spacePayload(s *genie.Space) map[string]any {
	payload := map[string]any{
		"space_id":     s.SpaceID,
		"title":        s.Title,
		"description":  s.Description,
		"warehouse_id": s.WarehouseID,
	}
	if s.OwnerUserID != nil {
		payload["owner_id"] = *s.OwnerUserID
	}
	if s.CreatedTimestamp != nil {
		payload["created_at"] = *s.CreatedTimestamp
	}
	if s.UpdatedTimestamp != nil {
		payload["updated_at"] = *s.UpdatedTimestamp
	}
	return payload
}
