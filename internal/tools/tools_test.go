package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/geniespace/genie-mcp/internal/config"
	"github.com/geniespace/genie-mcp/internal/genie"
	"github.com/geniespace/genie-mcp/internal/space"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	if r == nil || len(r.Content) == 0 {
		t.Fatal("empty tool result")
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("no text content in tool result")
	return ""
}

func resultJSON(t *testing.T, r *mcp.CallToolResult) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(resultText(t, r)), &payload); err != nil {
		t.Fatalf("tool result is not JSON: %v", err)
	}
	return payload
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func TestSerializeConfigArgRichConfig(t *testing.T) {
	raw := `{
		"space_name": "Sales Space",
		"description": "Sales data for natural language queries",
		"purpose": "Answer questions",
		"tables": [{"catalog": "main", "schema": "sales", "table": "orders"}]
	}`
	serialized, cfg, err := serializeConfigArg(raw)
	if err != nil {
		t.Fatal(err)
	}
	if cfg == nil {
		t.Fatal("rich config should be parsed and returned")
	}
	if cfg.SpaceName != "Sales Space" {
		t.Errorf("space name = %q", cfg.SpaceName)
	}

	var doc space.WireDocument
	if err := json.Unmarshal([]byte(serialized), &doc); err != nil {
		t.Fatalf("serialized output is not a wire document: %v", err)
	}
	if doc.Version != space.WireVersion {
		t.Errorf("version = %d", doc.Version)
	}
	if len(doc.DataSources.Tables) != 1 || doc.DataSources.Tables[0].Identifier != "main.sales.orders" {
		t.Errorf("tables = %+v", doc.DataSources.Tables)
	}
}

func TestSerializeConfigArgWireDocumentPassThrough(t *testing.T) {
	raw := `{"version": 2, "data_sources": {"tables": [{"identifier": "a.b.c"}]}}`
	serialized, cfg, err := serializeConfigArg(raw)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != nil {
		t.Error("wire documents should pass through without a rich config")
	}
	if serialized != raw {
		t.Errorf("wire document was rewritten: %q", serialized)
	}
}

func TestSerializeConfigArgInvalid(t *testing.T) {
	if _, _, err := serializeConfigArg("{broken"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&genie.AuthenticationError{}, "authentication_error"},
		{&genie.SpaceNotFoundError{}, "space_not_found"},
		{&genie.RateLimitError{}, "rate_limit_error"},
		{&genie.ValidationError{}, "validation_error"},
		{&genie.TimeoutError{}, "timeout_error"},
		{&genie.APIError{}, "api_error"},
		{context.DeadlineExceeded, "error"},
	}
	for _, tt := range tests {
		if got := errorType(tt.err); got != tt.want {
			t.Errorf("errorType(%T) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestErrorTypeSeesThroughWrapping(t *testing.T) {
	// Client methods add call context with %w; the bucket must survive.
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("trashing space s1: %w", &genie.SpaceNotFoundError{Message: "gone"}), "space_not_found"},
		{fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", &genie.RateLimitError{})), "rate_limit_error"},
		{fmt.Errorf("asking question: %w", &genie.TimeoutError{}), "timeout_error"},
		{fmt.Errorf("plain: %w", context.Canceled), "error"},
	}
	for _, tt := range tests {
		if got := errorType(tt.err); got != tt.want {
			t.Errorf("errorType(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestErrorResultShape(t *testing.T) {
	r, err := errorResult(&genie.SpaceNotFoundError{Message: "space gone"})
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsError {
		t.Error("errorResult must mark the result as an error")
	}
	payload := resultJSON(t, r)
	errObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Fatalf("payload = %v, want an error object", payload)
	}
	if errObj["type"] != "space_not_found" || errObj["message"] != "space gone" {
		t.Errorf("error object = %v", errObj)
	}
}

// ─── Argument validation ─────────────────────────────────────────────────────

func TestCreateSpaceMissingArguments(t *testing.T) {
	tool := NewCreateSpaceTool(nil)

	r, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsError || !strings.Contains(resultText(t, r), "warehouse_id") {
		t.Errorf("expected a warehouse_id error, got %q", resultText(t, r))
	}

	r, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{"warehouse_id": "w1"}))
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsError || !strings.Contains(resultText(t, r), "config") {
		t.Errorf("expected a config error, got %q", resultText(t, r))
	}
}

func TestCreateSpaceRejectsEmptyTables(t *testing.T) {
	tool := NewCreateSpaceTool(nil)
	r, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"warehouse_id": "w1",
		"config":       `{"space_name": "X", "description": "Y", "purpose": "Z", "tables": []}`,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsError {
		t.Fatal("a rich config with no tables must be rejected before any remote call")
	}
	payload := resultJSON(t, r)
	errObj := payload["error"].(map[string]any)
	if errObj["type"] != "validation_error" {
		t.Errorf("error type = %v", errObj["type"])
	}
}

func TestUpdateSpaceRequiresSomething(t *testing.T) {
	tool := NewUpdateSpaceTool(nil)
	r, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"space_id": "s1"}))
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsError || !strings.Contains(resultText(t, r), "nothing to update") {
		t.Errorf("expected a nothing-to-update error, got %q", resultText(t, r))
	}
}

// ─── Remote-backed tools ─────────────────────────────────────────────────────

func newFakeGenieClient(t *testing.T, handler http.HandlerFunc) *genie.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return genie.NewClient(&config.Config{
		Host:    ts.URL,
		Token:   "test-token",
		Timeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestGetSpaceReturnsRawAndDecodedConfig(t *testing.T) {
	wireDoc := `{"version":2,"data_sources":{"tables":[{"identifier":"main.retail.orders"}]}}`
	client := newFakeGenieClient(t, func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{"space_id": "s1", "title": "Sales"}
		if r.URL.Query().Get("include_serialized_space") == "true" {
			resp["serialized_space"] = wireDoc
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	tool := NewGetSpaceTool(client)

	r, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"space_id":       "s1",
		"include_config": true,
	}))
	if err != nil {
		t.Fatal(err)
	}
	payload := resultJSON(t, r)
	if got := payload["serialized_space"]; got != wireDoc {
		t.Errorf("serialized_space = %v, want the raw wire document", got)
	}
	cfg, ok := payload["config"].(map[string]any)
	if !ok {
		t.Fatalf("config missing or not an object: %v", payload["config"])
	}
	tables, _ := cfg["tables"].([]any)
	if len(tables) != 1 {
		t.Errorf("decoded config tables = %v, want 1", cfg["tables"])
	}

	// Without include_config, neither form is present.
	r, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{"space_id": "s1"}))
	if err != nil {
		t.Fatal(err)
	}
	payload = resultJSON(t, r)
	if _, ok := payload["serialized_space"]; ok {
		t.Error("serialized_space present without include_config")
	}
	if _, ok := payload["config"]; ok {
		t.Error("config present without include_config")
	}
}

func TestDeleteSpaceClassifiesNotFound(t *testing.T) {
	client := newFakeGenieClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "space does not exist", "error_code": "RESOURCE_DOES_NOT_EXIST"}`))
	})
	tool := NewDeleteSpaceTool(client)

	r, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"space_id": "missing"}))
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsError {
		t.Fatal("expected an error result")
	}
	payload := resultJSON(t, r)
	errObj := payload["error"].(map[string]any)
	if errObj["type"] != "space_not_found" {
		t.Errorf("error type = %v, want space_not_found despite the wrapped client error", errObj["type"])
	}
}

func TestListWarehousesRecommends(t *testing.T) {
	client := newFakeGenieClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"warehouses": []map[string]any{
			{"id": "w1", "name": "dev", "state": "RUNNING", "cluster_size": "X-Small", "warehouse_type": "PRO"},
			{"id": "w2", "name": "prod", "state": "RUNNING", "cluster_size": "Large", "warehouse_type": "PRO"},
		}})
	})
	tool := NewListWarehousesTool(client)

	r, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"purpose": "production"}))
	if err != nil {
		t.Fatal(err)
	}
	payload := resultJSON(t, r)
	warehouses, _ := payload["warehouses"].([]any)
	if len(warehouses) != 2 {
		t.Fatalf("warehouses = %v", payload["warehouses"])
	}
	if got := payload["recommended_warehouse_id"]; got != "w2" {
		t.Errorf("recommended_warehouse_id = %v, want w2", got)
	}

	// Without a purpose there is no recommendation.
	r, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil {
		t.Fatal(err)
	}
	payload = resultJSON(t, r)
	if _, ok := payload["recommended_warehouse_id"]; ok {
		t.Error("recommendation present without a purpose")
	}

	// An unrecognized purpose is rejected before any remote call.
	r, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{"purpose": "staging"}))
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsError {
		t.Error("expected an error for an unknown purpose")
	}
}

// ─── Local configuration tools ───────────────────────────────────────────────

func TestValidateConfigTool(t *testing.T) {
	tool := NewValidateConfigTool()
	r, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"config": `{
			"space_name": "Sales Analytics Space",
			"description": "Order data for the retail analytics team",
			"purpose": "Revenue questions",
			"tables": [{"catalog": "main", "schema": "sales", "table": "orders"}],
			"instructions": [{"content": "Compute revenue from ` + "`orders.amount`" + ` and always exclude cancelled orders from totals"}],
			"example_sql_queries": [{"question": "Revenue?", "sql_query": "SELECT SUM(amount) FROM main.sales.orders"}]
		}`,
	}))
	if err != nil {
		t.Fatal(err)
	}

	payload := resultJSON(t, r)
	if payload["valid"] != true {
		t.Errorf("valid = %v (payload: %v)", payload["valid"], payload)
	}
	if payload["score"] != float64(100) {
		t.Errorf("score = %v, want 100", payload["score"])
	}
}

func TestValidateConfigToolInvalidDocument(t *testing.T) {
	tool := NewValidateConfigTool()
	r, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"config": `{"tables": []}`}))
	if err != nil {
		t.Fatal(err)
	}
	payload := resultJSON(t, r)
	if payload["valid"] != false {
		t.Error("config without tables must be invalid")
	}
	// Validation returns a report, not a tool error.
	if r.IsError {
		t.Error("an invalid config is a report, not a tool failure")
	}
}

func TestConfigSchemaTool(t *testing.T) {
	tool := NewConfigSchemaTool()
	r, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatal(err)
	}
	payload := resultJSON(t, r)
	for _, key := range []string{"properties", "best_practices", "validation_rules", "example"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("schema document missing %q", key)
		}
	}
}

func TestConfigTemplateToolListsDomains(t *testing.T) {
	tool := NewConfigTemplateTool()
	r, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil {
		t.Fatal(err)
	}
	payload := resultJSON(t, r)
	domains, ok := payload["domains"].([]any)
	if !ok || len(domains) == 0 {
		t.Errorf("payload = %v, want a domain list", payload)
	}
}

func TestConfigTemplateToolSubstitutes(t *testing.T) {
	tool := NewConfigTemplateTool()
	r, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"domain":      "sales",
		"catalog":     "main",
		"schema":      "retail",
		"table_names": []any{"orders"},
	}))
	if err != nil {
		t.Fatal(err)
	}
	text := resultText(t, r)
	if strings.Contains(text, "[CATALOG]") || strings.Contains(text, "[TABLE_NAME]") {
		t.Errorf("placeholders survived substitution:\n%s", text)
	}
	if !strings.Contains(text, "main.retail.orders") {
		t.Errorf("substituted identifier missing:\n%s", text)
	}
}

func TestConfigTemplateToolRawTemplate(t *testing.T) {
	tool := NewConfigTemplateTool()
	r, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"domain": "minimal"}))
	if err != nil {
		t.Fatal(err)
	}
	text := resultText(t, r)
	if !strings.Contains(text, "[CATALOG]") {
		t.Errorf("raw template should keep placeholders:\n%s", text)
	}
}

func TestConfigTemplateToolUnknownDomain(t *testing.T) {
	tool := NewConfigTemplateTool()
	r, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"domain": "astrology"}))
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsError {
		t.Error("unknown domain must be a tool error, not a fallback")
	}
}

func TestConfigTemplateToolCatalogWithoutSchema(t *testing.T) {
	tool := NewConfigTemplateTool()
	r, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"domain":  "sales",
		"catalog": "main",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsError {
		t.Error("catalog without schema must be rejected")
	}
}
