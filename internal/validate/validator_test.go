package validate

import (
	"strings"
	"testing"

	"github.com/geniespace/genie-mcp/internal/space"
)

// ─── Test fixtures ───────────────────────────────────────────────────────────

// goodConfig passes every stage with a perfect score.
func goodConfig() *space.Config {
	return &space.Config{
		SpaceName:   "Sales Analytics Space",
		Description: "Order and customer data for the retail analytics team",
		Purpose:     "Answer revenue questions",
		Tables: []space.Table{
			{Catalog: "main", Schema: "sales", Table: "orders"},
			{Catalog: "main", Schema: "sales", Table: "customers"},
		},
		JoinSpecifications: []space.JoinSpec{
			{LeftTable: "main.sales.orders", RightTable: "main.sales.customers", JoinCondition: "orders.customer_id = customers.id"},
		},
		Instructions: []space.Instruction{
			{Content: "Always compute revenue from `orders.amount` and exclude rows where `orders.status` equals cancelled"},
		},
		ExampleSQLQueries: []space.ExampleQuery{
			{Question: "Total revenue?", SQLQuery: "SELECT SUM(amount) FROM main.sales.orders"},
		},
	}
}

func hasSubstring(items []string, sub string) bool {
	for _, s := range items {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ─── Stage scoring ───────────────────────────────────────────────────────────

func TestValidateGoodConfig(t *testing.T) {
	r := Validate(goodConfig(), DefaultOptions())

	if !r.Valid {
		t.Errorf("valid = false, errors: %v", r.Errors)
	}
	if r.Score != 100 {
		t.Errorf("score = %d, want 100 (warnings: %v)", r.Score, r.Warnings)
	}
	if len(r.Errors) != 0 {
		t.Errorf("errors = %v, want none", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", r.Warnings)
	}
}

func TestValidateNoTables(t *testing.T) {
	cfg := goodConfig()
	cfg.Tables = nil
	cfg.JoinSpecifications = nil
	r := Validate(cfg, DefaultOptions())

	if r.Valid {
		t.Error("a config with no tables must be invalid")
	}
	if !hasSubstring(r.Errors, "No tables") {
		t.Errorf("errors = %v, want a no-tables error", r.Errors)
	}
	if r.Score != 60 {
		t.Errorf("score = %d, want 60 (completeness 100-40, other stages untouched)", r.Score)
	}
}

// The overall score is the worst stage, not a sum of all deductions
// across stages.
func TestScoreIsMinimumAcrossStages(t *testing.T) {
	r := Validate(&space.Config{}, DefaultOptions())

	// Completeness alone: -40 tables, -10 instructions, -10 examples,
	// -5 name, -5 description.
	if r.Score != 30 {
		t.Errorf("score = %d, want 30", r.Score)
	}
	if r.Valid {
		t.Error("empty config must be invalid")
	}
}

func TestWarningsDoNotBlock(t *testing.T) {
	cfg := goodConfig()
	cfg.Instructions = nil
	cfg.ExampleSQLQueries = nil
	cfg.JoinSpecifications = nil
	r := Validate(cfg, DefaultOptions())

	if !r.Valid {
		t.Errorf("warnings alone must not invalidate; errors: %v", r.Errors)
	}
	if r.Score != 80 {
		t.Errorf("score = %d, want 80", r.Score)
	}
	if len(r.Warnings) != 2 {
		t.Errorf("warnings = %v, want exactly 2", r.Warnings)
	}
}

func TestBadExampleSQL(t *testing.T) {
	cfg := goodConfig()
	cfg.ExampleSQLQueries = append(cfg.ExampleSQLQueries, space.ExampleQuery{
		Question: "Broken?",
		SQLQuery: "SELECT * FROM t WHERE (",
	})
	r := Validate(cfg, DefaultOptions())

	if r.Valid {
		t.Error("invalid example SQL must invalidate the config")
	}
	if !hasSubstring(r.Errors, "Example query #2") {
		t.Errorf("errors = %v, want a numbered example error", r.Errors)
	}
	if r.Score != 85 {
		t.Errorf("score = %d, want 85 (one -15 SQL deduction)", r.Score)
	}
}

func TestSQLStageCanBeDisabled(t *testing.T) {
	cfg := goodConfig()
	cfg.ExampleSQLQueries[0].SQLQuery = "SELECT * FROM t WHERE ("

	opts := DefaultOptions()
	opts.ValidateSQL = false
	r := Validate(cfg, opts)

	if !r.Valid {
		t.Errorf("SQL stage disabled but still failed: %v", r.Errors)
	}
	if r.Score != 100 {
		t.Errorf("score = %d, want 100", r.Score)
	}
}

func TestSnippetSQLDeductions(t *testing.T) {
	cfg := goodConfig()
	cfg.SQLSnippets = &space.SQLSnippets{
		Measures: []space.Snippet{{Alias: "m1", SQL: "SUM(amount", DisplayName: "Broken Measure"}},
	}
	r := Validate(cfg, DefaultOptions())

	if r.Valid {
		t.Error("invalid snippet SQL must invalidate the config")
	}
	if r.Score != 95 {
		t.Errorf("score = %d, want 95 (one -5 snippet deduction)", r.Score)
	}
}

func TestInstructionQuality(t *testing.T) {
	cfg := goodConfig()
	cfg.Instructions = []space.Instruction{{Content: "Use good data"}}
	r := Validate(cfg, DefaultOptions())

	if !r.Valid {
		t.Errorf("quality issues are warnings, not errors: %v", r.Errors)
	}
	// Vague term (-5), under ten words (-3), no backticks (-3).
	if r.Score != 89 {
		t.Errorf("score = %d, want 89", r.Score)
	}
	if !hasSubstring(r.Warnings, "vague terms: good") {
		t.Errorf("warnings = %v, want a vague-terms warning", r.Warnings)
	}
	if !hasSubstring(r.Warnings, "very short") {
		t.Errorf("warnings = %v, want a short-instruction warning", r.Warnings)
	}
	if !hasSubstring(r.Warnings, "backticks") {
		t.Errorf("warnings = %v, want a backticks warning", r.Warnings)
	}
}

// ─── Soft warnings ───────────────────────────────────────────────────────────

func TestSoftWarningsDoNotAffectScore(t *testing.T) {
	cfg := goodConfig()
	cfg.ExampleSQLQueries[0].Description = "this will be dropped"
	cfg.SQLSnippets = &space.SQLSnippets{
		Measures: []space.Snippet{
			{Alias: "rev", SQL: "SUM(amount)", DisplayName: "Revenue"},
			{Alias: "rev", SQL: "SUM(total)", DisplayName: "Revenue Again"},
		},
	}
	cfg.JoinSpecifications = append(cfg.JoinSpecifications, space.JoinSpec{
		LeftTable: "main.sales.orders", RightTable: "other.place.refunds", JoinCondition: "a = b",
	})

	opts := DefaultOptions()
	opts.CatalogName = "prod"
	r := Validate(cfg, opts)

	if !r.Valid {
		t.Errorf("soft conditions must not invalidate: %v", r.Errors)
	}
	if r.Score != 100 {
		t.Errorf("score = %d, want 100 (soft warnings carry no deduction)", r.Score)
	}
	if !hasSubstring(r.Warnings, "dropped on create") {
		t.Errorf("warnings = %v, want a description-loss warning", r.Warnings)
	}
	if !hasSubstring(r.Warnings, `Duplicate measure alias "rev"`) {
		t.Errorf("warnings = %v, want a duplicate-alias warning", r.Warnings)
	}
	if !hasSubstring(r.Warnings, "references a table not listed") {
		t.Errorf("warnings = %v, want an unknown-table join warning", r.Warnings)
	}
	if !hasSubstring(r.Warnings, `expected "prod"`) {
		t.Errorf("warnings = %v, want catalog mismatch warnings", r.Warnings)
	}
}

// ─── JSON entry point ────────────────────────────────────────────────────────

func TestValidateJSONMalformed(t *testing.T) {
	r := ValidateJSON([]byte("{not json"), DefaultOptions())
	if r.Valid || r.Score != 0 {
		t.Errorf("malformed JSON: valid=%v score=%d, want invalid score 0", r.Valid, r.Score)
	}
	if !hasSubstring(r.Errors, "Schema validation failed") {
		t.Errorf("errors = %v", r.Errors)
	}
}

func TestValidateJSONWrongTypes(t *testing.T) {
	r := ValidateJSON([]byte(`{"space_name": "X", "tables": "not-an-array"}`), DefaultOptions())
	if r.Valid || r.Score != 0 {
		t.Errorf("wrong-typed document: valid=%v score=%d, want invalid score 0", r.Valid, r.Score)
	}
}

func TestValidateJSONIncompleteTable(t *testing.T) {
	r := ValidateJSON([]byte(`{"space_name": "X", "tables": [{"catalog": "main", "table": "orders"}]}`), DefaultOptions())
	if r.Valid || r.Score != 0 {
		t.Errorf("table missing schema: valid=%v score=%d, want invalid score 0", r.Valid, r.Score)
	}
	if !hasSubstring(r.Errors, "tables[0]") {
		t.Errorf("errors = %v, want a tables[0] structural error", r.Errors)
	}
}

// ─── Recommendations ─────────────────────────────────────────────────────────

func TestRecommendations(t *testing.T) {
	r := Validate(&space.Config{}, DefaultOptions())
	if !hasSubstring(r.Recommendations, "Add at least one table") {
		t.Errorf("recommendations = %v", r.Recommendations)
	}

	cfg := goodConfig()
	r = Validate(cfg, DefaultOptions())
	if !hasSubstring(r.Recommendations, "Add more instructions") {
		t.Errorf("recommendations = %v, want more-instructions hint for a single instruction", r.Recommendations)
	}
	if !hasSubstring(r.Recommendations, "Add SQL measures") {
		t.Errorf("recommendations = %v, want a measures hint", r.Recommendations)
	}
}
