// Package validate scores Genie space configurations: a schema check, a
// completeness check, an embedded-SQL sanity check, and an instruction
// quality check. Each stage computes its own deduction scale starting at
// 100; the overall score is the worst stage, floored at 0 — not a sum.
//
// Validation is deterministic (no remote calls, no randomness) and its
// outcome is always structured data: errors make a document invalid,
// warnings never do.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/geniespace/genie-mcp/internal/space"
)

// Report is the outcome of validating one configuration document.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Score    int      `json:"score"`

	// Recommendations are actionable improvement hints. They never
	// affect the score or validity.
	Recommendations []string `json:"recommendations,omitempty"`
}

// Options tune a validation run.
type Options struct {
	// ValidateSQL enables the embedded-SQL sanity stage. Default on.
	ValidateSQL bool

	// CatalogName, when set, warns about tables referencing a different
	// catalog than the one the caller intends to use.
	CatalogName string
}

// DefaultOptions enables every stage.
func DefaultOptions() Options {
	return Options{ValidateSQL: true}
}

// Vague terms that make an instruction unactionable.
var vagueTerms = []string{"appropriate", "relevant", "good", "properly", "as needed"}

// ValidateJSON validates a raw JSON configuration document. Malformed
// JSON or a document that does not fit the configuration shape (wrong
// types) is a hard schema error: score 0, no further stages run.
func ValidateJSON(data []byte, opts Options) Report {
	var cfg space.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Report{
			Valid:  false,
			Errors: []string{fmt.Sprintf("Schema validation failed: %v", err)},
			Score:  0,
		}
	}
	if errs := structuralErrors(&cfg); len(errs) > 0 {
		return Report{Valid: false, Errors: errs, Score: 0}
	}
	return Validate(&cfg, opts)
}

// Validate scores a parsed configuration. The score is the minimum of
// the per-stage scores; the document is valid iff no stage produced a
// hard error.
func Validate(cfg *space.Config, opts Options) Report {
	r := Report{Score: 100}

	stageScore := func(errs, warns []string, score int) {
		r.Errors = append(r.Errors, errs...)
		r.Warnings = append(r.Warnings, warns...)
		if score < r.Score {
			r.Score = score
		}
	}

	stageScore(checkCompleteness(cfg))

	if opts.ValidateSQL {
		stageScore(checkSQL(cfg))
	}

	warns, score := checkInstructionQuality(cfg)
	stageScore(nil, warns, score)

	r.Warnings = append(r.Warnings, softWarnings(cfg, opts)...)
	r.Recommendations = recommendations(cfg)
	r.Valid = len(r.Errors) == 0
	if r.Errors == nil {
		r.Errors = []string{}
	}
	if r.Warnings == nil {
		r.Warnings = []string{}
	}
	return r
}

// structuralErrors reports shape violations that json decoding alone
// cannot catch: table entries missing any part of their identity key.
func structuralErrors(cfg *space.Config) []string {
	var errs []string
	for i, t := range cfg.Tables {
		if t.Catalog == "" || t.Schema == "" || t.Table == "" {
			errs = append(errs, fmt.Sprintf("Schema validation failed: tables[%d] must have catalog, schema, and table", i))
		}
	}
	return errs
}

func checkCompleteness(cfg *space.Config) (errs, warns []string, score int) {
	score = 100

	if len(cfg.Tables) == 0 {
		errs = append(errs, "No tables specified in configuration")
		score -= 40
	}
	if len(cfg.Instructions) == 0 {
		warns = append(warns, "No instructions provided - consider adding guidance")
		score -= 10
	}
	if len(cfg.ExampleSQLQueries) == 0 {
		warns = append(warns, "No example SQL queries - consider adding examples")
		score -= 10
	}
	if len(cfg.SpaceName) < 5 {
		warns = append(warns, "Space name is very short - use descriptive names")
		score -= 5
	}
	if len(cfg.Description) < 20 {
		warns = append(warns, "Description is very short - provide more context")
		score -= 5
	}

	return errs, warns, max(0, score)
}

func checkSQL(cfg *space.Config) (errs, warns []string, score int) {
	score = 100

	for i, ex := range cfg.ExampleSQLQueries {
		if err := CheckSQL(ex.SQLQuery); err != nil {
			errs = append(errs, fmt.Sprintf("Example query #%d has invalid SQL: %v", i+1, err))
			score -= 15
		}
	}

	if cfg.SQLSnippets != nil {
		for i, f := range cfg.SQLSnippets.Filters {
			if err := CheckSQL(f.SQL); err != nil {
				errs = append(errs, fmt.Sprintf("Filter #%d has invalid SQL: %v", i+1, err))
				score -= 5
			}
		}
		for _, e := range cfg.SQLSnippets.Expressions {
			if err := CheckSQL(e.SQL); err != nil {
				errs = append(errs, fmt.Sprintf("Expression %q has invalid SQL: %v", e.Alias, err))
				score -= 5
			}
		}
		for _, m := range cfg.SQLSnippets.Measures {
			if err := CheckSQL(m.SQL); err != nil {
				errs = append(errs, fmt.Sprintf("Measure %q has invalid SQL: %v", m.Alias, err))
				score -= 5
			}
		}
	}

	return errs, warns, max(0, score)
}

func checkInstructionQuality(cfg *space.Config) (warns []string, score int) {
	score = 100

	for i, ins := range cfg.Instructions {
		lower := strings.ToLower(ins.Content)

		var found []string
		for _, term := range vagueTerms {
			if strings.Contains(lower, term) {
				found = append(found, term)
			}
		}
		if len(found) > 0 {
			warns = append(warns, fmt.Sprintf("Instruction #%d contains vague terms: %s", i+1, strings.Join(found, ", ")))
			score -= 5
		}

		words := len(strings.Fields(ins.Content))
		if words < 10 {
			warns = append(warns, fmt.Sprintf("Instruction #%d is very short (%d words)", i+1, words))
			score -= 3
		}

		if !strings.Contains(ins.Content, "`") {
			warns = append(warns, fmt.Sprintf("Instruction #%d lacks specific column/table references (use backticks)", i+1))
			score -= 3
		}
	}

	return warns, max(0, score)
}

// softWarnings reports conditions that never affect the score: the
// guaranteed loss of example descriptions on encode, duplicate snippet
// aliases, join specs naming tables absent from the table list, and
// catalog mismatches against the caller-intended catalog.
func softWarnings(cfg *space.Config, opts Options) []string {
	var warns []string

	for i, ex := range cfg.ExampleSQLQueries {
		if ex.Description != "" {
			warns = append(warns, fmt.Sprintf("Example query #%d has a description, which the platform does not store - it will be dropped on create", i+1))
		}
	}

	if cfg.SQLSnippets != nil {
		warns = append(warns, duplicateAliases("measure", cfg.SQLSnippets.Measures)...)
		warns = append(warns, duplicateAliases("expression", cfg.SQLSnippets.Expressions)...)
	}

	known := make(map[string]bool, len(cfg.Tables))
	for _, t := range cfg.Tables {
		known[t.Identifier()] = true
	}
	for i, j := range cfg.JoinSpecifications {
		if !known[j.LeftTable] || !known[j.RightTable] {
			warns = append(warns, fmt.Sprintf("Join specification #%d references a table not listed in tables", i+1))
		}
	}

	if opts.CatalogName != "" {
		for _, t := range cfg.Tables {
			if t.Catalog != opts.CatalogName {
				warns = append(warns, fmt.Sprintf("Table %s uses catalog %q, expected %q", t.Identifier(), t.Catalog, opts.CatalogName))
			}
		}
	}

	return warns
}

func duplicateAliases(kind string, snippets []space.Snippet) []string {
	var warns []string
	seen := map[string]bool{}
	for _, s := range snippets {
		if s.Alias == "" {
			continue
		}
		if seen[s.Alias] {
			warns = append(warns, fmt.Sprintf("Duplicate %s alias %q - aliases should be unique within their group", kind, s.Alias))
		}
		seen[s.Alias] = true
	}
	return warns
}

// recommendations builds actionable improvement hints for a config.
func recommendations(cfg *space.Config) []string {
	var recs []string

	tableCount := len(cfg.Tables)
	switch {
	case tableCount == 0:
		recs = append(recs, "Add at least one table to the space")
	case tableCount > 10:
		recs = append(recs, "Consider splitting into multiple spaces (10+ tables can be confusing)")
	}

	if n := len(cfg.Instructions); n < 5 {
		recs = append(recs, fmt.Sprintf("Add more instructions to guide Genie (current: %d, recommend: 5+)", n))
	}
	if n := len(cfg.ExampleSQLQueries); n < 5 {
		recs = append(recs, fmt.Sprintf("Add more example queries (current: %d, recommend: 5+)", n))
	}

	measures, expressions := 0, 0
	if cfg.SQLSnippets != nil {
		measures = len(cfg.SQLSnippets.Measures)
		expressions = len(cfg.SQLSnippets.Expressions)
	}
	if measures == 0 {
		recs = append(recs, "Add SQL measures for common metrics (e.g., revenue, count, average)")
	}
	if expressions == 0 {
		recs = append(recs, "Add SQL expressions for common dimensions (e.g., date parts, categories)")
	}

	if tableCount > 1 {
		joins := len(cfg.JoinSpecifications)
		switch {
		case joins == 0:
			recs = append(recs, "Define join specifications to connect tables")
		case joins < tableCount-1:
			recs = append(recs, "Add more joins to fully connect all tables")
		}
	}

	return recs
}
