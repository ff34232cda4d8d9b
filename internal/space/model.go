// Package space defines the user-facing Genie space configuration model
// and its transformation to and from the platform's serialized wire
// format (a version-tagged JSON document).
//
// The Config type here is ephemeral: callers build one (from raw JSON, a
// template, or directly), it gets encoded to a WireDocument, and the wire
// document handed to the platform becomes the system of record. Decoding
// a wire document back yields an approximate Config — the two formats are
// not symmetrical and a round trip is lossy by design (see wire.go).
package space

import (
	"fmt"
	"strings"
)

// Config is the user-facing Genie space configuration.
type Config struct {
	SpaceName   string `json:"space_name"`
	Description string `json:"description"`
	Purpose     string `json:"purpose"`

	Tables             []Table        `json:"tables"`
	JoinSpecifications []JoinSpec     `json:"join_specifications,omitempty"`
	Instructions       []Instruction  `json:"instructions,omitempty"`
	ExampleSQLQueries  []ExampleQuery `json:"example_sql_queries,omitempty"`
	BenchmarkQuestions []Benchmark    `json:"benchmark_questions,omitempty"`
	SQLSnippets        *SQLSnippets   `json:"sql_snippets,omitempty"`

	// WarehouseID may be supplied out-of-band (as a tool argument) instead
	// of inside the config; it is required at space-creation time.
	WarehouseID        string `json:"warehouse_id,omitempty"`
	EnableDataSampling bool   `json:"enable_data_sampling,omitempty"`
}

// Table references one table the space can query.
// Identity is the fully qualified catalog.schema.table name.
type Table struct {
	Catalog     string `json:"catalog"`
	Schema      string `json:"schema"`
	Table       string `json:"table"`
	Description string `json:"description,omitempty"`
}

// Identifier returns the fully qualified catalog.schema.table name.
func (t Table) Identifier() string {
	return t.Catalog + "." + t.Schema + "." + t.Table
}

// JoinSpec describes how two tables relate.
type JoinSpec struct {
	LeftTable     string `json:"left_table"`
	RightTable    string `json:"right_table"`
	JoinType      string `json:"join_type,omitempty"` // INNER when empty
	JoinCondition string `json:"join_condition"`
	Description   string `json:"description,omitempty"`
	Instruction   string `json:"instruction,omitempty"`
}

// NormalizedJoinType returns the join type uppercased, defaulting to INNER.
func (j JoinSpec) NormalizedJoinType() string {
	if strings.TrimSpace(j.JoinType) == "" {
		return "INNER"
	}
	return strings.ToUpper(strings.TrimSpace(j.JoinType))
}

// Instruction is one piece of guidance for the query engine.
// Priority 1 is highest; zero means unset.
type Instruction struct {
	Content  string `json:"content"`
	Priority int    `json:"priority,omitempty"`
}

// ExampleQuery pairs a natural-language question with its SQL answer.
//
// Description is accepted on input but has no field in the wire format
// and is dropped on encode; the validator warns about this so callers
// learn of the loss before creating a space.
type ExampleQuery struct {
	Question    string `json:"question"`
	SQLQuery    string `json:"sql_query"`
	Description string `json:"description,omitempty"`
}

// Benchmark is a question used to test space quality.
type Benchmark struct {
	Question string `json:"question"`
}

// SQLSnippets groups reusable SQL fragments by kind.
type SQLSnippets struct {
	Measures    []Snippet `json:"measures,omitempty"`
	Expressions []Snippet `json:"expressions,omitempty"`
	Filters     []Snippet `json:"filters,omitempty"`
}

// Snippet is a named, reusable SQL fragment. Filters carry no alias and
// no instruction; the codec ignores those fields for them.
type Snippet struct {
	Alias       string   `json:"alias,omitempty"`
	SQL         string   `json:"sql"`
	DisplayName string   `json:"display_name"`
	Synonyms    []string `json:"synonyms,omitempty"`
	Instruction string   `json:"instruction,omitempty"`
}

// SplitIdentifier breaks a catalog.schema.table identifier into a Table.
// Identifiers that are not exactly three dot-separated segments are
// reported as malformed.
func SplitIdentifier(identifier string) (Table, error) {
	parts := strings.Split(identifier, ".")
	if len(parts) != 3 {
		return Table{}, fmt.Errorf("identifier %q is not catalog.schema.table", identifier)
	}
	return Table{Catalog: parts[0], Schema: parts[1], Table: parts[2]}, nil
}
