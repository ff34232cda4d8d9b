package space

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// WireVersion is the serialization version the platform accepts.
const WireVersion = 2

// WireDocument is the canonical JSON shape the platform stores as a
// space's serialized configuration ("version 2" format).
type WireDocument struct {
	Version      int               `json:"version"`
	DataSources  WireDataSources   `json:"data_sources"`
	Config       *WireConfig       `json:"config,omitempty"`
	Instructions *WireInstructions `json:"instructions,omitempty"`
}

// WireDataSources lists the tables the space can query.
type WireDataSources struct {
	Tables []WireTableRef `json:"tables"`
}

// WireTableRef references a table by fully qualified identifier.
type WireTableRef struct {
	Identifier string `json:"identifier"`
}

// WireConfig carries the space's sample questions.
type WireConfig struct {
	SampleQuestions []WireSampleQuestion `json:"sample_questions"`
}

// WireSampleQuestion is one suggested question shown to users.
type WireSampleQuestion struct {
	ID       string   `json:"id"`
	Question []string `json:"question"`
}

// WireInstructions groups the structured guidance sections.
type WireInstructions struct {
	TextInstructions    []WireTextInstruction `json:"text_instructions,omitempty"`
	JoinSpecs           []WireJoinSpec        `json:"join_specs,omitempty"`
	SQLSnippets         *WireSQLSnippets      `json:"sql_snippets,omitempty"`
	ExampleQuestionSQLs []WireExampleSQL      `json:"example_question_sqls,omitempty"`
}

// WireTextInstruction is a free-text guidance block. Content is one array
// entry per logical line, each carrying its trailing newline — a format
// quirk of the platform, not a meaningful structure.
type WireTextInstruction struct {
	ID      string   `json:"id"`
	Content []string `json:"content"`
}

// WireJoinSpec describes a join between two tables.
//
// The join type is carried as a structured field, written and read
// symmetrically. Documents produced by older encoders embedded the type
// as a "<TYPE> JOIN: " prefix inside sql[0] instead; Decode strips that
// prefix when it sees one.
type WireJoinSpec struct {
	ID          string        `json:"id"`
	Left        WireJoinTable `json:"left"`
	Right       WireJoinTable `json:"right"`
	JoinType    string        `json:"join_type,omitempty"`
	SQL         []string      `json:"sql"`
	Instruction []string      `json:"instruction,omitempty"`
}

// WireJoinTable is one side of a join.
type WireJoinTable struct {
	Identifier string `json:"identifier"`
	Alias      string `json:"alias"`
}

// WireSQLSnippets groups reusable SQL fragments by kind.
type WireSQLSnippets struct {
	Measures    []WireSnippet `json:"measures,omitempty"`
	Expressions []WireSnippet `json:"expressions,omitempty"`
	Filters     []WireSnippet `json:"filters,omitempty"`
}

// WireSnippet is a named SQL fragment. Filters carry no alias and no
// instruction.
type WireSnippet struct {
	ID          string   `json:"id"`
	Alias       string   `json:"alias,omitempty"`
	SQL         []string `json:"sql"`
	DisplayName string   `json:"display_name"`
	Synonyms    []string `json:"synonyms,omitempty"`
	Instruction []string `json:"instruction,omitempty"`
}

// WireExampleSQL pairs a sample question with its SQL. There is no field
// for the rich model's example description; it does not survive encoding.
type WireExampleSQL struct {
	ID       string   `json:"id"`
	Question []string `json:"question"`
	SQL      []string `json:"sql"`
}

// newID returns a fresh 32-character lowercase hexadecimal ID in the form
// the platform expects (a UUID without hyphens). IDs are assigned fresh
// on every encode and are not stable across edits.
func newID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// Encode converts a Config into the platform wire document.
//
// Encoding always succeeds for a well-formed Config; structural problems
// are caught by validation before a config reaches the codec. The output
// array order is canonical (see canonicalize) so that encoding is a pure,
// order-independent function of the input set — the platform treats two
// documents with identical content but different array order as different
// revisions.
func Encode(cfg *Config) *WireDocument {
	doc := &WireDocument{
		Version:     WireVersion,
		DataSources: WireDataSources{Tables: []WireTableRef{}},
	}

	for _, t := range cfg.Tables {
		doc.DataSources.Tables = append(doc.DataSources.Tables, WireTableRef{Identifier: t.Identifier()})
	}

	var samples []WireSampleQuestion
	for _, ex := range cfg.ExampleSQLQueries {
		samples = append(samples, WireSampleQuestion{ID: newID(), Question: []string{ex.Question}})
	}
	for _, b := range cfg.BenchmarkQuestions {
		samples = append(samples, WireSampleQuestion{ID: newID(), Question: []string{b.Question}})
	}
	if len(samples) > 0 {
		doc.Config = &WireConfig{SampleQuestions: samples}
	}

	instr := &WireInstructions{}

	if len(cfg.Instructions) > 0 {
		instr.TextInstructions = []WireTextInstruction{{
			ID:      newID(),
			Content: narrativeLines(cfg),
		}}
	}

	for _, j := range cfg.JoinSpecifications {
		spec := WireJoinSpec{
			ID:       newID(),
			Left:     WireJoinTable{Identifier: j.LeftTable, Alias: tableAlias(j.LeftTable)},
			Right:    WireJoinTable{Identifier: j.RightTable, Alias: tableAlias(j.RightTable)},
			JoinType: j.NormalizedJoinType(),
			SQL:      []string{j.JoinCondition},
		}
		if j.Description != "" {
			spec.Instruction = append(spec.Instruction, j.Description)
		}
		if j.Instruction != "" {
			spec.Instruction = append(spec.Instruction, j.Instruction)
		}
		instr.JoinSpecs = append(instr.JoinSpecs, spec)
	}

	if cfg.SQLSnippets != nil {
		snippets := &WireSQLSnippets{}
		for _, m := range cfg.SQLSnippets.Measures {
			snippets.Measures = append(snippets.Measures, encodeSnippet(m, true))
		}
		for _, e := range cfg.SQLSnippets.Expressions {
			snippets.Expressions = append(snippets.Expressions, encodeSnippet(e, true))
		}
		for _, f := range cfg.SQLSnippets.Filters {
			snippets.Filters = append(snippets.Filters, encodeSnippet(f, false))
		}
		if len(snippets.Measures)+len(snippets.Expressions)+len(snippets.Filters) > 0 {
			instr.SQLSnippets = snippets
		}
	}

	for _, ex := range cfg.ExampleSQLQueries {
		// ex.Description has no wire field and is dropped here.
		instr.ExampleQuestionSQLs = append(instr.ExampleQuestionSQLs, WireExampleSQL{
			ID:       newID(),
			Question: []string{ex.Question},
			SQL:      []string{ex.SQLQuery},
		})
	}

	if len(instr.TextInstructions) > 0 || len(instr.JoinSpecs) > 0 ||
		instr.SQLSnippets != nil || len(instr.ExampleQuestionSQLs) > 0 {
		doc.Instructions = instr
	}

	canonicalize(doc)
	return doc
}

// EncodeJSON encodes a Config and marshals the wire document to JSON.
func EncodeJSON(cfg *Config) (string, error) {
	data, err := json.Marshal(Encode(cfg))
	if err != nil {
		return "", fmt.Errorf("marshaling wire document: %w", err)
	}
	return string(data), nil
}

// narrativeLines builds the single synthesized text instruction: a
// business-context block, the numbered instruction list, and the table
// listing, in that fixed order. One array entry per line, trailing
// newlines included.
func narrativeLines(cfg *Config) []string {
	var lines []string

	lines = append(lines, "BUSINESS CONTEXT:\n")
	lines = append(lines, cfg.Description+"\n")
	lines = append(lines, "Purpose: "+cfg.Purpose+"\n")
	lines = append(lines, "\n")

	lines = append(lines, "INSTRUCTIONS:\n")
	for i, ins := range cfg.Instructions {
		marker := ""
		if ins.Priority > 0 {
			marker = fmt.Sprintf(" [Priority: %d]", ins.Priority)
		}
		lines = append(lines, fmt.Sprintf("%d. %s%s\n", i+1, ins.Content, marker))
	}
	lines = append(lines, "\n")

	if len(cfg.Tables) > 0 {
		lines = append(lines, "DATA SOURCES:\n")
		for _, t := range cfg.Tables {
			desc := ""
			if t.Description != "" {
				desc = " - " + t.Description
			}
			lines = append(lines, "- "+t.Identifier()+desc+"\n")
		}
		lines = append(lines, "\n")
	}

	return lines
}

func encodeSnippet(s Snippet, withAlias bool) WireSnippet {
	w := WireSnippet{
		ID:          newID(),
		SQL:         []string{s.SQL},
		DisplayName: s.DisplayName,
		Synonyms:    s.Synonyms,
	}
	if withAlias {
		w.Alias = s.Alias
		if s.Instruction != "" {
			w.Instruction = []string{s.Instruction}
		}
	}
	return w
}

// tableAlias is the last dot-separated segment of a table reference.
func tableAlias(ref string) string {
	parts := strings.Split(ref, ".")
	return parts[len(parts)-1]
}

// canonicalize sorts every array of identified objects so the document
// is a deterministic function of its content. Tables sort by identifier;
// everything else sorts by its generated id. This must run after all
// content is built. Downstream consumers must not rely on insertion
// order surviving a round trip.
func canonicalize(doc *WireDocument) {
	sort.Slice(doc.DataSources.Tables, func(i, j int) bool {
		return doc.DataSources.Tables[i].Identifier < doc.DataSources.Tables[j].Identifier
	})
	if doc.Config != nil {
		sort.Slice(doc.Config.SampleQuestions, func(i, j int) bool {
			return doc.Config.SampleQuestions[i].ID < doc.Config.SampleQuestions[j].ID
		})
	}
	if doc.Instructions == nil {
		return
	}
	in := doc.Instructions
	sort.Slice(in.TextInstructions, func(i, j int) bool {
		return in.TextInstructions[i].ID < in.TextInstructions[j].ID
	})
	sort.Slice(in.JoinSpecs, func(i, j int) bool {
		return in.JoinSpecs[i].ID < in.JoinSpecs[j].ID
	})
	sort.Slice(in.ExampleQuestionSQLs, func(i, j int) bool {
		return in.ExampleQuestionSQLs[i].ID < in.ExampleQuestionSQLs[j].ID
	})
	if in.SQLSnippets != nil {
		for _, group := range [][]WireSnippet{in.SQLSnippets.Measures, in.SQLSnippets.Expressions, in.SQLSnippets.Filters} {
			g := group
			sort.Slice(g, func(i, j int) bool { return g[i].ID < g[j].ID })
		}
	}
}

// Decode reconstructs an approximate Config from a wire document.
//
// The conversion is best-effort and lossy: malformed table identifiers
// are dropped, every sample question comes back as a benchmark question
// (which questions originated from example queries is not recoverable),
// and text instructions are flattened into opaque blocks — the narrative
// structure imposed at encode time is not parsed back out. Missing
// optional sections decode as empty collections.
func Decode(doc *WireDocument) *Config {
	cfg := &Config{
		SpaceName:   "Imported Space",
		Description: "Imported from Databricks",
		Purpose:     "Configuration imported from existing Genie space",
	}

	for _, ref := range doc.DataSources.Tables {
		t, err := SplitIdentifier(ref.Identifier)
		if err != nil {
			continue
		}
		cfg.Tables = append(cfg.Tables, t)
	}

	if doc.Config != nil {
		for _, sq := range doc.Config.SampleQuestions {
			if len(sq.Question) > 0 {
				cfg.BenchmarkQuestions = append(cfg.BenchmarkQuestions, Benchmark{Question: sq.Question[0]})
			}
		}
	}

	if doc.Instructions == nil {
		return cfg
	}

	for _, ti := range doc.Instructions.TextInstructions {
		content := strings.TrimSpace(strings.Join(ti.Content, ""))
		if content != "" {
			cfg.Instructions = append(cfg.Instructions, Instruction{Content: content})
		}
	}

	for _, js := range doc.Instructions.JoinSpecs {
		spec := JoinSpec{
			LeftTable:  js.Left.Identifier,
			RightTable: js.Right.Identifier,
			JoinType:   strings.ToUpper(strings.TrimSpace(js.JoinType)),
		}
		if len(js.SQL) > 0 {
			cond, legacyType := stripJoinPrefix(js.SQL[0])
			spec.JoinCondition = cond
			if spec.JoinType == "" && legacyType != "" {
				spec.JoinType = legacyType
			}
		}
		if spec.JoinType == "" {
			spec.JoinType = "INNER"
		}
		if len(js.Instruction) > 0 {
			spec.Description = strings.TrimSpace(js.Instruction[0])
		}
		if len(js.Instruction) > 1 {
			spec.Instruction = strings.TrimSpace(js.Instruction[1])
		}
		cfg.JoinSpecifications = append(cfg.JoinSpecifications, spec)
	}

	if ws := doc.Instructions.SQLSnippets; ws != nil {
		snippets := &SQLSnippets{}
		for _, m := range ws.Measures {
			snippets.Measures = append(snippets.Measures, decodeSnippet(m))
		}
		for _, e := range ws.Expressions {
			snippets.Expressions = append(snippets.Expressions, decodeSnippet(e))
		}
		for _, f := range ws.Filters {
			snippets.Filters = append(snippets.Filters, decodeSnippet(f))
		}
		if len(snippets.Measures)+len(snippets.Expressions)+len(snippets.Filters) > 0 {
			cfg.SQLSnippets = snippets
		}
	}

	for _, ex := range doc.Instructions.ExampleQuestionSQLs {
		q := ExampleQuery{}
		if len(ex.Question) > 0 {
			q.Question = ex.Question[0]
		}
		if len(ex.SQL) > 0 {
			q.SQLQuery = ex.SQL[0]
		}
		cfg.ExampleSQLQueries = append(cfg.ExampleSQLQueries, q)
	}

	return cfg
}

// DecodeJSON parses a serialized wire document and decodes it. It fails
// only when the input is not valid wire-document JSON; structurally
// absent sections are treated as empty.
func DecodeJSON(data []byte) (*Config, error) {
	var doc WireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing wire document: %w", err)
	}
	return Decode(&doc), nil
}

func decodeSnippet(w WireSnippet) Snippet {
	s := Snippet{
		Alias:       w.Alias,
		DisplayName: w.DisplayName,
		Synonyms:    w.Synonyms,
	}
	if len(w.SQL) > 0 {
		s.SQL = w.SQL[0]
	}
	if len(w.Instruction) > 0 {
		s.Instruction = strings.TrimSpace(w.Instruction[0])
	}
	return s
}

// stripJoinPrefix removes a legacy "<TYPE> JOIN: " prefix from a join
// condition, returning the bare condition and the extracted type. Older
// encoders embedded the non-INNER join type this way instead of writing
// the structured join_type field.
func stripJoinPrefix(sql string) (condition, joinType string) {
	marker := " JOIN: "
	idx := strings.Index(sql, marker)
	if idx <= 0 {
		return sql, ""
	}
	prefix := sql[:idx]
	for _, r := range prefix {
		if (r < 'A' || r > 'Z') && r != ' ' {
			return sql, ""
		}
	}
	return sql[idx+len(marker):], strings.TrimSpace(prefix)
}
