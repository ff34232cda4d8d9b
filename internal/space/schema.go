package space

// SchemaDocument returns the static configuration schema document handed
// to AI assistants: the config shape, best practices, validation rules
// and scoring rubric, plus a complete worked example. No remote call is
// involved; the content is fixed at build time.
func SchemaDocument() map[string]any {
	return map[string]any{
		"title":          "GenieSpaceConfig",
		"type":           "object",
		"required":       []string{"space_name", "description", "purpose", "tables"},
		"properties":     schemaProperties(),
		"best_practices": bestPractices,
		"validation_rules": map[string]any{
			"required_fields": []string{
				"space_name",
				"description",
				"purpose",
				"tables (at least 1 table)",
			},
			"recommended_fields": map[string]string{
				"instructions":        "Highly recommended for score >80. Provides guidance on how to query the data.",
				"example_sql_queries": "Highly recommended for score >80. Shows example queries for common questions.",
				"sql_snippets":        "Optional. Defines reusable filters, expressions, and measures.",
				"join_specifications": "Required when using multiple tables. Defines how tables relate.",
				"benchmark_questions": "Optional. Used for testing the space quality.",
			},
			"minimum_requirements": map[string]string{
				"tables":          "At least 1 table required",
				"instructions":    "Recommended: at least 3-5 specific instructions",
				"example_queries": "Recommended: at least 3-5 example queries",
			},
			"quality_scoring": map[string]string{
				"90-100": "Excellent - Complete config with instructions, examples, and snippets",
				"80-89":  "Good - Has instructions and examples, may be missing snippets",
				"70-79":  "Acceptable - Basic config with tables and minimal guidance",
				"60-69":  "Needs improvement - Missing key fields or insufficient detail",
				"0-59":   "Poor - Incomplete or invalid configuration",
			},
		},
		"example": schemaExample(),
		"usage_notes": map[string]any{
			"workflow": []string{
				"1. Get this schema using the get_config_schema tool",
				"2. Optionally get a template using the get_config_template tool",
				"3. Generate a config based on the schema and user requirements",
				"4. Validate the config using the validate_config tool",
				"5. Create the space using the create_space tool",
			},
			"tips": []string{
				"Use specific column names in instructions (e.g., `event_date`, `user_id`)",
				"Format instructions with markdown for better readability",
				"Provide realistic example SQL queries that use actual table/column names",
				"Set instruction priorities (1=highest) for critical guidance",
				"Use fully qualified table names in join_specifications: catalog.schema.table",
				"example_sql_queries[].description is not stored by the platform — it is dropped on create",
			},
		},
	}
}

func schemaProperties() map[string]any {
	text := func(desc string) map[string]any {
		return map[string]any{"type": "string", "description": desc}
	}
	return map[string]any{
		"space_name":  text("Display name for the space (5+ characters recommended)"),
		"description": text("What the space covers (20+ characters recommended)"),
		"purpose":     text("Why the space exists and who uses it"),
		"tables": map[string]any{
			"type":        "array",
			"minItems":    1,
			"description": "Tables the space can query",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"catalog", "schema", "table"},
				"properties": map[string]any{
					"catalog":     text("Catalog name"),
					"schema":      text("Schema name"),
					"table":       text("Table name"),
					"description": text("Optional table description"),
				},
			},
		},
		"join_specifications": map[string]any{
			"type":        "array",
			"description": "How tables relate; left/right are fully qualified names",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"left_table", "right_table", "join_condition"},
				"properties": map[string]any{
					"left_table":     text("catalog.schema.table"),
					"right_table":    text("catalog.schema.table"),
					"join_type":      map[string]any{"type": "string", "enum": []string{"INNER", "LEFT", "RIGHT", "FULL"}, "default": "INNER"},
					"join_condition": text("ON clause, e.g. orders.customer_id = customers.id"),
					"description":    text("Optional description"),
					"instruction":    text("Optional usage guidance"),
				},
			},
		},
		"instructions": map[string]any{
			"type":        "array",
			"description": "Guidance for query generation; priority 1 is highest",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"content"},
				"properties": map[string]any{
					"content":  text("Markdown-formatted instruction"),
					"priority": map[string]any{"type": "integer", "minimum": 1},
				},
			},
		},
		"example_sql_queries": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"question", "sql_query"},
				"properties": map[string]any{
					"question":    text("Natural-language question"),
					"sql_query":   text("SQL that answers it"),
					"description": text("Optional note (not stored by the platform)"),
				},
			},
		},
		"benchmark_questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":       "object",
				"required":   []string{"question"},
				"properties": map[string]any{"question": text("Question used to test space quality")},
			},
		},
		"sql_snippets": map[string]any{
			"type":        "object",
			"description": "Reusable SQL fragments: measures (aggregations), expressions (dimensions), filters (WHERE conditions; no alias)",
			"properties": map[string]any{
				"measures":    snippetSchema(true),
				"expressions": snippetSchema(true),
				"filters":     snippetSchema(false),
			},
		},
		"warehouse_id":         text("SQL warehouse used to run generated queries (required at creation)"),
		"enable_data_sampling": map[string]any{"type": "boolean", "default": false},
	}
}

func snippetSchema(withAlias bool) map[string]any {
	required := []string{"sql", "display_name"}
	props := map[string]any{
		"sql":          map[string]any{"type": "string"},
		"display_name": map[string]any{"type": "string"},
		"synonyms":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	}
	if withAlias {
		required = append([]string{"alias"}, required...)
		props["alias"] = map[string]any{"type": "string"}
		props["instruction"] = map[string]any{"type": "string"}
	}
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "object", "required": required, "properties": props},
	}
}

func schemaExample() map[string]any {
	return map[string]any{
		"space_name":  "Sales Analytics",
		"description": "Natural language analytics for sales transactions and revenue data",
		"purpose":     "Enable sales team to analyze revenue, transactions, and product performance",
		"tables": []map[string]any{
			{"catalog": "main", "schema": "sales", "table": "orders", "description": "One row per order"},
			{"catalog": "main", "schema": "sales", "table": "customers"},
		},
		"join_specifications": []map[string]any{
			{
				"left_table":     "main.sales.orders",
				"right_table":    "main.sales.customers",
				"join_type":      "LEFT",
				"join_condition": "orders.customer_id = customers.id",
			},
		},
		"instructions": []map[string]any{
			{"content": "## Date Filtering\nUse `order_date` for time filters. Default to last 7 days.", "priority": 1},
		},
		"example_sql_queries": []map[string]any{
			{"question": "What were total sales last week?", "sql_query": "SELECT CAST(SUM(amount) AS DECIMAL(38,2)) FROM main.sales.orders WHERE order_date >= CURRENT_DATE - 7"},
		},
		"sql_snippets": map[string]any{
			"measures": []map[string]any{
				{"alias": "total_revenue", "sql": "CAST(SUM(amount) AS DECIMAL(38,2))", "display_name": "Total Revenue", "synonyms": []string{"revenue", "sales"}},
			},
		},
	}
}

const bestPractices = `## Best Practices for Genie Space Configuration

### Instructions (DO)
- Be specific: Reference exact column names using backticks (e.g., ` + "`event_date`" + `, ` + "`user_id`" + `)
- Use markdown formatting: headers (##), bullet lists (-), bold (**important**)
- Provide context: Explain when and how to use specific patterns
- Include examples: Show concrete SQL patterns or values
- Set priorities: Critical instructions should have priority=1

### Instructions (DON'T)
- Avoid vague terms: "appropriate", "relevant", "as needed"
- Don't be generic: "Handle dates properly" -> "Use ` + "`event_date`" + ` for filtering by date"
- Don't skip formatting: Plain text is harder to parse

### SQL Best Practices
- Use explicit JOINs with ON clauses (not comma-separated tables)
- Use date functions: CURRENT_DATE, DATE_SUB(), DATE_TRUNC()
- Add LIMIT clauses to prevent large result sets
- Cast aggregates to DECIMAL(38,2) for precision
- Use try_divide() to avoid division by zero

### SQL Snippets
- Filters: WHERE conditions (e.g., ` + "`table.price > 100`" + `)
- Expressions: Dimensions/calculated fields (e.g., ` + "`YEAR(orders.order_date)`" + `)
- Measures: Aggregations (e.g., ` + "`SUM(orders.amount)`" + `)

### Example SQL Queries
- Provide at least 3-5 realistic examples
- Cover different query types: aggregation, filtering, joins
- Use actual table/column names from the configuration
`
