package space

import (
	"fmt"
	"sort"
	"strings"
)

// Template placeholders. Templates ship with these markers in their
// instructions, example SQL and snippets; FromTemplate substitutes them.
const (
	placeholderCatalog = "[CATALOG]"
	placeholderSchema  = "[SCHEMA]"
	placeholderTable   = "[TABLE_NAME]"
	placeholderFQN     = "[TABLE]" // catalog.schema.table
)

// Domains returns the valid template domain names, sorted.
func Domains() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Template returns a deep copy of the named domain template. Unknown
// domains are a caller error — there is no fallback to "minimal".
func Template(domain string) (*Config, error) {
	build, ok := templates[domain]
	if !ok {
		return nil, fmt.Errorf("unknown template domain %q (valid: %s)", domain, strings.Join(Domains(), ", "))
	}
	return build(), nil
}

// FromTemplate instantiates a domain template for concrete tables:
// placeholders in instructions, example SQL and snippets are replaced,
// the table list is rewritten, and space_name/description may be stamped.
// The first table is used for single-table placeholder substitution.
func FromTemplate(domain, catalog, schema string, tableNames []string, spaceName, description string) (*Config, error) {
	cfg, err := Template(domain)
	if err != nil {
		return nil, err
	}

	if spaceName == "" {
		spaceName = fmt.Sprintf("%s Space - %s", titleCase(domain), schema)
	}
	cfg.SpaceName = spaceName
	if description != "" {
		cfg.Description = description
	}

	if len(tableNames) > 0 {
		cfg.Tables = nil
		for _, name := range tableNames {
			cfg.Tables = append(cfg.Tables, Table{Catalog: catalog, Schema: schema, Table: name})
		}
	}

	first := "table"
	if len(tableNames) > 0 {
		first = tableNames[0]
	}
	sub := func(s string) string {
		s = strings.ReplaceAll(s, placeholderFQN, catalog+"."+schema+"."+first)
		s = strings.ReplaceAll(s, placeholderCatalog, catalog)
		s = strings.ReplaceAll(s, placeholderSchema, schema)
		s = strings.ReplaceAll(s, placeholderTable, first)
		return s
	}

	cfg.Description = sub(cfg.Description)
	for i := range cfg.Instructions {
		cfg.Instructions[i].Content = sub(cfg.Instructions[i].Content)
	}
	for i := range cfg.ExampleSQLQueries {
		cfg.ExampleSQLQueries[i].SQLQuery = sub(cfg.ExampleSQLQueries[i].SQLQuery)
	}
	if cfg.SQLSnippets != nil {
		for _, group := range []*[]Snippet{&cfg.SQLSnippets.Measures, &cfg.SQLSnippets.Expressions, &cfg.SQLSnippets.Filters} {
			for i := range *group {
				(*group)[i].SQL = sub((*group)[i].SQL)
			}
		}
	}

	return cfg, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Builders return fresh values so callers can mutate the result freely.
var templates = map[string]func() *Config{
	"minimal": func() *Config {
		return &Config{
			SpaceName:   "Quick Start Space",
			Description: "A minimal Genie space for [CATALOG].[SCHEMA].[TABLE_NAME]",
			Purpose:     "Enable natural language queries on your data",
			Tables: []Table{
				{Catalog: placeholderCatalog, Schema: placeholderSchema, Table: placeholderTable},
			},
			Instructions: []Instruction{
				{Content: "## Time Filtering\nDefault to last 30 days when no time range specified.", Priority: 1},
			},
			ExampleSQLQueries: []ExampleQuery{
				{Question: "Show me recent records", SQLQuery: "SELECT * FROM [TABLE] LIMIT 100"},
			},
		}
	},

	"sales": func() *Config {
		return &Config{
			SpaceName:   "Sales Analytics",
			Description: "Natural language analytics for sales transactions and revenue data",
			Purpose:     "Enable sales team to analyze revenue, transactions, and product performance",
			Tables: []Table{
				{Catalog: placeholderCatalog, Schema: placeholderSchema, Table: placeholderTable},
			},
			Instructions: []Instruction{
				{Content: "## Date Filtering\nUse `transaction_date` or `order_date` for time-based filtering. Default to last 7 days when not specified.", Priority: 1},
				{Content: "## Revenue Calculations\nAlways cast revenue calculations to DECIMAL(38,2) for precision:\n- Example: `CAST(SUM(amount) AS DECIMAL(38,2))`\n- Use `try_divide()` to avoid division by zero", Priority: 2},
				{Content: "## Top Products\nWhen showing top products:\n- Use `LIMIT 10` by default\n- Order by sales or revenue DESC\n- Include product name and total", Priority: 3},
				{Content: "## Time Periods\nSupport common time periods:\n- Last 7 days: `>= CURRENT_DATE - 7`\n- Last 30 days: `>= CURRENT_DATE - 30`\n- This month: `>= DATE_TRUNC('MONTH', CURRENT_DATE)`\n- Last month: Use `DATE_SUB()` function", Priority: 4},
			},
			ExampleSQLQueries: []ExampleQuery{
				{Question: "What were total sales last week?", SQLQuery: "SELECT CAST(SUM(amount) AS DECIMAL(38,2)) as total_sales FROM [TABLE] WHERE transaction_date >= CURRENT_DATE - 7"},
				{Question: "Top 10 products by revenue", SQLQuery: "SELECT product_name, CAST(SUM(amount) AS DECIMAL(38,2)) as revenue FROM [TABLE] GROUP BY product_name ORDER BY revenue DESC LIMIT 10"},
				{Question: "Daily sales trend for the last 30 days", SQLQuery: "SELECT DATE(transaction_date) as sale_date, CAST(SUM(amount) AS DECIMAL(38,2)) as daily_sales FROM [TABLE] WHERE transaction_date >= CURRENT_DATE - 30 GROUP BY DATE(transaction_date) ORDER BY sale_date"},
			},
			SQLSnippets: &SQLSnippets{
				Measures: []Snippet{
					{
						Alias:       "total_revenue",
						SQL:         "CAST(SUM(amount) AS DECIMAL(38,2))",
						DisplayName: "Total Revenue",
						Synonyms:    []string{"revenue", "sales", "total sales"},
						Instruction: "Use for calculating total sales or revenue",
					},
				},
			},
		}
	},

	"customer": func() *Config {
		return &Config{
			SpaceName:   "Customer Analytics",
			Description: "Natural language analytics for customer behavior and segmentation",
			Purpose:     "Enable customer insights team to analyze user behavior, retention, and segmentation",
			Tables: []Table{
				{Catalog: placeholderCatalog, Schema: placeholderSchema, Table: placeholderTable},
			},
			Instructions: []Instruction{
				{Content: "## Customer Identification\nUse `customer_id` or `user_id` for unique customer identification.", Priority: 1},
				{Content: "## Date Columns\nUse `signup_date` or `registration_date` for customer acquisition analysis.\nUse `last_activity_date` or `last_purchase_date` for engagement analysis.", Priority: 2},
				{Content: "## Customer Counts\nAlways use `COUNT(DISTINCT customer_id)` when counting customers to avoid duplicates.", Priority: 3},
				{Content: "## Segmentation\nCommon segments:\n- New customers: signed up in last 30 days\n- Active customers: activity in last 90 days\n- Churned customers: no activity in last 180 days", Priority: 4},
			},
			ExampleSQLQueries: []ExampleQuery{
				{Question: "How many new customers signed up last month?", SQLQuery: "SELECT COUNT(DISTINCT customer_id) as new_customers FROM [TABLE] WHERE signup_date >= DATE_TRUNC('MONTH', CURRENT_DATE - 30) AND signup_date < DATE_TRUNC('MONTH', CURRENT_DATE)"},
				{Question: "What is the customer retention rate?", SQLQuery: "SELECT COUNT(DISTINCT CASE WHEN last_activity_date >= CURRENT_DATE - 90 THEN customer_id END) * 100.0 / COUNT(DISTINCT customer_id) as retention_rate FROM [TABLE]"},
				{Question: "Top 10 customers by total purchases", SQLQuery: "SELECT customer_id, COUNT(*) as purchase_count, CAST(SUM(purchase_amount) AS DECIMAL(38,2)) as total_spent FROM [TABLE] GROUP BY customer_id ORDER BY total_spent DESC LIMIT 10"},
			},
		}
	},

	"inventory": func() *Config {
		return &Config{
			SpaceName:   "Inventory Management",
			Description: "Natural language analytics for inventory levels and warehouse operations",
			Purpose:     "Enable operations team to track stock levels, warehouse capacity, and inventory movement",
			Tables: []Table{
				{Catalog: placeholderCatalog, Schema: placeholderSchema, Table: placeholderTable},
			},
			Instructions: []Instruction{
				{Content: "## Stock Levels\nUse `quantity_on_hand` or `stock_level` for current inventory.\nUse `reorder_point` to identify items needing restocking.", Priority: 1},
				{Content: "## Warehouse Identification\nUse `warehouse_id` or `location_id` to filter by specific warehouses.", Priority: 2},
				{Content: "## Low Stock Alerts\nDefine low stock as: `quantity_on_hand < reorder_point`\nDefine out of stock as: `quantity_on_hand = 0`", Priority: 3},
				{Content: "## Inventory Value\nCalculate inventory value as: `quantity_on_hand * unit_cost`\nCast to DECIMAL(38,2) for precision.", Priority: 4},
			},
			ExampleSQLQueries: []ExampleQuery{
				{Question: "Show me items with low stock", SQLQuery: "SELECT product_id, product_name, quantity_on_hand, reorder_point FROM [TABLE] WHERE quantity_on_hand < reorder_point ORDER BY quantity_on_hand"},
				{Question: "What is the total inventory value?", SQLQuery: "SELECT CAST(SUM(quantity_on_hand * unit_cost) AS DECIMAL(38,2)) as total_value FROM [TABLE]"},
				{Question: "Which warehouse has the most inventory?", SQLQuery: "SELECT warehouse_id, SUM(quantity_on_hand) as total_units FROM [TABLE] GROUP BY warehouse_id ORDER BY total_units DESC LIMIT 1"},
			},
		}
	},

	"financial": func() *Config {
		return &Config{
			SpaceName:   "Financial Analytics",
			Description: "Natural language analytics for budgets, expenses, and financial reporting",
			Purpose:     "Enable finance team to analyze spending, budgets, and P&L statements",
			Tables: []Table{
				{Catalog: placeholderCatalog, Schema: placeholderSchema, Table: placeholderTable},
			},
			Instructions: []Instruction{
				{Content: "## Amount Calculations\nAlways cast financial amounts to DECIMAL(38,2) for precision.\nUse `try_divide()` for percentage calculations to avoid division by zero.", Priority: 1},
				{Content: "## Date Columns\nUse `transaction_date` or `posting_date` for financial periods.\nDefault to current fiscal year when no period is specified.", Priority: 2},
				{Content: "## Account Types\nRevenue accounts: typically positive amounts\nExpense accounts: typically positive amounts (not negative)\nUse `account_type` or `account_category` for classification.", Priority: 3},
				{Content: "## Budget Variance\nCalculate variance as: `actual - budget`\nCalculate variance percentage as: `try_divide((actual - budget), budget) * 100`", Priority: 4},
			},
			ExampleSQLQueries: []ExampleQuery{
				{Question: "What were total expenses last quarter?", SQLQuery: "SELECT CAST(SUM(amount) AS DECIMAL(38,2)) as total_expenses FROM [TABLE] WHERE account_type = 'Expense' AND transaction_date >= DATE_TRUNC('QUARTER', CURRENT_DATE - 90) AND transaction_date < DATE_TRUNC('QUARTER', CURRENT_DATE)"},
				{Question: "Show budget vs actual by department", SQLQuery: "SELECT department, CAST(SUM(budget_amount) AS DECIMAL(38,2)) as budget, CAST(SUM(actual_amount) AS DECIMAL(38,2)) as actual, CAST(SUM(actual_amount - budget_amount) AS DECIMAL(38,2)) as variance FROM [TABLE] GROUP BY department ORDER BY variance DESC"},
				{Question: "Top 5 expense categories", SQLQuery: "SELECT category, CAST(SUM(amount) AS DECIMAL(38,2)) as total_expense FROM [TABLE] WHERE account_type = 'Expense' GROUP BY category ORDER BY total_expense DESC LIMIT 5"},
			},
		}
	},

	"hr": func() *Config {
		return &Config{
			SpaceName:   "HR Analytics",
			Description: "Natural language analytics for headcount, compensation, and performance",
			Purpose:     "Enable HR team to analyze employee data, compensation, and organizational metrics",
			Tables: []Table{
				{Catalog: placeholderCatalog, Schema: placeholderSchema, Table: placeholderTable},
			},
			Instructions: []Instruction{
				{Content: "## Employee Identification\nUse `employee_id` for unique employee identification.\nUse `is_active` or `employment_status = 'Active'` to filter current employees.", Priority: 1},
				{Content: "## Date Columns\nUse `hire_date` for tenure calculations.\nUse `termination_date` for turnover analysis.\nUse `last_review_date` for performance tracking.", Priority: 2},
				{Content: "## Compensation Calculations\nAlways cast salary amounts to DECIMAL(38,2).\nCalculate averages using AVG() function.\nConsider using COUNT(DISTINCT employee_id) for headcount.", Priority: 3},
				{Content: "## Tenure Calculation\nCalculate years of service as: `DATEDIFF(CURRENT_DATE, hire_date) / 365.25`\nRound to appropriate decimal places for reporting.", Priority: 4},
			},
			ExampleSQLQueries: []ExampleQuery{
				{Question: "What is the current headcount by department?", SQLQuery: "SELECT department, COUNT(DISTINCT employee_id) as headcount FROM [TABLE] WHERE is_active = true GROUP BY department ORDER BY headcount DESC"},
				{Question: "What is the average salary by department?", SQLQuery: "SELECT department, CAST(AVG(salary) AS DECIMAL(38,2)) as avg_salary FROM [TABLE] WHERE is_active = true GROUP BY department ORDER BY avg_salary DESC"},
				{Question: "How many employees were hired in the last 6 months?", SQLQuery: "SELECT COUNT(DISTINCT employee_id) as new_hires FROM [TABLE] WHERE hire_date >= CURRENT_DATE - 180"},
			},
		}
	},
}
