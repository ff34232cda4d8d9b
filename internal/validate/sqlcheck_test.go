package validate

import (
	"strings"
	"testing"
)

func TestCheckSQLValid(t *testing.T) {
	valid := []string{
		"SELECT 1",
		"SELECT SUM(amount) FROM main.sales.orders WHERE status = 'completed'",
		"SELECT * FROM t WHERE name = 'O\\'Brien'",
		"SELECT count(*), avg(x) FROM (SELECT x FROM t) sub",
	}
	for _, sql := range valid {
		if err := CheckSQL(sql); err != nil {
			t.Errorf("CheckSQL(%q) = %v, want nil", sql, err)
		}
	}
}

func TestCheckSQLInvalid(t *testing.T) {
	tests := []struct {
		sql     string
		wantErr string
	}{
		{"", "empty SQL query"},
		{"   \n\t ", "empty SQL query"},
		{"SELECT * FROM t WHERE (", "unbalanced parentheses"},
		{"SELECT SUM(amount)) FROM t", "unbalanced parentheses"},
		{"SELECT * FROM t WHERE name = 'unclosed", "unbalanced single quotes"},
	}
	for _, tt := range tests {
		err := CheckSQL(tt.sql)
		if err == nil {
			t.Errorf("CheckSQL(%q) = nil, want error %q", tt.sql, tt.wantErr)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("CheckSQL(%q) = %v, want %q", tt.sql, err, tt.wantErr)
		}
	}
}

// The parenthesis count is raw text, with no awareness of string
// literals: a lone paren inside a quoted string still unbalances the
// query. This matches the check's documented best-effort contract.
func TestCheckSQLParenInsideStringStillCounts(t *testing.T) {
	if err := CheckSQL("SELECT * FROM t WHERE x = '('"); err == nil {
		t.Error("expected unbalanced parentheses for paren inside string literal")
	}
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("SELECT a.b, count(*) FROM t")
	want := []string{"SELECT", "a.b", ",", "count", "(", "*", ")", "FROM", "t"}
	if len(tokens) != len(want) {
		t.Fatalf("tokenize = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, tokens[i], want[i])
		}
	}

	if got := tokenize("   "); len(got) != 0 {
		t.Errorf("tokenize(whitespace) = %v, want empty", got)
	}
}
