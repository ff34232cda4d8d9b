package validate

import (
	"errors"
	"strings"
	"unicode"
)

// CheckSQL runs the lightweight SQL sanity check used for embedded SQL in
// space configurations. It exists to catch copy-paste and templating
// errors, not to guarantee executability — this is deliberately not a
// SQL grammar.
//
// Checks, in order: non-empty text, a best-effort tokenize that must
// yield at least one token, balanced parentheses (raw count of '(' vs
// ')', with no awareness of string literals — a paren inside a quoted
// string still counts), and balanced single quotes (count of ' adjusted
// for \' escapes must be even).
func CheckSQL(sql string) error {
	if strings.TrimSpace(sql) == "" {
		return errors.New("empty SQL query")
	}

	if len(tokenize(sql)) == 0 {
		return errors.New("failed to parse SQL query")
	}

	if strings.Count(sql, "(") != strings.Count(sql, ")") {
		return errors.New("unbalanced parentheses")
	}

	quotes := strings.Count(sql, "'") - strings.Count(sql, `\'`)
	if quotes%2 != 0 {
		return errors.New("unbalanced single quotes")
	}

	return nil
}

// tokenize splits SQL into coarse tokens: words (keywords, identifiers,
// numbers) and individual punctuation runes. Whitespace-only input yields
// no tokens.
func tokenize(sql string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}

	for _, r := range sql {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.':
			word.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()

	return tokens
}
