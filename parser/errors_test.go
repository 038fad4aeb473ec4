package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseErr parses source expected to fail and returns the ParseError
func parseErr(t *testing.T, src string) *ParseError {
	t.Helper()

	prog, err := ParseString(src)
	require.Error(t, err, "input %q should not parse", src)
	require.Nil(t, prog, "a failed parse must not return a partial tree")

	var perr *ParseError
	require.True(t, errors.As(err, &perr), "error should be a *ParseError, got %T", err)
	return perr
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
	}{
		{
			name:    "var without a name",
			src:     "var ;",
			message: "expected an identifier in variable declaration",
		},
		{
			name:    "var without a semicolon",
			src:     "var x = 1",
			message: "expected ';' in variable declaration",
		},
		{
			name:    "assignment without a semicolon",
			src:     "x = 1",
			message: "expected ';' in assignment",
		},
		{
			name:    "call statement without a semicolon",
			src:     "f()",
			message: "expected ';' in call statement",
		},
		{
			name:    "while without a body",
			src:     "while x x = 1;",
			message: "expected '{' in block",
		},
		{
			name:    "unclosed block",
			src:     "{ f();",
			message: "expected '}' in block",
		},
		{
			name:    "unclosed call arguments",
			src:     "f(1, 2;",
			message: "expected ')' in call arguments",
		},
		{
			name:    "unclosed parenthesized expression",
			src:     "var x = (1 + 2;",
			message: "expected ')' in parenthesized expression",
		},
		{
			name:    "missing for clause separator",
			src:     "for i { f(); }",
			message: "expected ';' in for clauses",
		},
		{
			name:    "bare arithmetic expression statement",
			src:     "1 + 2;",
			message: "only call expressions may stand alone as statements",
		},
		{
			name:    "bare identifier statement",
			src:     "x;",
			message: "only call expressions may stand alone as statements",
		},
		{
			name:    "non-call expression inside a block",
			src:     "if x { 1; }",
			message: "only call expressions may stand alone as statements",
		},
		{
			name:    "else without if",
			src:     "else { f(); }",
			message: "'else' without a preceding 'if'",
		},
		{
			name:    "operator with no operand",
			src:     "var x = 1 + ;",
			message: "expected expression",
		},
		{
			name:    "statement keyword in expression position",
			src:     "var x = while;",
			message: "expected expression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := parseErr(t, tt.src)
			assert.Equal(t, KindSyntax, perr.Kind)
			assert.Contains(t, perr.Message, tt.message)
		})
	}
}

func TestLexicalErrors(t *testing.T) {
	t.Run("unterminated string", func(t *testing.T) {
		perr := parseErr(t, `var s = "no closing quote;`)
		assert.Equal(t, KindLexical, perr.Kind)
		assert.Contains(t, perr.Message, "unterminated string literal")
	})

	t.Run("character outside the alphabet", func(t *testing.T) {
		perr := parseErr(t, "var x = 1 @ 2;")
		assert.Equal(t, KindLexical, perr.Kind)
		assert.Contains(t, perr.Message, "character matches no token")
	})

	t.Run("lexical error wins over later syntax errors", func(t *testing.T) {
		// The fragment before the bad character is also ill-formed, but
		// the lexical failure is reported first.
		perr := parseErr(t, "var = @;")
		assert.Equal(t, KindLexical, perr.Kind)
	})
}

func TestLiteralErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "far too many digits", src: "var x = 99999999999;"},
		{name: "one past max i32", src: "var x = 2147483648;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := parseErr(t, tt.src)
			assert.Equal(t, KindLiteral, perr.Kind)
			assert.Contains(t, perr.Message, "32-bit signed integer")
		})
	}
}

func TestKeywordSuggestion(t *testing.T) {
	perr := parseErr(t, "wihle x { f(); }")
	assert.Equal(t, KindSyntax, perr.Kind)
	require.NotEmpty(t, perr.Suggestions)
	assert.Equal(t, "while", perr.Suggestions[0])
	assert.Contains(t, perr.Error(), "did you mean 'while'?")
}

func TestErrorSnippetFormatting(t *testing.T) {
	perr := parseErr(t, "var x = 1\nvar y = 2;")

	rendered := perr.Error()
	assert.Contains(t, rendered, "syntax error:")
	assert.Contains(t, rendered, "--> 2:1", "snippet should point at the token that broke the parse")
	assert.Contains(t, rendered, "var y = 2;", "snippet should include the offending line")

	// The caret sits under the reported column
	lines := strings.Split(rendered, "\n")
	caretLine := lines[len(lines)-1]
	assert.True(t, strings.HasSuffix(caretLine, "^"), "last snippet line should end with a caret, got %q", caretLine)
}

func TestErrorPositionIsOffendingToken(t *testing.T) {
	perr := parseErr(t, "var x = 99999999999;")
	assert.Equal(t, 1, perr.Token.Position.Line)
	assert.Equal(t, 9, perr.Token.Position.Column)
}
