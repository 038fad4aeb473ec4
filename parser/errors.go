package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/esta-lang/esta/lexer"
)

// ErrorKind categorizes parse failures. All kinds are fatal: the parser
// either yields a complete tree or fails at the first irreconcilable
// token, with no recovery and no partial result.
type ErrorKind int

const (
	// KindSyntax covers token streams that match no production of the
	// current nonterminal, including missing terminators and braces.
	KindSyntax ErrorKind = iota
	// KindLexical covers character sequences that match no terminal.
	// Surfaced by the lexer and propagated through the parser.
	KindLexical
	// KindLiteral covers numeric literals outside the 32-bit signed
	// integer range.
	KindLiteral
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax error"
	case KindLexical:
		return "lexical error"
	case KindLiteral:
		return "literal error"
	default:
		return "error"
	}
}

// ParseError represents a parsing error with location and context
// information. Source holds the full input so Error can render a
// snippet around the offending token.
type ParseError struct {
	Kind        ErrorKind
	Message     string
	Token       lexer.Token
	Source      []byte
	Suggestions []string // Possible fixes, e.g. a close keyword match
}

// Error returns the formatted error message with line/column, a code
// snippet, and any suggestions
func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind.String(), e.Message)

	if snippet := e.createCodeSnippet(); snippet != "" {
		b.WriteString("\n")
		b.WriteString(snippet)
	}

	for _, s := range e.Suggestions {
		fmt.Fprintf(&b, "\n  = help: did you mean '%s'?", s)
	}

	return b.String()
}

// createCodeSnippet renders the offending source line with a caret
// pointing at the error location, Rust/Clang style
func (e *ParseError) createCodeSnippet() string {
	if len(e.Source) == 0 || e.Token.Position.Line == 0 {
		return ""
	}

	lines := strings.Split(string(e.Source), "\n")
	if e.Token.Position.Line > len(lines) {
		return ""
	}

	lineContent := lines[e.Token.Position.Line-1]
	col := e.Token.Position.Column

	var snippet strings.Builder
	snippet.WriteString(fmt.Sprintf("  --> %d:%d\n", e.Token.Position.Line, col))
	snippet.WriteString("   |\n")
	snippet.WriteString(fmt.Sprintf("%2d | %s\n", e.Token.Position.Line, lineContent))
	snippet.WriteString("   | ")
	if col > 0 && col <= len(lineContent)+1 {
		snippet.WriteString(strings.Repeat(" ", col-1) + "^")
	}

	return snippet.String()
}

// keywordCandidates is the suggestion pool for misspelled keywords,
// sorted so that distance ties resolve the same way every run
var keywordCandidates = func() []string {
	out := make([]string, 0, len(lexer.Keywords))
	for kw := range lexer.Keywords {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}()

// closestKeyword finds the keyword nearest to target, or "" when no
// keyword is within editing distance 2
func closestKeyword(target string) string {
	best := ""
	bestDist := 3
	for _, kw := range keywordCandidates {
		if d := fuzzy.LevenshteinDistance(target, kw); d < bestDist {
			best = kw
			bestDist = d
		}
	}
	return best
}

// errSyntax builds a fatal syntax error at the given token
func (p *parser) errSyntax(tok lexer.Token, format string, args ...interface{}) error {
	return &ParseError{
		Kind:    KindSyntax,
		Message: fmt.Sprintf(format, args...),
		Token:   tok,
		Source:  p.source,
	}
}

// errExpected builds a syntax error of the common "expected X" shape
func (p *parser) errExpected(what, context string) error {
	got := p.current()
	return p.errSyntax(got, "expected %s in %s, got '%s'", what, context, got.Symbol())
}
