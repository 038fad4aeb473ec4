// Package parser implements the Esta front end: a hand-written
// recursive-descent parser that turns a token stream into an abstract
// syntax tree. One function per nonterminal; expressions use a
// precedence-climbing chain of sub-parsers (see expressions.go).
//
// Parsing is single-threaded and strictly left-to-right. Lookahead is
// limited to what each rule structurally needs (one or two tokens); the
// assignment-vs-expression-statement choice is resolved by parsing one
// expression and then deciding on an `=` lookahead, so no backtracking
// is required. Errors are fatal: the parser yields a complete tree or
// fails at the first irreconcilable token.
package parser

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/esta-lang/esta/ast"
	"github.com/esta-lang/esta/invariant"
	"github.com/esta-lang/esta/lexer"
)

// Parse lexes and parses the input bytes and returns the program tree.
// Takes []byte directly so file contents need no copying.
func Parse(source []byte, opts ...Option) (*ast.Program, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	var startTotal, startLex time.Time
	if cfg.telemetry != nil {
		startTotal = time.Now()
		startLex = startTotal
	}

	lex := lexer.New(source)
	tokens := lex.TokenizeToSlice()

	if cfg.telemetry != nil {
		cfg.telemetry.LexTime = time.Since(startLex)
		cfg.telemetry.TokenCount = len(tokens)
	}

	return parseTokens(source, tokens, cfg)
}

// ParseString is a convenience wrapper for tests
func ParseString(input string, opts ...Option) (*ast.Program, error) {
	return Parse([]byte(input), opts...)
}

// ParseTokens parses pre-lexed tokens against their source (for
// benchmarking pure parse performance and for callers with their own
// lexer). The token slice must be EOF-terminated.
func ParseTokens(source []byte, tokens []lexer.Token, opts ...Option) (*ast.Program, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return parseTokens(source, tokens, cfg)
}

func parseTokens(source []byte, tokens []lexer.Token, cfg *config) (*ast.Program, error) {
	invariant.Precondition(len(tokens) > 0 && tokens[len(tokens)-1].Type == lexer.EOF,
		"token stream must be EOF-terminated")

	p := &parser{
		source: source,
		tokens: tokens,
		config: cfg,
		logger: newTraceLogger(cfg),
	}

	// Lexical errors surface before any production is tried
	if err := p.checkIllegalTokens(); err != nil {
		return nil, err
	}

	var startParse time.Time
	if cfg.telemetry != nil {
		startParse = time.Now()
	}

	prog, err := p.program()
	if err != nil {
		return nil, err
	}

	if cfg.telemetry != nil {
		cfg.telemetry.ParseTime = time.Since(startParse)
		cfg.telemetry.TotalTime = cfg.telemetry.LexTime + cfg.telemetry.ParseTime
		cfg.telemetry.StatementCount = len(prog.Statements)
	}

	return prog, nil
}

// newTraceLogger builds the debug logger; tracing is active when either
// the WithDebugPaths option or ESTA_DEBUG_PARSER is set
func newTraceLogger(cfg *config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.debug || os.Getenv("ESTA_DEBUG_PARSER") != "" {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// parser is the internal parser state. Each parse invocation owns its
// own cursor and produces an independent tree with no aliasing back
// into parser state.
type parser struct {
	source []byte
	tokens []lexer.Token
	pos    int
	config *config
	logger *slog.Logger
}

// trace logs a nonterminal entry when debug tracing is enabled
func (p *parser) trace(rule string) {
	p.logger.Debug("enter", "rule", rule, "pos", p.pos, "token", p.current().Type.String())
}

// current returns the token under the cursor; the stream is
// EOF-terminated so the cursor never runs past the end
func (p *parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

// peek returns the token after the cursor without advancing
func (p *parser) peek() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

// at reports whether the current token has the given type
func (p *parser) at(tt lexer.TokenType) bool {
	return p.current().Type == tt
}

// advance consumes and returns the current token
func (p *parser) advance() lexer.Token {
	tok := p.current()
	if !p.at(lexer.EOF) {
		p.pos++
	}
	return tok
}

// expect consumes a token of the given type or fails with a syntax
// error naming the surrounding construct
func (p *parser) expect(tt lexer.TokenType, context string) (lexer.Token, error) {
	if !p.at(tt) {
		return lexer.Token{}, p.errExpected(describe(tt), context)
	}
	return p.advance(), nil
}

// describe names a token type for error messages: punctuators by their
// spelling, token classes by an article phrase
func describe(tt lexer.TokenType) string {
	switch tt {
	case lexer.IDENTIFIER:
		return "an identifier"
	case lexer.NUMBER:
		return "a number"
	case lexer.STRING:
		return "a string"
	default:
		return "'" + (lexer.Token{Type: tt}).Symbol() + "'"
	}
}

// checkIllegalTokens propagates the first lexical error, if any
func (p *parser) checkIllegalTokens() error {
	for _, tok := range p.tokens {
		if tok.Type != lexer.ILLEGAL {
			continue
		}
		msg := "character matches no token"
		if len(tok.Text) > 0 && tok.Text[0] == '"' {
			msg = "unterminated string literal"
		}
		return &ParseError{
			Kind:    KindLexical,
			Message: msg,
			Token:   tok,
			Source:  p.source,
		}
	}
	return nil
}

// program parses the start symbol: a statement sequence up to EOF
func (p *parser) program() (*ast.Program, error) {
	p.trace("program")

	prog := &ast.Program{}
	for !p.at(lexer.EOF) {
		prevPos := p.pos

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)

		invariant.Invariant(p.pos > prevPos, "parser stuck in program() at pos %d", p.pos)
	}
	return prog, nil
}

// statement parses exactly one statement, dispatching on the leading
// token. First match wins.
func (p *parser) statement() (ast.Statement, error) {
	p.trace("statement")

	switch p.current().Type {
	case lexer.VAR:
		return p.varDecl()
	case lexer.WHILE:
		return p.whileStmt()
	case lexer.IF:
		return p.ifStmt()
	case lexer.FOR:
		return p.forStmt()
	case lexer.FUN:
		return p.funDecl()
	case lexer.RETURN:
		return p.returnStmt()
	case lexer.BREAK:
		tok := p.advance()
		if _, err := p.expect(lexer.SEMICOLON, "break statement"); err != nil {
			return nil, err
		}
		return &ast.Break{Pos: tok.Position}, nil
	case lexer.CONTINUE:
		tok := p.advance()
		if _, err := p.expect(lexer.SEMICOLON, "continue statement"); err != nil {
			return nil, err
		}
		return &ast.Continue{Pos: tok.Position}, nil
	case lexer.LBRACE:
		return p.block()
	case lexer.ELSE:
		return nil, p.errSyntax(p.current(), "'else' without a preceding 'if'")
	default:
		return p.exprStmt()
	}
}

// varDecl parses: var IDENTIFIER ( = expression )? ;
// A missing initializer defaults to an explicit Nil literal.
func (p *parser) varDecl() (ast.Statement, error) {
	p.trace("varDecl")

	varTok := p.advance()

	nameTok, err := p.expect(lexer.IDENTIFIER, "variable declaration")
	if err != nil {
		return nil, err
	}

	var init ast.Expression = &ast.NilLit{Pos: nameTok.Position}
	if p.at(lexer.EQUALS) {
		p.advance()
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.SEMICOLON, "variable declaration"); err != nil {
		return nil, err
	}

	return &ast.VarDecl{Name: nameTok.String(), Init: init, Pos: varTok.Position}, nil
}

// whileStmt parses: while expression block
func (p *parser) whileStmt() (ast.Statement, error) {
	p.trace("whileStmt")

	whileTok := p.advance()

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.While{Cond: cond, Body: body, Pos: whileTok.Position}, nil
}

// ifStmt parses: if expression block ( else statement )?
//
// The then branch requires braces; the else branch is a full statement,
// which is what makes `else if` chains parse as nested If nodes. A
// missing else yields an empty block, never a nil branch.
func (p *parser) ifStmt() (ast.Statement, error) {
	p.trace("ifStmt")

	ifTok := p.advance()

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}

	then, err := p.block()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Statement = &ast.Block{Pos: then.Pos}
	if p.at(lexer.ELSE) {
		p.advance()
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{Cond: cond, Then: then, Else: elseBranch, Pos: ifTok.Position}, nil
}

// forStmt parses: for expression? ; expression? ; expression? ;? block
//
// All three clauses are optional. The conventional two-separator form
// is the grammar; a redundant third semicolon immediately before the
// opening brace is accepted and ignored.
func (p *parser) forStmt() (ast.Statement, error) {
	p.trace("forStmt")

	forTok := p.advance()

	var init, cond, post ast.Expression
	var err error

	if !p.at(lexer.SEMICOLON) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMICOLON, "for clauses"); err != nil {
		return nil, err
	}

	if !p.at(lexer.SEMICOLON) {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMICOLON, "for clauses"); err != nil {
		return nil, err
	}

	if !p.at(lexer.SEMICOLON) && !p.at(lexer.LBRACE) {
		post, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if p.at(lexer.SEMICOLON) {
		p.advance()
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.For{Init: init, Cond: cond, Post: post, Body: body, Pos: forTok.Position}, nil
}

// funDecl parses: fun IDENTIFIER ( params ) block
//
// The parameter list permits a fully empty list and a trailing comma.
// Duplicate parameter names are not rejected here; that is a
// semantic-analysis concern.
func (p *parser) funDecl() (ast.Statement, error) {
	p.trace("funDecl")

	funTok := p.advance()

	nameTok, err := p.expect(lexer.IDENTIFIER, "function declaration")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.LPAREN, "parameter list"); err != nil {
		return nil, err
	}

	params := []string{}
	err = p.commaList(lexer.RPAREN, func() error {
		param, err := p.expect(lexer.IDENTIFIER, "parameter list")
		if err != nil {
			return err
		}
		params = append(params, param.String())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.RPAREN, "parameter list"); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.FunDecl{Name: nameTok.String(), Params: params, Body: body, Pos: funTok.Position}, nil
}

// returnStmt parses: return expression? ;
func (p *parser) returnStmt() (ast.Statement, error) {
	p.trace("returnStmt")

	retTok := p.advance()

	var value ast.Expression
	var err error
	if !p.at(lexer.SEMICOLON) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.SEMICOLON, "return statement"); err != nil {
		return nil, err
	}

	return &ast.Return{Value: value, Pos: retTok.Position}, nil
}

// exprStmt parses the two statement forms that begin with an
// expression: an assignment `expr = expr ;` or a standalone call
// `call ;`. The choice is made after one expression on `=` lookahead,
// since `=` belongs to no expression production.
func (p *parser) exprStmt() (ast.Statement, error) {
	p.trace("exprStmt")

	leading := p.current()

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if p.at(lexer.EQUALS) {
		p.advance()
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMICOLON, "assignment"); err != nil {
			return nil, err
		}
		return &ast.Assign{Target: expr, Value: value, Pos: leading.Position}, nil
	}

	call, ok := expr.(*ast.CallExpr)
	if !ok {
		perr := &ParseError{
			Kind:    KindSyntax,
			Message: "only call expressions may stand alone as statements",
			Token:   leading,
			Source:  p.source,
		}
		// A lone identifier in statement position is often a misspelled
		// keyword; offer the closest one.
		if leading.Type == lexer.IDENTIFIER {
			if kw := closestKeyword(leading.String()); kw != "" {
				perr.Suggestions = append(perr.Suggestions, kw)
			}
		}
		return nil, perr
	}

	if _, err := p.expect(lexer.SEMICOLON, "call statement"); err != nil {
		return nil, err
	}

	return &ast.CallStmt{Call: call, Pos: leading.Position}, nil
}

// block parses: { statement* }
func (p *parser) block() (*ast.Block, error) {
	p.trace("block")

	open, err := p.expect(lexer.LBRACE, "block")
	if err != nil {
		return nil, err
	}

	blk := &ast.Block{Pos: open.Position}
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		prevPos := p.pos

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		blk.Statements = append(blk.Statements, stmt)

		invariant.Invariant(p.pos > prevPos, "parser stuck in block() at pos %d", p.pos)
	}

	if _, err := p.expect(lexer.RBRACE, "block"); err != nil {
		return nil, err
	}

	return blk, nil
}

// commaList parses zero or more comma-separated items up to (but not
// consuming) the closing token. A trailing comma before the closer is
// permitted, as is a fully empty list. Reused for parameter and
// argument lists.
func (p *parser) commaList(closing lexer.TokenType, parseItem func() error) error {
	for !p.at(closing) && !p.at(lexer.EOF) {
		if err := parseItem(); err != nil {
			return err
		}

		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return nil
}

// parseInt32 converts a NUMBER token to a 32-bit signed integer,
// failing the parse when the digits do not fit
func (p *parser) parseInt32(tok lexer.Token) (int32, error) {
	v, err := strconv.ParseInt(tok.String(), 10, 32)
	if err != nil {
		return 0, &ParseError{
			Kind:    KindLiteral,
			Message: "numeric literal '" + tok.String() + "' does not fit a 32-bit signed integer",
			Token:   tok,
			Source:  p.source,
		}
	}
	return int32(v), nil
}
