package lexer

import (
	"log/slog"
	"os"
)

// ASCII character lookup tables for fast classification
var (
	isWhitespace [128]bool
	isLetter     [128]bool
	isDigit      [128]bool
	isIdentPart  [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isWhitespace[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'
		isLetter[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		isDigit[i] = '0' <= ch && ch <= '9'
		// Identifiers start with a letter; digits and underscore may follow.
		isIdentPart[i] = isLetter[i] || isDigit[i] || ch == '_'
	}
}

// Lexer turns Esta source bytes into a stream of classified tokens.
// It scans strictly left-to-right and never backtracks.
type Lexer struct {
	input    []byte
	position int  // Current position in input (byte offset)
	readPos  int  // Next reading position in input (byte offset)
	ch       byte // Current byte under examination (0 at EOF)
	line     int  // Current line number
	column   int  // Current column number

	logger *slog.Logger
}

// New creates a Lexer over the given source bytes.
// Debug logging is enabled when the ESTA_DEBUG_LEXER environment
// variable is set.
func New(source []byte) *Lexer {
	logLevel := slog.LevelInfo
	if os.Getenv("ESTA_DEBUG_LEXER") != "" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove timestamp and level for cleaner trace output
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))

	l := &Lexer{
		input:  source,
		line:   1,
		column: 0, // Incremented to 1 by the initial readChar
		logger: logger,
	}
	l.readChar()
	return l
}

// readChar reads the next byte and advances position
func (l *Lexer) readChar() {
	l.position = l.readPos

	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
		l.readPos++
	}

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

// peekChar returns the next byte without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// skipWhitespace skips whitespace including newlines; newlines are not
// significant in Esta, statements are terminated by semicolons.
func (l *Lexer) skipWhitespace() {
	for l.ch != 0 && l.ch < 128 && isWhitespace[l.ch] {
		l.readChar()
	}
}

// TokenizeToSlice tokenizes the entire input and returns a slice of
// tokens, always terminated by an EOF token.
func (l *Lexer) TokenizeToSlice() []Token {
	var tokens []Token
	for {
		token := l.NextToken()
		tokens = append(tokens, token)
		if token.Type == EOF {
			break
		}
	}
	return tokens
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := Position{Line: l.line, Column: l.column, Offset: l.position}

	if l.ch == 0 {
		return Token{Type: EOF, Position: pos}
	}

	// Non-ASCII bytes match no terminal class
	if l.ch >= 128 {
		tok := l.makeToken(ILLEGAL, l.position, l.position+1, pos)
		l.readChar()
		return tok
	}

	switch {
	case isLetter[l.ch]:
		return l.lexIdentifier(pos)
	case isDigit[l.ch]:
		return l.lexNumber(pos)
	case l.ch == '"':
		return l.lexString(pos)
	}

	// Two-character operators before their single-character prefixes
	if next := l.peekChar(); next != 0 {
		pair := string([]byte{l.ch, next})
		if tt, ok := TwoCharTokens[pair]; ok {
			tok := Token{Type: tt, Position: pos}
			l.readChar()
			l.readChar()
			l.logger.Debug("token", "type", tt.String(), "text", pair)
			return tok
		}
	}

	if tt, ok := SingleCharTokens[l.ch]; ok {
		tok := Token{Type: tt, Position: pos}
		l.logger.Debug("token", "type", tt.String(), "text", string(l.ch))
		l.readChar()
		return tok
	}

	// No terminal matches this character: lexical error token
	tok := l.makeToken(ILLEGAL, l.position, l.position+1, pos)
	l.readChar()
	return tok
}

// lexIdentifier scans an identifier or keyword: a leading letter
// followed by letters, digits, or underscores.
func (l *Lexer) lexIdentifier(pos Position) Token {
	start := l.position
	for l.ch != 0 && l.ch < 128 && isIdentPart[l.ch] {
		l.readChar()
	}

	text := l.input[start:l.position]
	tt := IDENTIFIER
	if kw, ok := Keywords[string(text)]; ok {
		tt = kw
	}

	tok := l.makeToken(tt, start, l.position, pos)
	l.logger.Debug("token", "type", tt.String(), "text", tok.String())
	return tok
}

// lexNumber scans one or more ASCII decimal digits. Range checking
// against the 32-bit signed integer domain happens in the parser.
func (l *Lexer) lexNumber(pos Position) Token {
	start := l.position
	for l.ch != 0 && l.ch < 128 && isDigit[l.ch] {
		l.readChar()
	}

	tok := l.makeToken(NUMBER, start, l.position, pos)
	l.logger.Debug("token", "type", "NUMBER", "text", tok.String())
	return tok
}

// lexString scans a double-quoted span with no embedded quote and no
// escape sequences. The token text keeps both quote characters. An
// unterminated string yields an ILLEGAL token spanning the rest of the
// input.
func (l *Lexer) lexString(pos Position) Token {
	start := l.position
	l.readChar() // opening quote

	for l.ch != '"' && l.ch != 0 {
		l.readChar()
	}

	if l.ch == 0 {
		return l.makeToken(ILLEGAL, start, l.position, pos)
	}

	l.readChar() // closing quote
	tok := l.makeToken(STRING, start, l.position, pos)
	l.logger.Debug("token", "type", "STRING", "text", tok.String())
	return tok
}

func (l *Lexer) makeToken(tt TokenType, start, end int, pos Position) Token {
	return Token{Type: tt, Text: l.input[start:end], Position: pos}
}
