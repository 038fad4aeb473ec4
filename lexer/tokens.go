package lexer

// TokenType classifies the lexical tokens of the Esta language
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Keywords
	VAR      // var
	WHILE    // while
	IF       // if
	ELSE     // else
	FOR      // for
	FUN      // fun
	RETURN   // return
	BREAK    // break
	CONTINUE // continue

	// Keyword operators
	AND // and
	OR  // or
	NOT // not

	// Keyword literals
	NIL   // Nil
	TRUE  // True
	FALSE // False

	// Brackets and punctuation
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	SEMICOLON // ;
	COMMA     // ,
	EQUALS    // =

	// Comparison operators
	EQ_EQ  // ==
	NOT_EQ // !=
	LT     // <
	LT_EQ  // <=
	GT     // >
	GT_EQ  // >=

	// Arithmetic operators
	PLUS     // +
	MINUS    // -
	MULTIPLY // *
	DIVIDE   // /

	// Literals and names
	IDENTIFIER // variable and function names
	NUMBER     // decimal digit sequence, 32-bit signed
	STRING     // double-quoted span, stored with its quotes
)

// Token represents a lexical token
type Token struct {
	Type     TokenType
	Text     []byte // Lexeme bytes; strings keep their surrounding quotes
	Position Position
}

// String returns the token text as a string (for testing and debugging)
func (t Token) String() string {
	return string(t.Text)
}

// Symbol returns the token's symbol or text representation.
// For tokens with Text (identifiers, literals), returns the text.
// For operator tokens with empty Text, returns the static symbol.
func (t Token) Symbol() string {
	if len(t.Text) > 0 {
		return string(t.Text)
	}

	switch t.Type {
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case LBRACE:
		return "{"
	case RBRACE:
		return "}"
	case SEMICOLON:
		return ";"
	case COMMA:
		return ","
	case EQUALS:
		return "="
	case EQ_EQ:
		return "=="
	case NOT_EQ:
		return "!="
	case LT:
		return "<"
	case LT_EQ:
		return "<="
	case GT:
		return ">"
	case GT_EQ:
		return ">="
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case MULTIPLY:
		return "*"
	case DIVIDE:
		return "/"
	case EOF:
		return "end of input"
	default:
		return ""
	}
}

// Position represents a position in the source code
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case ILLEGAL:
		return "ILLEGAL"
	case VAR:
		return "VAR"
	case WHILE:
		return "WHILE"
	case IF:
		return "IF"
	case ELSE:
		return "ELSE"
	case FOR:
		return "FOR"
	case FUN:
		return "FUN"
	case RETURN:
		return "RETURN"
	case BREAK:
		return "BREAK"
	case CONTINUE:
		return "CONTINUE"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case NOT:
		return "NOT"
	case NIL:
		return "NIL"
	case TRUE:
		return "TRUE"
	case FALSE:
		return "FALSE"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case LBRACE:
		return "LBRACE"
	case RBRACE:
		return "RBRACE"
	case SEMICOLON:
		return "SEMICOLON"
	case COMMA:
		return "COMMA"
	case EQUALS:
		return "EQUALS"
	case EQ_EQ:
		return "EQ_EQ"
	case NOT_EQ:
		return "NOT_EQ"
	case LT:
		return "LT"
	case LT_EQ:
		return "LT_EQ"
	case GT:
		return "GT"
	case GT_EQ:
		return "GT_EQ"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case MULTIPLY:
		return "MULTIPLY"
	case DIVIDE:
		return "DIVIDE"
	case IDENTIFIER:
		return "IDENTIFIER"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	default:
		return "UNKNOWN"
	}
}

// Keywords maps reserved words to their corresponding token types.
// Note the capitalized keyword literals: Nil, True, False.
var Keywords = map[string]TokenType{
	"var":      VAR,
	"while":    WHILE,
	"if":       IF,
	"else":     ELSE,
	"for":      FOR,
	"fun":      FUN,
	"return":   RETURN,
	"break":    BREAK,
	"continue": CONTINUE,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
	"Nil":      NIL,
	"True":     TRUE,
	"False":    FALSE,
}

// SingleCharTokens maps single characters to their token types
var SingleCharTokens = map[byte]TokenType{
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	';': SEMICOLON,
	',': COMMA,
	'=': EQUALS,
	'<': LT,
	'>': GT,
	'+': PLUS,
	'-': MINUS,
	'*': MULTIPLY,
	'/': DIVIDE,
}

// TwoCharTokens maps two-character sequences to their token types
var TwoCharTokens = map[string]TokenType{
	"==": EQ_EQ,
	"!=": NOT_EQ,
	"<=": LT_EQ,
	">=": GT_EQ,
}
