package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/esta-lang/esta/lexer"
)

// NumberLit represents a numeric literal. Esta numbers are 32-bit
// signed integers parsed from decimal digit sequences.
type NumberLit struct {
	Value int32
	Pos   lexer.Position
}

func (e *NumberLit) String() string           { return strconv.FormatInt(int64(e.Value), 10) }
func (e *NumberLit) Position() lexer.Position { return e.Pos }
func (e *NumberLit) exprNode()                {}

// BoolLit represents the keyword literals True and False
type BoolLit struct {
	Value bool
	Pos   lexer.Position
}

func (e *BoolLit) String() string {
	if e.Value {
		return "True"
	}
	return "False"
}

func (e *BoolLit) Position() lexer.Position { return e.Pos }
func (e *BoolLit) exprNode()                {}

// StringLit represents a string literal. Value keeps the full quoted
// lexeme including both quote characters, exactly as written.
type StringLit struct {
	Value string
	Pos   lexer.Position
}

func (e *StringLit) String() string           { return e.Value }
func (e *StringLit) Position() lexer.Position { return e.Pos }
func (e *StringLit) exprNode()                {}

// NilLit represents the keyword literal Nil
type NilLit struct {
	Pos lexer.Position
}

func (e *NilLit) String() string           { return "Nil" }
func (e *NilLit) Position() lexer.Position { return e.Pos }
func (e *NilLit) exprNode()                {}

// Identifier represents a bare name expression
type Identifier struct {
	Name string
	Pos  lexer.Position
}

func (e *Identifier) String() string           { return e.Name }
func (e *Identifier) Position() lexer.Position { return e.Pos }
func (e *Identifier) exprNode()                {}

// BinaryExpr represents an infix operation. Same-precedence chains are
// left-associative, so the leftmost operation is the deepest node's
// left operand and the rightmost operation is the root.
type BinaryExpr struct {
	Left  Expression
	Op    Operator
	Right Expression
	Pos   lexer.Position
}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Op.String(), e.Right.String())
}

func (e *BinaryExpr) Position() lexer.Position { return e.Pos }
func (e *BinaryExpr) exprNode()                {}

// UnaryExpr represents a prefix operation (not or negation). Prefix
// operators stack: `- - x` is two nested UnaryExpr nodes.
type UnaryExpr struct {
	Op      Operator
	Operand Expression
	Pos     lexer.Position
}

func (e *UnaryExpr) String() string {
	if e.Op == OpNot {
		return fmt.Sprintf("(not %s)", e.Operand.String())
	}
	return fmt.Sprintf("(-%s)", e.Operand.String())
}

func (e *UnaryExpr) Position() lexer.Position { return e.Pos }
func (e *UnaryExpr) exprNode()                {}

// CallExpr represents a function call with ordered arguments
type CallExpr struct {
	Name string
	Args []Expression
	Pos  lexer.Position
}

func (e *CallExpr) String() string {
	parts := make([]string, 0, len(e.Args))
	for _, a := range e.Args {
		parts = append(parts, a.String())
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(parts, ", "))
}

func (e *CallExpr) Position() lexer.Position { return e.Pos }
func (e *CallExpr) exprNode()                {}
