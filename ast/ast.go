// Package ast defines the abstract syntax tree for the Esta language.
//
// The tree is produced by the parser and owned by whoever consumes it:
// every node exclusively owns its children, there is no sharing and no
// cycles, and nodes are never mutated after construction.
//
// Statement and Expression are closed sums: the variant set is fixed by
// the grammar and sealed with unexported marker methods, so consumers
// can switch over them exhaustively.
package ast

import (
	"strings"

	"github.com/esta-lang/esta/lexer"
)

// Node represents any node in the AST. String renders the node to a
// canonical textual form whose re-parse yields a structurally
// identical tree.
type Node interface {
	String() string
	Position() lexer.Position
}

// Statement is the statement variant of the tree
type Statement interface {
	Node
	stmtNode()
}

// Expression is the expression variant of the tree
type Expression interface {
	Node
	exprNode()
}

// Program is the root of the tree: an ordered sequence of statements
type Program struct {
	Statements []Statement
}

func (p *Program) String() string {
	parts := make([]string, 0, len(p.Statements))
	for _, s := range p.Statements {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, "\n")
}

func (p *Program) Position() lexer.Position {
	if len(p.Statements) == 0 {
		return lexer.Position{Line: 1, Column: 1}
	}
	return p.Statements[0].Position()
}

// Operator enumerates the binary and unary operators. The `-` token is
// overloaded: OpSub in infix position, OpNeg in prefix position. The
// two are distinct values resolved purely by grammatical position.
type Operator int

const (
	OpAnd Operator = iota // and
	OpOr                  // or
	OpEq                  // ==
	OpNotEq               // !=
	OpLt                  // <
	OpGt                  // >
	OpLtEq                // <=
	OpGtEq                // >=
	OpAdd                 // +
	OpSub                 // -
	OpMul                 // *
	OpDiv                 // /
	OpNot                 // not (prefix)
	OpNeg                 // - (prefix)
)

// String returns the operator's source spelling
func (op Operator) String() string {
	switch op {
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpEq:
		return "=="
	case OpNotEq:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLtEq:
		return "<="
	case OpGtEq:
		return ">="
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpNot:
		return "not"
	case OpNeg:
		return "-"
	default:
		return "?"
	}
}
