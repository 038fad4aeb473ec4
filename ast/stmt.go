package ast

import (
	"fmt"
	"strings"

	"github.com/esta-lang/esta/lexer"
)

// VarDecl represents a variable declaration: var NAME ( = expr )? ;
// A declaration without an initializer carries an explicit NilLit.
type VarDecl struct {
	Name string
	Init Expression
	Pos  lexer.Position
}

func (s *VarDecl) String() string {
	return fmt.Sprintf("var %s = %s;", s.Name, s.Init.String())
}

func (s *VarDecl) Position() lexer.Position { return s.Pos }
func (s *VarDecl) stmtNode()                {}

// Assign represents an assignment statement: expr = expr ;
// The target is an arbitrary expression; restricting it to assignable
// forms is a semantic-analysis concern, not a parse-time one.
type Assign struct {
	Target Expression
	Value  Expression
	Pos    lexer.Position
}

func (s *Assign) String() string {
	return fmt.Sprintf("%s = %s;", s.Target.String(), s.Value.String())
}

func (s *Assign) Position() lexer.Position { return s.Pos }
func (s *Assign) stmtNode()                {}

// While represents a while loop with a brace-delimited body
type While struct {
	Cond Expression
	Body *Block
	Pos  lexer.Position
}

func (s *While) String() string {
	return fmt.Sprintf("while %s %s", s.Cond.String(), s.Body.String())
}

func (s *While) Position() lexer.Position { return s.Pos }
func (s *While) stmtNode()                {}

// If represents a conditional. Else is never nil: when no else clause
// is written the parser stores an empty Block. Else is a full
// statement, which is what makes `else if` chains nest.
type If struct {
	Cond Expression
	Then *Block
	Else Statement
	Pos  lexer.Position
}

func (s *If) String() string {
	out := fmt.Sprintf("if %s %s", s.Cond.String(), s.Then.String())
	if blk, ok := s.Else.(*Block); ok && len(blk.Statements) == 0 {
		return out
	}
	return out + " else " + s.Else.String()
}

func (s *If) Position() lexer.Position { return s.Pos }
func (s *If) stmtNode()                {}

// For represents a three-clause loop. Any of Init, Cond, and Post may
// be nil when the corresponding clause is omitted.
type For struct {
	Init Expression
	Cond Expression
	Post Expression
	Body *Block
	Pos  lexer.Position
}

func (s *For) String() string {
	var b strings.Builder
	b.WriteString("for ")
	if s.Init != nil {
		b.WriteString(s.Init.String())
	}
	b.WriteString("; ")
	if s.Cond != nil {
		b.WriteString(s.Cond.String())
	}
	b.WriteString("; ")
	if s.Post != nil {
		b.WriteString(s.Post.String())
		b.WriteString(" ")
	}
	b.WriteString(s.Body.String())
	return b.String()
}

func (s *For) Position() lexer.Position { return s.Pos }
func (s *For) stmtNode()                {}

// FunDecl represents a function declaration. Parameter order is
// preserved; duplicate parameter names are not rejected at parse time.
type FunDecl struct {
	Name   string
	Params []string
	Body   *Block
	Pos    lexer.Position
}

func (s *FunDecl) String() string {
	return fmt.Sprintf("fun %s(%s) %s", s.Name, strings.Join(s.Params, ", "), s.Body.String())
}

func (s *FunDecl) Position() lexer.Position { return s.Pos }
func (s *FunDecl) stmtNode()                {}

// Return represents a return statement; Value is nil for a bare return
type Return struct {
	Value Expression
	Pos   lexer.Position
}

func (s *Return) String() string {
	if s.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", s.Value.String())
}

func (s *Return) Position() lexer.Position { return s.Pos }
func (s *Return) stmtNode()                {}

// Break represents a break statement
type Break struct {
	Pos lexer.Position
}

func (s *Break) String() string           { return "break;" }
func (s *Break) Position() lexer.Position { return s.Pos }
func (s *Break) stmtNode()                {}

// Continue represents a continue statement
type Continue struct {
	Pos lexer.Position
}

func (s *Continue) String() string           { return "continue;" }
func (s *Continue) Position() lexer.Position { return s.Pos }
func (s *Continue) stmtNode()                {}

// CallStmt represents a call expression used as a standalone
// statement, for side effects.
type CallStmt struct {
	Call *CallExpr
	Pos  lexer.Position
}

func (s *CallStmt) String() string           { return s.Call.String() + ";" }
func (s *CallStmt) Position() lexer.Position { return s.Pos }
func (s *CallStmt) stmtNode()                {}

// Block represents a brace-delimited statement sequence. Statement
// order is insertion order.
type Block struct {
	Statements []Statement
	Pos        lexer.Position
}

func (s *Block) String() string {
	if len(s.Statements) == 0 {
		return "{ }"
	}
	parts := make([]string, 0, len(s.Statements))
	for _, st := range s.Statements {
		parts = append(parts, st.String())
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

func (s *Block) Position() lexer.Position { return s.Pos }
func (s *Block) stmtNode()                {}
