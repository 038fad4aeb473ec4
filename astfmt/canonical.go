// Package astfmt provides a canonical, position-free encoding of Esta
// syntax trees.
//
// The canonical form is a parallel struct tree that drops source
// positions and keeps only grammar content, so two parses of
// semantically identical source encode to identical bytes. It
// serializes to JSON for inspection and to deterministic CBOR for
// hashing and machine exchange.
package astfmt

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/esta-lang/esta/ast"
)

// Node is one node of the canonical tree. Kind is always set; the
// remaining fields are populated per kind (see the schema in
// schema.go for the exact shape of each kind).
type Node struct {
	Kind   string   `json:"kind" cbor:"1,keyasint"`
	Name   string   `json:"name,omitempty" cbor:"2,keyasint,omitempty"`
	Op     string   `json:"op,omitempty" cbor:"3,keyasint,omitempty"`
	Number *int32   `json:"number,omitempty" cbor:"4,keyasint,omitempty"`
	Bool   *bool    `json:"bool,omitempty" cbor:"5,keyasint,omitempty"`
	Text   string   `json:"text,omitempty" cbor:"6,keyasint,omitempty"`
	Params []string `json:"params,omitempty" cbor:"7,keyasint,omitempty"`

	Init    *Node   `json:"init,omitempty" cbor:"8,keyasint,omitempty"`
	Cond    *Node   `json:"cond,omitempty" cbor:"9,keyasint,omitempty"`
	Post    *Node   `json:"post,omitempty" cbor:"10,keyasint,omitempty"`
	Target  *Node   `json:"target,omitempty" cbor:"11,keyasint,omitempty"`
	Value   *Node   `json:"value,omitempty" cbor:"12,keyasint,omitempty"`
	Left    *Node   `json:"left,omitempty" cbor:"13,keyasint,omitempty"`
	Right   *Node   `json:"right,omitempty" cbor:"14,keyasint,omitempty"`
	Operand *Node   `json:"operand,omitempty" cbor:"15,keyasint,omitempty"`
	Then    *Node   `json:"then,omitempty" cbor:"16,keyasint,omitempty"`
	Else    *Node   `json:"else,omitempty" cbor:"17,keyasint,omitempty"`
	Body    *Node   `json:"body,omitempty" cbor:"18,keyasint,omitempty"`
	Call    *Node   `json:"call,omitempty" cbor:"19,keyasint,omitempty"`
	Args    []*Node `json:"args,omitempty" cbor:"20,keyasint,omitempty"`
	Stmts   []*Node `json:"stmts,omitempty" cbor:"21,keyasint,omitempty"`
}

// Canonical converts a parsed program into its canonical tree
func Canonical(prog *ast.Program) *Node {
	n := &Node{Kind: "program", Stmts: []*Node{}}
	for _, s := range prog.Statements {
		n.Stmts = append(n.Stmts, stmtNode(s))
	}
	return n
}

func stmtNode(s ast.Statement) *Node {
	switch st := s.(type) {
	case *ast.VarDecl:
		return &Node{Kind: "var", Name: st.Name, Value: exprNode(st.Init)}
	case *ast.Assign:
		return &Node{Kind: "assign", Target: exprNode(st.Target), Value: exprNode(st.Value)}
	case *ast.While:
		return &Node{Kind: "while", Cond: exprNode(st.Cond), Body: stmtNode(st.Body)}
	case *ast.If:
		return &Node{
			Kind: "if",
			Cond: exprNode(st.Cond),
			Then: stmtNode(st.Then),
			Else: stmtNode(st.Else),
		}
	case *ast.For:
		n := &Node{Kind: "for", Body: stmtNode(st.Body)}
		if st.Init != nil {
			n.Init = exprNode(st.Init)
		}
		if st.Cond != nil {
			n.Cond = exprNode(st.Cond)
		}
		if st.Post != nil {
			n.Post = exprNode(st.Post)
		}
		return n
	case *ast.FunDecl:
		return &Node{Kind: "fun", Name: st.Name, Params: st.Params, Body: stmtNode(st.Body)}
	case *ast.Return:
		n := &Node{Kind: "return"}
		if st.Value != nil {
			n.Value = exprNode(st.Value)
		}
		return n
	case *ast.Break:
		return &Node{Kind: "break"}
	case *ast.Continue:
		return &Node{Kind: "continue"}
	case *ast.CallStmt:
		return &Node{Kind: "call_stmt", Call: exprNode(st.Call)}
	case *ast.Block:
		n := &Node{Kind: "block", Stmts: []*Node{}}
		for _, inner := range st.Statements {
			n.Stmts = append(n.Stmts, stmtNode(inner))
		}
		return n
	default:
		// The statement sum is closed; a new variant is a bug here
		panic(fmt.Sprintf("astfmt: unknown statement type %T", s))
	}
}

func exprNode(e ast.Expression) *Node {
	switch ex := e.(type) {
	case *ast.NumberLit:
		v := ex.Value
		return &Node{Kind: "number", Number: &v}
	case *ast.BoolLit:
		v := ex.Value
		return &Node{Kind: "bool", Bool: &v}
	case *ast.StringLit:
		return &Node{Kind: "string", Text: ex.Value}
	case *ast.NilLit:
		return &Node{Kind: "nil"}
	case *ast.Identifier:
		return &Node{Kind: "ident", Name: ex.Name}
	case *ast.BinaryExpr:
		return &Node{
			Kind:  "binary",
			Op:    ex.Op.String(),
			Left:  exprNode(ex.Left),
			Right: exprNode(ex.Right),
		}
	case *ast.UnaryExpr:
		return &Node{Kind: "unary", Op: ex.Op.String(), Operand: exprNode(ex.Operand)}
	case *ast.CallExpr:
		n := &Node{Kind: "call", Name: ex.Name, Args: []*Node{}}
		for _, a := range ex.Args {
			n.Args = append(n.Args, exprNode(a))
		}
		return n
	default:
		panic(fmt.Sprintf("astfmt: unknown expression type %T", e))
	}
}

// MarshalBinary produces deterministic CBOR encoding of the canonical
// tree. This ensures byte-for-byte stability across runs.
func (n *Node) MarshalBinary() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}

	// Alias to keep CBOR from calling MarshalBinary recursively
	type nodeAlias Node
	alias := (*nodeAlias)(n)

	data, err := encMode.Marshal(alias)
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}

	return data, nil
}

// Hash computes the SHA-256 hash of the canonical tree's CBOR bytes,
// a stable fingerprint for the parsed program.
func (n *Node) Hash() ([32]byte, error) {
	data, err := n.MarshalBinary()
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}

// EncodeJSON renders the canonical tree as indented JSON, the shape
// the schema in schema.go validates.
func EncodeJSON(n *Node) ([]byte, error) {
	return json.MarshalIndent(n, "", "  ")
}
