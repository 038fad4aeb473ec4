package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/esta-lang/esta/ast"
)

// parseOne parses source expected to hold exactly one statement
func parseOne(t *testing.T, src string) ast.Statement {
	t.Helper()

	prog, err := ParseString(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("parse %q: got %d statements, want 1", src, len(prog.Statements))
	}
	return prog.Statements[0]
}

func TestVarDecl(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.Statement
	}{
		{
			name: "with initializer",
			src:  "var x = 42;",
			want: &ast.VarDecl{Name: "x", Init: num(42)},
		},
		{
			name: "missing initializer defaults to Nil",
			src:  "var x;",
			want: &ast.VarDecl{Name: "x", Init: &ast.NilLit{}},
		},
		{
			name: "initializer may be any expression",
			src:  "var total = price * count + tax;",
			want: &ast.VarDecl{
				Name: "total",
				Init: binary(binary(ident("price"), ast.OpMul, ident("count")), ast.OpAdd, ident("tax")),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOne(t, tt.src)
			if diff := cmp.Diff(tt.want, got, ignorePositions); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAssignAndCallStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.Statement
	}{
		{
			name: "simple assignment",
			src:  "x = 1;",
			want: &ast.Assign{Target: ident("x"), Value: num(1)},
		},
		{
			name: "assignment value is a full expression",
			src:  "x = a and b == c;",
			want: &ast.Assign{
				Target: ident("x"),
				Value:  binary(ident("a"), ast.OpAnd, binary(ident("b"), ast.OpEq, ident("c"))),
			},
		},
		{
			name: "standalone call",
			src:  "print(x);",
			want: &ast.CallStmt{Call: &ast.CallExpr{Name: "print", Args: []ast.Expression{ident("x")}}},
		},
		{
			name: "standalone call with no arguments",
			src:  "tick();",
			want: &ast.CallStmt{Call: &ast.CallExpr{Name: "tick", Args: []ast.Expression{}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOne(t, tt.src)
			if diff := cmp.Diff(tt.want, got, ignorePositions); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWhileStmt(t *testing.T) {
	got := parseOne(t, "while x < 10 { x = x + 1; }")
	want := &ast.While{
		Cond: binary(ident("x"), ast.OpLt, num(10)),
		Body: &ast.Block{Statements: []ast.Statement{
			&ast.Assign{Target: ident("x"), Value: binary(ident("x"), ast.OpAdd, num(1))},
		}},
	}
	if diff := cmp.Diff(ast.Statement(want), got, ignorePositions); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestIfStmt(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.Statement
	}{
		{
			name: "missing else becomes an empty block",
			src:  "if x { f(); }",
			want: &ast.If{
				Cond: ident("x"),
				Then: &ast.Block{Statements: []ast.Statement{
					&ast.CallStmt{Call: &ast.CallExpr{Name: "f", Args: []ast.Expression{}}},
				}},
				Else: &ast.Block{},
			},
		},
		{
			name: "explicit else block",
			src:  "if x { f(); } else { g(); }",
			want: &ast.If{
				Cond: ident("x"),
				Then: &ast.Block{Statements: []ast.Statement{
					&ast.CallStmt{Call: &ast.CallExpr{Name: "f", Args: []ast.Expression{}}},
				}},
				Else: &ast.Block{Statements: []ast.Statement{
					&ast.CallStmt{Call: &ast.CallExpr{Name: "g", Args: []ast.Expression{}}},
				}},
			},
		},
		{
			name: "else if chains as a nested if",
			src:  "if a { f(); } else if b { g(); }",
			want: &ast.If{
				Cond: ident("a"),
				Then: &ast.Block{Statements: []ast.Statement{
					&ast.CallStmt{Call: &ast.CallExpr{Name: "f", Args: []ast.Expression{}}},
				}},
				Else: &ast.If{
					Cond: ident("b"),
					Then: &ast.Block{Statements: []ast.Statement{
						&ast.CallStmt{Call: &ast.CallExpr{Name: "g", Args: []ast.Expression{}}},
					}},
					Else: &ast.Block{},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOne(t, tt.src)
			if diff := cmp.Diff(tt.want, got, ignorePositions); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestForStmt(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.Statement
	}{
		{
			name: "all clauses present",
			src:  "for i; i < 10; i + 1 { f(i); }",
			want: &ast.For{
				Init: ident("i"),
				Cond: binary(ident("i"), ast.OpLt, num(10)),
				Post: binary(ident("i"), ast.OpAdd, num(1)),
				Body: &ast.Block{Statements: []ast.Statement{
					&ast.CallStmt{Call: &ast.CallExpr{Name: "f", Args: []ast.Expression{ident("i")}}},
				}},
			},
		},
		{
			name: "all clauses omitted",
			src:  "for ;; { f(); }",
			want: &ast.For{
				Body: &ast.Block{Statements: []ast.Statement{
					&ast.CallStmt{Call: &ast.CallExpr{Name: "f", Args: []ast.Expression{}}},
				}},
			},
		},
		{
			name: "condition only",
			src:  "for ; running; { f(); }",
			want: &ast.For{
				Cond: ident("running"),
				Body: &ast.Block{Statements: []ast.Statement{
					&ast.CallStmt{Call: &ast.CallExpr{Name: "f", Args: []ast.Expression{}}},
				}},
			},
		},
		{
			name: "redundant semicolon after the post clause is tolerated",
			src:  "for i; i < 3; i + 1; { f(); }",
			want: &ast.For{
				Init: ident("i"),
				Cond: binary(ident("i"), ast.OpLt, num(3)),
				Post: binary(ident("i"), ast.OpAdd, num(1)),
				Body: &ast.Block{Statements: []ast.Statement{
					&ast.CallStmt{Call: &ast.CallExpr{Name: "f", Args: []ast.Expression{}}},
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOne(t, tt.src)
			if diff := cmp.Diff(tt.want, got, ignorePositions); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFunDecl(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.Statement
	}{
		{
			name: "no parameters",
			src:  "fun main() { }",
			want: &ast.FunDecl{Name: "main", Params: []string{}, Body: &ast.Block{}},
		},
		{
			name: "several parameters",
			src:  "fun add(a, b) { return a + b; }",
			want: &ast.FunDecl{
				Name:   "add",
				Params: []string{"a", "b"},
				Body: &ast.Block{Statements: []ast.Statement{
					&ast.Return{Value: binary(ident("a"), ast.OpAdd, ident("b"))},
				}},
			},
		},
		{
			name: "trailing comma permitted",
			src:  "fun f(a, b,) { }",
			want: &ast.FunDecl{Name: "f", Params: []string{"a", "b"}, Body: &ast.Block{}},
		},
		{
			name: "duplicate parameter names are not a parse error",
			src:  "fun f(a, a) { }",
			want: &ast.FunDecl{Name: "f", Params: []string{"a", "a"}, Body: &ast.Block{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOne(t, tt.src)
			if diff := cmp.Diff(tt.want, got, ignorePositions); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJumpStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.Statement
	}{
		{name: "bare return", src: "return;", want: &ast.Return{}},
		{name: "return with value", src: "return x * 2;", want: &ast.Return{Value: binary(ident("x"), ast.OpMul, num(2))}},
		{name: "break", src: "break;", want: &ast.Break{}},
		{name: "continue", src: "continue;", want: &ast.Continue{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOne(t, tt.src)
			if diff := cmp.Diff(tt.want, got, ignorePositions); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBareBlockStatement(t *testing.T) {
	got := parseOne(t, "{ var x = 1; { f(); } }")
	want := &ast.Block{Statements: []ast.Statement{
		&ast.VarDecl{Name: "x", Init: num(1)},
		&ast.Block{Statements: []ast.Statement{
			&ast.CallStmt{Call: &ast.CallExpr{Name: "f", Args: []ast.Expression{}}},
		}},
	}}
	if diff := cmp.Diff(ast.Statement(want), got, ignorePositions); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestProgramStatementOrder(t *testing.T) {
	prog, err := ParseString("var a = 1; var b = 2; f(a, b);")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []ast.Statement{
		&ast.VarDecl{Name: "a", Init: num(1)},
		&ast.VarDecl{Name: "b", Init: num(2)},
		&ast.CallStmt{Call: &ast.CallExpr{Name: "f", Args: []ast.Expression{ident("a"), ident("b")}}},
	}
	if diff := cmp.Diff(want, prog.Statements, ignorePositions); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyProgram(t *testing.T) {
	for _, src := range []string{"", "   \n\t  "} {
		prog, err := ParseString(src)
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		if len(prog.Statements) != 0 {
			t.Errorf("parse %q: got %d statements, want 0", src, len(prog.Statements))
		}
	}
}

func TestPositionsReflectSource(t *testing.T) {
	prog, err := ParseString("var x = 1;\nx = 2;")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := prog.Statements[0].Position().Line; got != 1 {
		t.Errorf("first statement line = %d, want 1", got)
	}
	if got := prog.Statements[1].Position().Line; got != 2 {
		t.Errorf("second statement line = %d, want 2", got)
	}
}
