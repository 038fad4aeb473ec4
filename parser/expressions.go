package parser

import (
	"github.com/esta-lang/esta/ast"
	"github.com/esta-lang/esta/lexer"
)

// Expression parsing: a six-layer precedence-climbing chain. Each
// binary layer is left-associative and parses
//
//	Layer := NextLayer ( Op NextLayer )*
//
// building the tree bottom-up so same-precedence chains group to the
// left (`a - b - c` is `(a-b)-c`). The unary layer is prefix and
// self-recursive, so prefix operators stack. Parentheses reset
// precedence and leave no node of their own.

// binaryOps maps infix tokens to operators, one map per layer
var (
	logicalOps = map[lexer.TokenType]ast.Operator{
		lexer.AND: ast.OpAnd,
		lexer.OR:  ast.OpOr,
	}
	equalityOps = map[lexer.TokenType]ast.Operator{
		lexer.EQ_EQ:  ast.OpEq,
		lexer.NOT_EQ: ast.OpNotEq,
	}
	comparisonOps = map[lexer.TokenType]ast.Operator{
		lexer.LT:    ast.OpLt,
		lexer.GT:    ast.OpGt,
		lexer.LT_EQ: ast.OpLtEq,
		lexer.GT_EQ: ast.OpGtEq,
	}
	additiveOps = map[lexer.TokenType]ast.Operator{
		lexer.PLUS:  ast.OpAdd,
		lexer.MINUS: ast.OpSub,
	}
	multiplicativeOps = map[lexer.TokenType]ast.Operator{
		lexer.MULTIPLY: ast.OpMul,
		lexer.DIVIDE:   ast.OpDiv,
	}
)

// expression parses the lowest-precedence layer; every sub-expression
// re-enters here
func (p *parser) expression() (ast.Expression, error) {
	p.trace("expression")
	return p.binaryLayer(logicalOps, p.equality)
}

func (p *parser) equality() (ast.Expression, error) {
	return p.binaryLayer(equalityOps, p.comparison)
}

func (p *parser) comparison() (ast.Expression, error) {
	return p.binaryLayer(comparisonOps, p.additive)
}

func (p *parser) additive() (ast.Expression, error) {
	return p.binaryLayer(additiveOps, p.multiplicative)
}

func (p *parser) multiplicative() (ast.Expression, error) {
	return p.binaryLayer(multiplicativeOps, p.unary)
}

// binaryLayer parses one left-associative precedence layer: operands
// come from the next-higher layer, and each operator in ops folds the
// accumulated left operand into a new BinaryExpr
func (p *parser) binaryLayer(ops map[lexer.TokenType]ast.Operator, next func() (ast.Expression, error)) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.current().Type]
		if !ok {
			return left, nil
		}
		opTok := p.advance()

		right, err := next()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Pos: opTok.Position}
	}
}

// unary parses the prefix layer: UnaryOp unary | primary. The `-`
// token is negation here because no left operand has been parsed;
// infix subtraction lives in the additive layer.
func (p *parser) unary() (ast.Expression, error) {
	p.trace("unary")

	var op ast.Operator
	switch p.current().Type {
	case lexer.NOT:
		op = ast.OpNot
	case lexer.MINUS:
		op = ast.OpNeg
	default:
		return p.primary()
	}

	opTok := p.advance()
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Op: op, Operand: operand, Pos: opTok.Position}, nil
}

// primary parses literals, identifiers, calls, and parenthesized
// expressions. An identifier immediately followed by '(' is a call;
// otherwise it is a bare name.
func (p *parser) primary() (ast.Expression, error) {
	p.trace("primary")

	tok := p.current()
	switch tok.Type {
	case lexer.NUMBER:
		p.advance()
		value, err := p.parseInt32(tok)
		if err != nil {
			return nil, err
		}
		return &ast.NumberLit{Value: value, Pos: tok.Position}, nil

	case lexer.STRING:
		p.advance()
		return &ast.StringLit{Value: tok.String(), Pos: tok.Position}, nil

	case lexer.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true, Pos: tok.Position}, nil

	case lexer.FALSE:
		p.advance()
		return &ast.BoolLit{Value: false, Pos: tok.Position}, nil

	case lexer.NIL:
		p.advance()
		return &ast.NilLit{Pos: tok.Position}, nil

	case lexer.IDENTIFIER:
		if p.peek().Type == lexer.LPAREN {
			return p.call()
		}
		p.advance()
		return &ast.Identifier{Name: tok.String(), Pos: tok.Position}, nil

	case lexer.LPAREN:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "parenthesized expression"); err != nil {
			return nil, err
		}
		// Grouping affects parse order only; the parentheses leave no node
		return expr, nil

	default:
		return nil, p.errSyntax(tok, "expected expression, got '%s'", tok.Symbol())
	}
}

// call parses: IDENTIFIER ( args ). Arguments use the same comma
// combinator as parameter lists: empty lists and trailing commas are
// both permitted.
func (p *parser) call() (ast.Expression, error) {
	p.trace("call")

	nameTok := p.advance()
	if _, err := p.expect(lexer.LPAREN, "call arguments"); err != nil {
		return nil, err
	}

	args := []ast.Expression{}
	err := p.commaList(lexer.RPAREN, func() error {
		arg, err := p.expression()
		if err != nil {
			return err
		}
		args = append(args, arg)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.RPAREN, "call arguments"); err != nil {
		return nil, err
	}

	return &ast.CallExpr{Name: nameTok.String(), Args: args, Pos: nameTok.Position}, nil
}
