package parser

import (
	"pseudocode/interpreter-go/pkg/ast"
)

var comparisonOperators = map[ast.Symbol]ast.BinaryOperator{
	ast.SymbolEqual:        ast.BinaryEqual,
	ast.SymbolNotEqual:     ast.BinaryNotEqual,
	ast.SymbolLess:         ast.BinaryLess,
	ast.SymbolLessEqual:    ast.BinaryLessEqual,
	ast.SymbolGreater:      ast.BinaryGreater,
	ast.SymbolGreaterEqual: ast.BinaryGreaterEqual,
}

var additiveOperators = map[ast.Symbol]ast.BinaryOperator{
	ast.SymbolPlus:      ast.BinaryAdd,
	ast.SymbolMinus:     ast.BinarySubtract,
	ast.SymbolAmpersand: ast.BinaryConcat,
}

var multiplicativeOperators = map[ast.Symbol]ast.BinaryOperator{
	ast.SymbolStar:  ast.BinaryMultiply,
	ast.SymbolSlash: ast.BinaryDivide,
}

func (p *parser) parseExpression() (ast.Expression, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.matchKeyword(ast.KeywordOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = binary(ast.BinaryOr, left, right)
	}
	return left, nil
}

func (p *parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.matchKeyword(ast.KeywordAnd) {
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = binary(ast.BinaryAnd, left, right)
	}
	return left, nil
}

func (p *parser) parseNot() (ast.Expression, error) {
	if p.checkKeyword(ast.KeywordNot) {
		tok := p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		expr := ast.NewUnaryOp(ast.UnaryNot, operand)
		ast.SetPos(expr, tok.Pos)
		return expr, nil
	}
	return p.parseComparison()
}

// parseComparison does not chain: `a < b < c` leaves the second operator
// unconsumed for the caller to reject.
func (p *parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.Kind != ast.TokenSymbol {
		return left, nil
	}
	op, ok := comparisonOperators[tok.Symbol]
	if !ok {
		return left, nil
	}
	p.advance()
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return binary(op, left, right), nil
}

func (p *parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.symbolOperator(additiveOperators)
		if !ok {
			return left, nil
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = binary(op, left, right)
	}
}

func (p *parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.symbolOperator(multiplicativeOperators)
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binary(op, left, right)
	}
}

func (p *parser) parseUnary() (ast.Expression, error) {
	tok := p.peek()
	var op ast.UnaryOperator
	switch {
	case tok.IsSymbol(ast.SymbolMinus):
		op = ast.UnaryNegate
	case tok.IsSymbol(ast.SymbolPlus):
		op = ast.UnaryPlus
	default:
		return p.parsePower()
	}
	p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	expr := ast.NewUnaryOp(op, operand)
	ast.SetPos(expr, tok.Pos)
	return expr, nil
}

// parsePower is right associative: 2^3^2 is 2^(3^2).
func (p *parser) parsePower() (ast.Expression, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if !p.matchSymbol(ast.SymbolCaret) {
		return base, nil
	}
	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return binary(ast.BinaryPower, base, exponent), nil
}

func (p *parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case ast.TokenLiteral:
		p.advance()
		lit := ast.NewLiteral(tok.Value)
		ast.SetPos(lit, tok.Pos)
		return lit, nil
	case ast.TokenIdentifier:
		id, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		switch {
		case p.checkSymbol(ast.SymbolLBracket):
			return p.parseIndexSuffix(id)
		case p.checkSymbol(ast.SymbolLParen) && !p.atCaseArmBreak():
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			call := ast.NewFunctionCall(id, args)
			ast.SetPos(call, id.Pos())
			return call, nil
		}
		return id, nil
	case ast.TokenSymbol:
		if tok.Symbol == ast.SymbolLParen {
			p.advance()
			inner, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectSymbol(ast.SymbolRParen); err != nil {
				return nil, err
			}
			return inner, nil
		}
	}
	return nil, p.unexpectedKind("expression")
}

// parseIndexSuffix parses `[expr {, expr}]` after an array name.
func (p *parser) parseIndexSuffix(id *ast.Identifier) (*ast.ArrayIndex, error) {
	if _, err := p.expectSymbol(ast.SymbolLBracket); err != nil {
		return nil, err
	}
	indices, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(ast.SymbolRBracket); err != nil {
		return nil, err
	}
	node := ast.NewArrayIndex(id, indices)
	ast.SetPos(node, id.Pos())
	return node, nil
}

// parseArguments parses `( [expr {, expr}] )`.
func (p *parser) parseArguments() ([]ast.Expression, error) {
	if _, err := p.expectSymbol(ast.SymbolLParen); err != nil {
		return nil, err
	}
	if p.matchSymbol(ast.SymbolRParen) {
		return nil, nil
	}
	args, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(ast.SymbolRParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parseExpressionList() ([]ast.Expression, error) {
	var exprs []ast.Expression
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		if !p.matchSymbol(ast.SymbolComma) {
			return exprs, nil
		}
	}
}

func (p *parser) symbolOperator(table map[ast.Symbol]ast.BinaryOperator) (ast.BinaryOperator, bool) {
	tok := p.peek()
	if tok.Kind != ast.TokenSymbol || p.atCaseArmBreak() {
		return "", false
	}
	op, ok := table[tok.Symbol]
	if ok {
		p.advance()
	}
	return op, ok
}

func binary(op ast.BinaryOperator, left, right ast.Expression) *ast.BinaryOp {
	expr := ast.NewBinaryOp(op, left, right)
	ast.SetPos(expr, left.Pos())
	return expr
}
