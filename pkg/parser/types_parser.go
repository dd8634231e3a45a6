package parser

import (
	"pseudocode/interpreter-go/pkg/ast"
)

// parseType parses a primitive type keyword or
// `ARRAY [lower : upper {, lower : upper}] OF primitive`.
func (p *parser) parseType() (ast.Type, error) {
	tok := p.peek()
	if tok.Kind == ast.TokenKeyword {
		if prim, ok := ast.PrimitiveFromKeyword(tok.Keyword); ok {
			p.advance()
			return prim, nil
		}
		if tok.Keyword == ast.KeywordArray {
			return p.parseArrayType()
		}
	}
	return nil, p.unexpectedKind("type")
}

func (p *parser) parseArrayType() (*ast.ArrayType, error) {
	start := p.advance()
	if _, err := p.expectSymbol(ast.SymbolLBracket); err != nil {
		return nil, err
	}
	var bounds []ast.Bound
	for {
		lower, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectSymbol(ast.SymbolColon); err != nil {
			return nil, err
		}
		upper, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, ast.Bound{Lower: lower, Upper: upper})
		if !p.matchSymbol(ast.SymbolComma) {
			break
		}
	}
	if _, err := p.expectSymbol(ast.SymbolRBracket); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(ast.KeywordOf); err != nil {
		return nil, err
	}
	tok := p.peek()
	element, ok := ast.PrimitiveFromKeyword(tok.Keyword)
	if tok.Kind != ast.TokenKeyword || !ok {
		return nil, p.unexpectedKind("primitive type")
	}
	p.advance()
	arr := ast.NewArrayType(element, bounds)
	ast.SetPos(arr, start.Pos)
	return arr, nil
}
