package parser

import (
	"pseudocode/interpreter-go/pkg/ast"
)

func (p *parser) parseVariableDecl() (ast.Statement, error) {
	p.advance()
	var names []*ast.Identifier
	for {
		id, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		names = append(names, id)
		if !p.matchSymbol(ast.SymbolComma) {
			break
		}
	}
	if _, err := p.expectSymbol(ast.SymbolColon); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return ast.NewVariableDecl(names, typ), nil
}

func (p *parser) parseConstantDecl() (ast.Statement, error) {
	p.advance()
	id, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectAssignment(true); err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.Kind != ast.TokenLiteral {
		return nil, p.unexpectedKind("literal")
	}
	p.advance()
	lit := ast.NewLiteral(tok.Value)
	ast.SetPos(lit, tok.Pos)
	return ast.NewConstantDecl(id, lit), nil
}

func (p *parser) parseProcedureDecl() (ast.Statement, error) {
	p.advance()
	id, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(ast.KeywordEndProcedure)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(ast.KeywordEndProcedure); err != nil {
		return nil, err
	}
	return ast.NewProcedureDecl(id, params, body), nil
}

func (p *parser) parseFunctionDecl() (ast.Statement, error) {
	p.advance()
	id, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(ast.KeywordReturns); err != nil {
		return nil, err
	}
	returnType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(ast.KeywordEndFunction)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(ast.KeywordEndFunction); err != nil {
		return nil, err
	}
	return ast.NewFunctionDecl(id, params, returnType, body), nil
}

// parseParameterList parses an optional `( [param {, param}] )`.
func (p *parser) parseParameterList() ([]*ast.Parameter, error) {
	if !p.matchSymbol(ast.SymbolLParen) {
		return nil, nil
	}
	var params []*ast.Parameter
	if p.matchSymbol(ast.SymbolRParen) {
		return params, nil
	}
	for {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.matchSymbol(ast.SymbolComma) {
			break
		}
	}
	if _, err := p.expectSymbol(ast.SymbolRParen); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *parser) parseParameter() (*ast.Parameter, error) {
	id, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(ast.SymbolColon); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	param := ast.NewParameter(id, typ)
	ast.SetPos(param, id.Pos())
	return param, nil
}
