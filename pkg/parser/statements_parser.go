package parser

import (
	"pseudocode/interpreter-go/pkg/ast"
	"pseudocode/interpreter-go/pkg/diagnostics"
)

func (p *parser) parseStatement() (ast.Statement, error) {
	tok := p.peek()
	var (
		stmt ast.Statement
		err  error
	)
	switch tok.Kind {
	case ast.TokenIdentifier:
		stmt, err = p.parseAssignment()
	case ast.TokenKeyword:
		switch tok.Keyword {
		case ast.KeywordDeclare:
			stmt, err = p.parseVariableDecl()
		case ast.KeywordConstant:
			stmt, err = p.parseConstantDecl()
		case ast.KeywordProcedure:
			stmt, err = p.parseProcedureDecl()
		case ast.KeywordFunction:
			stmt, err = p.parseFunctionDecl()
		case ast.KeywordCall:
			stmt, err = p.parseProcedureCall()
		case ast.KeywordIf:
			stmt, err = p.parseIf()
		case ast.KeywordCase:
			stmt, err = p.parseCase()
		case ast.KeywordFor:
			stmt, err = p.parseFor()
		case ast.KeywordWhile:
			stmt, err = p.parseWhile()
		case ast.KeywordRepeat:
			stmt, err = p.parseRepeat()
		case ast.KeywordInput:
			stmt, err = p.parseInput()
		case ast.KeywordOutput:
			stmt, err = p.parseOutput()
		case ast.KeywordReturn:
			stmt, err = p.parseReturn()
		case ast.KeywordOpenFile:
			stmt, err = p.parseOpenFile()
		case ast.KeywordReadFile:
			stmt, err = p.parseReadFile()
		case ast.KeywordWriteFile:
			stmt, err = p.parseWriteFile()
		case ast.KeywordCloseFile:
			stmt, err = p.parseCloseFile()
		default:
			return nil, p.unexpectedKind("statement")
		}
	default:
		return nil, p.unexpectedKind("statement")
	}
	if err != nil {
		return nil, err
	}
	ast.SetPos(stmt, tok.Pos)
	return stmt, nil
}

var blockClosers = map[ast.Keyword]bool{
	ast.KeywordElse:         true,
	ast.KeywordEndIf:        true,
	ast.KeywordOtherwise:    true,
	ast.KeywordEndCase:      true,
	ast.KeywordNext:         true,
	ast.KeywordEndWhile:     true,
	ast.KeywordUntil:        true,
	ast.KeywordEndProcedure: true,
	ast.KeywordEndFunction:  true,
}

// parseBlock collects statements until one of the terminators (left
// unconsumed) or the end of input. A closer belonging to another block is
// reported against the first terminator.
func (p *parser) parseBlock(terminators ...ast.Keyword) ([]ast.Statement, error) {
	var body []ast.Statement
	for !p.atEOF() && !p.atAnyKeyword(terminators) {
		if tok := p.peek(); tok.Kind == ast.TokenKeyword && blockClosers[tok.Keyword] {
			return nil, p.unexpected(string(terminators[0]))
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}

func (p *parser) atAnyKeyword(kws []ast.Keyword) bool {
	for _, kw := range kws {
		if p.checkKeyword(kw) {
			return true
		}
	}
	return false
}

// parseTarget parses `id` or `id[expr {, expr}]`.
func (p *parser) parseTarget() (ast.AssignmentTarget, error) {
	id, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if p.checkSymbol(ast.SymbolLBracket) {
		return p.parseIndexSuffix(id)
	}
	return id, nil
}

func (p *parser) parseAssignment() (ast.Statement, error) {
	target, err := p.parseTarget()
	if err != nil {
		return nil, err
	}
	if err := p.expectAssignment(false); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewAssignmentStmt(target, value), nil
}

func (p *parser) parseProcedureCall() (ast.Statement, error) {
	p.advance()
	id, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	var args []ast.Expression
	if p.checkSymbol(ast.SymbolLParen) {
		if args, err = p.parseArguments(); err != nil {
			return nil, err
		}
	}
	return ast.NewProcedureCallStmt(id, args), nil
}

func (p *parser) parseIf() (ast.Statement, error) {
	p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(ast.KeywordThen); err != nil {
		return nil, err
	}
	then, err := p.parseBlock(ast.KeywordElse, ast.KeywordEndIf)
	if err != nil {
		return nil, err
	}
	var elseBody []ast.Statement
	if p.matchKeyword(ast.KeywordElse) {
		if elseBody, err = p.parseBlock(ast.KeywordEndIf); err != nil {
			return nil, err
		}
	}
	if _, err := p.expectKeyword(ast.KeywordEndIf); err != nil {
		return nil, err
	}
	return ast.NewIfStmt(cond, then, elseBody), nil
}

func (p *parser) parseCase() (ast.Statement, error) {
	p.advance()
	p.caseDepth++
	defer func() { p.caseDepth-- }()
	if _, err := p.expectKeyword(ast.KeywordOf); err != nil {
		return nil, err
	}
	selector, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	var arms []*ast.CaseArm
	for p.atCaseArm() {
		arm, err := p.parseCaseArm()
		if err != nil {
			return nil, err
		}
		arms = append(arms, arm)
	}
	var otherwise []ast.Statement
	if p.matchKeyword(ast.KeywordOtherwise) {
		p.matchSymbol(ast.SymbolColon)
		if otherwise, err = p.parseBlock(ast.KeywordEndCase); err != nil {
			return nil, err
		}
	}
	if _, err := p.expectKeyword(ast.KeywordEndCase); err != nil {
		return nil, err
	}
	return ast.NewCaseStmt(selector, arms, otherwise), nil
}

// atCaseArm reports whether the next tokens open a CASE arm: a literal, a '-'
// or '(' symbol, or an identifier directly followed by ':'.
func (p *parser) atCaseArm() bool {
	tok := p.peek()
	switch tok.Kind {
	case ast.TokenLiteral:
		return true
	case ast.TokenSymbol:
		return tok.Symbol == ast.SymbolMinus || tok.Symbol == ast.SymbolLParen
	case ast.TokenIdentifier:
		return p.peekN(1).IsSymbol(ast.SymbolColon)
	}
	return false
}

func (p *parser) parseCaseArm() (*ast.CaseArm, error) {
	start := p.peek().Pos
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	var upper ast.Expression
	if p.matchKeyword(ast.KeywordTo) {
		if upper, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expectSymbol(ast.SymbolColon); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for !p.atEOF() && !p.atCaseArm() && !p.checkKeyword(ast.KeywordOtherwise) && !p.checkKeyword(ast.KeywordEndCase) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	arm := ast.NewCaseArm(value, upper, body)
	ast.SetPos(arm, start)
	return arm, nil
}

func (p *parser) parseFor() (ast.Statement, error) {
	p.advance()
	variable, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectAssignment(true); err != nil {
		return nil, err
	}
	start, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(ast.KeywordTo); err != nil {
		return nil, err
	}
	end, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	var step ast.Expression
	if p.matchKeyword(ast.KeywordStep) {
		if step, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock(ast.KeywordNext)
	if err != nil {
		return nil, err
	}
	next, err := p.expectKeyword(ast.KeywordNext)
	if err != nil {
		return nil, err
	}
	// A name after NEXT belongs to it only on the same line; otherwise it opens
	// the following statement.
	if tok := p.peek(); tok.Kind == ast.TokenIdentifier && tok.Pos.Line == next.Pos.Line {
		if tok.Name != variable.Name {
			return nil, &diagnostics.SyntaxError{
				Kind:     diagnostics.KindUnexpectedToken,
				Expected: variable.Name,
				Found:    tok,
				Location: tok.Pos,
			}
		}
		p.advance()
	}
	return ast.NewForStmt(variable, start, end, step, body), nil
}

func (p *parser) parseWhile() (ast.Statement, error) {
	p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.matchKeyword(ast.KeywordDo)
	body, err := p.parseBlock(ast.KeywordEndWhile)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(ast.KeywordEndWhile); err != nil {
		return nil, err
	}
	return ast.NewWhileStmt(cond, body), nil
}

func (p *parser) parseRepeat() (ast.Statement, error) {
	p.advance()
	body, err := p.parseBlock(ast.KeywordUntil)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(ast.KeywordUntil); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewRepeatUntilStmt(body, cond), nil
}

func (p *parser) parseInput() (ast.Statement, error) {
	p.advance()
	target, err := p.parseTarget()
	if err != nil {
		return nil, err
	}
	return ast.NewInputStmt(target), nil
}

func (p *parser) parseOutput() (ast.Statement, error) {
	p.advance()
	values, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	return ast.NewOutputStmt(values), nil
}

func (p *parser) parseReturn() (ast.Statement, error) {
	p.advance()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewReturnStmt(value), nil
}

// File statements

func (p *parser) parseOpenFile() (ast.Statement, error) {
	p.advance()
	file, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(ast.KeywordFor); err != nil {
		return nil, err
	}
	var mode ast.FileMode
	switch {
	case p.matchKeyword(ast.KeywordRead):
		mode = ast.FileModeRead
	case p.matchKeyword(ast.KeywordWrite):
		mode = ast.FileModeWrite
	case p.matchKeyword(ast.KeywordAppend):
		mode = ast.FileModeAppend
	default:
		return nil, p.unexpectedKind("file mode")
	}
	return ast.NewFileOpenStmt(file, mode), nil
}

func (p *parser) parseReadFile() (ast.Statement, error) {
	p.advance()
	file, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(ast.SymbolComma); err != nil {
		return nil, err
	}
	target, err := p.parseTarget()
	if err != nil {
		return nil, err
	}
	return ast.NewFileReadStmt(file, target), nil
}

func (p *parser) parseWriteFile() (ast.Statement, error) {
	p.advance()
	file, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(ast.SymbolComma); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewFileWriteStmt(file, value), nil
}

func (p *parser) parseCloseFile() (ast.Statement, error) {
	p.advance()
	file, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewFileCloseStmt(file), nil
}
