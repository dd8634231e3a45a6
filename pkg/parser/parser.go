// Package parser turns pseudocode source into the canonical AST.
package parser

import (
	"pseudocode/interpreter-go/pkg/ast"
	"pseudocode/interpreter-go/pkg/diagnostics"
)

// Parse tokenizes and parses source into a program.
func Parse(source string) (*ast.Program, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses a token stream produced by Tokenize. A missing trailing
// EOF token is tolerated.
func ParseTokens(tokens []ast.Token) (*ast.Program, error) {
	p := newParser(tokens)
	start := p.peek().Pos
	var body []ast.Statement
	for !p.atEOF() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	program := ast.NewProgram(body)
	ast.SetPos(program, start)
	return program, nil
}

type parser struct {
	tokens    []ast.Token
	cur       int
	caseDepth int
}

func newParser(tokens []ast.Token) *parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != ast.TokenEOF {
		var end ast.Position
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].Pos
		}
		tokens = append(append([]ast.Token(nil), tokens...), ast.EOFToken(end))
	}
	return &parser{tokens: tokens}
}

func (p *parser) peek() ast.Token {
	return p.peekN(0)
}

func (p *parser) peekN(n int) ast.Token {
	if p.cur+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.cur+n]
}

func (p *parser) advance() ast.Token {
	tok := p.peek()
	if tok.Kind != ast.TokenEOF {
		p.cur++
	}
	return tok
}

// startsLine reports whether the next token is the first on its line.
func (p *parser) startsLine() bool {
	return p.cur > 0 && p.peek().Pos.Line != p.tokens[p.cur-1].Pos.Line
}

// atCaseArmBreak reports whether an enclosing CASE claims the next token as
// the start of its next arm. Inside CASE a line opening with '-' or '(' begins
// an arm rather than continuing the previous expression.
func (p *parser) atCaseArmBreak() bool {
	return p.caseDepth > 0 && p.startsLine() && p.atCaseArm()
}

func (p *parser) atEOF() bool { return p.peek().Kind == ast.TokenEOF }

func (p *parser) checkKeyword(kw ast.Keyword) bool { return p.peek().IsKeyword(kw) }
func (p *parser) checkSymbol(sym ast.Symbol) bool  { return p.peek().IsSymbol(sym) }

// matchKeyword consumes the next token when it is kw.
func (p *parser) matchKeyword(kw ast.Keyword) bool {
	if p.checkKeyword(kw) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) matchSymbol(sym ast.Symbol) bool {
	if p.checkSymbol(sym) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expectKeyword(kw ast.Keyword) (ast.Token, error) {
	if p.checkKeyword(kw) {
		return p.advance(), nil
	}
	return ast.Token{}, p.unexpected(string(kw))
}

func (p *parser) expectSymbol(sym ast.Symbol) (ast.Token, error) {
	if p.checkSymbol(sym) {
		return p.advance(), nil
	}
	return ast.Token{}, p.unexpected(string(sym))
}

// expectAssignment accepts any spelling of the assignment arrow, plus '=' when
// allowEqual is set.
func (p *parser) expectAssignment(allowEqual bool) error {
	tok := p.peek()
	if tok.Kind == ast.TokenSymbol && (tok.Symbol.IsAssignment() || (allowEqual && tok.Symbol == ast.SymbolEqual)) {
		p.advance()
		return nil
	}
	return p.unexpected(string(ast.SymbolArrow))
}

func (p *parser) expectIdentifier() (*ast.Identifier, error) {
	tok := p.peek()
	if tok.Kind != ast.TokenIdentifier {
		return nil, p.unexpectedKind("identifier")
	}
	p.advance()
	id := ast.NewIdentifier(tok.Name)
	ast.SetPos(id, tok.Pos)
	return id, nil
}

func (p *parser) unexpected(expected string) error {
	found := p.peek()
	return &diagnostics.SyntaxError{Kind: diagnostics.KindUnexpectedToken, Expected: expected, Found: found, Location: found.Pos}
}

func (p *parser) unexpectedKind(expected string) error {
	found := p.peek()
	return &diagnostics.SyntaxError{Kind: diagnostics.KindUnexpectedTokenKind, Expected: expected, Found: found, Location: found.Pos}
}
