package parser

import (
	"strconv"

	"pseudocode/interpreter-go/pkg/ast"
	"pseudocode/interpreter-go/pkg/diagnostics"
)

// Tokenize scans source into tokens terminated by a single EOF token.
func Tokenize(source string) ([]ast.Token, error) {
	lx := newLexer(source)
	return lx.scan()
}

type lexer struct {
	src    []rune
	cur    int
	line   int
	col    int
	tokens []ast.Token
}

func newLexer(source string) *lexer {
	return &lexer{src: []rune(source), line: 1, col: 1}
}

func (l *lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *lexer) peek() rune {
	return l.peekN(0)
}

func (l *lexer) peekN(n int) rune {
	if l.cur+n >= len(l.src) {
		return 0
	}
	return l.src[l.cur+n]
}

func (l *lexer) advance() rune {
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *lexer) pos() ast.Position {
	return ast.Position{Line: l.line, Column: l.col}
}

func (l *lexer) scan() ([]ast.Token, error) {
	for {
		l.skipBlanksAndComments()
		if l.isAtEnd() {
			break
		}
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
	}
	l.tokens = append(l.tokens, ast.EOFToken(l.pos()))
	return l.tokens, nil
}

func (l *lexer) skipBlanksAndComments() {
	for !l.isAtEnd() {
		switch ch := l.peek(); {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '#' || (ch == '/' && l.peekN(1) == '/'):
			l.skipToEOL()
		case ch == '/' && l.peekN(1) == '*':
			end := l.blockCommentEnd()
			if end < 0 {
				return
			}
			for l.cur < end {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *lexer) skipToEOL() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// blockCommentEnd returns the offset just past the last "*/" on the current
// line, or -1 when the comment is not closed on this line.
func (l *lexer) blockCommentEnd() int {
	end := -1
	for i := l.cur + 2; i < len(l.src) && l.src[i] != '\n'; i++ {
		if l.src[i] == '*' && i+1 < len(l.src) && l.src[i+1] == '/' {
			end = i + 2
		}
	}
	return end
}

func (l *lexer) scanToken() (ast.Token, error) {
	start := l.pos()
	ch := l.peek()
	switch {
	case isWordStart(ch):
		return l.scanWord(start), nil
	case isDigit(ch):
		return l.scanNumber(start, false)
	case ch == '"':
		return l.scanString(start)
	case ch == '-' && isDigit(l.peekN(1)) && l.allowsNegativeLiteral():
		l.advance()
		return l.scanNumber(start, true)
	}
	for _, sym := range ast.Symbols {
		if l.hasPrefix(string(sym)) {
			for range []rune(string(sym)) {
				l.advance()
			}
			return ast.SymbolToken(sym, start), nil
		}
	}
	l.advance()
	return ast.Token{}, &diagnostics.LexicalError{Kind: diagnostics.KindInvalidCharacter, Text: string(ch), Location: start}
}

// allowsNegativeLiteral reports whether a '-' directly followed by a digit
// starts a literal: only at the start of input or after a symbol or keyword.
func (l *lexer) allowsNegativeLiteral() bool {
	if len(l.tokens) == 0 {
		return true
	}
	switch l.tokens[len(l.tokens)-1].Kind {
	case ast.TokenSymbol, ast.TokenKeyword:
		return true
	}
	return false
}

func (l *lexer) hasPrefix(s string) bool {
	i := l.cur
	for _, r := range s {
		if i >= len(l.src) || l.src[i] != r {
			return false
		}
		i++
	}
	return true
}

func (l *lexer) scanWord(start ast.Position) ast.Token {
	from := l.cur
	for !l.isAtEnd() && isWordPart(l.peek()) {
		l.advance()
	}
	word := string(l.src[from:l.cur])
	switch word {
	case "TRUE":
		return ast.LiteralToken(ast.BooleanValue{Val: true}, start)
	case "FALSE":
		return ast.LiteralToken(ast.BooleanValue{Val: false}, start)
	}
	if kw, ok := ast.Keywords[word]; ok {
		return ast.KeywordToken(kw, start)
	}
	return ast.IdentifierToken(word, start)
}

func (l *lexer) scanNumber(start ast.Position, negative bool) (ast.Token, error) {
	from := l.cur
	for !l.isAtEnd() && isDigit(l.peek()) {
		l.advance()
	}
	isReal := false
	if l.peek() == '.' {
		l.advance()
		if !isDigit(l.peek()) {
			return ast.Token{}, l.invalidLiteral(start, from, negative)
		}
		isReal = true
		for !l.isAtEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}
	text := string(l.src[from:l.cur])
	if negative {
		text = "-" + text
	}
	if isReal {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return ast.Token{}, l.invalidLiteral(start, from, negative)
		}
		return ast.LiteralToken(ast.RealValue{Val: f}, start), nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return ast.Token{}, l.invalidLiteral(start, from, negative)
	}
	return ast.LiteralToken(ast.IntegerValue{Val: n}, start), nil
}

func (l *lexer) invalidLiteral(start ast.Position, from int, negative bool) error {
	text := string(l.src[from:l.cur])
	if negative {
		text = "-" + text
	}
	return &diagnostics.LexicalError{Kind: diagnostics.KindInvalidLiteral, Text: text, Location: start}
}

func (l *lexer) scanString(start ast.Position) (ast.Token, error) {
	l.advance()
	from := l.cur
	for !l.isAtEnd() && l.peek() != '"' && l.peek() != '\n' {
		l.advance()
	}
	if l.isAtEnd() || l.peek() != '"' {
		return ast.Token{}, &diagnostics.LexicalError{
			Kind:     diagnostics.KindInvalidLiteral,
			Text:     `"` + string(l.src[from:l.cur]),
			Location: start,
		}
	}
	text := string(l.src[from:l.cur])
	l.advance()
	return ast.LiteralToken(ast.StringValue{Val: text}, start), nil
}

func isDigit(r rune) bool     { return r >= '0' && r <= '9' }
func isWordStart(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' }
func isWordPart(r rune) bool  { return isWordStart(r) || isDigit(r) }
