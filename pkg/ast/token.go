package ast

import "fmt"

// Position is a 1-based source location.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("line %d column %d", p.Line, p.Column)
}

// IsValid reports whether the position points into a source text.
func (p Position) IsValid() bool { return p.Line > 0 }

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenKeyword
	TokenSymbol
	TokenLiteral
	TokenIdentifier
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of file"
	case TokenKeyword:
		return "keyword"
	case TokenSymbol:
		return "symbol"
	case TokenLiteral:
		return "literal"
	case TokenIdentifier:
		return "identifier"
	default:
		return fmt.Sprintf("token_kind_%d", int(k))
	}
}

type Keyword string

const (
	KeywordDeclare      Keyword = "DECLARE"
	KeywordConstant     Keyword = "CONSTANT"
	KeywordArray        Keyword = "ARRAY"
	KeywordOf           Keyword = "OF"
	KeywordInteger      Keyword = "INTEGER"
	KeywordReal         Keyword = "REAL"
	KeywordChar         Keyword = "CHAR"
	KeywordString       Keyword = "STRING"
	KeywordBoolean      Keyword = "BOOLEAN"
	KeywordIf           Keyword = "IF"
	KeywordThen         Keyword = "THEN"
	KeywordElse         Keyword = "ELSE"
	KeywordEndIf        Keyword = "ENDIF"
	KeywordCase         Keyword = "CASE"
	KeywordOtherwise    Keyword = "OTHERWISE"
	KeywordEndCase      Keyword = "ENDCASE"
	KeywordFor          Keyword = "FOR"
	KeywordTo           Keyword = "TO"
	KeywordStep         Keyword = "STEP"
	KeywordNext         Keyword = "NEXT"
	KeywordWhile        Keyword = "WHILE"
	KeywordDo           Keyword = "DO"
	KeywordEndWhile     Keyword = "ENDWHILE"
	KeywordRepeat       Keyword = "REPEAT"
	KeywordUntil        Keyword = "UNTIL"
	KeywordProcedure    Keyword = "PROCEDURE"
	KeywordEndProcedure Keyword = "ENDPROCEDURE"
	KeywordFunction     Keyword = "FUNCTION"
	KeywordEndFunction  Keyword = "ENDFUNCTION"
	KeywordReturns      Keyword = "RETURNS"
	KeywordReturn       Keyword = "RETURN"
	KeywordCall         Keyword = "CALL"
	KeywordInput        Keyword = "INPUT"
	KeywordOutput       Keyword = "OUTPUT"
	KeywordAnd          Keyword = "AND"
	KeywordOr           Keyword = "OR"
	KeywordNot          Keyword = "NOT"
	KeywordOpenFile     Keyword = "OPENFILE"
	KeywordReadFile     Keyword = "READFILE"
	KeywordWriteFile    Keyword = "WRITEFILE"
	KeywordCloseFile    Keyword = "CLOSEFILE"
	KeywordRead         Keyword = "READ"
	KeywordWrite        Keyword = "WRITE"
	KeywordAppend       Keyword = "APPEND"
)

// Keywords is the fixed keyword table. Words found here never lex as identifiers.
var Keywords = map[string]Keyword{}

func init() {
	for _, kw := range []Keyword{
		KeywordDeclare, KeywordConstant, KeywordArray, KeywordOf,
		KeywordInteger, KeywordReal, KeywordChar, KeywordString, KeywordBoolean,
		KeywordIf, KeywordThen, KeywordElse, KeywordEndIf,
		KeywordCase, KeywordOtherwise, KeywordEndCase,
		KeywordFor, KeywordTo, KeywordStep, KeywordNext,
		KeywordWhile, KeywordDo, KeywordEndWhile, KeywordRepeat, KeywordUntil,
		KeywordProcedure, KeywordEndProcedure, KeywordFunction, KeywordEndFunction,
		KeywordReturns, KeywordReturn, KeywordCall,
		KeywordInput, KeywordOutput,
		KeywordAnd, KeywordOr, KeywordNot,
		KeywordOpenFile, KeywordReadFile, KeywordWriteFile, KeywordCloseFile,
		KeywordRead, KeywordWrite, KeywordAppend,
	} {
		Keywords[string(kw)] = kw
	}
}

type Symbol string

const (
	SymbolArrow        Symbol = "<-"
	SymbolLeftArrow    Symbol = "←"
	SymbolColonEquals  Symbol = ":="
	SymbolLessEqual    Symbol = "<="
	SymbolGreaterEqual Symbol = ">="
	SymbolNotEqual     Symbol = "<>"
	SymbolEqual        Symbol = "="
	SymbolLess         Symbol = "<"
	SymbolGreater      Symbol = ">"
	SymbolPlus         Symbol = "+"
	SymbolMinus        Symbol = "-"
	SymbolStar         Symbol = "*"
	SymbolSlash        Symbol = "/"
	SymbolCaret        Symbol = "^"
	SymbolAmpersand    Symbol = "&"
	SymbolLParen       Symbol = "("
	SymbolRParen       Symbol = ")"
	SymbolLBracket     Symbol = "["
	SymbolRBracket     Symbol = "]"
	SymbolComma        Symbol = ","
	SymbolColon        Symbol = ":"
)

// Symbols lists every symbol, longest spellings first so a scanner can take the
// first prefix match.
var Symbols = []Symbol{
	SymbolArrow, SymbolColonEquals, SymbolLessEqual, SymbolGreaterEqual, SymbolNotEqual,
	SymbolLeftArrow, SymbolEqual, SymbolLess, SymbolGreater,
	SymbolPlus, SymbolMinus, SymbolStar, SymbolSlash, SymbolCaret, SymbolAmpersand,
	SymbolLParen, SymbolRParen, SymbolLBracket, SymbolRBracket, SymbolComma, SymbolColon,
}

// IsAssignment reports whether s spells the assignment operator.
func (s Symbol) IsAssignment() bool {
	return s == SymbolArrow || s == SymbolLeftArrow || s == SymbolColonEquals
}

// Token is one lexeme. Only the payload field matching Kind is meaningful.
type Token struct {
	Kind    TokenKind `json:"kind"`
	Keyword Keyword   `json:"keyword,omitempty"`
	Symbol  Symbol    `json:"symbol,omitempty"`
	Value   Value     `json:"value,omitempty"`
	Name    string    `json:"name,omitempty"`
	Pos     Position  `json:"pos"`
}

func KeywordToken(kw Keyword, pos Position) Token {
	return Token{Kind: TokenKeyword, Keyword: kw, Pos: pos}
}

func SymbolToken(sym Symbol, pos Position) Token {
	return Token{Kind: TokenSymbol, Symbol: sym, Pos: pos}
}

func LiteralToken(val Value, pos Position) Token {
	return Token{Kind: TokenLiteral, Value: val, Pos: pos}
}

func IdentifierToken(name string, pos Position) Token {
	return Token{Kind: TokenIdentifier, Name: name, Pos: pos}
}

func EOFToken(pos Position) Token {
	return Token{Kind: TokenEOF, Pos: pos}
}

// IsKeyword compares only the token's payload against a bare keyword.
func (t Token) IsKeyword(kw Keyword) bool {
	return t.Kind == TokenKeyword && t.Keyword == kw
}

// IsSymbol compares only the token's payload against a bare symbol.
func (t Token) IsSymbol(sym Symbol) bool {
	return t.Kind == TokenSymbol && t.Symbol == sym
}

// SameAs compares two tokens ignoring their positions.
func (t Token) SameAs(other Token) bool {
	other.Pos = t.Pos
	return t == other
}

// String renders the token the way it appears in source.
func (t Token) String() string {
	switch t.Kind {
	case TokenKeyword:
		return string(t.Keyword)
	case TokenSymbol:
		return string(t.Symbol)
	case TokenLiteral:
		if s, ok := t.Value.(StringValue); ok {
			return `"` + s.Val + `"`
		}
		if t.Value == nil {
			return "<nil>"
		}
		return t.Value.String()
	case TokenIdentifier:
		return t.Name
	default:
		return "EOF"
	}
}
