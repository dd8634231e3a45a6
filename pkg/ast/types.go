package ast

import (
	"fmt"
	"strings"
)

// Type is either a PrimitiveType or an *ArrayType.
type Type interface {
	String() string
	isType()
}

type PrimitiveType string

const (
	TypeInteger PrimitiveType = "INTEGER"
	TypeReal    PrimitiveType = "REAL"
	TypeChar    PrimitiveType = "CHAR"
	TypeString  PrimitiveType = "STRING"
	TypeBoolean PrimitiveType = "BOOLEAN"
)

func (p PrimitiveType) String() string { return string(p) }
func (PrimitiveType) isType()          {}

// PrimitiveFromKeyword maps a type keyword to its primitive type.
func PrimitiveFromKeyword(kw Keyword) (PrimitiveType, bool) {
	switch kw {
	case KeywordInteger:
		return TypeInteger, true
	case KeywordReal:
		return TypeReal, true
	case KeywordChar:
		return TypeChar, true
	case KeywordString:
		return TypeString, true
	case KeywordBoolean:
		return TypeBoolean, true
	}
	return "", false
}

// Bound is one inclusive dimension of an array declaration.
type Bound struct {
	Lower Expression `json:"lower"`
	Upper Expression `json:"upper"`
}

type ArrayType struct {
	nodeImpl

	Element PrimitiveType `json:"element"`
	Bounds  []Bound       `json:"bounds"`
}

func NewArrayType(element PrimitiveType, bounds []Bound) *ArrayType {
	return &ArrayType{nodeImpl: newNodeImpl(NodeArrayType), Element: element, Bounds: bounds}
}

func (*ArrayType) isType() {}

func (a *ArrayType) String() string {
	parts := make([]string, len(a.Bounds))
	for i, b := range a.Bounds {
		parts[i] = fmt.Sprintf("%s:%s", exprString(b.Lower), exprString(b.Upper))
	}
	return fmt.Sprintf("ARRAY[%s] OF %s", strings.Join(parts, ","), a.Element)
}

func exprString(e Expression) string {
	switch n := e.(type) {
	case *Literal:
		return n.Value.String()
	case *Identifier:
		return n.Name
	case *UnaryOp:
		return string(n.Operator) + exprString(n.Operand)
	case *BinaryOp:
		return exprString(n.Left) + string(n.Operator) + exprString(n.Right)
	case nil:
		return "?"
	default:
		return string(e.NodeType())
	}
}

// ElementType returns the primitive stored by t, unwrapping arrays.
func ElementType(t Type) PrimitiveType {
	switch tt := t.(type) {
	case PrimitiveType:
		return tt
	case *ArrayType:
		return tt.Element
	}
	return ""
}
