package interpreter

import (
	"unicode/utf8"

	"pseudocode/interpreter-go/pkg/ast"
	"pseudocode/interpreter-go/pkg/runtime"
)

// coerce converts v to the declared primitive, reporting false when the value
// cannot be stored in a variable of that type.
func coerce(v ast.Value, target ast.PrimitiveType) (ast.Value, bool) {
	switch target {
	case ast.TypeInteger:
		n, ok := wholeNumber(v)
		if !ok {
			return nil, false
		}
		return ast.IntegerValue{Val: n}, true
	case ast.TypeReal:
		f, ok := ast.AsFloat(v)
		if !ok {
			return nil, false
		}
		return ast.RealValue{Val: f}, true
	case ast.TypeChar:
		switch c := v.(type) {
		case ast.CharValue:
			return c, true
		case ast.StringValue:
			if utf8.RuneCountInString(c.Val) == 1 {
				r, _ := utf8.DecodeRuneInString(c.Val)
				return ast.CharValue{Val: r}, true
			}
		}
		return nil, false
	case ast.TypeBoolean:
		if b, ok := v.(ast.BooleanValue); ok {
			return b, true
		}
		if f, ok := ast.AsFloat(v); ok && (f == 0 || f == 1) {
			return ast.BooleanValue{Val: f == 1}, true
		}
		return nil, false
	case ast.TypeString:
		if s, ok := ast.AsText(v); ok {
			return ast.StringValue{Val: s}, true
		}
		return nil, false
	}
	return nil, false
}

func bindingOf(v ast.Value, typ ast.Type) runtime.Binding {
	return runtime.Binding{Value: v, Type: typ}
}
