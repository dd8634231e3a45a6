package interpreter

import (
	"cmp"
	"math"
	"strings"

	"pseudocode/interpreter-go/pkg/ast"
	"pseudocode/interpreter-go/pkg/diagnostics"
)

func applyBinary(op ast.BinaryOperator, left, right ast.Value) (ast.Value, error) {
	switch op {
	case ast.BinaryAdd, ast.BinaryConcat:
		ls, lok := ast.AsText(left)
		rs, rok := ast.AsText(right)
		if lok && rok {
			return ast.StringValue{Val: ls + rs}, nil
		}
		if op == ast.BinaryConcat {
			return nil, diagnostics.OperatorError("& requires STRING or CHAR operands", left, right)
		}
		return arithmetic(op, left, right)
	case ast.BinarySubtract, ast.BinaryMultiply, ast.BinaryDivide, ast.BinaryPower:
		return arithmetic(op, left, right)
	case ast.BinaryEqual:
		return ast.BooleanValue{Val: valuesEqual(left, right)}, nil
	case ast.BinaryNotEqual:
		return ast.BooleanValue{Val: !valuesEqual(left, right)}, nil
	case ast.BinaryLess, ast.BinaryLessEqual, ast.BinaryGreater, ast.BinaryGreaterEqual:
		c, ok := compareValues(left, right)
		if !ok {
			return nil, diagnostics.OperatorError("cannot compare with "+string(op), left, right)
		}
		switch op {
		case ast.BinaryLess:
			return ast.BooleanValue{Val: c < 0}, nil
		case ast.BinaryLessEqual:
			return ast.BooleanValue{Val: c <= 0}, nil
		case ast.BinaryGreater:
			return ast.BooleanValue{Val: c > 0}, nil
		default:
			return ast.BooleanValue{Val: c >= 0}, nil
		}
	}
	return nil, diagnostics.Errorf(diagnostics.KindInvalidNode, "unknown binary operator %q", op)
}

func arithmetic(op ast.BinaryOperator, left, right ast.Value) (ast.Value, error) {
	if !ast.IsNumeric(left) || !ast.IsNumeric(right) {
		return nil, diagnostics.OperatorError(string(op)+" requires numeric operands", left, right)
	}
	li, lInt := left.(ast.IntegerValue)
	ri, rInt := right.(ast.IntegerValue)
	if lInt && rInt {
		switch op {
		case ast.BinaryAdd:
			return ast.IntegerValue{Val: li.Val + ri.Val}, nil
		case ast.BinarySubtract:
			return ast.IntegerValue{Val: li.Val - ri.Val}, nil
		case ast.BinaryMultiply:
			return ast.IntegerValue{Val: li.Val * ri.Val}, nil
		case ast.BinaryPower:
			if ri.Val >= 0 {
				return ast.IntegerValue{Val: powInt(li.Val, ri.Val)}, nil
			}
		}
	}
	lf, _ := ast.AsFloat(left)
	rf, _ := ast.AsFloat(right)
	switch op {
	case ast.BinaryAdd:
		return ast.RealValue{Val: lf + rf}, nil
	case ast.BinarySubtract:
		return ast.RealValue{Val: lf - rf}, nil
	case ast.BinaryMultiply:
		return ast.RealValue{Val: lf * rf}, nil
	case ast.BinaryDivide:
		if rf == 0 {
			return nil, diagnostics.OperatorError("division by zero", left, right)
		}
		return ast.RealValue{Val: lf / rf}, nil
	case ast.BinaryPower:
		if lf == 0 && rf < 0 {
			return nil, diagnostics.OperatorError("division by zero", left, right)
		}
		result := math.Pow(lf, rf)
		if math.IsNaN(result) {
			return nil, diagnostics.OperatorError("result is not a real number", left, right)
		}
		return ast.RealValue{Val: result}, nil
	}
	return nil, diagnostics.Errorf(diagnostics.KindInvalidNode, "unknown arithmetic operator %q", op)
}

// powInt raises base to a non-negative exponent, wrapping on overflow like the
// other Integer operators.
func powInt(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// valuesEqual backs = and <>. Values of unrelated kinds are never equal.
func valuesEqual(left, right ast.Value) bool {
	if lb, ok := left.(ast.BooleanValue); ok {
		rb, ok := right.(ast.BooleanValue)
		return ok && lb.Val == rb.Val
	}
	c, ok := compareValues(left, right)
	return ok && c == 0
}

// compareValues orders numbers against numbers and text against text. The
// second result is false for any other pairing.
func compareValues(left, right ast.Value) (int, bool) {
	if li, ok := left.(ast.IntegerValue); ok {
		if ri, ok := right.(ast.IntegerValue); ok {
			return cmp.Compare(li.Val, ri.Val), true
		}
	}
	if ast.IsNumeric(left) && ast.IsNumeric(right) {
		lf, _ := ast.AsFloat(left)
		rf, _ := ast.AsFloat(right)
		return cmp.Compare(lf, rf), true
	}
	ls, lok := ast.AsText(left)
	rs, rok := ast.AsText(right)
	if lok && rok {
		return strings.Compare(ls, rs), true
	}
	return 0, false
}
