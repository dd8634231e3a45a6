package interpreter

import (
	"math"

	"pseudocode/interpreter-go/pkg/ast"
	"pseudocode/interpreter-go/pkg/diagnostics"
)

func (i *Interpreter) evaluate(node ast.Expression) (ast.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		if n.Value == nil {
			return nil, diagnostics.Errorf(diagnostics.KindInvalidNode, "literal without a value")
		}
		return n.Value, nil
	case *ast.Identifier:
		return i.lookupValue(n.Name)
	case *ast.ArrayIndex:
		return i.evalArrayIndex(n)
	case *ast.FunctionCall:
		return i.callFunction(n)
	case *ast.UnaryOp:
		return i.evalUnary(n)
	case *ast.BinaryOp:
		return i.evalBinary(n)
	case nil:
		return nil, diagnostics.Errorf(diagnostics.KindInvalidNode, "missing expression")
	default:
		return nil, diagnostics.Errorf(diagnostics.KindInvalidNode, "unsupported expression %s", n.NodeType())
	}
}

// lookupValue resolves variables first, then constants.
func (i *Interpreter) lookupValue(name string) (ast.Value, error) {
	if b, ok := i.state.Lookup(name); ok {
		if b.IsArray() {
			return nil, &diagnostics.InterpreterError{
				Kind:    diagnostics.KindOperator,
				Name:    name,
				Message: "array " + name + " cannot be used as a value",
			}
		}
		if b.Value == nil {
			return nil, &diagnostics.InterpreterError{
				Kind:    diagnostics.KindUndefined,
				Name:    name,
				Message: name + " has been declared but has no value",
			}
		}
		return b.Value, nil
	}
	if v, ok := i.state.Constant(name); ok {
		return v, nil
	}
	return nil, diagnostics.Undefined(name)
}

func (i *Interpreter) evalArrayIndex(node *ast.ArrayIndex) (ast.Value, error) {
	name := node.Target.Name
	b, ok := i.state.Lookup(name)
	if !ok {
		if i.state.IsConstant(name) {
			return nil, diagnostics.Errorf(diagnostics.KindAssignment, "%s is a constant, not an array", name)
		}
		return nil, diagnostics.Undefined(name)
	}
	if !b.IsArray() {
		return nil, diagnostics.Errorf(diagnostics.KindAssignment, "%s is not an array", name)
	}
	indices, err := i.evalIndices(node.Indices)
	if err != nil {
		return nil, err
	}
	return i.state.GetArrayValue(name, indices)
}

func (i *Interpreter) evalIndices(exprs []ast.Expression) ([]int64, error) {
	indices := make([]int64, len(exprs))
	for idx, expr := range exprs {
		v, err := i.evaluate(expr)
		if err != nil {
			return nil, err
		}
		n, ok := wholeNumber(v)
		if !ok {
			return nil, diagnostics.OperatorError("array index must be a whole number", v)
		}
		indices[idx] = n
	}
	return indices, nil
}

func (i *Interpreter) evalUnary(node *ast.UnaryOp) (ast.Value, error) {
	operand, err := i.evaluate(node.Operand)
	if err != nil {
		return nil, err
	}
	switch node.Operator {
	case ast.UnaryNot:
		b, ok := operand.(ast.BooleanValue)
		if !ok {
			return nil, diagnostics.OperatorError("NOT requires a BOOLEAN", operand)
		}
		return ast.BooleanValue{Val: !b.Val}, nil
	case ast.UnaryNegate:
		switch v := operand.(type) {
		case ast.IntegerValue:
			return ast.IntegerValue{Val: -v.Val}, nil
		case ast.RealValue:
			return ast.RealValue{Val: -v.Val}, nil
		}
		return nil, diagnostics.OperatorError("unary - requires a number", operand)
	case ast.UnaryPlus:
		if !ast.IsNumeric(operand) {
			return nil, diagnostics.OperatorError("unary + requires a number", operand)
		}
		return operand, nil
	}
	return nil, diagnostics.Errorf(diagnostics.KindInvalidNode, "unknown unary operator %q", node.Operator)
}

func (i *Interpreter) evalBinary(node *ast.BinaryOp) (ast.Value, error) {
	if node.Operator == ast.BinaryAnd || node.Operator == ast.BinaryOr {
		return i.evalLogical(node)
	}
	left, err := i.evaluate(node.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(node.Right)
	if err != nil {
		return nil, err
	}
	return applyBinary(node.Operator, left, right)
}

// evalLogical short-circuits: the right operand is only evaluated when it can
// change the result.
func (i *Interpreter) evalLogical(node *ast.BinaryOp) (ast.Value, error) {
	left, err := i.evaluate(node.Left)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(ast.BooleanValue)
	if !ok {
		return nil, diagnostics.OperatorError(string(node.Operator)+" requires BOOLEAN operands", left)
	}
	if node.Operator == ast.BinaryOr && lb.Val {
		return lb, nil
	}
	if node.Operator == ast.BinaryAnd && !lb.Val {
		return lb, nil
	}
	right, err := i.evaluate(node.Right)
	if err != nil {
		return nil, err
	}
	rb, ok := right.(ast.BooleanValue)
	if !ok {
		return nil, diagnostics.OperatorError(string(node.Operator)+" requires BOOLEAN operands", left, right)
	}
	return rb, nil
}

// wholeNumber accepts Integers and Reals without a fractional part.
func wholeNumber(v ast.Value) (int64, bool) {
	switch n := v.(type) {
	case ast.IntegerValue:
		return n.Val, true
	case ast.RealValue:
		if math.Trunc(n.Val) != n.Val || math.Abs(n.Val) >= 1<<63 {
			return 0, false
		}
		return int64(n.Val), true
	}
	return 0, false
}
