package interpreter

import (
	"fmt"
	"io"
	"strings"

	"pseudocode/interpreter-go/pkg/ast"
	"pseudocode/interpreter-go/pkg/diagnostics"
)

// execStatement runs one statement. Runtime errors without a location are
// pinned to this statement.
func (i *Interpreter) execStatement(node ast.Statement) (outcome, error) {
	if err := i.ctx.Err(); err != nil {
		return normal, err
	}
	out, err := i.dispatchStatement(node)
	if err != nil {
		if node == nil {
			return normal, err
		}
		return normal, diagnostics.At(err, node.Pos())
	}
	return out, nil
}

func (i *Interpreter) dispatchStatement(node ast.Statement) (outcome, error) {
	switch n := node.(type) {
	case *ast.VariableDecl:
		return normal, i.execVariableDecl(n)
	case *ast.ConstantDecl:
		return normal, i.execConstantDecl(n)
	case *ast.FunctionDecl:
		i.state.DefineFunction(n)
		return normal, nil
	case *ast.ProcedureDecl:
		i.state.DefineProcedure(n)
		return normal, nil
	case *ast.AssignmentStmt:
		return normal, i.execAssignment(n)
	case *ast.ProcedureCallStmt:
		return normal, i.callProcedure(n)
	case *ast.InputStmt:
		return normal, i.execInput(n)
	case *ast.OutputStmt:
		return normal, i.execOutput(n)
	case *ast.ReturnStmt:
		return i.execReturn(n)
	case *ast.IfStmt:
		return i.execIf(n)
	case *ast.CaseStmt:
		return i.execCase(n)
	case *ast.ForStmt:
		return i.execFor(n)
	case *ast.WhileStmt:
		return i.execWhile(n)
	case *ast.RepeatUntilStmt:
		return i.execRepeat(n)
	case *ast.FileOpenStmt, *ast.FileReadStmt, *ast.FileWriteStmt, *ast.FileCloseStmt:
		i.logger.Debug("file statement ignored", "node", node.NodeType())
		return normal, nil
	case nil:
		return normal, diagnostics.Errorf(diagnostics.KindInvalidNode, "missing statement")
	default:
		return normal, diagnostics.Errorf(diagnostics.KindInvalidNode, "unsupported statement %s", n.NodeType())
	}
}

// execBlock runs statements until one of them returns.
func (i *Interpreter) execBlock(body []ast.Statement) (outcome, error) {
	for _, stmt := range body {
		out, err := i.execStatement(stmt)
		if err != nil {
			return normal, err
		}
		if out.kind == flowReturn {
			return out, nil
		}
	}
	return normal, nil
}

func (i *Interpreter) execVariableDecl(decl *ast.VariableDecl) error {
	arrType, isArray := decl.Type.(*ast.ArrayType)
	if !isArray {
		for _, name := range decl.Names {
			if err := i.state.Declare(name.Name, decl.Type); err != nil {
				return err
			}
		}
		return nil
	}
	ranges := make([]diagnostics.Range, len(arrType.Bounds))
	for idx, bound := range arrType.Bounds {
		lower, err := i.evalBound(bound.Lower)
		if err != nil {
			return err
		}
		upper, err := i.evalBound(bound.Upper)
		if err != nil {
			return err
		}
		ranges[idx] = diagnostics.Range{Lower: lower, Upper: upper}
	}
	for _, name := range decl.Names {
		if err := i.state.DeclareArray(name.Name, arrType, ranges); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evalBound(expr ast.Expression) (int64, error) {
	v, err := i.evaluate(expr)
	if err != nil {
		return 0, err
	}
	n, ok := wholeNumber(v)
	if !ok {
		return 0, diagnostics.Errorf(diagnostics.KindAssignment, "array bound must be a whole number, got %s", ast.Describe(v))
	}
	return n, nil
}

func (i *Interpreter) execConstantDecl(decl *ast.ConstantDecl) error {
	if decl.Value == nil || decl.Value.Value == nil {
		return diagnostics.Errorf(diagnostics.KindInvalidNode, "constant %s has no value", decl.Name.Name)
	}
	return i.state.DefineConstant(decl.Name.Name, decl.Value.Value)
}

func (i *Interpreter) execAssignment(stmt *ast.AssignmentStmt) error {
	name := stmt.Target.TargetName().Name
	if i.state.IsConstant(name) {
		return constantError(diagnostics.KindAssignment, name, "%s is a constant and cannot be assigned a value", name)
	}
	binding, ok := i.state.Lookup(name)
	if !ok {
		return diagnostics.Undefined(name)
	}
	switch target := stmt.Target.(type) {
	case *ast.Identifier:
		if binding.IsArray() {
			return diagnostics.Errorf(diagnostics.KindAssignment, "cannot assign to array %s as a whole", name)
		}
		value, err := i.evaluate(stmt.Value)
		if err != nil {
			return err
		}
		prim, ok := binding.Type.(ast.PrimitiveType)
		if !ok {
			return diagnostics.Errorf(diagnostics.KindAssignment, "%s has no scalar type", name)
		}
		coerced, ok := coerce(value, prim)
		if !ok {
			return assignmentMismatch(name, value, prim)
		}
		return i.state.Assign(name, coerced)
	case *ast.ArrayIndex:
		if !binding.IsArray() {
			return diagnostics.Errorf(diagnostics.KindAssignment, "%s is not an array", name)
		}
		value, err := i.evaluate(stmt.Value)
		if err != nil {
			return err
		}
		element := binding.Array.Element
		coerced, ok := coerce(value, element)
		if !ok {
			return &diagnostics.InterpreterError{
				Kind:     diagnostics.KindAssignment,
				Name:     name,
				Operands: []ast.Value{value},
				Message:  fmt.Sprintf("cannot assign %s to array %s, expected %s", ast.Describe(value), name, element),
			}
		}
		indices, err := i.evalIndices(target.Indices)
		if err != nil {
			return err
		}
		return i.state.SetArrayValue(name, indices, coerced)
	default:
		return diagnostics.Errorf(diagnostics.KindInvalidNode, "unsupported assignment target %T", target)
	}
}

func (i *Interpreter) execInput(stmt *ast.InputStmt) error {
	name := stmt.Target.TargetName().Name
	if i.state.IsConstant(name) {
		return constantError(diagnostics.KindInput, name, "%s is a constant and cannot be input", name)
	}
	binding, ok := i.state.Lookup(name)
	if !ok {
		return diagnostics.Undefined(name)
	}
	var indices []int64
	var prim ast.PrimitiveType
	switch target := stmt.Target.(type) {
	case *ast.Identifier:
		if binding.IsArray() {
			return diagnostics.Errorf(diagnostics.KindInput, "cannot input a whole array %s", name)
		}
		p, ok := binding.Type.(ast.PrimitiveType)
		if !ok {
			return diagnostics.Errorf(diagnostics.KindInput, "%s has no scalar type", name)
		}
		prim = p
	case *ast.ArrayIndex:
		if !binding.IsArray() {
			return diagnostics.Errorf(diagnostics.KindAssignment, "%s is not an array", name)
		}
		var err error
		if indices, err = i.evalIndices(target.Indices); err != nil {
			return err
		}
		prim = binding.Array.Element
	default:
		return diagnostics.Errorf(diagnostics.KindInvalidNode, "unsupported input target %T", target)
	}

	line, err := readLine(i.in)
	if err != nil {
		return diagnostics.Errorf(diagnostics.KindInput, "reading input for %s: %v", name, err)
	}
	value, err := parseInput(prim, line, name)
	if err != nil {
		return err
	}
	if indices != nil {
		return i.state.SetArrayValue(name, indices, value)
	}
	return i.state.Assign(name, value)
}

func (i *Interpreter) execOutput(stmt *ast.OutputStmt) error {
	var b strings.Builder
	for _, expr := range stmt.Values {
		v, err := i.evaluate(expr)
		if err != nil {
			return err
		}
		b.WriteString(v.String())
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(i.out, b.String()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (i *Interpreter) execReturn(stmt *ast.ReturnStmt) (outcome, error) {
	if i.state.Depth() == 0 {
		return normal, diagnostics.Errorf(diagnostics.KindSubroutine, "RETURN outside of a function")
	}
	v, err := i.evaluate(stmt.Value)
	if err != nil {
		return normal, err
	}
	return outcome{kind: flowReturn, value: v}, nil
}

func (i *Interpreter) execIf(stmt *ast.IfStmt) (outcome, error) {
	cond, err := i.evalCondition(stmt.Condition)
	if err != nil {
		return normal, err
	}
	if cond {
		return i.execBlock(stmt.Then)
	}
	return i.execBlock(stmt.Else)
}

func (i *Interpreter) evalCondition(expr ast.Expression) (bool, error) {
	v, err := i.evaluate(expr)
	if err != nil {
		return false, err
	}
	b, ok := v.(ast.BooleanValue)
	if !ok {
		return false, diagnostics.OperatorError("condition must be BOOLEAN", v)
	}
	return b.Val, nil
}

func (i *Interpreter) execCase(stmt *ast.CaseStmt) (outcome, error) {
	selector, err := i.evaluate(stmt.Selector)
	if err != nil {
		return normal, err
	}
	for _, arm := range stmt.Arms {
		matched, err := i.caseArmMatches(arm, selector)
		if err != nil {
			return normal, err
		}
		if matched {
			return i.execBlock(arm.Body)
		}
	}
	return i.execBlock(stmt.Otherwise)
}

// caseArmMatches compares without raising on unrelated kinds; such arms just
// do not match.
func (i *Interpreter) caseArmMatches(arm *ast.CaseArm, selector ast.Value) (bool, error) {
	lower, err := i.evaluate(arm.Value)
	if err != nil {
		return false, err
	}
	if arm.Upper == nil {
		return valuesEqual(selector, lower), nil
	}
	upper, err := i.evaluate(arm.Upper)
	if err != nil {
		return false, err
	}
	lo, ok := compareValues(lower, selector)
	if !ok || lo > 0 {
		return false, nil
	}
	hi, ok := compareValues(selector, upper)
	return ok && hi <= 0, nil
}

func (i *Interpreter) execFor(stmt *ast.ForStmt) (outcome, error) {
	name := stmt.Variable.Name
	if i.state.IsConstant(name) {
		return normal, constantError(diagnostics.KindAssignment, name, "%s is a constant and cannot be used as a loop counter", name)
	}
	start, err := i.evalLoopBound(stmt.Start, "start")
	if err != nil {
		return normal, err
	}
	end, err := i.evalLoopBound(stmt.End, "end")
	if err != nil {
		return normal, err
	}
	step := int64(1)
	if stmt.Step != nil {
		if step, err = i.evalLoopBound(stmt.Step, "step"); err != nil {
			return normal, err
		}
	}
	iterations := 0
	for current := start; (step > 0 && current <= end) || (step <= 0 && current >= end); {
		if err := i.countIteration(&iterations); err != nil {
			return normal, err
		}
		i.state.Bind(name, bindingOf(ast.IntegerValue{Val: current}, ast.TypeInteger))
		out, err := i.execBlock(stmt.Body)
		if err != nil || out.kind == flowReturn {
			return out, err
		}
		// A counter that would wrap past the int64 limits has passed the end bound.
		next := current + step
		if (step > 0 && next < current) || (step < 0 && next > current) {
			break
		}
		current = next
	}
	return normal, nil
}

func (i *Interpreter) evalLoopBound(expr ast.Expression, what string) (int64, error) {
	v, err := i.evaluate(expr)
	if err != nil {
		return 0, err
	}
	n, ok := wholeNumber(v)
	if !ok {
		return 0, diagnostics.OperatorError(fmt.Sprintf("FOR %s must be a whole number", what), v)
	}
	return n, nil
}

func (i *Interpreter) execWhile(stmt *ast.WhileStmt) (outcome, error) {
	iterations := 0
	for {
		cond, err := i.evalCondition(stmt.Condition)
		if err != nil {
			return normal, err
		}
		if !cond {
			return normal, nil
		}
		if err := i.countIteration(&iterations); err != nil {
			return normal, err
		}
		out, err := i.execBlock(stmt.Body)
		if err != nil || out.kind == flowReturn {
			return out, err
		}
	}
}

func (i *Interpreter) execRepeat(stmt *ast.RepeatUntilStmt) (outcome, error) {
	iterations := 0
	for {
		if err := i.countIteration(&iterations); err != nil {
			return normal, err
		}
		out, err := i.execBlock(stmt.Body)
		if err != nil || out.kind == flowReturn {
			return out, err
		}
		done, err := i.evalCondition(stmt.Condition)
		if err != nil {
			return normal, err
		}
		if done {
			return normal, nil
		}
	}
}

// countIteration fails once a loop is about to start more iterations than the
// ceiling allows.
func (i *Interpreter) countIteration(n *int) error {
	if err := i.ctx.Err(); err != nil {
		return err
	}
	*n++
	if *n > i.maxIterations {
		return diagnostics.Errorf(diagnostics.KindIterationLimit, "maximum iteration limit of %d reached", i.maxIterations)
	}
	return nil
}

func constantError(kind diagnostics.Kind, name, format string, args ...any) error {
	err := diagnostics.Errorf(kind, format, args...)
	err.Name = name
	return err
}

func assignmentMismatch(name string, value ast.Value, prim ast.PrimitiveType) error {
	return &diagnostics.InterpreterError{
		Kind:     diagnostics.KindAssignment,
		Name:     name,
		Operands: []ast.Value{value},
		Message:  fmt.Sprintf("cannot assign %s to %s variable %s", ast.Describe(value), prim, name),
	}
}
