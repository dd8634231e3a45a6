package interpreter

import (
	"pseudocode/interpreter-go/pkg/ast"
	"pseudocode/interpreter-go/pkg/diagnostics"
	"pseudocode/interpreter-go/pkg/runtime"
)

// argument is an evaluated call argument: a scalar value or a private copy of
// an array passed by name.
type argument struct {
	value ast.Value
	array *runtime.ArrayValue
}

func (i *Interpreter) callFunction(call *ast.FunctionCall) (ast.Value, error) {
	name := call.Callee.Name
	if b, ok := builtins[name]; ok {
		return i.callBuiltin(name, b, call.Arguments)
	}
	fn, ok := i.state.Function(name)
	if !ok {
		if _, isProc := i.state.Procedure(name); isProc {
			return nil, &diagnostics.InterpreterError{
				Kind:    diagnostics.KindSubroutine,
				Name:    name,
				Message: name + " is a procedure and must be invoked with CALL",
			}
		}
		return nil, &diagnostics.InterpreterError{
			Kind:    diagnostics.KindUndefined,
			Name:    name,
			Message: "function " + name + " is not defined",
		}
	}
	args, err := i.evalArguments(call.Arguments)
	if err != nil {
		return nil, err
	}
	out, err := i.invoke(name, fn.Params, args, fn.Body)
	if err != nil {
		return nil, err
	}
	if out.kind != flowReturn {
		return nil, diagnostics.Errorf(diagnostics.KindSubroutine, "function %s did not return a value", name)
	}
	return out.value, nil
}

func (i *Interpreter) callProcedure(stmt *ast.ProcedureCallStmt) error {
	name := stmt.Callee.Name
	proc, ok := i.state.Procedure(name)
	if !ok {
		return &diagnostics.InterpreterError{
			Kind:    diagnostics.KindUndefined,
			Name:    name,
			Message: "procedure " + name + " is not defined",
		}
	}
	args, err := i.evalArguments(stmt.Arguments)
	if err != nil {
		return err
	}
	out, err := i.invoke(name, proc.Params, args, proc.Body)
	if err != nil {
		return err
	}
	if out.kind == flowReturn {
		return diagnostics.Errorf(diagnostics.KindSubroutine, "procedure %s must not return a value", name)
	}
	return nil
}

// evalArguments runs in the caller's scope. A bare array name is copied so the
// callee cannot modify the caller's storage.
func (i *Interpreter) evalArguments(exprs []ast.Expression) ([]argument, error) {
	args := make([]argument, len(exprs))
	for idx, expr := range exprs {
		if id, ok := expr.(*ast.Identifier); ok {
			if b, found := i.state.Lookup(id.Name); found && b.IsArray() {
				args[idx] = argument{array: b.Array.Clone()}
				continue
			}
		}
		v, err := i.evaluate(expr)
		if err != nil {
			return nil, err
		}
		args[idx] = argument{value: v}
	}
	return args, nil
}

// invoke binds parameters positionally in a fresh scope and runs the body.
// Extra arguments are ignored and missing ones leave the parameter unbound.
func (i *Interpreter) invoke(name string, params []*ast.Parameter, args []argument, body []ast.Statement) (outcome, error) {
	if i.state.Depth() >= i.maxCallDepth {
		return normal, diagnostics.Errorf(diagnostics.KindSubroutine, "maximum call depth of %d exceeded calling %s", i.maxCallDepth, name)
	}
	if err := i.ctx.Err(); err != nil {
		return normal, err
	}
	i.state.PushScope()
	defer i.state.PopScope()
	i.logger.Debug("subroutine call", "name", name, "args", len(args), "depth", i.state.Depth())

	for idx, param := range params {
		if idx >= len(args) {
			break
		}
		arg := args[idx]
		if arg.array != nil {
			i.state.Bind(param.Name.Name, runtime.Binding{Type: param.Type, Array: arg.array})
			continue
		}
		i.state.Bind(param.Name.Name, bindingOf(arg.value, param.Type))
	}
	return i.execBlock(body)
}
