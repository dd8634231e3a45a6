// Package runtime holds the mutable state of one pseudocode run.
package runtime

import (
	"fmt"
	"sort"

	"pseudocode/interpreter-go/pkg/ast"
	"pseudocode/interpreter-go/pkg/diagnostics"
)

// Binding is a declared variable. Value is nil until first assignment; Array
// is set for ARRAY declarations.
type Binding struct {
	Value ast.Value
	Type  ast.Type
	Array *ArrayValue
}

// IsArray reports whether the binding was declared with an ARRAY type.
func (b Binding) IsArray() bool { return b.Array != nil }

// Ranges are the resolved bounds of an array binding.
func (b Binding) Ranges() []diagnostics.Range {
	if b.Array == nil {
		return nil
	}
	return b.Array.Ranges
}

// VariableState stores variables, constants and subroutines for one run.
//
// Subroutine calls use value-pass with copy-back: PushScope snapshots the
// current variables and continues on a copy; PopScope restores the snapshot
// and copies back every binding whose name already existed in it. Names first
// bound by the callee are dropped.
type VariableState struct {
	variables  map[string]Binding
	saved      []map[string]Binding
	constants  map[string]ast.Value
	functions  map[string]*ast.FunctionDecl
	procedures map[string]*ast.ProcedureDecl
}

func NewVariableState() *VariableState {
	return &VariableState{
		variables:  make(map[string]Binding),
		constants:  make(map[string]ast.Value),
		functions:  make(map[string]*ast.FunctionDecl),
		procedures: make(map[string]*ast.ProcedureDecl),
	}
}

// PushScope enters a subroutine body.
func (s *VariableState) PushScope() {
	s.saved = append(s.saved, s.variables)
	working := make(map[string]Binding, len(s.variables))
	for name, b := range s.variables {
		working[name] = b
	}
	s.variables = working
}

// PopScope leaves a subroutine body, copying shared names back to the caller.
func (s *VariableState) PopScope() {
	if len(s.saved) == 0 {
		return
	}
	callee := s.variables
	caller := s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	for name := range caller {
		if b, ok := callee[name]; ok {
			caller[name] = b
		}
	}
	s.variables = caller
}

// Depth is the number of active subroutine scopes.
func (s *VariableState) Depth() int { return len(s.saved) }

// Lookup returns the binding for a declared variable.
func (s *VariableState) Lookup(name string) (Binding, bool) {
	b, ok := s.variables[name]
	return b, ok
}

// Declare introduces an unset scalar, replacing any binding of the same name.
func (s *VariableState) Declare(name string, typ ast.Type) error {
	if s.IsConstant(name) {
		return constantConflict(name)
	}
	s.variables[name] = Binding{Type: typ}
	return nil
}

// DeclareArray introduces an array binding with freshly allocated storage.
func (s *VariableState) DeclareArray(name string, typ *ast.ArrayType, ranges []diagnostics.Range) error {
	if s.IsConstant(name) {
		return constantConflict(name)
	}
	arr, err := CreateArray(typ.Element, ranges)
	if err != nil {
		return err
	}
	s.variables[name] = Binding{Type: typ, Array: arr}
	return nil
}

// Bind installs a complete binding, as used for subroutine parameters.
func (s *VariableState) Bind(name string, b Binding) {
	s.variables[name] = b
}

// Assign stores an already coerced scalar value.
func (s *VariableState) Assign(name string, value ast.Value) error {
	if s.IsConstant(name) {
		return constantConflict(name)
	}
	b, ok := s.variables[name]
	if !ok {
		return diagnostics.Undefined(name)
	}
	b.Value = value
	s.variables[name] = b
	return nil
}

// GetArrayValue reads one element of an array variable.
func (s *VariableState) GetArrayValue(name string, indices []int64) (ast.Value, error) {
	arr, err := s.array(name)
	if err != nil {
		return nil, err
	}
	return arr.Get(name, indices)
}

// SetArrayValue writes one element of an array variable.
func (s *VariableState) SetArrayValue(name string, indices []int64, value ast.Value) error {
	if s.IsConstant(name) {
		return constantConflict(name)
	}
	arr, err := s.array(name)
	if err != nil {
		return err
	}
	return arr.Set(name, indices, value)
}

func (s *VariableState) array(name string) (*ArrayValue, error) {
	b, ok := s.variables[name]
	if !ok {
		return nil, diagnostics.Undefined(name)
	}
	if b.Array == nil {
		return nil, diagnostics.Errorf(diagnostics.KindAssignment, "%s is not an array", name)
	}
	return b.Array, nil
}

// DefineConstant records an immutable value. Redefining a constant or
// shadowing a variable is rejected.
func (s *VariableState) DefineConstant(name string, value ast.Value) error {
	if s.IsConstant(name) {
		return constantConflict(name)
	}
	if _, ok := s.variables[name]; ok {
		return diagnostics.Errorf(diagnostics.KindAssignment, "cannot declare constant %s, a variable of that name exists", name)
	}
	s.constants[name] = value
	return nil
}

func (s *VariableState) Constant(name string) (ast.Value, bool) {
	v, ok := s.constants[name]
	return v, ok
}

func (s *VariableState) IsConstant(name string) bool {
	_, ok := s.constants[name]
	return ok
}

// DefineFunction registers a function; a later definition replaces an earlier one.
func (s *VariableState) DefineFunction(decl *ast.FunctionDecl) {
	s.functions[decl.Name.Name] = decl
}

func (s *VariableState) Function(name string) (*ast.FunctionDecl, bool) {
	fn, ok := s.functions[name]
	return fn, ok
}

func (s *VariableState) DefineProcedure(decl *ast.ProcedureDecl) {
	s.procedures[decl.Name.Name] = decl
}

func (s *VariableState) Procedure(name string) (*ast.ProcedureDecl, bool) {
	proc, ok := s.procedures[name]
	return proc, ok
}

// Names returns the visible variable names in sorted order (useful for determinism in tests).
func (s *VariableState) Names() []string {
	keys := make([]string, 0, len(s.variables))
	for k := range s.variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func constantConflict(name string) error {
	return &diagnostics.InterpreterError{
		Kind:    diagnostics.KindAssignment,
		Name:    name,
		Message: fmt.Sprintf("cannot modify constant %s", name),
	}
}
