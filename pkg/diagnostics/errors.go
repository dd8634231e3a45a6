// Package diagnostics defines the lexical, syntax and runtime errors reported
// by the pseudocode toolchain, and renders them against their source text.
package diagnostics

import (
	"fmt"
	"strings"

	"pseudocode/interpreter-go/pkg/ast"
)

// Location is a 1-based line/column pair.
type Location = ast.Position

type Category string

const (
	CategoryLexical Category = "Lexical"
	CategorySyntax  Category = "Syntax"
	CategoryRuntime Category = "Runtime"
)

// Kind identifies an error class. Kinds are themselves errors so callers can
// match with errors.Is(err, diagnostics.KindIndex).
type Kind string

const (
	KindInvalidCharacter Kind = "InvalidCharacter"
	KindInvalidLiteral   Kind = "InvalidLiteral"

	KindUnexpectedToken     Kind = "UnexpectedToken"
	KindUnexpectedTokenKind Kind = "UnexpectedTokenKind"

	KindInvalidNode    Kind = "InvalidNode"
	KindOperator       Kind = "OperatorError"
	KindBuiltin        Kind = "BuiltinError"
	KindUndefined      Kind = "UndefinedError"
	KindAssignment     Kind = "AssignmentError"
	KindIndex          Kind = "IndexError"
	KindSubroutine     Kind = "SubroutineError"
	KindInput          Kind = "InputError"
	KindIterationLimit Kind = "IterationLimitError"
)

func (k Kind) Error() string { return string(k) }

func (k Kind) Category() Category {
	switch k {
	case KindInvalidCharacter, KindInvalidLiteral:
		return CategoryLexical
	case KindUnexpectedToken, KindUnexpectedTokenKind:
		return CategorySyntax
	default:
		return CategoryRuntime
	}
}

// Diagnostic is implemented by every error this package defines.
type Diagnostic interface {
	error
	DiagnosticKind() Kind
	Pos() Location
}

// Range is an inclusive array dimension.
type Range struct {
	Lower int64 `json:"lower"`
	Upper int64 `json:"upper"`
}

func (r Range) String() string { return fmt.Sprintf("%d:%d", r.Lower, r.Upper) }

// Contains reports whether idx falls inside the dimension.
func (r Range) Contains(idx int64) bool { return idx >= r.Lower && idx <= r.Upper }

// Size is the number of cells in the dimension.
func (r Range) Size() int64 { return r.Upper - r.Lower + 1 }

// LexicalError

type LexicalError struct {
	Kind     Kind
	Text     string
	Location Location
}

func (e *LexicalError) Error() string {
	switch e.Kind {
	case KindInvalidLiteral:
		return fmt.Sprintf("invalid literal %q at %s", e.Text, e.Location)
	default:
		return fmt.Sprintf("invalid character %q at %s", e.Text, e.Location)
	}
}

func (e *LexicalError) Is(target error) bool { return isKind(e.Kind, target) }
func (e *LexicalError) DiagnosticKind() Kind { return e.Kind }
func (e *LexicalError) Pos() Location        { return e.Location }

// SyntaxError

// SyntaxError reports the first grammar violation. For KindUnexpectedToken
// Expected spells a keyword or symbol; for KindUnexpectedTokenKind it names a
// class such as "identifier" or "expression".
type SyntaxError struct {
	Kind     Kind
	Expected string
	Found    ast.Token
	Location Location
}

func (e *SyntaxError) Error() string {
	found := "end of file"
	if e.Found.Kind != ast.TokenEOF {
		found = fmt.Sprintf("'%s'", e.Found)
	}
	if e.Kind == KindUnexpectedToken {
		return fmt.Sprintf("expected '%s' at %s, found %s instead", e.Expected, e.Location, found)
	}
	return fmt.Sprintf("expected %s at %s, found %s instead", e.Expected, e.Location, found)
}

func (e *SyntaxError) Is(target error) bool { return isKind(e.Kind, target) }
func (e *SyntaxError) DiagnosticKind() Kind { return e.Kind }
func (e *SyntaxError) Pos() Location        { return e.Location }

// InterpreterError

type InterpreterError struct {
	Kind     Kind
	Message  string
	Name     string
	Operands []ast.Value
	Indices  []int64
	Ranges   []Range
	Location Location
}

func (e *InterpreterError) Error() string {
	switch e.Kind {
	case KindUndefined:
		return "undefined identifier: " + e.detail()
	case KindAssignment:
		return "assignment error: " + e.detail()
	case KindInput:
		return "input error: " + e.detail()
	case KindIndex:
		var b strings.Builder
		fmt.Fprintf(&b, "index out of range, trying to access %s", e.Name)
		for _, idx := range e.Indices {
			fmt.Fprintf(&b, "[%d]", idx)
		}
		ranges := make([]string, len(e.Ranges))
		for i, r := range e.Ranges {
			ranges[i] = r.String()
		}
		fmt.Fprintf(&b, ", but %s has a range of [%s]", e.Name, strings.Join(ranges, ", "))
		if e.Message != "" {
			b.WriteString(": " + e.Message)
		}
		return b.String()
	case KindOperator:
		if len(e.Operands) == 0 {
			return "unsupported operation: " + e.Message
		}
		described := make([]string, len(e.Operands))
		for i, v := range e.Operands {
			described[i] = ast.Describe(v)
		}
		return fmt.Sprintf("unsupported operation for %s: %s", strings.Join(described, " and "), e.Message)
	case KindInvalidNode:
		if e.Location.IsValid() {
			return fmt.Sprintf("invalid node at %s: %s", e.Location, e.Message)
		}
		return "invalid node: " + e.Message
	default:
		return e.Message
	}
}

func (e *InterpreterError) detail() string {
	if e.Message == "" {
		return e.Name
	}
	return e.Message
}

func (e *InterpreterError) Is(target error) bool { return isKind(e.Kind, target) }
func (e *InterpreterError) DiagnosticKind() Kind { return e.Kind }
func (e *InterpreterError) Pos() Location        { return e.Location }

func isKind(k Kind, target error) bool {
	t, ok := target.(Kind)
	return ok && t == k
}

// Constructors used by the runtime layers.

func Errorf(kind Kind, format string, args ...any) *InterpreterError {
	return &InterpreterError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Undefined(name string) *InterpreterError {
	return &InterpreterError{Kind: KindUndefined, Name: name}
}

func OperatorError(message string, operands ...ast.Value) *InterpreterError {
	return &InterpreterError{Kind: KindOperator, Message: message, Operands: operands}
}

func IndexError(name string, indices []int64, ranges []Range, message string) *InterpreterError {
	return &InterpreterError{
		Kind:    KindIndex,
		Name:    name,
		Indices: append([]int64(nil), indices...),
		Ranges:  append([]Range(nil), ranges...),
		Message: message,
	}
}

// At fills in the location when the error does not have one yet. Errors raised
// deep inside an expression keep the position they were first given.
func At(err error, loc Location) error {
	if err == nil || !loc.IsValid() {
		return err
	}
	if ie, ok := err.(*InterpreterError); ok && !ie.Location.IsValid() {
		ie.Location = loc
	}
	return err
}
