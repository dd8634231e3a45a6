package interpreter

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"pseudocode/interpreter-go/pkg/ast"
	"pseudocode/interpreter-go/pkg/diagnostics"
)

type builtin struct {
	arity int
	call  func(i *Interpreter, args []ast.Value) (ast.Value, error)
}

// builtins shadow user functions of the same name.
var builtins = map[string]builtin{
	"SUBSTRING": {arity: 3, call: builtinSubstring},
	"RANDOM":    {arity: 0, call: builtinRandom},
	"MOD":       {arity: 2, call: builtinMod},
	"DIV":       {arity: 2, call: builtinDiv},
	"ROUND":     {arity: 2, call: builtinRound},
	"LENGTH":    {arity: 1, call: builtinLength},
	"LCASE":     {arity: 1, call: builtinLcase},
	"UCASE":     {arity: 1, call: builtinUcase},
}

var arityWords = []string{"no parameters", "exactly one parameter", "exactly two parameters", "exactly three parameters"}

func (i *Interpreter) callBuiltin(name string, b builtin, exprs []ast.Expression) (ast.Value, error) {
	if len(exprs) != b.arity {
		return nil, builtinError(name, "%s function requires %s, got %d", name, arityWords[b.arity], len(exprs))
	}
	args := make([]ast.Value, len(exprs))
	for idx, expr := range exprs {
		v, err := i.evaluate(expr)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}
	return b.call(i, args)
}

func builtinSubstring(_ *Interpreter, args []ast.Value) (ast.Value, error) {
	text, ok := ast.AsText(args[0])
	start, sok := args[1].(ast.IntegerValue)
	length, lok := args[2].(ast.IntegerValue)
	if !ok || !sok || !lok {
		return nil, badArguments("SUBSTRING", "SUBSTRING function requires a STRING and two INTEGER parameters", args)
	}
	runes := []rune(text)
	switch {
	case start.Val < 1:
		return nil, builtinError("SUBSTRING", "SUBSTRING start must be at least 1, got %d", start.Val)
	case length.Val < 0:
		return nil, builtinError("SUBSTRING", "SUBSTRING length must not be negative, got %d", length.Val)
	case start.Val > int64(len(runes))+1 || length.Val > int64(len(runes))-start.Val+1:
		return nil, builtinError("SUBSTRING", "SUBSTRING of %d characters from position %d exceeds the length %d of %q",
			length.Val, start.Val, len(runes), text)
	}
	from := start.Val - 1
	return ast.StringValue{Val: string(runes[from : from+length.Val])}, nil
}

func builtinRandom(i *Interpreter, _ []ast.Value) (ast.Value, error) {
	return ast.RealValue{Val: i.rng.Float64()}, nil
}

func integerPair(name string, args []ast.Value) (int64, int64, error) {
	a, aok := args[0].(ast.IntegerValue)
	b, bok := args[1].(ast.IntegerValue)
	if !aok || !bok {
		return 0, 0, builtinError(name, "%s function requires INTEGER parameters", name)
	}
	if b.Val == 0 {
		return 0, 0, builtinError(name, "%s function cannot divide by zero", name)
	}
	return a.Val, b.Val, nil
}

// builtinMod takes the sign of the divisor, like floored division.
func builtinMod(_ *Interpreter, args []ast.Value) (ast.Value, error) {
	a, b, err := integerPair("MOD", args)
	if err != nil {
		return nil, err
	}
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return ast.IntegerValue{Val: r}, nil
}

func builtinDiv(_ *Interpreter, args []ast.Value) (ast.Value, error) {
	a, b, err := integerPair("DIV", args)
	if err != nil {
		return nil, err
	}
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return ast.IntegerValue{Val: q}, nil
}

// builtinRound rounds half to even at the given number of decimal places. A
// negative place count rounds to tens, hundreds and so on.
func builtinRound(_ *Interpreter, args []ast.Value) (ast.Value, error) {
	places, ok := args[1].(ast.IntegerValue)
	if !ok || !ast.IsNumeric(args[0]) {
		return nil, badArguments("ROUND", "ROUND function requires a number and an INTEGER number of places", args)
	}
	switch x := args[0].(type) {
	case ast.IntegerValue:
		if places.Val >= 0 {
			return x, nil
		}
		rounded, ok := roundInteger(x.Val, -places.Val)
		if !ok {
			return nil, builtinError("ROUND", "ROUND of %d to %d places is outside the INTEGER range", x.Val, places.Val)
		}
		return ast.IntegerValue{Val: rounded}, nil
	case ast.RealValue:
		if math.IsInf(x.Val, 0) || math.IsNaN(x.Val) {
			return x, nil
		}
		if places.Val < 0 {
			scale := math.Pow10(int(-max(places.Val, -308)))
			return ast.RealValue{Val: math.RoundToEven(x.Val/scale) * scale}, nil
		}
		if places.Val > 300 {
			return x, nil
		}
		// FormatFloat rounds the exact binary value, ties to even.
		rounded, err := strconv.ParseFloat(strconv.FormatFloat(x.Val, 'f', int(places.Val), 64), 64)
		if err != nil {
			return nil, builtinError("ROUND", "ROUND failed: %v", err)
		}
		return ast.RealValue{Val: rounded}, nil
	}
	return nil, badArguments("ROUND", "ROUND function requires a number", args[:1])
}

// roundInteger rounds x to a multiple of 10^digits, ties to even. It reports
// false when the result does not fit in an int64.
func roundInteger(x, digits int64) (int64, bool) {
	if digits > 19 {
		return 0, true
	}
	if digits == 19 {
		// 10^19 itself is out of range, so only values that round to zero fit.
		const half = 5_000_000_000_000_000_000
		return 0, x >= -half && x <= half
	}
	scale := int64(1)
	for i := int64(0); i < digits; i++ {
		scale *= 10
	}
	q, r := x/scale, x%scale
	if r < 0 {
		r = -r
	}
	if 2*r > scale || (2*r == scale && q%2 != 0) {
		if x < 0 {
			q--
		} else {
			q++
		}
	}
	if q > math.MaxInt64/scale || q < math.MinInt64/scale {
		return 0, false
	}
	return q * scale, true
}

func builtinLength(_ *Interpreter, args []ast.Value) (ast.Value, error) {
	text, ok := ast.AsText(args[0])
	if !ok {
		return nil, badArguments("LENGTH", "LENGTH function requires a STRING parameter", args)
	}
	return ast.IntegerValue{Val: int64(utf8.RuneCountInString(text))}, nil
}

func builtinLcase(_ *Interpreter, args []ast.Value) (ast.Value, error) {
	text, ok := ast.AsText(args[0])
	if !ok {
		return nil, badArguments("LCASE", "LCASE function requires a STRING or CHAR parameter", args)
	}
	return ast.StringValue{Val: strings.ToLower(text)}, nil
}

func builtinUcase(_ *Interpreter, args []ast.Value) (ast.Value, error) {
	text, ok := ast.AsText(args[0])
	if !ok {
		return nil, badArguments("UCASE", "UCASE function requires a STRING or CHAR parameter", args)
	}
	return ast.StringValue{Val: strings.ToUpper(text)}, nil
}

func builtinError(name, format string, args ...any) *diagnostics.InterpreterError {
	err := diagnostics.Errorf(diagnostics.KindBuiltin, format, args...)
	err.Name = name
	return err
}

// badArguments reports a kind mismatch together with the offending values.
func badArguments(name, message string, args []ast.Value) error {
	err := builtinError(name, "%s", message)
	err.Operands = args
	return err
}
