package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind identifies the runtime value category.
type ValueKind int

const (
	KindInteger ValueKind = iota
	KindReal
	KindBoolean
	KindChar
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindInteger:
		return "INTEGER"
	case KindReal:
		return "REAL"
	case KindBoolean:
		return "BOOLEAN"
	case KindChar:
		return "CHAR"
	case KindString:
		return "STRING"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour of literal and runtime values.
type Value interface {
	Kind() ValueKind
	String() string
}

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() ValueKind { return KindInteger }
func (v IntegerValue) String() string  { return strconv.FormatInt(v.Val, 10) }

type RealValue struct {
	Val float64
}

func (v RealValue) Kind() ValueKind { return KindReal }

// String prints the shortest representation that round-trips, always keeping a
// decimal point or exponent so reals stay distinguishable from integers.
func (v RealValue) String() string {
	f := v.Val
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

type BooleanValue struct {
	Val bool
}

func (v BooleanValue) Kind() ValueKind { return KindBoolean }

func (v BooleanValue) String() string {
	if v.Val {
		return "TRUE"
	}
	return "FALSE"
}

// CharValue holds exactly one code point.
type CharValue struct {
	Val rune
}

func (v CharValue) Kind() ValueKind { return KindChar }
func (v CharValue) String() string  { return string(v.Val) }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() ValueKind { return KindString }
func (v StringValue) String() string  { return v.Val }

// IsNumeric reports whether v is an INTEGER or REAL value.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case IntegerValue, RealValue:
		return true
	}
	return false
}

// AsFloat widens a numeric value.
func AsFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case IntegerValue:
		return float64(n.Val), true
	case RealValue:
		return n.Val, true
	}
	return 0, false
}

// AsText returns the text of a STRING or CHAR value.
func AsText(v Value) (string, bool) {
	switch s := v.(type) {
	case StringValue:
		return s.Val, true
	case CharValue:
		return string(s.Val), true
	}
	return "", false
}

// Describe renders a value with its kind for diagnostics, e.g. `STRING "ab"`.
func Describe(v Value) string {
	if v == nil {
		return "<no value>"
	}
	switch s := v.(type) {
	case StringValue:
		return fmt.Sprintf("%s %q", v.Kind(), s.Val)
	case CharValue:
		return fmt.Sprintf("%s '%c'", v.Kind(), s.Val)
	}
	return fmt.Sprintf("%s %s", v.Kind(), v.String())
}
