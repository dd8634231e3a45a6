package interpreter

import (
	"bufio"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"pseudocode/interpreter-go/pkg/ast"
	"pseudocode/interpreter-go/pkg/diagnostics"
)

// LineSource supplies INPUT lines. ReadLine returns io.EOF once exhausted.
type LineSource interface {
	ReadLine() (string, error)
}

// ReaderSource reads newline-terminated lines from any reader.
type ReaderSource struct {
	r *bufio.Reader
}

func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: bufio.NewReader(r)}
}

func (s *ReaderSource) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// LinesSource replays a fixed list of lines.
type LinesSource struct {
	lines []string
	next  int
}

func NewLinesSource(lines []string) *LinesSource {
	return &LinesSource{lines: lines}
}

func (s *LinesSource) ReadLine() (string, error) {
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}

// readLine treats exhausted input as an empty line.
func readLine(src LineSource) (string, error) {
	line, err := src.ReadLine()
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	return line, err
}

// parseInput converts one line of user input to the declared primitive.
func parseInput(prim ast.PrimitiveType, line, name string) (ast.Value, error) {
	text := strings.TrimSpace(line)
	switch prim {
	case ast.TypeInteger:
		f, ok := parseNumber(text)
		if !ok {
			return nil, inputError(name, "non-number value %q entered for INTEGER variable %s", text, name)
		}
		if math.Trunc(f) != f || math.Abs(f) >= 1<<63 {
			return nil, inputError(name, "non-integer value %q entered for INTEGER variable %s", text, name)
		}
		return ast.IntegerValue{Val: int64(f)}, nil
	case ast.TypeReal:
		f, ok := parseNumber(text)
		if !ok {
			return nil, inputError(name, "non-number value %q entered for REAL variable %s", text, name)
		}
		return ast.RealValue{Val: f}, nil
	case ast.TypeBoolean:
		switch strings.ToUpper(text) {
		case "TRUE":
			return ast.BooleanValue{Val: true}, nil
		case "FALSE":
			return ast.BooleanValue{Val: false}, nil
		}
		return nil, inputError(name, "non-boolean value %q entered for BOOLEAN variable %s", text, name)
	case ast.TypeChar:
		r, size := utf8.DecodeRuneInString(text)
		if size == 0 {
			return nil, inputError(name, "no character entered for CHAR variable %s", name)
		}
		return ast.CharValue{Val: r}, nil
	case ast.TypeString:
		return ast.StringValue{Val: text}, nil
	}
	return nil, inputError(name, "cannot input a value of type %s", prim)
}

func parseNumber(text string) (float64, bool) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func inputError(name, format string, args ...any) error {
	err := diagnostics.Errorf(diagnostics.KindInput, format, args...)
	err.Name = name
	return err
}
