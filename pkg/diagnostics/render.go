package diagnostics

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Render formats err for a terminal. Diagnostics get a header followed by up
// to three numbered source lines around the failing line and an underline row:
//
//	syntax error: expected 'THEN' at line 2 column 9, found 'OUTPUT' instead
//
//	   1 | DECLARE X : INTEGER
//	   2 | IF X > 1 OUTPUT X
//	     |         ^
//	   3 | ENDIF
//
// Lexical and syntax errors put a caret at the column; runtime errors underline
// the whole trimmed line. Any other error renders as its message.
func Render(err error, src string) string {
	if err == nil {
		return ""
	}
	var d Diagnostic
	if !errors.As(err, &d) {
		return err.Error()
	}
	header := Describe(err)
	loc := d.Pos()
	if !loc.IsValid() {
		return header + "\n"
	}
	lines := strings.Split(src, "\n")
	if loc.Line > len(lines) {
		return header + "\n"
	}
	runtime := d.DiagnosticKind().Category() == CategoryRuntime

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	if loc.Line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", loc.Line-1, trimEOL(lines[loc.Line-2]))
	}
	current := trimEOL(lines[loc.Line-1])
	fmt.Fprintf(&b, "%4d | %s\n", loc.Line, current)
	fmt.Fprintf(&b, "     | %s\n", underline(current, loc.Column, runtime))
	if loc.Line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", loc.Line+1, trimEOL(lines[loc.Line]))
	}
	return b.String()
}

// Describe is the one-line form of err prefixed with its category.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var d Diagnostic
	if !errors.As(err, &d) {
		return err.Error()
	}
	return fmt.Sprintf("%s error: %s", strings.ToLower(string(d.DiagnosticKind().Category())), err.Error())
}

func underline(line string, column int, whole bool) string {
	if whole {
		trimmed := strings.TrimLeft(line, " \t")
		indent := utf8.RuneCountInString(line) - utf8.RuneCountInString(trimmed)
		width := utf8.RuneCountInString(strings.TrimRight(trimmed, " \t"))
		if width == 0 {
			width = 1
		}
		return strings.Repeat(" ", indent) + strings.Repeat("^", width)
	}
	pad := column - 1
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + "^"
}

func trimEOL(s string) string {
	return strings.TrimSuffix(s, "\r")
}
