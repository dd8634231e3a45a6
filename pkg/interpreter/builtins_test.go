package interpreter

import (
	"strings"
	"testing"

	"pseudocode/interpreter-go/pkg/diagnostics"
)

func TestBuiltins(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{`SUBSTRING("HELLO", 2, 3)`, "ELL"},
		{`SUBSTRING("HELLO", 1, 5)`, "HELLO"},
		{`SUBSTRING("HELLO", 6, 0)`, ""},
		{"MOD(7, 2)", "1"},
		{"MOD(-7, 2)", "1"},
		{"MOD(7, -2)", "-1"},
		{"DIV(7, 2)", "3"},
		{"DIV(-7, 2)", "-4"},
		{"ROUND(2.5, 0)", "2.0"},
		{"ROUND(3.5, 0)", "4.0"},
		{"ROUND(3.14159, 2)", "3.14"},
		{"ROUND(1250, -2)", "1200"},
		{"ROUND(7, 2)", "7"},
		{"ROUND(-1250, -2)", "-1200"},
		{"ROUND(-1350, -2)", "-1400"},
		{"ROUND(9223372036854775807, -2)", "9223372036854775800"},
		{"ROUND(4999999999999999999, -19)", "0"},
		{"ROUND(-9223372036854775807, -40)", "0"},
		{`SUBSTRING("HELLO", 5, 1)`, "O"},
		{`LENGTH("héllo")`, "5"},
		{`LCASE("MiXeD")`, "mixed"},
		{`UCASE("MiXeD")`, "MIXED"},
		{`LENGTH(UCASE("ab") & "c")`, "3"},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			out := mustRun(t, "OUTPUT "+tc.expr+"\n")
			if got := strings.TrimSuffix(out, "\n"); got != tc.want {
				t.Fatalf("%s: expected %q, got %q", tc.expr, tc.want, got)
			}
		})
	}
}

func TestBuiltinErrors(t *testing.T) {
	cases := []string{
		`SUBSTRING("HELLO", 4, 5)`,
		`SUBSTRING("HELLO", 0, 1)`,
		`SUBSTRING("HELLO", 1, -1)`,
		`SUBSTRING("HELLO", 1)`,
		`SUBSTRING(1, 1, 1)`,
		"MOD(7, 0)",
		"DIV(7, 0)",
		"MOD(7.5, 2)",
		`ROUND("x", 1)`,
		"ROUND(1.5, 0.5)",
		"LENGTH(5)",
		"UCASE(TRUE)",
		"RANDOM(1)",
	}
	for _, expr := range cases {
		t.Run(expr, func(t *testing.T) {
			_, _, err := runSource(t, "OUTPUT "+expr+"\n")
			ie := expectKind(t, err, diagnostics.KindBuiltin)
			if ie.Message == "" || ie.Name == "" {
				t.Fatalf("builtin error should name its contract: %+v", ie)
			}
		})
	}
}

func TestRandomIsSeededAndInRange(t *testing.T) {
	first := mustRun(t, "OUTPUT RANDOM()\nOUTPUT RANDOM()\n")
	second := mustRun(t, "OUTPUT RANDOM()\nOUTPUT RANDOM()\n")
	if first != second {
		t.Fatalf("same seed should repeat: %q vs %q", first, second)
	}
	out := mustRun(t, `DECLARE R : REAL
FOR I <- 1 TO 200
  R <- RANDOM()
  IF R < 0 OR R >= 1 THEN
    OUTPUT "out of range"
  ENDIF
NEXT I
`)
	if out != "" {
		t.Fatalf("RANDOM produced values outside [0,1)")
	}
}

func TestBuiltinsShadowUserFunctions(t *testing.T) {
	out := mustRun(t, `FUNCTION LENGTH(S : STRING) RETURNS INTEGER
  RETURN 99
ENDFUNCTION
OUTPUT LENGTH("abc")
`)
	if out != "3\n" {
		t.Fatalf("expected builtin LENGTH to win, got %q", out)
	}
}
