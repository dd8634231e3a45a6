package interpreter

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"pseudocode/interpreter-go/pkg/ast"
	"pseudocode/interpreter-go/pkg/diagnostics"
	"pseudocode/interpreter-go/pkg/parser"
)

func runSource(t *testing.T, source string, input ...string) (string, *Interpreter, error) {
	t.Helper()
	program, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var out bytes.Buffer
	interp := New(Options{
		Output: &out,
		Input:  NewLinesSource(input),
		Random: rand.New(rand.NewSource(1)),
	})
	err = interp.Execute(program)
	return out.String(), interp, err
}

func mustRun(t *testing.T, source string, input ...string) string {
	t.Helper()
	out, _, err := runSource(t, source, input...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func expectKind(t *testing.T, err error, kind diagnostics.Kind) *diagnostics.InterpreterError {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %s, got %v", kind, err)
	}
	var ie *diagnostics.InterpreterError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InterpreterError, got %T", err)
	}
	return ie
}

func TestEndToEndAssignmentAndOutput(t *testing.T) {
	out := mustRun(t, "DECLARE X : INTEGER\nX <- 2 + 3\nOUTPUT X\n")
	if out != "5\n" {
		t.Fatalf("expected 5, got %q", out)
	}
}

func TestLiteralDisplay(t *testing.T) {
	out := mustRun(t, `OUTPUT 42
OUTPUT 3.5
OUTPUT TRUE
OUTPUT "ab"
OUTPUT "a", 1, " ", FALSE
`)
	want := "42\n3.5\nTRUE\nab\na1 FALSE\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"7 + 2", "9"},
		{"7 - 2.5", "4.5"},
		{"6 / 3", "2.0"},
		{"7 / 2", "3.5"},
		{"2 ^ 10", "1024"},
		{"2 ^ 3 ^ 2", "512"},
		{"2.0 ^ 2", "4.0"},
		{"2 ^ -1", "0.5"},
		{"-3 * 2", "-6"},
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{`"ab" + "cd"`, "abcd"},
		{`"x" & "y"`, "xy"},
		{"3 > 2 AND 1 < 2", "TRUE"},
		{"NOT TRUE OR TRUE", "TRUE"},
		{"1 = 1.0", "TRUE"},
		{`"a" = "a"`, "TRUE"},
		{`"abc" < "abd"`, "TRUE"},
		{`1 = "1"`, "FALSE"},
		{`TRUE <> FALSE`, "TRUE"},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			out := mustRun(t, "OUTPUT "+tc.expr+"\n")
			if got := strings.TrimSuffix(out, "\n"); got != tc.want {
				t.Fatalf("%s: expected %s, got %s", tc.expr, tc.want, got)
			}
		})
	}
}

func TestOperatorErrors(t *testing.T) {
	cases := []string{
		"OUTPUT 1 / 0",
		`OUTPUT 1 - "a"`,
		`OUTPUT 1 < "a"`,
		"OUTPUT TRUE < FALSE",
		"OUTPUT 1 AND TRUE",
		"OUTPUT NOT 1",
		`OUTPUT -"a"`,
		`OUTPUT 1 & 2`,
		"IF 1 THEN\nOUTPUT 1\nENDIF",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			_, _, err := runSource(t, src+"\n")
			expectKind(t, err, diagnostics.KindOperator)
		})
	}
}

func TestComparisonErrorNamesBothOperands(t *testing.T) {
	_, _, err := runSource(t, "OUTPUT 1 < \"a\"\n")
	ie := expectKind(t, err, diagnostics.KindOperator)
	if len(ie.Operands) != 2 {
		t.Fatalf("expected both operands, got %v", ie.Operands)
	}
	if !strings.Contains(err.Error(), `INTEGER 1 and STRING "a"`) {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestShortCircuit(t *testing.T) {
	out := mustRun(t, `OUTPUT FALSE AND Missing
OUTPUT TRUE OR Missing
`)
	if out != "FALSE\nTRUE\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestUndefinedIdentifiers(t *testing.T) {
	_, _, err := runSource(t, "OUTPUT Y\n")
	ie := expectKind(t, err, diagnostics.KindUndefined)
	if ie.Name != "Y" || ie.Location.Line != 1 {
		t.Fatalf("unexpected error detail %+v", ie)
	}

	_, _, err = runSource(t, "DECLARE Y : INTEGER\nOUTPUT Y\n")
	ie = expectKind(t, err, diagnostics.KindUndefined)
	if ie.Location.Line != 2 {
		t.Fatalf("expected line 2, got %d", ie.Location.Line)
	}

	_, _, err = runSource(t, "Z <- 1\n")
	expectKind(t, err, diagnostics.KindUndefined)
}

func TestCoercion(t *testing.T) {
	out := mustRun(t, `DECLARE I : INTEGER
DECLARE B : BOOLEAN
DECLARE R : REAL
DECLARE C : CHAR
DECLARE S : STRING
I <- 3.0
B <- 1
R <- 2
C <- "x"
S <- C
OUTPUT I, " ", B, " ", R, " ", C, " ", S
`)
	if out != "3 TRUE 2.0 x x\n" {
		t.Fatalf("unexpected output %q", out)
	}

	for _, src := range []string{
		"DECLARE I : INTEGER\nI <- 3.5\n",
		"DECLARE B : BOOLEAN\nB <- 2\n",
		"DECLARE C : CHAR\nC <- \"xy\"\n",
		"DECLARE S : STRING\nS <- 1\n",
		"DECLARE R : REAL\nR <- \"1\"\n",
	} {
		_, _, err := runSource(t, src)
		expectKind(t, err, diagnostics.KindAssignment)
	}
}

func TestConstants(t *testing.T) {
	out := mustRun(t, "CONSTANT Pi = 3.14\nOUTPUT Pi\n")
	if out != "3.14\n" {
		t.Fatalf("unexpected output %q", out)
	}
	for _, src := range []string{
		"CONSTANT Pi = 3.14\nPi <- 3\n",
		"CONSTANT Pi = 3.14\nDECLARE Pi : REAL\n",
		"CONSTANT Pi = 3.14\nCONSTANT Pi = 3\n",
		"CONSTANT N = 1\nFOR N <- 1 TO 2\nNEXT N\n",
	} {
		_, _, err := runSource(t, src)
		expectKind(t, err, diagnostics.KindAssignment)
	}
	_, _, err := runSource(t, "CONSTANT Pi = 3.14\nINPUT Pi\n", "3")
	expectKind(t, err, diagnostics.KindInput)
}

func TestArrays(t *testing.T) {
	out := mustRun(t, `DECLARE A : ARRAY[1:3] OF INTEGER
DECLARE G : ARRAY[1:2, 1:2] OF STRING
FOR I <- 1 TO 3
  A[I] <- I * I
NEXT I
G[2, 1] <- "x"
OUTPUT A[1], A[2], A[3], G[2, 1]
`)
	if out != "149x\n" {
		t.Fatalf("unexpected output %q", out)
	}

	for _, idx := range []string{"0", "4"} {
		_, _, err := runSource(t, "DECLARE A : ARRAY[1:3] OF INTEGER\nA["+idx+"] <- 1\n")
		ie := expectKind(t, err, diagnostics.KindIndex)
		if ie.Name != "A" || len(ie.Ranges) != 1 || ie.Ranges[0] != (diagnostics.Range{Lower: 1, Upper: 3}) {
			t.Fatalf("index error lacks detail: %+v", ie)
		}
	}

	_, _, err := runSource(t, "DECLARE A : ARRAY[1:3] OF INTEGER\nA[1] <- \"s\"\n")
	expectKind(t, err, diagnostics.KindAssignment)

	_, _, err = runSource(t, "DECLARE X : INTEGER\nOUTPUT X[1]\n")
	expectKind(t, err, diagnostics.KindAssignment)

	_, _, err = runSource(t, "DECLARE A : ARRAY[1:3] OF INTEGER\nOUTPUT A\n")
	expectKind(t, err, diagnostics.KindOperator)

	_, _, err = runSource(t, "DECLARE A : ARRAY[1:3] OF INTEGER\nOUTPUT A[1.5]\n")
	expectKind(t, err, diagnostics.KindOperator)

	_, _, err = runSource(t, "DECLARE A : ARRAY[1:3] OF INTEGER\nOUTPUT A[2]\n")
	ie := expectKind(t, err, diagnostics.KindUndefined)
	if ie.Name != "A[2]" {
		t.Fatalf("expected unset cell to be named, got %q", ie.Name)
	}
}

func TestArrayBoundsFromExpressions(t *testing.T) {
	out := mustRun(t, `DECLARE N : INTEGER
N <- 4
DECLARE A : ARRAY[0:N - 1] OF INTEGER
N <- 1
A[3] <- 7
OUTPUT A[3]
`)
	if out != "7\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestIfAndCase(t *testing.T) {
	src := `DECLARE X : INTEGER
FOR X <- 1 TO 6
  CASE OF X
    1 : OUTPUT "one"
    2 TO 4 : OUTPUT "few"
    5 : OUTPUT "five"
    OTHERWISE : OUTPUT "many"
  ENDCASE
NEXT X
IF X = 6 THEN
  OUTPUT "six"
ELSE
  OUTPUT "not six"
ENDIF
`
	out := mustRun(t, src)
	want := "one\nfew\nfew\nfew\nfive\nmany\nsix\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestCaseWithoutMatchIsNoOp(t *testing.T) {
	out := mustRun(t, "CASE OF \"z\"\n\"a\" : OUTPUT 1\nENDCASE\nOUTPUT \"done\"\n")
	if out != "done\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestForLoops(t *testing.T) {
	out := mustRun(t, "FOR I <- 1 TO 5\nOUTPUT I\nNEXT I\n")
	if out != "1\n2\n3\n4\n5\n" {
		t.Fatalf("unexpected output %q", out)
	}
	out = mustRun(t, "FOR I <- 10 TO 1 STEP -3\nOUTPUT I\nNEXT I\n")
	if out != "10\n7\n4\n1\n" {
		t.Fatalf("unexpected output %q", out)
	}
	out = mustRun(t, "FOR I <- 5 TO 1\nOUTPUT I\nNEXT I\nOUTPUT \"end\"\n")
	if out != "end\n" {
		t.Fatalf("loop with empty range should not run, got %q", out)
	}
}

func TestWhileAndRepeat(t *testing.T) {
	out := mustRun(t, `DECLARE N : INTEGER
N <- 0
WHILE N < 3
  N <- N + 1
ENDWHILE
OUTPUT N
REPEAT
  OUTPUT "once"
UNTIL TRUE
`)
	if out != "3\nonce\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestIterationLimit(t *testing.T) {
	for _, src := range []string{
		"WHILE TRUE\nENDWHILE\n",
		"REPEAT\nUNTIL FALSE\n",
		"FOR I <- 2 TO 1 STEP 0\nNEXT I\n",
	} {
		_, _, err := runSource(t, src)
		ie := expectKind(t, err, diagnostics.KindIterationLimit)
		if ie.Location.Line != 1 {
			t.Fatalf("expected error on the loop line, got %d", ie.Location.Line)
		}
	}

	program, err := parser.Parse("DECLARE N : INTEGER\nN <- 0\nWHILE N < 5\nN <- N + 1\nENDWHILE\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := New(Options{MaxIterations: 5, Output: &bytes.Buffer{}}).Execute(program); err != nil {
		t.Fatalf("exactly MaxIterations iterations should be allowed: %v", err)
	}
	err = New(Options{MaxIterations: 4, Output: &bytes.Buffer{}}).Execute(program)
	expectKind(t, err, diagnostics.KindIterationLimit)
}

func TestProcedureScoping(t *testing.T) {
	_, interp, err := runSource(t, `DECLARE X : INTEGER
X <- 1
PROCEDURE P(Y : INTEGER)
  DECLARE Local : INTEGER
  Local <- Y
ENDPROCEDURE
CALL P(5)
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := interp.State().Lookup("Local"); ok {
		t.Fatalf("procedure local leaked")
	}
	if _, ok := interp.State().Lookup("Y"); ok {
		t.Fatalf("parameter leaked")
	}
}

func TestParameterNamedLikeOuterVariableCopiesBack(t *testing.T) {
	out := mustRun(t, `DECLARE X : INTEGER
X <- 1
PROCEDURE P(X : INTEGER)
  X <- X + 10
ENDPROCEDURE
CALL P(5)
OUTPUT X
`)
	if out != "15\n" {
		t.Fatalf("expected copy-back of 15, got %q", out)
	}
}

func TestGlobalAssignmentInsideProcedure(t *testing.T) {
	out := mustRun(t, `DECLARE Total : INTEGER
Total <- 0
PROCEDURE Add(N : INTEGER)
  Total <- Total + N
ENDPROCEDURE
CALL Add(2)
CALL Add(3)
OUTPUT Total
`)
	if out != "5\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestFunctions(t *testing.T) {
	out := mustRun(t, `FUNCTION Fact(N : INTEGER) RETURNS INTEGER
  IF N <= 1 THEN
    RETURN 1
  ENDIF
  RETURN N * Fact(N - 1)
ENDFUNCTION
OUTPUT Fact(5)
`)
	if out != "120\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestReturnInsideLoop(t *testing.T) {
	out := mustRun(t, `FUNCTION FirstOver(Limit : INTEGER) RETURNS INTEGER
  FOR I <- 1 TO 100
    IF I * I > Limit THEN
      RETURN I
    ENDIF
  NEXT I
  RETURN -1
ENDFUNCTION
OUTPUT FirstOver(50)
`)
	if out != "8\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSubroutineErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind diagnostics.Kind
	}{
		{"procedure returns", "PROCEDURE P\nRETURN 1\nENDPROCEDURE\nCALL P\n", diagnostics.KindSubroutine},
		{"function without return", "FUNCTION F RETURNS INTEGER\nOUTPUT 1\nENDFUNCTION\nOUTPUT F()\n", diagnostics.KindSubroutine},
		{"top level return", "RETURN 1\n", diagnostics.KindSubroutine},
		{"undeclared procedure", "CALL Missing(1)\n", diagnostics.KindUndefined},
		{"undeclared function", "OUTPUT Missing(1)\n", diagnostics.KindUndefined},
		{"procedure as function", "PROCEDURE P\nENDPROCEDURE\nOUTPUT P()\n", diagnostics.KindSubroutine},
		{"runaway recursion", "FUNCTION F(N : INTEGER) RETURNS INTEGER\nRETURN F(N + 1)\nENDFUNCTION\nOUTPUT F(1)\n", diagnostics.KindSubroutine},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runSource(t, tc.src)
			expectKind(t, err, tc.kind)
		})
	}
}

func TestUndeclaredProcedureNamed(t *testing.T) {
	_, _, err := runSource(t, "CALL Missing\n")
	ie := expectKind(t, err, diagnostics.KindUndefined)
	if ie.Name != "Missing" || !strings.Contains(err.Error(), "Missing") {
		t.Fatalf("error should name the procedure: %v", err)
	}
}

func TestMissingAndExtraArguments(t *testing.T) {
	out := mustRun(t, `PROCEDURE P(A : INTEGER, B : INTEGER)
  OUTPUT A
ENDPROCEDURE
CALL P(1)
CALL P(2, 3, 4)
`)
	if out != "1\n2\n" {
		t.Fatalf("unexpected output %q", out)
	}
	_, _, err := runSource(t, "PROCEDURE P(A : INTEGER, B : INTEGER)\nOUTPUT B\nENDPROCEDURE\nCALL P(1)\n")
	expectKind(t, err, diagnostics.KindUndefined)
}

func TestArrayArgumentIsCopied(t *testing.T) {
	out := mustRun(t, `DECLARE A : ARRAY[1:2] OF INTEGER
A[1] <- 1
A[2] <- 2
PROCEDURE Zero(V : ARRAY[1:2] OF INTEGER)
  V[1] <- 0
  OUTPUT V[1]
ENDPROCEDURE
CALL Zero(A)
OUTPUT A[1]
`)
	if out != "0\n1\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestLaterDefinitionWins(t *testing.T) {
	out := mustRun(t, `PROCEDURE P
  OUTPUT "first"
ENDPROCEDURE
PROCEDURE P
  OUTPUT "second"
ENDPROCEDURE
CALL P
`)
	if out != "second\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInput(t *testing.T) {
	out := mustRun(t, `DECLARE I : INTEGER
DECLARE R : REAL
DECLARE B : BOOLEAN
DECLARE C : CHAR
DECLARE S : STRING
DECLARE A : ARRAY[1:2] OF INTEGER
INPUT I
INPUT R
INPUT B
INPUT C
INPUT S
INPUT A[2]
OUTPUT I, "|", R, "|", B, "|", C, "|", S, "|", A[2]
`, "4.0", "2.5", "true", "xyz", "hello world", "7")
	if out != "4|2.5|TRUE|x|hello world|7\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInputErrors(t *testing.T) {
	cases := []struct {
		typ   string
		input string
	}{
		{"INTEGER", "abc"},
		{"INTEGER", "2.5"},
		{"REAL", "x"},
		{"BOOLEAN", "yes"},
		{"CHAR", ""},
	}
	for _, tc := range cases {
		t.Run(tc.typ+"/"+tc.input, func(t *testing.T) {
			_, _, err := runSource(t, "DECLARE V : "+tc.typ+"\nINPUT V\n", tc.input)
			ie := expectKind(t, err, diagnostics.KindInput)
			if ie.Name != "V" {
				t.Fatalf("expected error to name V, got %+v", ie)
			}
		})
	}
	_, _, err := runSource(t, "INPUT Nope\n")
	expectKind(t, err, diagnostics.KindUndefined)
}

func TestInputAtEOFReadsEmptyLine(t *testing.T) {
	out := mustRun(t, "DECLARE S : STRING\nINPUT S\nOUTPUT \"[\", S, \"]\"\n")
	if out != "[]\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestReaderSource(t *testing.T) {
	src := NewReaderSource(strings.NewReader("one\r\ntwo\nthree"))
	for _, want := range []string{"one", "two", "three"} {
		got, err := src.ReadLine()
		if err != nil || got != want {
			t.Fatalf("expected %q, got %q (%v)", want, got, err)
		}
	}
	if _, err := src.ReadLine(); err == nil {
		t.Fatalf("expected EOF")
	}
}

func TestFileStatementsAreInert(t *testing.T) {
	out := mustRun(t, `OPENFILE Missing FOR READ
READFILE Missing, Nothing
WRITEFILE "x.txt", Unknown
CLOSEFILE Missing
OUTPUT "ok"
`)
	if out != "ok\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestErrorLocationIsInnermostStatement(t *testing.T) {
	_, _, err := runSource(t, `PROCEDURE P
  OUTPUT 1
  OUTPUT Missing
ENDPROCEDURE
CALL P
`)
	ie := expectKind(t, err, diagnostics.KindUndefined)
	if ie.Location.Line != 3 {
		t.Fatalf("expected line 3, got %d", ie.Location.Line)
	}
}

func TestInvalidNode(t *testing.T) {
	program := ast.Prog(ast.Output(ast.NewLiteral(nil)))
	err := New(Options{Output: &bytes.Buffer{}}).Execute(program)
	expectKind(t, err, diagnostics.KindInvalidNode)
}

func TestHandBuiltProgram(t *testing.T) {
	program := ast.Prog(
		ast.Declare(ast.TypeInteger, "X"),
		ast.Assign(ast.ID("X"), ast.Bin(ast.BinaryAdd, ast.Int(2), ast.Int(3))),
		ast.Output(ast.ID("X")),
	)
	var out bytes.Buffer
	if err := New(Options{Output: &out}).Execute(program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "5\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestExecuteContextCancelled(t *testing.T) {
	program, err := parser.Parse("WHILE TRUE\nENDWHILE\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = New(Options{Output: &bytes.Buffer{}}).ExecuteContext(ctx, program)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestInt64Limits(t *testing.T) {
	cases := []struct {
		name   string
		source string
		kind   diagnostics.Kind
	}{
		{"array span wraps", "DECLARE A : ARRAY[-1:9223372036854775807] OF INTEGER\n", diagnostics.KindAssignment},
		{"array full range", "DECLARE A : ARRAY[-9223372036854775808:9223372036854775807] OF INTEGER\n", diagnostics.KindAssignment},
		{"array product wraps", "DECLARE B : ARRAY[1:4194304, 1:4611686018427387904] OF INTEGER\nB[1,1] <- 5\n", diagnostics.KindAssignment},
		{"substring start at max", `OUTPUT SUBSTRING("HELLO", 9223372036854775807, 2)` + "\n", diagnostics.KindBuiltin},
		{"substring length at max", `OUTPUT SUBSTRING("HELLO", 2, 9223372036854775807)` + "\n", diagnostics.KindBuiltin},
		{"round up past max", "OUTPUT ROUND(9223372036854775807, -1)\n", diagnostics.KindBuiltin},
		{"round down past min", "OUTPUT ROUND(-9223372036854775808, -1)\n", diagnostics.KindBuiltin},
		{"round to 10^19", "OUTPUT ROUND(9223372036854775807, -19)\n", diagnostics.KindBuiltin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runSource(t, tc.source)
			ie := expectKind(t, err, tc.kind)
			if ie.Message == "" {
				t.Fatalf("expected a message on %+v", ie)
			}
		})
	}
}

func TestForLoopStopsAtInt64Limits(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"FOR I <- 9223372036854775806 TO 9223372036854775807\nOUTPUT I\nNEXT I\n",
			"9223372036854775806\n9223372036854775807\n"},
		{"FOR I <- 9223372036854775800 TO 9223372036854775807 STEP 5\nOUTPUT I\nNEXT I\n",
			"9223372036854775800\n9223372036854775805\n"},
		{"FOR I <- -9223372036854775807 TO -9223372036854775808 STEP -1\nOUTPUT I\nNEXT I\n",
			"-9223372036854775807\n-9223372036854775808\n"},
	}
	for _, tc := range cases {
		out, _, err := runSource(t, tc.source)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.source, err)
		}
		if out != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.source, tc.want, out)
		}
	}
}
