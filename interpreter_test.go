package lox

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run compiles and executes src in a fresh session, returning everything the
// program printed plus the interpreter fault, if any. Compilation must succeed.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	var diag bytes.Buffer
	rep := NewReporter(&diag)
	toks := NewLexer(src, rep).Scan()
	stmts := NewParser(toks, rep).Parse()
	require.False(t, rep.HadError(), "unexpected compile diagnostics: %s", diag.String())

	ip := NewInterpreter()
	var out bytes.Buffer
	ip.Stdout = &out
	err := ip.Interpret(stmts)
	return out.String(), err
}

func runOK(t *testing.T, src string) string {
	t.Helper()
	out, err := run(t, src)
	require.NoError(t, err)
	return out
}

func runtimeMsg(t *testing.T, err error) string {
	t.Helper()
	var rte *RuntimeError
	require.ErrorAs(t, err, &rte)
	return rte.Msg
}

func TestInterpretArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"print 1 + 2 * 3;", "7\n"},
		{"print (1 + 2) * 3;", "9\n"},
		{"print 7 / 2;", "3.5\n"},
		{"print -4 + 1;", "-3\n"},
		{"print 1 < 2;", "true\n"},
		{"print 2 <= 2;", "true\n"},
		{"print 1 > 2;", "false\n"},
		{"print 3 >= 4;", "false\n"},
		{"print !nil;", "true\n"},
		{"print !0;", "false\n"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, runOK(t, tc.src), "source: %s", tc.src)
	}
}

func TestInterpretEquality(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"print 1 == 1;", "true\n"},
		{"print 1 == 2;", "false\n"},
		{`print "a" == "a";`, "true\n"},
		{"print nil == nil;", "true\n"},
		// Values of different kinds never compare equal.
		{`print 1 == "1";`, "false\n"},
		{"print nil == false;", "false\n"},
		{"print true != 1;", "true\n"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, runOK(t, tc.src), "source: %s", tc.src)
	}
}

func TestInterpretConcatenation(t *testing.T) {
	assert.Equal(t, "ab\n", runOK(t, `print "a" + "b";`))
	// A string on either side converts the other operand.
	assert.Equal(t, "a1\n", runOK(t, `print "a" + 1;`))
	assert.Equal(t, "1a\n", runOK(t, `print 1 + "a";`))
	assert.Equal(t, "truex\n", runOK(t, `print true + "x";`))
	assert.Equal(t, "nil!\n", runOK(t, `print nil + "!";`))
}

func TestInterpretNumberDisplay(t *testing.T) {
	assert.Equal(t, "2\n", runOK(t, "print 4 / 2;"))
	assert.Equal(t, "0.5\n", runOK(t, "print 1 / 2;"))
	assert.Equal(t, "100\n", runOK(t, "print 100.00;"))
}

func TestInterpretDivideByZero(t *testing.T) {
	_, err := run(t, "print 1 / 0;")
	assert.Equal(t, "Cannot divide by zero!", runtimeMsg(t, err))

	_, err = run(t, "print 1 / -0;")
	assert.Equal(t, "Cannot divide by zero!", runtimeMsg(t, err))
}

func TestInterpretTypeFaults(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`print -"a";`, "Operand must be a number."},
		{`print 1 < "a";`, "Operands must be numbers."},
		{"print true + false;", "Operands must be two numbers or two strings."},
		{"print nil + 1;", "Operands must be two numbers or two strings."},
	}

	for _, tc := range cases {
		_, err := run(t, tc.src)
		assert.Equal(t, tc.want, runtimeMsg(t, err), "source: %s", tc.src)
	}
}

func TestInterpretVariables(t *testing.T) {
	assert.Equal(t, "3\n", runOK(t, "var a = 1; var b = 2; print a + b;"))
	// Declaration without an initializer yields nil.
	assert.Equal(t, "nil\n", runOK(t, "var a; print a;"))
	// Redeclaration in the same scope overwrites.
	assert.Equal(t, "2\n", runOK(t, "var a = 1; var a = 2; print a;"))
	// Assignment is an expression producing the assigned value.
	assert.Equal(t, "2\n2\n", runOK(t, "var a = 1; print a = 2; print a;"))
}

func TestInterpretUndefinedVariable(t *testing.T) {
	_, err := run(t, "print missing;")
	assert.Equal(t, "Undefined variable 'missing'.", runtimeMsg(t, err))

	_, err = run(t, "missing = 1;")
	assert.Equal(t, "Undefined variable 'missing'.", runtimeMsg(t, err))
}

func TestInterpretScoping(t *testing.T) {
	src := `
var a = "global a";
var b = "global b";
{
  var a = "inner a";
  print a;
  print b;
  b = "shadowed? no, assigned";
}
print a;
print b;
`
	want := "inner a\nglobal b\nglobal a\nshadowed? no, assigned\n"
	assert.Equal(t, want, runOK(t, src))
}

func TestInterpretBlockFrameRestore(t *testing.T) {
	// A fault inside a block must not leave the session stuck in the inner
	// frame.
	ip := NewInterpreter()
	var out bytes.Buffer
	ip.Stdout = &out

	var diag bytes.Buffer
	rep := NewReporter(&diag)
	stmts := NewParser(NewLexer("{ var a = 1; print 1 / 0; }", rep).Scan(), rep).Parse()
	require.False(t, rep.HadError())
	require.Error(t, ip.Interpret(stmts))

	stmts = NewParser(NewLexer("var a = 2; print a;", NewReporter(&diag)).Scan(), NewReporter(&diag)).Parse()
	require.NoError(t, ip.Interpret(stmts))
	assert.Equal(t, "2\n", out.String())

	// The block-local binding did not leak into the global frame.
	_, ok := ip.Globals.table["a"]
	assert.True(t, ok)
	assert.Equal(t, Num(2), ip.Globals.table["a"])
}

func TestInterpretControlFlow(t *testing.T) {
	assert.Equal(t, "yes\n", runOK(t, `if (1 < 2) print "yes"; else print "no";`))
	assert.Equal(t, "no\n", runOK(t, `if (nil) print "yes"; else print "no";`))
	assert.Equal(t, "", runOK(t, `if (false) print "yes";`))

	assert.Equal(t, "0\n1\n2\n", runOK(t, `
var i = 0;
while (i < 3) {
  print i;
  i = i + 1;
}
`))

	assert.Equal(t, "0\n1\n2\n", runOK(t, "for (var i = 0; i < 3; i = i + 1) print i;"))

	// Fibonacci, the classic loop workout.
	assert.Equal(t, "0\n1\n1\n2\n3\n5\n8\n",
		runOK(t, `
var a = 0;
var temp;
for (var b = 1; a < 10; b = temp + b) {
  print a;
  temp = a;
  a = b;
}
`))
}

func TestInterpretShortCircuit(t *testing.T) {
	// The untaken operand is never evaluated, faults and all.
	assert.Equal(t, "false\n", runOK(t, "print false and 1 / 0;"))
	assert.Equal(t, "true\n", runOK(t, "print true or 1 / 0;"))

	// The result is the deciding operand's own value, not a boolean.
	assert.Equal(t, "x\n", runOK(t, `print nil or "x";`))
	assert.Equal(t, "hi\n", runOK(t, `print "hi" or 2;`))
	assert.Equal(t, "nil\n", runOK(t, "print nil and 2;"))
	assert.Equal(t, "2\n", runOK(t, "print 1 and 2;"))
}

func TestInterpretTernary(t *testing.T) {
	assert.Equal(t, "a\n", runOK(t, `print true ? "a" : "b";`))
	assert.Equal(t, "b\n", runOK(t, `print false ? "a" : "b";`))
	// Only the taken branch runs.
	assert.Equal(t, "1\n", runOK(t, "print true ? 1 : 1 / 0;"))
	assert.Equal(t, "2\n", runOK(t, "print false ? 1 / 0 : 2;"))
}

func TestInterpretCommaSequencing(t *testing.T) {
	// The left side runs for effect; the right side is the result.
	assert.Equal(t, "2\n", runOK(t, "print (1, 2);"))
	assert.Equal(t, "3\n1\n", runOK(t, "var a; print (a = 1, a + 2); print a;"))
}

func TestInterpretBatchAbortsAtFault(t *testing.T) {
	out, err := run(t, `print "before"; print 1 / 0; print "after";`)
	require.Error(t, err)
	assert.Equal(t, "before\n", out)
}

func TestInterpretSessionPersists(t *testing.T) {
	ip := NewInterpreter()
	var out bytes.Buffer
	ip.Stdout = &out

	compile := func(src string) []Stmt {
		var diag bytes.Buffer
		rep := NewReporter(&diag)
		stmts := NewParser(NewLexer(src, rep).Scan(), rep).Parse()
		require.False(t, rep.HadError(), diag.String())
		return stmts
	}

	require.NoError(t, ip.Interpret(compile("var a = 1;")))
	require.NoError(t, ip.Interpret(compile("a = a + 1;")))
	require.NoError(t, ip.Interpret(compile("print a;")))
	assert.Equal(t, "2\n", out.String())
}

func TestInterpretBadStmtFault(t *testing.T) {
	ip := NewInterpreter()
	var out bytes.Buffer
	ip.Stdout = &out

	err := ip.Interpret([]Stmt{&BadStmt{Token: Token{Type: VAR, Lexeme: "var", Line: 1}}})
	require.Error(t, err)
	var rte *RuntimeError
	require.True(t, errors.As(err, &rte))
	assert.Equal(t, "Cannot execute invalid statement.", rte.Msg)
}

func TestReporterRuntimeFormat(t *testing.T) {
	var diag bytes.Buffer
	rep := NewReporter(&diag)
	rep.Runtime(&RuntimeError{Token: Token{Type: DIV, Lexeme: "/", Line: 3}, Msg: "Cannot divide by zero!"})
	assert.Equal(t, "Cannot divide by zero!\n[line 3]\n", diag.String())
	assert.True(t, rep.HadRuntimeError())
}
