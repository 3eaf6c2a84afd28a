package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coquito/internal/ast"
	"coquito/internal/errors"
	"coquito/internal/token"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs, err := ParseSource("test.cq", src)
	require.NoError(t, err)
	require.Empty(t, errs, "unexpected diagnostics: %v", errs)
	require.NotNil(t, prog)
	return prog
}

func TestValidProgramsHaveNoErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		count int
	}{
		{"empty", "", 0},
		{"comments only", "// nothing\n/* here */", 0},
		{"single let", "let x = 1;", 1},
		{"declarations", "let x; const y = 2; let z = x + y;", 3},
		{"function", "fn add(a, b) { return a + b; }", 1},
		{"trailing comma params", "fn f(a, b,) {}", 1},
		{"control flow", `
fn fib(n) {
    if n < 2 {
        return n;
    }
    return fib(n - 1) + fib(n - 2);
}
let i = 0;
while i < 10 {
    i += 1;
    print(fib(i));
}
`, 3},
		{"else if chain", "if a { } else if b { } else { }", 1},
		{"nested blocks", "{ { let x = 1; } }", 1},
		{"empty statements", ";; let x = 1;;", 1},
		{"assignment chain", "a = b = c = 0;", 1},
		{"bare return", "fn f() { return; }", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parseOK(t, tt.src)
			assert.Len(t, prog.Stmts, tt.count)
		})
	}
}

func TestParseVarDecl(t *testing.T) {
	prog := parseOK(t, "let balance = 100;\nconst limit = 10;\nlet pending;")
	require.Len(t, prog.Stmts, 3)

	decl, ok := prog.Stmts[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "let", decl.Keyword)
	assert.Equal(t, "balance", decl.Name.Name)
	assert.Equal(t, "100", decl.Value.String())
	assert.Equal(t, token.Span{
		Start: token.Position{Offset: 0, Line: 1, Column: 1},
		End:   token.Position{Offset: 18, Line: 1, Column: 19},
	}, decl.Span)

	assert.True(t, prog.Stmts[1].(*ast.VarDecl).IsConst())
	assert.Nil(t, prog.Stmts[2].(*ast.VarDecl).Value)
}

func TestParseFuncDecl(t *testing.T) {
	prog := parseOK(t, "fn add(a, b) {\n    return a + b;\n}")
	require.Len(t, prog.Stmts, 1)

	fn, ok := prog.Stmts[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "b", fn.Params[1].Name)
	require.Len(t, fn.Body.Stmts, 1)

	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	assert.Equal(t, "(a + b)", ret.Value.String())
	assert.Equal(t, 3, fn.Span.End.Line)

	var decl ast.Decl = fn
	assert.NotNil(t, decl)
}

func TestParseIfElseChain(t *testing.T) {
	prog := parseOK(t, "if x > 0 { a(); } else if x < 0 { b(); } else { c(); }")

	stmt, ok := prog.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	assert.Equal(t, "(x > 0)", stmt.Cond.String())

	elseIf, ok := stmt.Else.(*ast.IfStmt)
	require.True(t, ok)
	assert.Equal(t, "(x < 0)", elseIf.Cond.String())

	last, ok := elseIf.Else.(*ast.BlockStmt)
	require.True(t, ok)
	assert.Equal(t, "c();", last.Stmts[0].String())
}

func TestParseWhile(t *testing.T) {
	prog := parseOK(t, "while i < 10 { i += 1; }")

	loop, ok := prog.Stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
	assert.Equal(t, "(i < 10)", loop.Cond.String())
	assert.Equal(t, "(i += 1);", loop.Body.Stmts[0].String())
}

func TestProgramSpanAndName(t *testing.T) {
	prog := parseOK(t, "let x = 1;\n")

	assert.Equal(t, "test.cq", prog.Name)
	assert.Equal(t, token.Position{Offset: 0, Line: 1, Column: 1}, prog.Span.Start)
	assert.Equal(t, token.Position{Offset: 11, Line: 2, Column: 1}, prog.Span.End)
}

func TestProgramString(t *testing.T) {
	prog := parseOK(t, "fn f(a) { if !a { return 1; } }\nf(2 * 3);")
	assert.Equal(t, "fn f(a) {\n  if (!a) {\n    return 1;\n  }\n}\nf((2 * 3));", prog.String())
}

func TestParseIsIdempotent(t *testing.T) {
	inputs := []string{
		"fn f(a) { return a * 2; } let x = f(3);",
		"@@@ x = 1; let = ; fn (",
		"{ if x { while y {",
	}

	for _, src := range inputs {
		prog1, errs1, err1 := ParseSource("same.cq", src)
		prog2, errs2, err2 := ParseSource("same.cq", src)

		assert.Equal(t, prog1, prog2, src)
		assert.Equal(t, errs1, errs2, src)
		assert.Equal(t, err1, err2, src)
	}
}

func TestParserReuseResetsState(t *testing.T) {
	p := prepareParser(t, "let = 1;")

	first, err := p.ParseProgram()
	require.NoError(t, err)
	firstErrs := p.Errors()

	second, err := p.ParseProgram()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstErrs, p.Errors())
	assert.Len(t, p.Errors(), 1)
}

// checkSpans verifies that every span is well formed and nested in its parent.
func checkSpans(t *testing.T, parent ast.Node, src string) {
	t.Helper()
	ps := parent.NodeSpan()
	assert.True(t, ps.IsValid(), "%s span %s", parent.NodeType(), ps)
	assert.LessOrEqual(t, ps.End.Offset, len(src), parent.NodeType().String())

	for _, child := range ast.Children(parent) {
		cs := child.NodeSpan()
		assert.GreaterOrEqual(t, cs.Start.Offset, ps.Start.Offset,
			"%s %s outside %s %s", child.NodeType(), cs, parent.NodeType(), ps)
		assert.LessOrEqual(t, cs.End.Offset, ps.End.Offset,
			"%s %s outside %s %s", child.NodeType(), cs, parent.NodeType(), ps)
		checkSpans(t, child, src)
	}
}

func TestSpansNestWithinParents(t *testing.T) {
	inputs := []string{
		"fn fib(n) {\n  if n < 2 { return n; }\n  return fib(n-1) + fib(n-2);\n}\nlet r = fib(10);",
		"let x = (1 + 2;\nwhile !done { x -= 1 }",
		"@@@ x = 1; fn (a b) { let = ; } else { }",
		"if { } else if",
		"f(1, 2,, 3); let s = \"open\nreturn",
	}

	for _, src := range inputs {
		prog, _, err := ParseSource("spans.cq", src)
		require.NoError(t, err)
		checkSpans(t, prog, src)
	}
}

func TestNilBufferIsUnrecoverable(t *testing.T) {
	p, err := New(nil)
	assert.Nil(t, p)
	require.Error(t, err)
	assert.True(t, errors.IsUnrecoverable(err))
}
