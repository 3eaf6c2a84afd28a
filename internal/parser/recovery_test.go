package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coquito/internal/ast"
	"coquito/internal/errors"
	"coquito/internal/token"
)

func asserError(t *testing.T, errs errors.ErrorList, kind errors.ErrorKind, line, column int) {
	t.Helper()
	require.NotEmpty(t, errs)
	for _, e := range errs {
		if e.Kind == kind && e.Span.Start.Line == line && e.Span.Start.Column == column {
			return
		}
	}
	t.Errorf("no %s at %d:%d in %v", kind, line, column, errs)
}

func TestGarbageLeadingTokenRecovers(t *testing.T) {
	prog, errs, err := ParseSource("test.cq", "@@@ x = 1;")
	require.NoError(t, err)

	require.Len(t, errs, 1)
	assert.Equal(t, errors.InvalidToken, errs[0].Kind)
	assert.Equal(t, 0, errs[0].Span.Start.Offset)

	require.Len(t, prog.Stmts, 2)
	bad, ok := prog.Stmts[0].(*ast.BadStmt)
	require.True(t, ok)
	assert.Equal(t, 3, bad.Bad.Span.End.Offset)

	stmt, ok := prog.Stmts[1].(*ast.ExprStmt)
	require.True(t, ok)
	assert.Equal(t, "(x = 1)", stmt.Expr.String())
}

func TestUnexpectedLeadingToken(t *testing.T) {
	prog, errs, _ := ParseSource("test.cq", ") * , x = 1;")

	require.Len(t, errs, 1)
	assert.Equal(t, errors.UnexpectedToken, errs[0].Kind)
	assert.Equal(t, "statement", errs[0].Expected)
	assert.Equal(t, "')'", errs[0].Found)
	require.Len(t, prog.Stmts, 2)
	assert.Equal(t, "(x = 1);", prog.Stmts[1].String())
}

func TestSynchronizeConsumesSemicolon(t *testing.T) {
	prog, errs, _ := ParseSource("test.cq", "* / ; let y = 2;")

	require.Len(t, errs, 1)
	require.Len(t, prog.Stmts, 2)
	assert.IsType(t, &ast.BadStmt{}, prog.Stmts[0])
	assert.Equal(t, "let y = 2;", prog.Stmts[1].String())
}

func TestMissingSemicolon(t *testing.T) {
	t.Run("next line", func(t *testing.T) {
		prog, errs, _ := ParseSource("test.cq", "let x = 1\nlet y = 2;")
		require.Len(t, errs, 1)
		assert.Equal(t, errors.MissingToken, errs[0].Kind)
		assert.Equal(t, ";", errs[0].Expected)
		asserError(t, errs, errors.MissingToken, 1, 10)
		assert.Len(t, prog.Stmts, 2)
	})

	t.Run("statement keyword on same line", func(t *testing.T) {
		prog, errs, _ := ParseSource("test.cq", "let x = 1 let y = 2;")
		require.Len(t, errs, 1)
		assert.Equal(t, errors.UnexpectedToken, errs[0].Kind)
		assert.Equal(t, "'let'", errs[0].Found)
		assert.Len(t, prog.Stmts, 2)
	})

	t.Run("junk on same line", func(t *testing.T) {
		prog, errs, _ := ParseSource("test.cq", "let x = 1 2 3; let y = 4;")
		require.Len(t, errs, 1)
		asserError(t, errs, errors.UnexpectedToken, 1, 11)
		require.Len(t, prog.Stmts, 2)
		assert.Equal(t, "let y = 4;", prog.Stmts[1].String())
	})

	t.Run("before closing brace", func(t *testing.T) {
		prog, errs, _ := ParseSource("test.cq", "fn f() { return 1 }")
		require.Len(t, errs, 1)
		assert.Equal(t, errors.MissingToken, errs[0].Kind)
		fn := prog.Stmts[0].(*ast.FuncDecl)
		assert.Len(t, fn.Body.Stmts, 1)
	})
}

func TestUnterminatedBlock(t *testing.T) {
	prog, errs, err := ParseSource("test.cq", "fn f() {\n  let x = 1;\n")
	require.NoError(t, err)

	require.Len(t, errs, 1)
	assert.Equal(t, errors.UnterminatedConstruct, errs[0].Kind)
	assert.Equal(t, "block", errs[0].What)
	asserError(t, errs, errors.UnterminatedConstruct, 1, 8)

	fn, ok := prog.Stmts[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Len(t, fn.Body.Stmts, 1)
}

func TestUnterminatedStringReportsOnce(t *testing.T) {
	prog, errs, _ := ParseSource("test.cq", "let s = \"abc\nlet y = 2;")

	require.Len(t, errs, 1)
	assert.Equal(t, errors.InvalidToken, errs[0].Kind)
	assert.Contains(t, errs[0].Message, "unterminated string")
	require.Len(t, prog.Stmts, 2)
	assert.IsType(t, &ast.BadExpr{}, prog.Stmts[0].(*ast.VarDecl).Value)
	assert.Equal(t, "let y = 2;", prog.Stmts[1].String())
}

func TestStrayTokenAfterErrorIsReported(t *testing.T) {
	prog, errs, err := ParseSource("test.cq", "x = 1 + ;@")
	require.NoError(t, err)

	require.Len(t, errs, 2)
	assert.Equal(t, errors.UnexpectedToken, errs[0].Kind)
	assert.Equal(t, 8, errs[0].Span.Start.Offset)
	assert.Equal(t, errors.InvalidToken, errs[1].Kind)
	assert.Equal(t, 9, errs[1].Span.Start.Offset)

	require.Len(t, prog.Stmts, 2)
	assert.IsType(t, &ast.ExprStmt{}, prog.Stmts[0])
	assert.IsType(t, &ast.BadStmt{}, prog.Stmts[1])
}

func TestErrorAtSameOffsetIsDropped(t *testing.T) {
	_, errs, err := ParseSource("test.cq", "let x = 1}")
	require.NoError(t, err)

	require.Len(t, errs, 1)
	assert.Equal(t, 9, errs[0].Span.Start.Offset)
}

func TestUnclosedCallAcrossLines(t *testing.T) {
	prog, errs, _ := ParseSource("test.cq", "let x = f(1\nlet y = 2;")

	require.Len(t, errs, 1)
	assert.Equal(t, errors.MissingToken, errs[0].Kind)
	assert.Equal(t, ")", errs[0].Expected)
	assert.Len(t, prog.Stmts, 2)
}

func TestConstRequiresInitializer(t *testing.T) {
	prog, errs, _ := ParseSource("test.cq", "const x;")

	require.Len(t, errs, 1)
	assert.Equal(t, errors.UnexpectedToken, errs[0].Kind)
	assert.Contains(t, errs[0].Message, "'='")
	assert.Len(t, prog.Stmts, 1)
}

func TestStrayTokens(t *testing.T) {
	prog, errs, _ := ParseSource("test.cq", "else { }\n} let x = 1;")

	require.Len(t, errs, 2)
	assert.Equal(t, "'else'", errs[0].Found)
	assert.Equal(t, "'}'", errs[1].Found)

	types := make([]ast.NodeType, len(prog.Stmts))
	for i, s := range prog.Stmts {
		types[i] = s.NodeType()
	}
	assert.Equal(t, []ast.NodeType{ast.BAD_STMT, ast.BLOCK_STMT, ast.BAD_STMT, ast.VAR_DECL}, types)
}

func TestIndependentErrorsAreAllReported(t *testing.T) {
	src := "let = 1;\nlet y = ;\nz = 3;\nfn (a) {}"
	prog, errs, _ := ParseSource("test.cq", src)

	require.Len(t, errs, 3)
	asserError(t, errs, errors.UnexpectedToken, 1, 5)
	asserError(t, errs, errors.UnexpectedToken, 2, 9)
	asserError(t, errs, errors.UnexpectedToken, 4, 4)
	assert.Len(t, prog.Stmts, 4)

	for _, e := range errs {
		assert.Equal(t, "test.cq", e.Filename)
	}
}

func TestDiagnosticsAreOrdered(t *testing.T) {
	_, errs, _ := ParseSource("test.cq", "let = 1; @ ; const c; fn f( {")

	require.NotEmpty(t, errs)
	for i := 1; i < len(errs); i++ {
		assert.Less(t, errs[i-1].Span.Start.Offset, errs[i].Span.Start.Offset)
	}
}

func TestMalformedInputTerminates(t *testing.T) {
	inputs := []string{
		"((((",
		"))))",
		"fn",
		"fn (",
		"fn f(,,,) {",
		"if",
		"while {",
		"let",
		"return",
		"}}}}",
		",,,",
		"f(,,,",
		"1 +",
		"if x { else",
		"let x = = = ;",
		"@ # $ ` ~",
		"\"",
		"/*",
		"1.2.3 12abc 1.",
		"else else else",
		"{ fn { if { while {",
	}

	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			prog, errs, err := ParseSource("junk.cq", src)
			require.NoError(t, err)
			require.NotNil(t, prog)
			assert.NotEmpty(t, errs)
			for _, e := range errs {
				assert.True(t, e.Span.IsValid(), e.Error())
				assert.LessOrEqual(t, e.Span.End.Offset, len(src))
			}
		})
	}
}

func TestMissingBlockBraceKeepsStatement(t *testing.T) {
	prog, errs, _ := ParseSource("test.cq", "fn f() return 1;")

	require.Len(t, errs, 1)
	assert.Equal(t, "{", errs[0].Expected)
	require.Len(t, prog.Stmts, 2)
	fn := prog.Stmts[0].(*ast.FuncDecl)
	assert.Empty(t, fn.Body.Stmts)
	assert.Equal(t, token.At(fn.Span.End), fn.Body.Span)
	assert.Equal(t, "return 1;", prog.Stmts[1].String())
}
