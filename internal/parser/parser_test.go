package parser

import (
	"testing"

	"github.com/fern-lang/fern/internal/ast"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, errs := Parse("t.fn", src, nil)
	require.Empty(t, errs, "unexpected parse errors: %v", errs)
	return file
}

func TestParseLet(t *testing.T) {
	file := mustParse(t, "let x = 1 + 2\n")
	require.Len(t, file.Stmts, 1)
	let, ok := file.Stmts[0].(ast.Let)
	require.True(t, ok)
	pat, ok := let.Pattern.(ast.PatIdent)
	require.True(t, ok)
	assert.Equal(t, "x", pat.Name)
	bin, ok := let.Value.(ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
}

func TestParseLetWithTypeAnnotation(t *testing.T) {
	file := mustParse(t, "let x: Int = 1\n")
	let := file.Stmts[0].(ast.Let)
	nt, ok := let.Type.(ast.NamedType)
	require.True(t, ok)
	assert.Equal(t, "Int", nt.Name)
}

func TestParseMatch(t *testing.T) {
	src := "match x:\n  Some(v) => v\n  None => 0\n"
	file := mustParse(t, src)
	es := file.Stmts[0].(ast.ExprStmt)
	m := es.X.(ast.Match)
	require.Len(t, m.Arms, 2)
	ctor := m.Arms[0].Pattern.(ast.PatConstructor)
	assert.Equal(t, "Some", ctor.Name)
}

func TestParseListComprehension(t *testing.T) {
	file := mustParse(t, "let ys = [x * 2 for x in xs if x > 0]\n")
	let := file.Stmts[0].(ast.Let)
	lc := let.Value.(ast.ListComp)
	assert.Equal(t, "x", lc.Var)
	require.NotNil(t, lc.Cond)
}

func TestParseFnWithCall(t *testing.T) {
	src := "fn add(a: Int, b: Int) -> Int:\n  a + b\n\nlet sum = add(1, 2)\n"
	file := mustParse(t, src)
	require.Len(t, file.Stmts, 2)
	fn := file.Stmts[0].(ast.Fn)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)

	let := file.Stmts[1].(ast.Let)
	call := let.Value.(ast.Call)
	require.Len(t, call.Args, 2)
}

func TestParseFnClausesCoalesce(t *testing.T) {
	src := "fn fact(0):\n  1\nfn fact(n):\n  n * fact(n - 1)\n"
	file := mustParse(t, src)
	require.Len(t, file.Stmts, 1)
	fn := file.Stmts[0].(ast.Fn)
	assert.Nil(t, fn.Params)
	require.Len(t, fn.Clauses, 2)
}

func TestParseNonContiguousClausesIsError(t *testing.T) {
	src := "fn f(x):\n  x\nlet y = 1\nfn f(x):\n  x\n"
	_, errs := Parse("t.fn", src, nil)
	require.NotEmpty(t, errs)
}

func TestParseLambdaSingleTokenLookahead(t *testing.T) {
	file := mustParse(t, "let inc = (x) -> : x + 1\n")
	let := file.Stmts[0].(ast.Let)
	lam := let.Value.(ast.Lambda)
	require.Equal(t, []string{"x"}, lam.Params)
}

func TestParseParenIsNotLambdaWithoutArrow(t *testing.T) {
	file := mustParse(t, "let x = (1 + 2)\n")
	let := file.Stmts[0].(ast.Let)
	_, ok := let.Value.(ast.Binary)
	assert.True(t, ok)
}

func TestParseTuple(t *testing.T) {
	file := mustParse(t, "let pair = (1, 2)\n")
	let := file.Stmts[0].(ast.Let)
	tup := let.Value.(ast.Tuple)
	require.Len(t, tup.Elements, 2)
}

func TestParsePipeOperatorLoosestPrecedence(t *testing.T) {
	file := mustParse(t, "let y = xs |> a + b\n")
	let := file.Stmts[0].(ast.Let)
	bin := let.Value.(ast.Binary)
	assert.Equal(t, "|>", bin.Op)
	_, ok := bin.Right.(ast.Binary)
	assert.True(t, ok, "right side of |> should have already bound a + b tighter")
}

func TestParseWithBinding(t *testing.T) {
	src := "with v <- parseInt(s):\n  v + 1\nelse:\n  Err(e) => 0\n"
	file := mustParse(t, src)
	es := file.Stmts[0].(ast.ExprStmt)
	w := es.X.(ast.With)
	require.Len(t, w.Bindings, 1)
	assert.Equal(t, "v", w.Bindings[0].Name)
	require.Len(t, w.ElseArms, 1)
}

func TestParseRecoversFromBadStatement(t *testing.T) {
	src := "let = \nlet x = 1\n"
	file, errs := Parse("t.fn", src, nil)
	assert.NotEmpty(t, errs)
	assert.NotNil(t, file)
}

func TestParseImportChecksPath(t *testing.T) {
	file := mustParse(t, "import \"fern.dev/std/list\"\n")
	imp := file.Stmts[0].(ast.Import)
	assert.Equal(t, "fern.dev/std/list", imp.Path)
}

// TestParseIsDeterministic locks in that parsing the same source twice
// yields structurally identical trees (spec.md §1's determinism
// requirement extends to the parser, not just codegen/FernSim).
func TestParseIsDeterministic(t *testing.T) {
	src := "fn fib(n: Int) -> Int:\n  match n:\n    0 => 0\n    1 => 1\n    n => fib(n - 1) + fib(n - 2)\n"
	a := mustParse(t, src)
	b := mustParse(t, src)
	if diff := cmp.Diff(a.Stmts, b.Stmts); diff != "" {
		t.Errorf("parse not deterministic (-first +second):\n%s", diff)
	}
}
