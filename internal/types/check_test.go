package types_test

import (
	"testing"

	"github.com/fern-lang/fern/internal/parser"
	"github.com/fern-lang/fern/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func check(t *testing.T, src string) []*types.Error {
	t.Helper()
	file, errs := parser.Parse("t.fn", src, nil)
	require.Empty(t, errs)
	c := types.NewChecker(nil)
	return c.Check(file)
}

func TestInferLiteralIsPrimitive(t *testing.T) {
	errs := check(t, "let x = 1\nlet y = 1.5\nlet s = \"hi\"\nlet b = true\n")
	assert.Empty(t, errs)
}

func TestInferLetThenUseHasSameType(t *testing.T) {
	errs := check(t, "let x = 1\nlet y = x + 1\n")
	assert.Empty(t, errs)
}

func TestInferIfUnifiesBranches(t *testing.T) {
	errs := check(t, "let x = if true: 1 else: 2\n")
	assert.Empty(t, errs)
}

func TestInferIfBranchMismatchIsError(t *testing.T) {
	errs := check(t, "let x = if true: 1 else: \"no\"\n")
	require.NotEmpty(t, errs)
}

func TestExhaustiveBinaryOpCoverage(t *testing.T) {
	cases := []struct {
		src   string
		valid bool
	}{
		{"let x = 1 + 2\n", true},
		{"let x = 1.0 + 2.0\n", true},
		{"let x = \"a\" + \"b\"\n", true},
		{"let x = 1 + \"b\"\n", false},
		{"let x = 1 < 2\n", true},
		{"let x = true and false\n", true},
		{"let x = 1 and true\n", false},
	}
	for _, tc := range cases {
		errs := check(t, tc.src)
		if tc.valid {
			assert.Emptyf(t, errs, "expected %q to type check", tc.src)
		} else {
			assert.NotEmptyf(t, errs, "expected %q to fail type checking", tc.src)
		}
	}
}

func TestInferFunctionCallAndReturn(t *testing.T) {
	errs := check(t, "fn add(a: Int, b: Int) -> Int:\n  a + b\nlet s = add(1, 2)\n")
	assert.Empty(t, errs)
}

func TestInferUnknownIdentifierSuggestsClosestName(t *testing.T) {
	errs := check(t, "let count = 1\nlet y = coutn\n")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[len(errs)-1].Message, "count")
}

func TestUnifyOccursCheck(t *testing.T) {
	env := types.NewEnv()
	v := env.FreshVar("a")
	cyclic := types.ListT(v)
	u := types.Unify(v, cyclic)
	assert.True(t, types.IsError(u))
}
