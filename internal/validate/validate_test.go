package validate_test

import (
	"testing"

	"github.com/fern-lang/fern/internal/parser"
	"github.com/fern-lang/fern/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *parser.Error {
	t.Helper()
	_, errs := parser.Parse("t.fn", src, nil)
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

func TestValidateWellFormedLet(t *testing.T) {
	file, errs := parser.Parse("t.fn", "let x = 1\n", nil)
	require.Empty(t, errs)
	ok, verr := validate.Validate(file, nil)
	assert.True(t, ok)
	assert.Nil(t, verr)
}

func TestValidateWellFormedMatch(t *testing.T) {
	file, errs := parser.Parse("t.fn", "match x:\n  Some(v) => v\n  None => 0\n", nil)
	require.Empty(t, errs)
	ok, verr := validate.Validate(file, nil)
	assert.True(t, ok)
	assert.Nil(t, verr)
}

func TestValidateFnClausesWellFormed(t *testing.T) {
	file, errs := parser.Parse("t.fn", "fn fact(0):\n  1\nfn fact(n):\n  n\n", nil)
	require.Empty(t, errs)
	ok, _ := validate.Validate(file, nil)
	assert.True(t, ok)
}

func TestValidateInterpStringPartsExprsInvariant(t *testing.T) {
	file, errs := parser.Parse("t.fn", "let s = \"hi {name}!\"\n", nil)
	require.Empty(t, errs)
	ok, verr := validate.Validate(file, nil)
	require.True(t, ok, "verr: %v", verr)
}

func TestValidateDeterministicFirstError(t *testing.T) {
	file, errs := parser.Parse("t.fn", "let x = 1\n", nil)
	require.Empty(t, errs)

	ok1, err1 := validate.Validate(file, nil)
	ok2, err2 := validate.Validate(file, nil)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, err1, err2)
}
