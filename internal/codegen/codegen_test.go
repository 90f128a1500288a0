package codegen_test

import (
	"testing"

	"github.com/fern-lang/fern/internal/codegen"
	"github.com/fern-lang/fern/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gen(t *testing.T, src string) (string, []*codegen.Error) {
	t.Helper()
	file, errs := parser.Parse("t.fn", src, nil)
	require.Empty(t, errs)
	return codegen.Generate(file, nil)
}

func TestGenerateSimpleFunctionEmitsExportAndRet(t *testing.T) {
	out, errs := gen(t, "fn add(a: Int, b: Int) -> Int:\n  a + b\n")
	assert.Empty(t, errs)
	assert.Contains(t, out, "export function w $add(w %a, w %b) {")
	assert.Contains(t, out, "ret %t")
}

func TestGenerateIfEmitsBranchLabels(t *testing.T) {
	out, errs := gen(t, "fn pick(x: Bool) -> Int:\n  if x: 1 else: 2\n")
	assert.Empty(t, errs)
	assert.Contains(t, out, "jnz")
	assert.Contains(t, out, "@L")
}

func TestGenerateStringLiteralEmitsDataSection(t *testing.T) {
	out, errs := gen(t, "fn greet() -> String:\n  \"hi\"\n")
	assert.Empty(t, errs)
	assert.Contains(t, out, "data $str0")
}

func TestGenerateMainRenamesToFernMain(t *testing.T) {
	out, errs := gen(t, "fn main() -> Int:\n  0\n")
	assert.Empty(t, errs)
	assert.Contains(t, out, "$fern_main(")
}

func TestGenerateModuleCallDispatchesThroughTable(t *testing.T) {
	out, errs := gen(t, "fn len_of(s: String) -> Int:\n  String.length(s)\n")
	assert.Empty(t, errs)
	assert.Contains(t, out, "$fern_str_length")
}

func TestFingerprintIsDeterministic(t *testing.T) {
	out, errs := gen(t, "fn add(a: Int, b: Int) -> Int:\n  a + b\n")
	require.Empty(t, errs)
	h1, err := codegen.Fingerprint(out)
	require.NoError(t, err)
	h2, err := codegen.Fingerprint(out)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestFingerprintDiffersOnDifferentBodies(t *testing.T) {
	out1, _ := gen(t, "fn add(a: Int, b: Int) -> Int:\n  a + b\n")
	out2, _ := gen(t, "fn sub(a: Int, b: Int) -> Int:\n  a - b\n")
	h1, err := codegen.Fingerprint(out1)
	require.NoError(t, err)
	h2, err := codegen.Fingerprint(out2)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
