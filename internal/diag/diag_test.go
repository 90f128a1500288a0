package diag_test

import (
	"testing"

	"github.com/fern-lang/fern/internal/diag"
	"github.com/fern-lang/fern/internal/token"
	"github.com/stretchr/testify/assert"
)

func TestRenderIncludesCaret(t *testing.T) {
	d := diag.Diagnostic{
		Severity: diag.Error,
		Pos:      token.Position{Filename: "t.fn", Line: 1, Column: 3},
		Message:  "unexpected token",
		Stage:    "parse",
	}
	out := d.Render("let x")
	assert.Contains(t, out, "let x")
	assert.Contains(t, out, "^")
	assert.Contains(t, out, "unexpected token")
}

func TestSinkIsAppendOnlyAndCountsSeverities(t *testing.T) {
	var s diag.Sink
	s.Add(diag.Diagnostic{Severity: diag.Error, Message: "a"})
	s.Add(diag.Diagnostic{Severity: diag.Warning, Message: "b"})
	s.Add(diag.Diagnostic{Severity: diag.Error, Message: "c"})
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.CountSeverity(diag.Error))
	assert.True(t, s.HasErrors())
}

func TestColorizeNoopWhenDisabled(t *testing.T) {
	assert.Equal(t, "hi", diag.Colorize("hi", diag.ColorRed, false))
}

func TestColorizeWrapsWhenEnabled(t *testing.T) {
	out := diag.Colorize("hi", diag.ColorRed, true)
	assert.Contains(t, out, "hi")
	assert.Contains(t, out, diag.ColorReset)
}

func TestShouldUseColorHonorsExplicitModes(t *testing.T) {
	assert.True(t, diag.ShouldUseColor("always"))
	assert.False(t, diag.ShouldUseColor("never"))
}
