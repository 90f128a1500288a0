package ast

import (
	"testing"

	"github.com/fern-lang/fern/internal/token"
	"github.com/stretchr/testify/assert"
)

// TestPrintLetGolden locks in spec.md §8 scenario 1.
func TestPrintLetGolden(t *testing.T) {
	stmt := Let{
		Pattern: PatIdent{Name: "x"},
		Value:   IntLit{Value: "1"},
	}
	got := PrintFile("example.fn", []Stmt{stmt})
	want := "AST for example.fn:\n\nLet:\n  pattern:\n    PatIdent: x\n  value:\n    Int: 1\n\n"
	assert.Equal(t, want, got)
}

func TestPrintMatchGolden(t *testing.T) {
	stmt := ExprStmt{X: Match{
		Scrutinee: Ident{Name: "x"},
		Arms: []MatchArm{
			{Pattern: PatLit{Value: IntLit{Value: "1"}}, Body: IntLit{Value: "2"}},
			{Pattern: PatWildcard{}, Body: IntLit{Value: "3"}},
		},
	}}
	got := Print([]Stmt{stmt})
	assert.Contains(t, got, "Match:")
	assert.Contains(t, got, "arms: (2)")
	assert.Contains(t, got, "PatWildcard")
}

func TestPositionPropagates(t *testing.T) {
	pos := token.Position{Filename: "f.fn", Line: 3, Column: 5}
	n := IntLit{Loc: Loc{At: pos}, Value: "7"}
	assert.Equal(t, pos, n.Position())
}
