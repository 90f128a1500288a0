package codegen

import "github.com/fern-lang/fern/internal/ast"

// ABI is one of the three value classes the generator's SSA text uses
// (spec.md §4.6): w (word), l (pointer), d (float).
type ABI string

const (
	W ABI = "w"
	L ABI = "l"
	D ABI = "d"
)

// classify is the generator's own "small typed symbol table mapping
// identifier -> ABI class" (§9), populated as `let` bindings are
// processed (g.wide) rather than the reference's ad-hoc string
// comparisons. It is a syntactic approximation, not a full type
// inference pass — the checker already ran and rejected anything that
// would make this ambiguous in a well-typed program.
func (g *Generator) classify(e ast.Expr) ABI {
	switch n := e.(type) {
	case ast.IntLit:
		return W
	case ast.FloatLit:
		return D
	case ast.BoolLit:
		return W
	case ast.StringLit, ast.InterpString:
		return L
	case ast.Ident:
		if g.wide[n.Name] {
			return L
		}
		return W
	case ast.List, ast.Map, ast.Tuple, ast.RecordUpdate, ast.Lambda, ast.Spawn:
		return L
	case ast.Binary:
		if n.Op == "+" && g.classify(n.Left) == L {
			return L
		}
		if isComparisonOp(n.Op) {
			return W
		}
		return g.classify(n.Left)
	case ast.Unary:
		return g.classify(n.Operand)
	case ast.If:
		return g.classify(n.Then)
	case ast.Block:
		if n.Final != nil {
			return g.classify(n.Final)
		}
		return W
	case ast.Match:
		if len(n.Arms) > 0 {
			return g.classify(n.Arms[0].Body)
		}
		return W
	case ast.Call:
		return g.classifyCall(n)
	case ast.Try:
		return g.classify(n.Operand)
	case ast.Dot, ast.Index:
		return L
	default:
		return W
	}
}

func isComparisonOp(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=", "and", "or":
		return true
	default:
		return false
	}
}

// printKind distinguishes Int from Bool for the polymorphic print/println
// dispatch (§4.6), since both collapse to the W ABI class and can't be
// told apart by classify alone.
func (g *Generator) printKind(e ast.Expr) string {
	switch n := e.(type) {
	case ast.BoolLit:
		return "bool"
	case ast.FloatLit:
		return "float"
	case ast.StringLit, ast.InterpString:
		return "str"
	case ast.Ident:
		if k, ok := g.wideKind[n.Name]; ok {
			return k
		}
		return "int"
	case ast.Binary:
		if isComparisonOp(n.Op) {
			return "bool"
		}
		return g.printKind(n.Left)
	default:
		if g.classify(e) == L {
			return "str"
		}
		if g.classify(e) == D {
			return "float"
		}
		return "int"
	}
}

func (g *Generator) classifyCall(n ast.Call) ABI {
	if ident, ok := n.Fn.(ast.Ident); ok {
		switch ident.Name {
		case "Ok", "Err":
			return L
		case "print", "println":
			return W
		}
		if sym, ok := dispatchTable[ident.Name]; ok {
			return sym.Result
		}
		if sig, ok := g.fnSigs[ident.Name]; ok {
			return sig
		}
	}
	if dot, ok := n.Fn.(ast.Dot); ok {
		if owner, ok := dot.Object.(ast.Ident); ok {
			key := owner.Name + "." + dot.Field
			if sym, ok := dispatchTable[key]; ok {
				return sym.Result
			}
		}
	}
	return L
}
