// Package validate implements Fern's structural validator (spec.md §4.4):
// a single pass over the parsed tree confirming every required child is
// present, returning the first error deterministically. It never rewrites
// the tree — grounded in the teacher's core/types.Validator
// (core/types/validation.go), which walks a decoded manifest once and
// halts on the first structural problem rather than collecting many.
package validate

import (
	"fmt"
	"log/slog"

	"github.com/fern-lang/fern/internal/ast"
	"github.com/fern-lang/fern/internal/token"
)

// Error is the validator's only failure shape: the first structural
// problem found, with its location.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Validate walks file once. It returns (true, nil) if every invariant
// holds, or (false, err) for the first violation encountered in
// depth-first, source order (§4.4 "(ok, first_error)").
func Validate(file *ast.File, logger *slog.Logger) (bool, *Error) {
	if logger == nil {
		logger = slog.Default()
	}
	v := &validator{logger: logger}
	for _, s := range file.Stmts {
		if err := v.stmt(s); err != nil {
			logger.Debug("validation failed", "pos", err.Pos.String(), "message", err.Message)
			return false, err
		}
	}
	return true, nil
}

type validator struct {
	logger *slog.Logger
}

func fail(pos token.Position, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Pos: pos}
}

func (v *validator) stmt(s ast.Stmt) *Error {
	if s == nil {
		return fail(token.Position{}, "nil statement in statement list")
	}
	pos := s.Position()
	switch n := s.(type) {
	case ast.Let:
		if n.Pattern == nil {
			return fail(pos, "let statement missing pattern")
		}
		if n.Value == nil {
			return fail(pos, "let statement missing value")
		}
		if err := v.pattern(n.Pattern); err != nil {
			return err
		}
		if err := v.expr(n.Value); err != nil {
			return err
		}
		if n.Else != nil {
			return v.expr(n.Else)
		}
		return nil
	case ast.Return:
		if n.Value != nil {
			if err := v.expr(n.Value); err != nil {
				return err
			}
		}
		if n.Cond != nil {
			return v.expr(n.Cond)
		}
		return nil
	case ast.ExprStmt:
		if n.X == nil {
			return fail(pos, "expression statement missing expression")
		}
		return v.expr(n.X)
	case ast.Fn:
		return v.fn(n)
	case ast.Import:
		if n.Path == "" {
			return fail(pos, "import statement missing path")
		}
		return nil
	case ast.Defer:
		if n.X == nil {
			return fail(pos, "defer statement missing expression")
		}
		return v.expr(n.X)
	case ast.TypeDef:
		return v.typeDef(n)
	case ast.Break:
		if n.Value != nil {
			return v.expr(n.Value)
		}
		return nil
	case ast.Continue:
		return nil
	case ast.Trait:
		if n.Name == "" {
			return fail(pos, "trait statement missing name")
		}
		return nil
	case ast.Impl:
		if n.TraitName == "" {
			return fail(pos, "impl statement missing trait name")
		}
		for _, m := range n.Methods {
			if err := v.fn(m); err != nil {
				return err
			}
		}
		return nil
	case ast.Newtype:
		if n.Ctor == "" {
			return fail(pos, "newtype statement missing constructor name")
		}
		if n.Inner == nil {
			return fail(pos, "newtype statement missing inner type")
		}
		return nil
	case ast.Module:
		if n.Path == "" {
			return fail(pos, "module statement missing path")
		}
		return nil
	default:
		return fail(pos, "unknown statement kind %T", n)
	}
}

// fn enforces "exactly one of params or clauses, never both, never
// neither" and that clauses are individually well-formed (§3 Invariants).
func (v *validator) fn(n ast.Fn) *Error {
	pos := n.Position()
	if n.Name == "" {
		return fail(pos, "fn statement missing name")
	}
	hasParams := n.Params != nil
	hasClauses := len(n.Clauses) > 0
	if hasParams == hasClauses {
		return fail(pos, "fn %s must carry exactly one of params or clauses", n.Name)
	}
	if hasParams {
		if n.Body == nil {
			return fail(pos, "fn %s with params must have a body", n.Name)
		}
		return v.expr(n.Body)
	}
	for _, c := range n.Clauses {
		if c.Params == nil {
			return fail(pos, "fn %s clause missing parameter patterns", n.Name)
		}
		for _, p := range c.Params {
			if err := v.pattern(p); err != nil {
				return err
			}
		}
		if c.Body == nil {
			return fail(pos, "fn %s clause missing body", n.Name)
		}
		if err := v.expr(c.Body); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) typeDef(n ast.TypeDef) *Error {
	pos := n.Position()
	if n.Name == "" {
		return fail(pos, "type statement missing name")
	}
	hasVariants := len(n.Variants) > 0
	hasFields := len(n.RecordFields) > 0
	if hasVariants && hasFields {
		return fail(pos, "type %s cannot be both a record and a sum type", n.Name)
	}
	if !hasVariants && !hasFields {
		return fail(pos, "type %s has neither variants nor record fields", n.Name)
	}
	return nil
}

func (v *validator) expr(e ast.Expr) *Error {
	if e == nil {
		return fail(token.Position{}, "nil expression")
	}
	pos := e.Position()
	switch n := e.(type) {
	case ast.IntLit, ast.FloatLit, ast.StringLit, ast.BoolLit, ast.Ident:
		return nil
	case ast.Binary:
		if n.Left == nil || n.Right == nil {
			return fail(pos, "binary expression missing operand")
		}
		if err := v.expr(n.Left); err != nil {
			return err
		}
		return v.expr(n.Right)
	case ast.Unary:
		if n.Operand == nil {
			return fail(pos, "unary expression missing operand")
		}
		return v.expr(n.Operand)
	case ast.Call:
		if n.Fn == nil {
			return fail(pos, "call missing callee")
		}
		if err := v.expr(n.Fn); err != nil {
			return err
		}
		for _, a := range n.Args {
			if a.Value == nil {
				return fail(pos, "call argument missing value")
			}
			if err := v.expr(a.Value); err != nil {
				return err
			}
		}
		return nil
	case ast.If:
		if n.Cond == nil || n.Then == nil {
			return fail(pos, "if expression missing condition or then-branch")
		}
		if err := v.expr(n.Cond); err != nil {
			return err
		}
		if err := v.expr(n.Then); err != nil {
			return err
		}
		if n.Else != nil {
			return v.expr(n.Else)
		}
		return nil
	case ast.Match:
		if n.Scrutinee == nil {
			return fail(pos, "match missing scrutinee")
		}
		if err := v.expr(n.Scrutinee); err != nil {
			return err
		}
		if n.Arms == nil {
			return fail(pos, "match missing arms")
		}
		for _, arm := range n.Arms {
			if arm.Pattern == nil || arm.Body == nil {
				return fail(pos, "match arm missing pattern or body")
			}
			if err := v.pattern(arm.Pattern); err != nil {
				return err
			}
			if arm.Guard != nil {
				if err := v.expr(arm.Guard); err != nil {
					return err
				}
			}
			if err := v.expr(arm.Body); err != nil {
				return err
			}
		}
		return nil
	case ast.Block:
		for _, s := range n.Stmts {
			if err := v.stmt(s); err != nil {
				return err
			}
		}
		if n.Final != nil {
			return v.expr(n.Final)
		}
		return nil
	case ast.List:
		for _, el := range n.Elements {
			if err := v.expr(el); err != nil {
				return err
			}
		}
		return nil
	case ast.Bind:
		if n.Name == "" || n.Value == nil {
			return fail(pos, "bind expression missing name or value")
		}
		return v.expr(n.Value)
	case ast.With:
		if n.Bindings == nil {
			return fail(pos, "with expression missing bindings")
		}
		for _, b := range n.Bindings {
			if b.Name == "" || b.Value == nil {
				return fail(pos, "with binding missing name or value")
			}
			if err := v.expr(b.Value); err != nil {
				return err
			}
		}
		if n.Body == nil {
			return fail(pos, "with expression missing body")
		}
		if err := v.expr(n.Body); err != nil {
			return err
		}
		for _, arm := range n.ElseArms {
			if arm.Pattern == nil || arm.Body == nil {
				return fail(pos, "with else-arm missing pattern or body")
			}
			if err := v.pattern(arm.Pattern); err != nil {
				return err
			}
			if err := v.expr(arm.Body); err != nil {
				return err
			}
		}
		return nil
	case ast.Dot:
		if n.Object == nil || n.Field == "" {
			return fail(pos, "dot expression missing object or field")
		}
		return v.expr(n.Object)
	case ast.Range:
		if n.Start == nil {
			return fail(pos, "range expression missing start")
		}
		if err := v.expr(n.Start); err != nil {
			return err
		}
		if n.End != nil {
			return v.expr(n.End)
		}
		return nil
	case ast.For:
		if n.Var == "" || n.Iter == nil || n.Body == nil {
			return fail(pos, "for expression missing variable, iterable, or body")
		}
		if err := v.expr(n.Iter); err != nil {
			return err
		}
		return v.expr(n.Body)
	case ast.While:
		if n.Cond == nil || n.Body == nil {
			return fail(pos, "while expression missing condition or body")
		}
		if err := v.expr(n.Cond); err != nil {
			return err
		}
		return v.expr(n.Body)
	case ast.Loop:
		if n.Body == nil {
			return fail(pos, "loop expression missing body")
		}
		return v.expr(n.Body)
	case ast.Lambda:
		if n.Body == nil {
			return fail(pos, "lambda missing body")
		}
		return v.expr(n.Body)
	case ast.InterpString:
		if len(n.Parts) != len(n.Exprs)+1 {
			return fail(pos, "interpolated string parts/exprs mismatch")
		}
		for _, ex := range n.Exprs {
			if err := v.expr(ex); err != nil {
				return err
			}
		}
		return nil
	case ast.Map:
		for _, entry := range n.Entries {
			if entry.Key == nil || entry.Value == nil {
				return fail(pos, "map entry missing key or value")
			}
			if err := v.expr(entry.Key); err != nil {
				return err
			}
			if err := v.expr(entry.Value); err != nil {
				return err
			}
		}
		return nil
	case ast.Tuple:
		for _, el := range n.Elements {
			if err := v.expr(el); err != nil {
				return err
			}
		}
		return nil
	case ast.RecordUpdate:
		if n.Base == nil {
			return fail(pos, "record update missing base")
		}
		if err := v.expr(n.Base); err != nil {
			return err
		}
		for _, f := range n.Fields {
			if f.Name == "" || f.Value == nil {
				return fail(pos, "record update field missing name or value")
			}
			if err := v.expr(f.Value); err != nil {
				return err
			}
		}
		return nil
	case ast.ListComp:
		if n.Body == nil || n.Var == "" || n.Iter == nil {
			return fail(pos, "list comprehension missing body, variable, or iterable")
		}
		if err := v.expr(n.Body); err != nil {
			return err
		}
		if err := v.expr(n.Iter); err != nil {
			return err
		}
		if n.Cond != nil {
			return v.expr(n.Cond)
		}
		return nil
	case ast.Index:
		if n.Object == nil || n.Idx == nil {
			return fail(pos, "index expression missing object or index")
		}
		if err := v.expr(n.Object); err != nil {
			return err
		}
		return v.expr(n.Idx)
	case ast.Spawn:
		if n.Fn == nil {
			return fail(pos, "spawn missing function")
		}
		return v.expr(n.Fn)
	case ast.Send:
		if n.Pid == nil || n.Msg == nil {
			return fail(pos, "send missing pid or message")
		}
		if err := v.expr(n.Pid); err != nil {
			return err
		}
		return v.expr(n.Msg)
	case ast.Receive:
		for _, arm := range n.Arms {
			if arm.Pattern == nil || arm.Body == nil {
				return fail(pos, "receive arm missing pattern or body")
			}
			if err := v.pattern(arm.Pattern); err != nil {
				return err
			}
			if err := v.expr(arm.Body); err != nil {
				return err
			}
		}
		if (n.After == nil) != (n.AfterBody == nil) {
			return fail(pos, "receive after-clause and after-body must be co-located")
		}
		if n.After != nil {
			if err := v.expr(n.After); err != nil {
				return err
			}
			return v.expr(n.AfterBody)
		}
		return nil
	case ast.Try:
		if n.Operand == nil {
			return fail(pos, "try expression missing operand")
		}
		return v.expr(n.Operand)
	default:
		return fail(pos, "unknown expression kind %T", n)
	}
}

func (v *validator) pattern(p ast.Pattern) *Error {
	if p == nil {
		return fail(token.Position{}, "nil pattern")
	}
	pos := p.Position()
	switch n := p.(type) {
	case ast.PatIdent:
		if n.Name == "" {
			return fail(pos, "identifier pattern missing name")
		}
		return nil
	case ast.PatWildcard:
		return nil
	case ast.PatLit:
		if n.Value == nil {
			return fail(pos, "literal pattern missing value")
		}
		return v.expr(n.Value)
	case ast.PatConstructor:
		if n.Name == "" {
			return fail(pos, "constructor pattern missing name")
		}
		for _, a := range n.Args {
			if err := v.pattern(a); err != nil {
				return err
			}
		}
		return nil
	case ast.PatTuple:
		for _, el := range n.Elements {
			if err := v.pattern(el); err != nil {
				return err
			}
		}
		return nil
	case ast.PatRest:
		return nil
	default:
		return fail(pos, "unknown pattern kind %T", n)
	}
}
