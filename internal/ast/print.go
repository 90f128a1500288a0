package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a stable, human-readable golden format for a statement list:
// two-space indentation per level, one node per line, "NodeKind:" followed
// by child labels (spec.md §6 "AST golden format"). This format is locked
// by tests per the spec; changing it is a breaking change.
func Print(stmts []Stmt) string {
	var sb strings.Builder
	p := &printer{sb: &sb}
	for _, s := range stmts {
		p.stmt(s, 0)
	}
	return sb.String()
}

// PrintFile wraps Print with the header/footer the `fern parse` golden
// output uses (spec.md §8 scenario 1: "AST for …:\n\n...\n\n").
func PrintFile(filename string, stmts []Stmt) string {
	return fmt.Sprintf("AST for %s:\n\n%s\n", filename, Print(stmts))
}

type printer struct{ sb *strings.Builder }

func (p *printer) line(depth int, format string, args ...any) {
	p.sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(p.sb, format, args...)
	p.sb.WriteByte('\n')
}

func (p *printer) label(depth int, name string) {
	p.line(depth, "%s:", name)
}

func (p *printer) stmt(s Stmt, depth int) {
	switch n := s.(type) {
	case Let:
		p.label(depth, "Let")
		p.label(depth+1, "pattern")
		p.pattern(n.Pattern, depth+2)
		if n.Type != nil {
			p.label(depth+1, "type")
			p.typeExpr(n.Type, depth+2)
		}
		p.label(depth+1, "value")
		p.expr(n.Value, depth+2)
		if n.Else != nil {
			p.label(depth+1, "else")
			p.expr(n.Else, depth+2)
		}
	case Return:
		p.label(depth, "Return")
		if n.Value != nil {
			p.label(depth+1, "value")
			p.expr(n.Value, depth+2)
		}
		if n.Cond != nil {
			p.label(depth+1, "condition")
			p.expr(n.Cond, depth+2)
		}
	case ExprStmt:
		p.label(depth, "ExprStmt")
		p.expr(n.X, depth+1)
	case Fn:
		p.line(depth, "Fn: %s pub=%t", n.Name, n.Pub)
		if len(n.Params) > 0 {
			p.line(depth+1, "params: (%d)", len(n.Params))
			for _, prm := range n.Params {
				p.line(depth+2, "Param: %s", prm.Name)
				if prm.Type != nil {
					p.typeExpr(prm.Type, depth+3)
				}
			}
		}
		if len(n.Clauses) > 0 {
			p.line(depth+1, "clauses: (%d)", len(n.Clauses))
			for _, c := range n.Clauses {
				p.label(depth+2, "Clause")
				for _, pat := range c.Params {
					p.pattern(pat, depth+3)
				}
				p.expr(c.Body, depth+3)
			}
		}
		if n.Body != nil {
			p.label(depth+1, "body")
			p.expr(n.Body, depth+2)
		}
	case Import:
		p.line(depth, "Import: %q", n.Path)
	case Defer:
		p.label(depth, "Defer")
		p.expr(n.X, depth+1)
	case TypeDef:
		p.line(depth, "TypeDef: %s pub=%t", n.Name, n.Pub)
	case Break:
		p.label(depth, "Break")
		if n.Value != nil {
			p.expr(n.Value, depth+1)
		}
	case Continue:
		p.label(depth, "Continue")
	case Trait:
		p.line(depth, "Trait: %s", n.Name)
	case Impl:
		p.line(depth, "Impl: %s", n.TraitName)
	case Newtype:
		p.line(depth, "Newtype: %s", n.Name)
	case Module:
		p.line(depth, "Module: %s", n.Path)
	default:
		p.line(depth, "UnknownStmt")
	}
}

func (p *printer) expr(e Expr, depth int) {
	switch n := e.(type) {
	case IntLit:
		p.line(depth, "Int: %s", n.Value)
	case FloatLit:
		p.line(depth, "Float: %s", n.Value)
	case StringLit:
		p.line(depth, "String: %s", strconv.Quote(n.Value))
	case BoolLit:
		p.line(depth, "Bool: %t", n.Value)
	case Ident:
		p.line(depth, "Ident: %s", n.Name)
	case Binary:
		p.line(depth, "Binary: %s", n.Op)
		p.expr(n.Left, depth+1)
		p.expr(n.Right, depth+1)
	case Unary:
		p.line(depth, "Unary: %s", n.Op)
		p.expr(n.Operand, depth+1)
	case Call:
		p.label(depth, "Call")
		p.label(depth+1, "fn")
		p.expr(n.Fn, depth+2)
		p.line(depth+1, "args: (%d)", len(n.Args))
		for _, a := range n.Args {
			if a.Label != nil {
				p.line(depth+2, "CallArg: %s", *a.Label)
			} else {
				p.label(depth+2, "CallArg")
			}
			p.expr(a.Value, depth+3)
		}
	case If:
		p.label(depth, "If")
		p.label(depth+1, "condition")
		p.expr(n.Cond, depth+2)
		p.label(depth+1, "then")
		p.expr(n.Then, depth+2)
		if n.Else != nil {
			p.label(depth+1, "else")
			p.expr(n.Else, depth+2)
		}
	case Match:
		p.label(depth, "Match")
		p.label(depth+1, "value")
		p.expr(n.Scrutinee, depth+2)
		p.line(depth+1, "arms: (%d)", len(n.Arms))
		for _, arm := range n.Arms {
			p.pattern(arm.Pattern, depth+2)
			if arm.Guard != nil {
				p.label(depth+2, "guard")
				p.expr(arm.Guard, depth+3)
			}
			p.expr(arm.Body, depth+2)
		}
	case Block:
		p.label(depth, "Block")
		for _, s := range n.Stmts {
			p.stmt(s, depth+1)
		}
		if n.Final != nil {
			p.label(depth+1, "final")
			p.expr(n.Final, depth+2)
		}
	case List:
		p.line(depth, "List: (%d)", len(n.Elements))
		for _, el := range n.Elements {
			p.expr(el, depth+1)
		}
	case Bind:
		p.line(depth, "Bind: %s", n.Name)
		p.expr(n.Value, depth+1)
	case With:
		p.label(depth, "With")
		for _, b := range n.Bindings {
			p.line(depth+1, "binding: %s", b.Name)
			p.expr(b.Value, depth+2)
		}
		p.label(depth+1, "body")
		p.expr(n.Body, depth+2)
	case Dot:
		p.line(depth, "Dot: %s", n.Field)
		p.expr(n.Object, depth+1)
	case Range:
		p.line(depth, "Range: inclusive=%t", n.Inclusive)
		p.expr(n.Start, depth+1)
		p.expr(n.End, depth+1)
	case For:
		p.line(depth, "For: %s", n.Var)
		p.label(depth+1, "iter")
		p.expr(n.Iter, depth+2)
		p.label(depth+1, "body")
		p.expr(n.Body, depth+2)
	case While:
		p.label(depth, "While")
		p.expr(n.Cond, depth+1)
		p.expr(n.Body, depth+1)
	case Loop:
		p.label(depth, "Loop")
		p.expr(n.Body, depth+1)
	case Lambda:
		p.line(depth, "Lambda: (%s)", strings.Join(n.Params, ", "))
		p.expr(n.Body, depth+1)
	case InterpString:
		p.line(depth, "InterpString: parts=%d", len(n.Parts))
		for _, e := range n.Exprs {
			p.expr(e, depth+1)
		}
	case Map:
		p.line(depth, "Map: (%d)", len(n.Entries))
		for _, kv := range n.Entries {
			p.expr(kv.Key, depth+1)
			p.expr(kv.Value, depth+1)
		}
	case Tuple:
		p.line(depth, "Tuple: (%d)", len(n.Elements))
		for _, el := range n.Elements {
			p.expr(el, depth+1)
		}
	case RecordUpdate:
		p.label(depth, "RecordUpdate")
		p.expr(n.Base, depth+1)
		for _, f := range n.Fields {
			p.line(depth+1, "field: %s", f.Name)
			p.expr(f.Value, depth+2)
		}
	case ListComp:
		p.line(depth, "ListComp: %s", n.Var)
		p.expr(n.Body, depth+1)
		p.expr(n.Iter, depth+1)
		if n.Cond != nil {
			p.expr(n.Cond, depth+1)
		}
	case Index:
		p.label(depth, "Index")
		p.expr(n.Object, depth+1)
		p.expr(n.Idx, depth+1)
	case Spawn:
		p.label(depth, "Spawn")
		p.expr(n.Fn, depth+1)
	case Send:
		p.label(depth, "Send")
		p.expr(n.Pid, depth+1)
		p.expr(n.Msg, depth+1)
	case Receive:
		p.line(depth, "Receive: arms=%d", len(n.Arms))
		for _, arm := range n.Arms {
			p.pattern(arm.Pattern, depth+1)
			p.expr(arm.Body, depth+1)
		}
		if n.After != nil {
			p.label(depth+1, "after")
			p.expr(n.After, depth+2)
			p.expr(n.AfterBody, depth+2)
		}
	case Try:
		p.label(depth, "Try")
		p.expr(n.Operand, depth+1)
	default:
		p.line(depth, "UnknownExpr")
	}
}

func (p *printer) pattern(pat Pattern, depth int) {
	switch n := pat.(type) {
	case PatIdent:
		p.line(depth, "PatIdent: %s", n.Name)
	case PatWildcard:
		p.line(depth, "PatWildcard")
	case PatLit:
		p.label(depth, "PatLit")
		p.expr(n.Value, depth+1)
	case PatConstructor:
		p.line(depth, "PatConstructor: %s", n.Name)
		for _, a := range n.Args {
			p.pattern(a, depth+1)
		}
	case PatTuple:
		p.line(depth, "PatTuple: (%d)", len(n.Elements))
		for _, el := range n.Elements {
			p.pattern(el, depth+1)
		}
	case PatRest:
		p.line(depth, "PatRest: %s", n.Name)
	default:
		p.line(depth, "UnknownPattern")
	}
}

func (p *printer) typeExpr(t TypeExpr, depth int) {
	switch n := t.(type) {
	case NamedType:
		p.line(depth, "NamedType: %s", n.Name)
		for _, a := range n.Args {
			p.typeExpr(a, depth+1)
		}
	case FunctionType:
		p.label(depth, "FunctionType")
		for _, a := range n.Params {
			p.typeExpr(a, depth+1)
		}
		p.typeExpr(n.Return, depth+1)
	case TupleType:
		p.line(depth, "TupleType: (%d)", len(n.Elements))
		for _, el := range n.Elements {
			p.typeExpr(el, depth+1)
		}
	default:
		p.line(depth, "UnknownTypeExpr")
	}
}
