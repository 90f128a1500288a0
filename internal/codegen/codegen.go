// Package codegen lowers a validated, checked Fern AST to textual SSA IR
// (spec.md §4.6) under the three-class w/l/d value ABI. It does no
// register allocation, optimization, or liveness analysis — the
// downstream backend owns that.
package codegen

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fern-lang/fern/internal/ast"
	"github.com/fern-lang/fern/internal/token"
)

// Error is emitted for genuinely unsupported constructs. Per §7 these do
// not abort codegen: the generator keeps going, and Error is only returned
// to the driver as an advisory diagnostic list. Only an unsupported
// expression kind also leaves a `# TODO:` comment in the IR; the other
// unsupported constructs are reported through Error alone.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Message) }

// Generator holds all per-run state: fresh-name counters, the data
// section, the defer stack (reset per function, §9 "reified as a small
// owned stack kept on the codegen context, not a global"), and the wide
// variable symbol table.
type Generator struct {
	logger *slog.Logger
	errors []*Error

	tempN  int
	labelN int
	dataN  int
	lambdaN int

	fnSigs map[string]ABI // declared function name -> result ABI class

	out  strings.Builder
	data strings.Builder

	// per-function state, reset by resetFn
	wide      map[string]bool
	wideKind  map[string]string
	deferStack []ast.Expr
	resultTemp string
}

func New(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{logger: logger, fnSigs: map[string]ABI{}}
}

func (g *Generator) errorf(pos token.Position, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	g.errors = append(g.errors, &Error{Message: msg, Pos: pos})
	g.logger.Warn("codegen: unsupported construct", "pos", pos.String(), "message", msg)
}

func (g *Generator) freshTemp() string {
	t := fmt.Sprintf("%%t%d", g.tempN)
	g.tempN++
	return t
}

func (g *Generator) freshLabel() string {
	l := fmt.Sprintf("@L%d", g.labelN)
	g.labelN++
	return l
}

func (g *Generator) freshData(contents string) string {
	name := fmt.Sprintf("$str%d", g.dataN)
	g.dataN++
	fmt.Fprintf(&g.data, "data %s = { b %q, b 0 }\n", name, contents)
	return name
}

func (g *Generator) resetFn() {
	g.wide = map[string]bool{}
	g.wideKind = map[string]string{}
	g.deferStack = nil
}

// Generate lowers every top-level statement and returns the combined SSA
// text (functions, then the data section) plus any advisory errors.
func Generate(file *ast.File, logger *slog.Logger) (string, []*Error) {
	g := New(logger)

	for _, s := range file.Stmts {
		if fn, ok := s.(ast.Fn); ok {
			g.declareSig(fn)
		}
	}
	for _, s := range file.Stmts {
		g.topStmt(s)
	}

	var out strings.Builder
	out.WriteString(g.out.String())
	if g.data.Len() > 0 {
		out.WriteByte('\n')
		out.WriteString(g.data.String())
	}
	return out.String(), g.errors
}

func (g *Generator) declareSig(fn ast.Fn) {
	result := W
	if fn.ReturnType != nil {
		result = abiFromTypeExpr(fn.ReturnType)
	}
	g.fnSigs[fn.Name] = result
}

func abiFromTypeExpr(te ast.TypeExpr) ABI {
	n, ok := te.(ast.NamedType)
	if !ok {
		return L
	}
	switch n.Name {
	case "Int", "Bool", "Unit":
		return W
	case "Float":
		return D
	default:
		return L
	}
}

func (g *Generator) topStmt(s ast.Stmt) {
	switch n := s.(type) {
	case ast.Fn:
		g.genFn(n)
	case ast.Import, ast.TypeDef, ast.Trait, ast.Newtype, ast.Module:
		// Pure front-end bookkeeping; nothing to lower.
	case ast.Impl:
		for _, m := range n.Methods {
			g.genFn(m)
		}
	default:
		g.errorf(s.Position(), "top-level statement %T is not a function and cannot be lowered standalone", n)
	}
}

// genFn lowers one function (or each clause of a coalesced clause-form
// function, dispatched through a leading match on the clause patterns) to
// `export function <abi> $name(<params>) { @start ... }`.
func (g *Generator) genFn(fn ast.Fn) {
	g.resetFn()
	name := fn.Name
	if name == "main" {
		name = "fern_main"
	}
	result := g.fnSigs[fn.Name]

	if fn.Params != nil {
		params := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			abi := abiOrDefault(p.Type)
			if abi == L {
				g.wide[p.Name] = true
			}
			params[i] = fmt.Sprintf("%s %%%s", abi, p.Name)
		}
		fmt.Fprintf(&g.out, "export function %s $%s(%s) {\n@start\n", result, name, strings.Join(params, ", "))
		g.resultTemp = g.freshTemp()
		val := g.genExpr(fn.Body)
		g.emitDefers()
		fmt.Fprintf(&g.out, "\tret %s\n", val)
		g.out.WriteString("}\n")
		return
	}

	// Clause form: emit one function that dispatches on the clause
	// patterns in order, since a single "fn name" symbol must exist for
	// callers regardless of how many clauses it was written with.
	arity := 0
	if len(fn.Clauses) > 0 {
		arity = len(fn.Clauses[0].Params)
	}
	argNames := make([]string, arity)
	params := make([]string, arity)
	for i := range argNames {
		argNames[i] = fmt.Sprintf("arg%d", i)
		params[i] = fmt.Sprintf("l %%%s", argNames[i])
		g.wide[argNames[i]] = true
	}
	fmt.Fprintf(&g.out, "export function %s $%s(%s) {\n@start\n", result, name, strings.Join(params, ", "))
	for ci, clause := range fn.Clauses {
		nextLabel := g.freshLabel()
		for i, p := range clause.Params {
			g.genPatternTest(p, "%"+argNames[i], nextLabel)
		}
		g.deferStack = nil
		g.resultTemp = g.freshTemp()
		val := g.genExpr(clause.Body)
		g.emitDefers()
		fmt.Fprintf(&g.out, "\tret %s\n", val)
		fmt.Fprintf(&g.out, "%s\n", nextLabel)
		_ = ci
	}
	fmt.Fprintf(&g.out, "\tret 0\n}\n")
}

func abiOrDefault(te ast.TypeExpr) ABI {
	if te == nil {
		return W
	}
	return abiFromTypeExpr(te)
}

// genPatternTest emits a test that jumps to failLabel when value does not
// match p, binding any identifiers along the success path — the match/fn
// clause "pattern test" step of §4.6. A constructor pattern tests the tag
// only; its argument patterns are neither tested nor bound.
func (g *Generator) genPatternTest(p ast.Pattern, value string, failLabel string) {
	switch n := p.(type) {
	case ast.PatWildcard:
		return
	case ast.PatIdent:
		fmt.Fprintf(&g.out, "\t%%%s =l copy %s\n", n.Name, value)
		g.wide[n.Name] = true
	case ast.PatLit:
		lit := g.genExpr(n.Value)
		t := g.freshTemp()
		fmt.Fprintf(&g.out, "\t%s =w ceqw %s, %s\n", t, value, lit)
		okLabel := g.freshLabel()
		fmt.Fprintf(&g.out, "\tjnz %s, %s, %s\n%s\n", t, okLabel, failLabel, okLabel)
	case ast.PatConstructor:
		tag := g.freshTemp()
		fmt.Fprintf(&g.out, "\t%s =w loadw %s\n", tag, value)
		want := g.freshTemp()
		fmt.Fprintf(&g.out, "\t%s =w ceqw %s, %d\n", want, tag, tagOf(n.Name))
		okLabel := g.freshLabel()
		fmt.Fprintf(&g.out, "\tjnz %s, %s, %s\n%s\n", want, okLabel, failLabel, okLabel)
	case ast.PatTuple, ast.PatRest:
		// Structural decomposition beyond the identifier/literal/
		// constructor cases is left as a documented gap — §9's open
		// question on destructuring lowering has no specified
		// algorithm to follow.
		g.errorf(p.Position(), "destructuring pattern %T lowering is not fully specified", p)
	}
}

func tagOf(name string) int {
	h := 0
	for _, r := range name {
		h = h*31 + int(r)
	}
	if h < 0 {
		h = -h
	}
	return h % 997
}

func (g *Generator) emitDefers() {
	for i := len(g.deferStack) - 1; i >= 0; i-- {
		g.genExpr(g.deferStack[i])
	}
}
