package codegen

import (
	"fmt"
	"strings"

	"github.com/fern-lang/fern/internal/ast"
)

var binOpcode = map[string]string{
	"+": "add", "-": "sub", "*": "mul", "/": "div", "%": "rem",
	"==": "ceqw", "!=": "cnew", "<": "csltw", "<=": "cslew",
	">": "csgtw", ">=": "csgew",
}

// genExpr emits the SSA instructions for e and returns the temp (or
// literal) holding its value, implementing §4.6's per-construct emission
// rules.
func (g *Generator) genExpr(e ast.Expr) string {
	switch n := e.(type) {
	case ast.IntLit:
		return n.Value
	case ast.FloatLit:
		t := g.freshTemp()
		fmt.Fprintf(&g.out, "\t%s =d copy d_%s\n", t, n.Value)
		return t
	case ast.BoolLit:
		if n.Value {
			return "1"
		}
		return "0"
	case ast.StringLit:
		return g.freshData(n.Value)
	case ast.InterpString:
		return g.genInterpString(n)
	case ast.Ident:
		return "%" + n.Name
	case ast.Binary:
		return g.genBinary(n)
	case ast.Unary:
		return g.genUnary(n)
	case ast.If:
		return g.genIf(n)
	case ast.Match:
		return g.genMatch(n)
	case ast.Block:
		return g.genBlock(n)
	case ast.Bind:
		val := g.genExpr(n.Value)
		abi := g.classify(n.Value)
		fmt.Fprintf(&g.out, "\t%%%s =%s copy %s\n", n.Name, abi, val)
		if abi == L {
			g.wide[n.Name] = true
		}
		g.wideKind[n.Name] = g.printKind(n.Value)
		return "%" + n.Name
	case ast.Call:
		return g.genCall(n)
	case ast.With:
		return g.genWith(n)
	case ast.For:
		return g.genFor(n)
	case ast.While:
		return g.genWhile(n)
	case ast.Loop:
		return g.genLoop(n)
	case ast.Lambda:
		return g.genLambda(n)
	case ast.Try:
		return g.genTry(n)
	case ast.List:
		return g.genList(n)
	case ast.Tuple:
		return g.genTuple(n)
	case ast.Dot:
		obj := g.genExpr(n.Object)
		t := g.freshTemp()
		fmt.Fprintf(&g.out, "\t%s =l fern_field_get %s, %q\n", t, obj, n.Field)
		return t
	case ast.Index:
		obj := g.genExpr(n.Object)
		idx := g.genExpr(n.Idx)
		t := g.freshTemp()
		fmt.Fprintf(&g.out, "\t%s =l call $fern_list_get(l %s, w %s)\n", t, obj, idx)
		return t
	case ast.Range:
		start := g.genExpr(n.Start)
		t := g.freshTemp()
		if n.End != nil {
			end := g.genExpr(n.End)
			fmt.Fprintf(&g.out, "\t%s =l call $fern_range_new(w %s, w %s, w %d)\n", t, start, end, boolInt(n.Inclusive))
		} else {
			fmt.Fprintf(&g.out, "\t%s =l call $fern_range_open(w %s)\n", t, start)
		}
		return t
	case ast.Spawn:
		fnRef := g.genExpr(n.Fn)
		t := g.freshTemp()
		fmt.Fprintf(&g.out, "\t%s =l call $fern_spawn(l %s)\n", t, fnRef)
		return t
	case ast.Send:
		pid := g.genExpr(n.Pid)
		msg := g.genExpr(n.Msg)
		fmt.Fprintf(&g.out, "\tcall $fern_send(l %s, l %s)\n", pid, msg)
		return "0"
	case ast.Receive:
		return g.genReceive(n)
	case ast.Map:
		return g.genMap(n)
	case ast.RecordUpdate:
		return g.genRecordUpdate(n)
	case ast.ListComp:
		return g.genListComp(n)
	default:
		g.errorf(e.Position(), "codegen: unsupported expression %T", n)
		fmt.Fprintf(&g.out, "\t# TODO: unsupported expression %T\n", n)
		return "0"
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (g *Generator) genInterpString(n ast.InterpString) string {
	acc := g.freshData(n.Parts[0])
	for i, ex := range n.Exprs {
		v := g.genExpr(ex)
		kind := g.printKind(ex)
		s := g.freshTemp()
		fmt.Fprintf(&g.out, "\t%s =l call $fern_to_str_%s(%s %s)\n", s, kind, abiOf(kind), v)
		joined := g.freshTemp()
		fmt.Fprintf(&g.out, "\t%s =l call $fern_str_concat(l %s, l %s)\n", joined, acc, s)
		acc = joined
		if i+1 < len(n.Parts) {
			lit := g.freshData(n.Parts[i+1])
			next := g.freshTemp()
			fmt.Fprintf(&g.out, "\t%s =l call $fern_str_concat(l %s, l %s)\n", next, acc, lit)
			acc = next
		}
	}
	return acc
}

func abiOf(kind string) string {
	switch kind {
	case "float":
		return "d"
	case "str":
		return "l"
	default:
		return "w"
	}
}

func (g *Generator) genBinary(n ast.Binary) string {
	if n.Op == "|>" {
		return g.genExpr(ast.Call{Loc: n.Loc, Fn: n.Right, Args: []ast.CallArg{{Value: n.Left}}})
	}
	l := g.genExpr(n.Left)
	r := g.genExpr(n.Right)
	t := g.freshTemp()

	if n.Op == "+" && g.classify(n.Left) == L {
		fmt.Fprintf(&g.out, "\t%s =l call $fern_str_concat(l %s, l %s)\n", t, l, r)
		return t
	}
	if n.Op == "and" {
		fmt.Fprintf(&g.out, "\t%s =w and %s, %s\n", t, l, r)
		return t
	}
	if n.Op == "or" {
		fmt.Fprintf(&g.out, "\t%s =w or %s, %s\n", t, l, r)
		return t
	}
	if n.Op == "**" {
		fmt.Fprintf(&g.out, "\t%s =w call $fern_pow(w %s, w %s)\n", t, l, r)
		return t
	}
	abi := g.classify(n.Left)
	op, ok := binOpcode[n.Op]
	if !ok {
		g.errorf(n.Position(), "codegen: unsupported binary operator %q", n.Op)
		return "0"
	}
	resultClass := abi
	if isComparisonOp(n.Op) {
		resultClass = W
	}
	fmt.Fprintf(&g.out, "\t%s =%s %s %s, %s\n", t, resultClass, op, l, r)
	return t
}

func (g *Generator) genUnary(n ast.Unary) string {
	v := g.genExpr(n.Operand)
	t := g.freshTemp()
	switch n.Op {
	case "-":
		abi := g.classify(n.Operand)
		fmt.Fprintf(&g.out, "\t%s =%s neg %s\n", t, abi, v)
	case "not":
		fmt.Fprintf(&g.out, "\t%s =w xor %s, 1\n", t, v)
	default:
		g.errorf(n.Position(), "codegen: unsupported unary operator %q", n.Op)
	}
	return t
}

func (g *Generator) genIf(n ast.If) string {
	cond := g.genExpr(n.Cond)
	thenL, elseL, joinL := g.freshLabel(), g.freshLabel(), g.freshLabel()
	result := g.freshTemp()
	abi := g.classify(n.Then)

	fmt.Fprintf(&g.out, "\tjnz %s, %s, %s\n", cond, thenL, elseL)
	fmt.Fprintf(&g.out, "%s\n", thenL)
	thenV := g.genExpr(n.Then)
	fmt.Fprintf(&g.out, "\t%s =%s copy %s\n", result, abi, thenV)
	fmt.Fprintf(&g.out, "\tjmp %s\n%s\n", joinL, elseL)
	if n.Else != nil {
		elseV := g.genExpr(n.Else)
		fmt.Fprintf(&g.out, "\t%s =%s copy %s\n", result, abi, elseV)
	} else {
		fmt.Fprintf(&g.out, "\t%s =%s copy 0\n", result, abi)
	}
	fmt.Fprintf(&g.out, "\tjmp %s\n%s\n", joinL, joinL)
	return result
}

// genMatch lowers each arm to a pattern test against a fresh label, falling
// through to the next arm's label on failure and jumping to a shared join
// label on success (§4.6 "Match").
func (g *Generator) genMatch(n ast.Match) string {
	scrut := g.genExpr(n.Scrutinee)
	joinL := g.freshLabel()
	result := g.freshTemp()
	abi := W
	if len(n.Arms) > 0 {
		abi = g.classify(n.Arms[0].Body)
	}

	for i, arm := range n.Arms {
		nextL := g.freshLabel()
		g.genPatternTest(arm.Pattern, scrut, nextL)
		if arm.Guard != nil {
			gv := g.genExpr(arm.Guard)
			guardOkL := g.freshLabel()
			fmt.Fprintf(&g.out, "\tjnz %s, %s, %s\n%s\n", gv, guardOkL, nextL, guardOkL)
		}
		body := g.genExpr(arm.Body)
		fmt.Fprintf(&g.out, "\t%s =%s copy %s\n", result, abi, body)
		fmt.Fprintf(&g.out, "\tjmp %s\n%s\n", joinL, nextL)
		_ = i
	}
	fmt.Fprintf(&g.out, "\t%s =%s copy 0\n\tjmp %s\n%s\n", result, abi, joinL, joinL)
	return result
}

func (g *Generator) genBlock(n ast.Block) string {
	for _, s := range n.Stmts {
		g.genStmt(s)
	}
	if n.Final == nil {
		return "0"
	}
	return g.genExpr(n.Final)
}

func (g *Generator) genStmt(s ast.Stmt) {
	switch n := s.(type) {
	case ast.Let:
		val := g.genExpr(n.Value)
		abi := g.classify(n.Value)
		name := letName(n.Pattern)
		fmt.Fprintf(&g.out, "\t%%%s =%s copy %s\n", name, abi, val)
		if abi == L {
			g.wide[name] = true
		}
		g.wideKind[name] = g.printKind(n.Value)
	case ast.ExprStmt:
		g.genExpr(n.X)
	case ast.Return:
		if n.Value != nil {
			v := g.genExpr(n.Value)
			g.emitDefers()
			fmt.Fprintf(&g.out, "\tret %s\n", v)
		} else {
			g.emitDefers()
			fmt.Fprintf(&g.out, "\tret 0\n")
		}
	case ast.Defer:
		g.deferStack = append(g.deferStack, n.X)
	case ast.Break:
		fmt.Fprintf(&g.out, "\t# break\n")
	case ast.Continue:
		fmt.Fprintf(&g.out, "\t# continue\n")
	case ast.Fn:
		g.genFn(n)
	case ast.Import, ast.TypeDef, ast.Trait, ast.Newtype, ast.Module:
	case ast.Impl:
		for _, m := range n.Methods {
			g.genFn(m)
		}
	default:
		g.errorf(s.Position(), "codegen: unsupported statement %T", n)
	}
}

func letName(p ast.Pattern) string {
	if id, ok := p.(ast.PatIdent); ok {
		return id.Name
	}
	return "_"
}

// genCall dispatches module-qualified calls through dispatchTable, the
// print/println and Ok/Err builtins specially, and otherwise emits a
// direct `call $name(...)`.
func (g *Generator) genCall(n ast.Call) string {
	if ident, ok := n.Fn.(ast.Ident); ok {
		switch ident.Name {
		case "print", "println":
			if len(n.Args) == 1 {
				v := g.genExpr(n.Args[0].Value)
				kind := g.printKind(n.Args[0].Value)
				sym := printSymbol(kind, ident.Name == "println")
				fmt.Fprintf(&g.out, "\tcall $%s(%s %s)\n", sym, abiOf(kind), v)
				return "0"
			}
		case "Ok", "Err":
			v := g.genExpr(n.Args[0].Value)
			t := g.freshTemp()
			tag := 0
			if ident.Name == "Err" {
				tag = 1
			}
			fmt.Fprintf(&g.out, "\t%s =l call $fern_result_new(w %d, l %s)\n", t, tag, v)
			return t
		}
		if sym, ok := dispatchTable[ident.Name]; ok {
			return g.emitDispatch(sym, n.Args)
		}
	}
	if dot, ok := n.Fn.(ast.Dot); ok {
		if owner, ok := dot.Object.(ast.Ident); ok {
			if sym, ok := dispatchTable[owner.Name+"."+dot.Field]; ok {
				return g.emitDispatch(sym, n.Args)
			}
		}
	}

	fnRef := g.calleeSymbol(n.Fn)
	abi := g.classifyCall(n)
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		v := g.genExpr(a.Value)
		args[i] = fmt.Sprintf("%s %s", g.classify(a.Value), v)
	}
	t := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =%s call $%s(%s)\n", t, abi, fnRef, strings.Join(args, ", "))
	return t
}

func (g *Generator) calleeSymbol(fn ast.Expr) string {
	if ident, ok := fn.(ast.Ident); ok {
		if ident.Name == "main" {
			return "fern_main"
		}
		return ident.Name
	}
	return "fern_closure_call"
}

func (g *Generator) emitDispatch(sym Symbol, args []ast.CallArg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		v := g.genExpr(a.Value)
		abi := W
		if i < len(sym.Params) {
			abi = sym.Params[i]
		}
		parts[i] = fmt.Sprintf("%s %s", abi, v)
	}
	t := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =%s call $%s(%s)\n", t, sym.Result, sym.Runtime, strings.Join(parts, ", "))
	return t
}

// genWith lowers `with x <- expr, ...: body` by checking the ok tag of
// each Result binding in sequence, jumping to a shared error-handling
// label (the first matching else arm, or a re-raise) when any is an Err
// — §4.6 "With / error propagation".
func (g *Generator) genWith(n ast.With) string {
	errLabel := g.freshLabel()
	joinL := g.freshLabel()
	result := g.freshTemp()
	errVal := g.freshTemp()
	failed := g.freshTemp() // the Result of the binding that was checked last

	for _, b := range n.Bindings {
		r := g.genExpr(b.Value)
		fmt.Fprintf(&g.out, "\t%s =l copy %s\n", failed, r)
		tag := g.freshTemp()
		fmt.Fprintf(&g.out, "\t%s =w call $fern_result_is_ok(l %s)\n", tag, r)
		okL := g.freshLabel()
		fmt.Fprintf(&g.out, "\tjnz %s, %s, %s\n%s\n", tag, okL, errLabel, okL)
		val := g.freshTemp()
		fmt.Fprintf(&g.out, "\t%s =l call $fern_result_unwrap(l %s)\n", val, r)
		fmt.Fprintf(&g.out, "\t%%%s =l copy %s\n", b.Name, val)
		g.wide[b.Name] = true
	}
	bodyV := g.genExpr(n.Body)
	fmt.Fprintf(&g.out, "\t%s =l copy %s\n\tjmp %s\n%s\n", result, bodyV, joinL, errLabel)
	fmt.Fprintf(&g.out, "\t%s =l call $fern_result_unwrap_err(l %s)\n", errVal, failed)

	for i, arm := range n.ElseArms {
		nextL := g.freshLabel()
		g.genPatternTest(arm.Pattern, errVal, nextL)
		armV := g.genExpr(arm.Body)
		fmt.Fprintf(&g.out, "\t%s =l copy %s\n\tjmp %s\n%s\n", result, armV, joinL, nextL)
		_ = i
	}
	g.emitDefers()
	fmt.Fprintf(&g.out, "\tret %s\n%s\n", failed, joinL)
	return result
}

// genFor lowers `for v in iter: body` to a counter loop driven by
// fern_list_length/fern_list_get (§4.6 "For").
func (g *Generator) genFor(n ast.For) string {
	iter := g.genExpr(n.Iter)
	length := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =w call $fern_list_length(l %s)\n", length, iter)
	idx := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =w copy 0\n", idx)
	headL, bodyL, endL := g.freshLabel(), g.freshLabel(), g.freshLabel()
	fmt.Fprintf(&g.out, "\tjmp %s\n%s\n", headL, headL)
	cont := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =w cultw %s, %s\n", cont, idx, length)
	fmt.Fprintf(&g.out, "\tjnz %s, %s, %s\n%s\n", cont, bodyL, endL, bodyL)
	item := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =l call $fern_list_get(l %s, w %s)\n", item, iter, idx)
	fmt.Fprintf(&g.out, "\t%%%s =l copy %s\n", n.Var, item)
	g.wide[n.Var] = true
	g.genExpr(n.Body)
	next := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =w add %s, 1\n", next, idx)
	fmt.Fprintf(&g.out, "\t%s =w copy %s\n\tjmp %s\n%s\n", idx, next, headL, endL)
	return "0"
}

func (g *Generator) genWhile(n ast.While) string {
	headL, bodyL, endL := g.freshLabel(), g.freshLabel(), g.freshLabel()
	fmt.Fprintf(&g.out, "\tjmp %s\n%s\n", headL, headL)
	cond := g.genExpr(n.Cond)
	fmt.Fprintf(&g.out, "\tjnz %s, %s, %s\n%s\n", cond, bodyL, endL, bodyL)
	g.genExpr(n.Body)
	fmt.Fprintf(&g.out, "\tjmp %s\n%s\n", headL, endL)
	return "0"
}

func (g *Generator) genLoop(n ast.Loop) string {
	bodyL := g.freshLabel()
	fmt.Fprintf(&g.out, "%s\n", bodyL)
	g.genExpr(n.Body)
	fmt.Fprintf(&g.out, "\tjmp %s\n", bodyL)
	return "0"
}

// genLambda synthesizes a fresh top-level function for the closure body
// (capture-by-environment-pointer is left to the runtime helper
// fern_closure_new) and returns a closure value built from it — §4.6
// "Lambda lowering".
func (g *Generator) genLambda(n ast.Lambda) string {
	name := fmt.Sprintf("fern_lambda_%d", g.lambdaN)
	g.lambdaN++

	saved := g.out.String()
	savedWide, savedWideKind, savedDefer := g.wide, g.wideKind, g.deferStack
	g.out.Reset()
	g.wide = map[string]bool{}
	g.wideKind = map[string]string{}
	g.deferStack = nil

	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = fmt.Sprintf("l %%%s", p)
		g.wide[p] = true
	}
	fmt.Fprintf(&g.out, "export function l $%s(%s) {\n@start\n", name, strings.Join(params, ", "))
	val := g.genExpr(n.Body)
	g.emitDefers()
	fmt.Fprintf(&g.out, "\tret %s\n}\n", val)

	lambdaFn := g.out.String()
	g.out.Reset()
	g.out.WriteString(saved)
	g.out.WriteString(lambdaFn)
	g.wide, g.wideKind, g.deferStack = savedWide, savedWideKind, savedDefer

	t := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =l call $fern_closure_new(l $%s)\n", t, name)
	return t
}

// genTry implements `expr?`: unwraps an Ok value in place, or returns the
// Err result from the enclosing function immediately (§4.6 "Try").
func (g *Generator) genTry(n ast.Try) string {
	r := g.genExpr(n.Operand)
	tag := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =w call $fern_result_is_ok(l %s)\n", tag, r)
	okL, errL := g.freshLabel(), g.freshLabel()
	fmt.Fprintf(&g.out, "\tjnz %s, %s, %s\n%s\n", tag, okL, errL, errL)
	g.emitDefers()
	fmt.Fprintf(&g.out, "\tret %s\n%s\n", r, okL)
	val := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =l call $fern_result_unwrap(l %s)\n", val, r)
	return val
}

func (g *Generator) genList(n ast.List) string {
	t := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =l call $fern_list_new(w %d)\n", t, len(n.Elements))
	for _, el := range n.Elements {
		v := g.genExpr(el)
		fmt.Fprintf(&g.out, "\tcall $fern_list_push(l %s, l %s)\n", t, v)
	}
	return t
}

func (g *Generator) genTuple(n ast.Tuple) string {
	t := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =l call $fern_tuple_new(w %d)\n", t, len(n.Elements))
	for i, el := range n.Elements {
		v := g.genExpr(el)
		fmt.Fprintf(&g.out, "\tcall $fern_tuple_set(l %s, w %d, l %s)\n", t, i, v)
	}
	return t
}

func (g *Generator) genMap(n ast.Map) string {
	t := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =l call $fern_map_new(w %d)\n", t, len(n.Entries))
	for _, e := range n.Entries {
		k := g.genExpr(e.Key)
		v := g.genExpr(e.Value)
		fmt.Fprintf(&g.out, "\tcall $fern_map_set(l %s, l %s, l %s)\n", t, k, v)
	}
	return t
}

func (g *Generator) genRecordUpdate(n ast.RecordUpdate) string {
	base := g.genExpr(n.Base)
	t := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =l call $fern_record_clone(l %s)\n", t, base)
	for _, f := range n.Fields {
		v := g.genExpr(f.Value)
		fmt.Fprintf(&g.out, "\tcall $fern_field_set(l %s, %q, l %s)\n", t, f.Name, v)
	}
	return t
}

func (g *Generator) genListComp(n ast.ListComp) string {
	iter := g.genExpr(n.Iter)
	result := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =l call $fern_list_new(w 0)\n", result)
	length := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =w call $fern_list_length(l %s)\n", length, iter)
	idx := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =w copy 0\n", idx)
	headL, bodyL, skipL, endL := g.freshLabel(), g.freshLabel(), g.freshLabel(), g.freshLabel()
	fmt.Fprintf(&g.out, "\tjmp %s\n%s\n", headL, headL)
	cont := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =w cultw %s, %s\n", cont, idx, length)
	fmt.Fprintf(&g.out, "\tjnz %s, %s, %s\n%s\n", cont, bodyL, endL, bodyL)
	item := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =l call $fern_list_get(l %s, w %s)\n", item, iter, idx)
	fmt.Fprintf(&g.out, "\t%%%s =l copy %s\n", n.Var, item)
	g.wide[n.Var] = true
	if n.Cond != nil {
		cv := g.genExpr(n.Cond)
		keepL := g.freshLabel()
		fmt.Fprintf(&g.out, "\tjnz %s, %s, %s\n%s\n", cv, keepL, skipL, keepL)
	}
	bv := g.genExpr(n.Body)
	fmt.Fprintf(&g.out, "\tcall $fern_list_push(l %s, l %s)\n%s\n", result, bv, skipL)
	next := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =w add %s, 1\n", next, idx)
	fmt.Fprintf(&g.out, "\t%s =w copy %s\n\tjmp %s\n%s\n", idx, next, headL, endL)
	return result
}

func (g *Generator) genReceive(n ast.Receive) string {
	msg := g.freshTemp()
	fmt.Fprintf(&g.out, "\t%s =l call $fern_receive()\n", msg)
	joinL := g.freshLabel()
	result := g.freshTemp()
	for _, arm := range n.Arms {
		nextL := g.freshLabel()
		g.genPatternTest(arm.Pattern, msg, nextL)
		v := g.genExpr(arm.Body)
		fmt.Fprintf(&g.out, "\t%s =l copy %s\n\tjmp %s\n%s\n", result, v, joinL, nextL)
	}
	if n.After != nil {
		v := g.genExpr(n.AfterBody)
		fmt.Fprintf(&g.out, "\t%s =l copy %s\n", result, v)
	} else {
		fmt.Fprintf(&g.out, "\t%s =l copy 0\n", result)
	}
	fmt.Fprintf(&g.out, "\tjmp %s\n%s\n", joinL, joinL)
	return result
}
