package types

import (
	"fmt"
	"log/slog"

	"github.com/fern-lang/fern/internal/ast"
	"github.com/fern-lang/fern/internal/token"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Checker walks a validated AST once, inferring a Type for every
// expression/statement under a scoped Env (§4.5). It is not reentrant.
type Checker struct {
	env        *Env
	errors     []*Error
	logger     *slog.Logger
	fnResult   *Type // enclosing function's declared result type, for Try/Return
}

// NewChecker builds a checker with an empty environment. The built-ins
// print, println, Ok and Err are not declared in it; inferCall recognizes
// calls to them by name — the only "standard library" surface the type
// checker itself needs to know about (everything else is a plain call).
func NewChecker(logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Checker{env: NewEnv(), logger: logger}
	return c
}

// Check type-checks every top-level statement and returns every
// accumulated diagnostic (possibly empty).
func (c *Checker) Check(file *ast.File) []*Error {
	// First pass: register function signatures so forward references and
	// recursive calls resolve without a second file-level pass.
	for _, s := range file.Stmts {
		if fn, ok := s.(ast.Fn); ok {
			c.declareFn(fn)
		}
	}
	for _, s := range file.Stmts {
		c.checkStmt(s)
	}
	return c.errors
}

func (c *Checker) errorf(pos token.Position, format string, args ...any) *Type {
	msg := fmt.Sprintf(format, args...)
	c.errors = append(c.errors, &Error{Message: msg, Pos: pos})
	c.logger.Debug("type error", "pos", pos.String(), "message", msg)
	return &Type{Kind: ErrorKind, Message: msg}
}

func (c *Checker) declareFn(fn ast.Fn) {
	if fn.Params != nil {
		params := make([]*Type, len(fn.Params))
		for i, p := range fn.Params {
			if p.Type != nil {
				params[i] = c.fromTypeExpr(p.Type)
			} else {
				params[i] = c.env.FreshVar(p.Name)
			}
		}
		result := c.env.FreshVar(fn.Name + ".result")
		if fn.ReturnType != nil {
			result = c.fromTypeExpr(fn.ReturnType)
		}
		c.env.Define(fn.Name, FnT(params, result))
		return
	}
	// Clause form: arity is the first clause's parameter count; every
	// clause is checked against the same declared signature.
	if len(fn.Clauses) > 0 {
		arity := len(fn.Clauses[0].Params)
		params := make([]*Type, arity)
		for i := range params {
			params[i] = c.env.FreshVar(fn.Name)
		}
		result := c.env.FreshVar(fn.Name + ".result")
		if fn.ReturnType != nil {
			result = c.fromTypeExpr(fn.ReturnType)
		}
		c.env.Define(fn.Name, FnT(params, result))
	}
}

// fromTypeExpr lowers a surface ast.TypeExpr annotation to an internal
// Type. Unknown named types are treated as zero-argument constructors
// (Con), which unify successfully with themselves.
func (c *Checker) fromTypeExpr(te ast.TypeExpr) *Type {
	switch n := te.(type) {
	case ast.NamedType:
		switch n.Name {
		case "Int":
			return IntT()
		case "Float":
			return FloatT()
		case "String":
			return StringT()
		case "Bool":
			return BoolT()
		case "Unit":
			return UnitT()
		default:
			if len(n.Args) == 0 {
				if t, ok := c.env.LookupType(n.Name); ok {
					return t
				}
				return ConT(n.Name)
			}
			args := make([]*Type, len(n.Args))
			for i, a := range n.Args {
				args[i] = c.fromTypeExpr(a)
			}
			return ConT(n.Name, args...)
		}
	case ast.FunctionType:
		params := make([]*Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = c.fromTypeExpr(p)
		}
		return FnT(params, c.fromTypeExpr(n.Return))
	case ast.TupleType:
		elems := make([]*Type, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = c.fromTypeExpr(e)
		}
		return TupleT(elems...)
	default:
		return ErrorT("unknown type annotation")
	}
}

func (c *Checker) checkStmt(s ast.Stmt) {
	pos := s.Position()
	switch n := s.(type) {
	case ast.Let:
		valType := c.infer(n.Value)
		if n.Type != nil {
			ann := c.fromTypeExpr(n.Type)
			u := Unify(ann, valType)
			if IsError(u) {
				c.errorf(pos, "let binding type mismatch: %s", u.Message)
			} else {
				valType = u
			}
		}
		c.bindPattern(n.Pattern, valType)
		if n.Else != nil {
			c.infer(n.Else)
		}
	case ast.Return:
		if n.Value != nil {
			vt := c.infer(n.Value)
			if c.fnResult != nil {
				if u := Unify(c.fnResult, vt); IsError(u) {
					c.errorf(pos, "return type mismatch: %s", u.Message)
				}
			}
		}
		if n.Cond != nil {
			c.expectBool(n.Cond)
		}
	case ast.ExprStmt:
		c.infer(n.X)
	case ast.Fn:
		c.checkFn(n)
	case ast.Defer:
		c.infer(n.X)
	case ast.Impl:
		for _, m := range n.Methods {
			c.checkFn(m)
		}
	case ast.TypeDef:
		c.env.DefineType(n.Name, ConT(n.Name))
	case ast.Import, ast.Break, ast.Continue, ast.Trait, ast.Newtype, ast.Module:
		// No type-level obligations beyond what the validator already
		// checked structurally.
	}
}

func (c *Checker) checkFn(fn ast.Fn) {
	sig, ok := c.env.Lookup(fn.Name)
	if !ok {
		c.declareFn(fn)
		sig, _ = c.env.Lookup(fn.Name)
	}
	sigT := Resolve(sig)

	prevResult := c.fnResult
	c.fnResult = sigT.Result
	defer func() { c.fnResult = prevResult }()

	if fn.Params != nil {
		c.env.Push()
		for i, p := range fn.Params {
			c.env.Define(p.Name, sigT.Params[i])
		}
		bodyT := c.infer(fn.Body)
		if u := Unify(sigT.Result, bodyT); IsError(u) {
			c.errorf(fn.Position(), "fn %s body type %s does not match declared result %s", fn.Name, bodyT, sigT.Result)
		}
		c.env.Pop()
		return
	}
	for _, clause := range fn.Clauses {
		c.env.Push()
		for i, p := range clause.Params {
			c.bindPattern(p, sigT.Params[i])
		}
		bodyT := c.infer(clause.Body)
		if u := Unify(sigT.Result, bodyT); IsError(u) {
			c.errorf(fn.Position(), "fn %s clause type %s does not match declared result %s", fn.Name, bodyT, sigT.Result)
		}
		c.env.Pop()
	}
}

func (c *Checker) expectBool(e ast.Expr) *Type {
	t := c.infer(e)
	if u := Unify(t, BoolT()); IsError(u) {
		return c.errorf(e.Position(), "expected Bool, found %s", t)
	}
	return BoolT()
}

// infer implements the per-expression rules of §4.5.
func (c *Checker) infer(e ast.Expr) *Type {
	pos := e.Position()
	switch n := e.(type) {
	case ast.IntLit:
		return IntT()
	case ast.FloatLit:
		return FloatT()
	case ast.StringLit:
		return StringT()
	case ast.BoolLit:
		return BoolT()
	case ast.Ident:
		return c.lookupIdent(n)
	case ast.Binary:
		return c.inferBinary(n)
	case ast.Unary:
		return c.inferUnary(n)
	case ast.Call:
		return c.inferCall(n)
	case ast.If:
		c.expectBool(n.Cond)
		thenT := c.infer(n.Then)
		if n.Else == nil {
			return UnitT()
		}
		elseT := c.infer(n.Else)
		u := Unify(thenT, elseT)
		if IsError(u) {
			return c.errorf(pos, "if branches disagree: %s", u.Message)
		}
		return u
	case ast.Match:
		return c.inferMatch(n)
	case ast.Block:
		c.env.Push()
		defer c.env.Pop()
		for _, s := range n.Stmts {
			c.checkStmt(s)
		}
		if n.Final == nil {
			return UnitT()
		}
		return c.infer(n.Final)
	case ast.List:
		if len(n.Elements) == 0 {
			return ListT(c.env.FreshVar("elem"))
		}
		elemT := c.infer(n.Elements[0])
		for _, el := range n.Elements[1:] {
			t := c.infer(el)
			u := Unify(elemT, t)
			if IsError(u) {
				return c.errorf(pos, "list elements disagree: %s", u.Message)
			}
			elemT = u
		}
		return ListT(elemT)
	case ast.Bind:
		vt := c.infer(n.Value)
		c.env.Define(n.Name, vt)
		return vt
	case ast.With:
		return c.inferWith(n)
	case ast.Dot:
		c.infer(n.Object)
		return c.env.FreshVar(n.Field)
	case ast.Range:
		if u := Unify(c.infer(n.Start), IntT()); IsError(u) {
			c.errorf(pos, "range bounds must be Int")
		}
		if n.End != nil {
			if u := Unify(c.infer(n.End), IntT()); IsError(u) {
				c.errorf(pos, "range bounds must be Int")
			}
		}
		return ConT("Range", IntT())
	case ast.For:
		iterT := Resolve(c.infer(n.Iter))
		elemT := c.env.FreshVar(n.Var)
		if iterT.Kind == Con && iterT.Name == "List" && len(iterT.Args) == 1 {
			elemT = iterT.Args[0]
		}
		c.env.Push()
		c.env.Define(n.Var, elemT)
		c.infer(n.Body)
		c.env.Pop()
		return UnitT()
	case ast.While:
		c.expectBool(n.Cond)
		c.infer(n.Body)
		return UnitT()
	case ast.Loop:
		c.infer(n.Body)
		return UnitT()
	case ast.Lambda:
		return c.inferLambda(n)
	case ast.InterpString:
		for _, ex := range n.Exprs {
			c.infer(ex)
		}
		return StringT()
	case ast.Map:
		if len(n.Entries) == 0 {
			return MapT(c.env.FreshVar("k"), c.env.FreshVar("v"))
		}
		keyT := c.infer(n.Entries[0].Key)
		valT := c.infer(n.Entries[0].Value)
		for _, entry := range n.Entries[1:] {
			if u := Unify(keyT, c.infer(entry.Key)); IsError(u) {
				c.errorf(pos, "map keys disagree: %s", u.Message)
			}
			if u := Unify(valT, c.infer(entry.Value)); IsError(u) {
				c.errorf(pos, "map values disagree: %s", u.Message)
			}
		}
		return MapT(keyT, valT)
	case ast.Tuple:
		elems := make([]*Type, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = c.infer(el)
		}
		return TupleT(elems...)
	case ast.RecordUpdate:
		base := c.infer(n.Base)
		for _, f := range n.Fields {
			c.infer(f.Value)
		}
		return base
	case ast.ListComp:
		iterT := Resolve(c.infer(n.Iter))
		elemT := c.env.FreshVar(n.Var)
		if iterT.Kind == Con && iterT.Name == "List" && len(iterT.Args) == 1 {
			elemT = iterT.Args[0]
		}
		c.env.Push()
		c.env.Define(n.Var, elemT)
		bodyT := c.infer(n.Body)
		if n.Cond != nil {
			c.expectBool(n.Cond)
		}
		c.env.Pop()
		return ListT(bodyT)
	case ast.Index:
		objT := Resolve(c.infer(n.Object))
		c.infer(n.Idx)
		if objT.Kind == Con && (objT.Name == "List" || objT.Name == "Map") && len(objT.Args) > 0 {
			return objT.Args[len(objT.Args)-1]
		}
		return c.env.FreshVar("elem")
	case ast.Spawn:
		fnT := c.infer(n.Fn)
		msg := c.env.FreshVar("msg")
		_ = fnT
		return PidT(msg)
	case ast.Send:
		pidT := Resolve(c.infer(n.Pid))
		msgT := c.infer(n.Msg)
		if pidT.Kind == Con && pidT.Name == "Pid" && len(pidT.Args) == 1 {
			if u := Unify(pidT.Args[0], msgT); IsError(u) {
				c.errorf(pos, "send message type mismatch: %s", u.Message)
			}
		}
		return UnitT()
	case ast.Receive:
		return c.inferReceive(n)
	case ast.Try:
		return c.inferTry(n)
	default:
		return c.errorf(pos, "cannot infer type of %T", n)
	}
}

func (c *Checker) lookupIdent(n ast.Ident) *Type {
	if t, ok := c.env.Lookup(n.Name); ok {
		return t
	}
	// Suggest the visible name within edit distance 2, closest first, ties
	// broken alphabetically so the message does not depend on map order.
	best, bestDist := "", 3
	for _, name := range c.env.KnownNames() {
		d := fuzzy.LevenshteinDistance(n.Name, name)
		if d < bestDist || (d == bestDist && best != "" && name < best) {
			best, bestDist = name, d
		}
	}
	if best != "" {
		return c.errorf(n.Position(), "unknown identifier %q, did you mean %q?", n.Name, best)
	}
	return c.errorf(n.Position(), "unknown identifier %q", n.Name)
}

func (c *Checker) inferBinary(n ast.Binary) *Type {
	lt := c.infer(n.Left)
	rt := c.infer(n.Right)
	lr, rr := Resolve(lt), Resolve(rt)

	switch n.Op {
	case "+":
		if lr.Kind == String && rr.Kind == String {
			return StringT()
		}
		return c.numericBinary(n, lr, rr)
	case "-", "*":
		return c.numericBinary(n, lr, rr)
	case "/", "%":
		if u := Unify(lr, IntT()); IsError(u) {
			return c.errorf(n.Position(), "%s requires Int operands", n.Op)
		}
		if u := Unify(rr, IntT()); IsError(u) {
			return c.errorf(n.Position(), "%s requires Int operands", n.Op)
		}
		return IntT()
	case "**":
		return c.numericBinary(n, lr, rr)
	case "==", "!=":
		if u := Unify(lr, rr); IsError(u) {
			return c.errorf(n.Position(), "cannot compare %s with %s", lr, rr)
		}
		return BoolT()
	case "<", "<=", ">", ">=":
		if u := Unify(lr, rr); IsError(u) {
			return c.errorf(n.Position(), "cannot compare %s with %s", lr, rr)
		}
		if !isNumeric(lr.Kind) && lr.Kind != String {
			return c.errorf(n.Position(), "%s requires numeric or String operands", n.Op)
		}
		return BoolT()
	case "and", "or":
		if u := Unify(lr, BoolT()); IsError(u) {
			return c.errorf(n.Position(), "%s requires Bool operands", n.Op)
		}
		if u := Unify(rr, BoolT()); IsError(u) {
			return c.errorf(n.Position(), "%s requires Bool operands", n.Op)
		}
		return BoolT()
	case "|>":
		// x |> f desugars to f(x); the checker only needs f to be callable.
		if rr.Kind == Fn && len(rr.Params) >= 1 {
			if u := Unify(rr.Params[0], lr); IsError(u) {
				return c.errorf(n.Position(), "piped value type mismatch: %s", u.Message)
			}
			return rr.Result
		}
		return c.errorf(n.Position(), "right side of |> must be callable, found %s", rr)
	default:
		return c.errorf(n.Position(), "unknown binary operator %q", n.Op)
	}
}

func (c *Checker) numericBinary(n ast.Binary, lr, rr *Type) *Type {
	if u := Unify(lr, rr); IsError(u) {
		return c.errorf(n.Position(), "%s requires operands of the same numeric type", n.Op)
	}
	if !isNumeric(Resolve(lr).Kind) {
		if Resolve(lr).Kind == Var {
			if u := Unify(lr, IntT()); !IsError(u) {
				return u
			}
		}
		return c.errorf(n.Position(), "%s requires Int or Float operands", n.Op)
	}
	return Resolve(lr)
}

func (c *Checker) inferUnary(n ast.Unary) *Type {
	t := Resolve(c.infer(n.Operand))
	switch n.Op {
	case "-":
		if !isNumeric(t.Kind) {
			return c.errorf(n.Position(), "unary - requires a numeric operand, found %s", t)
		}
		return t
	case "not":
		if u := Unify(t, BoolT()); IsError(u) {
			return c.errorf(n.Position(), "not requires a Bool operand, found %s", t)
		}
		return BoolT()
	default:
		return c.errorf(n.Position(), "unknown unary operator %q", n.Op)
	}
}

func (c *Checker) inferCall(n ast.Call) *Type {
	// Ok/Err are the Result constructors; they are generic, so they are
	// special-cased rather than declared as ordinary Fn bindings.
	if ident, ok := n.Fn.(ast.Ident); ok {
		switch ident.Name {
		case "Ok":
			if len(n.Args) == 1 {
				okT := c.infer(n.Args[0].Value)
				return ResultT(okT, c.env.FreshVar("err"))
			}
		case "Err":
			if len(n.Args) == 1 {
				errT := c.infer(n.Args[0].Value)
				return ResultT(c.env.FreshVar("ok"), errT)
			}
		case "print", "println":
			for _, a := range n.Args {
				c.infer(a.Value)
			}
			return UnitT()
		}
	}

	calleeT := Resolve(c.infer(n.Fn))
	argTypes := make([]*Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = c.infer(a.Value)
	}
	if calleeT.Kind == Var {
		result := c.env.FreshVar("call.result")
		if u := Unify(calleeT, FnT(argTypes, result)); IsError(u) {
			return c.errorf(n.Position(), "call type mismatch: %s", u.Message)
		}
		return result
	}
	if calleeT.Kind != Fn {
		return c.errorf(n.Position(), "cannot call non-function type %s", calleeT)
	}
	if len(calleeT.Params) != len(argTypes) {
		return c.errorf(n.Position(), "wrong number of arguments: expected %d, found %d", len(calleeT.Params), len(argTypes))
	}
	for i, pt := range calleeT.Params {
		if u := Unify(pt, argTypes[i]); IsError(u) {
			c.errorf(n.Args[i].Value.Position(), "argument %d type mismatch: %s", i+1, u.Message)
		}
	}
	return calleeT.Result
}

func (c *Checker) inferMatch(n ast.Match) *Type {
	scrutT := c.infer(n.Scrutinee)
	if len(n.Arms) == 0 {
		return UnitT()
	}
	var result *Type
	for _, arm := range n.Arms {
		c.env.Push()
		c.matchPattern(arm.Pattern, scrutT)
		if arm.Guard != nil {
			c.expectBool(arm.Guard)
		}
		bodyT := c.infer(arm.Body)
		c.env.Pop()
		if result == nil {
			result = bodyT
			continue
		}
		u := Unify(result, bodyT)
		if IsError(u) {
			c.errorf(arm.Body.Position(), "match arms disagree: %s", u.Message)
			continue
		}
		result = u
	}
	return result
}

// matchPattern binds pattern n's identifiers against scrutT without
// re-checking it against Unify (patterns decompose structurally rather
// than unify wholesale, since a Constructor pattern's arg types are not
// generally known without a declared variant table).
func (c *Checker) matchPattern(p ast.Pattern, scrutT *Type) {
	c.bindPattern(p, scrutT)
}

func (c *Checker) bindPattern(p ast.Pattern, t *Type) {
	switch n := p.(type) {
	case ast.PatIdent:
		c.env.Define(n.Name, t)
	case ast.PatWildcard:
	case ast.PatLit:
		lt := c.infer(n.Value)
		if u := Unify(lt, t); IsError(u) {
			c.errorf(n.Position(), "pattern literal type mismatch: %s", u.Message)
		}
	case ast.PatConstructor:
		rt := Resolve(t)
		if rt.Kind == Con && len(n.Args) == len(rt.Args) {
			for i, a := range n.Args {
				c.bindPattern(a, rt.Args[i])
			}
			return
		}
		for _, a := range n.Args {
			c.bindPattern(a, c.env.FreshVar("ctor.arg"))
		}
	case ast.PatTuple:
		rt := Resolve(t)
		if rt.Kind == Tuple && len(rt.Elements) == len(n.Elements) {
			for i, el := range n.Elements {
				c.bindPattern(el, rt.Elements[i])
			}
			return
		}
		for _, el := range n.Elements {
			c.bindPattern(el, c.env.FreshVar("tuple.elem"))
		}
	case ast.PatRest:
		if n.Name != "" {
			c.env.Define(n.Name, t)
		}
	}
}

func (c *Checker) inferWith(n ast.With) *Type {
	var errT *Type
	for _, b := range n.Bindings {
		vt := Resolve(c.infer(b.Value))
		var okT *Type
		if vt.Kind == Con && vt.Name == "Result" && len(vt.Args) == 2 {
			okT = vt.Args[0]
			if errT == nil {
				errT = vt.Args[1]
			} else if u := Unify(errT, vt.Args[1]); !IsError(u) {
				errT = u
			}
		} else {
			c.errorf(b.Value.Position(), "with binding %s must be a Result, found %s", b.Name, vt)
			okT = c.env.FreshVar(b.Name)
		}
		c.env.Define(b.Name, okT)
	}
	bodyT := c.infer(n.Body)
	for _, arm := range n.ElseArms {
		c.env.Push()
		if errT != nil {
			c.bindPattern(arm.Pattern, errT)
		} else {
			c.bindPattern(arm.Pattern, c.env.FreshVar("err"))
		}
		armT := c.infer(arm.Body)
		c.env.Pop()
		if u := Unify(bodyT, armT); IsError(u) {
			c.errorf(arm.Body.Position(), "with else-arm type disagrees with body: %s", u.Message)
		}
	}
	return bodyT
}

func (c *Checker) inferLambda(n ast.Lambda) *Type {
	c.env.Push()
	params := make([]*Type, len(n.Params))
	for i, name := range n.Params {
		params[i] = c.env.FreshVar(name)
		c.env.Define(name, params[i])
	}
	bodyT := c.infer(n.Body)
	c.env.Pop()
	return FnT(params, bodyT)
}

func (c *Checker) inferReceive(n ast.Receive) *Type {
	msgT := c.env.FreshVar("msg")
	var result *Type
	for _, arm := range n.Arms {
		c.env.Push()
		c.bindPattern(arm.Pattern, msgT)
		bodyT := c.infer(arm.Body)
		c.env.Pop()
		if result == nil {
			result = bodyT
		} else if u := Unify(result, bodyT); !IsError(u) {
			result = u
		}
	}
	if n.After != nil {
		if u := Unify(c.infer(n.After), IntT()); IsError(u) {
			c.errorf(n.After.Position(), "receive after-duration must be Int")
		}
		afterT := c.infer(n.AfterBody)
		if result == nil {
			result = afterT
		} else if u := Unify(result, afterT); !IsError(u) {
			result = u
		}
	}
	if result == nil {
		return UnitT()
	}
	return result
}

// inferTry implements §4.5's Try rule: the operand must be Result(a, err);
// the enclosing function's declared result must also be Result(_, err);
// the expression's own type is a.
func (c *Checker) inferTry(n ast.Try) *Type {
	opT := Resolve(c.infer(n.Operand))
	if opT.Kind != Con || opT.Name != "Result" || len(opT.Args) != 2 {
		return c.errorf(n.Position(), "? requires a Result operand, found %s", opT)
	}
	if c.fnResult != nil {
		fr := Resolve(c.fnResult)
		if fr.Kind == Con && fr.Name == "Result" && len(fr.Args) == 2 {
			if u := Unify(fr.Args[1], opT.Args[1]); IsError(u) {
				c.errorf(n.Position(), "? error type does not match enclosing function's Result error type: %s", u.Message)
			}
		} else if fr.Kind != Var {
			c.errorf(n.Position(), "? used outside a function returning Result")
		}
	}
	return opT.Args[0]
}
