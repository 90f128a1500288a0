// Package types implements Fern's type representation and the
// bidirectional Hindley-Milner-style checker described in spec.md §4.5:
// a Type distinct from ast.TypeExpr, a TypeEnv scope stack, and structural
// unification with in-place variable binding (union-find over a parent
// pointer, per §9's note that Type.Var.bound is the pointer-equivalent of
// an explicit union-find).
package types

import (
	"fmt"
	"strings"
)

// Kind discriminates the Type variants named in spec.md §3.
type Kind int

const (
	Int Kind = iota
	Float
	String
	Bool
	Unit
	Var
	Con
	Fn
	Tuple
	ErrorKind
)

// Type is Fern's internal type representation. Var is the only mutable
// variant: Bound starts nil and, once set by Unify, is never unset (§3
// Invariants) — Resolve follows the chain to a concrete type or to an
// still-unbound Var.
type Type struct {
	Kind     Kind
	Name     string  // Var name (for diagnostics), Con name
	ID       int     // Var id, assigned by Env.FreshVar
	Bound    *Type   // Var: the type this variable has been unified to
	Args     []*Type // Con: type arguments, e.g. List(a) -> Args[0] = a
	Params   []*Type // Fn: parameter types
	Result   *Type   // Fn: result type
	Elements []*Type // Tuple: element types
	Message  string  // ErrorKind: the reason this type could not be determined
}

func IntT() *Type    { return &Type{Kind: Int} }
func FloatT() *Type  { return &Type{Kind: Float} }
func StringT() *Type { return &Type{Kind: String} }
func BoolT() *Type   { return &Type{Kind: Bool} }
func UnitT() *Type   { return &Type{Kind: Unit} }

func ConT(name string, args ...*Type) *Type { return &Type{Kind: Con, Name: name, Args: args} }
func FnT(params []*Type, result *Type) *Type {
	return &Type{Kind: Fn, Params: params, Result: result}
}
func TupleT(elements ...*Type) *Type { return &Type{Kind: Tuple, Elements: elements} }
func ErrorT(format string, args ...any) *Type {
	return &Type{Kind: ErrorKind, Message: fmt.Sprintf(format, args...)}
}

func ListT(elem *Type) *Type          { return ConT("List", elem) }
func ResultT(ok, err *Type) *Type     { return ConT("Result", ok, err) }
func MapT(key, value *Type) *Type     { return ConT("Map", key, value) }
func PidT(msg *Type) *Type            { return ConT("Pid", msg) }

// IsError reports whether t (after resolving) is the ErrorKind sentinel.
func IsError(t *Type) bool { return Resolve(t).Kind == ErrorKind }

// Resolve follows a Var's Bound chain to either a concrete type or an
// unbound Var; it never mutates the chain it walks (no path compression),
// matching §3's "chain length to a concrete type is finite" invariant
// without claiming amortized-constant lookup the reference never promised.
func Resolve(t *Type) *Type {
	for t != nil && t.Kind == Var && t.Bound != nil {
		t = t.Bound
	}
	return t
}

func (t *Type) String() string {
	t = Resolve(t)
	switch t.Kind {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case Bool:
		return "Bool"
	case Unit:
		return "Unit"
	case Var:
		if t.Name != "" {
			return t.Name
		}
		return fmt.Sprintf("t%d", t.ID)
	case Con:
		if len(t.Args) == 0 {
			return t.Name
		}
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%s(%s)", t.Name, strings.Join(parts, ", "))
	case Fn:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Result.String())
	case Tuple:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = e.String()
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
	case ErrorKind:
		return fmt.Sprintf("<error: %s>", t.Message)
	default:
		return "<unknown type>"
	}
}

func isNumeric(k Kind) bool { return k == Int || k == Float }

// Unify structurally unifies a and b, binding free Vars in place (with an
// occurs check) and following already-bound Vars transitively. It returns
// the unified type, or an ErrorKind Type describing the mismatch — it
// never panics, matching the checker's "accumulate, keep walking" policy
// (§4.5, §7).
func Unify(a, b *Type) *Type {
	a, b = Resolve(a), Resolve(b)

	if a.Kind == ErrorKind {
		return a
	}
	if b.Kind == ErrorKind {
		return b
	}
	if a.Kind == Var && b.Kind == Var && a.ID == b.ID {
		return a
	}
	if a.Kind == Var {
		return bindVar(a, b)
	}
	if b.Kind == Var {
		return bindVar(b, a)
	}
	if a.Kind != b.Kind {
		return ErrorT("cannot unify %s with %s", a, b)
	}

	switch a.Kind {
	case Int, Float, String, Bool, Unit:
		return a
	case Con:
		if a.Name != b.Name || len(a.Args) != len(b.Args) {
			return ErrorT("cannot unify %s with %s", a, b)
		}
		args := make([]*Type, len(a.Args))
		for i := range a.Args {
			u := Unify(a.Args[i], b.Args[i])
			if u.Kind == ErrorKind {
				return u
			}
			args[i] = u
		}
		return ConT(a.Name, args...)
	case Fn:
		if len(a.Params) != len(b.Params) {
			return ErrorT("cannot unify %s with %s: arity mismatch", a, b)
		}
		params := make([]*Type, len(a.Params))
		for i := range a.Params {
			u := Unify(a.Params[i], b.Params[i])
			if u.Kind == ErrorKind {
				return u
			}
			params[i] = u
		}
		res := Unify(a.Result, b.Result)
		if res.Kind == ErrorKind {
			return res
		}
		return FnT(params, res)
	case Tuple:
		if len(a.Elements) != len(b.Elements) {
			return ErrorT("cannot unify %s with %s: length mismatch", a, b)
		}
		elems := make([]*Type, len(a.Elements))
		for i := range a.Elements {
			u := Unify(a.Elements[i], b.Elements[i])
			if u.Kind == ErrorKind {
				return u
			}
			elems[i] = u
		}
		return TupleT(elems...)
	default:
		return ErrorT("cannot unify %s with %s", a, b)
	}
}

func bindVar(v, t *Type) *Type {
	if t.Kind == Var && t.ID == v.ID {
		return v
	}
	if occurs(v, t) {
		return ErrorT("occurs check failed: %s occurs in %s", v, t)
	}
	v.Bound = t
	return t
}

func occurs(v, t *Type) bool {
	t = Resolve(t)
	switch t.Kind {
	case Var:
		return t.ID == v.ID
	case Con:
		for _, a := range t.Args {
			if occurs(v, a) {
				return true
			}
		}
		return false
	case Fn:
		for _, p := range t.Params {
			if occurs(v, p) {
				return true
			}
		}
		return occurs(v, t.Result)
	case Tuple:
		for _, e := range t.Elements {
			if occurs(v, e) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
