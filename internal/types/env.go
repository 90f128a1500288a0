package types

// scope maps names to types within one lexical level.
type scope struct {
	values map[string]*Type
	typeNames map[string]*Type
}

func newScope() *scope {
	return &scope{values: map[string]*Type{}, typeNames: map[string]*Type{}}
}

// Env is a stack of scopes plus the fresh type-variable counter (§3
// "TypeEnv"). Push/Pop bracket blocks, lambdas, function bodies, and match
// arm bodies per §4.5.
type Env struct {
	scopes  []*scope
	counter int
}

// NewEnv creates an environment with one top-level scope.
func NewEnv() *Env {
	return &Env{scopes: []*scope{newScope()}}
}

func (e *Env) Push() { e.scopes = append(e.scopes, newScope()) }

func (e *Env) Pop() {
	if len(e.scopes) > 1 {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

// Define inserts name into the top scope, shadowing any outer binding
// (§3 "Shadowing is allowed within a scope").
func (e *Env) Define(name string, t *Type) {
	e.scopes[len(e.scopes)-1].values[name] = t
}

func (e *Env) DefineType(name string, t *Type) {
	e.scopes[len(e.scopes)-1].typeNames[name] = t
}

// Lookup searches outer-to-inner... in practice innermost-first, which is
// the only order that implements shadowing correctly; "outer-to-inner" in
// §3 describes scope *creation* order, not search order.
func (e *Env) Lookup(name string) (*Type, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if t, ok := e.scopes[i].values[name]; ok {
			return t, true
		}
	}
	return nil, false
}

func (e *Env) LookupType(name string) (*Type, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if t, ok := e.scopes[i].typeNames[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// KnownNames returns every value name visible from the innermost scope,
// used to build "did you mean" suggestions on an unknown identifier.
func (e *Env) KnownNames() []string {
	seen := map[string]bool{}
	var out []string
	for i := len(e.scopes) - 1; i >= 0; i-- {
		for name := range e.scopes[i].values {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// FreshVar yields a new unbound type variable with a unique id.
func (e *Env) FreshVar(hint string) *Type {
	e.counter++
	return &Type{Kind: Var, Name: hint, ID: e.counter}
}
