package lisp

// Env is one frame of an environment chain. Lookups walk outward through
// parent frames; the outermost frame is the global one.
type Env struct {
	vars   map[Atom]Value
	parent *Env
}

// NewEnv creates an empty frame whose lookups fall back to parent.
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent}
}

// Lookup returns the innermost binding of a.
func (env *Env) Lookup(a Atom) (Value, bool) {
	for ; env != nil; env = env.parent {
		if v, ok := env.vars[a]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds a to v in this frame, shadowing any outer binding.
func (env *Env) Set(a Atom, v Value) {
	if env.vars == nil {
		env.vars = make(map[Atom]Value)
	}
	env.vars[a] = v
}

// Depth counts the frames in the chain.
func (env *Env) Depth() (n int) {
	for ; env != nil; env = env.parent {
		n++
	}
	return n
}
