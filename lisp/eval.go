package lisp

import (
	"context"
	"fmt"
)

// eval is the evaluator proper. Every tail position (eval, if, let, and
// function bodies) loops rather than recursing, so tail calls consume no
// Go stack.
//
// Applying a function pushes a fresh frame onto the calling chain. When
// the current frame was itself pushed by this loop, nothing but the loop
// can still observe it, so a tail call rebinds into it in place instead:
// new bindings shadow the old ones exactly as a child frame would, while
// the chain stays at constant length.
func (m *Machine) eval(ctx context.Context, x Value, env *Env) Value {
	var owned *Env
	for {
		list, isList := x.(List)
		if !isList {
			if a, isAtom := x.(Atom); isAtom {
				if v, bound := env.Lookup(a); bound {
					return v
				}
			}
			return x
		}
		if len(list) == 0 {
			return list
		}

		if m.tracing() {
			m.logf(">", "%v", m.sprint(list))
		}

		op := m.sub(ctx, list[0], env)
		args := list[1:]

		switch f := op.(type) {
		case Atom:
			if !IsSpecial(f) {
				m.halt(&Error{
					Errno:  UnboundSpecialForm,
					Expr:   list,
					Detail: fmt.Sprintf("%v is not bound to a function", m.sprint(f)),
				})
			}
			switch f {
			case OpEval:
				x = m.sub(ctx, arg(args, 0), env)
				continue

			case OpQuote:
				return arg(args, 0)

			case OpDefine:
				name := m.symbol(list, arg(args, 0))
				val := m.sub(ctx, arg(args, 1), m.global)
				m.global.Set(name, val)
				return val

			case OpIf:
				if Truthy(m.sub(ctx, arg(args, 0), env)) {
					x = arg(args, 1)
				} else {
					x = arg(args, 2)
				}
				continue

			case OpLet:
				name := m.symbol(list, arg(args, 0))
				val := m.sub(ctx, arg(args, 1), env)
				env.Set(name, val)
				if len(args) < 3 {
					return val
				}
				x = args[2]
				continue
			}

		case *Foreign:
			val, err := f.Call(ctx, m.evalArgs(ctx, args, env))
			if err != nil {
				m.halt(foreignError(list, f, err))
			}
			if val == nil {
				val = Nil
			}
			return val

		case List:
			params, body, quoted, ok := function(f)
			if !ok {
				m.halt(mismatch(list, "cannot apply %v", m.sprint(f)))
			}
			vals := args
			if !quoted {
				vals = m.evalArgs(ctx, args, env)
			}
			if env != owned {
				owned = NewEnv(env)
				env = owned
			}
			for i, param := range params {
				if i >= len(vals) {
					break
				}
				env.Set(m.symbol(f, param), vals[i])
			}
			if m.tracing() {
				m.logf("=", "call %v with %v at depth %v", m.sprint(params), m.sprint(vals), env.Depth())
			}
			x = body
			continue
		}

		m.halt(mismatch(list, "cannot apply %v", m.sprint(op)))
	}
}

func (m *Machine) evalArgs(ctx context.Context, args List, env *Env) List {
	if len(args) == 0 {
		return Nil
	}
	vals := make(List, len(args))
	for i, arg := range args {
		vals[i] = m.sub(ctx, arg, env)
	}
	return vals
}

// sub evaluates x outside of tail position, nesting its trace.
func (m *Machine) sub(ctx context.Context, x Value, env *Env) Value {
	if m.tracing() {
		defer m.nest()()
	}
	return m.eval(ctx, x, env)
}

func (m *Machine) symbol(form List, v Value) Atom {
	a, ok := v.(Atom)
	if !ok {
		m.halt(mismatch(form, "expected a symbol, got %v", m.sprint(v)))
	}
	return a
}

// arg returns the i-th argument, or Nil if there are not that many.
func arg(args List, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Nil
}

func foreignError(form List, f *Foreign, err error) error {
	if le, ok := err.(*Error); ok {
		if le.Expr == nil {
			le.Expr = form
		}
		return le
	}
	return &Error{Errno: ForeignFailure, Expr: form, Detail: f.String(), Err: err}
}
