package lisp

import (
	"context"

	"github.com/jcorbin/tinylisp/internal/flushio"
	"github.com/jcorbin/tinylisp/internal/panicerr"
)

// Machine evaluates expressions against a single global frame. It is not
// safe for concurrent use: only define ever writes the global frame, and
// evaluations are assumed to run one at a time.
type Machine struct {
	logging

	global *Env
	out    flushio.WriteFlusher
	names  Namer
}

// New creates a machine whose global frame holds the built in primitives
// plus any host bindings given as options.
func New(opts ...Option) *Machine {
	m := &Machine{
		global: NewEnv(nil),
		out:    flushio.Discard,
		names:  reservedNamer,
	}
	for _, opt := range opts {
		if g, ok := opt.(globalOption); ok {
			g.apply(m)
		}
	}
	m.installPrimitives()
	for _, opt := range opts {
		if _, ok := opt.(globalOption); !ok && opt != nil {
			opt.apply(m)
		}
	}
	return m
}

// Global returns the global frame.
func (m *Machine) Global() *Env { return m.global }

// Names returns the namer used for printing.
func (m *Machine) Names() Namer { return m.names }

// Eval evaluates expr in env, or in the global frame if env is nil.
// Any runtime failure aborts the whole evaluation; it is returned as an
// *Error naming the offending expression.
func (m *Machine) Eval(ctx context.Context, expr Value, env *Env) (Value, error) {
	if env == nil {
		env = m.global
	}
	var result Value
	err := m.guard(func() {
		result = m.eval(ctx, expr, env)
	})
	return result, err
}

// Exec evaluates each top level form of program, in order, against the
// global frame; it returns the value of the last form. A program that is
// not a list is evaluated as a single form.
func (m *Machine) Exec(ctx context.Context, program Value) (Value, error) {
	forms, ok := program.(List)
	if !ok {
		return m.Eval(ctx, program, nil)
	}
	var result Value = Nil
	err := m.guard(func() {
		for i, form := range forms {
			if m.tracing() {
				m.logf("#", "form[%v] %v", i, m.sprint(form))
			}
			result = m.eval(ctx, form, m.global)
		}
	})
	return result, err
}

// Call applies the function bound to fn in the global frame to already
// evaluated host arguments, as in (fn args...).
func (m *Machine) Call(ctx context.Context, fn Atom, args ...Value) (Value, error) {
	form := make(List, 0, len(args)+1)
	form = append(form, fn)
	for _, arg := range args {
		// host values must not be looked up or applied again
		switch arg.(type) {
		case List, Atom:
			arg = List{OpQuote, arg}
		}
		form = append(form, arg)
	}
	return m.Eval(ctx, form, nil)
}

// Flush flushes any buffered print output.
func (m *Machine) Flush() error { return m.out.Flush() }

func (m *Machine) guard(f func()) error {
	err := panicerr.Recover("lisp", func() error {
		f()
		return nil
	})
	if ferr := m.out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		m.logf("!", "halt: %v", err)
	}
	return err
}

func (m *Machine) halt(err error) {
	if le, ok := err.(*Error); ok && le.Names == nil {
		le.Names = m.names
	}
	panicerr.Halt(err)
}

func (m *Machine) sprint(v Value) string { return Sprint(v, m.names) }
