package lisp

import (
	"io"

	"github.com/jcorbin/tinylisp/internal/flushio"
)

// Option configures a Machine.
type Option interface{ apply(m *Machine) }

// Options combines any number of options into one.
func Options(opts ...Option) Option { return options(opts) }

type options []Option

func (opts options) apply(m *Machine) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(m)
		}
	}
}

// WithOutput directs the print primitive to w.
func WithOutput(w io.Writer) Option { return outputOption{w} }

// WithTee additionally copies print output to w.
func WithTee(w io.Writer) Option { return teeOption{w} }

// WithLogf enables evaluation tracing through logfn.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// WithNamer names atoms in printed output and errors, typically with the
// compiler's symbol table.
func WithNamer(names Namer) Option { return namerOption{names} }

// WithForeign binds a host primitive into the given foreign slot.
func WithForeign(slot int, f *Foreign) Option { return foreignOption{ForeignAtom(slot), f} }

// WithBinding binds an arbitrary global.
func WithBinding(a Atom, v Value) Option { return bindingOption{a, v} }

// WithGlobal uses env as the global frame instead of a fresh one; the core
// primitives are still installed into it.
func WithGlobal(env *Env) Option { return globalOption{env} }

type withLogfn func(mess string, args ...interface{})
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type namerOption struct{ Namer }
type foreignOption struct {
	atom Atom
	f    *Foreign
}
type bindingOption struct {
	atom Atom
	v    Value
}
type globalOption struct{ *Env }

func (logfn withLogfn) apply(m *Machine) { m.logfn = logfn }

func (o outputOption) apply(m *Machine) {
	if m.out != nil {
		m.out.Flush()
	}
	m.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(m *Machine) {
	m.out = flushio.Tee(m.out, flushio.NewWriteFlusher(o.Writer))
}

func (o namerOption) apply(m *Machine) { m.names = o.Namer }

func (o foreignOption) apply(m *Machine) { m.global.Set(o.atom, o.f) }

func (o bindingOption) apply(m *Machine) { m.global.Set(o.atom, o.v) }

func (o globalOption) apply(m *Machine) {
	if o.Env != nil {
		m.global = o.Env
	}
}
