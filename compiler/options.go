package compiler

import "github.com/jcorbin/tinylisp/lisp"

// Option configures a Compiler.
type Option interface{ apply(c *Compiler) }

// Options combines any number of options into one.
func Options(opts ...Option) Option { return options(opts) }

// WithLogf traces compilation through logfn.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// WithMask overrides lisp.DefaultMask as the integer literal mask.
func WithMask(mask uint64) Option { return maskOption(mask) }

// WithPadding selects the word padding mode, PadLeading by default.
func WithPadding(pad Padding) Option { return padOption(pad) }

// WithForeign names the host primitives bound to consecutive foreign slots;
// an empty name leaves its slot unnamed.
func WithForeign(names ...string) Option { return foreignOption(names) }

// DefaultForeign are the host primitive names used when no WithForeign
// option is given.
var DefaultForeign = []string{"argv", "timer", "input"}

// WithName labels source locations reported in errors.
func WithName(name string) Option { return nameOption(name) }

type options []Option
type withLogfn func(mess string, args ...interface{})
type maskOption uint64
type padOption Padding
type foreignOption []string
type nameOption string

func (opts options) apply(c *Compiler) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(c)
		}
	}
}

func (logfn withLogfn) apply(c *Compiler) { c.logfn = logfn }
func (mask maskOption) apply(c *Compiler) { c.mask = uint64(mask) }
func (pad padOption) apply(c *Compiler) { c.padding = Padding(pad) }
func (name nameOption) apply(c *Compiler) { c.name = string(name) }
func (names foreignOption) apply(c *Compiler) { c.foreign = names }

var defaultOptions = Options(
	WithMask(lisp.DefaultMask),
	WithPadding(PadLeading),
	WithForeign(DefaultForeign...),
)
