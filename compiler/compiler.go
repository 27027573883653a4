package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/tinylisp/lisp"
)

// Compiler turns source text into packed words. One Compiler keeps a single
// symbol table across compilations, so that successive compilations (as in
// a REPL) agree on every id.
type Compiler struct {
	logfn func(mess string, args ...interface{})

	symbols *Symbols
	foreign []string
	mask    uint64
	padding Padding
	name    string
}

// New creates a Compiler, failing if its options do not describe a usable
// mask or foreign block.
func New(opts ...Option) (*Compiler, error) {
	c := &Compiler{}
	defaultOptions.apply(c)
	Options(opts...).apply(c)
	if err := CheckMask(c.mask); err != nil {
		return nil, err
	}
	sym, err := NewSymbols(c.foreign...)
	if err != nil {
		return nil, err
	}
	c.symbols = sym
	return c, nil
}

// Symbols returns the compiler's shared symbol table.
func (c *Compiler) Symbols() *Symbols { return c.symbols }

// Mask returns the integer literal mask.
func (c *Compiler) Mask() uint64 { return c.mask }

// Program is the result of one compilation.
type Program struct {
	Forms   []lisp.Value
	Root    lisp.List
	Code    []byte // padded byte stream
	Start   int    // content bounds within Code
	End     int
	Words   []lisp.Word
	Mask    uint64
	Padding Padding
	Symbols *Symbols
}

// Compile parses every form of r and packs them into one program whose root
// is the list of those forms.
func (c *Compiler) Compile(r io.Reader) (*Program, error) {
	forms, err := Parser{Symbols: c.symbols, Name: c.name}.Parse(r)
	if err != nil {
		return nil, err
	}
	return c.CompileForms(forms)
}

// CompileString is a convenience for Compile(strings.NewReader(src)).
func (c *Compiler) CompileString(src string) (*Program, error) {
	return c.Compile(strings.NewReader(src))
}

// CompileForms packs already parsed forms.
func (c *Compiler) CompileForms(forms []lisp.Value) (*Program, error) {
	prog := &Program{
		Forms:   forms,
		Root:    lisp.List(forms),
		Mask:    c.mask,
		Padding: c.padding,
		Symbols: c.symbols,
	}
	if prog.Root == nil {
		prog.Root = lisp.Nil
	}

	code, err := Emit(prog.Root, c.mask)
	if err != nil {
		return nil, err
	}
	prog.Code, prog.Start, prog.End = c.padding.Pad(code)
	c.logf("emitted %v forms in %v bytes; %v padding %v bytes",
		len(forms), len(code), c.padding, len(prog.Code)-len(code))

	if err := CheckChunks(prog.Code, prog.Start, prog.End); err != nil {
		return nil, err
	}
	if prog.Words, err = Pack(prog.Code); err != nil {
		return nil, err
	}
	c.logf("packed %v words; %v symbols", len(prog.Words), c.symbols.Len())
	return prog, nil
}

// Load decodes the program's packed words back into its root.
func (prog *Program) Load() (lisp.Value, error) {
	return lisp.LoadMasked(prog.Words, prog.Mask)
}

// Disassemble writes a listing of the program's byte stream.
func (prog *Program) Disassemble(w io.Writer) error {
	return lisp.Disassemble(w, prog.Code, prog.Mask, prog.Symbols)
}

func (c *Compiler) logf(mess string, args ...interface{}) {
	if c.logfn != nil {
		c.logfn("compile: "+mess, args...)
	}
}

func (prog *Program) String() string {
	return fmt.Sprintf("program(%v forms, %v bytes, %v words)", len(prog.Forms), len(prog.Code), len(prog.Words))
}
