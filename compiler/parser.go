package compiler

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/tinylisp/internal/fileinput"
	"github.com/jcorbin/tinylisp/lisp"
)

// Parser turns surface syntax into values, resolving every identifier
// through a shared symbol table.
type Parser struct {
	Symbols *Symbols

	// Name labels source locations in errors.
	Name string
}

// Parse parses every top level form of r using a fresh symbol table.
func Parse(r io.Reader) ([]lisp.Value, *Symbols, error) {
	sym, err := NewSymbols()
	if err != nil {
		return nil, nil, err
	}
	forms, err := Parser{Symbols: sym}.Parse(r)
	return forms, sym, err
}

// ParseString is a convenience for Parse(strings.NewReader(s)).
func ParseString(s string) ([]lisp.Value, *Symbols, error) {
	return Parse(strings.NewReader(s))
}

// Parse returns every top level form of r in source order.
func (p Parser) Parse(r io.Reader) ([]lisp.Value, error) {
	if p.Symbols == nil {
		return nil, errors.New("parser has no symbol table")
	}

	lex := newLexer(p.Name, r)

	var (
		forms []lisp.Value
		stack []lisp.List
		opens []fileinput.Location
	)
	emit := func(v lisp.Value) {
		if i := len(stack) - 1; i >= 0 {
			stack[i] = append(stack[i], v)
		} else {
			forms = append(forms, v)
		}
	}

	for {
		tok, err := lex.next()
		if err != nil {
			return nil, p.locate(err, lex.in.Loc)
		}

		switch tok.typ {
		case tokenEOF:
			if n := len(stack); n > 0 {
				return nil, &ParseError{
					Location:   opens[n-1],
					Msg:        fmt.Sprintf("unclosed list (%v open at end of input)", n),
					Incomplete: true,
				}
			}
			return forms, nil

		case tokenOpen:
			stack = append(stack, lisp.List{})
			opens = append(opens, tok.loc)

		case tokenClose:
			i := len(stack) - 1
			if i < 0 {
				return nil, &ParseError{Location: tok.loc, Msg: "unbalanced )"}
			}
			top := stack[i]
			stack, opens = stack[:i], opens[:i]
			emit(top)

		case tokenInt:
			emit(lisp.Int(tok.n))

		case tokenIdent:
			if tok.lit == "nil" {
				emit(lisp.Nil)
				break
			}
			id, err := p.Symbols.Symbolicate(tok.lit)
			if err != nil {
				return nil, p.locate(err, tok.loc)
			}
			emit(id)
		}
	}
}

func (p Parser) locate(err error, loc fileinput.Location) error {
	var soe *SymbolOverflowError
	var pe *ParseError
	switch {
	case errors.As(err, &soe):
		soe.Loc = loc
	case errors.As(err, &pe):
	default:
		err = fmt.Errorf("%v: %w", loc, err)
	}
	return err
}
