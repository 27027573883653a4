package compiler

import (
	"fmt"
	"io"

	"github.com/jcorbin/tinylisp/lisp"
)

// Symbols is a bijective mapping between names and one byte atoms. The
// reserved names are preloaded; user names are allocated upward from
// lisp.UserBase in the order they are first seen.
type Symbols struct {
	strings [lisp.MaxSymbols]string
	symbols map[string]lisp.Atom
	next    int
}

// NewSymbols creates a table holding the reserved names, with the given
// host primitive names bound to consecutive foreign slots.
func NewSymbols(foreign ...string) (*Symbols, error) {
	if len(foreign) > lisp.ForeignSlots {
		return nil, fmt.Errorf("too many foreign primitives: %v > %v", len(foreign), lisp.ForeignSlots)
	}
	sym := &Symbols{
		symbols: make(map[string]lisp.Atom, lisp.MaxSymbols),
		next:    int(lisp.UserBase),
	}
	for id := int(lisp.Entry); id < int(lisp.ForeignBase); id++ {
		sym.bind(lisp.ReservedName(lisp.Atom(id)), lisp.Atom(id))
	}
	for slot, name := range foreign {
		if name == "" {
			continue
		}
		if _, defined := sym.symbols[name]; defined {
			return nil, fmt.Errorf("foreign primitive %q shadows an existing name", name)
		}
		if !validIdentifier(name) {
			return nil, fmt.Errorf("foreign primitive %q is not an identifier", name)
		}
		sym.bind(name, lisp.ForeignAtom(slot))
	}
	return sym, nil
}

func (sym *Symbols) bind(name string, id lisp.Atom) {
	sym.strings[id] = name
	sym.symbols[name] = id
}

// Name returns the name bound to id, or "" if none is.
func (sym *Symbols) Name(id lisp.Atom) string {
	return sym.strings[id]
}

// Lookup returns the atom bound to name.
func (sym *Symbols) Lookup(name string) (lisp.Atom, bool) {
	id, defined := sym.symbols[name]
	return id, defined
}

// Len returns the number of named entries, reserved ones included.
func (sym *Symbols) Len() int { return len(sym.symbols) }

// Symbolicate returns the atom bound to name, allocating the next free user
// id if name is new.
func (sym *Symbols) Symbolicate(name string) (lisp.Atom, error) {
	if id, defined := sym.symbols[name]; defined {
		return id, nil
	}
	if sym.next >= lisp.MaxSymbols {
		return 0, &SymbolOverflowError{Name: name}
	}
	id := lisp.Atom(sym.next)
	sym.next++
	sym.bind(name, id)
	return id, nil
}

// Entry is one row of the table.
type Entry struct {
	Name string
	ID   lisp.Atom
}

// Entries returns the table in id order; user entries only unless all is
// set.
func (sym *Symbols) Entries(all bool) []Entry {
	start := int(lisp.UserBase)
	if all {
		start = 0
	}
	var entries []Entry
	for id := start; id < sym.next; id++ {
		if name := sym.strings[id]; name != "" {
			entries = append(entries, Entry{name, lisp.Atom(id)})
		}
	}
	return entries
}

// Dump writes the table as "name -> 0xNN" lines in id order.
func (sym *Symbols) Dump(w io.Writer, all bool) error {
	for _, ent := range sym.Entries(all) {
		if _, err := fmt.Fprintf(w, "%v -> 0x%02x\n", ent.Name, byte(ent.ID)); err != nil {
			return err
		}
	}
	return nil
}
