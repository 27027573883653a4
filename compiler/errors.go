package compiler

import (
	"fmt"

	"github.com/jcorbin/tinylisp/internal/fileinput"
)

// ParseError reports malformed surface syntax.
type ParseError struct {
	fileinput.Location
	Msg string

	// Incomplete is set when input ended inside an open list, so that more
	// input could complete it.
	Incomplete bool
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("%v: parse error: %v", err.Location, err.Msg)
}

// SymbolOverflowError reports that a program names more than
// lisp.MaxSymbols distinct symbols.
type SymbolOverflowError struct {
	Name string
	Loc  fileinput.Location
}

func (err *SymbolOverflowError) Error() string {
	if err.Loc.Name == "" {
		return fmt.Sprintf("symbol table overflow allocating %q", err.Name)
	}
	return fmt.Sprintf("%v: symbol table overflow allocating %q", err.Loc, err.Name)
}

// PackingInvariantViolation reports an aligned 4-byte window of bytecode
// that is entirely zero, and so would silently vanish when unpacked.
type PackingInvariantViolation struct {
	Offset int
	Window [4]byte
}

func (err *PackingInvariantViolation) Error() string {
	return fmt.Sprintf("packing invariant violated: all zero chunk @%v % x", err.Offset, err.Window[:])
}

// MaskError reports an integer literal mask that cannot keep literals clear
// of zero chunks.
type MaskError struct {
	Mask uint64
	Byte int
}

func (err *MaskError) Error() string {
	return fmt.Sprintf("weak literal mask %#016x: byte %v is 0x00 or 0xff", err.Mask, err.Byte)
}
