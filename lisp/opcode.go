package lisp

import "fmt"

// Structural bytes; these never appear as Atoms after loading.
const (
	BytePad   byte = 0x00
	ByteOpen  byte = 0x01
	ByteClose byte = 0x02
	ByteInt   byte = 0x03
)

// Reserved atoms.
const (
	// Entry conventionally names the program's top level function, which
	// the host applies to its own arguments.
	Entry Atom = 0x04

	OpEval   Atom = 0x05
	OpQuote  Atom = 0x06
	OpDefine Atom = 0x07
	OpIf     Atom = 0x08
	OpLet    Atom = 0x09

	OpCons  Atom = 0x0a
	OpHead  Atom = 0x0b
	OpTail  Atom = 0x0c
	OpNilQ  Atom = 0x0d
	OpPrint Atom = 0x0e

	OpAdd Atom = 0x0f
	OpSub Atom = 0x10
	OpMul Atom = 0x11
	OpDiv Atom = 0x12

	OpEq Atom = 0x13
	OpGe Atom = 0x14
	OpLt Atom = 0x15

	// ForeignBase is the first of ForeignSlots ids reserved for host
	// primitives.
	ForeignBase Atom = 0x16

	// UserBase is the first id handed out to user symbols.
	UserBase Atom = ForeignBase + ForeignSlots
)

// ForeignSlots is the size of the host primitive block.
const ForeignSlots = 8

// MaxSymbols bounds the whole name space, reserved entries included.
const MaxSymbols = 256

var reservedNames = [...]string{
	BytePad:   "pad",
	ByteOpen:  "(",
	ByteClose: ")",
	ByteInt:   "int",
	Entry:     "main",
	OpEval:    "eval",
	OpQuote:   "quote",
	OpDefine:  "define",
	OpIf:      "if",
	OpLet:     "let",
	OpCons:    "cons",
	OpHead:    "head",
	OpTail:    "tail",
	OpNilQ:    "nil?",
	OpPrint:   "print",
	OpAdd:     "add",
	OpSub:     "sub",
	OpMul:     "mul",
	OpDiv:     "div",
	OpEq:      "eq",
	OpGe:      "ge",
	OpLt:      "lt",
}

// ReservedName returns the fixed name of a reserved id below ForeignBase,
// or "" for foreign slots and user ids.
func ReservedName(a Atom) string {
	if int(a) < len(reservedNames) {
		return reservedNames[a]
	}
	return ""
}

// IsSpecial returns true for the special form ids.
func IsSpecial(a Atom) bool { return OpEval <= a && a <= OpLet }

// ForeignAtom returns the reserved id of the given foreign slot.
func ForeignAtom(slot int) Atom {
	if slot < 0 || slot >= ForeignSlots {
		panic(fmt.Sprintf("foreign slot %v out of range [0, %v)", slot, ForeignSlots))
	}
	return ForeignBase + Atom(slot)
}

// Namer resolves atoms to printable names.
type Namer interface {
	Name(a Atom) string
}

// NamerFunc adapts a function into a Namer.
type NamerFunc func(a Atom) string

// Name calls f.
func (f NamerFunc) Name(a Atom) string { return f(a) }

// reservedNamer only knows the fixed reserved names.
var reservedNamer = NamerFunc(ReservedName)

func (a Atom) String() string {
	if name := ReservedName(a); name != "" {
		return name
	}
	return fmt.Sprintf("0x%02x", byte(a))
}
