package runeio

import (
	"fmt"
	"unicode"
)

var c0Names = [32]string{
	"<NUL>", "<SOH>", "<STX>", "<ETX>", "<EOT>", "<ENQ>", "<ACK>", "<BEL>",
	"<BS>", "<HT>", "<NL>", "<VT>", "<NP>", "<CR>", "<SO>", "<SI>",
	"<DLE>", "<DC1>", "<DC2>", "<DC3>", "<DC4>", "<NAK>", "<SYN>", "<ETB>",
	"<CAN>", "<EM>", "<SUB>", "<ESC>", "<FS>", "<GS>", "<RS>", "<US>",
}

// CaretForm computes the ^-escaped printable form of a C0 control rune.
func CaretForm(r rune) string {
	if r < 0x20 || r == 0x7f {
		return "^" + string(r^0x40)
	} else if 0x80 <= r && r <= 0x9f {
		return "^[" + string(r^0xc0)
	}
	return ""
}

// Describe returns a printable description of r for diagnostics: C0
// controls by mnemonic and caret form, other unprintables by code point,
// and anything else quoted.
func Describe(r rune) string {
	switch {
	case 0 <= r && r < 0x20:
		return fmt.Sprintf("%v (%v)", c0Names[r], CaretForm(r))
	case r == 0x7f:
		return "<DEL> (^?)"
	case !unicode.IsPrint(r):
		return fmt.Sprintf("%U", r)
	}
	return fmt.Sprintf("%q", r)
}
