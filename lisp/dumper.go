package lisp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
)

// Dumper writes a listing of a byte stream, one token per line, indented by
// list nesting depth.
type Dumper struct {
	Out   io.Writer
	Mask  uint64
	Names Namer

	// Raw additionally appends the raw bytes of every token.
	Raw bool

	addrWidth int
}

// Disassemble writes a listing of code to w.
func Disassemble(w io.Writer, code []byte, mask uint64, names Namer) error {
	return Dumper{Out: w, Mask: mask, Names: names}.Dump(code)
}

// Dump writes the listing of code.
func (dump Dumper) Dump(code []byte) error {
	if dump.Names == nil {
		dump.Names = reservedNamer
	}
	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.Itoa(len(code)))
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Bytecode (%v bytes)\n", len(code))
	depth := 0
	for addr := 0; addr < len(code); {
		start := addr
		fmt.Fprintf(&buf, "  @%*v ", dump.addrWidth, addr)
		for i := 0; i < depth; i++ {
			buf.WriteString("  ")
		}
		addr = dump.formatToken(&buf, code, addr, &depth)
		if dump.Raw {
			fmt.Fprintf(&buf, "  % x", code[start:addr])
		}
		buf.WriteByte('\n')
		if _, err := buf.WriteTo(dump.Out); err != nil {
			return err
		}
	}
	return nil
}

func (dump Dumper) formatToken(buf *bytes.Buffer, code []byte, addr int, depth *int) int {
	switch b := code[addr]; b {
	case BytePad:
		buf.WriteString("pad")
	case ByteOpen:
		buf.WriteString("(")
		*depth++
	case ByteClose:
		// already indented one level too deep
		if *depth > 0 {
			*depth--
			buf.Truncate(buf.Len() - 2)
		}
		buf.WriteString(")")
	case ByteInt:
		if addr+8 >= len(code) {
			buf.WriteString("int <truncated>")
			return len(code)
		}
		n := int64(binary.LittleEndian.Uint64(code[addr+1:]) ^ dump.Mask)
		buf.WriteString("int ")
		buf.WriteString(strconv.FormatInt(n, 10))
		return addr + 9
	default:
		a := Atom(b)
		fmt.Fprintf(buf, "0x%02x", b)
		if name := dump.Names.Name(a); name != "" {
			buf.WriteByte(' ')
			buf.WriteString(name)
		}
	}
	return addr + 1
}
