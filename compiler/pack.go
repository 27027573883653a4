package compiler

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/jcorbin/tinylisp/lisp"
)

// Padding selects the inert filler used to extend a byte stream to a whole
// number of words.
type Padding int

const (
	// PadLeading prepends at least one redundant open-list byte; the loader
	// collapses the unclosed frames away.
	PadLeading Padding = iota

	// PadTrailing appends pad bytes, which the loader skips.
	PadTrailing
)

var paddingNames = [...]string{
	PadLeading:  "leading",
	PadTrailing: "trailing",
}

func (pad Padding) String() string {
	if int(pad) < len(paddingNames) {
		return paddingNames[pad]
	}
	return fmt.Sprintf("Padding(%d)", int(pad))
}

// ParsePadding parses a padding mode name.
func ParsePadding(s string) (Padding, error) {
	for pad, name := range paddingNames {
		if strings.EqualFold(s, name) {
			return Padding(pad), nil
		}
	}
	return 0, fmt.Errorf("invalid padding mode %q, expected leading or trailing", s)
}

// Pad extends code to a multiple of lisp.WordSize, returning the padded
// stream and the bounds of the original content within it.
func (pad Padding) Pad(code []byte) (padded []byte, start, end int) {
	switch pad {
	case PadTrailing:
		n := len(code)
		if rem := n % lisp.WordSize; rem != 0 {
			n += lisp.WordSize - rem
		}
		padded = make([]byte, n)
		copy(padded, code)
		return padded, 0, len(code)

	default:
		k := 1 + (lisp.WordSize-(len(code)+1)%lisp.WordSize)%lisp.WordSize
		padded = make([]byte, k, k+len(code))
		for i := range padded {
			padded[i] = lisp.ByteOpen
		}
		padded = append(padded, code...)
		return padded, k, len(padded)
	}
}

// CheckChunks verifies that every 4-byte aligned window of code that
// intersects code[start:end] holds a non-zero byte. Windows wholly outside
// the content are filler and may vanish freely.
func CheckChunks(code []byte, start, end int) error {
	for off := 0; off < len(code); off += 4 {
		if off+4 <= start || off >= end {
			continue
		}
		var window [4]byte
		copy(window[:], code[off:])
		if binary.LittleEndian.Uint32(window[:]) == 0 {
			return &PackingInvariantViolation{Offset: off, Window: window}
		}
	}
	return nil
}

// Pack groups a padded stream into words of three little-endian 32-bit
// groups.
func Pack(code []byte) ([]lisp.Word, error) {
	if len(code)%lisp.WordSize != 0 {
		return nil, fmt.Errorf("cannot pack %v bytes: not a multiple of %v", len(code), lisp.WordSize)
	}
	words := make([]lisp.Word, len(code)/lisp.WordSize)
	for i := range words {
		chunk := code[i*lisp.WordSize:]
		for j := range words[i] {
			words[i][j] = binary.LittleEndian.Uint32(chunk[4*j:])
		}
	}
	return words, nil
}
