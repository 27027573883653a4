// Package runeio provides rune reading and rune description helpers for
// source scanners.
package runeio

import (
	"bufio"
	"io"
)

// Reader reads both bytes and runes.
type Reader interface {
	io.Reader
	io.RuneReader
}

// NewReader returns r itself when it already reads runes, otherwise a
// buffered reader over it.
func NewReader(r io.Reader) Reader {
	if rr, ok := r.(Reader); ok {
		return rr
	}
	return bufio.NewReader(r)
}
