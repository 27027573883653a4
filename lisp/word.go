package lisp

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// WordSize is the number of bytes packed into one Word.
const WordSize = 12

// Word is a 96-bit packed unit of three little-endian 32-bit groups, low
// group first.
type Word [3]uint32

// DefaultMask is XORed into every integer literal. None of its bytes are
// 0x00 or 0xff, so small positive and negative literals never mask into
// runs of zero bytes.
const DefaultMask uint64 = 0x5DA3C6E17B2F9A4B

// Unpack flattens words back into a byte stream, silently dropping every
// 32-bit group that is entirely zero.
func Unpack(words []Word) []byte {
	code := make([]byte, 0, len(words)*WordSize)
	var buf [4]byte
	for _, w := range words {
		for _, group := range w {
			if group == 0 {
				continue
			}
			binary.LittleEndian.PutUint32(buf[:], group)
			code = append(code, buf[:]...)
		}
	}
	return code
}

// Big returns the word as an unsigned 96-bit integer.
func (w Word) Big() *big.Int {
	var b [WordSize]byte
	binary.BigEndian.PutUint32(b[0:], w[2])
	binary.BigEndian.PutUint32(b[4:], w[1])
	binary.BigEndian.PutUint32(b[8:], w[0])
	return new(big.Int).SetBytes(b[:])
}

// String returns the decimal literal form of the word.
func (w Word) String() string { return w.Big().String() }

var maxWord = new(big.Int).Lsh(big.NewInt(1), 8*WordSize)

// ParseWord parses the decimal literal form of a word.
func ParseWord(s string) (w Word, err error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return w, fmt.Errorf("invalid word literal %q", s)
	}
	if n.Sign() < 0 || n.Cmp(maxWord) >= 0 {
		return w, fmt.Errorf("word literal %q out of 96-bit range", s)
	}
	var b [WordSize]byte
	n.FillBytes(b[:])
	w[2] = binary.BigEndian.Uint32(b[0:])
	w[1] = binary.BigEndian.Uint32(b[4:])
	w[0] = binary.BigEndian.Uint32(b[8:])
	return w, nil
}
