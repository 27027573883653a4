package compiler

import (
	"encoding/binary"
	"fmt"

	"github.com/jcorbin/tinylisp/lisp"
)

// Emit serializes root into its byte stream: a list as open-list, its
// children, then close-list; an atom as its id; an integer as the marker
// followed by its eight little-endian bytes XORed with mask.
func Emit(root lisp.Value, mask uint64) ([]byte, error) {
	var enc emitter
	enc.mask = mask
	if err := enc.emit(root); err != nil {
		return nil, err
	}
	return enc.code, nil
}

type emitter struct {
	code []byte
	mask uint64
}

func (enc *emitter) emit(v lisp.Value) error {
	switch x := v.(type) {
	case lisp.List:
		enc.code = append(enc.code, lisp.ByteOpen)
		for _, y := range x {
			if err := enc.emit(y); err != nil {
				return err
			}
		}
		enc.code = append(enc.code, lisp.ByteClose)

	case lisp.Atom:
		if x <= lisp.Atom(lisp.ByteInt) {
			return fmt.Errorf("cannot emit structural byte 0x%02x as an atom", byte(x))
		}
		enc.code = append(enc.code, byte(x))

	case lisp.Int:
		var buf [9]byte
		buf[0] = lisp.ByteInt
		binary.LittleEndian.PutUint64(buf[1:], uint64(x)^enc.mask)
		enc.code = append(enc.code, buf[:]...)

	default:
		return fmt.Errorf("cannot emit %T value %v", v, lisp.Sprint(v, nil))
	}
	return nil
}

// CheckMask rejects masks with a 0x00 or 0xff byte: such a byte lets
// literals of small magnitude mask into runs of zero bytes.
func CheckMask(mask uint64) error {
	for i := 0; i < 8; i++ {
		if b := byte(mask >> (8 * i)); b == 0x00 || b == 0xff {
			return &MaskError{Mask: mask, Byte: i}
		}
	}
	return nil
}
