package lisp

import "encoding/binary"

// Load unpacks words and decodes the root expression, unmasking integer
// literals with DefaultMask.
func Load(words []Word) (Value, error) {
	return Decode(Unpack(words), DefaultMask)
}

// LoadMasked is like Load but with an explicit integer literal mask.
func LoadMasked(words []Word, mask uint64) (Value, error) {
	return Decode(Unpack(words), mask)
}

// Decode reconstructs the root expression from a byte stream.
//
// Frames left open at the end of the stream are transparent: leading
// open-list padding collapses away, and the values remaining across all
// open frames must amount to exactly one root.
func Decode(code []byte, mask uint64) (Value, error) {
	stack := []List{nil}
	for i := 0; i < len(code); i++ {
		switch b := code[i]; b {
		case BytePad:

		case ByteOpen:
			stack = append(stack, List{})

		case ByteClose:
			if len(stack) < 2 {
				return nil, underflow("unbalanced close-list @%v", i)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] = append(stack[len(stack)-1], top)

		case ByteInt:
			if i+8 >= len(code) {
				return nil, underflow("truncated integer literal @%v", i)
			}
			n := binary.LittleEndian.Uint64(code[i+1:]) ^ mask
			stack[len(stack)-1] = append(stack[len(stack)-1], Int(int64(n)))
			i += 8

		default:
			stack[len(stack)-1] = append(stack[len(stack)-1], Atom(b))
		}
	}

	var root Value
	n := 0
	for _, frame := range stack {
		for _, v := range frame {
			root = v
			n++
		}
	}
	if n != 1 {
		return nil, underflow("decoded %v root values, expected 1", n)
	}
	return root, nil
}
