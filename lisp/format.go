package lisp

import (
	"io"
	"strconv"
	"strings"
)

// Format writes the printed form of v to w, naming atoms through names
// when it knows them.
func Format(w io.Writer, v Value, names Namer) error {
	var sb strings.Builder
	appendValue(&sb, v, names)
	_, err := io.WriteString(w, sb.String())
	return err
}

// Sprint returns the printed form of v.
func Sprint(v Value, names Namer) string {
	var sb strings.Builder
	appendValue(&sb, v, names)
	return sb.String()
}

func appendValue(sb *strings.Builder, v Value, names Namer) {
	switch x := v.(type) {
	case nil:
		sb.WriteString("<nil>")
	case List:
		if len(x) == 0 {
			sb.WriteString("nil")
			return
		}
		sb.WriteByte('(')
		for i, y := range x {
			if i > 0 {
				sb.WriteByte(' ')
			}
			appendValue(sb, y, names)
		}
		sb.WriteByte(')')
	case Int:
		sb.WriteString(strconv.FormatInt(int64(x), 10))
	case Bool:
		sb.WriteString(strconv.FormatBool(bool(x)))
	case Atom:
		if names != nil {
			if name := names.Name(x); name != "" {
				sb.WriteString(name)
				return
			}
		}
		sb.WriteString(x.String())
	case *Foreign:
		sb.WriteString(x.String())
	}
}
