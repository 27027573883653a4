package lisp

import (
	"fmt"
	"strings"
)

// logging traces evaluation through an optional logfn. Each line carries a
// mark, padded to the widest mark seen so far, then the message indented by
// the current nesting level.
type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
	indent    string
}

func (log *logging) tracing() bool { return log.logfn != nil }

// nest indents every line logged until the returned func is called.
func (log *logging) nest() func() {
	prev := log.indent
	log.indent += "  "
	return func() { log.indent = prev }
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 && mark != "" {
		mark = strings.Repeat(mark[:1], n) + mark
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v%v", mark, log.indent, mess)
}
