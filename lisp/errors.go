package lisp

import "fmt"

// List of runtime failures for Errno.
const (
	DecodeUnderflow = Errno(iota)
	UnboundSpecialForm
	TypeMismatch
	DivideByZero
	ForeignFailure
)

var strError = []string{
	"decode underflow",
	"unbound special form",
	"type mismatch",
	"divide by zero",
	"foreign failure",
}

// Errno names the nature of a runtime failure. An Errno matches any *Error
// carrying it under errors.Is.
type Errno int

func (e Errno) Error() string {
	if int(e) < len(strError) {
		return strError[e]
	}
	return fmt.Sprintf("errno %d", int(e))
}

// Error is a fatal runtime failure along with the offending expression.
type Error struct {
	Errno  Errno  // nature of the failure
	Expr   Value  // offending expression or value, if any
	Detail string // extra context
	Err    error  // underlying host error when Errno is ForeignFailure
	Names  Namer  // used to print Expr
}

func (e *Error) Error() string {
	msg := "lisp: " + e.Errno.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Expr != nil {
		names := e.Names
		if names == nil {
			names = reservedNamer
		}
		msg += " in " + Sprint(e.Expr, names)
	}
	return msg
}

// Unwrap returns any underlying host error.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the Errno of e.
func (e *Error) Is(target error) bool {
	errno, ok := target.(Errno)
	return ok && errno == e.Errno
}

func underflow(detail string, args ...interface{}) error {
	return &Error{Errno: DecodeUnderflow, Detail: fmt.Sprintf(detail, args...)}
}

func mismatch(expr Value, detail string, args ...interface{}) *Error {
	return &Error{Errno: TypeMismatch, Expr: expr, Detail: fmt.Sprintf(detail, args...)}
}
