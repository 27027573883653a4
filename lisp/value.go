package lisp

import (
	"context"
	"fmt"
)

// Value is the single runtime type; it is implemented only by List, Int,
// Bool, Atom and *Foreign.
type Value interface{ value() }

// List is an ordered sequence of values: cons structure, argument lists,
// parameter lists and function bodies alike.
type List []Value

// Int is a 64-bit signed integer literal.
type Int int64

// Bool is a native truth value, only ever produced by primitives.
type Bool bool

// Atom is a one byte opcode or user symbol id.
type Atom byte

// ForeignFunc implements a host function. The context carries any caller
// deadline; the evaluator itself never looks at it.
type ForeignFunc func(ctx context.Context, args List) (Value, error)

// Foreign is an opaque handle to a host capability. When Func is non-nil
// the handle may be applied like a function.
type Foreign struct {
	Name   string
	Func   ForeignFunc
	Handle interface{}
}

// Nil is the canonical empty list.
var Nil = List{}

func (List) value()     {}
func (Int) value()      {}
func (Bool) value()     {}
func (Atom) value()     {}
func (*Foreign) value() {}

// IsNil returns true if v is the empty list.
func IsNil(v Value) bool {
	l, ok := v.(List)
	return ok && len(l) == 0
}

// Truthy returns false for Nil and Bool(false), true for anything else.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case List:
		return len(x) > 0
	case Bool:
		return bool(x)
	}
	return true
}

// Equal compares values structurally; foreign handles compare by identity.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Int:
		y, ok := b.(Int)
		return ok && x == y
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Atom:
		y, ok := b.(Atom)
		return ok && x == y
	case *Foreign:
		y, ok := b.(*Foreign)
		return ok && x == y
	}
	return a == nil && b == nil
}

func (f *Foreign) String() string {
	if f.Name == "" {
		return "<foreign>"
	}
	return fmt.Sprintf("<foreign %v>", f.Name)
}

// Call applies a foreign function; it is a TypeMismatch to call a handle
// that carries no Func.
func (f *Foreign) Call(ctx context.Context, args List) (Value, error) {
	if f.Func == nil {
		return nil, &Error{Errno: TypeMismatch, Expr: f, Detail: "foreign handle is not callable"}
	}
	return f.Func(ctx, args)
}

// Func wraps fn as a named callable Foreign.
func Func(name string, fn ForeignFunc) *Foreign {
	return &Foreign{Name: name, Func: fn}
}

// Handle wraps an arbitrary host object as an opaque Foreign.
func Handle(name string, obj interface{}) *Foreign {
	return &Foreign{Name: name, Handle: obj}
}

// function destructures a function value into its parameters and body.
// Returns ok=false if fn does not have a function shape. When quoted is
// true the arguments must be passed unevaluated.
func function(fn List) (params List, body Value, quoted bool, ok bool) {
	if len(fn) < 2 {
		return nil, nil, false, false
	}
	params, ok = fn[0].(List)
	if !ok {
		return nil, nil, false, false
	}
	if len(params) > 0 {
		return params, fn[1], false, true
	}
	// (nil params body) binds unevaluated arguments
	if len(fn) >= 3 {
		if ps, isList := fn[1].(List); isList {
			return ps, fn[2], true, true
		}
	}
	return params, fn[1], true, true
}
