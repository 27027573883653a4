package lisp

import (
	"context"
	"fmt"
)

func (m *Machine) installPrimitives() {
	for _, prim := range []struct {
		atom Atom
		fn   ForeignFunc
	}{
		{OpCons, primCons},
		{OpHead, primHead},
		{OpTail, primTail},
		{OpNilQ, primNilQ},
		{OpPrint, m.primPrint},

		{OpAdd, arith(OpAdd, 0, func(a, b Int) (Int, error) { return a + b, nil })},
		{OpSub, arith(OpSub, 0, func(a, b Int) (Int, error) { return a - b, nil })},
		{OpMul, arith(OpMul, 1, func(a, b Int) (Int, error) { return a * b, nil })},
		{OpDiv, arith(OpDiv, 1, func(a, b Int) (Int, error) {
			if b == 0 {
				return 0, &Error{Errno: DivideByZero}
			}
			return a / b, nil
		})},

		{OpEq, primEq},
		{OpGe, compare(OpGe, func(a, b Int) bool { return a >= b })},
		{OpLt, compare(OpLt, func(a, b Int) bool { return a < b })},
	} {
		m.global.Set(prim.atom, Func(ReservedName(prim.atom), prim.fn))
	}
}

// (cons x list) prepends x; with a non-list tail it makes the pair (x y).
func primCons(_ context.Context, args List) (Value, error) {
	if len(args) != 2 {
		return nil, mismatch(args, "cons takes 2 arguments, got %v", len(args))
	}
	if tail, ok := args[1].(List); ok {
		l := make(List, 0, len(tail)+1)
		l = append(l, args[0])
		return append(l, tail...), nil
	}
	return List{args[0], args[1]}, nil
}

// (head list) returns the first item, or nil for the empty list.
func primHead(_ context.Context, args List) (Value, error) {
	l, err := listArg(OpHead, args)
	if err != nil || len(l) == 0 {
		return Nil, err
	}
	return l[0], nil
}

// (tail list) returns all but the first item, or nil for the empty list.
func primTail(_ context.Context, args List) (Value, error) {
	l, err := listArg(OpTail, args)
	if err != nil || len(l) == 0 {
		return Nil, err
	}
	return l[1:], nil
}

func primNilQ(_ context.Context, args List) (Value, error) {
	if len(args) != 1 {
		return nil, mismatch(args, "nil? takes 1 argument, got %v", len(args))
	}
	return Bool(IsNil(args[0])), nil
}

// (print x ...) writes its arguments on one line and returns the last one.
func (m *Machine) primPrint(_ context.Context, args List) (Value, error) {
	var last Value = Nil
	for i, arg := range args {
		if i > 0 {
			if _, err := fmt.Fprint(m.out, " "); err != nil {
				return nil, err
			}
		}
		if err := Format(m.out, arg, m.names); err != nil {
			return nil, err
		}
		last = arg
	}
	if _, err := fmt.Fprintln(m.out); err != nil {
		return nil, err
	}
	return last, nil
}

// (eq a b ...) is true when every argument equals the first.
func primEq(_ context.Context, args List) (Value, error) {
	if len(args) < 2 {
		return nil, mismatch(args, "eq takes at least 2 arguments, got %v", len(args))
	}
	for _, arg := range args[1:] {
		if !Equal(args[0], arg) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

// arith folds op over its arguments left to right; a single argument is
// folded into the identity, so (sub x) negates.
func arith(op Atom, identity Int, fn func(a, b Int) (Int, error)) ForeignFunc {
	return func(_ context.Context, args List) (Value, error) {
		ints, err := intArgs(op, args)
		if err != nil {
			return nil, err
		}
		acc := identity
		switch len(ints) {
		case 0:
			return acc, nil
		case 1:
		default:
			acc, ints = ints[0], ints[1:]
		}
		for _, n := range ints {
			if acc, err = fn(acc, n); err != nil {
				if le, ok := err.(*Error); ok {
					le.Expr = append(List{op}, args...)
				}
				return nil, err
			}
		}
		return acc, nil
	}
}

// compare chains fn over adjacent argument pairs.
func compare(op Atom, fn func(a, b Int) bool) ForeignFunc {
	return func(_ context.Context, args List) (Value, error) {
		ints, err := intArgs(op, args)
		if err != nil {
			return nil, err
		}
		if len(ints) < 2 {
			return nil, mismatch(append(List{op}, args...), "%v takes at least 2 arguments", op)
		}
		for i := 1; i < len(ints); i++ {
			if !fn(ints[i-1], ints[i]) {
				return Bool(false), nil
			}
		}
		return Bool(true), nil
	}
}

func intArgs(op Atom, args List) ([]Int, error) {
	ints := make([]Int, len(args))
	for i, arg := range args {
		n, ok := arg.(Int)
		if !ok {
			return nil, mismatch(append(List{op}, args...), "argument %v is not an integer", i)
		}
		ints[i] = n
	}
	return ints, nil
}

func listArg(op Atom, args List) (List, error) {
	if len(args) != 1 {
		return nil, mismatch(append(List{op}, args...), "%v takes 1 argument, got %v", op, len(args))
	}
	l, ok := args[0].(List)
	if !ok {
		return nil, mismatch(append(List{op}, args...), "%v of a non-list", op)
	}
	return l, nil
}
