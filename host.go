package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jcorbin/tinylisp/lisp"
)

// host implements the foreign primitives a program may be compiled
// against, by name.
type host struct {
	args lisp.List
	in   *bufio.Scanner
	now  func() time.Time
	logf func(mess string, args ...interface{})
}

func newHost(in io.Reader, args lisp.List) *host {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &host{
		args: args,
		in:   sc,
		now:  time.Now,
	}
}

func (h *host) primitive(name string) lisp.ForeignFunc {
	switch name {
	case "argv":
		return h.argv
	case "timer":
		return h.timer
	case "input":
		return h.input
	}
	return nil
}

// options binds every named slot that the host implements.
func (h *host) options(slots []string) []lisp.Option {
	var opts []lisp.Option
	for slot, name := range slots {
		if name == "" {
			continue
		}
		fn := h.primitive(name)
		if fn == nil {
			if h.logf != nil {
				h.logf("no host primitive %q for foreign slot %v", name, slot)
			}
			continue
		}
		opts = append(opts, lisp.WithForeign(slot, lisp.Func(name, fn)))
	}
	return opts
}

// (argv) returns the integer arguments given on the command line.
func (h *host) argv(context.Context, lisp.List) (lisp.Value, error) {
	if len(h.args) == 0 {
		return lisp.Nil, nil
	}
	return append(lisp.List(nil), h.args...), nil
}

// (timer) returns the milliseconds left before the caller's deadline, or -1
// if there is none.
func (h *host) timer(ctx context.Context, _ lisp.List) (lisp.Value, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return lisp.Int(-1), nil
	}
	left := deadline.Sub(h.now())
	if left < 0 {
		left = 0
	}
	return lisp.Int(left.Milliseconds()), nil
}

// (input) reads the next whitespace separated integer from standard input,
// returning nil at end of input.
func (h *host) input(context.Context, lisp.List) (lisp.Value, error) {
	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			return nil, err
		}
		return lisp.Nil, nil
	}
	n, err := strconv.ParseInt(h.in.Text(), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer input: %w", err)
	}
	return lisp.Int(n), nil
}

func parseIntArgs(args []string) (lisp.List, error) {
	vals := make(lisp.List, 0, len(args))
	for _, arg := range args {
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer argument %q", arg)
		}
		vals = append(vals, lisp.Int(n))
	}
	return vals, nil
}
