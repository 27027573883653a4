package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/jcorbin/tinylisp/compiler"
	"github.com/jcorbin/tinylisp/lisp"
)

// lineReader is the part of liner.State used by the repl.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func (app *cli) repl(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.New("usage: tinylisp repl")
	}

	sess, err := app.newSession()
	if err != nil {
		return err
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(sess.complete)

	return sess.loop(ctx, line)
}

// session is one interactive compiler and machine pair: every entry is
// compiled against the same symbol table and evaluated in the same global
// frame.
type session struct {
	out    io.Writer
	comp   *compiler.Compiler
	mach   *lisp.Machine
	syms   *compiler.Symbols
	logf   func(mess string, args ...interface{})
	prompt string
}

func (app *cli) newSession() (*session, error) {
	c, err := app.newCompiler("<repl>")
	if err != nil {
		return nil, err
	}
	syms := c.Symbols()
	return &session{
		out:    app.stdout,
		comp:   c,
		mach:   app.newMachine(syms, nil),
		syms:   syms,
		logf:   app.log.Leveledf("ERROR"),
		prompt: "tl> ",
	}, nil
}

func (sess *session) loop(ctx context.Context, lr lineReader) error {
	var pending strings.Builder
	for {
		prompt := sess.prompt
		if pending.Len() > 0 {
			prompt = strings.Repeat(".", len(prompt)-1) + " "
		}
		line, err := lr.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			pending.Reset()
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" && pending.Len() == 0 {
			continue
		}
		lr.AppendHistory(line)

		pending.WriteString(line)
		pending.WriteByte('\n')
		if more := sess.eval(ctx, pending.String()); !more {
			pending.Reset()
		}
	}
}

// eval compiles, packs, loads, and executes one entry; it returns true if
// the entry is an incomplete form awaiting more input.
func (sess *session) eval(ctx context.Context, src string) (more bool) {
	prog, err := sess.comp.CompileString(src)
	var pe *compiler.ParseError
	if errors.As(err, &pe) && pe.Incomplete {
		return true
	} else if err != nil {
		sess.logf("%v", err)
		return false
	}

	root, err := prog.Load()
	if err != nil {
		sess.logf("%v", err)
		return false
	}
	val, err := sess.mach.Exec(ctx, root)
	if err != nil {
		sess.logf("%v", err)
		return false
	}
	fmt.Fprintf(sess.out, "=> %v\n", lisp.Sprint(val, sess.syms))
	return false
}

// complete offers every known name with the trailing word of line as a
// prefix.
func (sess *session) complete(line string) []string {
	i := strings.LastIndexAny(line, " \t()") + 1
	head, word := line[:i], line[i:]
	if word == "" {
		return nil
	}
	var matches []string
	for _, ent := range sess.syms.Entries(true) {
		if ent.ID >= lisp.Entry && strings.HasPrefix(ent.Name, word) {
			matches = append(matches, head+ent.Name)
		}
	}
	sort.Strings(matches)
	return matches
}
