package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jcorbin/tinylisp/compiler"
	"github.com/jcorbin/tinylisp/internal/artifact"
	"github.com/jcorbin/tinylisp/internal/logio"
	"github.com/jcorbin/tinylisp/lisp"
)

func main() {
	log := logio.NewLogger(os.Stderr)
	app := &cli{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		log:    log,
	}
	log.ErrorIf(app.main(context.Background(), os.Args[1:]))
	os.Exit(log.ExitCode())
}

var errUsage = errors.New("usage: tinylisp [-config file] [-trace] [-quiet] compile|run|dump|repl ...")

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *logio.Logger

	cfg Config
}

func (app *cli) main(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("tinylisp", flag.ContinueOnError)
	flags.SetOutput(app.stderr)
	configPath := flags.String("config", "", "configuration file, default ./"+defaultConfigFile+" if present")
	trace := flags.Bool("trace", false, "enable trace logging")
	quiet := flags.Bool("quiet", false, "suppress warnings")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *trace {
		cfg.Runtime.Trace = true
	}
	if *quiet {
		app.log.Mute("WARN")
	}
	app.cfg = cfg

	args = flags.Args()
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "compile":
		return app.compile(args)
	case "run":
		return app.run(ctx, args)
	case "dump":
		return app.dump(args)
	case "repl":
		return app.repl(ctx, args)
	}
	return fmt.Errorf("unknown command %q; %w", cmd, errUsage)
}

func (app *cli) tracef() func(mess string, args ...interface{}) {
	if !app.cfg.Runtime.Trace {
		return nil
	}
	return app.log.Leveledf("TRACE")
}

func (app *cli) newCompiler(name string) (*compiler.Compiler, error) {
	opts, err := app.cfg.Compiler.options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, compiler.WithName(name))
	if logf := app.tracef(); logf != nil {
		opts = append(opts, compiler.WithLogf(logf))
	}
	return compiler.New(opts...)
}

func isSource(name string) bool {
	switch filepath.Ext(name) {
	case ".tl", ".lisp":
		return true
	}
	return false
}

// load compiles a source file or reads an artifact file.
func (app *cli) load(name string) (*artifact.Artifact, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !isSource(name) {
		art, err := artifact.Read(f)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", name, err)
		}
		return art, nil
	}

	c, err := app.newCompiler(name)
	if err != nil {
		return nil, err
	}
	prog, err := c.Compile(f)
	if err != nil {
		return nil, err
	}
	return artifact.FromProgram(prog, filepath.Base(name)), nil
}

func (app *cli) compile(args []string) error {
	flags := flag.NewFlagSet("compile", flag.ContinueOnError)
	flags.SetOutput(app.stderr)
	outPath := flags.String("o", "", "output file, default standard output")
	format := flags.String("format", app.cfg.Output.Format, "output format: go, decimal, or cbor")
	pkg := flags.String("package", app.cfg.Output.Package, "go format package name")
	name := flags.String("var", app.cfg.Output.Var, "go format variable name")
	symbols := flags.Bool("symbols", false, "print the symbol table to standard error")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("usage: tinylisp compile [-o file] [-format go|decimal|cbor] [-symbols] src")
	}
	src := flags.Arg(0)

	f, err := artifact.ParseFormat(*format)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	c, err := app.newCompiler(src)
	if err != nil {
		return err
	}
	prog, err := c.Compile(in)
	if err != nil {
		return err
	}
	if *symbols {
		if err := prog.Symbols.Dump(app.stderr, false); err != nil {
			return err
		}
	}

	art := artifact.FromProgram(prog, filepath.Base(src))
	opts := artifact.GoOptions{Package: *pkg, Var: *name}
	if *outPath == "" {
		return artifact.Write(app.stdout, art, f, opts)
	}
	out, err := os.Create(*outPath)
	if err != nil {
		return err
	}
	if err := artifact.Write(out, art, f, opts); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (app *cli) run(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("run", flag.ContinueOnError)
	flags.SetOutput(app.stderr)
	timeout := flags.Duration("timeout", app.cfg.Runtime.Timeout.Duration, "evaluation time limit")
	teePath := flags.String("tee", "", "also copy print output to this file")
	var defs defines
	flags.Var(&defs, "define", "bind a global name=int before running; may be repeated")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() < 1 {
		return errors.New("usage: tinylisp run [-timeout d] [-tee file] [-define name=int]... file [int args...]")
	}

	art, err := app.load(flags.Arg(0))
	if err != nil {
		return err
	}
	argv, err := parseIntArgs(flags.Args()[1:])
	if err != nil {
		return err
	}
	root, err := art.Load()
	if err != nil {
		return err
	}

	opts, err := defs.bindings(art)
	if err != nil {
		return err
	}
	if *teePath != "" {
		tee, err := os.Create(*teePath)
		if err != nil {
			return err
		}
		defer tee.Close()
		opts = append(opts, lisp.WithTee(tee))
	}

	names := art.Names()
	m := app.newMachine(names, argv, opts...)
	if *timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	val, err := m.Exec(ctx, root)
	if err != nil {
		return err
	}
	if _, defined := m.Global().Lookup(lisp.Entry); defined {
		if val, err = m.Call(ctx, lisp.Entry, argv...); err != nil {
			return err
		}
	}
	fmt.Fprintln(app.stdout, lisp.Sprint(val, names))
	return nil
}

func (app *cli) newMachine(names lisp.Namer, argv lisp.List, extra ...lisp.Option) *lisp.Machine {
	h := newHost(app.stdin, argv)
	h.logf = app.log.Leveledf("WARN")

	slots := make([]string, lisp.ForeignSlots)
	for slot := range slots {
		slots[slot] = names.Name(lisp.ForeignAtom(slot))
	}

	opts := []lisp.Option{
		lisp.WithOutput(app.stdout),
		lisp.WithNamer(names),
		lisp.Options(h.options(slots)...),
	}
	if logf := app.tracef(); logf != nil {
		opts = append(opts, lisp.WithLogf(logf))
	}
	return lisp.New(append(opts, extra...)...)
}

// defines collects repeated -define name=int flags.
type defines []string

func (defs *defines) String() string { return strings.Join(*defs, ",") }

func (defs *defines) Set(s string) error {
	if !strings.Contains(s, "=") {
		return fmt.Errorf("expected name=int, got %q", s)
	}
	*defs = append(*defs, s)
	return nil
}

// bindings resolves each definition against the artifact's symbols; a name
// the program never mentions is an error.
func (defs defines) bindings(art *artifact.Artifact) ([]lisp.Option, error) {
	opts := make([]lisp.Option, 0, len(defs))
	for _, def := range defs {
		name, val, _ := strings.Cut(def, "=")
		id, ok := art.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("-define %v: program has no symbol %q", def, name)
		}
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("-define %v: invalid integer %q", def, val)
		}
		opts = append(opts, lisp.WithBinding(id, lisp.Int(n)))
	}
	return opts, nil
}

func (app *cli) dump(args []string) error {
	flags := flag.NewFlagSet("dump", flag.ContinueOnError)
	flags.SetOutput(app.stderr)
	raw := flags.Bool("raw", false, "include raw token bytes")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("usage: tinylisp dump [-raw] file")
	}

	art, err := app.load(flags.Arg(0))
	if err != nil {
		return err
	}
	names := art.Names()
	dumper := lisp.Dumper{
		Out:   app.stdout,
		Mask:  art.Mask,
		Names: names,
		Raw:   *raw,
	}
	if err := dumper.Dump(lisp.Unpack(art.Words)); err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Symbols (%v)\n", len(art.Symbols))
	for _, sym := range art.Symbols {
		fmt.Fprintf(&sb, "  %v -> 0x%02x\n", sym.Name, byte(sym.ID))
	}
	_, err = io.WriteString(app.stdout, sb.String())
	return err
}
