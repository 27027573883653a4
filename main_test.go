package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/tinylisp/internal/logio"
	"github.com/jcorbin/tinylisp/lisp"
)

type testCLI struct {
	*cli
	stdout bytes.Buffer
	stderr bytes.Buffer
	dir    string
}

func newTestCLI(t *testing.T, stdin string) *testCLI {
	tc := &testCLI{dir: t.TempDir()}
	tc.cli = &cli{
		stdin:  strings.NewReader(stdin),
		stdout: &tc.stdout,
		stderr: &tc.stderr,
		log:    logio.NewLogger(&logio.Writer{Logf: t.Logf}),
	}
	return tc
}

func (tc *testCLI) file(t *testing.T, name, content string) string {
	path := filepath.Join(tc.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (tc *testCLI) main(t *testing.T, args ...string) error {
	tc.stdout.Reset()
	tc.stderr.Reset()
	return tc.cli.main(context.Background(), args)
}

const squareSource = `
	(print (argv))
	(define main (quote ((a b) (mul a b))))
`

func TestCLI_run(t *testing.T) {
	tc := newTestCLI(t, "")
	src := tc.file(t, "square.tl", squareSource)
	require.NoError(t, tc.main(t, "run", src, "6", "7"))
	assert.Equal(t, "(6 7)\n42\n", tc.stdout.String())

	assert.Error(t, tc.main(t, "run", src, "six"))
}

func TestCLI_compileThenRun(t *testing.T) {
	for _, format := range []string{"go", "decimal", "cbor"} {
		t.Run(format, func(t *testing.T) {
			tc := newTestCLI(t, "")
			src := tc.file(t, "square.tl", squareSource)
			out := filepath.Join(tc.dir, "square."+format)

			require.NoError(t, tc.main(t, "compile", "-format", format, "-symbols", "-o", out, src))
			assert.Equal(t, "a -> 0x1e\nb -> 0x1f\n", tc.stderr.String())

			require.NoError(t, tc.main(t, "run", out, "3", "5"))
			assert.Equal(t, "(3 5)\n15\n", tc.stdout.String())
		})
	}
}

func TestCLI_compileStdout(t *testing.T) {
	tc := newTestCLI(t, "")
	src := tc.file(t, "square.tl", squareSource)
	require.NoError(t, tc.main(t, "compile", "-package", "progs", "-var", "square", src))
	assert.Contains(t, tc.stdout.String(), "// Code generated by tinylisp from square.tl; DO NOT EDIT.")
	assert.Contains(t, tc.stdout.String(), "package progs")
	assert.Contains(t, tc.stdout.String(), "var square = []lisp.Word{")
}

func TestCLI_input(t *testing.T) {
	tc := newTestCLI(t, "40 2\n")
	src := tc.file(t, "sum.tl", `(add (input) (input)) (input)`)
	require.NoError(t, tc.main(t, "run", src))
	assert.Equal(t, "nil\n", tc.stdout.String(), "expected input to be exhausted")

	tc = newTestCLI(t, "40 2\n")
	src = tc.file(t, "sum.tl", `(print (add (input) (input)))`)
	require.NoError(t, tc.main(t, "run", src))
	assert.Equal(t, "42\n42\n", tc.stdout.String())
}

func TestCLI_timeout(t *testing.T) {
	tc := newTestCLI(t, "")
	src := tc.file(t, "timer.tl", `(lt 0 (timer))`)
	require.NoError(t, tc.main(t, "run", "-timeout", "1m", src))
	assert.Equal(t, "true\n", tc.stdout.String())

	require.NoError(t, tc.main(t, "run", src))
	assert.Equal(t, "false\n", tc.stdout.String(), "no deadline means a timer of -1")
}

func TestCLI_dump(t *testing.T) {
	tc := newTestCLI(t, "")
	src := tc.file(t, "square.tl", squareSource)
	require.NoError(t, tc.main(t, "dump", src))
	out := tc.stdout.String()
	assert.True(t, strings.HasPrefix(out, "# Bytecode (36 bytes)\n"), "got %q", out)
	assert.Contains(t, out, "0x0e print")
	assert.Contains(t, out, "0x16 argv")
	assert.Contains(t, out, "0x04 main")
	assert.Contains(t, out, "# Symbols (5)\n  argv -> 0x16\n")
}

func TestCLI_errors(t *testing.T) {
	tc := newTestCLI(t, "")
	assert.Equal(t, errUsage, tc.main(t))
	assert.Error(t, tc.main(t, "frobnicate"))

	src := tc.file(t, "bad.tl", "(add 1")
	err := tc.main(t, "run", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.tl:1:1: parse error: unclosed list")

	src = tc.file(t, "halt.tl", "(div 1 0)")
	err = tc.main(t, "run", src)
	require.Error(t, err)
	assert.Equal(t, "lisp: divide by zero in (div 1 0)", err.Error())
}

func TestCLI_trace(t *testing.T) {
	var trace bytes.Buffer
	tc := newTestCLI(t, "")
	tc.log = logio.NewLogger(&trace)
	src := tc.file(t, "add.tl", "(add 1 2)")
	require.NoError(t, tc.main(t, "-trace", "run", src))
	assert.Equal(t, "3\n", tc.stdout.String())
	assert.Contains(t, trace.String(), "TRACE: compile: packed")
	assert.Contains(t, trace.String(), "TRACE: > (add 1 2)")
}

type scriptedLines struct {
	lines   []string
	history []string
}

func (sl *scriptedLines) Prompt(string) (string, error) {
	if len(sl.lines) == 0 {
		return "", io.EOF
	}
	line := sl.lines[0]
	sl.lines = sl.lines[1:]
	return line, nil
}

func (sl *scriptedLines) AppendHistory(item string) { sl.history = append(sl.history, item) }

func TestSession(t *testing.T) {
	tc := newTestCLI(t, "")
	tc.cfg = defaultConfig()
	sess, err := tc.newSession()
	require.NoError(t, err)

	lines := &scriptedLines{lines: []string{
		"(define x",
		"  (quote 7))",
		"",
		"x",
		"(print (add x 1)) (y)",
		"(def",
	}}
	require.NoError(t, sess.loop(context.Background(), lines))
	assert.Equal(t, "=> 7\n=> 7\n8\n", tc.stdout.String())
	assert.Equal(t, []string{"(define x", "  (quote 7))", "x", "(print (add x 1)) (y)", "(def"}, lines.history)

	assert.Equal(t, []string{"(define"}, sess.complete("(defi"))
	assert.Equal(t, []string{"(add x"}, sess.complete("(add x"))
	assert.Nil(t, sess.complete("(add "))
}

func TestHost(t *testing.T) {
	h := newHost(strings.NewReader("1 -2 three"), lisp.List{lisp.Int(9)})
	ctx := context.Background()

	v, err := h.argv(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, lisp.List{lisp.Int(9)}, v)

	v, err = h.timer(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, lisp.Int(-1), v)

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return start }
	dctx, cancel := context.WithDeadline(ctx, start.Add(1500*time.Millisecond))
	defer cancel()
	v, err = h.timer(dctx, nil)
	require.NoError(t, err)
	assert.Equal(t, lisp.Int(1500), v)

	for _, want := range []lisp.Value{lisp.Int(1), lisp.Int(-2)} {
		v, err = h.input(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err = h.input(ctx, nil)
	assert.Error(t, err)
	v, err = h.input(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, lisp.Nil, v)

	var warned []string
	h.logf = func(mess string, args ...interface{}) { warned = append(warned, mess) }
	opts := h.options([]string{"argv", "", "clock"})
	assert.Len(t, opts, 1)
	assert.Len(t, warned, 1)
}

func TestCLI_quiet(t *testing.T) {
	var logs bytes.Buffer
	tc := newTestCLI(t, "")
	tc.log = logio.NewLogger(&logs)
	cfg := tc.file(t, "tinylisp.toml", "[compiler]\nforeign = [\"clock\"]\n")
	src := tc.file(t, "one.tl", "(add 1)")

	require.NoError(t, tc.main(t, "-config", cfg, "run", src))
	assert.Equal(t, "1\n", tc.stdout.String())
	assert.Equal(t, "WARN: no host primitive \"clock\" for foreign slot 0\n", logs.String())

	logs.Reset()
	require.NoError(t, tc.main(t, "-config", cfg, "-quiet", "run", src))
	assert.Equal(t, "1\n", tc.stdout.String())
	assert.Empty(t, logs.String())
	assert.Equal(t, 0, tc.log.ExitCode())
}

func TestCLI_runTeeAndDefine(t *testing.T) {
	tc := newTestCLI(t, "")
	src := tc.file(t, "scale.tl", "(print (mul factor 3))")
	teeOut := filepath.Join(tc.dir, "tee.out")

	require.NoError(t, tc.main(t, "run", "-tee", teeOut, "-define", "factor=14", src))
	assert.Equal(t, "42\n42\n", tc.stdout.String())
	teed, err := os.ReadFile(teeOut)
	require.NoError(t, err)
	assert.Equal(t, "42\n", string(teed), "expected only print output in the tee")

	err = tc.main(t, "run", "-define", "scale=2", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `program has no symbol "scale"`)

	assert.Error(t, tc.main(t, "run", "-define", "factor=many", src))
	assert.Error(t, tc.main(t, "run", "-define", "factor", src))
}
