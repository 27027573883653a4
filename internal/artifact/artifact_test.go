package artifact_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/tinylisp/compiler"
	"github.com/jcorbin/tinylisp/internal/artifact"
	"github.com/jcorbin/tinylisp/lisp"
)

const testSource = `
	(define sq (quote ((x) (mul x x))))
	(print (sq -12) (argv))
`

func compileTest(t *testing.T) (*compiler.Program, *artifact.Artifact) {
	c, err := compiler.New()
	require.NoError(t, err)
	prog, err := c.CompileString(testSource)
	require.NoError(t, err)
	return prog, artifact.FromProgram(prog, "sq.tl")
}

func TestFromProgram(t *testing.T) {
	prog, art := compileTest(t)
	assert.Equal(t, artifact.Version, art.Version)
	assert.Equal(t, lisp.DefaultMask, art.Mask)
	assert.Equal(t, prog.Words, art.Words)
	assert.Equal(t, []artifact.Symbol{
		{"argv", lisp.ForeignAtom(0)},
		{"timer", lisp.ForeignAtom(1)},
		{"input", lisp.ForeignAtom(2)},
		{"sq", lisp.UserBase},
		{"x", lisp.UserBase + 1},
	}, art.Symbols)

	names := art.Names()
	assert.Equal(t, "sq", names.Name(lisp.UserBase))
	assert.Equal(t, "mul", names.Name(lisp.OpMul))
	assert.Equal(t, "", names.Name(lisp.UserBase+2))

	id, ok := art.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, lisp.UserBase+1, id)

	root, err := art.Load()
	require.NoError(t, err)
	assert.True(t, lisp.Equal(prog.Root, root))
}

func TestRoundTrip(t *testing.T) {
	_, art := compileTest(t)
	for _, format := range []artifact.Format{
		artifact.FormatGo,
		artifact.FormatDecimal,
		artifact.FormatCBOR,
	} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, artifact.Write(&buf, art, format, artifact.GoOptions{Package: "progs", Var: "square"}))
			assert.Equal(t, format, artifact.Detect(buf.Bytes()))

			back, err := artifact.Read(&buf)
			require.NoError(t, err)
			assert.Equal(t, art, back)
		})
	}
}

func TestEncodeGo(t *testing.T) {
	art := &artifact.Artifact{
		Version: artifact.Version,
		Mask:    lisp.DefaultMask,
		Words:   []lisp.Word{{0x0f010101, 0x00000102, 0}},
		Symbols: []artifact.Symbol{{"foo", lisp.UserBase}},
	}
	src, err := artifact.EncodeGo(art, artifact.GoOptions{})
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"// Code generated by tinylisp; DO NOT EDIT.",
		"",
		"package main",
		"",
		`import "github.com/jcorbin/tinylisp/lisp"`,
		"",
		"// programMask unmasks the integer literals of program.",
		"const programMask uint64 = 0x5da3c6e17b2f9a4b",
		"",
		"// program is a packed program of 1 words.",
		"//",
		"// Symbols:",
		"//",
		"//\tfoo -> 0x1e",
		"var program = []lisp.Word{",
		"\t{0x0f010101, 0x00000102, 0x00000000}, // 1108353286401",
		"}",
		"",
	}, "\n"), string(src))
}

func TestDecimal(t *testing.T) {
	art, err := artifact.ReadDecimal(strings.NewReader(`
		# a hand written program
		33685761
	`))
	require.NoError(t, err)
	assert.Equal(t, lisp.DefaultMask, art.Mask, "expected the default mask")
	assert.Equal(t, []lisp.Word{{0x02020101, 0, 0}}, art.Words)

	_, err = artifact.ReadDecimal(strings.NewReader("12\nbogus\n"))
	assert.EqualError(t, err, `line 2: invalid word literal "bogus"`)

	_, err = artifact.ReadDecimal(strings.NewReader("# tinylisp mask nope\n"))
	assert.Error(t, err)
}

func TestDecodeCBOR_version(t *testing.T) {
	data, err := cbor.Marshal(&artifact.Artifact{Version: 99})
	require.NoError(t, err)
	_, err = artifact.DecodeCBOR(data)
	assert.EqualError(t, err, "artifact: unsupported version 99, expected 1")

	_, err = artifact.DecodeCBOR([]byte{0xa1})
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := artifact.ParseFormat("CBOR")
	require.NoError(t, err)
	assert.Equal(t, artifact.FormatCBOR, f)
	_, err = artifact.ParseFormat("json")
	assert.Error(t, err)
}

func TestEncodeCBOR_deterministic(t *testing.T) {
	_, art := compileTest(t)
	a, err := artifact.EncodeCBOR(art)
	require.NoError(t, err)
	b, err := artifact.EncodeCBOR(art)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
