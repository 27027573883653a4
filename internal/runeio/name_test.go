package runeio_test

import (
	"strings"
	"testing"

	"github.com/jcorbin/tinylisp/internal/runeio"
	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	for _, tc := range []struct {
		r    rune
		want string
	}{
		{0x00, "<NUL> (^@)"},
		{0x1b, "<ESC> (^[)"},
		{0x7f, "<DEL> (^?)"},
		{'#', "'#'"},
		{0x9b, "U+009B"},
	} {
		assert.Equal(t, tc.want, runeio.Describe(tc.r), "describe %U", tc.r)
	}
}

func TestNewReader(t *testing.T) {
	sr := strings.NewReader("hi")
	assert.Equal(t, sr, runeio.NewReader(sr), "expected rune readers to pass through")

	rr := runeio.NewReader(struct{ *strings.Reader }{sr})
	r, _, err := rr.ReadRune()
	assert.NoError(t, err)
	assert.Equal(t, 'h', r)
}
