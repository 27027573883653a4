package logio_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/tinylisp/internal/logio"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logio.NewLogger(&buf)

	log.Printf("INFO", "hello %v", "world")
	log.Leveledf("TRACE")("no args")
	log.Mute("TRACE")
	log.Leveledf("TRACE")("muted")
	assert.Equal(t, 0, log.ExitCode())

	log.ErrorIf(nil)
	assert.Equal(t, 0, log.ExitCode())
	log.ErrorIf(errors.New("bad"))
	assert.Equal(t, 1, log.ExitCode())

	assert.Equal(t, "INFO: hello world\nTRACE: no args\nERROR: bad\n", buf.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("nope") }

func TestLogger_outputFailure(t *testing.T) {
	log := logio.NewLogger(failWriter{})
	log.Printf("INFO", "lost")
	assert.Equal(t, 2, log.ExitCode())
}

func TestWriter(t *testing.T) {
	var lines []string
	lw := &logio.Writer{
		Prefix: "> ",
		Logf: func(mess string, args ...interface{}) {
			lines = append(lines, fmt.Sprintf(mess, args...))
		},
	}
	fmt.Fprint(lw, "one\ntw")
	assert.Equal(t, []string{"> one"}, lines)
	fmt.Fprint(lw, "o\nthree")
	assert.Equal(t, []string{"> one", "> two"}, lines)
	assert.NoError(t, lw.Close())
	assert.Equal(t, []string{"> one", "> two", "> three"}, lines)
}
