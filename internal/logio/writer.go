package logio

import (
	"bytes"
	"sync"
)

// Writer adapts a printf-style log function, such as testing.T.Logf, into an
// io.Writer; each completed line becomes one Logf call.
type Writer struct {
	Logf   func(string, ...interface{})
	Prefix string

	mu      sync.Mutex
	partial []byte
}

// Write logs every line completed by p, holding back any trailing partial
// line until a later Write or Flush completes it.
func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	n := len(p)
	for len(p) > 0 {
		line, rest, complete := bytes.Cut(p, []byte{'\n'})
		if !complete {
			lw.partial = append(lw.partial, line...)
			break
		}
		lw.logLine(line)
		p = rest
	}
	return n, nil
}

// Flush logs any held back partial line.
func (lw *Writer) Flush() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if len(lw.partial) > 0 {
		lw.logLine(nil)
	}
	return nil
}

// Close calls Flush.
func (lw *Writer) Close() error { return lw.Flush() }

func (lw *Writer) logLine(tail []byte) {
	line := append(lw.partial, tail...)
	lw.Logf("%s%s", lw.Prefix, line)
	lw.partial = lw.partial[:0]
}
