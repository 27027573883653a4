// Package flushio provides buffered writers that must be explicitly flushed
// at evaluation boundaries.
package flushio

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// Discard is a WriteFlusher that drops everything.
var Discard WriteFlusher = passthru{io.Discard}

// NewWriteFlusher returns w itself if it can already flush, Discard for a nil
// or discarding w, w with a noop Flush for in memory buffers, and a
// bufio.Writer around anything else.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case nil:
		return Discard
	case WriteFlusher:
		return impl
	case *bytes.Buffer, *strings.Builder:
		return passthru{w}
	}
	if w == io.Discard {
		return Discard
	}
	return bufio.NewWriter(w)
}

// passthru writes straight through, so has nothing to flush.
type passthru struct{ io.Writer }

func (passthru) Flush() error { return nil }

// Tee returns a WriteFlusher that writes to and flushes every one of wfs.
// Discard and nil members are dropped.
func Tee(wfs ...WriteFlusher) WriteFlusher {
	var t tee
	for _, wf := range wfs {
		if wf != nil && wf != Discard {
			t.wfs = append(t.wfs, wf)
		}
	}
	switch len(t.wfs) {
	case 0:
		return Discard
	case 1:
		return t.wfs[0]
	}
	ws := make([]io.Writer, len(t.wfs))
	for i, wf := range t.wfs {
		ws[i] = wf
	}
	t.Writer = io.MultiWriter(ws...)
	return t
}

type tee struct {
	io.Writer
	wfs []WriteFlusher
}

// Flush flushes every member, returning all of their errors.
func (t tee) Flush() error {
	var errs []error
	for _, wf := range t.wfs {
		if err := wf.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
