// Package fileinput reads runes sequentially from a queue of named input
// streams, tracking the location of every rune read.
package fileinput

import (
	"fmt"
	"io"

	"github.com/jcorbin/tinylisp/internal/runeio"
)

// Location names a position in an Input file.
type Location struct {
	Name string
	Line int
	Col  int
}

func (loc Location) String() string {
	if loc.Col == 0 {
		return fmt.Sprintf("%v:%v", loc.Name, loc.Line)
	}
	return fmt.Sprintf("%v:%v:%v", loc.Name, loc.Line, loc.Col)
}

// Input implements sequential rune reading through a Queue of one or more
// input streams. Loc is the location of the most recently read rune; a
// single rune may be pushed back with UnreadRune.
type Input struct {
	Queue []io.Reader
	Loc   Location

	rr   io.RuneReader
	prev Location

	unread  bool
	last    rune
	lastLoc Location
}

// ReadRune reads one rune, moving on to the next queued stream at the end
// of the current one. Returns io.EOF once every stream is exhausted.
func (in *Input) ReadRune() (rune, int, error) {
	if in.unread {
		in.unread = false
		in.prev, in.Loc = in.Loc, in.lastLoc
		return in.last, len(string(in.last)), nil
	}
	for {
		if in.rr == nil && !in.nextIn() {
			return 0, 0, io.EOF
		}
		r, n, err := in.rr.ReadRune()
		if n > 0 {
			in.advance(r)
			return r, n, nil
		}
		if err == io.EOF {
			in.closeIn()
			continue
		}
		return 0, 0, err
	}
}

// UnreadRune pushes back the last rune read; only one level is supported.
func (in *Input) UnreadRune() error {
	if in.unread {
		return fmt.Errorf("fileinput: double unread at %v", in.Loc)
	}
	in.unread = true
	in.lastLoc = in.Loc
	in.Loc = in.prev
	return nil
}

func (in *Input) advance(r rune) {
	in.prev = in.Loc
	if in.last == '\n' || in.Loc.Line == 0 {
		in.Loc.Line++
		in.Loc.Col = 1
	} else {
		in.Loc.Col++
	}
	in.last = r
}

func (in *Input) closeIn() {
	if cl, ok := in.rr.(io.Closer); ok {
		cl.Close()
	}
	in.rr = nil
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.rr = runeio.NewReader(r)
	in.Loc = Location{Name: nameOf(r)}
	in.prev = in.Loc
	in.last = 0
	return true
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}

// Named attaches a name to r for use in Locations.
func Named(name string, r io.Reader) io.Reader { return namedReader{r, name} }

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }
