// Package artifact encodes packed programs for storage and embedding: as Go
// source declaring a word table, as decimal word literals one per line, or
// as a CBOR container.
package artifact

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/tinylisp/compiler"
	"github.com/jcorbin/tinylisp/lisp"
)

// Version is the current artifact container version.
const Version = 1

// Artifact is a packed program along with what it takes to load and
// describe it.
type Artifact struct {
	Version int         `cbor:"1,keyasint"`
	Mask    uint64      `cbor:"2,keyasint"`
	Words   []lisp.Word `cbor:"3,keyasint"`
	Symbols []Symbol    `cbor:"4,keyasint,omitempty"`
	Source  string      `cbor:"5,keyasint,omitempty"`
}

// Symbol is one named non-reserved atom.
type Symbol struct {
	Name string    `cbor:"1,keyasint"`
	ID   lisp.Atom `cbor:"2,keyasint"`
}

// FromProgram captures a compiled program, naming its foreign and user
// symbols.
func FromProgram(prog *compiler.Program, source string) *Artifact {
	art := &Artifact{
		Version: Version,
		Mask:    prog.Mask,
		Words:   prog.Words,
		Source:  source,
	}
	for _, ent := range prog.Symbols.Entries(true) {
		if ent.ID >= lisp.ForeignBase {
			art.Symbols = append(art.Symbols, Symbol{ent.Name, ent.ID})
		}
	}
	return art
}

// Load decodes the artifact's root expression.
func (art *Artifact) Load() (lisp.Value, error) {
	return lisp.LoadMasked(art.Words, art.Mask)
}

// Names returns a namer covering the reserved names and the artifact's
// symbols.
func (art *Artifact) Names() lisp.Namer {
	var names [lisp.MaxSymbols]string
	for _, sym := range art.Symbols {
		names[sym.ID] = sym.Name
	}
	return lisp.NamerFunc(func(a lisp.Atom) string {
		if name := names[a]; name != "" {
			return name
		}
		return lisp.ReservedName(a)
	})
}

// Lookup returns the atom named name, and whether there is one.
func (art *Artifact) Lookup(name string) (lisp.Atom, bool) {
	for _, sym := range art.Symbols {
		if sym.Name == name {
			return sym.ID, true
		}
	}
	return 0, false
}

// Format is an artifact encoding.
type Format int

// Artifact formats.
const (
	FormatGo Format = iota
	FormatDecimal
	FormatCBOR
)

var formatNames = [...]string{
	FormatGo:      "go",
	FormatDecimal: "decimal",
	FormatCBOR:    "cbor",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(s, name) {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("invalid artifact format %q, expected go, decimal, or cbor", s)
}

// GoOptions names the declarations of the go format.
type GoOptions struct {
	Package string
	Var     string
}

// Write encodes art to w in format f.
func Write(w io.Writer, art *Artifact, f Format, opts GoOptions) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatGo:
		data, err = EncodeGo(art, opts)
	case FormatDecimal:
		var buf bytes.Buffer
		err = WriteDecimal(&buf, art)
		data = buf.Bytes()
	case FormatCBOR:
		data, err = EncodeCBOR(art)
	default:
		err = fmt.Errorf("unsupported artifact format %v", f)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Detect sniffs the format of encoded artifact data.
func Detect(data []byte) Format {
	if len(data) > 0 && data[0]&0xe0 == 0xa0 {
		// CBOR major type 5: map
		return FormatCBOR
	}
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("//")) || bytes.HasPrefix(trimmed, []byte("package ")) {
		return FormatGo
	}
	return FormatDecimal
}

// Read decodes an artifact of any format from r.
func Read(r io.Reader) (*Artifact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch Detect(data) {
	case FormatCBOR:
		return DecodeCBOR(data)
	case FormatGo:
		return DecodeGo(data)
	default:
		return ReadDecimal(bytes.NewReader(data))
	}
}
