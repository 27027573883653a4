package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"regexp"
	"strconv"

	"github.com/jcorbin/tinylisp/lisp"
)

// EncodeGo renders art as gofmt-ed Go source declaring a word table and
// its mask, with the symbol table in the table's doc comment.
func EncodeGo(art *Artifact, opts GoOptions) ([]byte, error) {
	if opts.Package == "" {
		opts.Package = "main"
	}
	if opts.Var == "" {
		opts.Var = "program"
	}

	var buf bytes.Buffer
	buf.Grow(64 * (len(art.Words) + len(art.Symbols) + 8))

	buf.WriteString("// Code generated by tinylisp")
	if art.Source != "" {
		buf.WriteString(" from ")
		buf.WriteString(art.Source)
	}
	buf.WriteString("; DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %v\n\n", opts.Package)
	buf.WriteString("import \"github.com/jcorbin/tinylisp/lisp\"\n\n")

	fmt.Fprintf(&buf, "// %vMask unmasks the integer literals of %v.\n", opts.Var, opts.Var)
	fmt.Fprintf(&buf, "const %vMask uint64 = 0x%016x\n\n", opts.Var, art.Mask)

	fmt.Fprintf(&buf, "// %v is a packed program of %v words.\n", opts.Var, len(art.Words))
	if len(art.Symbols) > 0 {
		buf.WriteString("//\n// Symbols:\n//\n")
		for _, sym := range art.Symbols {
			fmt.Fprintf(&buf, "//\t%v -> 0x%02x\n", sym.Name, byte(sym.ID))
		}
	}
	fmt.Fprintf(&buf, "var %v = []lisp.Word{\n", opts.Var)
	for _, word := range art.Words {
		fmt.Fprintf(&buf, "\t{0x%08x, 0x%08x, 0x%08x}, // %v\n", word[0], word[1], word[2], word)
	}
	buf.WriteString("}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("artifact: formatting generated source: %w", err)
	}
	return src, nil
}

var (
	goMaskPattern   = regexp.MustCompile(`(?m)^const \w+Mask uint64 = (0x[0-9a-fA-F]+)$`)
	goSourcePattern = regexp.MustCompile(`(?m)^// Code generated by tinylisp from (.+); DO NOT EDIT\.$`)
	goSymbolPattern = regexp.MustCompile(`(?m)^//\t(\S+) -> (0x[0-9a-fA-F]{2})$`)
	goWordPattern   = regexp.MustCompile(`\{(0x[0-9a-fA-F]+), (0x[0-9a-fA-F]+), (0x[0-9a-fA-F]+)\}`)
)

// DecodeGo recovers an artifact from source written by EncodeGo.
func DecodeGo(src []byte) (*Artifact, error) {
	art := &Artifact{Version: Version}

	m := goMaskPattern.FindSubmatch(src)
	if m == nil {
		return nil, errors.New("artifact: no mask declaration in go source")
	}
	mask, err := strconv.ParseUint(string(m[1]), 0, 64)
	if err != nil {
		return nil, fmt.Errorf("artifact: invalid mask: %w", err)
	}
	art.Mask = mask

	if m := goSourcePattern.FindSubmatch(src); m != nil {
		art.Source = string(m[1])
	}

	for _, m := range goSymbolPattern.FindAllSubmatch(src, -1) {
		id, err := strconv.ParseUint(string(m[2]), 0, 8)
		if err != nil {
			return nil, fmt.Errorf("artifact: invalid symbol id: %w", err)
		}
		art.Symbols = append(art.Symbols, Symbol{string(m[1]), lisp.Atom(id)})
	}

	for _, m := range goWordPattern.FindAllSubmatch(src, -1) {
		var word lisp.Word
		for i := range word {
			n, err := strconv.ParseUint(string(m[1+i]), 0, 32)
			if err != nil {
				return nil, fmt.Errorf("artifact: invalid word group: %w", err)
			}
			word[i] = uint32(n)
		}
		art.Words = append(art.Words, word)
	}
	return art, nil
}
