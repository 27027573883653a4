package artifact

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jcorbin/tinylisp/lisp"
)

// WriteDecimal writes art as one unsigned decimal word literal per line,
// preceded by "#" directive lines carrying the mask and symbols.
func WriteDecimal(w io.Writer, art *Artifact) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# tinylisp mask %#016x\n", art.Mask)
	if art.Source != "" {
		fmt.Fprintf(bw, "# source %v\n", art.Source)
	}
	for _, sym := range art.Symbols {
		fmt.Fprintf(bw, "# symbol %v 0x%02x\n", sym.Name, byte(sym.ID))
	}
	for _, word := range art.Words {
		bw.WriteString(word.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ReadDecimal parses the WriteDecimal form. Without a mask directive the
// words are assumed to be masked with lisp.DefaultMask.
func ReadDecimal(r io.Reader) (*Artifact, error) {
	art := &Artifact{Version: Version, Mask: lisp.DefaultMask}
	sc := bufio.NewScanner(r)
	for lineno := 1; sc.Scan(); lineno++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if err := art.directive(strings.Fields(line[1:])); err != nil {
				return nil, fmt.Errorf("line %v: %w", lineno, err)
			}
			continue
		}
		word, err := lisp.ParseWord(line)
		if err != nil {
			return nil, fmt.Errorf("line %v: %w", lineno, err)
		}
		art.Words = append(art.Words, word)
	}
	return art, sc.Err()
}

func (art *Artifact) directive(fields []string) error {
	switch {
	case len(fields) == 3 && fields[0] == "tinylisp" && fields[1] == "mask":
		mask, err := strconv.ParseUint(fields[2], 0, 64)
		if err != nil {
			return fmt.Errorf("invalid mask: %w", err)
		}
		art.Mask = mask

	case len(fields) >= 2 && fields[0] == "source":
		art.Source = strings.Join(fields[1:], " ")

	case len(fields) == 3 && fields[0] == "symbol":
		id, err := strconv.ParseUint(fields[2], 0, 8)
		if err != nil {
			return fmt.Errorf("invalid symbol id: %w", err)
		}
		art.Symbols = append(art.Symbols, Symbol{fields[1], lisp.Atom(id)})
	}
	// anything else is a comment
	return nil
}
