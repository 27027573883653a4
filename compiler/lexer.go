package compiler

import (
	"io"
	"strconv"
	"strings"

	"github.com/jcorbin/tinylisp/internal/fileinput"
	"github.com/jcorbin/tinylisp/internal/runeio"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenOpen
	tokenClose
	tokenIdent
	tokenInt
)

var tokenNames = [...]string{
	tokenEOF:   "end of input",
	tokenOpen:  "(",
	tokenClose: ")",
	tokenIdent: "identifier",
	tokenInt:   "integer",
}

func (tt tokenType) String() string { return tokenNames[tt] }

type token struct {
	typ tokenType
	loc fileinput.Location
	lit string
	n   int64
}

// lexer splits surface syntax into tokens: parentheses, identifiers of
// letters, '-', '_' and '?', and optionally negative decimal integers.
// Whitespace and ';' line comments are skipped.
type lexer struct {
	in fileinput.Input
	sb strings.Builder
}

func newLexer(name string, r io.Reader) *lexer {
	if name != "" {
		r = fileinput.Named(name, r)
	} else if _, named := r.(interface{ Name() string }); !named {
		r = fileinput.Named("<input>", r)
	}
	return &lexer{in: fileinput.Input{Queue: []io.Reader{r}}}
}

func isIdentRune(r rune) bool {
	return 'a' <= r && r <= 'z' ||
		'A' <= r && r <= 'Z' ||
		r == '-' || r == '_' || r == '?'
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func validIdentifier(s string) bool {
	if s == "" || s == "nil" {
		return false
	}
	for _, r := range s {
		if !isIdentRune(r) {
			return false
		}
	}
	return !(s[0] == '-' && len(s) > 1 && isDigit(rune(s[1])))
}

func (lex *lexer) next() (tok token, err error) {
	r, err := lex.skipSpace()
	if err == io.EOF {
		tok.loc = lex.in.Loc
		return tok, nil
	} else if err != nil {
		return tok, err
	}
	tok.loc = lex.in.Loc

	switch {
	case r == '(':
		tok.typ = tokenOpen
		return tok, nil

	case r == ')':
		tok.typ = tokenClose
		return tok, nil

	case r == '-':
		r2, _, err := lex.in.ReadRune()
		if err != nil && err != io.EOF {
			return tok, err
		}
		if err == io.EOF {
			return lex.ident(tok, r)
		}
		if err := lex.in.UnreadRune(); err != nil {
			return tok, err
		}
		if isDigit(r2) {
			return lex.integer(tok, r)
		}
		return lex.ident(tok, r)

	case isDigit(r):
		return lex.integer(tok, r)

	case isIdentRune(r):
		return lex.ident(tok, r)
	}

	return tok, &ParseError{Location: tok.loc, Msg: "unexpected " + runeio.Describe(r)}
}

func (lex *lexer) skipSpace() (rune, error) {
	comment := false
	for {
		r, _, err := lex.in.ReadRune()
		if err != nil {
			return 0, err
		}
		switch {
		case comment:
			comment = r != '\n'
		case r == ';':
			comment = true
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '\f', r == '\v':
		default:
			return r, nil
		}
	}
}

// scan accumulates first and every following rune accepted by class.
func (lex *lexer) scan(first rune, class func(rune) bool) (string, error) {
	lex.sb.Reset()
	lex.sb.WriteRune(first)
	for {
		r, _, err := lex.in.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", err
		}
		if !class(r) {
			if err := lex.in.UnreadRune(); err != nil {
				return "", err
			}
			break
		}
		lex.sb.WriteRune(r)
	}
	return lex.sb.String(), nil
}

func (lex *lexer) ident(tok token, first rune) (token, error) {
	s, err := lex.scan(first, isIdentRune)
	tok.typ, tok.lit = tokenIdent, s
	return tok, err
}

func (lex *lexer) integer(tok token, first rune) (token, error) {
	s, err := lex.scan(first, isDigit)
	if err != nil {
		return tok, err
	}
	tok.typ, tok.lit = tokenInt, s
	tok.n, err = strconv.ParseInt(s, 10, 64)
	if err != nil {
		return tok, &ParseError{Location: tok.loc, Msg: "integer literal " + s + " out of 64-bit range"}
	}
	return tok, nil
}
