/* Command tinylisp: a very small lisp, compiled to 96-bit words

tinylisp programs are made of lists, small integers, and names. The compiler
turns each name into a single byte opcode, each integer into a masked 8-byte
literal, and each list into an open byte, its elements, and a close byte. The
resulting bytecode is then padded to a whole number of 12 byte words and
packed as three 32-bit chunks per word, so that a program may be carried as
nothing more than a list of integers.

The packing has one rule that the rest of the design bends around: no 4-byte
aligned chunk of real program content may be all zero. The loader is free to
drop zero chunks, so a zero chunk in the middle of a program would silently
corrupt it. Integer literals are XOR-ed with a mask having no zero bytes,
which keeps small numbers away from zero, and the compiler checks every
content chunk afterwards anyway.

Usage:

	tinylisp [-config file] [-trace] [-quiet] compile [-o file] [-format go|decimal|cbor] [-symbols] src.tl
	tinylisp [-config file] [-trace] [-quiet] run [-timeout d] [-tee file] [-define name=int]... file [int args...]
	tinylisp [-config file] [-trace] [-quiet] dump [-raw] file
	tinylisp [-config file] [-trace] [-quiet] repl

Run copies print output to the -tee file as well, and binds each -define
name to its integer before evaluating; the name must occur in the program.

Both run and dump take either a source file (.tl or .lisp) or a compiled
artifact in any of the output formats; artifacts are recognized by content.

The Language

Every program is a sequence of top level forms, evaluated in order:

	; factorial, in constant stack
	(define fact (quote ((n acc)
	  (if (lt n 2) acc (fact (sub n 1) (mul n acc))))))
	(define main (quote ((n) (fact n 1))))

Functions are quoted lists of a parameter list and a body. A function whose
head is nil receives its arguments unevaluated. Running a program that
defines main then calls main with the integer command line arguments.

The special forms are quote, define, if, let, and eval. The primitives are
cons, head, tail, nil?, print, add, sub, mul, div, eq, ge, and lt. Up to 8
foreign primitives are supplied by the host; by default these are:

	(argv)  the integer command line arguments
	(timer) milliseconds left before the run timeout, or -1
	(input) the next integer read from standard input, or nil

Configuration

Defaults are read from ./tinylisp.toml when present, or from the -config file:

	[compiler]
	mask = "0x5da3c6e17b2f9a4b"
	padding = "leading"   # or "trailing"
	foreign = ["argv", "timer", "input"]

	[runtime]
	timeout = "10s"
	trace = false

	[output]
	format = "go"         # or "decimal", "cbor"
	package = "main"
	var = "program"

See the compiler and lisp packages for the details of each stage.
*/
package main
