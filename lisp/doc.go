/* Package lisp: a tiny Lisp whose programs are just data

The language has one runtime type, Value, and no separate syntax tree: the
loader turns packed bytecode back into Lists, Atoms and Ints, and the
evaluator walks those same Lists.  A function is nothing more than a two
element list of a parameter list and a body.

Atoms are single bytes.  The low end of the byte space is reserved for
structure (pad, open-list, close-list, integer marker), the entry point,
the special forms, the built in primitives, and a small block of slots the
host fills with foreign functions.  Everything above that names user
symbols.  There are therefore at most 256 distinguishable names in any one
program.

Special forms

	(eval x)        evaluate x, then evaluate the result
	(quote x)       x, unevaluated
	(define s x)    evaluate x in the global frame, bind it to s there
	(if c t e)      evaluate c; then t if it is truthy, else e
	(let s x body)  bind s to x in the innermost frame, then evaluate body

Applying a function binds its parameters in a new frame pushed onto the
*calling* environment.  There are no captured closure environments: names
resolve dynamically, against whatever is on the chain at call time.
Parameters and arguments are zipped positionally, silently dropping the
excess of the longer list.  A function whose parameter list is empty
receives its arguments unevaluated; written as (nil params body) it also
binds them.

Truthiness

Nil and the Bool false are false; every other value is true.  Predicates
(nil?, eq, ge, lt) always return a Bool.

Packed words

The deployed form of a program is a slice of 96-bit Words, three 32-bit
groups each.  Any group that is entirely zero is dropped while unpacking;
the compiler guarantees that no aligned 4-byte window of real bytecode is
ever all zero, masking integer literals with a fixed 64-bit key to that end.
*/
package lisp
