// Package infer implements the ordered superposition calculus: superposition
// (left and right), equality resolution, equality factoring, and an
// unrestricted paramodulation fallback kept only for debugging (spec.md
// §4.3). Every rule is a pure function from premises to a slice of child
// clauses; side-condition failures are not errors, they simply yield no
// child (spec.md §4.7).
package infer

import "github.com/fo-prover/superpose/internal/term"

// position names a subterm of a term by its path from the root: an empty
// path names the term itself, position[0] selects an argument index, and
// so on recursively.
type position []int

// at returns the subterm of t found by following pos.
func at(t *term.Term, pos position) *term.Term {
	for _, i := range pos {
		t = t.Args()[i]
	}
	return t
}

// replaceAt returns a copy of t with the subterm at pos replaced by repl,
// rebuilding only the spine from the root to pos (hash-consing means
// untouched siblings are shared, not copied).
func replaceAt(tb *term.Table, t *term.Term, pos position, repl *term.Term) *term.Term {
	if len(pos) == 0 {
		return repl
	}
	args := t.Args()
	newArgs := make([]*term.Term, len(args))
	copy(newArgs, args)
	newArgs[pos[0]] = replaceAt(tb, args[pos[0]], pos[1:], repl)
	return tb.Func(t.Symbol(), newArgs...)
}

// nonVariablePositions enumerates every position in t that is not a bare
// variable — superposition only ever rewrites into a non-variable subterm
// (spec.md §4.3). The term itself (empty position) is included unless it
// is a variable.
func nonVariablePositions(t *term.Term) []position {
	var out []position
	var walk func(*term.Term, position)
	walk = func(u *term.Term, prefix position) {
		if u.IsVar() {
			return
		}
		out = append(out, append(position{}, prefix...))
		for i, a := range u.Args() {
			walk(a, append(append(position{}, prefix...), i))
		}
	}
	walk(t, nil)
	return out
}
