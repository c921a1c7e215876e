package simplify

import (
	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/subst"
	"github.com/fo-prover/superpose/internal/term"
)

// Subsumes reports whether c subsumes d: there is a substitution σ with
// c·σ a sub-multiset of d (spec.md §4.4). Implemented by backtracking
// multiset matching — try every literal of c against every not-yet-used
// literal of d, extending a shared one-sided matching substitution, never
// binding d's variables.
func Subsumes(tb *term.Table, c, d *clause.Clause) bool {
	used := make([]bool, len(d.Literals))
	sigma := subst.New(tb)
	return subsumeFrom(tb, c.Literals, d.Literals, used, sigma, 0)
}

func subsumeFrom(tb *term.Table, cLits, dLits []clause.Literal, used []bool, sigma *subst.Substitution, i int) bool {
	if i == len(cLits) {
		return true
	}
	lit := cLits[i]
	for j, cand := range dLits {
		if used[j] {
			continue
		}
		if lit.Positive != cand.Positive {
			continue
		}
		trial := cloneSubst(tb, sigma)
		if literalMatches(tb, trial, lit, cand) {
			used[j] = true
			if subsumeFrom(tb, cLits, dLits, used, trial, i+1) {
				return true
			}
			used[j] = false
		}
	}
	return false
}

// literalMatches tries to extend sigma so that lit's two sides match
// cand's two sides, trying both orientations since equality is symmetric.
// Each orientation gets its own clone of sigma: a partial match that binds
// a variable and then fails on the second conjunct must not leave that
// binding behind for the other orientation to stumble over.
func literalMatches(tb *term.Table, sigma *subst.Substitution, lit, cand clause.Literal) bool {
	direct := cloneSubst(tb, sigma)
	if extendMatch(tb, direct, lit.LHS, cand.LHS) && extendMatch(tb, direct, lit.RHS, cand.RHS) {
		*sigma = *direct
		return true
	}
	cross := cloneSubst(tb, sigma)
	if extendMatch(tb, cross, lit.LHS, cand.RHS) && extendMatch(tb, cross, lit.RHS, cand.LHS) {
		*sigma = *cross
		return true
	}
	return false
}

// extendMatch tries to extend sigma (in place) so that pattern·sigma =
// subject, consistent with any bindings sigma already carries.
func extendMatch(tb *term.Table, sigma *subst.Substitution, pattern, subject *term.Term) bool {
	if pattern.IsVar() {
		if bound, ok := sigma.Lookup(pattern.VarID()); ok {
			return bound == subject
		}
		sigma.Bind(pattern.VarID(), subject)
		return true
	}
	if subject.IsVar() || pattern.SymbolID() != subject.SymbolID() {
		return false
	}
	pa, sa := pattern.Args(), subject.Args()
	for i := range pa {
		if !extendMatch(tb, sigma, pa[i], sa[i]) {
			return false
		}
	}
	return true
}

func cloneSubst(tb *term.Table, sigma *subst.Substitution) *subst.Substitution {
	clone := subst.New(tb)
	for _, v := range sigma.Domain() {
		t, _ := sigma.Lookup(v)
		clone.Bind(v, t)
	}
	return clone
}
