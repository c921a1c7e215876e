package simplify

import (
	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/index"
	"github.com/fo-prover/superpose/internal/order"
	"github.com/fo-prover/superpose/internal/term"
)

// rewriteStep looks for a single rewrite opportunity for t: either at its
// root, via the discrimination tree's generalization query, or — failing
// that — recursively within its arguments. Returns the rewritten term and
// true if a step was applied, else t unchanged and false.
func rewriteStep(tb *term.Table, ord order.Ordering, dt *index.DiscriminationTree, memo *index.RewriteMemo, t *term.Term) (*term.Term, bool) {
	if memo != nil && memo.Irreducible(t) {
		return t, false
	}
	for _, gen := range dt.IterGeneralizations(t) {
		rSigma := gen.Subst.Apply(gen.Rule.RHS)
		if ord.Gt(t, rSigma) {
			return rSigma, true
		}
	}
	if t.IsVar() {
		return t, false
	}
	args := t.Args()
	if len(args) == 0 {
		if memo != nil {
			memo.MarkIrreducible(t)
		}
		return t, false
	}
	newArgs := make([]*term.Term, len(args))
	changed := false
	for i, a := range args {
		na, ch := rewriteStep(tb, ord, dt, memo, a)
		newArgs[i] = na
		if ch {
			changed = true
		}
	}
	if !changed {
		if memo != nil {
			memo.MarkIrreducible(t)
		}
		return t, false
	}
	return tb.Func(t.Symbol(), newArgs...), true
}

// RewriteToNormalForm iterates rewriteStep to fixpoint (spec.md §4.4:
// rewrite_literals iterates rewrite steps to fixpoint). The discrimination
// tree accelerates the generalization query at every position visited.
func RewriteToNormalForm(tb *term.Table, ord order.Ordering, dt *index.DiscriminationTree, memo *index.RewriteMemo, t *term.Term) *term.Term {
	for {
		nt, changed := rewriteStep(tb, ord, dt, memo, t)
		if !changed {
			return t
		}
		t = nt
	}
}

// RewriteLiterals normalizes every literal of c against the active rule
// set, reporting whether anything changed. A negative literal that
// normalizes to s ≠ s is dropped outright rather than kept (simplify-
// reflect's negative case: such a literal is provably false, so it
// contributes nothing to the disjunction and can be deleted — spec.md
// §4.4, §9).
func RewriteLiterals(tb *term.Table, ord order.Ordering, dt *index.DiscriminationTree, memo *index.RewriteMemo, c *clause.Clause) (*clause.Clause, bool) {
	changed := false
	out := make([]clause.Literal, 0, len(c.Literals))
	for _, l := range c.Literals {
		nl := clause.Literal{
			Positive: l.Positive,
			LHS:      RewriteToNormalForm(tb, ord, dt, memo, l.LHS),
			RHS:      RewriteToNormalForm(tb, ord, dt, memo, l.RHS),
		}
		if nl.LHS != l.LHS || nl.RHS != l.RHS {
			changed = true
		}
		if nl.IsTrivialNegative() {
			changed = true
			continue
		}
		out = append(out, nl)
	}
	if !changed {
		return c, false
	}
	return c.WithLiterals(out), true
}
