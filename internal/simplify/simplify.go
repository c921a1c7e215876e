package simplify

import (
	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/index"
	"github.com/fo-prover/superpose/internal/order"
	"github.com/fo-prover/superpose/internal/term"
)

// Normalize rewrites c to normal form against the active rule set (looping
// RewriteLiterals to fixpoint — dropping a provably-false negative literal
// can occasionally free up further rewrite opportunities elsewhere in the
// clause) and then removes duplicate literals. It does not check for
// tautology or perform subsumption: callers compose those separately, per
// the given-clause loop's own control flow (spec.md §4.6).
func Normalize(tb *term.Table, ord order.Ordering, dt *index.DiscriminationTree, memo *index.RewriteMemo, c *clause.Clause) *clause.Clause {
	for {
		next, changed := RewriteLiterals(tb, ord, dt, memo, c)
		if !changed {
			c = next
			break
		}
		c = next
	}
	return c.WithLiterals(clause.DedupeLiterals(c.Literals))
}

// ForwardSubsumed reports whether some clause in candidates subsumes c.
func ForwardSubsumed(tb *term.Table, c *clause.Clause, candidates []*clause.Clause) bool {
	for _, cand := range candidates {
		if cand.ID == c.ID {
			continue
		}
		if Subsumes(tb, cand, c) {
			return true
		}
	}
	return false
}

// BackwardSubsumed returns every candidate that c subsumes, i.e. every
// active clause that becomes redundant now that c has entered the active
// set.
func BackwardSubsumed(tb *term.Table, c *clause.Clause, candidates []*clause.Clause) []*clause.Clause {
	var out []*clause.Clause
	for _, cand := range candidates {
		if cand.ID == c.ID {
			continue
		}
		if Subsumes(tb, c, cand) {
			out = append(out, cand)
		}
	}
	return out
}
