package saturate

import (
	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/index"
	"github.com/fo-prover/superpose/internal/order"
	"github.com/fo-prover/superpose/internal/simplify"
	"github.com/fo-prover/superpose/internal/term"
)

// activeSet is the given-clause loop's "active" state (spec.md §4.6): the
// live clauses themselves, plus the derived indices kept in lockstep with
// membership — a discrimination tree of oriented unit equations for
// rewriting, and a feature-vector index for subsumption pruning. memo
// caches rewriteStep's "no rule applies here" results across calls;
// insert/remove reset it whenever they actually change dt's rule content,
// since a cached irreducibility result is only sound against the rule set
// that produced it.
type activeSet struct {
	table   *term.Table
	order   order.Ordering
	clauses map[int64]*clause.Clause
	dt      *index.DiscriminationTree
	sub     *index.SubsumptionIndex
	memo    *index.RewriteMemo
}

func newActiveSet(tb *term.Table, ord order.Ordering, memo *index.RewriteMemo) *activeSet {
	return &activeSet{
		table:   tb,
		order:   ord,
		clauses: make(map[int64]*clause.Clause),
		dt:      index.NewDiscriminationTree(tb),
		sub:     index.NewSubsumptionIndex(),
		memo:    memo,
	}
}

func (a *activeSet) list() []*clause.Clause {
	out := make([]*clause.Clause, 0, len(a.clauses))
	for _, c := range a.clauses {
		out = append(out, c)
	}
	return out
}

// orientedRule reports the rewrite rule a unit equation contributes to the
// active rule set, if c is in fact a unit equation the ordering can orient.
// A non-unit clause, a non-equational unit (still an equation against
// Truth, so this never actually excludes predicate units), or an
// unorientable (incomparable) unit contributes no rule — rewriting never
// applies an unoriented unit (spec.md §9).
func orientedRule(ord order.Ordering, c *clause.Clause) (index.Rule, bool) {
	if len(c.Literals) != 1 || !c.Literals[0].Positive {
		return index.Rule{}, false
	}
	l, r := c.Literals[0].LHS, c.Literals[0].RHS
	switch {
	case ord.Gt(l, r):
		return index.Rule{LHS: l, RHS: r, ClauseID: c.ID}, true
	case ord.Gt(r, l):
		return index.Rule{LHS: r, RHS: l, ClauseID: c.ID}, true
	default:
		return index.Rule{}, false
	}
}

func (a *activeSet) insert(c *clause.Clause) {
	a.clauses[c.ID] = c
	a.sub.Insert(c)
	if rule, ok := orientedRule(a.order, c); ok {
		a.dt.Insert(rule)
		a.memo.Reset()
	}
}

func (a *activeSet) remove(c *clause.Clause) {
	delete(a.clauses, c.ID)
	a.sub.Remove(c)
	if rule, ok := orientedRule(a.order, c); ok {
		a.dt.Remove(rule.LHS, c.ID)
		a.memo.Reset()
	}
}

// forwardSubsumed reports whether some active clause already subsumes c.
func (a *activeSet) forwardSubsumed(c *clause.Clause) bool {
	fv := index.FeatureVectorOf(c)
	for _, id := range a.sub.CandidateForwardSubsumers(fv) {
		cand, ok := a.clauses[id]
		if !ok || cand.ID == c.ID {
			continue
		}
		if simplify.Subsumes(a.table, cand, c) {
			return true
		}
	}
	return false
}

// backwardSubsumed returns every active clause that g subsumes, without
// removing them.
func (a *activeSet) backwardSubsumed(g *clause.Clause) []*clause.Clause {
	fv := index.FeatureVectorOf(g)
	var out []*clause.Clause
	for _, id := range a.sub.CandidateBackwardSubsumed(fv) {
		c, ok := a.clauses[id]
		if !ok || c.ID == g.ID {
			continue
		}
		if simplify.Subsumes(a.table, g, c) {
			out = append(out, c)
		}
	}
	return out
}
