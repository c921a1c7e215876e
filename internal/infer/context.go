package infer

import (
	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/order"
	"github.com/fo-prover/superpose/internal/subst"
	"github.com/fo-prover/superpose/internal/term"
)

// Context bundles the shared, per-run resources every inference rule needs:
// the term table inferences build new terms in, the ordering that
// constrains them, and the allocator minting ids for derived clauses.
// Callers (the saturation loop) own and construct exactly one Context per
// run.
type Context struct {
	Table *term.Table
	Order order.Ordering
	IDs   *clause.IDAllocator
}

func (ctx *Context) next() int64 { return ctx.IDs.Next() }

func applyAll(sigma *subst.Substitution, lits []clause.Literal) []clause.Literal {
	out := make([]clause.Literal, len(lits))
	for i, l := range lits {
		out[i] = l.Apply(sigma)
	}
	return out
}

func without(lits []clause.Literal, idx ...int) []clause.Literal {
	skip := make(map[int]bool, len(idx))
	for _, i := range idx {
		skip[i] = true
	}
	out := make([]clause.Literal, 0, len(lits))
	for i, l := range lits {
		if !skip[i] {
			out = append(out, l)
		}
	}
	return out
}
