package infer

import (
	"fmt"

	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/order"
	"github.com/fo-prover/superpose/internal/subst"
	"github.com/fo-prover/superpose/internal/term"
)

// EqualityResolution derives, for every negative literal s ≠ t of c that
// remains maximal after unifying s with t, the clause c minus that literal
// under the unifier (spec.md §4.3). Run once per given clause.
func EqualityResolution(ctx *Context, c *clause.Clause) []*clause.Clause {
	var out []*clause.Clause
	for i, lit := range c.Literals {
		if lit.Positive {
			continue
		}
		sigma, err := subst.MGU(ctx.Table, lit.LHS, lit.RHS)
		if err != nil {
			continue
		}
		substLits := applyAll(sigma, c.Literals)
		if !order.IsMaximal(ctx.Order, i, substLits) {
			continue
		}
		childLits := clause.DedupeLiterals(without(substLits, i))
		id := ctx.next()
		out = append(out, clause.New(id, id, childLits, fmt.Sprintf("equality_resolution(%d)", c.ID)))
	}
	return out
}

// EqualityFactoring derives, from a premise C ∨ s=t ∨ u=v with two positive
// literals whose left-hand sides unify, the clause (C ∨ t≠v ∨ u=v)·σ,
// provided s=t remains maximal and s·σ ⊁ t·σ after unification (spec.md
// §4.3). Run once per given clause; every ordered pair of distinct
// positive literals is tried in both orientations of each side, since
// equality is symmetric.
func EqualityFactoring(ctx *Context, c *clause.Clause) []*clause.Clause {
	var out []*clause.Clause
	for i, li := range c.Literals {
		if !li.Positive {
			continue
		}
		for j, lj := range c.Literals {
			if i == j || !lj.Positive {
				continue
			}
			for _, iFlip := range []bool{false, true} {
				s, t := li.LHS, li.RHS
				if iFlip {
					s, t = t, s
				}
				for _, jFlip := range []bool{false, true} {
					u, v := lj.LHS, lj.RHS
					if jFlip {
						u, v = v, u
					}
					child := tryEqualityFactoring(ctx, c, i, j, s, t, u, v)
					if child != nil {
						out = append(out, child)
					}
				}
			}
		}
	}
	return out
}

func tryEqualityFactoring(ctx *Context, c *clause.Clause, i, j int, s, t, u, v *term.Term) *clause.Clause {
	sigma, err := subst.MGU(ctx.Table, s, u)
	if err != nil {
		return nil
	}
	substLits := applyAll(sigma, c.Literals)
	if !order.IsMaximal(ctx.Order, i, substLits) {
		return nil
	}
	tSigma, sSigma := sigma.Apply(t), sigma.Apply(s)
	if ctx.Order.Gt(sSigma, tSigma) {
		return nil
	}
	vSigma, uSigma := sigma.Apply(v), sigma.Apply(u)
	rest := without(substLits, i, j)
	childLits := append(rest,
		clause.NewEquation(false, tSigma, vSigma),
		clause.NewEquation(true, uSigma, vSigma),
	)
	childLits = clause.DedupeLiterals(childLits)
	id := ctx.next()
	return clause.New(id, id, childLits, fmt.Sprintf("equality_factoring(%d)", c.ID))
}
