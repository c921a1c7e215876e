package infer

import (
	"fmt"

	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/subst"
)

// Paramodulate is the unrestricted paramodulation fallback: superposition
// with every ordering side-condition dropped, unifying an equation's
// left-hand side against any non-variable subterm in either direction and
// rewriting regardless of orientation. It is incomplete-safe but not
// refutation-efficient (it explodes without the ordering's pruning), and
// is kept only behind the --no-order debug flag as a direct port of the
// original prover's unordered paramodulation rule. Never used by default.
func Paramodulate(ctx *Context, from, into *clause.Clause) []*clause.Clause {
	var out []*clause.Clause
	for i, eq := range from.Literals {
		if !eq.Positive {
			continue
		}
		for _, flip := range []bool{false, true} {
			l, r := eq.LHS, eq.RHS
			if flip {
				l, r = r, l
			}
			for j, lit := range into.Literals {
				for _, side := range []bool{false, true} {
					target := lit.LHS
					other := lit.RHS
					if side {
						target, other = lit.RHS, lit.LHS
					}
					for _, pos := range nonVariablePositions(target) {
						u := at(target, pos)
						sigma, err := subst.MGU(ctx.Table, l, u)
						if err != nil {
							continue
						}
						rSigma := sigma.Apply(r)
						rewritten := replaceAt(ctx.Table, sigma.Apply(target), pos, rSigma)
						otherSigma := sigma.Apply(other)
						var newLit clause.Literal
						if side {
							newLit = clause.NewEquation(lit.Positive, otherSigma, rewritten)
						} else {
							newLit = clause.NewEquation(lit.Positive, rewritten, otherSigma)
						}
						fromLits := without(applyAll(sigma, from.Literals), i)
						intoLits := applyAll(sigma, into.Literals)
						intoLits[j] = newLit
						childLits := clause.DedupeLiterals(append(fromLits, intoLits...))
						id := ctx.next()
						out = append(out, clause.New(id, id, childLits, fmt.Sprintf("paramodulate(%d,%d)", from.ID, into.ID)))
					}
				}
			}
		}
	}
	return out
}
