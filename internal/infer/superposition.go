package infer

import (
	"fmt"

	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/order"
	"github.com/fo-prover/superpose/internal/subst"
	"github.com/fo-prover/superpose/internal/term"
)

// Superposition derives every child obtainable by superposing a positive
// equation of from into a literal of into (spec.md §4.3). Called with
// (g, c) and (c, g) for every active clause c and the given clause g.
// Each call covers both superposition-left (rewriting into a negative
// literal) and superposition-right (into a positive one), both necessary
// for completeness. from and into must already be pairwise
// variable-disjoint — the active-set invariant (every live clause is
// standardized apart) is relied on here, not re-established.
func Superposition(ctx *Context, from, into *clause.Clause) []*clause.Clause {
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
			out = append(out, superposeInto(ctx, from, i, l, r, into)...)
		}
	}
	return out
}

func superposeInto(ctx *Context, from *clause.Clause, eqIdx int, l, r *term.Term, into *clause.Clause) []*clause.Clause {
	var out []*clause.Clause
	for j, lit := range into.Literals {
		for _, side := range []bool{false, true} { // false: LHS, true: RHS
			target := lit.LHS
			if side {
				target = lit.RHS
			}
			for _, pos := range nonVariablePositions(target) {
				u := at(target, pos)
				if u.IsVar() {
					continue
				}
				child := trySuperposition(ctx, from, eqIdx, l, r, into, j, side, pos)
				if child != nil {
					out = append(out, child)
				}
			}
		}
	}
	return out
}

func trySuperposition(ctx *Context, from *clause.Clause, eqIdx int, l, r *term.Term, into *clause.Clause, litIdx int, rewriteRHS bool, pos position) *clause.Clause {
	lit := into.Literals[litIdx]
	target := lit.LHS
	if rewriteRHS {
		target = lit.RHS
	}
	u := at(target, pos)

	sigma, err := subst.MGU(ctx.Table, l, u)
	if err != nil {
		return nil
	}

	lSigma, rSigma := sigma.Apply(l), sigma.Apply(r)
	if !ctx.Order.Gt(lSigma, rSigma) {
		return nil // condition: l·σ ≻ r·σ
	}

	fromLits := applyAll(sigma, from.Literals)
	if !order.IsStrictlyMaximal(ctx.Order, eqIdx, fromLits) {
		return nil // condition: l=r strictly maximal in the first premise
	}

	intoLits := applyAll(sigma, into.Literals)
	if !order.IsMaximal(ctx.Order, litIdx, intoLits) {
		return nil // condition: L maximal in the second premise
	}

	targetSigma := sigma.Apply(target)
	otherSigma := sigma.Apply(lit.RHS)
	if rewriteRHS {
		otherSigma = sigma.Apply(lit.LHS)
	}
	if lit.Positive && !ctx.Order.Gt(targetSigma, otherSigma) {
		return nil // condition: for a positive L, the rewritten side ≻ its counterpart
	}

	rewritten := replaceAt(ctx.Table, targetSigma, pos, rSigma)
	var newLit clause.Literal
	if rewriteRHS {
		newLit = clause.NewEquation(lit.Positive, otherSigma, rewritten)
	} else {
		newLit = clause.NewEquation(lit.Positive, rewritten, otherSigma)
	}

	childLits := make([]clause.Literal, 0, len(fromLits)-1+len(intoLits))
	childLits = append(childLits, without(fromLits, eqIdx)...)
	for k, il := range intoLits {
		if k == litIdx {
			childLits = append(childLits, newLit)
		} else {
			childLits = append(childLits, il)
		}
	}
	childLits = clause.DedupeLiterals(childLits)

	id := ctx.next()
	return clause.New(id, id, childLits, fmt.Sprintf("superposition(%d,%d)", from.ID, into.ID))
}
