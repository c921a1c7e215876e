// Package clause implements literals and clauses: multisets of equations
// over term.Term, with the stable ids, age counters, and symbol-count
// metrics the rest of the prover indexes and orders by.
package clause

import (
	"fmt"

	"github.com/fo-prover/superpose/internal/subst"
	"github.com/fo-prover/superpose/internal/term"
)

// Literal is an equation s = t (Positive) or disequation s ≠ t
// (!Positive). Equality is symmetric: Literal{true, s, t} and
// Literal{true, t, s} denote the same literal, so Equal and hashing-style
// consumers must treat LHS/RHS as an unordered pair. Non-equational atoms
// P(t̄) are encoded uniformly as P(t̄) = Truth by the clausifier; nothing
// downstream of clausification special-cases them.
type Literal struct {
	Positive bool
	LHS, RHS *term.Term
}

// NewEquation builds a literal s = t (or s ≠ t).
func NewEquation(positive bool, s, t *term.Term) Literal {
	return Literal{Positive: positive, LHS: s, RHS: t}
}

// NewAtom builds the uniform equational encoding of a non-equational atom:
// atom = Truth (or atom ≠ Truth).
func NewAtom(tb *term.Table, positive bool, atom *term.Term) Literal {
	return Literal{Positive: positive, LHS: atom, RHS: tb.Truth()}
}

// IsTrivialPositive reports whether the literal is a positive s = s,
// which makes any clause containing it a tautology (spec.md §4.4). This
// is a structural pointer-equality check — sound because terms are
// hash-consed — not an ordering query.
func (l Literal) IsTrivialPositive() bool {
	return l.Positive && l.LHS == l.RHS
}

// IsTrivialNegative reports whether the literal is a negative s ≠ s. Such
// a literal is never deleted by plain literal-deletion simplification (it
// is not a duplicate or a tautology witness by itself); it is a unit that
// equality resolution immediately discharges (spec.md §9, resolving the
// source's two conflicting definitions of "resolved literal").
func (l Literal) IsTrivialNegative() bool {
	return !l.Positive && l.LHS == l.RHS
}

// Equal reports whether two literals denote the same equation, accounting
// for equality's symmetry. Sound only for terms sharing one term.Table
// (hash-consing makes structural equality a pointer comparison).
func (l Literal) Equal(other Literal) bool {
	if l.Positive != other.Positive {
		return false
	}
	return (l.LHS == other.LHS && l.RHS == other.RHS) ||
		(l.LHS == other.RHS && l.RHS == other.LHS)
}

// ComplementOf reports whether l and other are complementary: the same
// equation with opposite polarity. A clause containing a literal and its
// complement is a tautology.
func (l Literal) ComplementOf(other Literal) bool {
	if l.Positive == other.Positive {
		return false
	}
	return (l.LHS == other.LHS && l.RHS == other.RHS) ||
		(l.LHS == other.RHS && l.RHS == other.LHS)
}

// Apply instantiates both sides of the literal under sigma.
func (l Literal) Apply(sigma *subst.Substitution) Literal {
	return Literal{Positive: l.Positive, LHS: sigma.Apply(l.LHS), RHS: sigma.Apply(l.RHS)}
}

// SymbolCount returns the combined symbol count of both sides, the unit
// this literal contributes to a clause's Size clause-weight.
func (l Literal) SymbolCount() int {
	return l.LHS.Size() + l.RHS.Size()
}

func (l Literal) String() string {
	op := "="
	if !l.Positive {
		op = "!="
	}
	return fmt.Sprintf("%s %s %s", l.LHS, op, l.RHS)
}
