package order

import (
	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/term"
)

// literalMultiset returns the multiset-extension encoding of a literal
// (spec.md §4.2): s = t is {s, t}; s ≠ t is {s, s, t, t}.
func literalMultiset(l clause.Literal) []*term.Term {
	if l.Positive {
		return []*term.Term{l.LHS, l.RHS}
	}
	return []*term.Term{l.LHS, l.LHS, l.RHS, l.RHS}
}

func countTerms(ts []*term.Term) map[*term.Term]int {
	counts := make(map[*term.Term]int, len(ts))
	for _, t := range ts {
		counts[t]++
	}
	return counts
}

// MultisetGt implements the Dershowitz–Manna multiset extension of ord:
// M ≻ N iff M ≠ N and for every element whose count in N exceeds its
// count in M, some element whose count in M exceeds its count in N
// dominates it under ord.
func MultisetGt(ord Ordering, m, n []*term.Term) bool {
	cm, cn := countTerms(m), countTerms(n)
	if multisetsEqual(cm, cn) {
		return false
	}
	for y, cy := range cn {
		if cm[y] >= cy {
			continue
		}
		found := false
		for x, cx := range cm {
			if cx > cn[x] && ord.Gt(x, y) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func multisetsEqual(a, b map[*term.Term]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func sameTermContent(l1, l2 clause.Literal) bool {
	return (l1.LHS == l2.LHS && l1.RHS == l2.RHS) || (l1.LHS == l2.RHS && l1.RHS == l2.LHS)
}

// GtLit is the literal-level lifting of ord via the multiset extension,
// per spec.md §4.2. Ties between a positive and a negative literal over
// the same term content are broken by treating the negative literal as
// heavier.
func GtLit(ord Ordering, l1, l2 clause.Literal) bool {
	m1, m2 := literalMultiset(l1), literalMultiset(l2)
	if MultisetGt(ord, m1, m2) {
		return true
	}
	if MultisetGt(ord, m2, m1) {
		return false
	}
	if sameTermContent(l1, l2) && !l1.Positive && l2.Positive {
		return true
	}
	return false
}

// GeLit is "greater or literally equal" — spec.md §8's literal symmetry
// property (GtLit((pol,s,t),L) = GtLit((pol,t,s),L)) holds because
// Literal.Equal and literalMultiset both treat the two sides
// symmetrically.
func GeLit(ord Ordering, l1, l2 clause.Literal) bool {
	return l1.Equal(l2) || GtLit(ord, l1, l2)
}

// IsMaximal reports whether lits[idx] is maximal in lits: no other
// literal in the clause is strictly greater under GtLit.
func IsMaximal(ord Ordering, idx int, lits []clause.Literal) bool {
	l := lits[idx]
	for j, other := range lits {
		if j == idx {
			continue
		}
		if GtLit(ord, other, l) {
			return false
		}
	}
	return true
}

// IsStrictlyMaximal reports whether lits[idx] is strictly maximal: no
// other literal in the clause is greater-or-equal to it. Superposition
// checks this of the equation it rewrites with (equality factoring uses
// IsMaximal instead) — it fails if the clause carries an (undeleted)
// duplicate of the selected literal.
func IsStrictlyMaximal(ord Ordering, idx int, lits []clause.Literal) bool {
	l := lits[idx]
	for j, other := range lits {
		if j == idx {
			continue
		}
		if GeLit(ord, other, l) {
			return false
		}
	}
	return true
}
