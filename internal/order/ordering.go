// Package order implements simplification term orderings — Lexicographic
// Path Ordering (LPO) and Knuth–Bendix Ordering (KBO) — and their lifting
// to a multiset-extension ordering on literals, used throughout the
// saturation engine to constrain every inference and to orient unit
// equations for rewriting.
//
// Ordering is an interface implemented by *LPO and *KBO. Each value also
// reports a Kind tag (LPO | KBO), but callers invoke Gt/Ge/Compare through
// the interface (dynamic dispatch); nothing in the prover switches on Kind.
package order

import "github.com/fo-prover/superpose/internal/term"

// Comparison is the three-valued (four-valued, counting Equal) result of
// comparing two terms or two literals.
type Comparison int

const (
	Incomparable Comparison = iota
	Greater
	Less
	Equal
)

// Kind tags which concrete ordering an Ordering value holds.
type Kind uint8

const (
	KindLPO Kind = iota
	KindKBO
)

// Ordering is a simplification ordering: irreflexive, transitive, stable
// under substitution, and monotone with respect to context (spec.md §8).
type Ordering interface {
	Kind() Kind
	Gt(s, t *term.Term) bool
	Ge(s, t *term.Term) bool
	Compare(s, t *term.Term) Comparison
}

// Ge is the default "greater-or-equal" derived from Gt plus term
// identity, shared by both concrete orderings.
func ge(o Ordering, s, t *term.Term) bool {
	return s == t || o.Gt(s, t)
}

func compare(o Ordering, s, t *term.Term) Comparison {
	if s == t {
		return Equal
	}
	if o.Gt(s, t) {
		return Greater
	}
	if o.Gt(t, s) {
		return Less
	}
	return Incomparable
}

// Precedence is a total order on non-variable symbols, used directly by
// LPO and as the tie-breaker for KBO at equal weight.
type Precedence struct {
	rank map[int32]int
}

// NewPrecedence builds a precedence from symbols listed in ascending
// order: symbols later in the slice precede (are greater than) symbols
// earlier in the slice. Symbols not listed default to rank 0 (below
// everything listed); ties among unlisted symbols are broken by symbol
// id, so the ordering stays total.
func NewPrecedence(ascending []*term.Symbol) *Precedence {
	rank := make(map[int32]int, len(ascending))
	for i, s := range ascending {
		rank[s.ID] = i + 1
	}
	return &Precedence{rank: rank}
}

func (p *Precedence) rankOf(s *term.Symbol) int {
	return p.rank[s.ID]
}

// Greater reports whether a precedes b, i.e. a ≻_prec b.
func (p *Precedence) Greater(a, b *term.Symbol) bool {
	ra, rb := p.rankOf(a), p.rankOf(b)
	if ra != rb {
		return ra > rb
	}
	return a.ID > b.ID
}
