package clause

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-set/v3"

	"github.com/fo-prover/superpose/internal/subst"
	"github.com/fo-prover/superpose/internal/term"
)

// Clause is a multiset-equivalent sequence of literals, universally
// closed, with a stable id and an age counter recording creation order.
// Invariants (spec.md §3) enforced by construction and by the simplify
// package, not by this type itself: a clause's variables are disjoint
// from every other live clause's only after StandardizeApart; no literal
// s = s positive; no duplicated literal.
type Clause struct {
	ID       int64
	Age      int64
	Literals []Literal
	// Origin names the inference (and parent ids) that produced this
	// clause, e.g. "superposition(12,7)". Empty for input clauses.
	Origin string
}

// IDAllocator hands out a monotonically increasing clause id. Owned by
// the saturation context; never global, so multiple independent runs
// (e.g. in tests) don't share id spaces.
type IDAllocator struct {
	next int64
}

// NewIDAllocator returns an allocator starting at 0.
func NewIDAllocator() *IDAllocator { return &IDAllocator{} }

// Next returns the next clause id.
func (a *IDAllocator) Next() int64 {
	id := a.next
	a.next++
	return id
}

// New constructs a clause from a literal slice. The slice is taken by
// reference; callers should not mutate it afterward.
func New(id, age int64, lits []Literal, origin string) *Clause {
	return &Clause{ID: id, Age: age, Literals: lits, Origin: origin}
}

// IsEmpty reports whether the clause is the terminal empty-clause
// sentinel denoting ⊥.
func (c *Clause) IsEmpty() bool { return len(c.Literals) == 0 }

// SymbolCount sums every literal's SymbolCount: the Size clause-weight
// metric of spec.md §4.5.
func (c *Clause) SymbolCount() int {
	n := 0
	for _, l := range c.Literals {
		n += l.SymbolCount()
	}
	return n
}

// Vars returns the union of every literal's free variables.
func (c *Clause) Vars() *set.Set[int32] {
	vars := set.New[int32](0)
	for _, l := range c.Literals {
		vars.InsertSet(l.LHS.Vars())
		vars.InsertSet(l.RHS.Vars())
	}
	return vars
}

// Apply instantiates every literal of the clause under sigma, producing a
// new Clause with a fresh id/age/origin supplied by the caller (inference
// rules decide these; Apply itself is a pure structural operation).
func (c *Clause) Apply(sigma *subst.Substitution, id, age int64, origin string) *Clause {
	lits := make([]Literal, len(c.Literals))
	for i, l := range c.Literals {
		lits[i] = l.Apply(sigma)
	}
	return New(id, age, lits, origin)
}

// StandardizeApart renames every variable in the clause to a fresh one
// from tb, so the result shares no variable with any other live clause.
// This is a per-selection operation (spec.md §9), not a structural
// property of the clause type: call it exactly once, when a clause is
// about to enter the active set.
func (c *Clause) StandardizeApart(tb *term.Table, ids *IDAllocator) *Clause {
	sigma := subst.New(tb)
	for _, v := range c.Vars().Slice() {
		sigma.Bind(v, tb.FreshVar())
	}
	return c.Apply(sigma, c.ID, c.Age, c.Origin)
}

// WithLiterals returns a copy of c with its literal list replaced,
// keeping id/age/origin. Used by simplification steps (literal deletion,
// rewriting) that filter or rewrite individual literals without minting a
// new clause identity.
func (c *Clause) WithLiterals(lits []Literal) *Clause {
	return New(c.ID, c.Age, lits, c.Origin)
}

// DedupeLiterals removes literals that are equal up to equality's
// symmetry (spec.md §4.4 literal deletion), preserving first-occurrence
// order. It does NOT remove s ≠ s or s = s: those are handled by equality
// resolution and tautology deletion respectively (spec.md §9).
func DedupeLiterals(lits []Literal) []Literal {
	out := make([]Literal, 0, len(lits))
	for _, l := range lits {
		dup := false
		for _, kept := range out {
			if l.Equal(kept) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, l)
		}
	}
	return out
}

func (c *Clause) String() string {
	if c.IsEmpty() {
		return "⊥"
	}
	parts := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		parts[i] = l.String()
	}
	return strings.Join(parts, " ∨ ")
}

func (c *Clause) GoString() string {
	return fmt.Sprintf("#%d[age=%d]{%s}", c.ID, c.Age, c.String())
}
