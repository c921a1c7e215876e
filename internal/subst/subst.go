// Package subst implements triangular substitutions over term.Term,
// Robinson unification (mgu) with mandatory occurs-check, and one-sided
// matching.
package subst

import (
	"errors"

	"github.com/fo-prover/superpose/internal/term"
)

// ErrNotUnifiable is returned by MGU on symbol clash or occurs-check
// violation. It is not an internal error: callers treat it as "this
// inference rule produces no child here" (spec.md §4.7).
var ErrNotUnifiable = errors.New("subst: not unifiable")

// ErrNoMatch is returned by Match when pattern cannot be instantiated to
// subject.
var ErrNoMatch = errors.New("subst: no match")

// Substitution is a finite, triangular mapping from variable ids to
// terms. The range of a binding may itself mention variables bound
// elsewhere in the same Substitution (triangular form); Apply and the
// internal walk chase such chains.
type Substitution struct {
	table    *term.Table
	bindings map[int32]*term.Term
}

// New returns an empty substitution over tb.
func New(tb *term.Table) *Substitution {
	return &Substitution{table: tb, bindings: make(map[int32]*term.Term)}
}

// Bind adds v ↦ t to the substitution. Bind does not check for conflicts
// or cycles; callers (MGU, Match) are responsible for that.
func (s *Substitution) Bind(v int32, t *term.Term) {
	s.bindings[v] = t
}

// Lookup returns the direct (non-chased) binding of v, if any.
func (s *Substitution) Lookup(v int32) (*term.Term, bool) {
	t, ok := s.bindings[v]
	return t, ok
}

// Domain returns the bound variable ids, in no particular order.
func (s *Substitution) Domain() []int32 {
	out := make([]int32, 0, len(s.bindings))
	for v := range s.bindings {
		out = append(out, v)
	}
	return out
}

// Empty reports whether the substitution binds no variables.
func (s *Substitution) Empty() bool { return len(s.bindings) == 0 }

// walkShallow chases a variable's binding chain until it reaches a
// non-variable or an unbound variable. It does not recurse into
// structure, so it terminates as long as the substitution is acyclic
// (guaranteed by the occurs-check in MGU).
func (s *Substitution) walkShallow(t *term.Term) *term.Term {
	for t.IsVar() {
		next, ok := s.bindings[t.VarID()]
		if !ok {
			return t
		}
		t = next
	}
	return t
}

// Apply fully instantiates t under the substitution, chasing triangular
// chains and rebuilding structure only where something actually changed
// (hash-consing means an unchanged subterm is returned as-is).
func (s *Substitution) Apply(t *term.Term) *term.Term {
	t = s.walkShallow(t)
	if t.IsVar() || len(t.Args()) == 0 {
		return t
	}
	args := t.Args()
	newArgs := make([]*term.Term, len(args))
	changed := false
	for i, a := range args {
		na := s.Apply(a)
		newArgs[i] = na
		if na != a {
			changed = true
		}
	}
	if !changed {
		return t
	}
	return s.table.Func(t.Symbol(), newArgs...)
}

// occurs reports whether v occurs (after chasing existing bindings) in t.
func occurs(s *Substitution, v int32, t *term.Term) bool {
	t = s.walkShallow(t)
	if t.IsVar() {
		return t.VarID() == v
	}
	for _, a := range t.Args() {
		if occurs(s, v, a) {
			return true
		}
	}
	return false
}

type eqPair struct{ l, r *term.Term }

// MGU computes a most general unifier of s and t: a substitution σ such
// that s·σ = t·σ, and for any unifier θ there exists δ with θ = σ∘δ.
// Decomposition is iterative (an explicit work stack, not recursion) with
// a mandatory occurs-check, per spec.md §4.1 — this is classical
// first-order unification, not rational-tree unification.
func MGU(tb *term.Table, s, t *term.Term) (*Substitution, error) {
	result := New(tb)
	stack := []eqPair{{s, t}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		l := result.walkShallow(e.l)
		r := result.walkShallow(e.r)
		if l == r {
			continue
		}
		switch {
		case l.IsVar():
			if occurs(result, l.VarID(), r) {
				return nil, ErrNotUnifiable
			}
			result.Bind(l.VarID(), r)
		case r.IsVar():
			if occurs(result, r.VarID(), l) {
				return nil, ErrNotUnifiable
			}
			result.Bind(r.VarID(), l)
		case l.SymbolID() != r.SymbolID():
			return nil, ErrNotUnifiable
		default:
			la, ra := l.Args(), r.Args()
			for i := range la {
				stack = append(stack, eqPair{la[i], ra[i]})
			}
		}
	}
	return result, nil
}

// Match returns a substitution σ, binding only pattern's variables, such
// that pattern·σ = subject. It never binds a variable of subject and
// never performs an occurs-check: subject is held fixed, so no cycle can
// be introduced. Used by rewriting (demodulation) and subsumption.
//
// pattern and subject must come from the same term.Table: identity of
// already-matched subterms is checked by pointer equality, which is only
// sound for hash-consed terms sharing one table.
func Match(tb *term.Table, pattern, subject *term.Term) (*Substitution, error) {
	result := New(tb)
	stack := []eqPair{{pattern, subject}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		p := e.l
		if p.IsVar() {
			if bound, ok := result.Lookup(p.VarID()); ok {
				if bound != e.r {
					return nil, ErrNoMatch
				}
				continue
			}
			result.Bind(p.VarID(), e.r)
			continue
		}
		s := e.r
		if s.IsVar() || p.SymbolID() != s.SymbolID() {
			return nil, ErrNoMatch
		}
		pa, sa := p.Args(), s.Args()
		for i := range pa {
			stack = append(stack, eqPair{pa[i], sa[i]})
		}
	}
	return result, nil
}
