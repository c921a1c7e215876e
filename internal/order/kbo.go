package order

import (
	"fmt"

	"github.com/fo-prover/superpose/internal/term"
)

// Weight is a KBO weight function: a non-negative integer weight per
// non-variable symbol, plus a constant weight for every variable
// occurrence.
type Weight struct {
	varWeight uint64
	perSymbol map[int32]uint64
	// defaultWeight is used for any declared symbol with no explicit
	// entry in perSymbol.
	defaultWeight uint64
}

// NewWeight builds a weight function. weights maps symbol id to its
// weight; symbols absent from the map get defaultWeight.
func NewWeight(varWeight uint64, defaultWeight uint64, weights map[int32]uint64) *Weight {
	w := &Weight{varWeight: varWeight, defaultWeight: defaultWeight, perSymbol: make(map[int32]uint64, len(weights))}
	for k, v := range weights {
		w.perSymbol[k] = v
	}
	return w
}

// Of returns the weight assigned to sym.
func (w *Weight) Of(sym *term.Symbol) uint64 {
	if v, ok := w.perSymbol[sym.ID]; ok {
		return v
	}
	return w.defaultWeight
}

func (w *Weight) termWeight(t *term.Term) uint64 {
	if t.IsVar() {
		return w.varWeight
	}
	total := w.Of(t.Symbol())
	for _, a := range t.Args() {
		total += w.termWeight(a)
	}
	return total
}

// ValidateAdmissible checks the standard KBO admissibility constraint:
// every unary function symbol of weight zero must be maximal in the
// precedence (otherwise KBO as defined here is not well-founded).
// Returns an error rather than panicking. The prover does not call it
// itself; cmd/superpose's buildOrdering gives every symbol weight 1, so no
// unary symbol there has weight 0.
func ValidateAdmissible(prec *Precedence, weight *Weight, symbols []*term.Symbol) error {
	var maxRank = -1
	var maxSym *term.Symbol
	for _, s := range symbols {
		if s.Kind == term.TruthKind {
			continue
		}
		if r := prec.rankOf(s); r > maxRank {
			maxRank = r
			maxSym = s
		}
	}
	for _, s := range symbols {
		if s.Arity == 1 && weight.Of(s) == 0 {
			if maxSym == nil || s.ID != maxSym.ID {
				return fmt.Errorf("order: unary symbol %s has weight 0 but is not maximal in the precedence", s)
			}
		}
	}
	if weight.varWeight == 0 {
		return fmt.Errorf("order: variable weight must be strictly positive")
	}
	return nil
}

// KBO is the Knuth–Bendix Ordering, parameterized by a precedence and a
// weight function (spec.md §4.2):
//
//	s ≻ t iff the variable multiset of t is contained in that of s, and
//	either w(s) > w(t), or w(s) = w(t) and either head(s) ≻_prec head(t),
//	or heads are equal and the arguments are ordered lexicographically.
type KBO struct {
	prec   *Precedence
	weight *Weight
}

// NewKBO builds a KBO over the given precedence and weight function.
func NewKBO(prec *Precedence, weight *Weight) *KBO {
	return &KBO{prec: prec, weight: weight}
}

func (o *KBO) Kind() Kind                      { return KindKBO }
func (o *KBO) Ge(s, t *term.Term) bool         { return ge(o, s, t) }
func (o *KBO) Compare(s, t *term.Term) Comparison { return compare(o, s, t) }

func (o *KBO) Gt(s, t *term.Term) bool {
	return kboGt(o.prec, o.weight, s, t)
}

func varCounts(t *term.Term) map[int32]int {
	counts := make(map[int32]int)
	var walk func(*term.Term)
	walk = func(u *term.Term) {
		if u.IsVar() {
			counts[u.VarID()]++
			return
		}
		for _, a := range u.Args() {
			walk(a)
		}
	}
	walk(t)
	return counts
}

// multisetContains reports whether every variable occurrence count in
// small is matched or exceeded in big.
func multisetContains(big, small map[int32]int) bool {
	for v, n := range small {
		if big[v] < n {
			return false
		}
	}
	return true
}

func kboGt(prec *Precedence, weight *Weight, s, t *term.Term) bool {
	if s == t {
		return false
	}
	if !multisetContains(varCounts(s), varCounts(t)) {
		return false
	}

	ws, wt := weight.termWeight(s), weight.termWeight(t)
	if ws > wt {
		return true
	}
	if ws < wt {
		return false
	}

	// Equal weight. If t is a variable, the multiset-containment check
	// above already proved s properly contains t (s != t), reached here
	// only via a chain of precedence-maximal weight-zero unary symbols —
	// the admissibility constraint ValidateAdmissible checks. That subterm
	// relationship makes s ≻ t.
	if t.IsVar() {
		return true
	}
	if s.IsVar() {
		return false
	}

	sSym, tSym := s.Symbol(), t.Symbol()
	if sSym.ID != tSym.ID {
		return prec.Greater(sSym, tSym)
	}

	sa, ta := s.Args(), t.Args()
	for i := range sa {
		if sa[i] == ta[i] {
			continue
		}
		return kboGt(prec, weight, sa[i], ta[i])
	}
	return false
}
