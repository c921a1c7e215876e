package order

import "github.com/fo-prover/superpose/internal/term"

// LPO is the Lexicographic Path Ordering, parameterized by a symbol
// precedence (spec.md §4.2):
//
//	s ≻ t iff (a) some argument of s is ⪰ t; or
//	          (b) every argument of t is ≺ s, and either
//	              head(s) ≻_prec head(t), or
//	              heads are equal and the argument tuples are ordered
//	              lexicographically by ≻.
type LPO struct {
	prec *Precedence
}

// NewLPO builds an LPO over the given precedence.
func NewLPO(prec *Precedence) *LPO {
	return &LPO{prec: prec}
}

func (o *LPO) Kind() Kind                      { return KindLPO }
func (o *LPO) Ge(s, t *term.Term) bool         { return ge(o, s, t) }
func (o *LPO) Compare(s, t *term.Term) Comparison { return compare(o, s, t) }

func (o *LPO) Gt(s, t *term.Term) bool {
	return lpoGt(o.prec, s, t)
}

func lpoGt(prec *Precedence, s, t *term.Term) bool {
	if s == t {
		return false
	}
	if s.IsVar() {
		// A variable is never greater than anything else (spec.md §4.2
		// gives no base case making a variable the greater side; the
		// subterm property below is the only way anything is compared
		// greater, and a variable has no arguments to supply a
		// subterm).
		return false
	}

	// (a) some argument of s is ⪰ t.
	for _, si := range s.Args() {
		if si == t || lpoGt(prec, si, t) {
			return true
		}
	}

	if t.IsVar() {
		// t is a variable not found (by (a)) as a subterm of s: s ⊁ t.
		return false
	}

	// (b) every argument of t must be ≺ s.
	for _, ti := range t.Args() {
		if !lpoGt(prec, s, ti) {
			return false
		}
	}

	sSym, tSym := s.Symbol(), t.Symbol()
	if sSym.ID != tSym.ID {
		return prec.Greater(sSym, tSym)
	}

	// Same head: lexicographic comparison of argument tuples, first
	// point of difference is decisive.
	sa, ta := s.Args(), t.Args()
	for i := range sa {
		if sa[i] == ta[i] {
			continue
		}
		return lpoGt(prec, sa[i], ta[i])
	}
	return false
}
