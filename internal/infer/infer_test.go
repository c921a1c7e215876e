package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/order"
	"github.com/fo-prover/superpose/internal/term"
)

func newContext(tb *term.Table, ord order.Ordering) *Context {
	return &Context{Table: tb, Order: ord, IDs: clause.NewIDAllocator()}
}

func TestEqualityResolutionDischargesUnifiableDisequation(t *testing.T) {
	tb := term.NewTable()
	a := tb.Declare("a", 0, term.FuncKind)
	prec := order.NewPrecedence([]*term.Symbol{a})
	ord := order.NewLPO(prec)
	ctx := newContext(tb, ord)

	x := tb.FreshVar()
	lits := []clause.Literal{
		clause.NewEquation(false, x, tb.Func(a)),
	}
	c := clause.New(0, 0, lits, "")

	children := EqualityResolution(ctx, c)
	require.Len(t, children, 1)
	assert.Empty(t, children[0].Literals, "unifying the sole disequation should derive the empty clause")
}

func TestEqualityFactoringOnUnitLiteralsDoesNotPanic(t *testing.T) {
	tb := term.NewTable()
	f := tb.Declare("f", 1, term.FuncKind)
	a := tb.Declare("a", 0, term.FuncKind)
	b := tb.Declare("b", 0, term.FuncKind)
	cc := tb.Declare("c", 0, term.FuncKind)
	prec := order.NewPrecedence([]*term.Symbol{b, cc, a, f})
	ord := order.NewLPO(prec)
	ctx := newContext(tb, ord)

	x := tb.FreshVar()
	lits := []clause.Literal{
		clause.NewEquation(true, x, tb.Func(a)),
		clause.NewEquation(true, x, tb.Func(b)),
	}
	c := clause.New(0, 0, lits, "")

	require.NotPanics(t, func() {
		children := EqualityFactoring(ctx, c)
		for _, child := range children {
			assert.LessOrEqual(t, len(child.Literals), len(lits)+1)
		}
	})
}

func TestSuperpositionRewritesMatchingSubterm(t *testing.T) {
	tb := term.NewTable()
	f := tb.Declare("f", 1, term.FuncKind)
	p := tb.Declare("p", 1, term.PredKind)
	a := tb.Declare("a", 0, term.FuncKind)
	b := tb.Declare("b", 0, term.FuncKind)
	prec := order.NewPrecedence([]*term.Symbol{a, b, p, f})
	ord := order.NewLPO(prec)
	ctx := newContext(tb, ord)

	from := clause.New(1, 1, []clause.Literal{
		clause.NewEquation(true, tb.Func(f, tb.Func(a)), tb.Func(b)),
	}, "")
	into := clause.New(2, 2, []clause.Literal{
		clause.NewAtom(tb, true, tb.Func(p, tb.Func(f, tb.Func(a)))),
	}, "")

	children := Superposition(ctx, from, into)
	require.NotEmpty(t, children)
	found := false
	for _, child := range children {
		for _, l := range child.Literals {
			if l.LHS == tb.Func(p, tb.Func(b)) {
				found = true
			}
		}
	}
	assert.True(t, found, "expected a child rewriting f(a) to b inside p(_)")
}

func TestSuperpositionYieldsNoChildWhenNoSubtermUnifies(t *testing.T) {
	tb := term.NewTable()
	f := tb.Declare("f", 1, term.FuncKind)
	g := tb.Declare("g", 1, term.FuncKind)
	p := tb.Declare("p", 1, term.PredKind)
	a := tb.Declare("a", 0, term.FuncKind)
	b := tb.Declare("b", 0, term.FuncKind)
	prec := order.NewPrecedence([]*term.Symbol{a, b, p, f, g})
	ord := order.NewLPO(prec)
	ctx := newContext(tb, ord)

	from := clause.New(1, 1, []clause.Literal{
		clause.NewEquation(true, tb.Func(f, tb.Func(a)), tb.Func(b)),
	}, "")
	into := clause.New(2, 2, []clause.Literal{
		clause.NewAtom(tb, true, tb.Func(p, tb.Func(g, tb.Func(a)))),
	}, "")

	children := Superposition(ctx, from, into)
	assert.Empty(t, children, "f(a) never occurs inside p(g(a)), so no unification site exists")
}
