package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/index"
	"github.com/fo-prover/superpose/internal/order"
	"github.com/fo-prover/superpose/internal/term"
)

func TestIsTautologyDetectsTrivialPositiveEquation(t *testing.T) {
	tb := term.NewTable()
	a := tb.Declare("a", 0, term.FuncKind)
	c := clause.New(0, 0, []clause.Literal{clause.NewEquation(true, tb.Func(a), tb.Func(a))}, "")
	assert.True(t, IsTautology(c))
}

func TestIsTautologyDetectsComplementaryLiterals(t *testing.T) {
	tb := term.NewTable()
	p := tb.Declare("p", 1, term.PredKind)
	a := tb.Declare("a", 0, term.FuncKind)
	c := clause.New(0, 0, []clause.Literal{
		clause.NewAtom(tb, true, tb.Func(p, tb.Func(a))),
		clause.NewAtom(tb, false, tb.Func(p, tb.Func(a))),
	}, "")
	assert.True(t, IsTautology(c))
}

func TestIsTautologyFalseForOrdinaryClause(t *testing.T) {
	tb := term.NewTable()
	p := tb.Declare("p", 1, term.PredKind)
	a := tb.Declare("a", 0, term.FuncKind)
	c := clause.New(0, 0, []clause.Literal{clause.NewAtom(tb, true, tb.Func(p, tb.Func(a)))}, "")
	assert.False(t, IsTautology(c))
}

func TestRewriteToNormalFormAppliesOrientedUnit(t *testing.T) {
	tb := term.NewTable()
	f := tb.Declare("f", 1, term.FuncKind)
	a := tb.Declare("a", 0, term.FuncKind)
	b := tb.Declare("b", 0, term.FuncKind)
	prec := order.NewPrecedence([]*term.Symbol{a, b, f})
	ord := order.NewLPO(prec)

	dt := index.NewDiscriminationTree(tb)
	fa := tb.Func(f, tb.Func(a))
	dt.Insert(index.Rule{LHS: fa, RHS: tb.Func(b), ClauseID: 1})

	got := RewriteToNormalForm(tb, ord, dt, nil, fa)
	assert.Same(t, tb.Func(b), got)
}

func TestRewriteLiteralsDropsResultingTrivialNegative(t *testing.T) {
	tb := term.NewTable()
	f := tb.Declare("f", 1, term.FuncKind)
	a := tb.Declare("a", 0, term.FuncKind)
	b := tb.Declare("b", 0, term.FuncKind)
	prec := order.NewPrecedence([]*term.Symbol{a, b, f})
	ord := order.NewLPO(prec)

	dt := index.NewDiscriminationTree(tb)
	fa := tb.Func(f, tb.Func(a))
	dt.Insert(index.Rule{LHS: fa, RHS: tb.Func(b), ClauseID: 1})

	c := clause.New(2, 2, []clause.Literal{clause.NewEquation(false, fa, tb.Func(b))}, "")
	next, changed := RewriteLiterals(tb, ord, dt, nil, c)
	require.True(t, changed)
	assert.Empty(t, next.Literals)
}

func TestSubsumesUnitGeneralizesGroundInstance(t *testing.T) {
	tb := term.NewTable()
	p := tb.Declare("p", 1, term.PredKind)
	a := tb.Declare("a", 0, term.FuncKind)

	x := tb.FreshVar()
	c := clause.New(1, 1, []clause.Literal{clause.NewAtom(tb, true, tb.Func(p, x))}, "")
	d := clause.New(2, 2, []clause.Literal{clause.NewAtom(tb, true, tb.Func(p, tb.Func(a)))}, "")

	assert.True(t, Subsumes(tb, c, d))
	assert.False(t, Subsumes(tb, d, c))
}

func TestSubsumesRequiresMultisetEmbedding(t *testing.T) {
	tb := term.NewTable()
	p := tb.Declare("p", 1, term.PredKind)
	q := tb.Declare("q", 1, term.PredKind)
	a := tb.Declare("a", 0, term.FuncKind)

	c := clause.New(1, 1, []clause.Literal{
		clause.NewAtom(tb, true, tb.Func(p, tb.Func(a))),
		clause.NewAtom(tb, true, tb.Func(q, tb.Func(a))),
	}, "")
	d := clause.New(2, 2, []clause.Literal{clause.NewAtom(tb, true, tb.Func(p, tb.Func(a)))}, "")

	assert.False(t, Subsumes(tb, c, d), "c has more literals than d, so it cannot embed")
}
