package clause

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fo-prover/superpose/internal/term"
)

func TestLiteralEqualityIsSymmetric(t *testing.T) {
	tb := term.NewTable()
	a := tb.Func(tb.Declare("a", 0, term.FuncKind))
	b := tb.Func(tb.Declare("b", 0, term.FuncKind))

	l1 := NewEquation(true, a, b)
	l2 := NewEquation(true, b, a)
	assert.True(t, l1.Equal(l2))
}

func TestComplementOfRequiresOppositePolarity(t *testing.T) {
	tb := term.NewTable()
	a := tb.Func(tb.Declare("a", 0, term.FuncKind))
	b := tb.Func(tb.Declare("b", 0, term.FuncKind))

	pos := NewEquation(true, a, b)
	neg := NewEquation(false, b, a)
	assert.True(t, pos.ComplementOf(neg))
	assert.False(t, pos.ComplementOf(pos))
}

func TestDedupeLiteralsKeepsResolvedAndTrivialLiterals(t *testing.T) {
	tb := term.NewTable()
	x := tb.FreshVar()
	a := tb.Func(tb.Declare("a", 0, term.FuncKind))

	dup1 := NewEquation(false, x, x)
	dup2 := NewEquation(false, x, x)
	other := NewEquation(true, a, a)

	out := DedupeLiterals([]Literal{dup1, dup2, other})
	// dup1/dup2 collapse (exact duplicates); the trivial positive
	// literal is untouched by literal-deletion (that's tautology
	// deletion's job, done elsewhere).
	assert.Len(t, out, 2)
	assert.True(t, out[0].IsTrivialNegative())
	assert.True(t, out[1].IsTrivialPositive())
}

func TestSymbolCountSumsBothSides(t *testing.T) {
	tb := term.NewTable()
	f := tb.Declare("f", 1, term.FuncKind)
	a := tb.Declare("a", 0, term.FuncKind)

	lit := NewEquation(true, tb.Func(f, tb.Func(a)), tb.Func(a))
	assert.Equal(t, 3, lit.SymbolCount()) // f(a)=2, a=1

	c := New(0, 0, []Literal{lit, lit}, "")
	assert.Equal(t, 6, c.SymbolCount())
}

func TestStandardizeApartRenamesAllVariablesFreshly(t *testing.T) {
	tb := term.NewTable()
	ids := NewIDAllocator()
	f := tb.Declare("f", 1, term.FuncKind)
	x := tb.FreshVar()

	c := New(ids.Next(), 0, []Literal{NewEquation(true, x, tb.Func(f, x))}, "")
	renamed := c.StandardizeApart(tb, ids)

	assert.NotEqual(t, c.Literals[0].LHS.VarID(), renamed.Literals[0].LHS.VarID())
	// both occurrences of x in the clause are renamed to the *same*
	// fresh variable.
	assert.Same(t, renamed.Literals[0].LHS, renamed.Literals[0].RHS.Args()[0])
}

func TestVarsUnionsBothSidesOfEveryLiteral(t *testing.T) {
	tb := term.NewTable()
	x := tb.FreshVar()
	y := tb.FreshVar()
	c := New(0, 0, []Literal{NewEquation(true, x, y)}, "")
	vs := c.Vars()
	assert.True(t, vs.Contains(x.VarID()))
	assert.True(t, vs.Contains(y.VarID()))
	assert.Equal(t, 2, vs.Size())
}
