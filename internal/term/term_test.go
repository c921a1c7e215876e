package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashConsingSharesIdenticalTerms(t *testing.T) {
	tb := NewTable()
	f := tb.Declare("f", 1, FuncKind)
	a := tb.Declare("a", 0, FuncKind)

	ta := tb.Func(a)
	t1 := tb.Func(f, ta)
	t2 := tb.Func(f, tb.Func(a))

	assert.True(t, t1.Equal(t2), "structurally identical terms must be the same pointer")
	assert.Same(t, t1, t2)
}

func TestFreshVarsAreDistinctAndMonotonic(t *testing.T) {
	tb := NewTable()
	x := tb.FreshVar()
	y := tb.FreshVar()

	require.True(t, x.IsVar())
	require.True(t, y.IsVar())
	assert.NotEqual(t, x.VarID(), y.VarID())
	assert.Less(t, y.VarID(), x.VarID())
}

func TestGroundAndVarsCaching(t *testing.T) {
	tb := NewTable()
	f := tb.Declare("f", 2, FuncKind)
	a := tb.Declare("a", 0, FuncKind)
	x := tb.FreshVar()

	ground := tb.Func(f, tb.Func(a), tb.Func(a))
	assert.True(t, ground.Ground())
	assert.Equal(t, 0, ground.Vars().Size())

	withVar := tb.Func(f, x, tb.Func(a))
	assert.False(t, withVar.Ground())
	assert.True(t, withVar.Vars().Contains(x.VarID()))
	assert.Equal(t, 1, withVar.Vars().Size())
}

func TestSizeCountsAllSymbolOccurrences(t *testing.T) {
	tb := NewTable()
	f := tb.Declare("f", 1, FuncKind)
	a := tb.Declare("a", 0, FuncKind)

	// a has size 1; f(a) has size 2; f(f(a)) has size 3.
	assert.Equal(t, 1, tb.Func(a).Size())
	assert.Equal(t, 2, tb.Func(f, tb.Func(a)).Size())
	assert.Equal(t, 3, tb.Func(f, tb.Func(f, tb.Func(a))).Size())
}

func TestArityMismatchPanics(t *testing.T) {
	tb := NewTable()
	f := tb.Declare("f", 2, FuncKind)
	a := tb.Declare("a", 0, FuncKind)
	assert.Panics(t, func() {
		tb.Func(f, tb.Func(a))
	})
}

func TestDeclareIsIdempotentByNameAndArity(t *testing.T) {
	tb := NewTable()
	f1 := tb.Declare("f", 1, FuncKind)
	f2 := tb.Declare("f", 1, FuncKind)
	assert.Same(t, f1, f2)

	// Same name, different arity: a distinct symbol.
	f3 := tb.Declare("f", 2, FuncKind)
	assert.NotSame(t, f1, f3)
}

func TestTruthSymbolIsReservedAndStable(t *testing.T) {
	tb := NewTable()
	tr1 := tb.Truth()
	tr2 := tb.Truth()
	assert.Same(t, tr1, tr2)
	assert.Equal(t, TruthKind, tr1.Symbol().Kind)
}
