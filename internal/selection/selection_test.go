package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/term"
)

func TestClauseWeightLessPanicsOnMixedKinds(t *testing.T) {
	assert.Panics(t, func() {
		_ = Size(1, 3).Less(Age(2))
	})
}

func TestSizeOrdersBySymbolCountThenID(t *testing.T) {
	assert.True(t, Size(5, 2).Less(Size(1, 3)))
	assert.True(t, Size(1, 3).Less(Size(2, 3)))
}

func TestAgeOrdersByID(t *testing.T) {
	assert.True(t, Age(1).Less(Age(2)))
}

// nestedClause builds a single-literal unit clause p(f(f(...f(a)...)))
// with depth applications of f, so SymbolCount grows with depth.
func nestedClause(tb *term.Table, id int64, depth int) *clause.Clause {
	p := tb.Declare("p", 1, term.PredKind)
	f := tb.Declare("f", 1, term.FuncKind)
	a := tb.Declare("a", 0, term.FuncKind)
	x := tb.Func(a)
	for i := 0; i < depth; i++ {
		x = tb.Func(f, x)
	}
	lit := clause.NewAtom(tb, true, tb.Func(p, x))
	return clause.New(id, id, []clause.Literal{lit}, "")
}

func TestPassivePopBestInterleavesByRatio(t *testing.T) {
	tb := term.NewTable()
	p := NewPassive(2) // 2 size picks per 1 age pick
	c1 := nestedClause(tb, 1, 5)
	c2 := nestedClause(tb, 2, 1)
	c3 := nestedClause(tb, 3, 3)
	p.Push(c1)
	p.Push(c2)
	p.Push(c3)

	var order []int64
	for !p.Empty() {
		c, ok := p.PopBest()
		require.True(t, ok)
		order = append(order, c.ID)
	}
	require.Len(t, order, 3)
	// The first pick comes from the size queue (smallest symbol count
	// first): c2 (depth 1) is smaller than c3 (depth 3) and c1 (depth 5).
	assert.Equal(t, int64(2), order[0])
}

func TestPassiveRemoveTombstonesBothQueues(t *testing.T) {
	tb := term.NewTable()
	p := NewPassive(5)
	c1 := nestedClause(tb, 1, 1)
	c2 := nestedClause(tb, 2, 1)
	p.Push(c1)
	p.Push(c2)
	p.Remove(1)

	got, ok := p.PopBest()
	require.True(t, ok)
	assert.Equal(t, int64(2), got.ID)

	_, ok = p.PopBest()
	assert.False(t, ok)
}

func TestPassiveEmptyAfterAllPopped(t *testing.T) {
	tb := term.NewTable()
	p := NewPassive(5)
	p.Push(nestedClause(tb, 1, 0))
	assert.False(t, p.Empty())
	_, ok := p.PopBest()
	require.True(t, ok)
	assert.True(t, p.Empty())
}
