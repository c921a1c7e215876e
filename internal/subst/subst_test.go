package subst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fo-prover/superpose/internal/term"
)

func TestMGUUnifiesVariableWithTerm(t *testing.T) {
	tb := term.NewTable()
	f := tb.Declare("f", 1, term.FuncKind)
	a := tb.Declare("a", 0, term.FuncKind)
	x := tb.FreshVar()

	lhs := tb.Func(f, x)
	rhs := tb.Func(f, tb.Func(a))

	sigma, err := MGU(tb, lhs, rhs)
	require.NoError(t, err)
	assert.Same(t, sigma.Apply(lhs), sigma.Apply(rhs))
	assert.Same(t, tb.Func(a), sigma.Apply(x))
}

func TestMGUFailsOnSymbolClash(t *testing.T) {
	tb := term.NewTable()
	a := tb.Declare("a", 0, term.FuncKind)
	b := tb.Declare("b", 0, term.FuncKind)

	_, err := MGU(tb, tb.Func(a), tb.Func(b))
	assert.ErrorIs(t, err, ErrNotUnifiable)
}

func TestMGUFailsOnOccursCheck(t *testing.T) {
	tb := term.NewTable()
	f := tb.Declare("f", 1, term.FuncKind)
	x := tb.FreshVar()

	_, err := MGU(tb, x, tb.Func(f, x))
	assert.ErrorIs(t, err, ErrNotUnifiable)
}

func TestMGUIsMostGeneral(t *testing.T) {
	// mgu(f(X,X), f(Y,a)) must unify X,Y with a, not leave Y free.
	tb := term.NewTable()
	f := tb.Declare("f", 2, term.FuncKind)
	a := tb.Declare("a", 0, term.FuncKind)
	x := tb.FreshVar()
	y := tb.FreshVar()

	sigma, err := MGU(tb, tb.Func(f, x, x), tb.Func(f, y, tb.Func(a)))
	require.NoError(t, err)
	assert.Same(t, tb.Func(a), sigma.Apply(x))
	assert.Same(t, tb.Func(a), sigma.Apply(y))
}

func TestMatchBindsOnlyPatternVariables(t *testing.T) {
	tb := term.NewTable()
	f := tb.Declare("f", 2, term.FuncKind)
	a := tb.Declare("a", 0, term.FuncKind)
	x := tb.FreshVar()
	y := tb.FreshVar()

	pattern := tb.Func(f, x, x)
	subject := tb.Func(f, tb.Func(a), tb.Func(a))

	sigma, err := Match(tb, pattern, subject)
	require.NoError(t, err)
	assert.Same(t, subject, sigma.Apply(pattern))
	assert.True(t, sigma.Empty() == false)

	// subject is ground here, so it has no variable to bind; y is unused.
	// TestMatchNeverBindsSubjectVariables covers a subject variable.
	_ = y
}

func TestMatchFailsWhenPatternRequiresEquatingDistinctSubterms(t *testing.T) {
	tb := term.NewTable()
	f := tb.Declare("f", 2, term.FuncKind)
	a := tb.Declare("a", 0, term.FuncKind)
	b := tb.Declare("b", 0, term.FuncKind)
	x := tb.FreshVar()

	pattern := tb.Func(f, x, x)
	subject := tb.Func(f, tb.Func(a), tb.Func(b))

	_, err := Match(tb, pattern, subject)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestMatchNeverBindsSubjectVariables(t *testing.T) {
	tb := term.NewTable()
	f := tb.Declare("f", 1, term.FuncKind)
	a := tb.Declare("a", 0, term.FuncKind)
	y := tb.FreshVar()

	// pattern f(a) cannot match subject f(Y): Y is a subject variable and
	// must not be bound to satisfy the match in reverse.
	_, err := Match(tb, tb.Func(f, tb.Func(a)), tb.Func(f, y))
	assert.ErrorIs(t, err, ErrNoMatch)
}
