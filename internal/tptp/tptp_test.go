package tptp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/term"
)

func parseOne(t *testing.T, src string) *AnnotatedFormula {
	t.Helper()
	f, err := ParseFile("test.p", src, nil)
	require.NoError(t, err)
	require.Len(t, f.Formulae, 1)
	return f.Formulae[0]
}

func TestParseCNFPropositional(t *testing.T) {
	af := parseOne(t, "cnf(propositional,axiom,( p0 | ~ q0 | r0 )).")
	assert.True(t, af.IsCNF)
	assert.Equal(t, "propositional", af.Name)
	assert.Equal(t, RoleOther, af.Role)

	leaves, err := flattenOr(af.Formula)
	require.NoError(t, err)
	require.Len(t, leaves, 3)
	assert.Equal(t, ConnPredicate, leaves[0].Conn)
	assert.Equal(t, "p0", leaves[0].Name)
	assert.Equal(t, ConnNot, leaves[1].Conn)
}

func TestParseCNFFirstOrderWithEquality(t *testing.T) {
	af := parseOne(t, "cnf(eq,axiom,( f(Y) = g(X,f(Y),Z) | f(f(f(b))) != a )).")
	leaves, err := flattenOr(af.Formula)
	require.NoError(t, err)
	require.Len(t, leaves, 2)
	assert.Equal(t, "=", leaves[0].Name)
	assert.Equal(t, ConnNot, leaves[1].Conn)
	assert.Equal(t, "=", leaves[1].Sub.Name)
}

func TestParseFOFWithQuantifiersAndImplication(t *testing.T) {
	af := parseOne(t, "fof(ax,axiom,( ! [X] : ( p(X) => ? [Y] : q(X,Y) ) )).")
	assert.False(t, af.IsCNF)
	assert.Equal(t, ConnForall, af.Formula.Conn)
	assert.Equal(t, []string{"X"}, af.Formula.BoundVars)
}

func TestParseConjectureRole(t *testing.T) {
	af := parseOne(t, "fof(goal,conjecture,( p(a) )).")
	assert.Equal(t, RoleConjecture, af.Role)
}

func TestParseIncludeRequiresResolver(t *testing.T) {
	_, err := ParseFile("test.p", "include('axioms.ax').", nil)
	assert.Error(t, err)
}

func TestParseIncludeExpandsNamedFormulae(t *testing.T) {
	resolve := func(path string) (string, error) {
		return "cnf(a1,axiom,(p)). cnf(a2,axiom,(q)).", nil
	}
	f, err := ParseFile("test.p", "include('axioms.ax',[a2]).", resolve)
	require.NoError(t, err)
	require.Len(t, f.Formulae, 1)
	assert.Equal(t, "a2", f.Formulae[0].Name)
}

func TestClausifyCNFAxiomKeepsAllLiterals(t *testing.T) {
	af := parseOne(t, "cnf(ax,axiom,( p(a) | ~ q(a) )).")
	tb := term.NewTable()
	ids := clause.NewIDAllocator()
	c := NewClausifier(tb, ids, 0)
	clauses, err := c.Clausify(af)
	require.NoError(t, err)
	require.Len(t, clauses, 1)
	assert.Len(t, clauses[0].Literals, 2)
}

func TestClausifyCNFConjectureNegatesEveryLiteral(t *testing.T) {
	af := parseOne(t, "cnf(goal,conjecture,( p(a) | q(a) )).")
	tb := term.NewTable()
	ids := clause.NewIDAllocator()
	c := NewClausifier(tb, ids, 0)
	clauses, err := c.Clausify(af)
	require.NoError(t, err)
	require.Len(t, clauses, 2)
	for _, cl := range clauses {
		require.Len(t, cl.Literals, 1)
		assert.False(t, cl.Literals[0].Positive)
	}
}

func TestClausifyFOFUniversalConjunctionSplitsIntoTwoClauses(t *testing.T) {
	af := parseOne(t, "fof(ax,axiom,( ! [X] : ( p(X) & q(X) ) )).")
	tb := term.NewTable()
	ids := clause.NewIDAllocator()
	c := NewClausifier(tb, ids, 0)
	clauses, err := c.Clausify(af)
	require.NoError(t, err)
	assert.Len(t, clauses, 2)
	for _, cl := range clauses {
		assert.Len(t, cl.Literals, 1)
	}
}

func TestClausifyFOFExistentialIntroducesSkolemFunction(t *testing.T) {
	af := parseOne(t, "fof(ax,axiom,( ! [X] : ? [Y] : p(X,Y) )).")
	tb := term.NewTable()
	ids := clause.NewIDAllocator()
	c := NewClausifier(tb, ids, 0)
	clauses, err := c.Clausify(af)
	require.NoError(t, err)
	require.Len(t, clauses, 1)
	require.Len(t, clauses[0].Literals, 1)
	atom := clauses[0].Literals[0].LHS
	require.Len(t, atom.Args(), 2)
	skolemApplication := atom.Args()[1]
	assert.False(t, skolemApplication.IsVar())
	assert.Equal(t, 1, len(skolemApplication.Args()), "the Skolem function takes the one enclosing universal as its argument")
}

func TestClausifyFOFConjectureIsNegated(t *testing.T) {
	af := parseOne(t, "fof(goal,conjecture,( p(a) )).")
	tb := term.NewTable()
	ids := clause.NewIDAllocator()
	c := NewClausifier(tb, ids, 0)
	clauses, err := c.Clausify(af)
	require.NoError(t, err)
	require.Len(t, clauses, 1)
	require.Len(t, clauses[0].Literals, 1)
	assert.False(t, clauses[0].Literals[0].Positive)
}

func TestClausifyFOFRenamingInsertsDefinitionalClauses(t *testing.T) {
	af := parseOne(t, "fof(ax,axiom,( p(a) | ( q(a) & r(a) ) )).")
	tb := term.NewTable()
	ids := clause.NewIDAllocator()
	c := NewClausifier(tb, ids, 1) // every And/Or with >1 literal gets renamed
	clauses, err := c.Clausify(af)
	require.NoError(t, err)
	// One clause for the renamed disjunction, plus defining clauses for the
	// fresh atom standing in for (q(a) & r(a)).
	assert.Greater(t, len(clauses), 1)
}
