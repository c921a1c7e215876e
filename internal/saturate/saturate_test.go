package saturate

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/order"
	"github.com/fo-prover/superpose/internal/szs"
	"github.com/fo-prover/superpose/internal/term"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func kboOver(symbols []*term.Symbol) order.Ordering {
	prec := order.NewPrecedence(symbols)
	weights := make(map[int32]uint64, len(symbols))
	for _, s := range symbols {
		weights[s.ID] = 1
	}
	return order.NewKBO(prec, order.NewWeight(1, 1, weights))
}

func TestRunFindsRefutationFromComplementaryUnitClauses(t *testing.T) {
	tb := term.NewTable()
	ids := clause.NewIDAllocator()
	p := tb.Declare("p", 0, term.PredKind)
	a := tb.Declare("a", 0, term.FuncKind)

	atom := tb.Func(p)
	_ = a

	positive := clause.New(ids.Next(), 0, []clause.Literal{clause.NewAtom(tb, true, atom)}, "input")
	negative := clause.New(ids.Next(), 0, []clause.Literal{clause.NewAtom(tb, false, atom)}, "input")

	cfg := Config{Order: kboOver([]*term.Symbol{p}), TimeBudget: time.Second}
	result := Run(quietLogger(), tb, ids, cfg, []*clause.Clause{positive, negative})

	assert.Equal(t, szs.Theorem, result.Status)
	assert.True(t, result.Stats.Consistent())
}

func TestRunReportsCounterSatisfiableWhenNoRefutationExists(t *testing.T) {
	tb := term.NewTable()
	ids := clause.NewIDAllocator()
	p := tb.Declare("p", 0, term.PredKind)
	q := tb.Declare("q", 0, term.PredKind)

	pAtom, qAtom := tb.Func(p), tb.Func(q)
	posP := clause.New(ids.Next(), 0, []clause.Literal{clause.NewAtom(tb, true, pAtom)}, "input")
	negQ := clause.New(ids.Next(), 0, []clause.Literal{clause.NewAtom(tb, false, qAtom)}, "input")

	cfg := Config{Order: kboOver([]*term.Symbol{p, q}), TimeBudget: time.Second}
	result := Run(quietLogger(), tb, ids, cfg, []*clause.Clause{posP, negQ})

	assert.Equal(t, szs.CounterSatisfiable, result.Status)
	assert.Equal(t, 2, result.Stats.Initial)
	assert.True(t, result.Stats.Consistent())
}

func TestRunRefutesEquationalChainViaSuperposition(t *testing.T) {
	// a = b, b = c, a != c — refutable purely by rewriting/superposition
	// on unit equations, with no predicate symbols involved at all.
	tb := term.NewTable()
	ids := clause.NewIDAllocator()
	a := tb.Declare("a", 0, term.FuncKind)
	b := tb.Declare("b", 0, term.FuncKind)
	c := tb.Declare("c", 0, term.FuncKind)

	ab := clause.New(ids.Next(), 0, []clause.Literal{clause.NewEquation(true, tb.Func(a), tb.Func(b))}, "input")
	bc := clause.New(ids.Next(), 0, []clause.Literal{clause.NewEquation(true, tb.Func(b), tb.Func(c))}, "input")
	neq := clause.New(ids.Next(), 0, []clause.Literal{clause.NewEquation(false, tb.Func(a), tb.Func(c))}, "input")

	cfg := Config{Order: kboOver([]*term.Symbol{a, b, c}), TimeBudget: time.Second}
	result := Run(quietLogger(), tb, ids, cfg, []*clause.Clause{ab, bc, neq})

	assert.Equal(t, szs.Theorem, result.Status)
}

func TestRunReportsTimeoutUnderAnElapsedBudget(t *testing.T) {
	tb := term.NewTable()
	ids := clause.NewIDAllocator()
	p := tb.Declare("p", 0, term.PredKind)
	atom := tb.Func(p)
	input := clause.New(ids.Next(), 0, []clause.Literal{clause.NewAtom(tb, true, atom)}, "input")

	cfg := Config{Order: kboOver([]*term.Symbol{p}), TimeBudget: time.Nanosecond}
	result := Run(quietLogger(), tb, ids, cfg, []*clause.Clause{input})

	require.Equal(t, szs.Timeout, result.Status)
	assert.True(t, result.Stats.Consistent())
}

func TestRunPanicsOnNonPositiveTimeBudget(t *testing.T) {
	tb := term.NewTable()
	ids := clause.NewIDAllocator()
	p := tb.Declare("p", 0, term.PredKind)
	cfg := Config{Order: kboOver([]*term.Symbol{p}), TimeBudget: 0}
	assert.Panics(t, func() {
		Run(quietLogger(), tb, ids, cfg, nil)
	})
}
