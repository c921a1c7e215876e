// Package saturate implements the given-clause saturation loop (spec.md
// §4.6): the pick/simplify/infer cycle that drives a clause set to
// refutation, saturation, or time exhaustion. It wires together every
// other package — clause, index, infer, order, selection, simplify,
// szs, and watchdog — and owns none of their internals.
package saturate

import (
	"time"

	uuid "github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/index"
	"github.com/fo-prover/superpose/internal/infer"
	"github.com/fo-prover/superpose/internal/order"
	"github.com/fo-prover/superpose/internal/selection"
	"github.com/fo-prover/superpose/internal/simplify"
	"github.com/fo-prover/superpose/internal/szs"
	"github.com/fo-prover/superpose/internal/term"
	"github.com/fo-prover/superpose/internal/watchdog"
)

// DefaultMemoCapacity bounds the rewrite memoization cache when Config
// leaves it unset.
const DefaultMemoCapacity = 4096

// Config holds the options the loop needs beyond the clause set itself.
type Config struct {
	Order        order.Ordering
	PickRatio    int // selection.DefaultPickRatio is used when zero
	TimeBudget   time.Duration
	MemoCapacity int // DefaultMemoCapacity is used when zero

	// Paramodulate, when set, replaces ordered superposition with the
	// unrestricted paramodulation fallback (infer.Paramodulate) — the
	// debug escape hatch spec.md's CLI exposes as --no-order. Every
	// ordering side-condition is dropped, so this is refutation-complete
	// but not refutation-efficient; never enabled by default.
	Paramodulate bool
}

// Result is the terminal outcome the CLI reports: an SZS status plus the
// statistics accumulated reaching it (spec.md §6, §8).
type Result struct {
	Status szs.Status
	Stats  szs.Statistics
}

// Run saturates initial under cfg, returning once a refutation is found,
// the passive set empties, or the watchdog's time budget elapses. Run
// owns no goroutines of its own beyond the watchdog it starts and stops;
// the saturation loop itself runs entirely on the calling goroutine, per
// spec.md §5's single-threaded core.
func Run(log logrus.FieldLogger, tb *term.Table, ids *clause.IDAllocator, cfg Config, initial []*clause.Clause) Result {
	if cfg.TimeBudget <= 0 {
		panic(errors.New("saturate: Config.TimeBudget must be positive"))
	}
	if cfg.Order == nil {
		panic(errors.New("saturate: Config.Order must not be nil"))
	}

	runID, err := uuid.GenerateUUID()
	if err != nil {
		runID = "unknown"
	}
	log = log.WithField("run_id", runID)

	memoCapacity := cfg.MemoCapacity
	if memoCapacity <= 0 {
		memoCapacity = DefaultMemoCapacity
	}

	wd := watchdog.Start(cfg.TimeBudget)
	defer wd.Stop()

	start := time.Now()
	ctx := &infer.Context{Table: tb, Order: cfg.Order, IDs: ids}
	memo := index.NewRewriteMemo(memoCapacity)
	act := newActiveSet(tb, cfg.Order, memo)
	passive := selection.NewPassive(cfg.PickRatio)

	var stats szs.Statistics
	for _, c := range initial {
		stats.Initial++
		passive.Push(c)
	}
	log.WithField("initial", stats.Initial).Info("saturation starting")

	for {
		if wd.Expired() {
			stats.Elapsed = time.Since(start)
			log.WithField("analyzed", stats.Analyzed).Warn("time budget exhausted")
			return Result{Status: szs.Timeout, Stats: stats}
		}

		g, ok := passive.PopBest()
		if !ok {
			stats.Elapsed = time.Since(start)
			log.Info("passive set exhausted without refutation")
			return Result{Status: szs.CounterSatisfiable, Stats: stats}
		}
		stats.Analyzed++

		g = simplify.Normalize(tb, cfg.Order, act.dt, memo, g)
		if simplify.IsTautology(g) {
			stats.Trivial++
			continue
		}
		if g.IsEmpty() {
			stats.Elapsed = time.Since(start)
			stats.Nontrivial++
			log.WithField("clause_id", g.ID).Info("refutation found")
			return Result{Status: szs.Theorem, Stats: stats}
		}
		if act.forwardSubsumed(g) {
			stats.Forward++
			continue
		}

		backSimplify(act, g, passive, &stats)

		g = g.StandardizeApart(tb, ids)
		act.insert(g)
		stats.Nontrivial++

		log.WithFields(logrus.Fields{"clause_id": g.ID, "literals": len(g.Literals)}).Debug("given clause selected")

		for _, h := range generateChildren(ctx, ids, act, g, cfg.Paramodulate, &stats) {
			h = simplify.Normalize(tb, cfg.Order, act.dt, memo, h)
			if simplify.IsTautology(h) {
				continue
			}
			if act.forwardSubsumed(h) {
				continue
			}
			stats.NontrivialInferred++
			passive.Push(h)
		}
	}
}

// backSimplify removes every active clause g now subsumes and rewrites
// every remaining active clause against g, when g is itself an oriented
// unit equation, re-enqueueing anything that changed (spec.md §4.6's
// back_simplify). The rewrite pass checks only g's own rule — every
// active clause is already normal with respect to the rule set that
// predates g, so g's rule is the only one that can possibly apply newly;
// checking it in isolation (rather than against the shared discrimination
// tree, which would also contain each clause's own self-contributed rule)
// also sidesteps a clause ever being "rewritten" by a rule it contributes
// itself.
func backSimplify(act *activeSet, g *clause.Clause, passive *selection.Passive, stats *szs.Statistics) {
	for _, c := range act.backwardSubsumed(g) {
		act.remove(c)
		stats.Backward++
	}

	rule, oriented := orientedRule(act.order, g)
	if !oriented {
		return
	}
	ruleOnly := index.NewDiscriminationTree(act.table)
	ruleOnly.Insert(rule)

	for _, c := range act.list() {
		rewritten, changed := simplify.RewriteLiterals(act.table, act.order, ruleOnly, nil, c)
		if !changed {
			continue
		}
		act.remove(c)
		normalized := simplify.Normalize(act.table, act.order, ruleOnly, nil, rewritten)
		if simplify.IsTautology(normalized) {
			continue
		}
		passive.Push(normalized)
	}
}

// generateChildren runs every inference rule between g and the active set
// (spec.md §4.6): superposition in both directions against every active
// clause (g included, against a standardized-apart copy of itself, since
// the rule's variable-disjointness precondition does not otherwise hold
// for a clause paired with itself), plus one pass each of equality
// factoring and equality resolution on g alone.
func generateChildren(ctx *infer.Context, ids *clause.IDAllocator, act *activeSet, g *clause.Clause, paramodulate bool, stats *szs.Statistics) []*clause.Clause {
	rule := infer.Superposition
	if paramodulate {
		rule = infer.Paramodulate
	}

	var out []*clause.Clause
	for _, c := range act.list() {
		from, into := g, c
		if c.ID == g.ID {
			into = g.StandardizeApart(ctx.Table, ids)
		}
		sp := rule(ctx, from, into)
		sp = append(sp, rule(ctx, into, from)...)
		stats.Superposition += len(sp)
		out = append(out, sp...)
	}
	ef := infer.EqualityFactoring(ctx, g)
	stats.EqualityFactoring += len(ef)
	out = append(out, ef...)

	er := infer.EqualityResolution(ctx, g)
	stats.EqualityResolution += len(er)
	out = append(out, er...)

	return out
}
