// Command superpose reads a first-order problem file and attempts to
// refute its negated conjecture by saturation-based ordered superposition
// (spec.md §6). It prints a standardized SZS status line and a statistics
// report, and exits 0 for any well-defined outcome — Theorem,
// CounterSatisfiable, Timeout — reserving a non-zero exit for I/O and
// parse failures.
package main

import (
	"os"
	"path/filepath"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fo-prover/superpose/internal/clause"
	"github.com/fo-prover/superpose/internal/order"
	"github.com/fo-prover/superpose/internal/saturate"
	"github.com/fo-prover/superpose/internal/szs"
	"github.com/fo-prover/superpose/internal/term"
	"github.com/fo-prover/superpose/internal/tptp"
)

// config is the flat, pflag-populated option set (SPEC_FULL.md's ambient
// configuration stack): no environment variables, no config file.
type config struct {
	timeLimit       int
	useLPO          bool
	useKBO          bool
	formulaRenaming int
	noOrder         bool
	debug           bool
}

func main() {
	cfg := &config{}
	var input string

	root := &cobra.Command{
		Use:   "superpose <INPUT>",
		Short: "A saturation-based first-order theorem prover",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.useLPO && cfg.useKBO {
				return errors.New("--lpo and --kbo are mutually exclusive")
			}
			if cfg.debug {
				log.SetLevel(log.DebugLevel)
			}
			input = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(input, cfg)
		},
		SilenceUsage: true,
	}

	root.Flags().IntVarP(&cfg.timeLimit, "time-limit", "t", 300, "time budget in seconds")
	root.Flags().BoolVarP(&cfg.useLPO, "lpo", "l", false, "use the lexicographic path ordering")
	root.Flags().BoolVarP(&cfg.useKBO, "kbo", "k", false, "use the Knuth-Bendix ordering (default)")
	root.Flags().IntVar(&cfg.formulaRenaming, "formula-renaming", 32, "literal-count threshold for definitional CNF renaming, 0 disables it")
	root.Flags().BoolVar(&cfg.noOrder, "no-order", false, "debug: fall back to unordered paramodulation")
	root.Flags().BoolVar(&cfg.debug, "debug", false, "enable debug logging")
	if err := root.Flags().MarkHidden("debug"); err != nil {
		log.Panic(err.Error())
	}
	if err := root.Flags().MarkHidden("no-order"); err != nil {
		log.Panic(err.Error())
	}

	if err := root.Execute(); err != nil {
		szs.WriteReport(os.Stdout, szs.Error, input, szs.Statistics{})
		log.WithError(err).Error("superpose: fatal error")
		os.Exit(1)
	}
}

func run(input string, cfg *config) error {
	tb, ids, clauses, err := loadClauses(input, cfg.formulaRenaming)
	if err != nil {
		return err
	}

	ord := buildOrdering(tb, cfg.useLPO)

	result := saturate.Run(log.StandardLogger(), tb, ids, saturate.Config{
		Order:        ord,
		TimeBudget:   time.Duration(cfg.timeLimit) * time.Second,
		Paramodulate: cfg.noOrder,
	}, clauses)

	szs.WriteReport(os.Stdout, result.Status, input, result.Stats)
	return nil
}

// loadClauses reads and clausifies the problem at path, returning the
// term table and clause id allocator the result's clauses belong to
// alongside the clauses themselves — both must be handed, unmodified in
// identity, to the saturation run that follows.
func loadClauses(path string, renameLimit int) (*term.Table, *clause.IDAllocator, []*clause.Clause, error) {
	tb := term.NewTable()
	ids := clause.NewIDAllocator()
	clausifier := tptp.NewClausifier(tb, ids, renameLimit)

	dir := filepath.Dir(path)
	resolve := func(includePath string) (string, error) {
		full := includePath
		if !filepath.IsAbs(full) {
			full = filepath.Join(dir, includePath)
		}
		data, err := os.ReadFile(full)
		if err != nil {
			return "", errors.Wrapf(err, "resolving include %q", includePath)
		}
		return string(data), nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "reading %q", path)
	}

	file, err := tptp.ParseFile(path, string(src), resolve)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "parsing %q", path)
	}

	var result error
	var clauses []*clause.Clause
	for _, af := range file.Formulae {
		cs, err := clausifier.Clausify(af)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "clausifying %q", af.Name))
			continue
		}
		clauses = append(clauses, cs...)
	}
	if result != nil {
		return nil, nil, nil, result
	}
	return tb, ids, clauses, nil
}

// buildOrdering constructs a precedence over every symbol the problem
// declared (in declaration order, the only order available once parsing
// is done — spec.md leaves precedence choice open) and, for KBO, a weight
// function assigning every symbol weight 1. LPO needs only the
// precedence; KBO needs both (spec.md §4.2).
func buildOrdering(tb *term.Table, useLPO bool) order.Ordering {
	var symbols []*term.Symbol
	for _, s := range tb.Symbols() {
		if s.Kind == term.TruthKind {
			continue
		}
		symbols = append(symbols, s)
	}
	prec := order.NewPrecedence(symbols)
	if useLPO {
		return order.NewLPO(prec)
	}
	weights := make(map[int32]uint64, len(symbols))
	for _, s := range symbols {
		weights[s.ID] = 1
	}
	return order.NewKBO(prec, order.NewWeight(1, 1, weights))
}
