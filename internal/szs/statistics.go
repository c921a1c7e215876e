package szs

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// Statistics is the plain aggregate the saturation loop updates in place
// and returns in its Result once the loop ends (spec.md
// §5, §9: "keep as a plain aggregate passed by reference... avoid
// process-wide mutable state").
type Statistics struct {
	Initial   int
	Analyzed  int
	Trivial   int
	Forward   int // forward-subsumed
	Nontrivial int // survived simplification and subsumption, i.e. nonredundant
	Backward  int // backward subsumptions performed

	Superposition     int
	EqualityFactoring  int
	EqualityResolution int

	NontrivialInferred int

	Elapsed time.Duration
}

// Consistent reports the invariant end-to-end scenarios check for (spec.md
// §8): initial + inferred ≥ analyzed ≥ nonredundant.
func (s Statistics) Consistent() bool {
	inferred := s.Superposition + s.EqualityFactoring + s.EqualityResolution
	return s.Initial+inferred >= s.Analyzed && s.Analyzed >= s.Nontrivial
}

// WriteReport writes the SZS status line, the output placeholder (for a
// positive outcome), and the statistics block to w. Status coloring
// (green for Theorem and CounterSatisfiable, red for Timeout/GaveUp/Error)
// mirrors the colored terminal reporting convention this prover follows
// for every CLI status line.
func WriteReport(w io.Writer, status Status, file string, stats Statistics) {
	fmt.Fprintln(w, colorizeStatus(status, Line(status, file)))
	if status == Theorem || status == CounterSatisfiable {
		fmt.Fprintln(w, OutputNone)
	}
	fmt.Fprintf(w, "%% elapsed:              %s\n", humanize.RelTime(time.Now().Add(-stats.Elapsed), time.Now(), "", ""))
	fmt.Fprintf(w, "%% initial clauses:      %s\n", humanize.Comma(int64(stats.Initial)))
	fmt.Fprintf(w, "%% analyzed clauses:     %s\n", humanize.Comma(int64(stats.Analyzed)))
	fmt.Fprintf(w, "%% trivial:              %s\n", humanize.Comma(int64(stats.Trivial)))
	fmt.Fprintf(w, "%% forward subsumed:     %s\n", humanize.Comma(int64(stats.Forward)))
	fmt.Fprintf(w, "%% nonredundant:         %s\n", humanize.Comma(int64(stats.Nontrivial)))
	fmt.Fprintf(w, "%% backward subsumed:    %s\n", humanize.Comma(int64(stats.Backward)))
	fmt.Fprintf(w, "%% superposition:        %s\n", humanize.Comma(int64(stats.Superposition)))
	fmt.Fprintf(w, "%% equality factoring:   %s\n", humanize.Comma(int64(stats.EqualityFactoring)))
	fmt.Fprintf(w, "%% equality resolution:  %s\n", humanize.Comma(int64(stats.EqualityResolution)))
	fmt.Fprintf(w, "%% nontrivial inferred:  %s\n", humanize.Comma(int64(stats.NontrivialInferred)))
}

func colorizeStatus(status Status, line string) string {
	switch status {
	case Theorem, CounterSatisfiable:
		return color.GreenString("%s", line)
	case Timeout, GaveUp, Error:
		return color.RedString("%s", line)
	default:
		return line
	}
}
