// Package simplify implements the redundancy and normalization machinery
// that keeps the saturation engine's clause sets small and fair: tautology
// deletion, rewriting to normal form by oriented unit equations,
// simplify-reflect, and forward/backward subsumption (spec.md §4.4).
package simplify

import "github.com/fo-prover/superpose/internal/clause"

// IsTautology reports whether c is a tautology: it contains a positive
// literal s = s, or a literal and its complement (spec.md §4.4).
// Tautologies are discarded on sight, never entering passive or active.
func IsTautology(c *clause.Clause) bool {
	for _, l := range c.Literals {
		if l.IsTrivialPositive() {
			return true
		}
	}
	for i, l := range c.Literals {
		for j := i + 1; j < len(c.Literals); j++ {
			if l.ComplementOf(c.Literals[j]) {
				return true
			}
		}
	}
	return false
}
