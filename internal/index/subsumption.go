package index

import (
	"github.com/google/btree"

	"github.com/fo-prover/superpose/internal/clause"
)

// FeatureVector is a cheap, monotone summary of a clause used to prune
// subsumption candidates before attempting the expensive multiset-matching
// check (spec.md §4.4: "feature-vector index prunes candidates"). A
// substitution can only grow or preserve a term's symbol count and can
// never remove a literal, so every feature here is necessary (though not
// sufficient) for C to subsume D: C can subsume D only if every one of C's
// features is ≤ the corresponding feature of D.
type FeatureVector struct {
	Literals    int
	SymbolCount int
	Positive    int
	Negative    int
}

// FeatureVectorOf computes c's feature vector.
func FeatureVectorOf(c *clause.Clause) FeatureVector {
	fv := FeatureVector{Literals: len(c.Literals), SymbolCount: c.SymbolCount()}
	for _, l := range c.Literals {
		if l.Positive {
			fv.Positive++
		} else {
			fv.Negative++
		}
	}
	return fv
}

// dominatedBy reports whether fv could subsume other: every feature of fv
// must be no greater than the corresponding feature of other.
func (fv FeatureVector) dominatedBy(other FeatureVector) bool {
	return fv.Literals <= other.Literals &&
		fv.SymbolCount <= other.SymbolCount &&
		fv.Positive <= other.Positive &&
		fv.Negative <= other.Negative
}

type subsumptionEntry struct {
	fv       FeatureVector
	clauseID int64
}

// less orders entries by the feature most cheaply checked first (literal
// count), then symbol count, then id, giving the btree a stable total
// order so entries can be inserted, range-scanned, and removed by key.
func (e subsumptionEntry) less(other subsumptionEntry) bool {
	if e.fv.Literals != other.fv.Literals {
		return e.fv.Literals < other.fv.Literals
	}
	if e.fv.SymbolCount != other.fv.SymbolCount {
		return e.fv.SymbolCount < other.fv.SymbolCount
	}
	return e.clauseID < other.clauseID
}

// SubsumptionIndex retrieves forward/backward subsumption candidates.
// Entries are ordered by literal count, so a forward query only scans
// entries with no more literals than itself; a backward query scans every
// entry and filters by feature dominance.
type SubsumptionIndex struct {
	tree *btree.BTreeG[subsumptionEntry]
	fvOf map[int64]FeatureVector
}

// NewSubsumptionIndex returns an empty index.
func NewSubsumptionIndex() *SubsumptionIndex {
	return &SubsumptionIndex{
		tree: btree.NewG(32, func(a, b subsumptionEntry) bool { return a.less(b) }),
		fvOf: make(map[int64]FeatureVector),
	}
}

// Insert adds c to the index.
func (idx *SubsumptionIndex) Insert(c *clause.Clause) {
	fv := FeatureVectorOf(c)
	idx.fvOf[c.ID] = fv
	idx.tree.ReplaceOrInsert(subsumptionEntry{fv: fv, clauseID: c.ID})
}

// Remove deletes c from the index.
func (idx *SubsumptionIndex) Remove(c *clause.Clause) {
	fv, ok := idx.fvOf[c.ID]
	if !ok {
		return
	}
	idx.tree.Delete(subsumptionEntry{fv: fv, clauseID: c.ID})
	delete(idx.fvOf, c.ID)
}

// CandidateForwardSubsumers returns the ids of indexed clauses whose
// feature vector could dominate query — i.e. could subsume it. Used for
// forward subsumption: checking whether some active clause subsumes a
// freshly simplified one.
func (idx *SubsumptionIndex) CandidateForwardSubsumers(query FeatureVector) []int64 {
	var out []int64
	pivot := subsumptionEntry{fv: FeatureVector{Literals: query.Literals + 1}, clauseID: 0}
	idx.tree.AscendLessThan(pivot, func(e subsumptionEntry) bool {
		if e.fv.dominatedBy(query) {
			out = append(out, e.clauseID)
		}
		return true
	})
	return out
}

// CandidateBackwardSubsumed returns the ids of indexed clauses that query
// could subsume — used for backward subsumption: once query has just
// entered the active set, which existing active clauses does it make
// redundant.
func (idx *SubsumptionIndex) CandidateBackwardSubsumed(query FeatureVector) []int64 {
	var out []int64
	idx.tree.Ascend(func(e subsumptionEntry) bool {
		if query.dominatedBy(e.fv) {
			out = append(out, e.clauseID)
		}
		return true
	})
	return out
}

// Len reports how many clauses are currently indexed.
func (idx *SubsumptionIndex) Len() int { return idx.tree.Len() }
