package index

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/fo-prover/superpose/internal/term"
)

// RewriteMemo caches "this term has no rewrite under the current rule set"
// results during a single rewrite_literals-to-fixpoint pass, so that ground
// or deep subterms revisited across sibling literals are not re-walked
// against the discrimination tree repeatedly. Entries are invalidated in
// bulk (Reset) whenever the active set's rule content changes — back-
// simplification adds or removes oriented unit equations constantly, so a
// stale per-term cache across loop iterations would be unsound.
type RewriteMemo struct {
	cache *lru.Cache[*term.Term, bool]
}

// NewRewriteMemo returns a cache holding up to capacity entries.
func NewRewriteMemo(capacity int) *RewriteMemo {
	c, err := lru.New[*term.Term, bool](capacity)
	if err != nil {
		// Only non-positive capacity reaches here; callers own that
		// invariant, so this is a configuration bug, not a runtime error.
		panic(err)
	}
	return &RewriteMemo{cache: c}
}

// Irreducible reports whether t was previously found to admit no rewrite.
func (m *RewriteMemo) Irreducible(t *term.Term) bool {
	v, ok := m.cache.Get(t)
	return ok && v
}

// MarkIrreducible records that t admits no rewrite under the current rule
// set.
func (m *RewriteMemo) MarkIrreducible(t *term.Term) {
	m.cache.Add(t, true)
}

// Reset discards every cached entry. Call whenever the rule set backing the
// discrimination tree changes (a unit equation enters or leaves active).
func (m *RewriteMemo) Reset() {
	m.cache.Purge()
}
