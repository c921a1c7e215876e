// Package index implements the derived lookup structures the saturation
// engine maintains alongside the active clause set: a discrimination tree
// over oriented unit-equation left-hand sides (for rewriting), a
// feature-vector index over every active clause (for subsumption
// candidate pruning), and a cache of irreducible terms. Indices are treated
// as derived views: they reference clauses and rules by id, never own them,
// and must be updated in lockstep with active-set membership (spec.md §3).
package index

import (
	"github.com/fo-prover/superpose/internal/subst"
	"github.com/fo-prover/superpose/internal/term"
)

// Rule is an oriented rewrite rule l → r, stored in the discrimination tree
// keyed by l. ClauseID names the unit equation clause l = r it came from,
// so the rule can be retracted when that clause leaves the active set.
type Rule struct {
	LHS, RHS *term.Term
	ClauseID int64
}

// Generalization is one result of iter_generalizations: a stored rule whose
// left-hand side generalizes the query term under Subst (spec.md §3:
// `stored·σ = t`).
type Generalization struct {
	Rule  Rule
	Subst *subst.Substitution
}

// token is a single step of a term's prefix (polish-notation) traversal:
// either a concrete (symbol id, arity) pair, or the wildcard standing for
// "a variable here, matching any subterm".
type token struct {
	isVar bool
	sym   int32
}

func tokensOf(t *term.Term, out []token) []token {
	if t.IsVar() {
		return append(out, token{isVar: true})
	}
	out = append(out, token{sym: t.SymbolID()})
	for _, a := range t.Args() {
		out = tokensOf(a, out)
	}
	return out
}

// node is a trie node keyed by token: one child per distinct function
// symbol encountered at this position, plus at most one "variable" child
// that, when taken, matches the query's entire subtree at this position
// regardless of its shape.
type node struct {
	children map[int32]*node
	varChild *node
	rules    []Rule // non-empty only at a node reached by a complete term path
}

func newNode() *node {
	return &node{children: make(map[int32]*node)}
}

// DiscriminationTree indexes a set of terms (oriented unit-equation
// left-hand sides) to accelerate iter_generalizations(t): finding every
// stored term that generalizes a query term, together with the matching
// substitution (spec.md §3, §4.4).
//
// Candidate retrieval walks the trie recursively, branching whenever a
// variable edge is available (it unconditionally matches the remaining
// query subtree at that position); every candidate reached at a leaf is
// then verified with a real one-sided match, which also recovers
// constraints a bare token trie cannot express — most importantly, that
// two occurrences of the same stored variable must match equal subterms.
type DiscriminationTree struct {
	table *term.Table
	root  *node
	size  int
}

// NewDiscriminationTree builds an empty tree over terms from tb.
func NewDiscriminationTree(tb *term.Table) *DiscriminationTree {
	return &DiscriminationTree{table: tb, root: newNode()}
}

// Len reports the number of rules currently stored.
func (d *DiscriminationTree) Len() int { return d.size }

// Insert adds a rule keyed by its left-hand side.
func (d *DiscriminationTree) Insert(r Rule) {
	toks := tokensOf(r.LHS, nil)
	cur := d.root
	for _, tk := range toks {
		cur = d.descend(cur, tk, true)
	}
	cur.rules = append(cur.rules, r)
	d.size++
}

// Remove deletes every stored rule whose clause id matches clauseID and
// whose left-hand side equals lhs. The trie's internal nodes are left in
// place even when they become empty of rules: they are cheap, and the next
// insertion sharing that prefix reuses them.
func (d *DiscriminationTree) Remove(lhs *term.Term, clauseID int64) {
	toks := tokensOf(lhs, nil)
	cur := d.root
	for _, tk := range toks {
		next := d.descend(cur, tk, false)
		if next == nil {
			return
		}
		cur = next
	}
	kept := cur.rules[:0]
	for _, r := range cur.rules {
		if r.ClauseID != clauseID {
			kept = append(kept, r)
		} else {
			d.size--
		}
	}
	cur.rules = kept
}

func (d *DiscriminationTree) descend(n *node, tk token, create bool) *node {
	if tk.isVar {
		if n.varChild == nil {
			if !create {
				return nil
			}
			n.varChild = newNode()
		}
		return n.varChild
	}
	if child, ok := n.children[tk.sym]; ok {
		return child
	}
	if !create {
		return nil
	}
	child := newNode()
	n.children[tk.sym] = child
	return child
}

// IterGeneralizations returns every stored rule whose left-hand side
// generalizes query, paired with the substitution witnessing it.
func (d *DiscriminationTree) IterGeneralizations(query *term.Term) []Generalization {
	var out []Generalization
	d.walk(d.root, []*term.Term{query}, func(n *node) {
		for _, r := range n.rules {
			sigma, err := subst.Match(d.table, r.LHS, query)
			if err != nil {
				continue
			}
			out = append(out, Generalization{Rule: r, Subst: sigma})
		}
	})
	return out
}

// walk visits every trie node reachable from n by consuming the worklist
// of terms still owed to the trie, in order. A variable edge consumes
// exactly one worklist term wholesale (its internal structure is never
// inspected); a concrete symbol edge consumes one worklist term only if
// its head matches, pushing that term's own arguments onto the front of
// the remaining worklist.
func (d *DiscriminationTree) walk(n *node, pending []*term.Term, visit func(*node)) {
	if len(pending) == 0 {
		visit(n)
		return
	}
	head, rest := pending[0], pending[1:]

	if n.varChild != nil {
		d.walk(n.varChild, rest, visit)
	}
	if head.IsVar() {
		// A variable query subterm has no symbol of its own, so it can
		// only match a stored variable edge (handled above), never a
		// stored concrete-symbol edge.
		return
	}
	child, ok := n.children[head.SymbolID()]
	if !ok {
		return
	}
	combined := make([]*term.Term, 0, len(head.Args())+len(rest))
	combined = append(combined, head.Args()...)
	combined = append(combined, rest...)
	d.walk(child, combined, visit)
}
