package selection

import "github.com/fo-prover/superpose/internal/clause"

// DefaultPickRatio is the number of size-queue picks made for every single
// age-queue pick (spec.md §4.5's "e.g. five size-picks per one age-pick").
const DefaultPickRatio = 5

// Passive is the passive clause set: two weight-ordered queues (by symbol
// count and by age) interleaved at a fixed pick ratio, so that every
// clause is eventually selected by the age queue even if the size queue
// never favors it — the fairness property spec.md §8 requires.
type Passive struct {
	size      *queue
	age       *queue
	pickRatio int
	sinceAge  int
	clauses   map[int64]*clause.Clause
}

// NewPassive builds an empty passive set with the given pick ratio (size
// picks per age pick). A non-positive ratio defaults to DefaultPickRatio.
func NewPassive(pickRatio int) *Passive {
	if pickRatio <= 0 {
		pickRatio = DefaultPickRatio
	}
	return &Passive{
		size:      newQueue(SizeKind),
		age:       newQueue(AgeKind),
		pickRatio: pickRatio,
		clauses:   make(map[int64]*clause.Clause),
	}
}

// Push adds c to both the size and age queues.
func (p *Passive) Push(c *clause.Clause) {
	p.clauses[c.ID] = c
	p.size.push(Size(c.ID, c.SymbolCount()))
	p.age.push(Age(c.ID))
}

// Remove makes c unselectable without requiring either queue to be
// rescanned: both queues tombstone it and check on pop.
func (p *Passive) Remove(id int64) {
	delete(p.clauses, id)
	p.size.tombstone(id)
	p.age.tombstone(id)
}

// Empty reports whether no clause remains selectable.
func (p *Passive) Empty() bool {
	return len(p.clauses) == 0
}

// PopBest selects the next given clause: the pick ratio interleaves
// pickRatio picks from the size queue with one pick from the age queue.
// Whichever queue is consulted, the popped entry is tombstoned out of the
// other queue too before being returned, so a clause is never handed out
// twice.
func (p *Passive) PopBest() (*clause.Clause, bool) {
	if p.Empty() {
		return nil, false
	}
	useAge := p.sinceAge >= p.pickRatio
	w, ok := p.popFrom(useAge)
	if !ok {
		// The preferred queue ran dry of live entries (can happen right
		// after a burst of tombstoning); fall back to the other.
		w, ok = p.popFrom(!useAge)
		if !ok {
			return nil, false
		}
	}
	if useAge {
		p.sinceAge = 0
	} else {
		p.sinceAge++
	}
	id := w.ID()
	c := p.clauses[id]
	delete(p.clauses, id)
	p.size.tombstone(id)
	p.age.tombstone(id)
	return c, true
}

func (p *Passive) popFrom(useAge bool) (ClauseWeight, bool) {
	if useAge {
		return p.age.pop()
	}
	return p.size.pop()
}
