package selection

import "github.com/google/btree"

// queue is a single weight-ordered passive queue, backed by a btree so a
// clause made redundant while still passive can be tombstoned (checked on
// pop) rather than requiring an O(n) scan to remove (spec.md §9:
// "tombstoning is simpler and generally sufficient").
type queue struct {
	kind Kind
	tree *btree.BTreeG[ClauseWeight]
	live map[int64]ClauseWeight
}

func newQueue(kind Kind) *queue {
	return &queue{
		kind: kind,
		tree: btree.NewG(32, ClauseWeight.Less),
		live: make(map[int64]ClauseWeight),
	}
}

func (q *queue) push(w ClauseWeight) {
	if w.Kind() != q.kind {
		panic("selection: queue received a ClauseWeight of the wrong kind")
	}
	q.tree.ReplaceOrInsert(w)
	q.live[w.ID()] = w
}

// tombstone marks id dead: a later pop silently skips it instead of
// returning it.
func (q *queue) tombstone(id int64) {
	delete(q.live, id)
}

// pop removes and returns the best live entry, or false if the queue (once
// tombstoned entries are discarded) is empty.
func (q *queue) pop() (ClauseWeight, bool) {
	for {
		min, ok := q.tree.Min()
		if !ok {
			return ClauseWeight{}, false
		}
		q.tree.DeleteMin()
		if _, alive := q.live[min.ID()]; alive {
			delete(q.live, min.ID())
			return min, true
		}
		// Tombstoned: keep popping.
	}
}

// empty reports whether the queue holds no live entries. Unlike pop, this
// does not mutate the queue; it conservatively walks past tombstoned
// entries without removing them.
func (q *queue) empty() bool {
	empty := true
	q.tree.Ascend(func(w ClauseWeight) bool {
		if _, alive := q.live[w.ID()]; alive {
			empty = false
			return false
		}
		return true
	})
	return empty
}
