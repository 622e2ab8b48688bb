// Package history records recently viewed entities by id.
package history

import (
	"container/list"

	"tasktracker/internal/core/domain"
)

// Tracker keeps at most one entry per id. The most recent view is last.
// A limit of zero means the history is unbounded; otherwise the oldest entry
// is evicted once the limit is reached.
type Tracker struct {
	order *list.List
	nodes map[int]*list.Element
	limit int
}

func NewTracker(limit int) *Tracker {
	if limit < 0 {
		limit = 0
	}
	return &Tracker{
		order: list.New(),
		nodes: make(map[int]*list.Element),
		limit: limit,
	}
}

// Add moves task to the most recent position. A nil task is ignored.
func (t *Tracker) Add(task *domain.Task) {
	if task == nil {
		return
	}
	t.Remove(task.ID)
	t.nodes[task.ID] = t.order.PushBack(task.ID)

	if t.limit > 0 && t.order.Len() > t.limit {
		oldest := t.order.Front()
		t.order.Remove(oldest)
		delete(t.nodes, oldest.Value.(int))
	}
}

func (t *Tracker) Remove(id int) {
	node, ok := t.nodes[id]
	if !ok {
		return
	}
	t.order.Remove(node)
	delete(t.nodes, id)
}

// IDs returns the tracked ids, oldest first.
func (t *Tracker) IDs() []int {
	ids := make([]int, 0, t.order.Len())
	for e := t.order.Front(); e != nil; e = e.Next() {
		ids = append(ids, e.Value.(int))
	}
	return ids
}

func (t *Tracker) Contains(id int) bool {
	_, ok := t.nodes[id]
	return ok
}

func (t *Tracker) Len() int {
	return t.order.Len()
}

func (t *Tracker) Clear() {
	t.order.Init()
	clear(t.nodes)
}
