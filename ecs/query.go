package ecs

import (
	"iter"
)

// Query is a View whose results are materialised once per frame. The
// scheduler calls Execute on every registered query before the first system
// runs, so all systems of a frame see the same entity set.
type Query[T any] struct {
	view       *View[T]
	storage    *Storage
	archetypes []*Archetype
	seen       int

	ids   []EntityId
	items []T
	ready bool
}

// NewQuery creates a query over storage outside of a scheduler.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. Called by the Scheduler on Register.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.seen = -1
	q.ready = false
}

// Execute refreshes the cached results.
func (q *Query[T]) Execute() {
	if n := len(q.storage.order); n != q.seen {
		q.archetypes = q.archetypes[:0]
		for _, a := range q.storage.order {
			if q.view.matches(a) {
				q.archetypes = append(q.archetypes, a)
			}
		}
		q.seen = n
	}

	q.ids = q.ids[:0]
	q.items = q.items[:0]
	for _, a := range q.archetypes {
		for id, item := range q.view.iterArchetype(a) {
			q.ids = append(q.ids, id)
			q.items = append(q.items, item)
		}
	}
	q.ready = true
}

func (q *Query[T]) mustBeReady() {
	if !q.ready {
		panic("ecs: Query used before Execute")
	}
}

// Iter yields the cached view structs.
func (q *Query[T]) Iter() iter.Seq[T] {
	q.mustBeReady()
	return func(yield func(T) bool) {
		for i := range q.items {
			if !yield(q.items[i]) {
				return
			}
		}
	}
}

// Entries yields the cached results together with their entity IDs.
func (q *Query[T]) Entries() iter.Seq2[EntityId, T] {
	q.mustBeReady()
	return func(yield func(EntityId, T) bool) {
		for i := range q.items {
			if !yield(q.ids[i], q.items[i]) {
				return
			}
		}
	}
}

// First returns the first cached result, for queries known to match one entity.
func (q *Query[T]) First() (T, bool) {
	q.mustBeReady()
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

// Len returns the number of cached results.
func (q *Query[T]) Len() int {
	q.mustBeReady()
	return len(q.items)
}
