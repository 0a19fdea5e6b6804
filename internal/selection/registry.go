// Package selection tracks which shapes of a diagram are selected and tells
// observers about every change.
package selection

import (
	"sort"

	"github.com/google/uuid"
)

// Member is anything that can be placed in a Registry.
type Member interface {
	ID() uuid.UUID
	SetSelected(bool)
}

// Observer receives the full selection after every change.
type Observer[T Member] interface {
	OnSelectionChanged(current []T)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc[T Member] func(current []T)

// OnSelectionChanged calls f.
func (f ObserverFunc[T]) OnSelectionChanged(current []T) { f(current) }

// Registry is the selection set of one diagram. Membership mirrors each
// member's selected flag: members call Add and Remove from SetSelected,
// while the bulk helpers (SelectOnly, Clear, Toggle) go through SetSelected
// so both sides stay in step.
//
// A Registry is not safe for concurrent use; confine it to the goroutine
// delivering input events.
type Registry[T Member] struct {
	members   map[uuid.UUID]T
	order     map[uuid.UUID]uint64
	seq       uint64
	observers []Observer[T]
	quiet     int
	dirty     bool
}

// NewRegistry returns an empty selection set.
func NewRegistry[T Member]() *Registry[T] {
	return &Registry[T]{
		members: make(map[uuid.UUID]T),
		order:   make(map[uuid.UUID]uint64),
	}
}

// Observe registers o for change notifications.
func (r *Registry[T]) Observe(o Observer[T]) {
	r.observers = append(r.observers, o)
}

// Add inserts m. Adding an existing member is a no-op.
func (r *Registry[T]) Add(m T) {
	id := m.ID()
	if _, ok := r.members[id]; ok {
		return
	}
	r.seq++
	r.members[id] = m
	r.order[id] = r.seq
	r.changed()
}

// Remove drops m if present.
func (r *Registry[T]) Remove(m T) {
	id := m.ID()
	if _, ok := r.members[id]; !ok {
		return
	}
	delete(r.members, id)
	delete(r.order, id)
	r.changed()
}

// Contains reports whether m is selected.
func (r *Registry[T]) Contains(m T) bool {
	_, ok := r.members[m.ID()]
	return ok
}

// Len returns the number of selected members.
func (r *Registry[T]) Len() int { return len(r.members) }

// Members returns a snapshot of the selection in the order members were
// added. Callers may mutate the selection while ranging over it.
func (r *Registry[T]) Members() []T {
	out := make([]T, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return r.order[out[i].ID()] < r.order[out[j].ID()]
	})
	return out
}

// SelectOnly deselects every other member and selects m. Observers are
// told once about the final state.
func (r *Registry[T]) SelectOnly(m T) {
	r.Batch(func() {
		for _, other := range r.Members() {
			if other.ID() != m.ID() {
				other.SetSelected(false)
			}
		}
		m.SetSelected(true)
	})
}

// Toggle flips m's selection, leaving every other member untouched.
func (r *Registry[T]) Toggle(m T) {
	m.SetSelected(!r.Contains(m))
}

// Clear deselects every member.
func (r *Registry[T]) Clear() {
	r.Batch(func() {
		for _, m := range r.Members() {
			m.SetSelected(false)
		}
	})
}

// Replace makes want the whole selection.
func (r *Registry[T]) Replace(all, want []T) {
	keep := make(map[uuid.UUID]bool, len(want))
	for _, m := range want {
		keep[m.ID()] = true
	}
	r.Batch(func() {
		for _, m := range all {
			m.SetSelected(keep[m.ID()])
		}
	})
}

// Batch runs fn and coalesces the notifications it causes into one.
func (r *Registry[T]) Batch(fn func()) {
	r.quiet++
	defer func() {
		r.quiet--
		if r.quiet == 0 && r.dirty {
			r.dirty = false
			r.Notify()
		}
	}()
	fn()
}

// Notify sends the current selection to every observer.
func (r *Registry[T]) Notify() {
	if len(r.observers) == 0 {
		return
	}
	current := r.Members()
	for _, o := range r.observers {
		o.OnSelectionChanged(current)
	}
}

func (r *Registry[T]) changed() {
	if r.quiet > 0 {
		r.dirty = true
		return
	}
	r.Notify()
}
