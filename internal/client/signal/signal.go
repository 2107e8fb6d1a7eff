// Package signal implements the small reactive primitive the client stores
// are built on: a state cell holding a current value, a subscriber list that
// is notified on every replacement, and derived cells recomputed when their
// source changes.
//
// Mutations are wholesale replacements, never deltas, so a late notification
// applied after its observer went away is harmless. Callbacks run
// synchronously on the goroutine that called Set, outside the cell's lock.
package signal

import "sync"

// Signal is the read-only view of a cell: the current value plus change
// notifications. Consumers other than the owning store only ever see this
// interface.
type Signal[T any] interface {
	// Get returns the current value.
	Get() T

	// Subscribe registers fn to run on every subsequent Set. It does not
	// replay the current value; call Get first if the snapshot matters.
	// The returned function cancels the subscription.
	Subscribe(fn func(T)) (cancel func())
}

// Cell is a mutable state cell. The owning store keeps the *Cell and hands
// out Signal views.
type Cell[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]func(T)
	next  int
}

func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial, subs: make(map[int]func(T))}
}

func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set replaces the value and notifies subscribers. Notification order is
// unspecified.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	fns := make([]func(T), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	// Callbacks run outside the lock so they may read the cell.
	for _, fn := range fns {
		fn(v)
	}
}

// Update applies fn to the current value and stores the result, notifying
// subscribers once.
func (c *Cell[T]) Update(fn func(T) T) {
	c.mu.Lock()
	v := fn(c.value)
	c.value = v
	fns := make([]func(T), 0, len(c.subs))
	for _, f := range c.subs {
		fns = append(fns, f)
	}
	c.mu.Unlock()

	for _, f := range fns {
		f(v)
	}
}

func (c *Cell[T]) Subscribe(fn func(T)) (cancel func()) {
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// readonly hides the Set/Update methods of a Cell.
type readonly[T any] struct {
	c *Cell[T]
}

func (r readonly[T]) Get() T { return r.c.Get() }

func (r readonly[T]) Subscribe(fn func(T)) (cancel func()) { return r.c.Subscribe(fn) }

// ReadOnly returns a view of c without the mutators.
func ReadOnly[T any](c *Cell[T]) Signal[T] {
	return readonly[T]{c: c}
}

// Map returns a derived signal recomputed from src on every change. The
// derived subscription lives as long as the process; derived values are
// intended for process-wide store state, not short-lived consumers.
func Map[T, U any](src Signal[T], f func(T) U) Signal[U] {
	out := NewCell(f(src.Get()))
	src.Subscribe(func(v T) { out.Set(f(v)) })
	return ReadOnly(out)
}
