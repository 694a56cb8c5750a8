// Package reactive provides synchronous observable cells and memoized views
// derived from them.
//
// Cells are single-writer: callers serialize access to a cell and everything
// derived from it. Notification happens inline, so once Set returns every
// subscriber has run and every view reading the cell is stale.
package reactive

// Source is anything whose changes can be observed through a version counter.
type Source interface {
	// Version increases every time the value changes.
	Version() uint64
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Cell holds a mutable value and notifies subscribers synchronously, in
// registration order, on every Set.
type Cell[T any] struct {
	value   T
	version uint64
	nextID  int
	subs    []subscriber[T]
}

// NewCell creates a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	return c.value
}

// Version returns the change counter.
func (c *Cell[T]) Version() uint64 {
	return c.version
}

// Set replaces the value and notifies subscribers. A subscriber that calls Set
// again pre-empts the remaining deliveries of the outer call, so nobody
// observes a value older than one it has already seen.
func (c *Cell[T]) Set(v T) {
	c.value = v
	c.version++
	c.notify()
}

// Update is Set(fn(Get())).
func (c *Cell[T]) Update(fn func(T) T) {
	c.Set(fn(c.value))
}

// Subscribe registers fn to run after every change and returns a function
// that removes it. fn is not called with the current value.
func (c *Cell[T]) Subscribe(fn func(T)) (cancel func()) {
	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

func (c *Cell[T]) notify() {
	version := c.version
	subs := c.subs
	for _, s := range subs {
		if c.version != version {
			return
		}
		s.fn(c.value)
	}
}
