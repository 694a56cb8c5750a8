package reactive

// View is a read-only value computed from one or more sources. It recomputes
// lazily on Get, and only when a dependency has changed since the cached value
// was computed. compute must be pure.
type View[T any] struct {
	compute func() T
	deps    []Source
	seen    []uint64
	value   T
	valid   bool
	version uint64
}

// Derive creates a view over deps.
func Derive[T any](compute func() T, deps ...Source) *View[T] {
	return &View[T]{
		compute: compute,
		deps:    deps,
		seen:    make([]uint64, len(deps)),
	}
}

// Map derives a view from a single cell.
func Map[S, T any](src *Cell[S], fn func(S) T) *View[T] {
	return Derive(func() T { return fn(src.Get()) }, src)
}

// Get returns the cached value, recomputing it first if any dependency has
// changed.
func (v *View[T]) Get() T {
	v.refresh()
	return v.value
}

// Version refreshes the view and returns its own change counter, which lets
// views depend on other views.
func (v *View[T]) Version() uint64 {
	v.refresh()
	return v.version
}

func (v *View[T]) refresh() {
	if v.valid && !v.stale() {
		return
	}
	for i, d := range v.deps {
		v.seen[i] = d.Version()
	}
	v.value = v.compute()
	v.valid = true
	v.version++
}

func (v *View[T]) stale() bool {
	for i, d := range v.deps {
		if d.Version() != v.seen[i] {
			return true
		}
	}
	return false
}
