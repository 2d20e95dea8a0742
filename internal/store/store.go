// Package store holds the client-visible mirror of one remote collection
// plus its request-lifecycle flags. Transitions are serialized by a mutex;
// readers get value snapshots and never observe a half-applied transition.
package store

import "sync"

// Snapshot is a point-in-time copy of a collection's state.
type Snapshot[T any] struct {
	Items       []T
	IsLoading   bool
	Error       string
	IsCreating  bool
	CreateError string
	IsUpdating  bool
}

// Collection mirrors one remote entity collection. A fetch in flight keeps
// the previously loaded items visible until the new list arrives or the
// fetch fails (stale-while-revalidate). Concurrent operations are tolerated;
// whichever transition applies last determines the final state.
type Collection[T any] struct {
	name string
	idOf func(T) string

	mu    sync.RWMutex
	state Snapshot[T]

	subMu  sync.Mutex
	nextID int
	subs   map[int]func()
}

// New creates an empty collection. idOf extracts the stable identifier used
// to replace items in place on update.
func New[T any](name string, idOf func(T) string) *Collection[T] {
	return &Collection[T]{
		name: name,
		idOf: idOf,
		subs: make(map[int]func()),
	}
}

// Name returns the collection name used in logs and metrics.
func (c *Collection[T]) Name() string { return c.name }

// Snapshot returns a copy of the current state. The items slice is copied
// so callers can never mutate the store through it.
func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := c.state
	out.Items = append([]T(nil), c.state.Items...)
	return out
}

// BeginFetch marks a list fetch as in flight. Prior items stay visible and
// any prior fetch error is cleared.
func (c *Collection[T]) BeginFetch() {
	c.mu.Lock()
	c.state.IsLoading = true
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
}

// ResolveFetch replaces the item list with the fetched one.
func (c *Collection[T]) ResolveFetch(items []T) {
	c.mu.Lock()
	c.state.IsLoading = false
	c.state.Error = ""
	c.state.Items = append([]T(nil), items...)
	c.mu.Unlock()
	c.notify()
}

// RejectFetch records a fetch failure. Items are left unchanged.
func (c *Collection[T]) RejectFetch(message string) {
	c.mu.Lock()
	c.state.IsLoading = false
	c.state.Error = message
	c.mu.Unlock()
	c.notify()
}

// BeginCreate marks a create as in flight and clears the prior create error.
func (c *Collection[T]) BeginCreate() {
	c.mu.Lock()
	c.state.IsCreating = true
	c.state.CreateError = ""
	c.mu.Unlock()
	c.notify()
}

// ResolveCreate appends the server-returned entity.
func (c *Collection[T]) ResolveCreate(item T) {
	c.mu.Lock()
	c.state.IsCreating = false
	c.state.CreateError = ""
	c.state.Items = append(c.state.Items, item)
	c.mu.Unlock()
	c.notify()
}

// RejectCreate records a create failure.
func (c *Collection[T]) RejectCreate(message string) {
	c.mu.Lock()
	c.state.IsCreating = false
	c.state.CreateError = message
	c.mu.Unlock()
	c.notify()
}

// BeginUpdate marks an update as in flight and clears the prior error.
func (c *Collection[T]) BeginUpdate() {
	c.mu.Lock()
	c.state.IsUpdating = true
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
}

// ResolveUpdate replaces the item with a matching id in place. An id not
// present in the current list is a no-op on the collection: the server
// response is trusted but local drift is tolerated.
func (c *Collection[T]) ResolveUpdate(item T) {
	id := c.idOf(item)

	c.mu.Lock()
	c.state.IsUpdating = false
	for i := range c.state.Items {
		if c.idOf(c.state.Items[i]) == id {
			c.state.Items[i] = item
			break
		}
	}
	c.mu.Unlock()
	c.notify()
}

// RejectUpdate records an update failure.
func (c *Collection[T]) RejectUpdate(message string) {
	c.mu.Lock()
	c.state.IsUpdating = false
	c.state.Error = message
	c.mu.Unlock()
	c.notify()
}

// Subscribe registers fn to run after every applied transition. The
// returned function removes the subscription. fn runs outside the state
// lock; subscribers read through Snapshot.
func (c *Collection[T]) Subscribe(fn func()) func() {
	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Collection[T]) notify() {
	c.subMu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
