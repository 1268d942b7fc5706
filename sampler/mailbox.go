package sampler

import (
	"sync"
	"time"

	"github.com/ardnew/pyrelens/flame"
)

// Output is one raw folded-stack snapshot produced by a sampling source.
type Output struct {
	// Data is the folded-stack text of the snapshot.
	Data string
	// Taken records when the snapshot was captured.
	Taken time.Time
}

// Parsed couples a freshly built graph with the time spent parsing it,
// surfaced in the debug overlay.
type Parsed struct {
	// Graph is the fully built, internally consistent graph.
	Graph *flame.Graph
	// Elapsed is the wall time of the parse.
	Elapsed time.Duration
}

// Mailbox is a single-slot overwrite-on-publish handoff between one
// producer and one consumer. It holds either nothing or one complete value;
// publishing over an unconsumed value drops the stale one.
//
// The lock is held only for the instant of swap, never across parsing or
// rendering work.
type Mailbox[T any] struct {
	mu  sync.Mutex
	val *T
}

// Put publishes a value, overwriting any unconsumed previous value.
func (m *Mailbox[T]) Put(v T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.val = &v
}

// Take removes and returns the pending value, if any.
func (m *Mailbox[T]) Take() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.val == nil {
		var zero T

		return zero, false
	}

	v := *m.val
	m.val = nil

	return v, true
}

// Pending reports whether a value awaits pickup without consuming it.
func (m *Mailbox[T]) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.val != nil
}
