package clipboard

import (
	"sync"
	"time"

	"github.com/dshills/pagecraft/internal/tree"
)

// Operation records how clipboard data was produced.
type Operation uint8

const (
	// OpCopy means the source node was left in place.
	OpCopy Operation = iota + 1
	// OpCut means the source node was removed or cleared.
	OpCut
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OpCopy:
		return "copy"
	case OpCut:
		return "cut"
	default:
		return "none"
	}
}

// Data is the content of the clipboard slot.
type Data struct {
	// Kind is the handler kind that produced the data.
	Kind string

	// Payload is the copied subtree. It keeps the source ids; paste
	// always inserts a clone with fresh ids.
	Payload *tree.Node

	Operation Operation
	Timestamp time.Time
}

// IsZero reports whether the data is empty.
func (d Data) IsZero() bool {
	return d.Payload == nil
}

// Store is a single-slot clipboard. The next copy or cut overwrites the
// slot; paste reads it without clearing it.
type Store struct {
	mu   sync.Mutex
	data Data
	has  bool
}

// NewStore creates an empty clipboard store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the current clipboard data.
// The second result is false if the clipboard is empty.
func (s *Store) Get() (Data, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, s.has
}

// Set replaces the clipboard content.
func (s *Store) Set(d Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = d
	s.has = !d.IsZero()
}

// Clear empties the clipboard.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = Data{}
	s.has = false
}

// IsEmpty returns true if nothing has been copied or cut.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.has
}

// Snapshot captures the slot so it can be put back with Restore.
type Snapshot struct {
	data Data
	has  bool
}

// Snapshot returns the current slot state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{data: s.data, has: s.has}
}

// Restore puts back a slot state captured by Snapshot.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = snap.data
	s.has = snap.has
}
