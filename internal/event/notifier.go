package event

import (
	"errors"
	"slices"
	"sync"
)

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("notifier is closed")

// Observer is called for each delivered event.
type Observer func(ev Event)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type entry struct {
	id       uint64
	topic    Topic
	observer Observer
}

// Notifier fans events out to observers. Observers are called in
// subscription order.
type Notifier struct {
	mu      sync.RWMutex
	entries []entry
	nextID  uint64

	// Whether to notify synchronously or asynchronously
	async  bool
	buffer chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	sending sync.WaitGroup
	closed  bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync delivers events from a background goroutine through a buffer
// of the given size. Publish blocks while the buffer is full.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Event, bufferSize)
		}
	}
}

// New creates a new Notifier. Delivery is synchronous unless WithAsync is
// given.
func New(opts ...Option) *Notifier {
	n := &Notifier{done: make(chan struct{})}
	for _, opt := range opts {
		opt(n)
	}
	if n.async {
		n.wg.Add(1)
		go n.processAsync()
	}
	return n
}

// Subscribe registers an observer for topic and every topic below it. The
// empty topic receives everything.
func (n *Notifier) Subscribe(topic Topic, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.entries = append(n.entries, entry{id: id, topic: topic, observer: observer})
	return &Subscription{id: id, notifier: n}
}

// Publish sends ev to every matching observer. It returns ErrClosed after
// Close. An event accepted by Publish is always delivered, even when Close
// runs concurrently.
func (n *Notifier) Publish(ev Event) error {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return ErrClosed
	}
	if !n.async {
		n.mu.RUnlock()
		n.deliver(ev)
		return nil
	}
	n.sending.Add(1)
	n.mu.RUnlock()

	n.buffer <- ev
	n.sending.Done()
	return nil
}

// Close stops delivery. Events already accepted by Publish are delivered
// before Close returns. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	// In-flight sends still reach the buffer; the worker keeps draining it.
	n.sending.Wait()
	close(n.done)
	n.wg.Wait()
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = slices.DeleteFunc(n.entries, func(e entry) bool { return e.id == id })
}

func (n *Notifier) deliver(ev Event) {
	n.mu.RLock()
	var observers []Observer
	for _, e := range n.entries {
		if e.topic.Covers(ev.Topic) {
			observers = append(observers, e.observer)
		}
	}
	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(ev)
	}
}

func (n *Notifier) processAsync() {
	defer n.wg.Done()

	for {
		select {
		case ev := <-n.buffer:
			n.deliver(ev)
		case <-n.done:
			// Drain remaining buffered events
			for {
				select {
				case ev := <-n.buffer:
					n.deliver(ev)
				default:
					return
				}
			}
		}
	}
}

// Batch collects events and publishes them together.
type Batch struct {
	notifier *Notifier
	mu       sync.Mutex
	events   []Event
}

// NewBatch creates a new batch for collecting events.
func (n *Notifier) NewBatch() *Batch {
	return &Batch{notifier: n}
}

// Add queues an event.
func (b *Batch) Add(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
}

// Commit publishes all queued events in order. It stops at the first
// error.
func (b *Batch) Commit() error {
	b.mu.Lock()
	events := b.events
	b.events = nil
	b.mu.Unlock()

	for _, ev := range events {
		if err := b.notifier.Publish(ev); err != nil {
			return err
		}
	}
	return nil
}

// Discard drops the queued events.
func (b *Batch) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = nil
}

// Len returns the number of queued events.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}
