package event

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestTopicCovers(t *testing.T) {
	tests := []struct {
		sub   Topic
		topic Topic
		want  bool
	}{
		{"", DocumentChanged, true},
		{"document", DocumentChanged, true},
		{DocumentChanged, DocumentChanged, true},
		{"doc", DocumentChanged, false},
		{"selection", DocumentChanged, false},
		{DocumentChanged, "document", false},
	}
	for _, tt := range tests {
		if got := tt.sub.Covers(tt.topic); got != tt.want {
			t.Errorf("%q.Covers(%q) = %v, want %v", tt.sub, tt.topic, got, tt.want)
		}
	}
}

func TestNotifierSubscribe(t *testing.T) {
	n := New()
	defer n.Close()

	var all, docs, sel atomic.Int32
	n.Subscribe("", func(Event) { all.Add(1) })
	sub := n.Subscribe("document", func(Event) { docs.Add(1) })
	n.Subscribe(SelectionChanged, func(Event) { sel.Add(1) })

	n.Publish(Event{Topic: DocumentChanged})
	n.Publish(Event{Topic: SelectionChanged})
	n.Publish(Event{Topic: HistoryChanged})

	if all.Load() != 3 || docs.Load() != 1 || sel.Load() != 1 {
		t.Errorf("all=%d docs=%d sel=%d", all.Load(), docs.Load(), sel.Load())
	}

	sub.Unsubscribe()
	n.Publish(Event{Topic: DocumentChanged})
	if docs.Load() != 1 {
		t.Error("unsubscribed observer received an event")
	}
}

func TestNotifierOrder(t *testing.T) {
	n := New()
	defer n.Close()

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		n.Subscribe("", func(Event) { got = append(got, i) })
	}
	n.Publish(Event{Topic: HistoryChanged})
	for i, v := range got {
		if v != i {
			t.Fatalf("delivery order = %v", got)
		}
	}
}

func TestNotifierAsync(t *testing.T) {
	n := New(WithAsync(16))

	var mu sync.Mutex
	var got []Topic
	n.Subscribe("", func(ev Event) {
		mu.Lock()
		got = append(got, ev.Topic)
		mu.Unlock()
	})
	n.Publish(Event{Topic: DocumentChanged})
	n.Publish(Event{Topic: HistoryChanged})
	n.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 || got[0] != DocumentChanged || got[1] != HistoryChanged {
		t.Errorf("got %v", got)
	}

	if err := n.Publish(Event{Topic: DocumentChanged}); err != ErrClosed {
		t.Errorf("Publish after Close = %v, want ErrClosed", err)
	}
	n.Close()
}

func TestNotifierAsyncCloseDeliversAccepted(t *testing.T) {
	for round := 0; round < 20; round++ {
		n := New(WithAsync(1))
		var delivered atomic.Int32
		n.Subscribe("", func(Event) { delivered.Add(1) })

		var accepted atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					if n.Publish(Event{Topic: DocumentChanged}) == nil {
						accepted.Add(1)
					}
				}
			}()
		}
		n.Close()
		wg.Wait()

		if delivered.Load() != accepted.Load() {
			t.Fatalf("round %d: delivered %d of %d accepted events", round, delivered.Load(), accepted.Load())
		}
	}
}

func TestBatch(t *testing.T) {
	n := New()
	defer n.Close()

	var count atomic.Int32
	n.Subscribe("", func(Event) { count.Add(1) })

	b := n.NewBatch()
	b.Add(Event{Topic: DocumentChanged})
	b.Add(Event{Topic: HistoryChanged})
	if b.Len() != 2 || count.Load() != 0 {
		t.Fatalf("Len=%d count=%d", b.Len(), count.Load())
	}
	b.Commit()
	if count.Load() != 2 || b.Len() != 0 {
		t.Errorf("count=%d Len=%d", count.Load(), b.Len())
	}

	b.Add(Event{Topic: DocumentChanged})
	b.Discard()
	b.Commit()
	if count.Load() != 2 {
		t.Error("discarded events were published")
	}
}
