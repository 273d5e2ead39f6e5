package app

import (
	"context"
	"sync"
)

// EventType describes what changed in the catalog.
type EventType int

const (
	// EventEntriesChanged means the entry list or a preview changed.
	EventEntriesChanged EventType = iota

	// EventSelectionChanged means a different entry is now current.
	EventSelectionChanged

	// EventSyncStateChanged means availability, the active root, the
	// in-progress flag or the last sync error changed.
	EventSyncStateChanged
)

func (t EventType) String() string {
	switch t {
	case EventEntriesChanged:
		return "entries"
	case EventSelectionChanged:
		return "selection"
	case EventSyncStateChanged:
		return "sync"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers.
type Event struct {
	Type EventType
}

// Subscribe returns a channel of catalog events until ctx is done. Slow
// consumers miss events rather than blocking the catalog; the next event (or
// a re-read) brings them up to date.
func (s *Service) Subscribe(ctx context.Context) <-chan Event {
	ch, cancel := s.events.subscribe()
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ch
}

type broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

func (b *broadcaster) subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]chan Event)
	}
	id := b.next
	b.next++
	ch := make(chan Event, 16)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

func (b *broadcaster) publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
