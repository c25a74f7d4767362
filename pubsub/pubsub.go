// Package pubsub is the subscribe half of the stores' subscribe+mutate
// capability interfaces. Delivery is synchronous: all state mutations run to
// completion, including notification, before the next event is processed.
package pubsub

import "sync"

// Broadcaster fans a value out to the current set of subscribers.
type Broadcaster[T any] struct {
	mu   sync.Mutex
	subs map[int]func(T)
	next int
}

func New[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{subs: make(map[int]func(T))}
}

// Subscribe registers fn and returns its unsubscribe func. Unsubscribing
// twice is harmless; a notification landing after unsubscribe is a no-op
// from the subscriber's perspective, mirroring a view that unmounted while
// an operation was outstanding.
func (b *Broadcaster[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish delivers v to every subscriber in turn.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	fns := make([]func(T), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len returns the number of live subscriptions.
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
