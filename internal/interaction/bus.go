package interaction

// Bus is a synchronous publish/subscribe channel owned by one controller.
// Subscribers run in subscription order on the publisher's goroutine.
//
// Bus is not safe for concurrent use.
type Bus struct {
	subs   []subscriber
	nextID uint64
	closed bool
}

type subscriber struct {
	id uint64
	fn func(Event)
}

// Subscription removes a subscriber.
type Subscription struct {
	bus *Bus
	id  uint64
}

// NewBus returns an open Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for every event. Subscribing to a closed bus
// returns an inert Subscription.
func (b *Bus) Subscribe(fn func(Event)) Subscription {
	if b.closed {
		return Subscription{}
	}
	b.nextID++
	b.subs = append(b.subs, subscriber{id: b.nextID, fn: fn})
	return Subscription{bus: b, id: b.nextID}
}

// On subscribes fn to events of type T only.
func On[T Event](b *Bus, fn func(T)) Subscription {
	return b.Subscribe(func(e Event) {
		if v, ok := e.(T); ok {
			fn(v)
		}
	})
}

// Publish delivers e to every subscriber. Publishing on a closed bus is a
// no-op.
func (b *Bus) Publish(e Event) {
	if b.closed {
		return
	}
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	for _, s := range subs {
		s.fn(e)
	}
}

// Close drops every subscriber and rejects further publishes.
func (b *Bus) Close() {
	b.closed = true
	b.subs = nil
}

// Remove unsubscribes. Removing twice is a no-op.
func (s Subscription) Remove() {
	if s.bus == nil {
		return
	}
	for i, sub := range s.bus.subs {
		if sub.id == s.id {
			s.bus.subs = append(s.bus.subs[:i], s.bus.subs[i+1:]...)
			return
		}
	}
}
