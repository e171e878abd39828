package player

import (
	"sync"
	"sync/atomic"

	"github.com/go-drift/webvideo/pkg/errors"
)

// EventHandler receives events from an EventStream.
type EventHandler struct {
	OnEvent func(Event)
	OnError func(*PlaybackError)
	OnDone  func()
}

// Subscription represents an active event subscription.
type Subscription struct {
	stream   *EventStream
	handler  *EventHandler
	canceled atomic.Bool
}

// Cancel stops receiving events on this subscription.
func (s *Subscription) Cancel() {
	if s.canceled.CompareAndSwap(false, true) {
		s.stream.removeSubscription(s)
	}
}

// IsCanceled returns true if this subscription has been canceled.
func (s *Subscription) IsCanceled() bool {
	return s.canceled.Load()
}

// EventStream is the outbound event sequence of one playback controller.
// It is push-based and live: a subscriber attached after events have been
// emitted does not receive history. Multiple subscribers each receive all
// subsequent events, in the order the triggering signals were observed.
type EventStream struct {
	mu            sync.Mutex
	subscriptions []*Subscription
	closed        bool
}

func newEventStream() *EventStream {
	return &EventStream{}
}

// Listen subscribes to the stream. Subscribing to a closed stream fires
// OnDone immediately and returns an already-canceled subscription.
func (s *EventStream) Listen(handler EventHandler) *Subscription {
	sub := &Subscription{
		stream:  s,
		handler: &handler,
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sub.canceled.Store(true)
		if handler.OnDone != nil {
			handler.OnDone()
		}
		return sub
	}
	s.subscriptions = append(s.subscriptions, sub)
	s.mu.Unlock()
	return sub
}

// removeSubscription removes a subscription from the stream.
func (s *EventStream) removeSubscription(sub *Subscription) {
	s.mu.Lock()
	for i, candidate := range s.subscriptions {
		if candidate == sub {
			s.subscriptions = append(s.subscriptions[:i], s.subscriptions[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
}

// send delivers an event to all subscribers.
func (s *EventStream) send(event Event) {
	for _, sub := range s.snapshot() {
		if !sub.IsCanceled() && sub.handler.OnEvent != nil {
			dispatch("player.EventStream.send", func() {
				sub.handler.OnEvent(event)
			})
		}
	}
}

// sendError delivers a playback error to all subscribers.
func (s *EventStream) sendError(err *PlaybackError) {
	for _, sub := range s.snapshot() {
		if !sub.IsCanceled() && sub.handler.OnError != nil {
			dispatch("player.EventStream.sendError", func() {
				sub.handler.OnError(err)
			})
		}
	}
}

// close ends the stream. All subscriptions are canceled and notified; later
// send calls are dropped.
func (s *EventStream) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subscriptions
	s.subscriptions = nil
	s.mu.Unlock()

	for _, sub := range subs {
		sub.canceled.Store(true)
		if sub.handler.OnDone != nil {
			dispatch("player.EventStream.close", func() {
				sub.handler.OnDone()
			})
		}
	}
}

func (s *EventStream) snapshot() []*Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	subs := make([]*Subscription, len(s.subscriptions))
	copy(subs, s.subscriptions)
	return subs
}

// dispatch invokes a subscriber callback, containing panics so one handler
// cannot break event delivery for the rest.
func dispatch(op string, fn func()) {
	defer errors.Recover(op)
	fn()
}
