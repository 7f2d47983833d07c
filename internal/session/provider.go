package session

import (
	"context"
	"sync"
)

// Provider reports the identity currently acting in this process and emits
// a notification whenever it changes.
type Provider interface {
	Current() *Identity
	// Watch delivers the current identity immediately, then every change,
	// until ctx is cancelled; after cancellation the channel is closed and
	// nothing more is delivered.
	Watch(ctx context.Context) <-chan *Identity
}

// Hub is the in-process Provider: it holds the last identity seen and
// fans identity-changed events out to subscribers. The auth middleware
// feeds it on verified requests; the top level subscribes once and gates
// on the value, the way the original app watched auth state.
type Hub struct {
	mu      sync.Mutex
	current *Identity
	subs    map[int]chan *Identity
	nextKey int
}

var _ Provider = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan *Identity)}
}

func (h *Hub) Current() *Identity {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// SetIdentity records the acting identity, notifying subscribers only when
// the acting user actually changed. nil means no active session.
func (h *Hub) SetIdentity(id *Identity) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sameUser(h.current, id) {
		h.current = id
		return
	}
	h.current = id

	// Each subscriber channel is buffered with the latest value only: a
	// slow consumer sees the newest identity, not a backlog.
	for _, ch := range h.subs {
		select {
		case <-ch:
		default:
		}
		ch <- id
	}
}

// Clear drops the active session.
func (h *Hub) Clear() {
	h.SetIdentity(nil)
}

func (h *Hub) Watch(ctx context.Context) <-chan *Identity {
	h.mu.Lock()
	ch := make(chan *Identity, 1)
	ch <- h.current
	key := h.nextKey
	h.nextKey++
	h.subs[key] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		if _, ok := h.subs[key]; ok {
			delete(h.subs, key)
			close(ch)
		}
		h.mu.Unlock()
	}()

	return ch
}

func sameUser(a, b *Identity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.UserID == b.UserID
}
