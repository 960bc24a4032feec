package session

import (
	"errors"
	"slices"
	"sync"
)

type EventType int

const (
	SignedIn EventType = iota + 1
	SignedOut
)

func (e EventType) String() string {
	switch e {
	case SignedIn:
		return "signed_in"
	case SignedOut:
		return "signed_out"
	}
	return "unknown"
}

type Event struct {
	Type     EventType
	Identity Identity
}

var ErrClosed = errors.New("session holder closed")

// Holder owns the current identity for a long-lived process (the operator
// CLI). It is created once at start, changed only through SignIn and
// SignOut, and closed on shutdown. Listeners run synchronously, in
// subscription order, outside the lock.
type Holder struct {
	mu        sync.RWMutex
	current   Identity
	listeners map[int]func(Event)
	nextID    int
	closed    bool
}

func NewHolder() *Holder {
	return &Holder{listeners: make(map[int]func(Event))}
}

func (h *Holder) Current() (Identity, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current, !h.current.Empty()
}

// Subscribe registers fn for future events and returns a function that removes it.
func (h *Holder) Subscribe(fn func(Event)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.listeners, id)
		h.mu.Unlock()
	}
}

func (h *Holder) SignIn(id Identity) error {
	if id.Empty() {
		return errors.New("cannot sign in an empty identity")
	}
	return h.set(Event{Type: SignedIn, Identity: id}, id)
}

func (h *Holder) SignOut() error {
	h.mu.RLock()
	prev := h.current
	h.mu.RUnlock()
	if prev.Empty() {
		return nil
	}
	return h.set(Event{Type: SignedOut, Identity: prev}, Identity{})
}

// Close signs out any current identity and drops all listeners.
func (h *Holder) Close() error {
	if err := h.SignOut(); err != nil && !errors.Is(err, ErrClosed) {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.listeners = map[int]func(Event){}
	return nil
}

func (h *Holder) set(ev Event, next Identity) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrClosed
	}
	h.current = next
	ids := make([]int, 0, len(h.listeners))
	for id := range h.listeners {
		ids = append(ids, id)
	}
	fns := make([]func(Event), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, h.listeners[id])
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
	return nil
}
