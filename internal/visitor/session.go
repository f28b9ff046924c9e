// Package visitor tracks the people looking at a shared pet, usually SSH
// sessions. Any visitor counts as someone standing next to the device, and
// every pet event is forwarded to every visitor.
package visitor

import (
	"sync"

	"github.com/vovakirdan/jsgotchi/internal/pet"
)

// SessionID uniquely identifies a visitor's session.
type SessionID string

// Handle is the transport-neutral view of a visitor session.
type Handle interface {
	ID() SessionID

	// Send delivers an event without blocking.
	Send(e pet.Event)

	// Done closes when the session ends.
	Done() <-chan struct{}
}

// ChannelSession is a Handle backed by a buffered channel.
// The TUI layer reads Events and turns them into status messages.
type ChannelSession struct {
	id       SessionID
	events   chan pet.Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSession creates a session with room for bufferSize events.
func NewChannelSession(id SessionID, bufferSize int) *ChannelSession {
	if bufferSize < 1 {
		bufferSize = 16
	}
	return &ChannelSession{
		id:     id,
		events: make(chan pet.Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *ChannelSession) ID() SessionID {
	return s.id
}

// Send queues an event. When the buffer is full the oldest event is dropped.
func (s *ChannelSession) Send(e pet.Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- e:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- e:
		default:
		}
	}
}

// Events returns the channel events are delivered on.
func (s *ChannelSession) Events() <-chan pet.Event {
	return s.events
}

// Done returns the done channel.
func (s *ChannelSession) Done() <-chan struct{} {
	return s.done
}

// Close marks the session as done. Safe to call multiple times.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// PresenceFunc is called with true when the first visitor arrives and
// with false when the last one leaves.
type PresenceFunc func(present bool)

// Registry tracks active visitor sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[SessionID]Handle
	presence PresenceFunc
}

// NewRegistry creates a registry. presence may be nil.
func NewRegistry(presence PresenceFunc) *Registry {
	return &Registry{
		sessions: make(map[SessionID]Handle),
		presence: presence,
	}
}

// Register adds a session. Registering an existing ID replaces it.
func (r *Registry) Register(s Handle) {
	r.mu.Lock()
	before := len(r.sessions)
	r.sessions[s.ID()] = s
	after := len(r.sessions)
	r.mu.Unlock()

	if before == 0 && after > 0 {
		r.notify(true)
	}
}

// Unregister removes a session.
func (r *Registry) Unregister(id SessionID) {
	r.mu.Lock()
	before := len(r.sessions)
	delete(r.sessions, id)
	after := len(r.sessions)
	r.mu.Unlock()

	if before > 0 && after == 0 {
		r.notify(false)
	}
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Broadcast sends e to every session.
func (r *Registry) Broadcast(e pet.Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		s.Send(e)
	}
}

// Record broadcasts e. It lets a Registry act as a device event sink.
func (r *Registry) Record(e pet.Event) error {
	r.Broadcast(e)
	return nil
}

func (r *Registry) notify(present bool) {
	if r.presence != nil {
		r.presence(present)
	}
}
