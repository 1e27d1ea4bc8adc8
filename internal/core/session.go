package core

import (
	"github.com/ircwired/webirc-gateway/internal/store"
)

// NoConnection marks a session with no bound backend connection.
const NoConnection int64 = -1

// Session is one live browser-to-gateway channel and its
// authentication/binding state. All fields besides Events are mutated
// only by the session's own serialized event handlers.
type Session struct {
	// ID is the transport-assigned identifier, not reused across reconnects.
	ID string

	// UserID is empty while the session is anonymous.
	UserID string

	// ConnID identifies the bound backend IRC connection, NoConnection
	// while unbound. Set only after a successful bind.
	ConnID int64

	// SubscriptionKey is the topic the session is multicast-subscribed
	// to: the user ID once authenticated, or a generated guest ID.
	SubscriptionKey string

	// Conn caches the bound connection record, used to check keep-alive
	// on disconnect and logout.
	Conn *store.Connection

	// Events carries outbound events to the session's transport writer.
	Events chan *Event
}

// NewSession constructs a session in the anonymous, unbound state.
func NewSession(id string) *Session {
	return &Session{
		ID:     id,
		ConnID: NoConnection,
		Events: make(chan *Event, 16),
	}
}

// Authenticated reports whether the session has a bound user identity.
func (s *Session) Authenticated() bool {
	return s.UserID != ""
}

// Bound reports whether the session is bound to a backend connection.
func (s *Session) Bound() bool {
	return s.ConnID != NoConnection
}

// Deliver queues an event for the session's writer, dropping it when
// the writer cannot keep up.
func (s *Session) Deliver(event *Event) {
	select {
	case s.Events <- event:
	default:
		// Drop if slow consumer.
	}
}

// reset returns the session to the fully anonymous, unbound state.
func (s *Session) reset() {
	s.UserID = ""
	s.ConnID = NoConnection
	s.SubscriptionKey = ""
	s.Conn = nil
}
