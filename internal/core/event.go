package core

import (
	"time"

	"github.com/ircwired/webirc-gateway/internal/bridge"
)

// EventKind is a notification the core emits to a session.
type EventKind int

const (
	// EventRegisterSuccess confirms a completed registration.
	EventRegisterSuccess EventKind = iota
	// EventRegisterError reports a failed registration.
	EventRegisterError
	// EventLoginSuccess confirms a completed login, including whether a
	// prior IRC connection exists for the user.
	EventLoginSuccess
	// EventLoginError reports a failed login.
	EventLoginError
	// EventConnectError reports a rejected connect request.
	EventConnectError
	// EventReset tells the client its session returned to the anonymous state.
	EventReset
	// EventOldMessages delivers a page of channel history.
	EventOldMessages
	// EventBridge carries a bridge-originated event fanned out to all
	// sessions subscribed to the owning topic.
	EventBridge
)

// Event is sent to a session to describe what happened.
type Event struct {
	Kind     EventKind
	Username string
	Exists   bool
	Message  string // human-readable failure text for *_error events
	Channel  string
	History  []HistoryMessage
	Bridge   *bridge.Event
}

// HistoryMessage is one line of replayed channel history. The author is
// stored as Author but surfaces on the wire as "from".
type HistoryMessage struct {
	From string
	Text string
	At   time.Time
}
