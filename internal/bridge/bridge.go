// Package bridge defines the capability the gateway uses to talk to the
// external IRC bridge process. The gateway never speaks IRC itself; it
// signals the bridge by connection ID and consumes the bridge's event
// stream for fanout to subscribed sessions.
package bridge

import (
	"context"
	"encoding/json"
)

// Signal names understood by the bridge, addressed by connection ID.
const (
	SignalRestore     = "restore"
	SignalClearUnread = "clearunread"
	SignalDisconnect  = "disconnect"
	SignalJoin        = "join"
	SignalPart        = "part"
	SignalSay         = "say"
	SignalAction      = "action"
	SignalWhois       = "whois"
	SignalTopic       = "topic"
	SignalNick        = "nick"
	SignalCommand     = "command"
)

// Payload carries the named arguments of a bridge signal.
type Payload map[string]string

// Event is emitted by the bridge, addressed to a subscription key
// (user or guest ID) so the gateway can multicast it to every session
// observing that owner's connection.
type Event struct {
	Owner string          `json:"owner"`
	Name  string          `json:"name"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Bridge is the gateway's handle on the IRC bridge process.
type Bridge interface {
	// Signal sends a named signal for one backend connection.
	Signal(ctx context.Context, connID int64, name string, data Payload) error

	// Wake nudges a possibly-sleeping backend connection. Issued
	// whenever a connection is (re)bound to a session.
	Wake(ctx context.Context, connID int64) error

	// Events returns the stream of bridge-originated events.
	Events() <-chan Event

	// Close releases the bridge transport.
	Close() error
}
