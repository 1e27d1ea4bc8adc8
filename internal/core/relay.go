package core

import (
	"context"
	"strings"

	"github.com/ircwired/webirc-gateway/internal/bridge"
)

// Command relay: stateless translation of session-scoped commands into
// bridge signals addressed by the bound connection ID. Commands from an
// unbound session are dropped silently, not errors.

// Join asks the bridge to join a channel on the bound connection.
func (g *Gateway) Join(ctx context.Context, s *Session, name string) {
	if !s.Bound() {
		return
	}
	channel, ok := normalizeChannel(name)
	if !ok {
		return
	}
	g.signal(ctx, s, bridge.SignalJoin, bridge.Payload{"channel": channel})
}

// Part asks the bridge to leave a channel on the bound connection.
func (g *Gateway) Part(ctx context.Context, s *Session, name string) {
	if !s.Bound() {
		return
	}
	channel, ok := normalizeChannel(name)
	if !ok {
		return
	}
	g.signal(ctx, s, bridge.SignalPart, bridge.Payload{"channel": channel})
}

// Say relays a message to a channel or nick.
func (g *Gateway) Say(ctx context.Context, s *Session, target, message string) {
	if !s.Bound() {
		return
	}
	g.signal(ctx, s, bridge.SignalSay, bridge.Payload{"to": target, "text": message})
}

// Action relays a CTCP ACTION.
func (g *Gateway) Action(ctx context.Context, s *Session, target, message string) {
	if !s.Bound() {
		return
	}
	g.signal(ctx, s, bridge.SignalAction, bridge.Payload{"target": target, "message": message})
}

// Whois relays a whois lookup.
func (g *Gateway) Whois(ctx context.Context, s *Session, nick string) {
	if !s.Bound() {
		return
	}
	g.signal(ctx, s, bridge.SignalWhois, bridge.Payload{"nick": nick})
}

// Topic relays a channel topic change.
func (g *Gateway) Topic(ctx context.Context, s *Session, name, topic string) {
	if !s.Bound() {
		return
	}
	g.signal(ctx, s, bridge.SignalTopic, bridge.Payload{"name": name, "topic": topic})
}

// Nick relays a nick change.
func (g *Gateway) Nick(ctx context.Context, s *Session, nick string) {
	if !s.Bound() {
		return
	}
	g.signal(ctx, s, bridge.SignalNick, bridge.Payload{"nick": nick})
}

// Command relays a raw IRC command line.
func (g *Gateway) Command(ctx context.Context, s *Session, text string) {
	if !s.Bound() {
		return
	}
	g.signal(ctx, s, bridge.SignalCommand, bridge.Payload{"command": text})
}

// normalizeChannel strips whitespace and prepends '#' when shorthanded.
// Names shorter than two characters after normalization are rejected.
func normalizeChannel(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if !strings.HasPrefix(name, "#") {
		name = "#" + name
	}
	if len(name) < 2 {
		return "", false
	}
	return name, true
}
