package core

import (
	"context"
	"strings"

	"github.com/ircwired/webirc-gateway/internal/bridge"
)

// Disconnect handles a transport-level drop. Guest connections never
// survive a dropped session; user connections survive only when marked
// keep-alive, in which case the bridge just clears unread state and the
// connection is rebound on the user's next login.
func (g *Gateway) Disconnect(ctx context.Context, s *Session) {
	defer g.topics.Unsubscribe(s)

	if !s.Bound() {
		return
	}

	keepAlive := s.Conn != nil && s.Conn.KeepAlive
	switch {
	case !s.Authenticated():
		g.signal(ctx, s, bridge.SignalDisconnect, nil)
	case !keepAlive:
		g.signal(ctx, s, bridge.SignalDisconnect, nil)
	default:
		g.signal(ctx, s, bridge.SignalClearUnread, nil)
	}

	g.log.Debug().Str("session_id", s.ID).Int64("conn_id", s.ConnID).Bool("keep_alive", keepAlive).Msg("session dropped")
}

// Logout resets the session to the anonymous, unbound state. A
// keep-alive connection loses its session binding but keeps running on
// the bridge, rediscoverable by a later login.
func (g *Gateway) Logout(ctx context.Context, s *Session) {
	g.topics.Unsubscribe(s)

	if s.Bound() && (s.Conn == nil || !s.Conn.KeepAlive) {
		g.signal(ctx, s, bridge.SignalDisconnect, nil)
	}

	s.reset()
	s.Deliver(&Event{Kind: EventReset})
}

// OldMessages replays a page of channel history, newest first. Only an
// authenticated, bound session may read history.
func (g *Gateway) OldMessages(ctx context.Context, s *Session, channelName string, amount, skip int) {
	if !s.Bound() || !s.Authenticated() {
		return
	}

	name := strings.ToLower(channelName)
	messages, err := g.store.ListMessages(ctx, s.ConnID, name, amount, skip)
	if err != nil {
		g.log.Error().Err(err).Str("session_id", s.ID).Str("channel", name).Msg("history lookup failed")
		return
	}

	history := make([]HistoryMessage, 0, len(messages))
	for _, msg := range messages {
		history = append(history, HistoryMessage{
			From: msg.Author,
			Text: msg.Text,
			At:   msg.At,
		})
	}

	s.Deliver(&Event{Kind: EventOldMessages, Channel: name, History: history})
}
