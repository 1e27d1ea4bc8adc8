package core

import (
	"context"

	"github.com/google/uuid"

	"github.com/ircwired/webirc-gateway/internal/bridge"
	"github.com/ircwired/webirc-gateway/internal/store"
)

// Default ports and connection parameters applied when the connect
// request leaves them out.
const (
	defaultPort       = 6667
	defaultSecurePort = 6697
	defaultAway       = "AFK"
)

// ConnectRequest carries the parameters of a connect request.
type ConnectRequest struct {
	Server      string
	Port        int
	Nick        string
	Secure      bool
	Password    string
	KeepAlive   bool
	Away        string
	RealName    string
	Encoding    string
	SelfSigned  bool
	StripColors bool
}

// Connect binds the session to a backend IRC connection: re-enters an
// already-bound connection, or creates one for an owner with none.
func (g *Gateway) Connect(ctx context.Context, s *Session, req ConnectRequest) {
	if s.Bound() {
		// Already bound, possibly restored during login. Treat as a
		// liveness nudge for the backend connection.
		g.wake(ctx, s.ConnID)
		g.signal(ctx, s, bridge.SignalRestore, nil)
		g.signal(ctx, s, bridge.SignalClearUnread, nil)
		return
	}

	if !g.serverAllowed(req.Server) {
		s.Deliver(&Event{Kind: EventConnectError, Message: msgServerNotAllowed + g.whitelistList})
		return
	}

	ownerID := uuid.NewString()
	keepAlive := false
	temporary := true
	if s.Authenticated() {
		temporary = false
		ownerID = s.UserID
		keepAlive = req.KeepAlive
	} else {
		// Guest sessions are unsubscribed until their first connect
		// attempt; from here on they observe the guest topic.
		s.SubscriptionKey = ownerID
		g.topics.Subscribe(s, ownerID)
	}

	port := req.Port
	if port == 0 {
		port = defaultPort
		if req.Secure {
			port = defaultSecurePort
		}
	}
	away := req.Away
	if away == "" {
		away = defaultAway
	}
	realName := req.RealName
	if realName == "" {
		realName = req.Nick
	}

	conn, err := g.store.CreateConnection(ctx, &store.Connection{
		OwnerID:        ownerID,
		Label:          req.Server,
		Hostname:       req.Server,
		Port:           port,
		Nick:           req.Nick,
		Away:           away,
		SSL:            req.Secure,
		SelfSigned:     req.SelfSigned,
		Encoding:       req.Encoding,
		ServerPassword: req.Password,
		RealName:       realName,
		KeepAlive:      keepAlive,
		StripColors:    req.StripColors,
		Temporary:      temporary,
	})
	if err != nil {
		// Session stays unbound; no partial state is exposed.
		g.log.Error().Err(err).Str("session_id", s.ID).Str("server", req.Server).Msg("connection creation failed")
		return
	}

	s.ConnID = conn.ID
	s.Conn = conn
	g.wake(ctx, conn.ID)
	g.signal(ctx, s, bridge.SignalRestore, nil)

	g.log.Info().
		Str("session_id", s.ID).
		Int64("conn_id", conn.ID).
		Str("server", req.Server).
		Bool("temporary", temporary).
		Bool("keep_alive", keepAlive).
		Msg("connection bound")
}
