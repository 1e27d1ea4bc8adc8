package core

import (
	"context"
	"errors"

	"github.com/ircwired/webirc-gateway/internal/auth"
	"github.com/ircwired/webirc-gateway/internal/store"
)

// Register creates a new user and binds the session to its identity.
// The success event is emitted only after the session is fully bound.
func (g *Gateway) Register(ctx context.Context, s *Session, username, password string) {
	user, err := g.auth.Register(ctx, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			s.Deliver(&Event{Kind: EventRegisterError, Message: msgUserExists})
			return
		}
		g.log.Error().Err(err).Str("session_id", s.ID).Msg("registration failed")
		return
	}

	g.bindUser(s, user.ID)
	s.Deliver(&Event{Kind: EventRegisterSuccess, Username: user.Username})

	g.log.Info().Str("session_id", s.ID).Str("user_id", user.ID).Msg("user registered")
}

// Login verifies credentials, binds the session to the user's identity
// and looks up the user's existing IRC connection. The success event
// reflects the final bound state, including whether a prior connection
// exists; the bridge is not signaled here.
func (g *Gateway) Login(ctx context.Context, s *Session, username, password string) {
	user, err := g.auth.Login(ctx, username, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			s.Deliver(&Event{Kind: EventLoginError, Message: msgUserNotFound})
		case errors.Is(err, auth.ErrWrongPassword):
			s.Deliver(&Event{Kind: EventLoginError, Message: msgWrongPassword})
		default:
			g.log.Error().Err(err).Str("session_id", s.ID).Msg("login failed")
		}
		return
	}

	g.bindUser(s, user.ID)

	exists := false
	conn, err := g.store.GetConnectionByOwner(ctx, user.ID)
	switch {
	case err == nil:
		exists = true
		s.ConnID = conn.ID
		s.Conn = conn
	case errors.Is(err, store.ErrNotFound):
		// first login with no saved connection
	default:
		g.log.Error().Err(err).Str("session_id", s.ID).Str("user_id", user.ID).Msg("connection lookup failed")
		return
	}

	s.Deliver(&Event{Kind: EventLoginSuccess, Username: user.Username, Exists: exists})

	g.log.Info().Str("session_id", s.ID).Str("user_id", user.ID).Bool("has_connection", exists).Msg("user logged in")
}
