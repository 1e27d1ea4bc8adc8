package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ircwired/webirc-gateway/internal/auth"
	"github.com/ircwired/webirc-gateway/internal/bridge"
	"github.com/ircwired/webirc-gateway/internal/store"
)

// Gateway owns the session/connection binding state machine and the
// command-relay protocol. One instance is shared by all sessions;
// handlers for a single session run serialized on its transport
// goroutine, so only the topic registry needs locking.
type Gateway struct {
	auth   *auth.Service
	store  store.Store
	bridge bridge.Bridge
	topics *TopicRegistry
	log    *zerolog.Logger

	// server whitelist, lowercased; empty means any server is allowed
	whitelist     map[string]struct{}
	whitelistList string
}

// NewGateway constructs the gateway core with its injected capabilities.
func NewGateway(authSvc *auth.Service, st store.Store, br bridge.Bridge, topics *TopicRegistry, whitelist []string, logger *zerolog.Logger) *Gateway {
	g := &Gateway{
		auth:   authSvc,
		store:  st,
		bridge: br,
		topics: topics,
		log:    logger,
	}
	if len(whitelist) > 0 {
		g.whitelist = make(map[string]struct{}, len(whitelist))
		for _, host := range whitelist {
			g.whitelist[strings.ToLower(host)] = struct{}{}
		}
		g.whitelistList = strings.Join(whitelist, ", ")
	}
	return g
}

// Topics exposes the registry for the delivery layer.
func (g *Gateway) Topics() *TopicRegistry {
	return g.topics
}

// DispatchBridgeEvent multicasts a bridge-originated event to every
// session subscribed to the owning topic.
func (g *Gateway) DispatchBridgeEvent(ev bridge.Event) {
	g.topics.Publish(ev.Owner, &Event{Kind: EventBridge, Bridge: &ev})
}

// bindUser sets the session's user identity and subscribes it to the
// user's topic. Called at most once per session, by register or login.
func (g *Gateway) bindUser(s *Session, userID string) {
	s.UserID = userID
	s.SubscriptionKey = userID
	g.topics.Subscribe(s, userID)
}

// signal relays one bridge signal for the session's bound connection.
func (g *Gateway) signal(ctx context.Context, s *Session, name string, data bridge.Payload) {
	if err := g.bridge.Signal(ctx, s.ConnID, name, data); err != nil {
		g.log.Warn().Err(err).Int64("conn_id", s.ConnID).Str("signal", name).Msg("bridge signal failed")
	}
}

// wake nudges a possibly-sleeping backend connection.
func (g *Gateway) wake(ctx context.Context, connID int64) {
	if err := g.bridge.Wake(ctx, connID); err != nil {
		g.log.Warn().Err(err).Int64("conn_id", connID).Msg("bridge wake failed")
	}
}

func (g *Gateway) serverAllowed(server string) bool {
	if g.whitelist == nil {
		return true
	}
	_, ok := g.whitelist[strings.ToLower(server)]
	return ok
}
