package core

import (
	"testing"
	"time"

	"github.com/ircwired/webirc-gateway/internal/auth"
	"github.com/ircwired/webirc-gateway/internal/bridge/localbridge"
	"github.com/ircwired/webirc-gateway/internal/log"
	"github.com/ircwired/webirc-gateway/internal/store"
	"github.com/ircwired/webirc-gateway/internal/store/sqlite"
)

func newTestGateway(t *testing.T, whitelist ...string) (*Gateway, *localbridge.Bridge, store.Store) {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		TTL:      24 * time.Hour,
	}
	authSvc := auth.NewService(st, jwtConfig)

	br := localbridge.New(nil)
	t.Cleanup(func() { _ = br.Close() })

	logger := log.New("error")
	gw := NewGateway(authSvc, st, br, NewTopicRegistry(), whitelist, logger)

	return gw, br, st
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("expected no event, got kind %v", ev.Kind)
	default:
	}
}
