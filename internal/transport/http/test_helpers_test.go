package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ircwired/webirc-gateway/internal/auth"
	"github.com/ircwired/webirc-gateway/internal/bridge/localbridge"
	"github.com/ircwired/webirc-gateway/internal/config"
	"github.com/ircwired/webirc-gateway/internal/core"
	"github.com/ircwired/webirc-gateway/internal/log"
	"github.com/ircwired/webirc-gateway/internal/store/sqlite"
)

// startTestServer wires a full gateway on an in-memory store with the
// in-process bridge and serves it from httptest.
func startTestServer(t *testing.T, whitelist ...string) (*httptest.Server, *localbridge.Bridge) {
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
	authService := auth.NewService(st, jwtConfig)

	br := localbridge.New(nil)
	t.Cleanup(func() { _ = br.Close() })

	logger := log.New("error")
	gateway := core.NewGateway(authService, st, br, core.NewTopicRegistry(), whitelist, logger)

	server := NewServer(gateway, authService, st, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
	}, logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, br
}

// waitForSignal polls the recorded bridge signals until one with the
// given name shows up.
func waitForSignal(t *testing.T, br *localbridge.Bridge, name string) localbridge.SignalRecord {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, sig := range br.Signals() {
			if sig.Name == name {
				return sig
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("signal %q not observed", name)
	return localbridge.SignalRecord{}
}
