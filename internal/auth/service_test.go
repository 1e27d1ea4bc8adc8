package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ircwired/webirc-gateway/internal/store/sqlite"
)

func newTestAuthService(t *testing.T) *Service {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	jwtConfig := &JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		TTL:      24 * time.Hour,
	}

	return NewService(st, jwtConfig)
}

func TestRegisterThenLoginYieldsSameUserID(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("expected registration success, got %v", err)
	}
	if registered.ID == "" {
		t.Fatalf("expected generated user id")
	}

	loggedIn, err := svc.Login(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("expected login success, got %v", err)
	}
	if loggedIn.ID != registered.ID {
		t.Fatalf("expected user id %q, got %q", registered.ID, loggedIn.ID)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "secret123"); err != nil {
		t.Fatalf("expected registration success, got %v", err)
	}

	// Stored username is trimmed, so a padded duplicate collides too.
	if _, err := svc.Register(ctx, " alice ", "other456"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLoginWrongPasswordIsNotUserNotFound(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "secret123"); err != nil {
		t.Fatalf("expected registration success, got %v", err)
	}

	if _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	if _, err := svc.Login(ctx, "nobody", "secret123"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestTokenRoundtrip(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("expected registration success, got %v", err)
	}

	token, err := svc.Token(user)
	if err != nil {
		t.Fatalf("expected token, got %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}
