package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ircwired/webirc-gateway/internal/store"
)

var (
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username taken")
	// ErrUserNotFound is returned when logging in with an unknown username.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword is returned when the password doesn't match the stored hash.
	ErrWrongPassword = errors.New("wrong password")
)

// Service validates registration and login requests against the auth
// store and issues stable user identities.
type Service struct {
	store     store.AuthStore
	jwtConfig *JWTConfig
}

// NewService creates a new authentication service.
func NewService(authStore store.AuthStore, jwtConfig *JWTConfig) *Service {
	return &Service{
		store:     authStore,
		jwtConfig: jwtConfig,
	}
}

// Register creates a new user with a hashed password and a freshly
// generated user ID. Returns ErrUsernameTaken when the name is in use.
func (s *Service) Register(ctx context.Context, username, password string) (*store.User, error) {
	username = strings.TrimSpace(username)

	existing, err := s.store.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, uuid.NewString(), username, hashedPassword)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials against the stored hash. Returns
// ErrUserNotFound for unknown usernames and ErrWrongPassword for a
// failed hash comparison, never conflating the two.
func (s *Service) Login(ctx context.Context, username, password string) (*store.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrWrongPassword
	}

	return user, nil
}

// Token issues a gateway API token for an authenticated user.
func (s *Service) Token(user *store.User) (string, error) {
	token, err := GenerateToken(s.jwtConfig, user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// ValidateToken validates a gateway API token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return ValidateToken(s.jwtConfig, tokenString)
}
