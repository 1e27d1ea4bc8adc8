package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
// Callers use it to tell a missing row apart from a storage failure.
var ErrNotFound = errors.New("record not found")

// User represents a registered account.
type User struct {
	ID           string // UUID assigned at registration
	Username     string
	PasswordHash string
	JoinedAt     time.Time
}

// Connection represents a backend IRC connection config, persistent for
// registered users and ephemeral for guests.
type Connection struct {
	ID               int64
	OwnerID          string // user ID, or a generated guest ID
	Label            string
	Hostname         string
	Port             int
	Nick             string
	Away             string
	SSL              bool
	SelfSigned       bool
	Encoding         string
	ServerPassword   string
	NickservPassword string
	NickservEnabled  bool
	SASLEnabled      bool
	RealName         string
	Disabled         bool
	DisabledReason   string
	DisabledTimeout  time.Time
	KeepAlive        bool
	StripColors      bool
	Temporary        bool // true for guest-originated connections
	CreatedAt        time.Time
}

// Message represents a persisted line of channel history, written by the
// bridge and read back by the gateway.
type Message struct {
	ID      int64
	ConnID  int64
	Channel string
	Author  string
	Text    string
	At      time.Time
}

// AuthStore handles user persistence.
type AuthStore interface {
	// CreateUser inserts a new user record.
	CreateUser(ctx context.Context, id, username, passwordHash string) (*User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// GetUserByUsername retrieves a user by username.
	// Returns ErrNotFound when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// ConnectionStore handles IRC connection persistence.
type ConnectionStore interface {
	// CreateConnection inserts a new connection row and returns it with
	// its assigned ID and timestamps populated.
	CreateConnection(ctx context.Context, conn *Connection) (*Connection, error)

	// GetConnectionByOwner returns the first connection owned by ownerID.
	// Returns ErrNotFound when the owner has no connection.
	GetConnectionByOwner(ctx context.Context, ownerID string) (*Connection, error)

	// GetConnectionByID retrieves a connection by ID.
	GetConnectionByID(ctx context.Context, id int64) (*Connection, error)
}

// MessageStore handles channel history persistence.
type MessageStore interface {
	// SaveMessage persists a message to storage.
	SaveMessage(ctx context.Context, msg *Message) error

	// ListMessages returns up to limit messages for a channel on a
	// connection, newest first, skipping offset rows.
	ListMessages(ctx context.Context, connID int64, channel string, limit, offset int) ([]*Message, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	AuthStore
	ConnectionStore
	MessageStore

	// Close closes the underlying database connection.
	Close() error
}
