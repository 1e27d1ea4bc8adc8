package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ircwired/webirc-gateway/internal/store"
)

// Schema creates the gateway tables. Applied idempotently on startup.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	joined_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS connections (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	owner_id          TEXT NOT NULL,
	label             TEXT NOT NULL,
	hostname          TEXT NOT NULL,
	port              INTEGER NOT NULL,
	nick              TEXT NOT NULL,
	away              TEXT NOT NULL DEFAULT 'AFK',
	ssl               BOOLEAN NOT NULL DEFAULT 0,
	self_signed       BOOLEAN NOT NULL DEFAULT 0,
	encoding          TEXT NOT NULL DEFAULT '',
	server_password   TEXT NOT NULL DEFAULT '',
	nickserv_password TEXT NOT NULL DEFAULT '',
	nickserv_enabled  BOOLEAN NOT NULL DEFAULT 0,
	sasl_enabled      BOOLEAN NOT NULL DEFAULT 0,
	real_name         TEXT NOT NULL DEFAULT '',
	disabled          BOOLEAN NOT NULL DEFAULT 0,
	disabled_reason   TEXT NOT NULL DEFAULT '',
	disabled_timeout  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	keep_alive        BOOLEAN NOT NULL DEFAULT 0,
	strip_colors      BOOLEAN NOT NULL DEFAULT 0,
	temporary         BOOLEAN NOT NULL DEFAULT 0,
	created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_connections_owner ON connections(owner_id);

CREATE TABLE IF NOT EXISTS messages (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	conn_id  INTEGER NOT NULL,
	channel  TEXT NOT NULL,
	author   TEXT NOT NULL,
	text     TEXT NOT NULL,
	at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_messages_channel ON messages(conn_id, channel, at DESC);
`

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLite store and applies the schema.
// dbPath is the path to the SQLite database file.
func New(dbPath string) (*SQLiteStore, error) {
	return NewWithSetup(dbPath, func(db *sql.DB) error {
		_, err := db.Exec(Schema)
		return err
	})
}

// NewWithSetup creates a new SQLite store and runs a setup function.
// Useful for tests to apply a custom schema.
func NewWithSetup(dbPath string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if setup != nil {
		if err := setup(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ==== AuthStore implementation ====

// CreateUser inserts a new user record.
func (s *SQLiteStore) CreateUser(ctx context.Context, id, username, passwordHash string) (*store.User, error) {
	query := `
		INSERT INTO users (id, username, password_hash)
		VALUES (?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, id, username, passwordHash); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return s.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*store.User, error) {
	return s.getUser(ctx, `WHERE id = ?`, id)
}

// GetUserByUsername retrieves a user by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*store.User, error) {
	return s.getUser(ctx, `WHERE username = ?`, username)
}

func (s *SQLiteStore) getUser(ctx context.Context, where string, arg any) (*store.User, error) {
	query := `
		SELECT id, username, password_hash, joined_at
		FROM users
	` + where

	var user store.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// ==== ConnectionStore implementation ====

const connectionColumns = `
	id, owner_id, label, hostname, port, nick, away, ssl, self_signed,
	encoding, server_password, nickserv_password, nickserv_enabled,
	sasl_enabled, real_name, disabled, disabled_reason, disabled_timeout,
	keep_alive, strip_colors, temporary, created_at
`

// CreateConnection inserts a new connection row.
func (s *SQLiteStore) CreateConnection(ctx context.Context, conn *store.Connection) (*store.Connection, error) {
	query := `
		INSERT INTO connections (
			owner_id, label, hostname, port, nick, away, ssl, self_signed,
			encoding, server_password, nickserv_password, nickserv_enabled,
			sasl_enabled, real_name, keep_alive, strip_colors, temporary
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		conn.OwnerID,
		conn.Label,
		conn.Hostname,
		conn.Port,
		conn.Nick,
		conn.Away,
		conn.SSL,
		conn.SelfSigned,
		conn.Encoding,
		conn.ServerPassword,
		conn.NickservPassword,
		conn.NickservEnabled,
		conn.SASLEnabled,
		conn.RealName,
		conn.KeepAlive,
		conn.StripColors,
		conn.Temporary,
	)
	if err != nil {
		return nil, fmt.Errorf("insert connection: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return s.GetConnectionByID(ctx, id)
}

// GetConnectionByID retrieves a connection by ID.
func (s *SQLiteStore) GetConnectionByID(ctx context.Context, id int64) (*store.Connection, error) {
	query := `SELECT ` + connectionColumns + ` FROM connections WHERE id = ?`
	return s.scanConnection(s.db.QueryRowContext(ctx, query, id))
}

// GetConnectionByOwner returns the first connection owned by ownerID.
func (s *SQLiteStore) GetConnectionByOwner(ctx context.Context, ownerID string) (*store.Connection, error) {
	query := `SELECT ` + connectionColumns + ` FROM connections WHERE owner_id = ? ORDER BY id LIMIT 1`
	return s.scanConnection(s.db.QueryRowContext(ctx, query, ownerID))
}

func (s *SQLiteStore) scanConnection(row *sql.Row) (*store.Connection, error) {
	var conn store.Connection
	err := row.Scan(
		&conn.ID,
		&conn.OwnerID,
		&conn.Label,
		&conn.Hostname,
		&conn.Port,
		&conn.Nick,
		&conn.Away,
		&conn.SSL,
		&conn.SelfSigned,
		&conn.Encoding,
		&conn.ServerPassword,
		&conn.NickservPassword,
		&conn.NickservEnabled,
		&conn.SASLEnabled,
		&conn.RealName,
		&conn.Disabled,
		&conn.DisabledReason,
		&conn.DisabledTimeout,
		&conn.KeepAlive,
		&conn.StripColors,
		&conn.Temporary,
		&conn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query connection: %w", err)
	}

	return &conn, nil
}

// ==== MessageStore implementation ====

// SaveMessage persists a message to storage.
func (s *SQLiteStore) SaveMessage(ctx context.Context, msg *store.Message) error {
	query := `
		INSERT INTO messages (conn_id, channel, author, text, at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, msg.ConnID, msg.Channel, msg.Author, msg.Text, msg.At); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListMessages returns up to limit messages for a channel, newest first.
func (s *SQLiteStore) ListMessages(ctx context.Context, connID int64, channel string, limit, offset int) ([]*store.Message, error) {
	query := `
		SELECT id, conn_id, channel, author, text, at
		FROM messages
		WHERE conn_id = ? AND channel = ?
		ORDER BY at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := s.db.QueryContext(ctx, query, connID, channel, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*store.Message, 0)
	for rows.Next() {
		var msg store.Message
		if err := rows.Scan(&msg.ID, &msg.ConnID, &msg.Channel, &msg.Author, &msg.Text, &msg.At); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}
