package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ircwired/webirc-gateway/internal/store"
)

// ConnectionHandlers provides HTTP handlers for reading saved IRC
// connection configs.
type ConnectionHandlers struct {
	store store.ConnectionStore
	log   *zerolog.Logger
}

// NewConnectionHandlers creates a new connection handlers instance.
func NewConnectionHandlers(st store.ConnectionStore, logger *zerolog.Logger) *ConnectionHandlers {
	return &ConnectionHandlers{
		store: st,
		log:   logger,
	}
}

// ConnectionResponse represents a saved connection in API responses.
// Server and NickServ passwords are never returned.
type ConnectionResponse struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"`
	Hostname  string    `json:"hostname"`
	Port      int       `json:"port"`
	Nick      string    `json:"nick"`
	RealName  string    `json:"realName"`
	Secure    bool      `json:"secure"`
	KeepAlive bool      `json:"keepAlive"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetConnection returns the caller's saved connection config.
// GET /api/v1/connection
func (h *ConnectionHandlers) GetConnection(c *gin.Context) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		h.log.Error().Msg("user_id not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	uid, ok := userID.(string)
	if !ok {
		h.log.Error().Msg("invalid user_id type in context")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	conn, err := h.store.GetConnectionByOwner(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "no saved connection"})
			return
		}
		h.log.Error().Err(err).Str("user_id", uid).Msg("failed to load connection")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ConnectionResponse{
		ID:        conn.ID,
		Label:     conn.Label,
		Hostname:  conn.Hostname,
		Port:      conn.Port,
		Nick:      conn.Nick,
		RealName:  conn.RealName,
		Secure:    conn.SSL,
		KeepAlive: conn.KeepAlive,
		CreatedAt: conn.CreatedAt,
	})
}
