package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ircwired/webirc-gateway/internal/auth"
	"github.com/ircwired/webirc-gateway/internal/config"
	"github.com/ircwired/webirc-gateway/internal/core"
	"github.com/ircwired/webirc-gateway/internal/store"
)

// NewServer builds the gateway HTTP server: health check, the session
// WebSocket endpoint and the companion REST API.
func NewServer(gateway *core.Gateway, authService *auth.Service, st store.Store, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery())

	router.GET("/healthz", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(gateway, logger)))

	apiHandlers := NewAPIHandlers(authService, logger)
	connHandlers := NewConnectionHandlers(st, logger)

	api := router.Group("/api/v1")
	api.POST("/register", apiHandlers.Register)
	api.POST("/login", apiHandlers.Login)

	authed := api.Group("")
	authed.Use(AuthMiddleware(authService, logger))
	authed.GET("/connection", connHandlers.GetConnection)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
