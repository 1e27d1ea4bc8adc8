package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ircwired/webirc-gateway/internal/auth"
	"github.com/ircwired/webirc-gateway/internal/bridge"
	"github.com/ircwired/webirc-gateway/internal/bridge/localbridge"
	"github.com/ircwired/webirc-gateway/internal/bridge/redisbridge"
	"github.com/ircwired/webirc-gateway/internal/config"
	"github.com/ircwired/webirc-gateway/internal/core"
	"github.com/ircwired/webirc-gateway/internal/store"
	"github.com/ircwired/webirc-gateway/internal/store/sqlite"
	transporthttp "github.com/ircwired/webirc-gateway/internal/transport/http"
)

// App wires together store, bridge, core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	gateway         *core.Gateway
	ircBridge       bridge.Bridge
	store           store.Store
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	logger.Info().Str("db_path", cfg.DatabasePath).Msg("database initialized")

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      24 * time.Hour,
	}
	authService := auth.NewService(st, jwtConfig)

	var ircBridge bridge.Bridge
	if cfg.RedisAddr != "" {
		ircBridge, err = redisbridge.New(ctx, cfg.RedisAddr, cfg.RedisPrefix, logger)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("init bridge: %w", err)
		}
		logger.Info().Str("redis_addr", cfg.RedisAddr).Msg("redis bridge connected")
	} else {
		ircBridge = localbridge.New(logger)
		logger.Warn().Msg("no redis address configured, using in-process bridge")
	}

	gateway := core.NewGateway(authService, st, ircBridge, core.NewTopicRegistry(), cfg.ServerWhitelist, logger)
	server := transporthttp.NewServer(gateway, authService, st, *cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		gateway:         gateway,
		ircBridge:       ircBridge,
		store:           st,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and the bridge event fanout, blocking
// until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.fanout(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// fanout multicasts bridge events to every session subscribed to the
// owning topic.
func (a *App) fanout(ctx context.Context) {
	events := a.ircBridge.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			a.gateway.DispatchBridgeEvent(ev)
		case <-ctx.Done():
			return
		}
	}
}

// cleanup closes the bridge, database and other resources.
func (a *App) cleanup() {
	if a.ircBridge != nil {
		if err := a.ircBridge.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close bridge")
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
