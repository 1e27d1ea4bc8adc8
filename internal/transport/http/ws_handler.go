package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/ircwired/webirc-gateway/internal/core"
	"github.com/ircwired/webirc-gateway/internal/proto"
	"github.com/ircwired/webirc-gateway/internal/utils"
)

// disconnectTimeout bounds the bridge teardown signals issued after the
// session socket is already gone.
const disconnectTimeout = 5 * time.Second

// WSHandler upgrades HTTP connections into session sockets and bridges
// them to the gateway core. The read loop invokes core handlers
// synchronously, so a session's events are processed strictly in
// arrival order while different sessions run in parallel.
type WSHandler struct {
	gateway *core.Gateway
	log     *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(gateway *core.Gateway, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{gateway: gateway, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	session := core.NewSession(utils.NewSessionID())
	h.log.Debug().Str("session_id", session.ID).Msg("session opened")

	defer func() {
		// The socket is gone; finish teardown on a fresh context.
		dctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer cancel()
		h.gateway.Disconnect(dctx, session)
		h.log.Debug().Str("session_id", session.ID).Msg("session closed")
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, session)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, session)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, session *core.Session) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return err
		}

		if err := applyInbound(ctx, h.gateway, session, inbound); err != nil {
			h.log.Warn().Err(err).Str("session_id", session.ID).Str("type", inbound.Type).Msg("malformed inbound event")
			return err
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, session *core.Session) error {
	for {
		select {
		case event, ok := <-session.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("session_id", session.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
