package http

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/ircwired/webirc-gateway/internal/bridge"
	"github.com/ircwired/webirc-gateway/internal/proto"
)

type outboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func dialSession(t *testing.T, ctx context.Context, url string) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(url, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "done") })

	return conn
}

func sendInbound(t *testing.T, ctx context.Context, conn *websocket.Conn, eventType string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: eventType, Data: payload}); err != nil {
		t.Fatalf("write inbound: %v", err)
	}
}

func readOutbound(t *testing.T, ctx context.Context, conn *websocket.Conn) outboundFrame {
	t.Helper()

	var frame outboundFrame
	if err := wsjson.Read(ctx, conn, &frame); err != nil {
		t.Fatalf("read outbound: %v", err)
	}
	return frame
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestSessionRegisterConnectAndJoin(t *testing.T) {
	ts, br := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialSession(t, ctx, ts.URL)

	sendInbound(t, ctx, conn, proto.InboundTypeRegister, proto.CredentialsData{Username: "alice", Password: "secret123"})
	frame := readOutbound(t, ctx, conn)
	if frame.Event != proto.OutboundTypeRegisterSuccess {
		t.Fatalf("expected register_success, got %q", frame.Event)
	}
	var success proto.SuccessData
	if err := json.Unmarshal(frame.Data, &success); err != nil {
		t.Fatalf("unmarshal register_success: %v", err)
	}
	if success.Username != "alice" {
		t.Fatalf("unexpected username: %q", success.Username)
	}

	sendInbound(t, ctx, conn, proto.InboundTypeConnect, proto.ConnectData{Server: "irc.example.org", Nick: "alice"})
	restore := waitForSignal(t, br, bridge.SignalRestore)

	sendInbound(t, ctx, conn, proto.InboundTypeJoin, "go")
	join := waitForSignal(t, br, bridge.SignalJoin)
	if join.ConnID != restore.ConnID {
		t.Fatalf("join addressed to conn %d, expected %d", join.ConnID, restore.ConnID)
	}
	if join.Data["channel"] != "#go" {
		t.Fatalf("unexpected join payload: %+v", join.Data)
	}
}

func TestSessionLoginErrorAndLogoutReset(t *testing.T) {
	ts, _ := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialSession(t, ctx, ts.URL)

	sendInbound(t, ctx, conn, proto.InboundTypeLogin, proto.CredentialsData{Username: "ghost", Password: "nope"})
	frame := readOutbound(t, ctx, conn)
	if frame.Event != proto.OutboundTypeLoginError {
		t.Fatalf("expected login_error, got %q", frame.Event)
	}
	var errData proto.ErrorData
	if err := json.Unmarshal(frame.Data, &errData); err != nil {
		t.Fatalf("unmarshal login_error: %v", err)
	}
	if errData.Message != "User not found." {
		t.Fatalf("unexpected message: %q", errData.Message)
	}

	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeLogout}); err != nil {
		t.Fatalf("write logout: %v", err)
	}
	frame = readOutbound(t, ctx, conn)
	if frame.Event != proto.OutboundTypeReset {
		t.Fatalf("expected reset, got %q", frame.Event)
	}
}

func TestGuestDisconnectTearsDownConnection(t *testing.T) {
	ts, br := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialSession(t, ctx, ts.URL)
	sendInbound(t, ctx, conn, proto.InboundTypeConnect, proto.ConnectData{Server: "irc.example.org", Nick: "guest1"})
	waitForSignal(t, br, bridge.SignalRestore)

	conn.Close(websocket.StatusNormalClosure, "bye")
	waitForSignal(t, br, bridge.SignalDisconnect)
}

func TestConnectErrorOnWhitelistedServer(t *testing.T) {
	ts, br := startTestServer(t, "freenode")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialSession(t, ctx, ts.URL)
	sendInbound(t, ctx, conn, proto.InboundTypeConnect, proto.ConnectData{Server: "efnet", Nick: "guest1"})

	frame := readOutbound(t, ctx, conn)
	if frame.Event != proto.OutboundTypeConnectError {
		t.Fatalf("expected connect_error, got %q", frame.Event)
	}
	if len(br.Signals()) != 0 {
		t.Fatalf("expected no bridge traffic, got %v", br.Signals())
	}
}
