package localbridge

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ircwired/webirc-gateway/internal/bridge"
)

func TestRecordsSignalsAndWakes(t *testing.T) {
	br := New(nil)
	defer br.Close()

	ctx := context.Background()
	if err := br.Wake(ctx, 7); err != nil {
		t.Fatalf("Wake failed: %v", err)
	}
	if err := br.Signal(ctx, 7, bridge.SignalJoin, bridge.Payload{"channel": "#go"}); err != nil {
		t.Fatalf("Signal failed: %v", err)
	}

	wakes := br.Wakes()
	if len(wakes) != 1 || wakes[0] != 7 {
		t.Fatalf("unexpected wakes: %v", wakes)
	}
	signals := br.Signals()
	if len(signals) != 1 || signals[0].Name != bridge.SignalJoin || signals[0].Data["channel"] != "#go" {
		t.Fatalf("unexpected signals: %+v", signals)
	}

	br.Reset()
	if len(br.Signals()) != 0 || len(br.Wakes()) != 0 {
		t.Fatalf("expected empty records after reset")
	}
}

func TestEmitDeliversEvents(t *testing.T) {
	br := New(nil)

	br.Emit(bridge.Event{Owner: "uid-1", Name: "message", Data: json.RawMessage(`{"text":"hi"}`)})
	br.Close()

	ev, ok := <-br.Events()
	if !ok {
		t.Fatalf("expected buffered event before close")
	}
	if ev.Owner != "uid-1" || ev.Name != "message" {
		t.Fatalf("unexpected event: %+v", ev)
	}

	if _, ok := <-br.Events(); ok {
		t.Fatalf("expected closed event stream")
	}
}
