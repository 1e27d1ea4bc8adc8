// Package localbridge provides an in-process bridge.Bridge used for
// single-binary development runs and tests. Signals are recorded and
// logged; events are injected programmatically via Emit.
package localbridge

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ircwired/webirc-gateway/internal/bridge"
)

// SignalRecord is one captured bridge signal.
type SignalRecord struct {
	ConnID int64
	Name   string
	Data   bridge.Payload
}

// Bridge records signals in memory instead of delivering them to a
// separate process.
type Bridge struct {
	log *zerolog.Logger

	mu      sync.Mutex
	signals []SignalRecord
	wakes   []int64

	events chan bridge.Event
	once   sync.Once
}

// New creates an in-process bridge. logger may be nil.
func New(logger *zerolog.Logger) *Bridge {
	return &Bridge{
		log:    logger,
		events: make(chan bridge.Event, 32),
	}
}

// Signal records a signal for one backend connection.
func (b *Bridge) Signal(_ context.Context, connID int64, name string, data bridge.Payload) error {
	b.mu.Lock()
	b.signals = append(b.signals, SignalRecord{ConnID: connID, Name: name, Data: data})
	b.mu.Unlock()

	if b.log != nil {
		b.log.Debug().Int64("conn_id", connID).Str("signal", name).Msg("bridge signal")
	}
	return nil
}

// Wake records a wake nudge for one backend connection.
func (b *Bridge) Wake(_ context.Context, connID int64) error {
	b.mu.Lock()
	b.wakes = append(b.wakes, connID)
	b.mu.Unlock()

	if b.log != nil {
		b.log.Debug().Int64("conn_id", connID).Msg("bridge wake")
	}
	return nil
}

// Events returns the stream of injected bridge events.
func (b *Bridge) Events() <-chan bridge.Event {
	return b.events
}

// Emit injects a bridge-originated event into the stream.
func (b *Bridge) Emit(ev bridge.Event) {
	b.events <- ev
}

// Close closes the event stream.
func (b *Bridge) Close() error {
	b.once.Do(func() { close(b.events) })
	return nil
}

// Signals returns a snapshot of all recorded signals.
func (b *Bridge) Signals() []SignalRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]SignalRecord, len(b.signals))
	copy(out, b.signals)
	return out
}

// Wakes returns a snapshot of all recorded wake nudges.
func (b *Bridge) Wakes() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]int64, len(b.wakes))
	copy(out, b.wakes)
	return out
}

// Reset clears recorded signals and wakes.
func (b *Bridge) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.signals = nil
	b.wakes = nil
}
