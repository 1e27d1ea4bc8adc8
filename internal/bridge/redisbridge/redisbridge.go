// Package redisbridge implements bridge.Bridge over Redis pub/sub.
// The gateway publishes relay signals and wake nudges; the bridge
// process subscribes to them and publishes its own events back on the
// events channel.
package redisbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ircwired/webirc-gateway/internal/bridge"
)

// signalMessage is the wire form of a relay signal.
type signalMessage struct {
	ConnID int64          `json:"conn_id"`
	Name   string         `json:"name"`
	Data   bridge.Payload `json:"data,omitempty"`
}

// Bridge talks to the IRC bridge process through Redis channels.
type Bridge struct {
	client *redis.Client
	log    *zerolog.Logger

	signalChannel string
	wakeChannel   string

	pubsub *redis.PubSub
	events chan bridge.Event

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New connects to Redis and subscribes to the bridge event channel.
// Channel names are derived from prefix: <prefix>:signals, <prefix>:wake
// and <prefix>:events.
func New(ctx context.Context, addr, prefix string, logger *zerolog.Logger) (*Bridge, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())

	b := &Bridge{
		client:        client,
		log:           logger,
		signalChannel: prefix + ":signals",
		wakeChannel:   prefix + ":wake",
		pubsub:        client.Subscribe(runCtx, prefix+":events"),
		events:        make(chan bridge.Event, 64),
		cancel:        cancel,
	}

	b.wg.Add(1)
	go b.receive(runCtx)

	return b, nil
}

// Signal publishes a relay signal for one backend connection.
func (b *Bridge) Signal(ctx context.Context, connID int64, name string, data bridge.Payload) error {
	payload, err := json.Marshal(signalMessage{ConnID: connID, Name: name, Data: data})
	if err != nil {
		return fmt.Errorf("marshal signal: %w", err)
	}
	if err := b.client.Publish(ctx, b.signalChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish signal: %w", err)
	}
	return nil
}

// Wake publishes a wake nudge for one backend connection.
func (b *Bridge) Wake(ctx context.Context, connID int64) error {
	if err := b.client.Publish(ctx, b.wakeChannel, strconv.FormatInt(connID, 10)).Err(); err != nil {
		return fmt.Errorf("publish wake: %w", err)
	}
	return nil
}

// Events returns the stream of bridge-originated events.
func (b *Bridge) Events() <-chan bridge.Event {
	return b.events
}

func (b *Bridge) receive(ctx context.Context) {
	defer b.wg.Done()
	defer close(b.events)

	ch := b.pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev bridge.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.log.Warn().Err(err).Msg("malformed bridge event")
				continue
			}
			select {
			case b.events <- ev:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// Close unsubscribes and releases the Redis client.
func (b *Bridge) Close() error {
	b.cancel()
	err := b.pubsub.Close()
	b.wg.Wait()
	if cerr := b.client.Close(); err == nil {
		err = cerr
	}
	return err
}
