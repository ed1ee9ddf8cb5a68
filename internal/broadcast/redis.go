package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"eventgallery/pkg/logger"
)

// RedisNotifier shares logout signals between processes that use the same
// session namespace. Local listeners are called synchronously on Publish;
// signals published by other processes arrive through the pub/sub channel.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	origin  string
	log     *logger.Logger
	reg     registry

	pubsub *redis.PubSub
	done   chan struct{}
	once   sync.Once
}

// NewRedisNotifier subscribes to channel and starts relaying remote signals.
// Close must be called to stop the relay.
func NewRedisNotifier(ctx context.Context, client *redis.Client, channel string, log *logger.Logger) (*RedisNotifier, error) {
	if log == nil {
		log = logger.GetDefault()
	}

	pubsub := client.Subscribe(ctx, channel)
	// Wait for the subscription to be confirmed so no signal is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}

	n := &RedisNotifier{
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
		log:     log,
		pubsub:  pubsub,
		done:    make(chan struct{}),
	}
	go n.relay()
	return n, nil
}

func (n *RedisNotifier) Publish(ctx context.Context, sig Signal) error {
	sig.Origin = n.origin
	n.reg.dispatch(sig)

	payload, err := json.Marshal(sig)
	if err != nil {
		return fmt.Errorf("encode signal: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish signal: %w", err)
	}
	return nil
}

func (n *RedisNotifier) Subscribe(l Listener) func() {
	return n.reg.add(l)
}

// Close stops the relay and releases the subscription.
func (n *RedisNotifier) Close() error {
	var err error
	n.once.Do(func() {
		err = n.pubsub.Close()
		<-n.done
	})
	return err
}

func (n *RedisNotifier) relay() {
	defer close(n.done)

	for msg := range n.pubsub.Channel() {
		var sig Signal
		if err := json.Unmarshal([]byte(msg.Payload), &sig); err != nil {
			n.log.Warn("Ignoring malformed logout signal",
				slog.String("channel", n.channel),
				slog.String("error", err.Error()),
			)
			continue
		}
		// Our own publications were already delivered locally.
		if sig.Origin == n.origin {
			continue
		}
		n.reg.dispatch(sig)
	}
}
