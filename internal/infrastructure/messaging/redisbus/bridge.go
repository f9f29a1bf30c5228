// Package redisbus carries change events between storefront instances over
// Redis pub/sub.
package redisbus

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/collectibles-storefront/internal/pkg/events"
)

// Injector receives events published by other instances
type Injector interface {
	Inject(event events.Event)
}

// Bridge publishes local events to a channel and injects remote ones locally.
// It implements events.Sink.
type Bridge struct {
	client  *redis.Client
	channel string
	logger  logrus.FieldLogger
}

// NewBridge creates a bridge on a Redis channel
func NewBridge(client *redis.Client, channel string, logger logrus.FieldLogger) *Bridge {
	return &Bridge{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// Forward publishes a local event to the channel
func (b *Bridge) Forward(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event")
	}
	return errors.Wrap(b.client.Publish(ctx, b.channel, payload).Err(), "failed to publish event")
}

// Run subscribes to the channel and injects every received event into target
// until ctx is done. It returns once the subscription is established.
func (b *Bridge) Run(ctx context.Context, target Injector) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return errors.Wrap(err, "failed to subscribe to event channel")
	}

	go func() {
		defer pubsub.Close()
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event events.Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					b.logger.WithError(err).Warn("Discarding malformed event")
					continue
				}
				target.Inject(event)
			}
		}
	}()

	b.logger.WithField("channel", b.channel).Info("Event bridge subscribed")
	return nil
}
