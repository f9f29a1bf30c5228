// Package kafka forwards storefront change events to a Kafka topic for
// downstream consumers.
package kafka

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/your-org/collectibles-storefront/internal/pkg/events"
)

// DefaultKinds are the events forwarded when no kinds are configured.
// Per-item cart updates stay in process.
var DefaultKinds = []events.Kind{events.ThemeChanged, events.CartCleared}

// Publisher wraps a Kafka producer and implements events.Sink
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	kinds    map[events.Kind]bool
	logger   logrus.FieldLogger
}

// NewConfig returns the producer settings used for event forwarding
func NewConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000
	return config
}

// NewPublisher connects to brokers and creates a publisher
func NewPublisher(brokers []string, topic string, logger logrus.FieldLogger) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewConfig())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Kafka producer")
	}

	logger.WithFields(logrus.Fields{
		"brokers": brokers,
		"topic":   topic,
	}).Info("Kafka publisher initialized")

	return NewPublisherWithProducer(producer, topic, logger), nil
}

// NewPublisherWithProducer creates a publisher over an existing producer.
// With no kinds, DefaultKinds are forwarded.
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, logger logrus.FieldLogger, kinds ...events.Kind) *Publisher {
	if len(kinds) == 0 {
		kinds = DefaultKinds
	}
	set := make(map[events.Kind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return &Publisher{
		producer: producer,
		topic:    topic,
		kinds:    set,
		logger:   logger,
	}
}

// Forward sends the event to the topic. Events of other kinds are ignored.
func (p *Publisher) Forward(_ context.Context, event events.Event) error {
	if !p.kinds[event.Kind] {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event")
	}

	key := event.Scope
	if key == "" {
		key = string(event.Kind)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_kind"), Value: []byte(event.Kind)},
			{Key: []byte("origin"), Value: []byte(event.Origin)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return errors.Wrap(err, "failed to send message to Kafka")
	}

	p.logger.WithFields(logrus.Fields{
		"kind":      event.Kind,
		"topic":     p.topic,
		"partition": partition,
		"offset":    offset,
	}).Debug("Event forwarded to Kafka")
	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
