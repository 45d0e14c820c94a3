// Package events publishes domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/msomdec/storefront/internal/domain"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// EventOrderPlaced is the value of the "type" header on order messages.
const EventOrderPlaced = "order.placed"

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON messages to a single topic, keyed by
// order ID so that events for one order stay on one partition.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafkaPublisher returns a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w, topic: topic}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, event domain.OrderPlaced) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order placed: %w", err)
	}

	msg := kafka.Message{
		Key:     []byte(strconv.FormatInt(event.OrderID, 10)),
		Value:   value,
		Time:    event.CreatedAt,
		Headers: []kafka.Header{{Key: "type", Value: []byte(EventOrderPlaced)}},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write to %s: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Noop discards every event. It is used when no brokers are configured.
type Noop struct{}

func (Noop) PublishOrderPlaced(_ context.Context, event domain.OrderPlaced) error {
	log.WithField("order_id", event.OrderID).Debug("order event not published: no brokers configured")
	return nil
}

func (Noop) Close() error { return nil }

// New returns a Kafka publisher when brokers is non-empty and Noop otherwise.
func New(brokers []string, topic string) domain.EventPublisher {
	if len(brokers) == 0 {
		return Noop{}
	}
	return NewKafkaPublisher(brokers, topic)
}
