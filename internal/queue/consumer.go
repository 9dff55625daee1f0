package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Handler processes one decoded event. The consumer acks regardless of the
// handler's error: receipt delivery is best effort and a poison message
// must not wedge the queue.
type Handler func(ctx context.Context, event BookingConfirmedEvent) error

type Consumer struct {
	url     string
	handler Handler
	log     *zap.Logger
}

func NewConsumer(url string, handler Handler, log *zap.Logger) *Consumer {
	return &Consumer{
		url:     url,
		handler: handler,
		log:     log.With(zap.String("component", "queue_consumer")),
	}
}

// Run consumes booking.confirmed until ctx is cancelled, reconnecting with
// capped exponential backoff when the broker drops.
func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("Broker dial failed, retrying",
				zap.Error(err),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(ctx, conn); err != nil {
			c.log.Warn("Consume loop ended, reconnecting", zap.Error(err))
		}
		_ = conn.Close()
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(BookingConfirmedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.Qos(10, 0, false); err != nil {
		c.log.Warn("Set QoS failed", zap.Error(err))
	}

	msgs, err := ch.Consume(BookingConfirmedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("deliveries channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var event BookingConfirmedEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		c.log.Error("Failed to decode event", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	if err := c.handler(ctx, event); err != nil {
		c.log.Error("Failed to handle booking confirmed event",
			zap.Error(err),
			zap.String("booking_id", event.BookingID),
		)
	}
	_ = d.Ack(false)
}
