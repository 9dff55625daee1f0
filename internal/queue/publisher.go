package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher emits domain events. Checkout treats publishing as best effort:
// errors are logged by the caller and never abort the request.
type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
}

type amqpPublisher struct {
	url string
	log *zap.Logger
}

func NewPublisher(url string, log *zap.Logger) Publisher {
	return &amqpPublisher{
		url: url,
		log: log.With(zap.String("component", "queue_publisher")),
	}
}

// PublishBookingConfirmed dials per publish. Confirmations are rare enough
// that connection churn is cheaper than managing a shared channel's
// reconnect state.
func (p *amqpPublisher) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(BookingConfirmedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", BookingConfirmedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	p.log.Info("Published booking confirmed event",
		zap.String("booking_id", event.BookingID),
	)
	return nil
}
