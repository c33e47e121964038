package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/FransiTsena/fitme-sub001/internal/logger"
	"github.com/FransiTsena/fitme-sub001/internal/metrics"
)

// Routing keys on the domain events exchange.
const (
	MembershipPurchased = "membership.purchased"
	MembershipCancelled = "membership.cancelled"
	BookingCreated      = "booking.created"
	BookingCompleted    = "booking.completed"
	BookingCancelled    = "booking.cancelled"
	TrainerInvited      = "trainer.invited"
	TrainerPromoted     = "trainer.promoted"
	InvitationRejected  = "trainer.invitation_rejected"
)

type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &RabbitPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         b,
	})
}

func (p *RabbitPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Noop drops every event. Used when RABBITMQ_URL is not configured.
type Noop struct{}

func (Noop) PublishJSON(context.Context, string, any) error { return nil }

// Emit publishes an event after the state change has been committed. Failures are logged and
// counted but never returned.
func Emit(ctx context.Context, p Publisher, key string, v any) {
	if p == nil {
		return
	}
	if err := p.PublishJSON(ctx, key, v); err != nil {
		metrics.RecordNotificationFailure("events")
		logger.WithError(err).Warn("failed to publish event", "key", key)
	}
}
