package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/leadpulse/internal/entity"
	"github.com/xavierca1/leadpulse/internal/logger"
)

// Publisher is the slice of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

// PublishLeadEvent routes the event by its type, e.g. lead.created.
func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, event entity.LeadEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		string(event.Type),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.LeadID + ":" + string(event.Type) + ":" + event.OccurredAt.Format(time.RFC3339Nano),
			Timestamp:    event.OccurredAt,
			Type:         string(event.Type),
		},
	)
	if err != nil {
		return fmt.Errorf("publish to rabbitmq: %w", err)
	}
	return nil
}

// NopPublisher stands in when no broker is configured.
type NopPublisher struct {
	Log logger.Logger
}

func (p NopPublisher) PublishLeadEvent(ctx context.Context, event entity.LeadEvent) error {
	p.Log.Debug("lead event dropped, no broker configured", "type", event.Type, "lead_id", event.LeadID)
	return nil
}
