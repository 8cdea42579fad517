package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/leadpulse/internal/entity"
	"github.com/xavierca1/leadpulse/internal/infra/http/middleware"
	"github.com/xavierca1/leadpulse/internal/logger"
)

var ErrMalformedEvent = errors.New("malformed lead event")

// LeadNotifier delivers alerts for lead events (e-mail in production).
type LeadNotifier interface {
	SendNewLeadAlert(lead entity.Lead) error
	SendStatusChangeAlert(lead entity.Lead, previous entity.LeadStatus) error
}

type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type AlertSettings struct {
	NewLead      bool
	StatusChange bool
}

type Worker struct {
	Channel  Consumer
	Notifier LeadNotifier
	Alerts   AlertSettings
	Log      logger.Logger
}

func NewWorker(ch Consumer, notifier LeadNotifier, alerts AlertSettings, log logger.Logger) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
		Alerts:   alerts,
		Log:      log,
	}
}

// Start consumes until ctx is done or the channel closes. Messages are
// acked manually; failures are dead-lettered without requeue.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	w.Log.Info("notification worker waiting", "queue", queueName)

	for {
		select {
		case <-ctx.Done():
			w.Log.Info("notification worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			if err := w.Process(ctx, d.Body); err != nil {
				w.Log.Warn("lead event rejected", "error", err, "routing_key", d.RoutingKey)
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}
}

// Process decodes one event and dispatches the matching alert.
func (w *Worker) Process(ctx context.Context, body []byte) error {
	var event entity.LeadEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if event.LeadID == "" || event.Type == "" {
		return fmt.Errorf("%w: missing type or lead id", ErrMalformedEvent)
	}

	switch event.Type {
	case entity.EventLeadCreated:
		if !w.Alerts.NewLead {
			return nil
		}
		if err := w.Notifier.SendNewLeadAlert(event.Lead); err != nil {
			middleware.RecordNotificationError("new_lead")
			return fmt.Errorf("send new lead alert: %w", err)
		}
		w.Log.Info("new lead alert sent", "lead_id", event.LeadID)

	case entity.EventLeadStatusChanged:
		if !w.Alerts.StatusChange {
			return nil
		}
		if err := w.Notifier.SendStatusChangeAlert(event.Lead, event.PreviousStatus); err != nil {
			middleware.RecordNotificationError("status_change")
			return fmt.Errorf("send status change alert: %w", err)
		}
		w.Log.Info("status change alert sent", "lead_id", event.LeadID, "status", event.Lead.Status)

	default:
		w.Log.Debug("lead event ignored", "type", event.Type, "lead_id", event.LeadID)
	}
	return nil
}
