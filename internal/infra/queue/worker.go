package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadNotifier is what the worker needs from the mail layer.
type LeadNotifier interface {
	SendLeadNotification(payload LeadCapturedPayload) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier LeadNotifier
}

func NewWorker(ch *amqp.Channel, notifier LeadNotifier) *Worker {
	return &Worker{Channel: ch, Notifier: notifier}
}

// Start consumes lead-captured messages until ctx is cancelled. Malformed
// messages are rejected without requeue so they dead-letter instead of
// wedging the queue; the same goes for send failures, since SMTP outages are
// better drained to the DLQ than retried in a tight loop.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer tag
		false, // auto-ack: manual so failures can be dead-lettered
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("registering consumer: %w", err)
	}

	log.Printf("notification worker waiting on queue %q", queueName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("consumer channel closed")
			}
			w.handle(d)
		}
	}
}

func (w *Worker) handle(d amqp.Delivery) {
	var payload LeadCapturedPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		log.Printf("worker: dropping malformed message: %v", err)
		d.Nack(false, false)
		return
	}

	if err := w.Notifier.SendLeadNotification(payload); err != nil {
		log.Printf("worker: notification for lead %s failed: %v", payload.LeadID, err)
		d.Nack(false, false)
		return
	}

	log.Printf("worker: notified ops about lead %s (%s)", payload.LeadID, payload.Service)
	d.Ack(false)
}
