package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const bookingCreatedQueue = "booking.created"

// AMQPNotifier publishes booking events to RabbitMQ. Errors are logged
// and returned so the dispatcher can count them, but they never reach
// the request path.
type AMQPNotifier struct {
	url string
}

func NewAMQPNotifier(url string) *AMQPNotifier {
	return &AMQPNotifier{url: url}
}

func (n *AMQPNotifier) TrainerBookingCreated(ctx context.Context, ev BookingCreatedEvent) error {
	conn, err := amqp.Dial(n.url)
	if err != nil {
		log.Printf("notify: rabbitmq dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("notify: rabbitmq channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(bookingCreatedQueue, true, false, false, false, nil); err != nil {
		log.Printf("notify: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", bookingCreatedQueue, false, false, pub); err != nil {
		log.Printf("notify: publish failed: %v", err)
		return err
	}
	return nil
}

var _ Notifier = (*AMQPNotifier)(nil)
