// Package events publishes booking events to RabbitMQ for downstream
// consumers (confirmation mailer, partner notifications). The service never
// depends on a consumer being present.
package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"asili_experiences/internal/domain"
)

const bookingCreatedQueue = "booking.created"

type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// New dials the broker and declares the booking queue. Durable so messages
// survive broker restarts.
func New(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(bookingCreatedQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

func (p *Publisher) PublishBookingCreated(ctx context.Context, ev domain.BookingCreated) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx,
		"",                  // default exchange
		bookingCreatedQueue, // routing key = queue name
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
