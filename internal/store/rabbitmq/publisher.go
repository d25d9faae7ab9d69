package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AlertEvent is the wire format for safety telemetry. kind is one of the
// chat.Alert* constants.
type AlertEvent struct {
	Kind   string    `json:"kind"`
	Detail string    `json:"detail"`
	Ts     time.Time `json:"ts"`
}

// AlertPublisher pushes safety events to a durable queue consumed by
// cmd/alertworker. Publishing never blocks a chat reply; callers treat
// errors as log-and-continue.
type AlertPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewAlertPublisher(url, queue string) (*AlertPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &AlertPublisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *AlertPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Alert implements chat.AlertSink.
func (p *AlertPublisher) Alert(ctx context.Context, kind, detail string) error {
	body, err := json.Marshal(AlertEvent{Kind: kind, Detail: detail, Ts: time.Now()})
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(cctx,
		"",      // default exchange
		p.queue, // routing key = queue
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
}
