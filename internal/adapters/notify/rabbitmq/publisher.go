package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"pet-boarding/internal/ports/notify"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher implementa notify.Publisher sobre una cola durable (exchange por defecto).
type Publisher struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewPublisher(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	return &Publisher{conn: conn, channel: ch, queue: queue}, nil
}

func (p *Publisher) Publish(ctx context.Context, ev notify.ReservationEvent) error {
	body, err := Encode(ev)
	if err != nil {
		return err
	}

	// amqp.Channel no es seguro para publicar desde varias goroutines
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(ev.Type),
		MessageId:    ev.ReservationID,
		Body:         body,
	}); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			firstErr = err
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Encode serializa el evento tal como viaja en el body.
func Encode(ev notify.ReservationEvent) ([]byte, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal reservation event: %w", err)
	}
	return body, nil
}
