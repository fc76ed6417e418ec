package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pet-boarding/internal/ports/notify"

	"github.com/segmentio/kafka-go"
)

// Publisher implementa notify.Publisher con un kafka.Writer sincrónico.
// La key es el id de la reserva: todos sus eventos caen en la misma partición.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           50 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, ev notify.ReservationEvent) error {
	msg, err := Message(ev)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// Message arma el mensaje de Kafka para un evento.
func Message(ev notify.ReservationEvent) (kafka.Message, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal reservation event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(ev.ReservationID),
		Value: data,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	}, nil
}
