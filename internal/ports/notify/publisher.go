package notify

import (
	"context"
	"time"
)

// EventType identifica la transición que originó el mensaje.
type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationUpdated   EventType = "reservation.updated"
	EventReservationCancelled EventType = "reservation.cancelled"
	EventReservationDeleted   EventType = "reservation.deleted"
)

// ReservationEvent es el payload que se publica hacia el broker.
type ReservationEvent struct {
	Type          EventType `json:"type"`
	ReservationID string    `json:"reservation_id"`
	PetID         string    `json:"pet_id"`
	OwnerUserID   string    `json:"owner_user_id"`
	ActorUserID   string    `json:"actor_user_id"`
	Status        string    `json:"status,omitempty"`
	StartDate     string    `json:"start_date"` // YYYY-MM-DD
	EndDate       string    `json:"end_date"`   // YYYY-MM-DD
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher envía eventos de reservas a un sistema externo (confirmaciones, etc).
type Publisher interface {
	Publish(ctx context.Context, ev ReservationEvent) error
	Close() error
}

// Noop descarta todos los eventos (modo dev / sin broker).
type Noop struct{}

func (Noop) Publish(context.Context, ReservationEvent) error { return nil }
func (Noop) Close() error                                    { return nil }
