package history

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	// ListByReservation devuelve las entradas más recientes primero.
	ListByReservation(ctx context.Context, reservationID string) ([]Entry, error)
}
