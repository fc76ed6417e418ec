package reservations

import (
	"context"

	"pet-boarding/internal/domain/history"
)

// Repository persiste reservas. GetByID y List devuelven los campos de join completos.
type Repository interface {
	Create(ctx context.Context, r Reservation) error
	GetByID(ctx context.Context, id string) (Reservation, error)
	// Update escribe r solo si la fila sigue en expectedVersion; si no, ErrVersionConflict.
	Update(ctx context.Context, r Reservation, expectedVersion int) error
	Delete(ctx context.Context, id string) error
	// List ordena por start_date ASC, created_at ASC, id ASC.
	List(ctx context.Context, q Query) ([]Reservation, error)
	// CountBy agrupa todas las reservas; orden por total DESC.
	CountBy(ctx context.Context, g GroupBy) ([]Count, error)
}

type StatusRepository interface {
	// List ordena por nombre.
	List(ctx context.Context) ([]Status, error)
	GetByID(ctx context.Context, id string) (Status, error)
	// GetByName no distingue mayúsculas.
	GetByName(ctx context.Context, name string) (Status, error)
	Create(ctx context.Context, s Status) error
}

// PetLookup resuelve el dueño actual de una mascota ("" si no existe).
type PetLookup interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

// HistoryStore guarda y lista el historial de cada reserva.
type HistoryStore interface {
	Record(ctx context.Context, e history.Entry) (history.Entry, error)
	ListByReservation(ctx context.Context, reservationID string) ([]history.Entry, error)
}
