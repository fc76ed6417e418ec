package history

import "time"

// Entry es un paso del ciclo de vida de una reserva.
type Entry struct {
	ID            string
	ReservationID string

	Type       EntryType
	OccurredAt time.Time

	ActorUserID string
	ActorAdmin  bool

	// Estado de la reserva después del cambio ("" si no tenía).
	StatusName string
	Notes      string
}
