package reservations

import (
	"strings"
	"time"
)

// Nombres del vocabulario que el motor necesita sí o sí.
const (
	StatusPending   = "Pending"
	StatusCancelled = "Cancelled"
)

// DefaultStatuses se crean con SEED_STATUSES=true.
var DefaultStatuses = []string{StatusPending, "Confirmed", StatusCancelled, "Completed"}

// Status es una entrada del vocabulario compartido de estados.
type Status struct {
	ID   string
	Name string
}

// Reservation es la reserva de una mascota para un rango de fechas.
// StartDate/EndDate son fechas civiles normalizadas a medianoche UTC.
type Reservation struct {
	ID       string
	PetID    string
	StatusID string // vacío si el estado fue eliminado

	StartDate    time.Time
	EndDate      time.Time
	Observations string

	// Se incrementa en cada escritura (concurrencia optimista).
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Solo lectura: los completan los repos con joins.
	PetName     string
	OwnerUserID string
	StatusName  string
}

// Actor es quien ejecuta la operación.
type Actor struct {
	UserID string
	Admin  bool
}

type GroupBy string

const (
	GroupByPet  GroupBy = "pet"
	GroupByUser GroupBy = "user"
)

func ParseGroupBy(s string) (GroupBy, bool) {
	switch GroupBy(strings.ToLower(strings.TrimSpace(s))) {
	case "", GroupByPet:
		return GroupByPet, true
	case GroupByUser:
		return GroupByUser, true
	default:
		return "", false
	}
}

// Count es una fila de analytics: cantidad de reservas por mascota o por dueño.
type Count struct {
	ItemID   string
	ItemName string
	Total    int
}

// ListFilter es lo que pide el caller; el servicio lo traduce a Query según privilegios.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}

// Query es lo que ejecuta el repo.
type Query struct {
	OwnerUserID string // vacío = todas
	StatusName  string // vacío = sin filtro; comparación case-insensitive
	Limit       int    // <= 0 = sin límite
	Offset      int
}
