package pets

import "time"

// PetType es el catálogo de tipos (perro, gato, ...). Lo administra el staff.
type PetType struct {
	ID   string
	Name string
}

// Pet representa una mascota registrada por su dueño.
type Pet struct {
	ID            string
	OwnerUserID   string
	OwnerUsername string // copiado de los claims al crear; se usa en reportes

	Name        string
	Age         int
	PetTypeID   string
	PetTypeName string // solo lectura (join)
	Breed       string
	Description string
	PhotoURL    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerPetCount es una fila del reporte de mascotas por usuario.
type OwnerPetCount struct {
	UserID   string
	Username string
	PetCount int
}
