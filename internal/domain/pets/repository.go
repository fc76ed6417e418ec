package pets

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven los repos cuando no existe la fila.
var ErrNotFound = errors.New("not found")

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	ListAll(ctx context.Context) ([]Pet, error)
	CountByOwner(ctx context.Context) ([]OwnerPetCount, error)
}

type TypeRepository interface {
	List(ctx context.Context) ([]PetType, error)
	GetByID(ctx context.Context, id string) (PetType, error)
	Create(ctx context.Context, t PetType) error
}
