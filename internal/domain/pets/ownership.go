package pets

import (
	"context"
	"errors"
	"strings"
)

// ErrNotOwner: la mascota existe pero es de otro usuario.
var ErrNotOwner = errors.New("pet belongs to another user")

// OwnerOf expone el ownerUserID de una mascota; "" si no existe.
// Es el puerto que consume el motor de reservas (evita importar pets desde reservations).
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return p.OwnerUserID, nil
}

// ResolveOwned carga la mascota y exige que sea de userID.
// Siempre va al repo: la propiedad se re-valida en cada operación.
func (s *Service) ResolveOwned(ctx context.Context, petID, userID string) (Pet, error) {
	if strings.TrimSpace(userID) == "" {
		return Pet{}, ErrInvalidInput
	}
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != userID {
		return Pet{}, ErrNotOwner
	}
	return p, nil
}
