package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-boarding/internal/domain/pets"
)

type petTypeRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.PetType
}

func NewPetTypeRepo() pets.TypeRepository {
	return &petTypeRepo{
		byID: make(map[string]pets.PetType),
	}
}

func (r *petTypeRepo) List(ctx context.Context) ([]pets.PetType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.PetType, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *petTypeRepo) GetByID(ctx context.Context, id string) (pets.PetType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return pets.PetType{}, pets.ErrNotFound
	}
	return t, nil
}

func (r *petTypeRepo) Create(ctx context.Context, t pets.PetType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("pet type id required")
	}
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Name, t.Name) {
			return errors.New("pet type already exists")
		}
	}
	r.byID[t.ID] = t
	return nil
}
