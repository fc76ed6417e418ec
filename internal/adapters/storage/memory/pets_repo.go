package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-boarding/internal/domain/pets"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return pets.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

// Delete no toca reservas: el repo de reservas ignora las que quedan huérfanas.
func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return pets.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	return r.list(func(p pets.Pet) bool { return p.OwnerUserID == ownerUserID }), nil
}

func (r *petRepo) ListAll(ctx context.Context) ([]pets.Pet, error) {
	return r.list(func(pets.Pet) bool { return true }), nil
}

func (r *petRepo) list(keep func(pets.Pet) bool) []pets.Pet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if keep(p) {
			out = append(out, p)
		}
	}

	// created_at asc, id para desempatar
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *petRepo) CountByOwner(ctx context.Context) ([]pets.OwnerPetCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byOwner := make(map[string]*pets.OwnerPetCount)
	for _, p := range r.byID {
		c, ok := byOwner[p.OwnerUserID]
		if !ok {
			c = &pets.OwnerPetCount{UserID: p.OwnerUserID, Username: p.OwnerUsername}
			byOwner[p.OwnerUserID] = c
		}
		c.PetCount++
	}

	out := make([]pets.OwnerPetCount, 0, len(byOwner))
	for _, c := range byOwner {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Username != out[j].Username {
			return out[i].Username < out[j].Username
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}
