package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-boarding/internal/domain/reservations"
)

type statusRepo struct {
	mu     sync.RWMutex
	byID   map[string]reservations.Status
	byName map[string]string // lower(name) -> id
}

func NewStatusRepo() reservations.StatusRepository {
	return &statusRepo{
		byID:   make(map[string]reservations.Status),
		byName: make(map[string]string),
	}
}

func (r *statusRepo) List(ctx context.Context) ([]reservations.Status, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reservations.Status, 0, len(r.byID))
	for _, st := range r.byID {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *statusRepo) GetByID(ctx context.Context, id string) (reservations.Status, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.byID[id]
	if !ok {
		return reservations.Status{}, reservations.ErrNotFound
	}
	return st, nil
}

func (r *statusRepo) GetByName(ctx context.Context, name string) (reservations.Status, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return reservations.Status{}, reservations.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *statusRepo) Create(ctx context.Context, st reservations.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(st.ID) == "" {
		return errors.New("status id required")
	}
	key := strings.ToLower(strings.TrimSpace(st.Name))
	if _, exists := r.byName[key]; exists {
		return reservations.ErrDuplicateStatus
	}
	r.byID[st.ID] = st
	r.byName[key] = st.ID
	return nil
}
