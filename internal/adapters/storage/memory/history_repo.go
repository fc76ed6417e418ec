package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-boarding/internal/domain/history"
)

type historyRepo struct {
	mu      sync.RWMutex
	entries []history.Entry
}

func NewHistoryRepo() history.Repository {
	return &historyRepo{}
}

func (r *historyRepo) Create(ctx context.Context, e history.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("history entry id required")
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *historyRepo) ListByReservation(ctx context.Context, reservationID string) ([]history.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]history.Entry, 0)
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].ReservationID == reservationID {
			out = append(out, r.entries[i])
		}
	}

	// más reciente primero; a igual hora gana la última insertada
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	return out, nil
}
