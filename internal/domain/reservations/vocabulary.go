package reservations

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// wellKnown guarda los estados que el motor resuelve por nombre (Pending, Cancelled).
// Se llena en ResolveWellKnown al arrancar; un faltante se reintenta en la siguiente operación.
type wellKnown struct {
	mu    sync.RWMutex
	byKey map[string]Status
}

func (w *wellKnown) get(name string) (Status, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	st, ok := w.byKey[strings.ToLower(name)]
	return st, ok
}

func (w *wellKnown) put(name string, st Status) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.byKey == nil {
		w.byKey = make(map[string]Status, 2)
	}
	w.byKey[strings.ToLower(name)] = st
}

func isWellKnown(name string) bool {
	return strings.EqualFold(name, StatusPending) || strings.EqualFold(name, StatusCancelled)
}

// ResolveWellKnown busca Pending y Cancelled en el vocabulario y los deja en cache.
// Devuelve ErrConfiguration si falta alguno; el servicio sigue funcionando igual.
func (s *Service) ResolveWellKnown(ctx context.Context) error {
	var errs []error
	for _, name := range []string{StatusPending, StatusCancelled} {
		if _, err := s.wellKnownStatus(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) wellKnownStatus(ctx context.Context, name string) (Status, error) {
	if st, ok := s.known.get(name); ok {
		return st, nil
	}

	st, err := s.statuses.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger(ctx).Error("well-known reservation status missing", map[string]any{
				"status": name,
			})
			return Status{}, misconfigured(name)
		}
		return Status{}, err
	}

	s.known.put(name, st)
	return st, nil
}
