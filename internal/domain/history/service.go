package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Record completa ID y OccurredAt si vienen vacíos y guarda la entrada.
func (s *Service) Record(ctx context.Context, e Entry) (Entry, error) {
	if strings.TrimSpace(e.ReservationID) == "" || !e.Type.Valid() {
		return Entry{}, ErrInvalidInput
	}
	if strings.TrimSpace(e.ActorUserID) == "" {
		return Entry{}, ErrInvalidInput
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = s.now().UTC()
	}
	e.Notes = strings.TrimSpace(e.Notes)

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) ListByReservation(ctx context.Context, reservationID string) ([]Entry, error) {
	reservationID = strings.TrimSpace(reservationID)
	if reservationID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByReservation(ctx, reservationID)
}
