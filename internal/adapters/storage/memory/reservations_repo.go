package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-boarding/internal/domain/pets"
	"pet-boarding/internal/domain/reservations"
)

// reservationRepo resuelve los joins (mascota, dueño, estado) contra los otros repos en memoria.
// Las reservas cuya mascota ya no existe se ignoran, como haría el ON DELETE CASCADE.
type reservationRepo struct {
	mu   sync.RWMutex
	byID map[string]reservations.Reservation

	pets     pets.Repository
	statuses reservations.StatusRepository
}

func NewReservationRepo(petRepo pets.Repository, statuses reservations.StatusRepository) reservations.Repository {
	return &reservationRepo{
		byID:     make(map[string]reservations.Reservation),
		pets:     petRepo,
		statuses: statuses,
	}
}

func (r *reservationRepo) Create(ctx context.Context, res reservations.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(res.ID) == "" {
		return errors.New("reservation id required")
	}
	if _, exists := r.byID[res.ID]; exists {
		return errors.New("reservation already exists")
	}
	r.byID[res.ID] = stripJoins(res)
	return nil
}

func (r *reservationRepo) GetByID(ctx context.Context, id string) (reservations.Reservation, error) {
	r.mu.RLock()
	res, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return reservations.Reservation{}, reservations.ErrNotFound
	}

	joined, ok, err := r.join(ctx, res)
	if err != nil {
		return reservations.Reservation{}, err
	}
	if !ok {
		return reservations.Reservation{}, reservations.ErrNotFound
	}
	return joined, nil
}

func (r *reservationRepo) Update(ctx context.Context, res reservations.Reservation, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[res.ID]
	if !ok {
		return reservations.ErrNotFound
	}
	if current.Version != expectedVersion {
		return reservations.ErrVersionConflict
	}
	res.CreatedAt = current.CreatedAt
	r.byID[res.ID] = stripJoins(res)
	return nil
}

func (r *reservationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return reservations.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *reservationRepo) List(ctx context.Context, q reservations.Query) ([]reservations.Reservation, error) {
	all, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]reservations.Reservation, 0, len(all))
	for _, res := range all {
		if q.OwnerUserID != "" && res.OwnerUserID != q.OwnerUserID {
			continue
		}
		if q.StatusName != "" && !strings.EqualFold(res.StatusName, q.StatusName) {
			continue
		}
		out = append(out, res)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	if q.Offset > 0 {
		if q.Offset >= len(out) {
			return []reservations.Reservation{}, nil
		}
		out = out[q.Offset:]
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *reservationRepo) CountBy(ctx context.Context, g reservations.GroupBy) ([]reservations.Count, error) {
	all, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*reservations.Count)
	order := make([]string, 0)
	for _, res := range all {
		id, name := res.PetID, res.PetName
		if g == reservations.GroupByUser {
			id = res.OwnerUserID
			name = r.ownerName(ctx, res.PetID)
		}
		c, ok := byKey[id]
		if !ok {
			c = &reservations.Count{ItemID: id, ItemName: name}
			byKey[id] = c
			order = append(order, id)
		}
		c.Total++
	}

	out := make([]reservations.Count, 0, len(byKey))
	for _, id := range order {
		out = append(out, *byKey[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out, nil
}

// snapshot copia las filas bajo lock y después arma los joins.
func (r *reservationRepo) snapshot(ctx context.Context) ([]reservations.Reservation, error) {
	r.mu.RLock()
	rows := make([]reservations.Reservation, 0, len(r.byID))
	for _, res := range r.byID {
		rows = append(rows, res)
	}
	r.mu.RUnlock()

	out := make([]reservations.Reservation, 0, len(rows))
	for _, res := range rows {
		joined, ok, err := r.join(ctx, res)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, joined)
		}
	}
	return out, nil
}

func (r *reservationRepo) join(ctx context.Context, res reservations.Reservation) (reservations.Reservation, bool, error) {
	p, err := r.pets.GetByID(ctx, res.PetID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return reservations.Reservation{}, false, nil
		}
		return reservations.Reservation{}, false, err
	}
	res.PetName = p.Name
	res.OwnerUserID = p.OwnerUserID

	if res.StatusID != "" {
		st, err := r.statuses.GetByID(ctx, res.StatusID)
		switch {
		case err == nil:
			res.StatusName = st.Name
		case errors.Is(err, reservations.ErrNotFound):
			res.StatusID = ""
		default:
			return reservations.Reservation{}, false, err
		}
	}
	return res, true, nil
}

func (r *reservationRepo) ownerName(ctx context.Context, petID string) string {
	p, err := r.pets.GetByID(ctx, petID)
	if err != nil {
		return ""
	}
	if p.OwnerUsername != "" {
		return p.OwnerUsername
	}
	return p.OwnerUserID
}

func stripJoins(res reservations.Reservation) reservations.Reservation {
	res.PetName = ""
	res.OwnerUserID = ""
	res.StatusName = ""
	return res
}
