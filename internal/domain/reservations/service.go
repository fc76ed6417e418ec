package reservations

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"pet-boarding/internal/domain/history"
	"pet-boarding/internal/platform/logger"
	"pet-boarding/internal/ports/notify"

	"github.com/google/uuid"
)

const maxStatusNameLen = 30

type Service struct {
	repo     Repository
	statuses StatusRepository
	pets     PetLookup

	history   HistoryStore
	publisher notify.Publisher
	log       logger.Logger

	now func() time.Time
	loc *time.Location

	known wellKnown
}

type Option func(*Service)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation fija la zona usada para calcular "hoy".
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithHistory(h HistoryStore) Option {
	return func(s *Service) { s.history = h }
}

func WithPublisher(p notify.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

func NewService(repo Repository, statuses StatusRepository, pets PetLookup, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		statuses:  statuses,
		pets:      pets,
		publisher: notify.Noop{},
		log:       logger.Nop(),
		now:       time.Now,
		loc:       time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	PetID        string
	StatusID     string // vacío => Pending
	StartDate    time.Time
	EndDate      time.Time
	Observations string
}

type UpdateInput struct {
	// nil = no tocar
	PetID        *string
	StatusID     *string
	StartDate    *time.Time
	EndDate      *time.Time
	Observations *string

	// Si viene, debe coincidir con la versión guardada.
	Version *int
}

// Create reserva una mascota propia. Orden de validación:
// dueño de la mascota -> estado -> rango de fechas -> no retroactiva.
func (s *Service) Create(ctx context.Context, actor Actor, in CreateInput) (Reservation, error) {
	if err := requireActor(actor); err != nil {
		return Reservation{}, err
	}

	petID := strings.TrimSpace(in.PetID)
	if petID == "" {
		return Reservation{}, invalid("pet_id", "required")
	}
	if err := s.checkPetOwner(ctx, actor, petID); err != nil {
		return Reservation{}, err
	}

	var st Status
	var err error
	if id := strings.TrimSpace(in.StatusID); id != "" {
		st, err = s.resolveStatus(ctx, id)
	} else {
		st, err = s.wellKnownStatus(ctx, StatusPending)
	}
	if err != nil {
		return Reservation{}, err
	}

	if in.StartDate.IsZero() {
		return Reservation{}, invalid("start_date", "required")
	}
	if in.EndDate.IsZero() {
		return Reservation{}, invalid("end_date", "required")
	}
	start, end := DateOf(in.StartDate), DateOf(in.EndDate)
	if start.After(end) {
		return Reservation{}, invalid("end_date", "end_date must be on or after start_date")
	}
	if start.Before(s.today()) {
		return Reservation{}, invalid("start_date", "start_date cannot be in the past")
	}

	now := s.now().UTC()
	r := Reservation{
		ID:           uuid.NewString(),
		PetID:        petID,
		StatusID:     st.ID,
		StartDate:    start,
		EndDate:      end,
		Observations: strings.TrimSpace(in.Observations),
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return Reservation{}, err
	}

	saved, err := s.repo.GetByID(ctx, r.ID)
	if err != nil {
		return Reservation{}, err
	}
	s.afterWrite(ctx, history.EntryCreated, actor, saved)
	return saved, nil
}

// Update aplica solo los campos presentes. No hay restricción de fechas pasadas.
func (s *Service) Update(ctx context.Context, actor Actor, id string, in UpdateInput) (Reservation, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return Reservation{}, err
	}
	if err := s.authorize(ctx, actor, r); err != nil {
		return Reservation{}, err
	}
	if in.Version != nil && *in.Version != r.Version {
		return Reservation{}, &FieldError{Kind: ErrVersionConflict, Field: "version", Message: "reservation was modified by another request"}
	}

	if in.PetID != nil {
		petID := strings.TrimSpace(*in.PetID)
		if petID == "" {
			return Reservation{}, invalid("pet_id", "cannot be empty")
		}
		if petID != r.PetID {
			if err := s.checkPetOwner(ctx, actor, petID); err != nil {
				return Reservation{}, err
			}
		}
		r.PetID = petID
	}

	if in.StatusID != nil {
		st, err := s.resolveStatus(ctx, strings.TrimSpace(*in.StatusID))
		if err != nil {
			return Reservation{}, err
		}
		r.StatusID = st.ID
	}

	if in.StartDate != nil {
		r.StartDate = DateOf(*in.StartDate)
	}
	if in.EndDate != nil {
		r.EndDate = DateOf(*in.EndDate)
	}
	if r.StartDate.After(r.EndDate) {
		return Reservation{}, invalid("end_date", "end_date must be on or after start_date")
	}

	if in.Observations != nil {
		r.Observations = strings.TrimSpace(*in.Observations)
	}

	saved, err := s.save(ctx, r)
	if err != nil {
		return Reservation{}, err
	}
	s.afterWrite(ctx, history.EntryUpdated, actor, saved)
	return saved, nil
}

// Cancel pasa la reserva a Cancelled. El orden de los chequeos define qué error ve el caller:
// existencia -> dueño -> ya empezó -> configuración -> ya cancelada -> transición.
// changed=false cuando la reserva ya estaba cancelada.
func (s *Service) Cancel(ctx context.Context, actor Actor, id string) (Reservation, bool, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return Reservation{}, false, err
	}

	// solo el dueño; los administradores no cancelan por otros
	owner, err := s.pets.OwnerOf(ctx, r.PetID)
	if err != nil {
		return Reservation{}, false, err
	}
	if actor.UserID == "" || owner != actor.UserID {
		return Reservation{}, false, forbidden("", "only the pet owner can cancel this reservation")
	}

	if !r.StartDate.After(s.today()) {
		return Reservation{}, false, invalid("start_date", "reservation already started or in progress")
	}

	cancelled, err := s.wellKnownStatus(ctx, StatusCancelled)
	if err != nil {
		return Reservation{}, false, err
	}

	if r.StatusID == cancelled.ID {
		return r, false, nil
	}

	r.StatusID = cancelled.ID
	saved, err := s.save(ctx, r)
	if err != nil {
		return Reservation{}, false, err
	}
	s.afterWrite(ctx, history.EntryCancelled, actor, saved)
	return saved, true, nil
}

// List devuelve una foto ordenada por start_date, created_at, id.
// Los administradores ven todo y pueden filtrar por estado; el resto solo ve sus mascotas.
func (s *Service) List(ctx context.Context, actor Actor, f ListFilter) ([]Reservation, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if f.Limit < 0 {
		return nil, invalid("limit", "must be >= 0")
	}
	if f.Offset < 0 {
		return nil, invalid("offset", "must be >= 0")
	}

	q := Query{Limit: f.Limit, Offset: f.Offset}
	if actor.Admin {
		q.StatusName = strings.TrimSpace(f.Status)
	} else {
		q.OwnerUserID = actor.UserID
	}

	items, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Reservation{}
	}
	return items, nil
}

// Analytics cuenta todas las reservas por mascota o por dueño. Solo administradores.
func (s *Service) Analytics(ctx context.Context, actor Actor, groupBy string) ([]Count, error) {
	if !actor.Admin {
		return nil, forbidden("", "administrator privileges required")
	}
	g, ok := ParseGroupBy(groupBy)
	if !ok {
		return nil, invalid("by", `must be "pet" or "user"`)
	}

	counts, err := s.repo.CountBy(ctx, g)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Total != counts[j].Total {
			return counts[i].Total > counts[j].Total
		}
		if counts[i].ItemName != counts[j].ItemName {
			return counts[i].ItemName < counts[j].ItemName
		}
		return counts[i].ItemID < counts[j].ItemID
	})
	if counts == nil {
		counts = []Count{}
	}
	return counts, nil
}

func (s *Service) Get(ctx context.Context, actor Actor, id string) (Reservation, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return Reservation{}, err
	}
	if err := s.authorize(ctx, actor, r); err != nil {
		return Reservation{}, err
	}
	return r, nil
}

// Delete borra la fila definitivamente.
func (s *Service) Delete(ctx context.Context, actor Actor, id string) error {
	r, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, r.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound("id", "reservation not found")
		}
		return err
	}
	s.afterWrite(ctx, history.EntryDeleted, actor, r)
	return nil
}

// History devuelve el historial de la reserva (más reciente primero), con el mismo acceso que Get.
func (s *Service) History(ctx context.Context, actor Actor, id string) ([]history.Entry, error) {
	r, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if s.history == nil {
		return []history.Entry{}, nil
	}
	return s.history.ListByReservation(ctx, r.ID)
}

func (s *Service) ListStatuses(ctx context.Context) ([]Status, error) {
	return s.statuses.List(ctx)
}

func (s *Service) GetStatus(ctx context.Context, id string) (Status, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Status{}, notFound("id", "status not found")
	}
	st, err := s.statuses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Status{}, notFound("id", "status not found")
		}
		return Status{}, err
	}
	return st, nil
}

// CreateStatus agrega un nombre al vocabulario (único sin distinguir mayúsculas).
func (s *Service) CreateStatus(ctx context.Context, actor Actor, name string) (Status, error) {
	if !actor.Admin {
		return Status{}, forbidden("", "administrator privileges required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Status{}, invalid("name", "required")
	}
	if utf8.RuneCountInString(name) > maxStatusNameLen {
		return Status{}, invalid("name", "must be at most 30 characters")
	}

	if _, err := s.statuses.GetByName(ctx, name); err == nil {
		return Status{}, &FieldError{Kind: ErrDuplicateStatus, Field: "name", Message: "status name already exists"}
	} else if !errors.Is(err, ErrNotFound) {
		return Status{}, err
	}

	st := Status{ID: uuid.NewString(), Name: name}
	if err := s.statuses.Create(ctx, st); err != nil {
		return Status{}, err
	}
	if isWellKnown(name) {
		s.known.put(name, st)
	}
	return st, nil
}

// SeedStatuses crea los nombres que falten (idempotente) y resuelve los conocidos.
func (s *Service) SeedStatuses(ctx context.Context, names ...string) error {
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		_, err := s.statuses.GetByName(ctx, n)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		if err := s.statuses.Create(ctx, Status{ID: uuid.NewString(), Name: n}); err != nil && !errors.Is(err, ErrDuplicateStatus) {
			return err
		}
	}
	return s.ResolveWellKnown(ctx)
}

func (s *Service) today() time.Time {
	return DateOf(s.now().In(s.loc))
}

func (s *Service) logger(ctx context.Context) logger.Logger {
	return logger.FromContext(ctx, s.log)
}

func (s *Service) load(ctx context.Context, id string) (Reservation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Reservation{}, notFound("id", "reservation not found")
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Reservation{}, notFound("id", "reservation not found")
		}
		return Reservation{}, err
	}
	return r, nil
}

// authorize: administrador, o dueño actual de la mascota de la reserva.
// El dueño se vuelve a consultar en cada llamada.
func (s *Service) authorize(ctx context.Context, actor Actor, r Reservation) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if actor.Admin {
		return nil
	}
	owner, err := s.pets.OwnerOf(ctx, r.PetID)
	if err != nil {
		return err
	}
	if owner != actor.UserID {
		return forbidden("", "reservation belongs to another user")
	}
	return nil
}

func (s *Service) checkPetOwner(ctx context.Context, actor Actor, petID string) error {
	owner, err := s.pets.OwnerOf(ctx, petID)
	if err != nil {
		return err
	}
	if owner == "" || owner != actor.UserID {
		return forbidden("pet_id", "pet not found or not owned by the requesting user")
	}
	return nil
}

func (s *Service) resolveStatus(ctx context.Context, id string) (Status, error) {
	if id == "" {
		return Status{}, notFound("status_id", "status does not exist")
	}
	st, err := s.statuses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Status{}, notFound("status_id", "status does not exist")
		}
		return Status{}, err
	}
	return st, nil
}

// save incrementa la versión y escribe condicionado a la versión leída.
func (s *Service) save(ctx context.Context, r Reservation) (Reservation, error) {
	expected := r.Version
	r.Version = expected + 1
	r.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, r, expected); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Reservation{}, notFound("id", "reservation not found")
		}
		return Reservation{}, err
	}
	return s.repo.GetByID(ctx, r.ID)
}

var eventFor = map[history.EntryType]notify.EventType{
	history.EntryCreated:   notify.EventReservationCreated,
	history.EntryUpdated:   notify.EventReservationUpdated,
	history.EntryCancelled: notify.EventReservationCancelled,
	history.EntryDeleted:   notify.EventReservationDeleted,
}

// afterWrite registra historial y publica el evento. Los fallos solo se loguean.
func (s *Service) afterWrite(ctx context.Context, typ history.EntryType, actor Actor, r Reservation) {
	l := s.logger(ctx).With(map[string]any{
		"reservation_id": r.ID,
		"change":         string(typ),
	})

	if s.history != nil {
		if _, err := s.history.Record(ctx, history.Entry{
			ReservationID: r.ID,
			Type:          typ,
			OccurredAt:    s.now().UTC(),
			ActorUserID:   actor.UserID,
			ActorAdmin:    actor.Admin,
			StatusName:    r.StatusName,
		}); err != nil {
			l.Warn("history record failed", map[string]any{"error": err})
		}
	}

	ev := notify.ReservationEvent{
		Type:          eventFor[typ],
		ReservationID: r.ID,
		PetID:         r.PetID,
		OwnerUserID:   r.OwnerUserID,
		ActorUserID:   actor.UserID,
		Status:        r.StatusName,
		StartDate:     FormatDate(r.StartDate),
		EndDate:       FormatDate(r.EndDate),
		OccurredAt:    s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		l.Warn("reservation event publish failed", map[string]any{"error": err})
	}
}

func requireActor(actor Actor) error {
	if strings.TrimSpace(actor.UserID) == "" {
		return forbidden("", "authentication required")
	}
	return nil
}
