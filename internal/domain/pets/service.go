package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownPetType  = errors.New("unknown pet type")
	ErrPetTypeRequired = errors.New("pet_type_id required")
)

type Service struct {
	repo  Repository
	types TypeRepository
	now   func() time.Time
}

func NewService(repo Repository, types TypeRepository) *Service {
	return &Service{
		repo:  repo,
		types: types,
		now:   time.Now,
	}
}

type CreateInput struct {
	Name        string
	Age         int
	PetTypeID   string
	Breed       string
	Description string
	PhotoURL    string
}

type UpdateInput struct {
	// nil = no tocar
	Name        *string
	Age         *int
	PetTypeID   *string
	Breed       *string
	Description *string
	PhotoURL    *string
}

func (s *Service) Create(ctx context.Context, ownerUserID, ownerUsername string, in CreateInput) (Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}

	pt, err := s.resolveType(ctx, in.PetTypeID)
	if err != nil {
		return Pet{}, err
	}

	username := strings.TrimSpace(ownerUsername)
	if username == "" {
		username = ownerUserID
	}

	now := s.now()
	p := Pet{
		ID:            uuid.NewString(),
		OwnerUserID:   ownerUserID,
		OwnerUsername: username,
		Name:          strings.TrimSpace(in.Name),
		Age:           in.Age,
		PetTypeID:     pt.ID,
		PetTypeName:   pt.Name,
		Breed:         strings.TrimSpace(in.Breed),
		Description:   strings.TrimSpace(in.Description),
		PhotoURL:      strings.TrimSpace(in.PhotoURL),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Update aplica un PATCH sobre una mascota propia.
func (s *Service) Update(ctx context.Context, petID, userID string, in UpdateInput) (Pet, error) {
	p, err := s.ResolveOwned(ctx, petID, userID)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = *in.Age
	}
	if in.PetTypeID != nil {
		pt, err := s.resolveType(ctx, *in.PetTypeID)
		if err != nil {
			return Pet{}, err
		}
		p.PetTypeID = pt.ID
		p.PetTypeName = pt.Name
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.PhotoURL != nil {
		p.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Delete borra la mascota; sus reservas caen en cascada (postgres).
func (s *Service) Delete(ctx context.Context, petID, userID string) error {
	if _, err := s.ResolveOwned(ctx, petID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, petID)
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// ListAll es solo para administradores (lo controla el router).
func (s *Service) ListAll(ctx context.Context) ([]Pet, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) CountByOwner(ctx context.Context) ([]OwnerPetCount, error) {
	return s.repo.CountByOwner(ctx)
}

func (s *Service) ListTypes(ctx context.Context) ([]PetType, error) {
	return s.types.List(ctx)
}

// SeedTypes crea los tipos por defecto que falten (idempotente).
func (s *Service) SeedTypes(ctx context.Context, names ...string) error {
	existing, err := s.types.List(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		have[strings.ToLower(t.Name)] = struct{}{}
	}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := have[strings.ToLower(n)]; ok {
			continue
		}
		if err := s.types.Create(ctx, PetType{ID: uuid.NewString(), Name: n}); err != nil {
			return err
		}
		have[strings.ToLower(n)] = struct{}{}
	}
	return nil
}

func (s *Service) resolveType(ctx context.Context, id string) (PetType, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return PetType{}, ErrPetTypeRequired
	}
	pt, err := s.types.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return PetType{}, ErrUnknownPetType
		}
		return PetType{}, err
	}
	return pt, nil
}
