package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-boarding/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	p.id, p.owner_user_id, p.owner_username,
	p.name, p.age, p.pet_type_id, t.name,
	p.breed, p.description, p.photo_url,
	p.created_at, p.updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, owner_user_id, owner_username,
			name, age, pet_type_id,
			breed, description, photo_url,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		p.OwnerUserID,
		p.OwnerUsername,
		p.Name,
		p.Age,
		p.PetTypeID,
		p.Breed,
		p.Description,
		p.PhotoURL,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	if !validID(p.ID) {
		return pets.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			age = $3,
			pet_type_id = $4,
			breed = $5,
			description = $6,
			photo_url = $7,
			updated_at = $8
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Age,
		p.PetTypeID,
		p.Breed,
		p.Description,
		p.PhotoURL,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

// Delete borra la mascota; las reservas caen por ON DELETE CASCADE.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return pets.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if !validID(id) {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT`+petColumns+`
		FROM pets p
		JOIN pet_types t ON t.id = p.pet_type_id
		WHERE p.id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return []pets.Pet{}, nil
	}
	return r.query(ctx, `
		SELECT`+petColumns+`
		FROM pets p
		JOIN pet_types t ON t.id = p.pet_type_id
		WHERE p.owner_user_id = $1
		ORDER BY p.created_at ASC, p.id ASC
	`, ownerUserID)
}

func (r *PetsRepo) ListAll(ctx context.Context) ([]pets.Pet, error) {
	return r.query(ctx, `
		SELECT`+petColumns+`
		FROM pets p
		JOIN pet_types t ON t.id = p.pet_type_id
		ORDER BY p.created_at ASC, p.id ASC
	`)
}

func (r *PetsRepo) CountByOwner(ctx context.Context) ([]pets.OwnerPetCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT owner_user_id, MAX(owner_username), COUNT(*)
		FROM pets
		GROUP BY owner_user_id
		ORDER BY MAX(owner_username) ASC, owner_user_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.OwnerPetCount, 0)
	for rows.Next() {
		var c pets.OwnerPetCount
		if err := rows.Scan(&c.UserID, &c.Username, &c.PetCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PetsRepo) query(ctx context.Context, q string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var p pets.Pet
	err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.OwnerUsername,
		&p.Name,
		&p.Age,
		&p.PetTypeID,
		&p.PetTypeName,
		&p.Breed,
		&p.Description,
		&p.PhotoURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

type PetTypesRepo struct {
	db *sql.DB
}

func NewPetTypesRepo(db *sql.DB) *PetTypesRepo {
	return &PetTypesRepo{db: db}
}

func (r *PetTypesRepo) List(ctx context.Context) ([]pets.PetType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM pet_types ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.PetType, 0)
	for rows.Next() {
		var t pets.PetType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PetTypesRepo) GetByID(ctx context.Context, id string) (pets.PetType, error) {
	if !validID(id) {
		return pets.PetType{}, pets.ErrNotFound
	}
	var t pets.PetType
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM pet_types WHERE id = $1`, strings.TrimSpace(id)).
		Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.PetType{}, pets.ErrNotFound
		}
		return pets.PetType{}, err
	}
	return t, nil
}

func (r *PetTypesRepo) Create(ctx context.Context, t pets.PetType) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO pet_types (id, name) VALUES ($1, $2)`, t.ID, t.Name)
	return err
}
