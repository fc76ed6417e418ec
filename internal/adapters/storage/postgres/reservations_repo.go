package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-boarding/internal/domain/reservations"
)

type ReservationsRepo struct {
	db *sql.DB
}

func NewReservationsRepo(db *sql.DB) *ReservationsRepo {
	return &ReservationsRepo{db: db}
}

const reservationSelect = `
	SELECT
		r.id, r.pet_id, r.status_id,
		r.start_date, r.end_date, r.observations,
		r.version, r.created_at, r.updated_at,
		p.name, p.owner_user_id, s.name
	FROM reservations r
	JOIN pets p ON p.id = r.pet_id
	LEFT JOIN reservation_statuses s ON s.id = r.status_id`

func (r *ReservationsRepo) Create(ctx context.Context, res reservations.Reservation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reservations (
			id, pet_id, status_id,
			start_date, end_date, observations,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		res.ID,
		res.PetID,
		nullString(res.StatusID),
		res.StartDate,
		res.EndDate,
		res.Observations,
		res.Version,
		res.CreatedAt,
		res.UpdatedAt,
	)
	return err
}

func (r *ReservationsRepo) GetByID(ctx context.Context, id string) (reservations.Reservation, error) {
	id = strings.TrimSpace(id)
	if !validID(id) {
		return reservations.Reservation{}, reservations.ErrNotFound
	}

	res, err := scanReservation(r.db.QueryRowContext(ctx, reservationSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reservations.Reservation{}, reservations.ErrNotFound
		}
		return reservations.Reservation{}, err
	}
	return res, nil
}

// Update escribe solo si la fila sigue en expectedVersion.
func (r *ReservationsRepo) Update(ctx context.Context, res reservations.Reservation, expectedVersion int) error {
	if !validID(res.ID) {
		return reservations.ErrNotFound
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE reservations
		SET
			pet_id = $3,
			status_id = $4,
			start_date = $5,
			end_date = $6,
			observations = $7,
			version = $8,
			updated_at = $9
		WHERE id = $1 AND version = $2
	`,
		res.ID,
		expectedVersion,
		res.PetID,
		nullString(res.StatusID),
		res.StartDate,
		res.EndDate,
		res.Observations,
		res.Version,
		res.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 1 {
		return nil
	}

	// 0 filas: o no existe o cambió la versión
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, res.ID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return reservations.ErrNotFound
	}
	return reservations.ErrVersionConflict
}

func (r *ReservationsRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return reservations.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reservations.ErrNotFound
	}
	return nil
}

func (r *ReservationsRepo) List(ctx context.Context, q reservations.Query) ([]reservations.Reservation, error) {
	sb := strings.Builder{}
	sb.WriteString(reservationSelect)
	sb.WriteString(" WHERE TRUE")

	args := []any{}
	argN := 1

	if q.OwnerUserID != "" {
		sb.WriteString(fmt.Sprintf(" AND p.owner_user_id = $%d", argN))
		args = append(args, q.OwnerUserID)
		argN++
	}
	if name := strings.TrimSpace(q.StatusName); name != "" {
		sb.WriteString(fmt.Sprintf(" AND lower(s.name) = lower($%d)", argN))
		args = append(args, name)
		argN++
	}

	sb.WriteString(" ORDER BY r.start_date ASC, r.created_at ASC, r.id ASC")

	if q.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, q.Limit)
		argN++
	}
	if q.Offset > 0 {
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", argN))
		args = append(args, q.Offset)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reservations.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *ReservationsRepo) CountBy(ctx context.Context, g reservations.GroupBy) ([]reservations.Count, error) {
	var q string
	switch g {
	case reservations.GroupByPet:
		q = `
			SELECT p.id::text, p.name, COUNT(*)
			FROM reservations r
			JOIN pets p ON p.id = r.pet_id
			GROUP BY p.id, p.name
			ORDER BY COUNT(*) DESC, p.name ASC`
	case reservations.GroupByUser:
		q = `
			SELECT p.owner_user_id,
			       COALESCE(NULLIF(MAX(p.owner_username), ''), p.owner_user_id),
			       COUNT(*)
			FROM reservations r
			JOIN pets p ON p.id = r.pet_id
			GROUP BY p.owner_user_id
			ORDER BY COUNT(*) DESC, 2 ASC`
	default:
		return nil, fmt.Errorf("postgres: unsupported group by %q", g)
	}

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reservations.Count, 0)
	for rows.Next() {
		var c reservations.Count
		if err := rows.Scan(&c.ItemID, &c.ItemName, &c.Total); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanReservation(s scanner) (reservations.Reservation, error) {
	var res reservations.Reservation
	var statusID, statusName sql.NullString
	if err := s.Scan(
		&res.ID,
		&res.PetID,
		&statusID,
		&res.StartDate,
		&res.EndDate,
		&res.Observations,
		&res.Version,
		&res.CreatedAt,
		&res.UpdatedAt,
		&res.PetName,
		&res.OwnerUserID,
		&statusName,
	); err != nil {
		return reservations.Reservation{}, err
	}

	res.StatusID = statusID.String
	res.StatusName = statusName.String
	// DATE llega como medianoche UTC; lo normalizamos igual por si el driver trae zona
	res.StartDate = reservations.DateOf(res.StartDate)
	res.EndDate = reservations.DateOf(res.EndDate)
	return res, nil
}

func nullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
