package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-boarding/internal/domain/reservations"
)

type StatusesRepo struct {
	db *sql.DB
}

func NewStatusesRepo(db *sql.DB) *StatusesRepo {
	return &StatusesRepo{db: db}
}

func (r *StatusesRepo) List(ctx context.Context) ([]reservations.Status, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM reservation_statuses ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reservations.Status, 0)
	for rows.Next() {
		var st reservations.Status
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *StatusesRepo) GetByID(ctx context.Context, id string) (reservations.Status, error) {
	if !validID(id) {
		return reservations.Status{}, reservations.ErrNotFound
	}
	return r.get(ctx, `SELECT id, name FROM reservation_statuses WHERE id = $1`, strings.TrimSpace(id))
}

func (r *StatusesRepo) GetByName(ctx context.Context, name string) (reservations.Status, error) {
	return r.get(ctx, `SELECT id, name FROM reservation_statuses WHERE lower(name) = lower($1)`, strings.TrimSpace(name))
}

func (r *StatusesRepo) Create(ctx context.Context, st reservations.Status) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO reservation_statuses (id, name) VALUES ($1, $2)`, st.ID, st.Name)
	if isUniqueViolation(err) {
		return reservations.ErrDuplicateStatus
	}
	return err
}

func (r *StatusesRepo) get(ctx context.Context, q string, arg string) (reservations.Status, error) {
	var st reservations.Status
	if err := r.db.QueryRowContext(ctx, q, arg).Scan(&st.ID, &st.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reservations.Status{}, reservations.ErrNotFound
		}
		return reservations.Status{}, err
	}
	return st, nil
}
