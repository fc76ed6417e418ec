package postgres

import (
	"context"
	"database/sql"

	"pet-boarding/internal/domain/history"
)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Create(ctx context.Context, e history.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reservation_history (
			id, reservation_id,
			type, occurred_at,
			actor_user_id, actor_admin,
			status_name, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		e.ID,
		e.ReservationID,
		string(e.Type),
		e.OccurredAt,
		e.ActorUserID,
		e.ActorAdmin,
		e.StatusName,
		e.Notes,
	)
	return err
}

func (r *HistoryRepo) ListByReservation(ctx context.Context, reservationID string) ([]history.Entry, error) {
	if !validID(reservationID) {
		return []history.Entry{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, reservation_id,
			type, occurred_at,
			actor_user_id, actor_admin,
			status_name, notes
		FROM reservation_history
		WHERE reservation_id = $1
		ORDER BY occurred_at DESC, id DESC
	`, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]history.Entry, 0)
	for rows.Next() {
		var e history.Entry
		var typ string
		if err := rows.Scan(
			&e.ID,
			&e.ReservationID,
			&typ,
			&e.OccurredAt,
			&e.ActorUserID,
			&e.ActorAdmin,
			&e.StatusName,
			&e.Notes,
		); err != nil {
			return nil, err
		}
		e.Type = history.EntryType(typ)
		out = append(out, e)
	}
	return out, rows.Err()
}
