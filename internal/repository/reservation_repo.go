package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roombooking/internal/db"
)

// ReservationRepository is the Postgres-backed reservation store.
type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

const reservationColumns = `id, room_id, user_id, start_time, end_time, status, created_at, updated_at`

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	var res db.Reservation
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&res.ID, &res.RoomID, &res.UserID, &res.StartTime, &res.EndTime,
		&res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying reservation %s: %w", id, err)
	}
	return &res, nil
}

func (r *ReservationRepository) FindAll(ctx context.Context) ([]db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY start_time`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// FindOverlapping applies the closed-interval overlap predicate in a single
// inequality pair: touching endpoints count as overlap.
func (r *ReservationRepository) FindOverlapping(ctx context.Context, roomID string, status db.ReservationStatus, start, end time.Time, excludeID string) ([]db.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE room_id = $1
		  AND status = $2
		  AND start_time <= $3
		  AND end_time >= $4
		  AND ($5 = '' OR id <> $5)
		ORDER BY start_time`

	rows, err := r.DB.QueryContext(ctx, query, roomID, string(status), end, start, excludeID)
	if err != nil {
		return nil, fmt.Errorf("error querying overlapping reservations: %w", err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

func (r *ReservationRepository) FindActiveFrom(ctx context.Context, roomID string, status db.ReservationStatus, after time.Time) ([]db.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE room_id = $1 AND status = $2 AND start_time > $3
		ORDER BY start_time`

	rows, err := r.DB.QueryContext(ctx, query, roomID, string(status), after)
	if err != nil {
		return nil, fmt.Errorf("error querying upcoming reservations: %w", err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Save inserts on first save (assigning the id) and updates the mutable
// columns afterwards.
func (r *ReservationRepository) Save(ctx context.Context, res *db.Reservation) (*db.Reservation, error) {
	if res.ID == "" {
		res.ID = uuid.New().String()
		query := `
			INSERT INTO reservations (id, room_id, user_id, start_time, end_time, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			RETURNING created_at, updated_at`
		err := r.DB.QueryRowContext(ctx, query,
			res.ID, res.RoomID, res.UserID, res.StartTime, res.EndTime, string(res.Status),
		).Scan(&res.CreatedAt, &res.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error inserting reservation: %w", err)
		}
		return res, nil
	}

	query := `
		UPDATE reservations
		SET start_time = $2, end_time = $3, status = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		res.ID, res.StartTime, res.EndTime, string(res.Status),
	).Scan(&res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reservation %s disappeared during save", res.ID)
		}
		return nil, fmt.Errorf("error updating reservation %s: %w", res.ID, err)
	}
	return res, nil
}

func scanReservations(rows *sql.Rows) ([]db.Reservation, error) {
	var reservations []db.Reservation
	for rows.Next() {
		var res db.Reservation
		if err := rows.Scan(
			&res.ID, &res.RoomID, &res.UserID, &res.StartTime, &res.EndTime,
			&res.Status, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservation rows: %w", err)
	}
	return reservations, nil
}
