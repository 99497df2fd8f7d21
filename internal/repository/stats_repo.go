package repository

import (
	"context"
	"database/sql"
	"fmt"

	"roombooking/internal/db"
)

// StatsRepository serves the aggregate queries behind the cron job.
type StatsRepository struct {
	DB *sql.DB
}

func NewStatsRepository(database *sql.DB) *StatsRepository {
	return &StatsRepository{DB: database}
}

// CountActiveByRoom counts active reservations that have not yet ended,
// grouped per room.
func (r *StatsRepository) CountActiveByRoom(ctx context.Context) ([]db.RoomOccupancy, error) {
	query := `
		SELECT room_id, COUNT(id)
		FROM reservations
		WHERE status = 'active' AND end_time >= NOW()
		GROUP BY room_id
		ORDER BY room_id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying room occupancy: %w", err)
	}
	defer rows.Close()

	var occupancies []db.RoomOccupancy
	for rows.Next() {
		var o db.RoomOccupancy
		if err := rows.Scan(&o.RoomID, &o.Active); err != nil {
			return nil, fmt.Errorf("error scanning room occupancy: %w", err)
		}
		occupancies = append(occupancies, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating occupancy rows: %w", err)
	}
	return occupancies, nil
}
