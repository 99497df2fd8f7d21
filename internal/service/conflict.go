package service

import (
	"context"
	"fmt"
	"time"

	"roombooking/internal/db"
)

// ConflictDetector answers whether a candidate interval overlaps any active
// reservation on a room. Intervals are closed: a reservation ending at the
// exact instant another starts still conflicts.
type ConflictDetector struct {
	store ReservationStore
}

func NewConflictDetector(store ReservationStore) *ConflictDetector {
	return &ConflictDetector{store: store}
}

// HasConflict queries active reservations of roomID satisfying
// existing.start <= end && existing.end >= start, excluding excludeID when
// non-empty. The single inequality pair covers all partial-overlap shapes;
// splitting it into range scans reopens boundary gaps.
func (d *ConflictDetector) HasConflict(ctx context.Context, roomID, excludeID string, start, end time.Time) (bool, error) {
	overlapping, err := d.store.FindOverlapping(ctx, roomID, db.StatusActive, start, end, excludeID)
	if err != nil {
		return false, fmt.Errorf("querying overlapping reservations: %w", err)
	}
	return len(overlapping) > 0, nil
}
