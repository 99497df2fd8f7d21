package service

import (
	"context"
	"fmt"
	"time"

	"roombooking/internal/db"
)

// AvailabilityCalendar derives a forward-looking free/booked calendar for a
// room. It is a pure projection of stored state and "now"; two calls with
// no intervening writes return identical sequences.
type AvailabilityCalendar struct {
	store ReservationStore
}

func NewAvailabilityCalendar(store ReservationStore) *AvailabilityCalendar {
	return &AvailabilityCalendar{store: store}
}

// Build returns horizonDays-1 consecutive days starting at tomorrow, each
// marked booked if any active reservation of roomID touches that calendar
// date. Marking works on whole dates, so a reservation ending at 23:59:59
// still books its last day.
func (c *AvailabilityCalendar) Build(ctx context.Context, roomID string, now time.Time, horizonDays int) ([]db.AvailabilityDay, error) {
	today := startOfDay(now)

	reservations, err := c.store.FindActiveFrom(ctx, roomID, db.StatusActive, today)
	if err != nil {
		return nil, fmt.Errorf("querying upcoming reservations: %w", err)
	}

	booked := make(map[string]struct{})
	for _, r := range reservations {
		// Dates are taken in the caller's location so a stored UTC instant
		// lands on the same calendar day the caller booked.
		day := startOfDay(r.StartTime.In(now.Location()))
		last := startOfDay(r.EndTime.In(now.Location()))
		for !day.After(last) {
			booked[dateKey(day)] = struct{}{}
			day = day.AddDate(0, 0, 1)
		}
	}

	calendar := make([]db.AvailabilityDay, 0, horizonDays-1)
	day := today.AddDate(0, 0, 1)
	for i := 1; i < horizonDays; i++ {
		status := db.DayFree
		if _, ok := booked[dateKey(day)]; ok {
			status = db.DayBooked
		}
		calendar = append(calendar, db.AvailabilityDay{Day: day, Status: status})
		day = day.AddDate(0, 0, 1)
	}

	return calendar, nil
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
