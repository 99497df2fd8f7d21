package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombooking/internal/db"
)

func TestAvailabilityCalendar_Build(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	start, end := interval(5, 7)
	store.seed(db.Reservation{
		RoomID:    "room-1",
		StartTime: start,
		EndTime:   end,
		Status:    db.StatusActive,
	})

	calendar := NewAvailabilityCalendar(store)

	days, err := calendar.Build(ctx, "room-1", testNow, 30)
	require.NoError(t, err)

	require.Len(t, days, 29)
	assert.Equal(t, day(1), days[0].Day, "calendar starts at tomorrow")

	for _, d := range days {
		offset := daysBetween(day(0), d.Day)
		if offset >= 5 && offset <= 7 {
			assert.Equal(t, db.DayBooked, d.Status, "day %d should be booked", offset)
		} else {
			assert.Equal(t, db.DayFree, d.Status, "day %d should be free", offset)
		}
	}
}

// A reservation ending at 23:59:59 still books its final calendar day.
func TestAvailabilityCalendar_LateEndBooksWholeDay(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	store.seed(db.Reservation{
		RoomID:    "room-1",
		StartTime: day(4),
		EndTime:   day(4).Add(24*time.Hour - time.Second),
		Status:    db.StatusActive,
	})

	calendar := NewAvailabilityCalendar(store)

	days, err := calendar.Build(ctx, "room-1", testNow, 10)
	require.NoError(t, err)

	assert.Equal(t, db.DayBooked, days[3].Status) // day 4
	assert.Equal(t, db.DayFree, days[4].Status)   // day 5
}

func TestAvailabilityCalendar_CancelledReservationsAreFree(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	start, end := interval(5, 6)
	store.seed(db.Reservation{
		RoomID:    "room-1",
		StartTime: start,
		EndTime:   end,
		Status:    db.StatusCancelled,
	})

	calendar := NewAvailabilityCalendar(store)

	days, err := calendar.Build(ctx, "room-1", testNow, 10)
	require.NoError(t, err)

	for _, d := range days {
		assert.Equal(t, db.DayFree, d.Status)
	}
}

func TestAvailabilityCalendar_DeterministicWithoutWrites(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	start, end := interval(3, 4)
	store.seed(db.Reservation{
		RoomID:    "room-1",
		StartTime: start,
		EndTime:   end,
		Status:    db.StatusActive,
	})

	calendar := NewAvailabilityCalendar(store)

	first, err := calendar.Build(ctx, "room-1", testNow, 15)
	require.NoError(t, err)
	second, err := calendar.Build(ctx, "room-1", testNow, 15)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAvailabilityCalendar_OtherRoomsDoNotLeak(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	start, end := interval(5, 6)
	store.seed(db.Reservation{
		RoomID:    "room-2",
		StartTime: start,
		EndTime:   end,
		Status:    db.StatusActive,
	})

	calendar := NewAvailabilityCalendar(store)

	days, err := calendar.Build(ctx, "room-1", testNow, 10)
	require.NoError(t, err)

	for _, d := range days {
		assert.Equal(t, db.DayFree, d.Status)
	}
}
