package db

import "time"

// ReservationStatus is the closed set of persisted reservation states.
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCancelled ReservationStatus = "cancelled"
)

// Valid reports whether s is one of the known states.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusActive, StatusCancelled:
		return true
	}
	return false
}

// Reservation is a booking of a room over an inclusive time interval.
// ID, RoomID and UserID never change after creation; Status only moves
// from active to cancelled.
type Reservation struct {
	ID        string
	RoomID    string
	UserID    string
	StartTime time.Time
	EndTime   time.Time
	Status    ReservationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoomStatus mirrors the room directory's status field.
type RoomStatus string

const (
	RoomEnabled  RoomStatus = "ENABLED"
	RoomDisabled RoomStatus = "DISABLED"
)

// Room is the subset of the room directory record the booking service needs.
type Room struct {
	ID     string
	Status RoomStatus
}

// AvailabilityStatus marks a calendar day as bookable or not.
type AvailabilityStatus string

const (
	DayFree   AvailabilityStatus = "FREE"
	DayBooked AvailabilityStatus = "BOOKED"
)

// AvailabilityDay is a derived projection, recomputed per request and
// never persisted.
type AvailabilityDay struct {
	Day    time.Time
	Status AvailabilityStatus
}

// RoomOccupancy is a per-room count of active upcoming reservations,
// produced by the stats job.
type RoomOccupancy struct {
	RoomID string
	Active int
}
