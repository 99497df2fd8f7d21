package service

import (
	"context"
	"time"

	"roombooking/internal/db"
)

// ReservationStore is the durable home of reservations. Save assigns an id
// on first save and returns the persisted value. Implementations must
// translate their own not-found conditions into (nil, nil) from FindByID.
type ReservationStore interface {
	FindByID(ctx context.Context, id string) (*db.Reservation, error)
	FindAll(ctx context.Context) ([]db.Reservation, error)
	// FindOverlapping returns reservations of roomID in the given status
	// whose closed interval touches [start, end]. excludeID, when non-empty,
	// filters out that reservation (the update-own-booking case).
	FindOverlapping(ctx context.Context, roomID string, status db.ReservationStatus, start, end time.Time, excludeID string) ([]db.Reservation, error)
	// FindActiveFrom returns reservations of roomID in the given status
	// starting strictly after the given instant.
	FindActiveFrom(ctx context.Context, roomID string, status db.ReservationStatus, after time.Time) ([]db.Reservation, error)
	Save(ctx context.Context, r *db.Reservation) (*db.Reservation, error)
}

// AdmissionLock serializes conflict-check-then-write sequences. Acquire
// blocks until the lock for key is held, ctx is done, or the
// implementation's own timeout elapses; the returned release func must be
// called on every exit path.
type AdmissionLock interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// RoomDirectory resolves rooms from the external room service. A missing
// room returns (nil, nil); transport failures return an error.
type RoomDirectory interface {
	GetRoom(ctx context.Context, roomID string) (*db.Room, error)
}
