package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"roombooking/internal/db"
	"roombooking/internal/metrics"
)

// BookingService is the admission engine: it composes the policy pipeline,
// the conflict detector and the availability calendar, and serializes every
// conflict-check-then-write sequence behind a per-room admission lock.
type BookingService struct {
	store     ReservationStore
	lock      AdmissionLock
	rooms     *RoomService
	conflicts *ConflictDetector
	calendar  *AvailabilityCalendar
	policy    BookingPolicy
	metrics   *metrics.BookingMetrics

	// now is swappable so date-rule behavior is deterministic in tests.
	now func() time.Time
}

func NewBookingService(store ReservationStore, lock AdmissionLock, rooms *RoomService, policy BookingPolicy, m *metrics.BookingMetrics) *BookingService {
	return &BookingService{
		store:     store,
		lock:      lock,
		rooms:     rooms,
		conflicts: NewConflictDetector(store),
		calendar:  NewAvailabilityCalendar(store),
		policy:    policy,
		metrics:   m,
		now:       time.Now,
	}
}

// WithClock replaces the service clock. Intended for tests.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

func (s *BookingService) GetAllBookings(ctx context.Context) ([]db.Reservation, error) {
	reservations, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, &TransientError{Err: fmt.Errorf("listing reservations: %w", err)}
	}
	return reservations, nil
}

func (s *BookingService) GetBookingByID(ctx context.Context, id string) (*db.Reservation, error) {
	reservation, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, &TransientError{Err: fmt.Errorf("loading reservation %s: %w", id, err)}
	}
	if reservation == nil {
		return nil, &NotFoundError{ID: id, Err: ErrReservationNotFound}
	}
	return reservation, nil
}

// CreateBooking admits a new reservation. The room gate, date rules and
// conflict check all run while the room's admission lock is held, so two
// concurrent creates for the same room cannot both pass the conflict check.
func (s *BookingService) CreateBooking(ctx context.Context, roomID, userID string, start, end time.Time) (*db.Reservation, error) {
	release, err := s.acquireLock(ctx, roomID)
	if err != nil {
		s.metrics.RecordAdmission("create", "lock_timeout")
		return nil, err
	}
	defer release()

	if err := s.rooms.CheckRoomExistsAndEnabled(ctx, roomID); err != nil {
		s.metrics.RecordAdmission("create", "room_unavailable")
		return nil, err
	}

	if err := ValidateDates(s.policy, start, end, s.now()); err != nil {
		s.metrics.RecordAdmission("create", "validation_failed")
		return nil, err
	}

	conflict, err := s.conflicts.HasConflict(ctx, roomID, "", start, end)
	if err != nil {
		s.metrics.RecordAdmission("create", "error")
		return nil, &TransientError{Err: err}
	}
	if conflict {
		s.metrics.RecordAdmission("create", "conflict")
		return nil, ErrOverlapDetected
	}

	reservation := &db.Reservation{
		RoomID:    roomID,
		UserID:    userID,
		StartTime: start,
		EndTime:   end,
		Status:    db.StatusActive,
	}

	saved, err := s.store.Save(ctx, reservation)
	if err != nil {
		s.metrics.RecordAdmission("create", "error")
		return nil, &TransientError{Err: fmt.Errorf("saving reservation: %w", err)}
	}

	s.metrics.RecordAdmission("create", "ok")
	logrus.WithFields(logrus.Fields{
		"reservation_id": saved.ID,
		"room_id":        saved.RoomID,
		"user_id":        saved.UserID,
	}).Info("reservation created")

	return saved, nil
}

// UpdateBooking moves an existing reservation to new dates. The conflict
// check excludes the reservation itself so it never collides with its own
// current interval.
func (s *BookingService) UpdateBooking(ctx context.Context, id string, start, end time.Time) (*db.Reservation, error) {
	reservation, err := s.GetBookingByID(ctx, id)
	if err != nil {
		s.metrics.RecordAdmission("update", "not_found")
		return nil, err
	}

	release, err := s.acquireLock(ctx, reservation.RoomID)
	if err != nil {
		s.metrics.RecordAdmission("update", "lock_timeout")
		return nil, err
	}
	defer release()

	// Re-read under the lock; a concurrent update may have moved it.
	reservation, err = s.GetBookingByID(ctx, id)
	if err != nil {
		s.metrics.RecordAdmission("update", "not_found")
		return nil, err
	}

	if err := ValidateDates(s.policy, start, end, s.now()); err != nil {
		s.metrics.RecordAdmission("update", "validation_failed")
		return nil, err
	}

	conflict, err := s.conflicts.HasConflict(ctx, reservation.RoomID, id, start, end)
	if err != nil {
		s.metrics.RecordAdmission("update", "error")
		return nil, &TransientError{Err: err}
	}
	if conflict {
		s.metrics.RecordAdmission("update", "conflict")
		return nil, ErrOverlapDetected
	}

	reservation.StartTime = start
	reservation.EndTime = end

	saved, err := s.store.Save(ctx, reservation)
	if err != nil {
		s.metrics.RecordAdmission("update", "error")
		return nil, &TransientError{Err: fmt.Errorf("saving reservation: %w", err)}
	}

	s.metrics.RecordAdmission("update", "ok")
	logrus.WithFields(logrus.Fields{
		"reservation_id": saved.ID,
		"room_id":        saved.RoomID,
	}).Info("reservation dates updated")

	return saved, nil
}

// CancelBooking flips the reservation to cancelled. No lock is taken:
// cancellation only shrinks a room's active set, so it cannot create an
// overlap. Cancelling twice is a no-op.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (*db.Reservation, error) {
	reservation, err := s.GetBookingByID(ctx, id)
	if err != nil {
		s.metrics.RecordAdmission("cancel", "not_found")
		return nil, err
	}

	switch reservation.Status {
	case db.StatusCancelled:
		s.metrics.RecordAdmission("cancel", "ok")
		return reservation, nil
	case db.StatusActive:
		// fall through to the status flip
	}

	reservation.Status = db.StatusCancelled

	saved, err := s.store.Save(ctx, reservation)
	if err != nil {
		s.metrics.RecordAdmission("cancel", "error")
		return nil, &TransientError{Err: fmt.Errorf("saving reservation: %w", err)}
	}

	s.metrics.RecordAdmission("cancel", "ok")
	logrus.WithFields(logrus.Fields{
		"reservation_id": saved.ID,
		"room_id":        saved.RoomID,
	}).Info("reservation cancelled")

	return saved, nil
}

// GetAvailability returns the free/booked calendar for the room over the
// policy's advance window.
func (s *BookingService) GetAvailability(ctx context.Context, roomID string) ([]db.AvailabilityDay, error) {
	if err := s.rooms.CheckRoomExistsAndEnabled(ctx, roomID); err != nil {
		return nil, err
	}

	days, err := s.calendar.Build(ctx, roomID, s.now(), s.policy.MaxDaysAdvance)
	if err != nil {
		return nil, &TransientError{Err: err}
	}
	return days, nil
}

func (s *BookingService) acquireLock(ctx context.Context, roomID string) (func(), error) {
	waitStart := time.Now()
	release, err := s.lock.Acquire(ctx, lockKey(roomID))
	s.metrics.ObserveLockWait(time.Since(waitStart))
	if err != nil {
		return nil, &TransientError{Err: fmt.Errorf("acquiring admission lock for room %s: %w", roomID, err)}
	}
	return release, nil
}

func lockKey(roomID string) string {
	return "reservations:" + roomID
}
