package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"roombooking/internal/db"
	"roombooking/internal/metrics"
)

// testNow is the frozen clock every service test runs against.
var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

// day returns midnight n days after today (relative to testNow).
func day(n int) time.Time {
	return time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// interval widens whole days to the inclusive interval the handlers send:
// [day from 00:00:00, day to 23:59:59].
func interval(from, to int) (time.Time, time.Time) {
	return day(from), day(to + 1).Add(-time.Second)
}

// memStore is an in-memory ReservationStore for tests.
type memStore struct {
	mu    sync.RWMutex
	items map[string]db.Reservation

	// failWith, when set, makes every call return it.
	failWith error
}

func newMemStore() *memStore {
	return &memStore{items: make(map[string]db.Reservation)}
}

func (s *memStore) seed(r db.Reservation) db.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	s.items[r.ID] = r
	return r
}

func (s *memStore) FindByID(_ context.Context, id string) (*db.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	r, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *memStore) FindAll(_ context.Context) ([]db.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]db.Reservation, 0, len(s.items))
	for _, r := range s.items {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *memStore) FindOverlapping(_ context.Context, roomID string, status db.ReservationStatus, start, end time.Time, excludeID string) ([]db.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []db.Reservation
	for _, r := range s.items {
		if r.RoomID != roomID || r.Status != status {
			continue
		}
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if !r.StartTime.After(end) && !r.EndTime.Before(start) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) FindActiveFrom(_ context.Context, roomID string, status db.ReservationStatus, after time.Time) ([]db.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []db.Reservation
	for _, r := range s.items {
		if r.RoomID == roomID && r.Status == status && r.StartTime.After(after) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *memStore) Save(_ context.Context, r *db.Reservation) (*db.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	saved := *r
	if saved.ID == "" {
		saved.ID = uuid.New().String()
		saved.CreatedAt = time.Now().UTC()
	}
	saved.UpdatedAt = time.Now().UTC()
	s.items[saved.ID] = saved
	return &saved, nil
}

// memLock is a per-key semaphore with the same timeout contract as the
// advisory lock.
type memLock struct {
	mu      sync.Mutex
	sems    map[string]chan struct{}
	timeout time.Duration
}

func newMemLock(timeout time.Duration) *memLock {
	return &memLock{sems: make(map[string]chan struct{}), timeout: timeout}
}

func (l *memLock) sem(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	sem, ok := l.sems[key]
	if !ok {
		sem = make(chan struct{}, 1)
		l.sems[key] = sem
	}
	return sem
}

func (l *memLock) Acquire(ctx context.Context, key string) (func(), error) {
	sem := l.sem(key)
	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case sem <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-sem }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, errors.New("lock acquisition timed out")
	}
}

// stubDirectory serves canned rooms.
type stubDirectory struct {
	rooms map[string]db.Room
	err   error
}

func (d *stubDirectory) GetRoom(_ context.Context, roomID string) (*db.Room, error) {
	if d.err != nil {
		return nil, d.err
	}
	room, ok := d.rooms[roomID]
	if !ok {
		return nil, nil
	}
	return &room, nil
}

func enabledRooms(ids ...string) *stubDirectory {
	rooms := make(map[string]db.Room, len(ids))
	for _, id := range ids {
		rooms[id] = db.Room{ID: id, Status: db.RoomEnabled}
	}
	return &stubDirectory{rooms: rooms}
}

func testMetrics() *metrics.BookingMetrics {
	return metrics.NewBookingMetricsWithRegisterer(prometheus.NewRegistry())
}

type serviceFixture struct {
	store *memStore
	lock  *memLock
	svc   *BookingService
}

func newFixture(t *testing.T, directory *stubDirectory) *serviceFixture {
	t.Helper()

	store := newMemStore()
	lock := newMemLock(2 * time.Second)
	policy := BookingPolicy{MaxDaysInRow: 3, MaxDaysAdvance: 30}
	svc := NewBookingService(store, lock, NewRoomService(directory), policy, testMetrics()).
		WithClock(func() time.Time { return testNow })

	return &serviceFixture{store: store, lock: lock, svc: svc}
}
