package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"roombooking/internal/db"
	"roombooking/internal/metrics"
)

// JobService runs the periodic maintenance work driven by cron. It only
// reads: reservation state is never mutated outside the admission path.
type JobService struct {
	repo    StatsRepository
	metrics *metrics.BookingMetrics
}

// StatsRepository exposes the aggregate queries the job needs.
type StatsRepository interface {
	CountActiveByRoom(ctx context.Context) ([]db.RoomOccupancy, error)
}

func NewJobService(repo StatsRepository, m *metrics.BookingMetrics) *JobService {
	return &JobService{repo: repo, metrics: m}
}

// SnapshotOccupancy counts active upcoming reservations per room and
// publishes the result as gauges.
func (s *JobService) SnapshotOccupancy(ctx context.Context) error {
	occupancies, err := s.repo.CountActiveByRoom(ctx)
	if err != nil {
		return fmt.Errorf("stats job: counting active reservations: %w", err)
	}

	for _, o := range occupancies {
		s.metrics.SetRoomOccupancy(o.RoomID, o.Active)
	}

	logrus.WithField("rooms", len(occupancies)).Info("occupancy snapshot recorded")
	return nil
}
