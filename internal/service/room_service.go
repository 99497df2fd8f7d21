package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"roombooking/internal/db"
)

// RoomService gates admissions on the external room directory.
type RoomService struct {
	directory RoomDirectory
}

func NewRoomService(directory RoomDirectory) *RoomService {
	return &RoomService{directory: directory}
}

// CheckRoomExistsAndEnabled fails with ErrRoomUnavailable when the room is
// absent or not enabled; the two cases are deliberately indistinguishable
// to callers. Directory transport failures surface as transient.
func (s *RoomService) CheckRoomExistsAndEnabled(ctx context.Context, roomID string) error {
	room, err := s.directory.GetRoom(ctx, roomID)
	if err != nil {
		logrus.WithField("room_id", roomID).WithError(err).Error("room directory lookup failed")
		return &TransientError{Err: fmt.Errorf("room directory lookup: %w", err)}
	}

	if room == nil || room.Status != db.RoomEnabled {
		return &NotFoundError{ID: roomID, Err: ErrRoomUnavailable}
	}

	return nil
}
