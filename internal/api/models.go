package api

import (
	"time"

	"roombooking/internal/db"
)

const dateLayout = "2006-01-02"

// Booking requests carry whole calendar dates; the handler widens them to
// the inclusive timestamp interval the engine works with.
type CreateBookingRequest struct {
	RoomID    string `json:"room_id"`
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type UpdateBookingRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type BookingResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	RoomID    string    `json:"room_id"`
	UserID    string    `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AvailabilityDayResponse struct {
	Day    string `json:"day"`
	Status string `json:"status"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func toBookingResponse(r *db.Reservation) BookingResponse {
	return BookingResponse{
		ID:        r.ID,
		Status:    string(r.Status),
		RoomID:    r.RoomID,
		UserID:    r.UserID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toAvailabilityResponse(days []db.AvailabilityDay) []AvailabilityDayResponse {
	out := make([]AvailabilityDayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, AvailabilityDayResponse{
			Day:    d.Day.Format(dateLayout),
			Status: string(d.Status),
		})
	}
	return out
}
