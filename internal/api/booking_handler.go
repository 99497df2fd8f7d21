package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"roombooking/internal/service"
)

// BookingHandler exposes the admission engine over HTTP. It owns request
// shaping and the error-to-status mapping; the engine stays transport-free.
type BookingHandler struct {
	Service  *service.BookingService
	Renderer *ErrorRenderer
}

func NewBookingHandler(svc *service.BookingService, renderer *ErrorRenderer) *BookingHandler {
	return &BookingHandler{Service: svc, Renderer: renderer}
}

// Register mounts the booking routes on the router.
func (h *BookingHandler) Register(r *mux.Router) {
	r.HandleFunc("/v1/booking", h.ListBookings).Methods(http.MethodGet)
	r.HandleFunc("/v1/booking/availability", h.GetAvailability).Methods(http.MethodGet)
	r.HandleFunc("/v1/booking/{id}", h.GetBooking).Methods(http.MethodGet)
	r.HandleFunc("/v1/booking", h.CreateBooking).Methods(http.MethodPost)
	r.HandleFunc("/v1/booking/{id}", h.UpdateBooking).Methods(http.MethodPut)
	r.HandleFunc("/v1/booking/{id}/cancel", h.CancelBooking).Methods(http.MethodPost)
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.GetAllBookings(r.Context())
	if err != nil {
		h.Renderer.Write(w, r, err)
		return
	}

	response := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		response = append(response, toBookingResponse(&bookings[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	booking, err := h.Service.GetBookingByID(r.Context(), id)
	if err != nil {
		h.Renderer.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Renderer.WriteBadRequest(w, r, "invalid request body")
		return
	}
	if req.RoomID == "" || req.UserID == "" {
		h.Renderer.WriteBadRequest(w, r, "room_id and user_id are required")
		return
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.Renderer.WriteBadRequest(w, r, err.Error())
		return
	}

	booking, err := h.Service.CreateBooking(r.Context(), req.RoomID, req.UserID, start, end)
	if err != nil {
		h.Renderer.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Renderer.WriteBadRequest(w, r, "invalid request body")
		return
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.Renderer.WriteBadRequest(w, r, err.Error())
		return
	}

	booking, err := h.Service.UpdateBooking(r.Context(), id, start, end)
	if err != nil {
		h.Renderer.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	booking, err := h.Service.CancelBooking(r.Context(), id)
	if err != nil {
		h.Renderer.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room_id")
	if roomID == "" {
		h.Renderer.WriteBadRequest(w, r, "room_id query parameter is required")
		return
	}

	days, err := h.Service.GetAvailability(r.Context(), roomID)
	if err != nil {
		h.Renderer.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAvailabilityResponse(days))
}

// parseDateRange widens whole calendar dates to the inclusive interval
// [start 00:00:00, end 23:59:59].
func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date, expected YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date, expected YYYY-MM-DD")
	}
	return start, end.AddDate(0, 0, 1).Add(-time.Second), nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
