package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/pinehollow/cabin-bookings/internal/domain"
	"github.com/pinehollow/cabin-bookings/internal/http/middleware"
	"github.com/pinehollow/cabin-bookings/internal/http/response"
)

// CreateReservation handles a booking submission from the logged-in guest.
// The booking form posts url-encoded fields; API clients send JSON.
func (h *Handlers) CreateReservation(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateRequest(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	cmd, err := req.Command()
	if err != nil {
		response.FromError(w, err)
		return
	}

	booking, err := h.bookingService.Create(r.Context(), middleware.CallerFrom(r), cmd)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

func decodeCreateRequest(r *http.Request) (*domain.CreateBookingRequest, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		cabinID, _ := strconv.ParseInt(r.PostFormValue("cabinId"), 10, 64)
		numNights, _ := strconv.Atoi(r.PostFormValue("numNight"))
		numGuests, _ := strconv.Atoi(r.PostFormValue("numGuests"))
		return &domain.CreateBookingRequest{
			CabinID:      cabinID,
			StartDate:    r.PostFormValue("startDate"),
			EndDate:      r.PostFormValue("endDate"),
			NumNights:    numNights,
			NumGuests:    numGuests,
			Observations: r.PostFormValue("observations"),
		}, nil
	}

	var req domain.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ListReservations returns the guest's own bookings, newest stay first.
func (h *Handlers) ListReservations(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingService.ListForGuest(r.Context(), middleware.CallerFrom(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// GetReservation returns one booking, only to its owner.
func (h *Handlers) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid reservation id")
		return
	}

	booking, err := h.bookingService.GetOwned(r.Context(), middleware.CallerFrom(r), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// UpdateReservation edits the guest-editable fields of an owned booking.
func (h *Handlers) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid reservation id")
		return
	}

	var req domain.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	booking, err := h.bookingService.Update(r.Context(), middleware.CallerFrom(r), id, req.Command())
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// DeleteReservation cancels an owned booking.
func (h *Handlers) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid reservation id")
		return
	}

	if err := h.bookingService.Delete(r.Context(), middleware.CallerFrom(r), id); err != nil {
		response.FromError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
