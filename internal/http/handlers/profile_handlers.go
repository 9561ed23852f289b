package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pinehollow/cabin-bookings/internal/domain"
	"github.com/pinehollow/cabin-bookings/internal/http/middleware"
	"github.com/pinehollow/cabin-bookings/internal/http/response"
)

// GetProfile returns the logged-in guest's profile row.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFrom(r)
	guest, err := h.guestService.ResolveGuest(r.Context(), caller.Email)
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, guest)
}

// UpdateProfile updates the guest's national ID, nationality and flag.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	guest, err := h.guestService.UpdateProfile(r.Context(), middleware.CallerFrom(r), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, guest)
}
