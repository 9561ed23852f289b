package handlers

import (
	"net/http"

	"github.com/pinehollow/cabin-bookings/internal/http/response"
)

// ListCabins returns every cabin ordered by name. Public.
func (h *Handlers) ListCabins(w http.ResponseWriter, r *http.Request) {
	cabins, err := h.cabinService.List(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cabins)
}

// GetCabin returns one cabin with its blocked-out days and the booking
// policy, the payload a date-range picker needs. Public.
func (h *Handlers) GetCabin(w http.ResponseWriter, r *http.Request) {
	cabinID, ok := pathID(r, "cabinID")
	if !ok {
		response.BadRequest(w, "Invalid cabin id")
		return
	}

	out, err := h.cabinService.GetWithAvailability(r.Context(), cabinID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GetSettings returns the booking policy singleton. Public.
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.cabinService.Settings(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
