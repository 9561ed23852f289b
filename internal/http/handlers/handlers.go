package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pinehollow/cabin-bookings/internal/platform/identity"
	"github.com/pinehollow/cabin-bookings/internal/service"
	"github.com/pinehollow/cabin-bookings/pkg/config"
)

// LoginThrottle is the fixed-window counter behind the per-email login
// limit. The per-IP half runs in middleware; this half can only run here,
// after the identity provider has told us whose account it is.
type LoginThrottle interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

type Handlers struct {
	cabinService   service.CabinService
	bookingService service.BookingService
	guestService   service.GuestService
	identity       identity.Provider
	throttle       LoginThrottle
	config         *config.Config
}

func New(
	cabinService service.CabinService,
	bookingService service.BookingService,
	guestService service.GuestService,
	provider identity.Provider,
	throttle LoginThrottle,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		cabinService:   cabinService,
		bookingService: bookingService,
		guestService:   guestService,
		identity:       provider,
		throttle:       throttle,
		config:         cfg,
	}
}

// Helper functions for common response patterns
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// pathID parses the numeric {id}-style URL parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
