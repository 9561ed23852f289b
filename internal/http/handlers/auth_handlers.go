package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/pinehollow/cabin-bookings/internal/domain"
	"github.com/pinehollow/cabin-bookings/internal/http/response"
	"github.com/pinehollow/cabin-bookings/pkg/auth"
	"github.com/pinehollow/cabin-bookings/pkg/logger"
)

// Per-account login limit, on top of the per-IP middleware limit.
const (
	loginAttemptsPerEmail = 10
	loginWindow           = time.Minute
)

type loginRequest struct {
	ProviderToken string `json:"providerToken"`
}

type loginResponse struct {
	SessionToken string        `json:"sessionToken"`
	ExpiresIn    int64         `json:"expiresIn"`
	Guest        *domain.Guest `json:"guest"`
}

// Login exchanges an identity provider access token for a session token.
// The guest row is created lazily on first login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if req.ProviderToken == "" {
		response.BadRequest(w, "providerToken is required")
		return
	}

	ident, err := h.identity.Verify(r.Context(), req.ProviderToken)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			response.WriteError(w, http.StatusUnauthorized, "Identity provider rejected the token", response.CodeInvalidToken)
			return
		}
		logger.ErrorContext(r.Context(), "Identity verification failed", "error", err)
		response.InternalError(w, "Could not verify identity")
		return
	}

	// Fail open on counter errors; a cache outage must not lock anyone out.
	key := "login:email:" + strings.ToLower(ident.Email)
	if n, err := h.throttle.Hit(r.Context(), key, loginWindow); err == nil && n > loginAttemptsPerEmail {
		response.RateLimit(w, "Too many login attempts for this account. Try again later.")
		return
	}

	guest, err := h.guestService.EnsureGuest(r.Context(), ident.Email, ident.FullName)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to ensure guest", "error", err, "email", ident.Email)
		response.FromError(w, err)
		return
	}

	ttl := h.config.Auth.SessionTTL
	token, err := auth.NewSessionToken(ident.Subject, guest.Email, guest.FullName, ident.AvatarURL, guest.ID, h.config.Auth.JWTSecret, ttl)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to sign session token", "error", err)
		response.InternalError(w, "Could not create session")
		return
	}

	logger.InfoContext(r.Context(), "Guest logged in", "guest_id", guest.ID)

	writeJSON(w, http.StatusOK, loginResponse{
		SessionToken: token,
		ExpiresIn:    int64(ttl.Seconds()),
		Guest:        guest,
	})
}
