package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pinehollow/cabin-bookings/internal/http/response"
	"github.com/pinehollow/cabin-bookings/internal/service"
	"github.com/pinehollow/cabin-bookings/pkg/auth"
)

type ctxKey string

const CtxClaims ctxKey = "claims"

// RequireSession rejects requests without a valid Bearer session token and
// stores the parsed claims on the request context.
func RequireSession(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				response.WriteError(w, http.StatusUnauthorized, "invalid authorization header", response.CodeInvalidToken)
				return
			}
			raw := strings.TrimPrefix(authz, "Bearer ")
			claims, err := auth.Parse(raw, secret)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, "invalid authorization token", response.CodeInvalidToken)
				return
			}
			ctx := context.WithValue(r.Context(), CtxClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func Claims(r *http.Request) *auth.Claims {
	v := r.Context().Value(CtxClaims)
	if v == nil {
		return nil
	}
	return v.(*auth.Claims)
}

// CallerFrom builds the service-layer caller identity from the session
// claims. Returns a zero Caller when the request carries no session.
func CallerFrom(r *http.Request) service.Caller {
	claims := Claims(r)
	if claims == nil {
		return service.Caller{}
	}
	return service.Caller{
		GuestID: claims.GuestID,
		Email:   claims.Email,
		Name:    claims.Name,
	}
}
