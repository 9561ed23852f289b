package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity-provider subject plus the resolved guest id.
// GuestID is attached at login time, after the guest row has been ensured.
type Claims struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
	GuestID int64  `json:"guest_id"`
	jwt.RegisteredClaims
}

func NewSessionToken(subject, email, name, avatar string, guestID int64, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:   email,
		Name:    name,
		Avatar:  avatar,
		GuestID: guestID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Audience:  []string{"cabin-bookings-api"},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func Parse(tokenString, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := tok.Claims.(*Claims); ok && tok.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
