package service

import (
	"context"
	"time"
)

// Caller identifies the authenticated guest behind a request, as resolved
// from the session token. A zero GuestID means the session predates the
// guest row; flows that mutate data reject it.
type Caller struct {
	GuestID int64
	Email   string
	Name    string
}

func (c Caller) Authenticated() bool {
	return c.GuestID > 0 && c.Email != ""
}

// Publisher is the slice of the event bus the services use. They only
// emit; subscriptions and connection lifecycle belong to the caller.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Cache is the slice of the redis cache the services need. Failures are
// logged and swallowed; a cold cache only costs a store round trip.
type Cache interface {
	GetJSON(ctx context.Context, key string, v any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// today returns the current date at UTC midnight, the cutoff for the
// availability query.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
