package mailer

import "github.com/pinehollow/cabin-bookings/internal/domain"

// Service sends guest-facing email. Implementations must be safe for
// concurrent use.
type Service interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
	SendBookingConfirmation(toEmail, toName, cabinName string, booking *domain.Booking) error
}
