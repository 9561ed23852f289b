package mailer

import (
	"github.com/pinehollow/cabin-bookings/internal/domain"
	"github.com/pinehollow/cabin-bookings/pkg/logger"
)

// DevMailer logs email instead of sending it. Used when EMAIL_DEV_MODE is
// set or no MailerSend key is configured.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	logger.Info("DEV EMAIL",
		"to", toEmail,
		"name", toName,
		"subject", subject,
		"text", text,
	)
	return "dev-message-id", nil
}

func (d *DevMailer) SendBookingConfirmation(toEmail, toName, cabinName string, booking *domain.Booking) error {
	logger.Info("DEV EMAIL booking confirmation",
		"to", toEmail,
		"cabin", cabinName,
		"booking_id", booking.ID,
		"start", booking.StartDate.Format("2006-01-02"),
		"end", booking.EndDate.Format("2006-01-02"),
		"total", booking.TotalPrice,
	)
	return nil
}
