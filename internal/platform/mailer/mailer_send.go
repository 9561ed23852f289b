package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/pinehollow/cabin-bookings/internal/domain"
)

type Mailer struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	Enabled bool
}

func NewMailer(apiKey, fromName, fromEmail string) *Mailer {
	m := &Mailer{
		Enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
	if m.Enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}
	return m
}

func (m *Mailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	if !m.Enabled {
		return "", errors.New("mailer disabled (missing MAILERSEND_API_KEY or MAILER_FROM)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)
	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	res, err := m.client.Email.Send(ctx, msg)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("mailersend returned status %d", res.StatusCode)
	}

	return res.Header.Get("X-Message-Id"), nil
}

func (m *Mailer) SendBookingConfirmation(toEmail, toName, cabinName string, booking *domain.Booking) error {
	subject := fmt.Sprintf("Reservation confirmed: %s", cabinName)
	text := fmt.Sprintf(
		"Hi %s,\n\nYour reservation of %s from %s to %s (%d nights, %d guests) is in.\n"+
			"Total: $%.2f. You'll pay at the property upon arrival.\n\nSee you soon!",
		toName, cabinName,
		booking.StartDate.Format("2006-01-02"), booking.EndDate.Format("2006-01-02"),
		booking.NumNights, booking.NumGuests, booking.TotalPrice,
	)

	_, err := m.Send(toEmail, toName, subject, text, "")
	return err
}
