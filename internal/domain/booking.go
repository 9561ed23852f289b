package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

type BookingStatus string

const (
	BookingUnconfirmed BookingStatus = "unconfirmed"
	BookingCheckedIn   BookingStatus = "checked-in"
	BookingCheckedOut  BookingStatus = "checked-out"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingUnconfirmed, BookingCheckedIn, BookingCheckedOut:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

const MaxObservationsLen = 1000

type Booking struct {
	ID           int64         `json:"id"`
	CabinID      int64         `json:"cabin_id"`
	GuestID      int64         `json:"guest_id"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	NumNights    int           `json:"num_nights"`
	NumGuests    int           `json:"num_guests"`
	Observations string        `json:"observations"`
	CabinPrice   float64       `json:"cabin_price"`
	ExtrasPrice  float64       `json:"extras_price"`
	TotalPrice   float64       `json:"total_price"`
	IsPaid       bool          `json:"is_paid"`
	HasBreakfast bool          `json:"has_breakfast"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// IsOwner reports whether the given guest owns this booking. Every
// mutation of an existing booking must pass this check.
func (b *Booking) IsOwner(guestID int64) bool {
	return b.GuestID == guestID
}

// BookingWithCabin is the reservation-list projection joined with the
// cabin's display attributes.
type BookingWithCabin struct {
	Booking
	CabinName  string `json:"cabin_name"`
	CabinImage string `json:"cabin_image"`
}

// NightsBetween returns the calendar-day difference between two dates,
// ignoring any time-of-day component.
func NightsBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}

// TruncateObservations caps free-text observations at the column limit.
// The limit counts characters, so the cut always lands on a rune boundary.
func TruncateObservations(s string) string {
	if utf8.RuneCountInString(s) <= MaxObservationsLen {
		return s
	}
	return string([]rune(s)[:MaxObservationsLen])
}

// CreateBookingRequest is the wire form of a booking submission. Dates
// arrive as ISO-8601 strings; numNight is accepted for compatibility with
// the booking form but always recomputed server-side.
type CreateBookingRequest struct {
	CabinID      int64  `json:"cabinId" validate:"required"`
	StartDate    string `json:"startDate" validate:"required"`
	EndDate      string `json:"endDate" validate:"required"`
	NumNights    int    `json:"numNight"`
	NumGuests    int    `json:"numGuests"`
	Observations string `json:"observations"`
}

// CreateBookingCommand is the parsed, validated form of a create request.
type CreateBookingCommand struct {
	CabinID      int64
	StartDate    time.Time
	EndDate      time.Time
	NumGuests    int
	Observations string
}

// Command parses the raw request into a typed command, rejecting malformed
// payloads before any store call is made.
func (r *CreateBookingRequest) Command() (*CreateBookingCommand, error) {
	if errs := ValidateStruct(r); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, FormatValidationErrors(errs))
	}

	start, err := parseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %q", ErrInvalidInput, r.StartDate)
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date %q", ErrInvalidInput, r.EndDate)
	}

	numGuests := r.NumGuests
	if numGuests <= 0 {
		numGuests = 1
	}

	return &CreateBookingCommand{
		CabinID:      r.CabinID,
		StartDate:    start,
		EndDate:      end,
		NumGuests:    numGuests,
		Observations: TruncateObservations(r.Observations),
	}, nil
}

// UpdateBookingRequest carries the two guest-editable fields.
type UpdateBookingRequest struct {
	NumGuests    int    `json:"numGuests"`
	Observations string `json:"observations"`
}

type UpdateBookingCommand struct {
	NumGuests    int
	Observations string
}

func (r *UpdateBookingRequest) Command() *UpdateBookingCommand {
	numGuests := r.NumGuests
	if numGuests <= 0 {
		numGuests = 1
	}
	return &UpdateBookingCommand{
		NumGuests:    numGuests,
		Observations: TruncateObservations(r.Observations),
	}
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
