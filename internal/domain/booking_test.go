package domain_test

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pinehollow/cabin-bookings/internal/domain"
)

func TestNightsBetween(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "three nights",
			start: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC),
			want:  3,
		},
		{
			name:  "same day",
			start: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "time of day ignored",
			start: time.Date(2026, 6, 1, 23, 30, 0, 0, time.UTC),
			end:   time.Date(2026, 6, 2, 1, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "reversed range is negative",
			start: time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			want:  -3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.NightsBetween(tt.start, tt.end); got != tt.want {
				t.Fatalf("NightsBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTruncateObservations(t *testing.T) {
	long := strings.Repeat("x", domain.MaxObservationsLen+50)

	got := domain.TruncateObservations(long)
	if len(got) != domain.MaxObservationsLen {
		t.Fatalf("Expected %d chars, got %d", domain.MaxObservationsLen, len(got))
	}

	short := "quiet cabin please"
	if domain.TruncateObservations(short) != short {
		t.Fatal("Short observations should pass through unchanged")
	}
}

func TestTruncateObservations_MultiByte(t *testing.T) {
	long := strings.Repeat("é", domain.MaxObservationsLen+5)

	got := domain.TruncateObservations(long)
	if !utf8.ValidString(got) {
		t.Fatal("Truncation produced invalid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n != domain.MaxObservationsLen {
		t.Fatalf("Expected %d characters, got %d", domain.MaxObservationsLen, n)
	}

	// A multi-byte string within the character limit is left alone even
	// though it exceeds the limit in bytes.
	exact := strings.Repeat("é", domain.MaxObservationsLen)
	if domain.TruncateObservations(exact) != exact {
		t.Fatal("Observations at the character limit should pass through unchanged")
	}
}

func TestCreateBookingRequest_Command_Success(t *testing.T) {
	req := &domain.CreateBookingRequest{
		CabinID:      7,
		StartDate:    "2026-06-01",
		EndDate:      "2026-06-04",
		NumNights:    99, // ignored, recomputed downstream
		Observations: "near the lake",
	}

	cmd, err := req.Command()
	if err != nil {
		t.Fatalf("Command() error: %v", err)
	}

	if cmd.CabinID != 7 {
		t.Fatalf("Expected cabin 7, got %d", cmd.CabinID)
	}
	if cmd.NumGuests != 1 {
		t.Fatalf("Expected guests to default to 1, got %d", cmd.NumGuests)
	}
	if domain.NightsBetween(cmd.StartDate, cmd.EndDate) != 3 {
		t.Fatal("Expected a three night stay")
	}
}

func TestCreateBookingRequest_Command_RFC3339Dates(t *testing.T) {
	req := &domain.CreateBookingRequest{
		CabinID:   1,
		StartDate: "2026-06-01T00:00:00.000Z",
		EndDate:   "2026-06-03T00:00:00.000Z",
		NumGuests: 2,
	}

	cmd, err := req.Command()
	if err != nil {
		t.Fatalf("Command() error: %v", err)
	}
	if cmd.NumGuests != 2 {
		t.Fatalf("Expected 2 guests, got %d", cmd.NumGuests)
	}
}

func TestCreateBookingRequest_Command_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  domain.CreateBookingRequest
	}{
		{
			name: "missing cabin",
			req:  domain.CreateBookingRequest{StartDate: "2026-06-01", EndDate: "2026-06-04"},
		},
		{
			name: "missing dates",
			req:  domain.CreateBookingRequest{CabinID: 1},
		},
		{
			name: "malformed start date",
			req:  domain.CreateBookingRequest{CabinID: 1, StartDate: "June 1st", EndDate: "2026-06-04"},
		},
		{
			name: "malformed end date",
			req:  domain.CreateBookingRequest{CabinID: 1, StartDate: "2026-06-01", EndDate: "whenever"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.Command()
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestParseBookingStatus(t *testing.T) {
	if _, ok := domain.ParseBookingStatus("checked-in"); !ok {
		t.Fatal("checked-in should be a valid status")
	}
	if _, ok := domain.ParseBookingStatus("pending"); ok {
		t.Fatal("pending should not be a valid status")
	}
}

func TestBooking_IsOwner(t *testing.T) {
	b := &domain.Booking{ID: 55, GuestID: 42}
	if !b.IsOwner(42) {
		t.Fatal("Owner check failed for the owning guest")
	}
	if b.IsOwner(7) {
		t.Fatal("Owner check passed for a different guest")
	}
}
