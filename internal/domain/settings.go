package domain

// Settings is the singleton policy record applied during booking
// validation. Read-only from this service's perspective.
type Settings struct {
	MinBookingLength    int     `json:"min_booking_length"`
	MaxBookingLength    int     `json:"max_booking_length"`
	MaxGuestsPerBooking int     `json:"max_guests_per_booking"`
	BreakfastPrice      float64 `json:"breakfast_price"`
}
