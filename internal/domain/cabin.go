package domain

import "time"

type Cabin struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	MaxCapacity  int       `json:"max_capacity"`
	RegularPrice float64   `json:"regular_price"`
	Discount     float64   `json:"discount"`
	Image        string    `json:"image"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// CabinAvailability is the payload behind the cabin lookup endpoint: the
// cabin itself, the days a date-range picker must disable, and the policy
// limits the picker enforces.
type CabinAvailability struct {
	Cabin       Cabin       `json:"cabin"`
	BookedDates []time.Time `json:"booked_dates"`
	Settings    Settings    `json:"settings"`
}
