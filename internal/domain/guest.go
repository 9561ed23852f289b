package domain

import "time"

// Guest is the booking-system identity created from an authenticated
// person's email. It is distinct from the identity provider's own user
// record; email is the join key between the two.
type Guest struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Nationality *string   `json:"nationality"`
	NationalID  *string   `json:"national_id"`
	CountryFlag *string   `json:"country_flag"`
	CreatedAt   time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	NationalID  string `json:"nationalID" validate:"required,national_id"`
	Nationality string `json:"nationality"`
	CountryFlag string `json:"countryFlag"`
}

func (r *UpdateProfileRequest) Normalize() {
	r.NationalID = trim(r.NationalID)
	r.Nationality = trim(r.Nationality)
	r.CountryFlag = trim(r.CountryFlag)
}
