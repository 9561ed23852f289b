package domain_test

import (
	"testing"

	"github.com/pinehollow/cabin-bookings/internal/domain"
)

func TestUpdateProfileRequest_NationalID(t *testing.T) {
	tests := []struct {
		name       string
		nationalID string
		valid      bool
	}{
		{"typical passport number", "AB1234567", true},
		{"with hyphen and space", "12-34 5678", true},
		{"minimum length", "123456", true},
		{"maximum length", "12345678901234567890", true},
		{"too short", "ab", false},
		{"too long", "123456789012345678901", false},
		{"illegal characters", "AB_12345!", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &domain.UpdateProfileRequest{NationalID: tt.nationalID}
			req.Normalize()
			errs := domain.ValidateStruct(req)
			if tt.valid && len(errs) > 0 {
				t.Fatalf("Expected %q to be valid, got %v", tt.nationalID, errs)
			}
			if !tt.valid && len(errs) == 0 {
				t.Fatalf("Expected %q to be rejected", tt.nationalID)
			}
		})
	}
}

func TestUpdateProfileRequest_Normalize(t *testing.T) {
	req := &domain.UpdateProfileRequest{
		NationalID:  "  AB1234567  ",
		Nationality: " Portugal ",
		CountryFlag: " https://flagcdn.com/pt.svg ",
	}
	req.Normalize()

	if req.NationalID != "AB1234567" {
		t.Fatalf("Expected trimmed national ID, got %q", req.NationalID)
	}
	if req.Nationality != "Portugal" {
		t.Fatalf("Expected trimmed nationality, got %q", req.Nationality)
	}
	if errs := domain.ValidateStruct(req); len(errs) > 0 {
		t.Fatalf("Expected normalized request to validate, got %v", errs)
	}
}
