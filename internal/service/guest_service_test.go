package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pinehollow/cabin-bookings/internal/domain"
	"github.com/pinehollow/cabin-bookings/internal/service"
)

type mockGuestRepo struct {
	nextID int64
	guests map[string]*domain.Guest // keyed by lowercase email
}

func newMockGuestRepo() *mockGuestRepo {
	return &mockGuestRepo{nextID: 1, guests: make(map[string]*domain.Guest)}
}

func (m *mockGuestRepo) FindByEmail(_ context.Context, email string) (*domain.Guest, error) {
	return m.guests[strings.ToLower(email)], nil
}

func (m *mockGuestRepo) Ensure(_ context.Context, email, fullName string) (*domain.Guest, error) {
	key := strings.ToLower(email)
	if g, ok := m.guests[key]; ok {
		return g, nil
	}
	g := &domain.Guest{ID: m.nextID, Email: key, FullName: fullName, CreatedAt: time.Now()}
	m.nextID++
	m.guests[key] = g
	return g, nil
}

func (m *mockGuestRepo) UpdateProfile(_ context.Context, email string, nationalID, nationality, countryFlag *string) (*domain.Guest, error) {
	g, ok := m.guests[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	g.NationalID = nationalID
	g.Nationality = nationality
	g.CountryFlag = countryFlag
	return g, nil
}

func TestEnsureGuest_CreatesOnFirstLogin(t *testing.T) {
	repo := newMockGuestRepo()
	bus := &mockPublisher{}
	svc := service.NewGuestService(repo, bus)

	guest, err := svc.EnsureGuest(context.Background(), "Jonas@Example.com", "Jonas Schmedtmann")
	if err != nil {
		t.Fatalf("EnsureGuest() error: %v", err)
	}

	if guest.Email != "jonas@example.com" {
		t.Fatalf("Expected lowercased email, got %q", guest.Email)
	}
	if len(bus.subjects) != 1 || bus.subjects[0] != "guest.registered" {
		t.Fatalf("Expected guest.registered event, got %v", bus.subjects)
	}
}

func TestEnsureGuest_Idempotent(t *testing.T) {
	repo := newMockGuestRepo()
	bus := &mockPublisher{}
	svc := service.NewGuestService(repo, bus)

	first, err := svc.EnsureGuest(context.Background(), "jonas@example.com", "Jonas")
	if err != nil {
		t.Fatalf("EnsureGuest() error: %v", err)
	}
	second, err := svc.EnsureGuest(context.Background(), "JONAS@example.com", "Someone Else")
	if err != nil {
		t.Fatalf("EnsureGuest() error: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("Expected the same guest row, got %d and %d", first.ID, second.ID)
	}
	if second.FullName != "Jonas" {
		t.Fatalf("Second login must not rename the guest, got %q", second.FullName)
	}
	if len(bus.subjects) != 1 {
		t.Fatalf("Expected a single registration event, got %v", bus.subjects)
	}
}

func TestEnsureGuest_DefaultsName(t *testing.T) {
	svc := service.NewGuestService(newMockGuestRepo(), &mockPublisher{})

	guest, err := svc.EnsureGuest(context.Background(), "nameless@example.com", "  ")
	if err != nil {
		t.Fatalf("EnsureGuest() error: %v", err)
	}
	if guest.FullName != "Anonymous" {
		t.Fatalf("Expected fallback name, got %q", guest.FullName)
	}
}

func TestUpdateProfile_ValidatesNationalID(t *testing.T) {
	repo := newMockGuestRepo()
	svc := service.NewGuestService(repo, &mockPublisher{})

	if _, err := svc.EnsureGuest(context.Background(), "jonas@example.com", "Jonas"); err != nil {
		t.Fatalf("EnsureGuest() error: %v", err)
	}

	caller := service.Caller{GuestID: 1, Email: "jonas@example.com"}

	_, err := svc.UpdateProfile(context.Background(), caller, &domain.UpdateProfileRequest{NationalID: "ab"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput for short national ID, got %v", err)
	}

	guest, err := svc.UpdateProfile(context.Background(), caller, &domain.UpdateProfileRequest{
		NationalID:  "AB1234567",
		Nationality: "Portugal",
		CountryFlag: "https://flagcdn.com/pt.svg",
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	if guest.NationalID == nil || *guest.NationalID != "AB1234567" {
		t.Fatalf("Expected national ID stored, got %+v", guest.NationalID)
	}
}

func TestUpdateProfile_RequiresSession(t *testing.T) {
	svc := service.NewGuestService(newMockGuestRepo(), &mockPublisher{})

	_, err := svc.UpdateProfile(context.Background(), service.Caller{}, &domain.UpdateProfileRequest{NationalID: "AB1234567"})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("Expected ErrUnauthenticated, got %v", err)
	}
}

func TestResolveGuest_NotFound(t *testing.T) {
	svc := service.NewGuestService(newMockGuestRepo(), &mockPublisher{})

	_, err := svc.ResolveGuest(context.Background(), "missing@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}
