package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pinehollow/cabin-bookings/internal/domain"
	"github.com/pinehollow/cabin-bookings/internal/repo/postgres"
	"github.com/pinehollow/cabin-bookings/pkg/events"
	"github.com/pinehollow/cabin-bookings/pkg/logger"
)

type GuestService interface {
	ResolveGuest(ctx context.Context, email string) (*domain.Guest, error)
	EnsureGuest(ctx context.Context, email, fullName string) (*domain.Guest, error)
	UpdateProfile(ctx context.Context, caller Caller, req *domain.UpdateProfileRequest) (*domain.Guest, error)
}

type guestService struct {
	guestRepo postgres.GuestRepository
	eventBus  Publisher
}

func NewGuestService(guestRepo postgres.GuestRepository, eventBus Publisher) GuestService {
	return &guestService{
		guestRepo: guestRepo,
		eventBus:  eventBus,
	}
}

func (s *guestService) ResolveGuest(ctx context.Context, email string) (*domain.Guest, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	guest, err := s.guestRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: find guest: %v", domain.ErrPersistence, err)
	}
	if guest == nil {
		return nil, fmt.Errorf("%w: no guest for email", domain.ErrNotFound)
	}
	return guest, nil
}

func (s *guestService) EnsureGuest(ctx context.Context, email, fullName string) (*domain.Guest, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(fullName) == "" {
		fullName = "Anonymous"
	}

	existing, err := s.guestRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: find guest: %v", domain.ErrPersistence, err)
	}
	if existing != nil {
		return existing, nil
	}

	guest, err := s.guestRepo.Ensure(ctx, email, fullName)
	if err != nil {
		return nil, fmt.Errorf("%w: create guest: %v", domain.ErrPersistence, err)
	}

	if err := s.eventBus.Publish(ctx, events.GuestRegistered, events.GuestRegisteredEvent{
		GuestID:   guest.ID,
		Email:     guest.Email,
		FullName:  guest.FullName,
		CreatedAt: time.Now(),
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish guest registered event", "error", err, "guest_id", guest.ID)
	}

	logger.InfoContext(ctx, "Guest created on first login", "guest_id", guest.ID)
	return guest, nil
}

func (s *guestService) UpdateProfile(ctx context.Context, caller Caller, req *domain.UpdateProfileRequest) (*domain.Guest, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	req.Normalize()
	if errs := domain.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, domain.FormatValidationErrors(errs))
	}

	nationalID := &req.NationalID
	var nationality, countryFlag *string
	if req.Nationality != "" {
		nationality = &req.Nationality
	}
	if req.CountryFlag != "" {
		countryFlag = &req.CountryFlag
	}

	guest, err := s.guestRepo.UpdateProfile(ctx, caller.Email, nationalID, nationality, countryFlag)
	if err != nil {
		return nil, fmt.Errorf("%w: update guest: %v", domain.ErrPersistence, err)
	}
	if guest == nil {
		return nil, fmt.Errorf("%w: no guest for email", domain.ErrNotFound)
	}

	if err := s.eventBus.Publish(ctx, events.GuestUpdated, map[string]any{"guest_id": guest.ID}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish guest updated event", "error", err, "guest_id", guest.ID)
	}

	return guest, nil
}
