package service

import (
	"context"
	"fmt"

	"github.com/pinehollow/cabin-bookings/internal/domain"
	"github.com/pinehollow/cabin-bookings/internal/platform/cache"
	"github.com/pinehollow/cabin-bookings/internal/repo/postgres"
	"github.com/pinehollow/cabin-bookings/pkg/logger"
)

type CabinService interface {
	List(ctx context.Context) ([]domain.Cabin, error)
	Get(ctx context.Context, cabinID int64) (*domain.Cabin, error)
	GetWithAvailability(ctx context.Context, cabinID int64) (*domain.CabinAvailability, error)
	Settings(ctx context.Context) (*domain.Settings, error)
}

type cabinService struct {
	cabinRepo    postgres.CabinRepository
	settingsRepo postgres.SettingsRepository
	availability AvailabilityService
	cache        Cache
}

func NewCabinService(
	cabinRepo postgres.CabinRepository,
	settingsRepo postgres.SettingsRepository,
	availability AvailabilityService,
	c Cache,
) CabinService {
	return &cabinService{
		cabinRepo:    cabinRepo,
		settingsRepo: settingsRepo,
		availability: availability,
		cache:        c,
	}
}

func (s *cabinService) List(ctx context.Context) ([]domain.Cabin, error) {
	cabins, err := s.cabinRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list cabins: %v", domain.ErrPersistence, err)
	}
	return cabins, nil
}

func (s *cabinService) Get(ctx context.Context, cabinID int64) (*domain.Cabin, error) {
	cabin, err := s.cabinRepo.GetByID(ctx, cabinID)
	if err != nil {
		return nil, fmt.Errorf("%w: load cabin: %v", domain.ErrPersistence, err)
	}
	if cabin == nil {
		return nil, fmt.Errorf("%w: cabin %d", domain.ErrNotFound, cabinID)
	}
	return cabin, nil
}

// GetWithAvailability bundles the cabin, its blocked-out days, and the
// booking policy into one payload. The bundle is cached per cabin and
// invalidated whenever a booking for that cabin changes.
func (s *cabinService) GetWithAvailability(ctx context.Context, cabinID int64) (*domain.CabinAvailability, error) {
	key := cache.CabinKey(cabinID)
	var cached domain.CabinAvailability
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		logger.WarnContext(ctx, "Cabin cache read failed", "error", err, "cabin_id", cabinID)
	} else if hit {
		return &cached, nil
	}

	cabin, err := s.Get(ctx, cabinID)
	if err != nil {
		return nil, err
	}

	days, err := s.availability.BookedDays(ctx, cabinID)
	if err != nil {
		return nil, err
	}

	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}

	out := &domain.CabinAvailability{
		Cabin:       *cabin,
		BookedDates: days,
		Settings:    *settings,
	}

	if err := s.cache.SetJSON(ctx, key, out); err != nil {
		logger.WarnContext(ctx, "Cabin cache write failed", "error", err, "cabin_id", cabinID)
	}

	return out, nil
}

func (s *cabinService) Settings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load settings: %v", domain.ErrPersistence, err)
	}
	if settings == nil {
		// No policy row yet; fall back to permissive defaults so the
		// storefront keeps working.
		return &domain.Settings{}, nil
	}
	return settings, nil
}
