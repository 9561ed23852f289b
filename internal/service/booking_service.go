package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pinehollow/cabin-bookings/internal/domain"
	"github.com/pinehollow/cabin-bookings/internal/platform/cache"
	"github.com/pinehollow/cabin-bookings/internal/platform/mailer"
	"github.com/pinehollow/cabin-bookings/internal/repo/postgres"
	"github.com/pinehollow/cabin-bookings/pkg/events"
	"github.com/pinehollow/cabin-bookings/pkg/logger"
)

type BookingService interface {
	Create(ctx context.Context, caller Caller, cmd *domain.CreateBookingCommand) (*domain.Booking, error)
	GetOwned(ctx context.Context, caller Caller, bookingID int64) (*domain.Booking, error)
	ListForGuest(ctx context.Context, caller Caller) ([]domain.BookingWithCabin, error)
	Update(ctx context.Context, caller Caller, bookingID int64, cmd *domain.UpdateBookingCommand) (*domain.Booking, error)
	Delete(ctx context.Context, caller Caller, bookingID int64) error
}

type bookingService struct {
	bookingRepo  postgres.BookingRepository
	cabinRepo    postgres.CabinRepository
	settingsRepo postgres.SettingsRepository
	cache        Cache
	eventBus     Publisher
	mailer       mailer.Service
}

func NewBookingService(
	bookingRepo postgres.BookingRepository,
	cabinRepo postgres.CabinRepository,
	settingsRepo postgres.SettingsRepository,
	c Cache,
	eventBus Publisher,
	m mailer.Service,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		cabinRepo:    cabinRepo,
		settingsRepo: settingsRepo,
		cache:        c,
		eventBus:     eventBus,
		mailer:       m,
	}
}

func (s *bookingService) Create(ctx context.Context, caller Caller, cmd *domain.CreateBookingCommand) (*domain.Booking, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	numNights := domain.NightsBetween(cmd.StartDate, cmd.EndDate)
	if numNights <= 0 {
		return nil, fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidInput)
	}

	cabin, err := s.cabinRepo.GetByID(ctx, cmd.CabinID)
	if err != nil {
		return nil, fmt.Errorf("%w: load cabin: %v", domain.ErrPersistence, err)
	}
	if cabin == nil {
		return nil, fmt.Errorf("%w: cabin %d", domain.ErrNotFound, cmd.CabinID)
	}

	if err := s.checkPolicy(ctx, cabin, numNights, cmd.NumGuests); err != nil {
		return nil, err
	}

	// Price is always recomputed here; whatever the form claimed is ignored.
	cabinPrice := float64(numNights) * (cabin.RegularPrice - cabin.Discount)

	booking, err := s.bookingRepo.Create(ctx, &domain.Booking{
		CabinID:      cmd.CabinID,
		GuestID:      caller.GuestID,
		StartDate:    cmd.StartDate,
		EndDate:      cmd.EndDate,
		NumNights:    numNights,
		NumGuests:    cmd.NumGuests,
		Observations: domain.TruncateObservations(cmd.Observations),
		CabinPrice:   cabinPrice,
		ExtrasPrice:  0,
		TotalPrice:   cabinPrice,
		IsPaid:       false,
		HasBreakfast: false,
		Status:       domain.BookingUnconfirmed,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to insert booking", "error", err, "cabin_id", cmd.CabinID)
		return nil, fmt.Errorf("%w: create booking", domain.ErrPersistence)
	}

	s.invalidate(ctx, cache.CabinKey(cmd.CabinID), cache.GuestBookingsKey(caller.GuestID))

	if err := s.eventBus.Publish(ctx, events.BookingCreated, events.BookingCreatedEvent{
		BookingID:  booking.ID,
		CabinID:    booking.CabinID,
		GuestID:    booking.GuestID,
		GuestEmail: caller.Email,
		StartDate:  booking.StartDate,
		EndDate:    booking.EndDate,
		NumNights:  booking.NumNights,
		TotalPrice: booking.TotalPrice,
		CreatedAt:  booking.CreatedAt,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking created event", "error", err, "booking_id", booking.ID)
	}

	if err := s.mailer.SendBookingConfirmation(caller.Email, caller.Name, cabin.Name, booking); err != nil {
		logger.ErrorContext(ctx, "Failed to send booking confirmation", "error", err, "booking_id", booking.ID)
	}

	logger.InfoContext(ctx, "Booking created",
		"booking_id", booking.ID,
		"cabin_id", booking.CabinID,
		"nights", booking.NumNights,
		"total_price", booking.TotalPrice,
	)

	return booking, nil
}

func (s *bookingService) GetOwned(ctx context.Context, caller Caller, bookingID int64) (*domain.Booking, error) {
	booking, err := s.fetchOwned(ctx, caller, bookingID)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListForGuest(ctx context.Context, caller Caller) ([]domain.BookingWithCabin, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	key := cache.GuestBookingsKey(caller.GuestID)
	var cached []domain.BookingWithCabin
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		logger.WarnContext(ctx, "Reservation list cache read failed", "error", err)
	} else if hit {
		return cached, nil
	}

	bookings, err := s.bookingRepo.ListByGuest(ctx, caller.GuestID)
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings: %v", domain.ErrPersistence, err)
	}

	if err := s.cache.SetJSON(ctx, key, bookings); err != nil {
		logger.WarnContext(ctx, "Reservation list cache write failed", "error", err)
	}

	return bookings, nil
}

func (s *bookingService) Update(ctx context.Context, caller Caller, bookingID int64, cmd *domain.UpdateBookingCommand) (*domain.Booking, error) {
	existing, err := s.fetchOwned(ctx, caller, bookingID)
	if err != nil {
		return nil, err
	}

	updated, err := s.bookingRepo.Update(ctx, bookingID, cmd.NumGuests, domain.TruncateObservations(cmd.Observations))
	if err != nil {
		return nil, fmt.Errorf("%w: update booking", domain.ErrPersistence)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: booking %d", domain.ErrNotFound, bookingID)
	}

	s.invalidate(ctx, cache.CabinKey(existing.CabinID), cache.GuestBookingsKey(caller.GuestID))

	if err := s.eventBus.Publish(ctx, events.BookingUpdated, events.BookingUpdatedEvent{
		BookingID: updated.ID,
		GuestID:   updated.GuestID,
		Changes:   changedFields(existing, updated),
		UpdatedAt: updated.UpdatedAt,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking updated event", "error", err, "booking_id", updated.ID)
	}

	return updated, nil
}

func (s *bookingService) Delete(ctx context.Context, caller Caller, bookingID int64) error {
	existing, err := s.fetchOwned(ctx, caller, bookingID)
	if err != nil {
		return err
	}

	ok, err := s.bookingRepo.Delete(ctx, bookingID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to delete booking", "error", err, "booking_id", bookingID)
		return fmt.Errorf("%w: delete booking", domain.ErrPersistence)
	}
	if !ok {
		return fmt.Errorf("%w: booking %d", domain.ErrNotFound, bookingID)
	}

	s.invalidate(ctx, cache.CabinKey(existing.CabinID), cache.GuestBookingsKey(caller.GuestID))

	if err := s.eventBus.Publish(ctx, events.BookingCanceled, events.BookingCanceledEvent{
		BookingID:  bookingID,
		CabinID:    existing.CabinID,
		GuestID:    caller.GuestID,
		CanceledAt: time.Now(),
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking canceled event", "error", err, "booking_id", bookingID)
	}

	logger.InfoContext(ctx, "Booking deleted", "booking_id", bookingID)
	return nil
}

// fetchOwned loads a booking and enforces ownership with a targeted fetch
// rather than scanning the guest's whole list.
func (s *bookingService) fetchOwned(ctx context.Context, caller Caller, bookingID int64) (*domain.Booking, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: load booking: %v", domain.ErrPersistence, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %d", domain.ErrNotFound, bookingID)
	}
	if !booking.IsOwner(caller.GuestID) {
		return nil, fmt.Errorf("%w: booking %d belongs to another guest", domain.ErrForbidden, bookingID)
	}
	return booking, nil
}

// checkPolicy applies the settings singleton and the cabin's capacity to a
// new booking. A missing settings row skips the length/guest limits rather
// than blocking bookings.
func (s *bookingService) checkPolicy(ctx context.Context, cabin *domain.Cabin, numNights, numGuests int) error {
	if numGuests > cabin.MaxCapacity {
		return fmt.Errorf("%w: cabin sleeps at most %d guests", domain.ErrInvalidInput, cabin.MaxCapacity)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("%w: load settings: %v", domain.ErrPersistence, err)
	}
	if settings == nil {
		return nil
	}

	if settings.MinBookingLength > 0 && numNights < settings.MinBookingLength {
		return fmt.Errorf("%w: minimum stay is %d nights", domain.ErrInvalidInput, settings.MinBookingLength)
	}
	if settings.MaxBookingLength > 0 && numNights > settings.MaxBookingLength {
		return fmt.Errorf("%w: maximum stay is %d nights", domain.ErrInvalidInput, settings.MaxBookingLength)
	}
	if settings.MaxGuestsPerBooking > 0 && numGuests > settings.MaxGuestsPerBooking {
		return fmt.Errorf("%w: at most %d guests per booking", domain.ErrInvalidInput, settings.MaxGuestsPerBooking)
	}
	return nil
}

func (s *bookingService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		logger.WarnContext(ctx, "Cache invalidation failed", "error", err, "keys", keys)
	}
}

func changedFields(before, after *domain.Booking) []string {
	var changes []string
	if before.NumGuests != after.NumGuests {
		changes = append(changes, "num_guests")
	}
	if before.Observations != after.Observations {
		changes = append(changes, "observations")
	}
	return changes
}
