package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pinehollow/cabin-bookings/internal/domain"
	"github.com/pinehollow/cabin-bookings/internal/repo/postgres"
)

type AvailabilityService interface {
	BookedDays(ctx context.Context, cabinID int64) ([]time.Time, error)
}

type availabilityService struct {
	bookingRepo postgres.BookingRepository
}

func NewAvailabilityService(bookingRepo postgres.BookingRepository) AvailabilityService {
	return &availabilityService{bookingRepo: bookingRepo}
}

// BookedDays returns every individual day covered by a booking that is
// either still upcoming or currently checked in, deduplicated and sorted.
// Both endpoints of each stay are included so a picker blocks the whole
// occupied span.
func (s *availabilityService) BookedDays(ctx context.Context, cabinID int64) ([]time.Time, error) {
	ranges, err := s.bookingRepo.ListRangesForCabin(ctx, cabinID, today())
	if err != nil {
		return nil, fmt.Errorf("%w: list booked ranges: %v", domain.ErrPersistence, err)
	}

	seen := make(map[time.Time]struct{})
	for _, r := range ranges {
		for d := dayOf(r.StartDate); !d.After(dayOf(r.EndDate)); d = d.AddDate(0, 0, 1) {
			seen[d] = struct{}{}
		}
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
