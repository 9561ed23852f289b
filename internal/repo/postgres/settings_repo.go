package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pinehollow/cabin-bookings/internal/domain"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
}

type settingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{pool: pool}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	const q = `SELECT min_booking_length, max_booking_length, max_guests_per_booking, breakfast_price
FROM settings LIMIT 1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.Settings
	err := r.pool.QueryRow(ctx, q).Scan(
		&s.MinBookingLength, &s.MaxBookingLength, &s.MaxGuestsPerBooking, &s.BreakfastPrice,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
