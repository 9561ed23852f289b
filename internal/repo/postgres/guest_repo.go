package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pinehollow/cabin-bookings/internal/domain"
)

type GuestRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Guest, error)
	// Ensure inserts a guest for the email when none exists and returns the
	// existing row otherwise. The upsert makes concurrent first logins for
	// the same email converge on a single row.
	Ensure(ctx context.Context, email, fullName string) (*domain.Guest, error)
	UpdateProfile(ctx context.Context, email string, nationalID, nationality, countryFlag *string) (*domain.Guest, error)
}

type guestRepository struct {
	pool *pgxpool.Pool
}

func NewGuestRepository(pool *pgxpool.Pool) GuestRepository {
	return &guestRepository{pool: pool}
}

const guestCols = `id, email, full_name, nationality, national_id, country_flag, created_at`

func (r *guestRepository) FindByEmail(ctx context.Context, email string) (*domain.Guest, error) {
	const q = `SELECT ` + guestCols + ` FROM guests WHERE lower(email)=lower($1)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var g domain.Guest
	err := r.pool.QueryRow(ctx, q, email).Scan(
		&g.ID, &g.Email, &g.FullName, &g.Nationality, &g.NationalID, &g.CountryFlag, &g.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *guestRepository) Ensure(ctx context.Context, email, fullName string) (*domain.Guest, error) {
	// The no-op conflict update makes RETURNING yield the existing row
	// instead of nothing, so one round trip covers both paths.
	const q = `
INSERT INTO guests (email, full_name)
VALUES (lower($1), $2)
ON CONFLICT (email) DO UPDATE SET email = guests.email
RETURNING ` + guestCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var g domain.Guest
	err := r.pool.QueryRow(ctx, q, email, fullName).Scan(
		&g.ID, &g.Email, &g.FullName, &g.Nationality, &g.NationalID, &g.CountryFlag, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *guestRepository) UpdateProfile(ctx context.Context, email string, nationalID, nationality, countryFlag *string) (*domain.Guest, error) {
	const q = `
UPDATE guests
SET national_id=$2, nationality=$3, country_flag=$4
WHERE lower(email)=lower($1)
RETURNING ` + guestCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var g domain.Guest
	err := r.pool.QueryRow(ctx, q, email, nationalID, nationality, countryFlag).Scan(
		&g.ID, &g.Email, &g.FullName, &g.Nationality, &g.NationalID, &g.CountryFlag, &g.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}
