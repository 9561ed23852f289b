package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pinehollow/cabin-bookings/internal/domain"
)

// BookedRange is the slim projection the availability query works from.
type BookedRange struct {
	StartDate time.Time
	EndDate   time.Time
	Status    domain.BookingStatus
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByGuest(ctx context.Context, guestID int64) ([]domain.BookingWithCabin, error)
	ListRangesForCabin(ctx context.Context, cabinID int64, from time.Time) ([]BookedRange, error)
	Update(ctx context.Context, id int64, numGuests int, observations string) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingCols = `id, cabin_id, guest_id, start_date, end_date,
num_nights, num_guests, observations,
cabin_price, extras_price, total_price,
is_paid, has_breakfast, status, created_at, updated_at`

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(
		&b.ID, &b.CabinID, &b.GuestID, &b.StartDate, &b.EndDate,
		&b.NumNights, &b.NumGuests, &b.Observations,
		&b.CabinPrice, &b.ExtrasPrice, &b.TotalPrice,
		&b.IsPaid, &b.HasBreakfast, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	const q = `INSERT INTO bookings (
		cabin_id, guest_id, start_date, end_date,
		num_nights, num_guests, observations,
		cabin_price, extras_price, total_price,
		is_paid, has_breakfast, status
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var out domain.Booking
	err := scanBooking(r.pool.QueryRow(ctx, q,
		b.CabinID, b.GuestID, b.StartDate, b.EndDate,
		b.NumNights, b.NumGuests, b.Observations,
		b.CabinPrice, b.ExtrasPrice, b.TotalPrice,
		b.IsPaid, b.HasBreakfast, b.Status,
	), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := scanBooking(r.pool.QueryRow(ctx, q, id), &b)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) ListByGuest(ctx context.Context, guestID int64) ([]domain.BookingWithCabin, error) {
	const q = `
SELECT b.id, b.cabin_id, b.guest_id, b.start_date, b.end_date,
       b.num_nights, b.num_guests, b.observations,
       b.cabin_price, b.extras_price, b.total_price,
       b.is_paid, b.has_breakfast, b.status, b.created_at, b.updated_at,
       c.name, c.image
FROM bookings b
JOIN cabins c ON c.id = b.cabin_id
WHERE b.guest_id = $1
ORDER BY b.start_date`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.BookingWithCabin
	for rows.Next() {
		var b domain.BookingWithCabin
		if err := rows.Scan(
			&b.ID, &b.CabinID, &b.GuestID, &b.StartDate, &b.EndDate,
			&b.NumNights, &b.NumGuests, &b.Observations,
			&b.CabinPrice, &b.ExtrasPrice, &b.TotalPrice,
			&b.IsPaid, &b.HasBreakfast, &b.Status, &b.CreatedAt, &b.UpdatedAt,
			&b.CabinName, &b.CabinImage,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) ListRangesForCabin(ctx context.Context, cabinID int64, from time.Time) ([]BookedRange, error) {
	const q = `
SELECT start_date, end_date, status
FROM bookings
WHERE cabin_id = $1 AND (end_date >= $2 OR status = 'checked-in')
ORDER BY start_date`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, cabinID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranges []BookedRange
	for rows.Next() {
		var br BookedRange
		if err := rows.Scan(&br.StartDate, &br.EndDate, &br.Status); err != nil {
			return nil, err
		}
		ranges = append(ranges, br)
	}
	return ranges, rows.Err()
}

func (r *bookingRepository) Update(ctx context.Context, id int64, numGuests int, observations string) (*domain.Booking, error) {
	const q = `
UPDATE bookings
SET num_guests=$2, observations=$3, updated_at=now()
WHERE id=$1
RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := scanBooking(r.pool.QueryRow(ctx, q, id, numGuests, observations), &b)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
