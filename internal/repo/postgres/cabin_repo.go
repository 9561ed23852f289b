package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pinehollow/cabin-bookings/internal/domain"
)

type CabinRepository interface {
	List(ctx context.Context) ([]domain.Cabin, error)
	GetByID(ctx context.Context, id int64) (*domain.Cabin, error)
}

type cabinRepository struct {
	pool *pgxpool.Pool
}

func NewCabinRepository(pool *pgxpool.Pool) CabinRepository {
	return &cabinRepository{pool: pool}
}

const cabinCols = `id, name, max_capacity, regular_price, discount, image, description, created_at`

func (r *cabinRepository) List(ctx context.Context) ([]domain.Cabin, error) {
	const q = `SELECT ` + cabinCols + ` FROM cabins ORDER BY name`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cabins []domain.Cabin
	for rows.Next() {
		var c domain.Cabin
		if err := rows.Scan(
			&c.ID, &c.Name, &c.MaxCapacity, &c.RegularPrice, &c.Discount,
			&c.Image, &c.Description, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		cabins = append(cabins, c)
	}
	return cabins, rows.Err()
}

func (r *cabinRepository) GetByID(ctx context.Context, id int64) (*domain.Cabin, error) {
	const q = `SELECT ` + cabinCols + ` FROM cabins WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var c domain.Cabin
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&c.ID, &c.Name, &c.MaxCapacity, &c.RegularPrice, &c.Discount,
		&c.Image, &c.Description, &c.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
