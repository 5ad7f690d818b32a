package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/astro-booking/internal/domain"
)

// BookingRepository persists consultation requests.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository instantiates the repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if r.pool == nil {
		return ErrUnavailable
	}
	const query = `
        INSERT INTO bookings (id, name, email, phone, service, preferred_date, message, language, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		booking.ID,
		booking.Name,
		booking.Email,
		booking.Phone,
		booking.Service,
		booking.PreferredDate,
		booking.Message,
		booking.Language,
		booking.Status,
	).Scan(&booking.CreatedAt)
	return translate(err)
}
