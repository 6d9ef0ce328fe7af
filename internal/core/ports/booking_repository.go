package ports

import (
	"context"

	"github.com/carebook/care-services/internal/core/domain"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	// List returns a page of bookings matching filter and the total count.
	// A zero Limit returns every match.
	List(ctx context.Context, filter BookingFilter) ([]*domain.Booking, int64, error)
	Update(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id string) error
}
