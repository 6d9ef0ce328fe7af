package ports

import (
	"context"
	"time"

	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/roster"
)

// CreateBookingInput carries all data needed to create a booking.
type CreateBookingInput struct {
	ClientID  string
	ServiceID string
	CarerID   string     // optional; admins may assign at creation
	Date      *time.Time // optional calendar day
	StartTime string     // optional "HH:MM"
	Notes     string
	// IdempotencyKey makes client retries safe; it is scoped to ClientID.
	IdempotencyKey string
}

// BookingResult is returned after creating a booking.
type BookingResult struct {
	Booking *domain.Booking
	// AlreadyExisted is true when the idempotency key matched an earlier booking.
	AlreadyExisted bool
}

// UpdateBookingInput is the admin edit of a booking. An empty Status keeps
// the current one; a non-empty Status must be a valid transition.
type UpdateBookingInput struct {
	ServiceID string
	Date      *time.Time
	StartTime string
	Notes     string
	Status    string
}

// RescheduleInput is the client edit of its own booking.
type RescheduleInput struct {
	Date      *time.Time
	StartTime string
	Notes     string
}

// BookingService defines use-case operations for bookings.
type BookingService interface {
	Create(ctx context.Context, actor Actor, in CreateBookingInput) (*BookingResult, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter BookingFilter) (*Page[*domain.Booking], error)
	// Grouped returns every booking matching filter bucketed by date; paging is ignored.
	Grouped(ctx context.Context, filter BookingFilter) ([]roster.Group, error)
	Update(ctx context.Context, actor Actor, id string, in UpdateBookingInput) (*domain.Booking, error)
	// Assign sets the carer; an empty carerID unassigns and returns the booking to pending.
	Assign(ctx context.Context, actor Actor, id, carerID string) (*domain.Booking, error)
	Delete(ctx context.Context, actor Actor, id string) error

	// Roster is the carer's own grouped view.
	Roster(ctx context.Context, carerID string) ([]roster.Group, error)
	// MarkCompletion records the carer's outcome for a confirmed booking.
	MarkCompletion(ctx context.Context, actor Actor, id string, status domain.BookingStatus, note string) (*domain.Booking, error)

	// ClientBookings is the client's own grouped view.
	ClientBookings(ctx context.Context, clientID string) ([]roster.Group, error)
	Reschedule(ctx context.Context, actor Actor, id string, in RescheduleInput) (*domain.Booking, error)
	Cancel(ctx context.Context, actor Actor, id string) (*domain.Booking, error)
}

// BookingReleaser frees the open bookings of an account that is being
// removed. A carer's go back to pending without a carer; a client's are
// cancelled. Terminal bookings are left as they are.
type BookingReleaser interface {
	ReleaseAccount(ctx context.Context, actor Actor, role, accountID string) error
}
