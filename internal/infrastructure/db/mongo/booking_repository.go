package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
)

const collectionBookings = "bookings"

var bookingSort = bson.D{
	{Key: "date", Value: 1},
	{Key: "start_time", Value: 1},
	{Key: "created_at", Value: 1},
}

type BookingRepository struct {
	store store[domain.Booking]
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{store: newStore[domain.Booking](db, collectionBookings, domain.ErrBookingNotFound, domain.ErrDuplicate)}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return r.store.insert(ctx, b)
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.store.findOne(ctx, bson.M{"_id": id})
}

func (r *BookingRepository) List(ctx context.Context, f ports.BookingFilter) ([]*domain.Booking, int64, error) {
	return r.store.find(ctx, bookingFilter(f), bookingSort, f.Page, f.Limit)
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	return r.store.replace(ctx, b.ID, b)
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	return r.store.deleteByID(ctx, id)
}

func bookingFilter(f ports.BookingFilter) bson.M {
	filter := bson.M{}
	if f.ClientID != "" {
		filter["client_id"] = f.ClientID
	}
	if f.CarerID != "" {
		filter["carer_id"] = f.CarerID
	}
	if f.ServiceID != "" {
		filter["service_id"] = f.ServiceID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if r := dateRange(f.DateFrom, f.DateTo); r != nil {
		filter["date"] = r
	}
	return filter
}
