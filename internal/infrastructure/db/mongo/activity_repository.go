package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
)

const (
	collectionActivity       = "activity_logs"
	collectionDeleteRequests = "account_delete_requests"
)

type ActivityRepository struct {
	store store[domain.ActivityLog]
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{store: newStore[domain.ActivityLog](db, collectionActivity, nil, nil)}
}

func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.ActivityLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return r.store.insert(ctx, entry)
}

// List returns the newest entries first.
func (r *ActivityRepository) List(ctx context.Context, f ports.ActivityFilter) ([]*domain.ActivityLog, int64, error) {
	return r.store.find(ctx, activityFilter(f), bson.D{{Key: "timestamp", Value: -1}}, f.Page, f.Limit)
}

func activityFilter(f ports.ActivityFilter) bson.M {
	filter := bson.M{}
	if f.ActorID != "" {
		filter["actor_id"] = f.ActorID
	}
	if f.Entity != "" {
		filter["entity"] = f.Entity
	}
	if r := dateRange(f.DateFrom, f.DateTo); r != nil {
		filter["timestamp"] = r
	}
	return filter
}

type DeleteRequestRepository struct {
	store store[domain.AccountDeleteRequest]
}

func NewDeleteRequestRepository(db *mongo.Database) *DeleteRequestRepository {
	return &DeleteRequestRepository{
		store: newStore[domain.AccountDeleteRequest](db, collectionDeleteRequests, domain.ErrDeleteRequestNotFound, domain.ErrDuplicate),
	}
}

func (r *DeleteRequestRepository) Create(ctx context.Context, req *domain.AccountDeleteRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	return r.store.insert(ctx, req)
}

func (r *DeleteRequestRepository) FindByID(ctx context.Context, id string) (*domain.AccountDeleteRequest, error) {
	return r.store.findOne(ctx, bson.M{"_id": id})
}

func (r *DeleteRequestRepository) FindPending(ctx context.Context, accountID string) (*domain.AccountDeleteRequest, error) {
	return r.store.findOne(ctx, bson.M{"account_id": accountID, "status": domain.DeleteRequestPending})
}

func (r *DeleteRequestRepository) List(ctx context.Context, f ports.DeleteRequestFilter) ([]*domain.AccountDeleteRequest, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.AccountRole != "" {
		filter["account_role"] = f.AccountRole
	}
	return r.store.find(ctx, filter, bson.D{{Key: "created_at", Value: -1}}, f.Page, f.Limit)
}

func (r *DeleteRequestRepository) Update(ctx context.Context, req *domain.AccountDeleteRequest) error {
	return r.store.replace(ctx, req.ID, req)
}

// dateRange builds an inclusive range on a date field; nil when both ends are zero.
func dateRange(from, to time.Time) bson.M {
	if from.IsZero() && to.IsZero() {
		return nil
	}
	r := bson.M{}
	if !from.IsZero() {
		r["$gte"] = from
	}
	if !to.IsZero() {
		r["$lte"] = to
	}
	return r
}
