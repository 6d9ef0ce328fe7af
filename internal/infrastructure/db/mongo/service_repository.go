package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
)

const collectionServices = "services"

type ServiceRepository struct {
	store store[domain.Service]
}

func NewServiceRepository(db *mongo.Database) *ServiceRepository {
	return &ServiceRepository{store: newStore[domain.Service](db, collectionServices, domain.ErrServiceNotFound, domain.ErrDuplicate)}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.store.insert(ctx, s)
}

func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*domain.Service, error) {
	return r.store.findOne(ctx, bson.M{"_id": id})
}

func (r *ServiceRepository) FindByName(ctx context.Context, name string) (*domain.Service, error) {
	return r.store.findOne(ctx, bson.M{"name": name})
}

func (r *ServiceRepository) List(ctx context.Context, f ports.ServiceFilter) ([]*domain.Service, int64, error) {
	return r.store.find(ctx, serviceFilter(f), bson.D{{Key: "name", Value: 1}}, f.Page, f.Limit)
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	return r.store.replace(ctx, s.ID, s)
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	return r.store.deleteByID(ctx, id)
}

func serviceFilter(f ports.ServiceFilter) bson.M {
	filter := searchFilter(f.Search, "name", "description")
	if f.ActiveOnly {
		filter["active"] = true
	}
	return filter
}
