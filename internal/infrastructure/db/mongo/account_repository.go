package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
)

const (
	collectionUsers   = "users"
	collectionCarers  = "carers"
	collectionClients = "clients"
)

var accountSort = bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}

type UserRepository struct {
	store store[domain.User]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{store: newStore[domain.User](db, collectionUsers, domain.ErrUserNotFound, domain.ErrEmailTaken)}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return r.store.insert(ctx, u)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.store.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.store.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.User, int64, error) {
	return r.store.find(ctx, searchFilter(f.Search, "name", "email"), accountSort, f.Page, f.Limit)
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.store.replace(ctx, u.ID, u)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.store.deleteByID(ctx, id)
}

type CarerRepository struct {
	store store[domain.Carer]
}

func NewCarerRepository(db *mongo.Database) *CarerRepository {
	return &CarerRepository{store: newStore[domain.Carer](db, collectionCarers, domain.ErrCarerNotFound, domain.ErrEmailTaken)}
}

func (r *CarerRepository) Create(ctx context.Context, c *domain.Carer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return r.store.insert(ctx, c)
}

func (r *CarerRepository) FindByID(ctx context.Context, id string) (*domain.Carer, error) {
	return r.store.findOne(ctx, bson.M{"_id": id})
}

func (r *CarerRepository) FindByEmail(ctx context.Context, email string) (*domain.Carer, error) {
	return r.store.findOne(ctx, bson.M{"email": email})
}

// List searches carers by name, email or postcode.
func (r *CarerRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Carer, int64, error) {
	return r.store.find(ctx, searchFilter(f.Search, "name", "email", "postcode"), accountSort, f.Page, f.Limit)
}

func (r *CarerRepository) Update(ctx context.Context, c *domain.Carer) error {
	return r.store.replace(ctx, c.ID, c)
}

func (r *CarerRepository) Delete(ctx context.Context, id string) error {
	return r.store.deleteByID(ctx, id)
}

type ClientRepository struct {
	store store[domain.Client]
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{store: newStore[domain.Client](db, collectionClients, domain.ErrClientNotFound, domain.ErrEmailTaken)}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return r.store.insert(ctx, c)
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	return r.store.findOne(ctx, bson.M{"_id": id})
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.store.findOne(ctx, bson.M{"email": email})
}

func (r *ClientRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Client, int64, error) {
	return r.store.find(ctx, searchFilter(f.Search, "name", "email", "postcode"), accountSort, f.Page, f.Limit)
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	return r.store.replace(ctx, c.ID, c)
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	return r.store.deleteByID(ctx, id)
}
