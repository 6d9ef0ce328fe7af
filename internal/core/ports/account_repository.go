package ports

import (
	"context"

	"github.com/carebook/care-services/internal/core/domain"
)

// UserRepository persists admin staff accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.User, int64, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

// CarerRepository persists carers.
type CarerRepository interface {
	Create(ctx context.Context, c *domain.Carer) error
	FindByID(ctx context.Context, id string) (*domain.Carer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Carer, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Carer, int64, error)
	Update(ctx context.Context, c *domain.Carer) error
	Delete(ctx context.Context, id string) error
}

// ClientRepository persists clients.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Client, int64, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}
