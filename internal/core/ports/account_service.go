package ports

import (
	"context"

	"github.com/carebook/care-services/internal/core/domain"
)

// CreateUserInput carries the fields of a new admin account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput replaces an admin account. An empty Password keeps the current one.
type UpdateUserInput struct {
	ID       string
	Name     string
	Email    string
	Password string
}

// CarerInput carries the writable fields of a carer. On update an empty
// Password keeps the current one.
type CarerInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Postcode string
	Active   bool
}

// ClientInput carries the writable fields of a client. On update an empty
// Password keeps the current one.
type ClientInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Postcode string
	Notes    string
}

type UserService interface {
	Create(ctx context.Context, actor Actor, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter ListFilter) (*Page[*domain.User], error)
	Update(ctx context.Context, actor Actor, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type CarerService interface {
	Create(ctx context.Context, actor Actor, in CarerInput) (*domain.Carer, error)
	Get(ctx context.Context, id string) (*domain.Carer, error)
	List(ctx context.Context, filter ListFilter) (*Page[*domain.Carer], error)
	Update(ctx context.Context, actor Actor, id string, in CarerInput) (*domain.Carer, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type ClientService interface {
	// Register creates a client account on behalf of the client itself.
	Register(ctx context.Context, in ClientInput) (*domain.Client, error)
	Create(ctx context.Context, actor Actor, in ClientInput) (*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, filter ListFilter) (*Page[*domain.Client], error)
	Update(ctx context.Context, actor Actor, id string, in ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, actor Actor, id string) error
}
