package ports

import (
	"context"

	"github.com/carebook/care-services/internal/core/domain"
)

// ServiceFilter narrows the catalogue; ActiveOnly hides retired services.
type ServiceFilter struct {
	ListFilter
	ActiveOnly bool
}

// ServiceRepository persists the care services catalogue.
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	FindByID(ctx context.Context, id string) (*domain.Service, error)
	FindByName(ctx context.Context, name string) (*domain.Service, error)
	List(ctx context.Context, filter ServiceFilter) ([]*domain.Service, int64, error)
	Update(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, id string) error
}
