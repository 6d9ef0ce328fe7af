package ports

import (
	"context"

	"github.com/carebook/care-services/internal/core/domain"
)

// ServiceInput carries the writable fields of a catalogue entry.
type ServiceInput struct {
	Name            string
	Description     string
	DurationMinutes int
	PricePence      int64
	Active          bool
}

// CatalogService manages the care services catalogue.
type CatalogService interface {
	Create(ctx context.Context, actor Actor, in ServiceInput) (*domain.Service, error)
	Get(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context, filter ServiceFilter) (*Page[*domain.Service], error)
	Update(ctx context.Context, actor Actor, id string, in ServiceInput) (*domain.Service, error)
	// UpsertByName updates the service called in.Name or creates it.
	UpsertByName(ctx context.Context, actor Actor, in ServiceInput) (*domain.Service, error)
	Delete(ctx context.Context, actor Actor, id string) error
}
