package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
)

// CatalogService manages the services clients can book.
type CatalogService struct {
	repo     ports.ServiceRepository
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewCatalogService(repo ports.ServiceRepository, activity ports.ActivityRecorder, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, activity: activity, logger: logger}
}

func (s *CatalogService) Create(ctx context.Context, actor ports.Actor, in ports.ServiceInput) (*domain.Service, error) {
	if err := validateServiceInput(in); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	now := time.Now().UTC()
	svc := &domain.Service{CreatedAt: now, UpdatedAt: now}
	applyServiceInput(svc, in)

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	s.logger.Info().Str("service_id", svc.ID).Str("name", svc.Name).Msg("service created")
	record(s.activity, actor, domain.ActionCreate, domain.EntityService, svc.ID, svc.Name)
	return svc, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Service, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) List(ctx context.Context, filter ports.ServiceFilter) (*ports.Page[*domain.Service], error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return newPage(items, total, filter.Page, filter.Limit), nil
}

func (s *CatalogService) Update(ctx context.Context, actor ports.Actor, id string, in ports.ServiceInput) (*domain.Service, error) {
	if err := validateServiceInput(in); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, actor, svc, in)
}

func (s *CatalogService) UpsertByName(ctx context.Context, actor ports.Actor, in ports.ServiceInput) (*domain.Service, error) {
	if err := validateServiceInput(in); err != nil {
		return nil, fmt.Errorf("upsert service: %w", err)
	}
	svc, err := s.repo.FindByName(ctx, strings.TrimSpace(in.Name))
	if errors.Is(err, domain.ErrServiceNotFound) {
		return s.Create(ctx, actor, in)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert service: %w", err)
	}
	return s.update(ctx, actor, svc, in)
}

func (s *CatalogService) update(ctx context.Context, actor ports.Actor, svc *domain.Service, in ports.ServiceInput) (*domain.Service, error) {
	applyServiceInput(svc, in)
	svc.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	record(s.activity, actor, domain.ActionUpdate, domain.EntityService, svc.ID, svc.Name)
	return svc, nil
}

func (s *CatalogService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	record(s.activity, actor, domain.ActionDelete, domain.EntityService, id, "")
	return nil
}

func validateServiceInput(in ports.ServiceInput) error {
	if strings.TrimSpace(in.Name) == "" || in.DurationMinutes <= 0 || in.PricePence < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

func applyServiceInput(svc *domain.Service, in ports.ServiceInput) {
	svc.Name = strings.TrimSpace(in.Name)
	svc.Description = strings.TrimSpace(in.Description)
	svc.DurationMinutes = in.DurationMinutes
	svc.PricePence = in.PricePence
	svc.Active = in.Active
}
