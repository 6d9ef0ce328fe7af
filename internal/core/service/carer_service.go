package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
)

// CarerService manages carer accounts.
type CarerService struct {
	repo     ports.CarerRepository
	bookings ports.BookingReleaser
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

// NewCarerService wires the account store. bookings may be nil, in which case
// Delete leaves the account's bookings untouched.
func NewCarerService(repo ports.CarerRepository, bookings ports.BookingReleaser, activity ports.ActivityRecorder, logger zerolog.Logger) *CarerService {
	return &CarerService{repo: repo, bookings: bookings, activity: activity, logger: logger}
}

func (s *CarerService) Create(ctx context.Context, actor ports.Actor, in ports.CarerInput) (*domain.Carer, error) {
	if strings.TrimSpace(in.Name) == "" || normalizeEmail(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("create carer: %w", domain.ErrInvalidInput)
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.Carer{PasswordHash: hash, CreatedAt: now, UpdatedAt: now}
	applyCarerInput(c, in)

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create carer: %w", err)
	}

	s.logger.Info().Str("carer_id", c.ID).Str("actor_id", actor.ID).Msg("carer created")
	record(s.activity, actor, domain.ActionCreate, domain.EntityCarer, c.ID, c.Email)
	return c, nil
}

func (s *CarerService) Get(ctx context.Context, id string) (*domain.Carer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CarerService) List(ctx context.Context, filter ports.ListFilter) (*ports.Page[*domain.Carer], error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list carers: %w", err)
	}
	return newPage(items, total, filter.Page, filter.Limit), nil
}

func (s *CarerService) Update(ctx context.Context, actor ports.Actor, id string, in ports.CarerInput) (*domain.Carer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCarerInput(c, in)
	if in.Password != "" {
		if c.PasswordHash, err = hashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update carer: %w", err)
	}
	record(s.activity, actor, domain.ActionUpdate, domain.EntityCarer, c.ID, "")
	return c, nil
}

// Delete removes the account after releasing its open bookings.
func (s *CarerService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("delete carer: %w", err)
	}
	if s.bookings != nil {
		if err := s.bookings.ReleaseAccount(ctx, actor, domain.RoleCarer, id); err != nil {
			return fmt.Errorf("delete carer: %w", err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete carer: %w", err)
	}
	record(s.activity, actor, domain.ActionDelete, domain.EntityCarer, id, "")
	return nil
}

func applyCarerInput(c *domain.Carer, in ports.CarerInput) {
	if name := strings.TrimSpace(in.Name); name != "" {
		c.Name = name
	}
	if email := normalizeEmail(in.Email); email != "" {
		c.Email = email
	}
	c.Phone = strings.TrimSpace(in.Phone)
	c.Address = strings.TrimSpace(in.Address)
	c.Postcode = strings.ToUpper(strings.TrimSpace(in.Postcode))
	c.Active = in.Active
}
