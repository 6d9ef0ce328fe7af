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

// ClientService manages client accounts, both admin-managed and self-registered.
type ClientService struct {
	repo     ports.ClientRepository
	bookings ports.BookingReleaser
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

// NewClientService wires the account store. bookings may be nil, in which case
// Delete leaves the account's bookings untouched.
func NewClientService(repo ports.ClientRepository, bookings ports.BookingReleaser, activity ports.ActivityRecorder, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, bookings: bookings, activity: activity, logger: logger}
}

// Register creates the account and logs it as the client's own action.
func (s *ClientService) Register(ctx context.Context, in ports.ClientInput) (*domain.Client, error) {
	c, err := s.create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("register client: %w", err)
	}
	record(s.activity, ports.Actor{ID: c.ID, Role: domain.RoleClient}, domain.ActionCreate, domain.EntityClient, c.ID, "self registration")
	return c, nil
}

func (s *ClientService) Create(ctx context.Context, actor ports.Actor, in ports.ClientInput) (*domain.Client, error) {
	c, err := s.create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	s.logger.Info().Str("client_id", c.ID).Str("actor_id", actor.ID).Msg("client created")
	record(s.activity, actor, domain.ActionCreate, domain.EntityClient, c.ID, c.Email)
	return c, nil
}

func (s *ClientService) create(ctx context.Context, in ports.ClientInput) (*domain.Client, error) {
	if strings.TrimSpace(in.Name) == "" || normalizeEmail(in.Email) == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.Client{PasswordHash: hash, CreatedAt: now, UpdatedAt: now}
	applyClientInput(c, in)

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context, filter ports.ListFilter) (*ports.Page[*domain.Client], error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return newPage(items, total, filter.Page, filter.Limit), nil
}

func (s *ClientService) Update(ctx context.Context, actor ports.Actor, id string, in ports.ClientInput) (*domain.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyClientInput(c, in)
	if in.Password != "" {
		if c.PasswordHash, err = hashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	record(s.activity, actor, domain.ActionUpdate, domain.EntityClient, c.ID, "")
	return c, nil
}

// Delete removes the account after releasing its open bookings.
func (s *ClientService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if s.bookings != nil {
		if err := s.bookings.ReleaseAccount(ctx, actor, domain.RoleClient, id); err != nil {
			return fmt.Errorf("delete client: %w", err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	record(s.activity, actor, domain.ActionDelete, domain.EntityClient, id, "")
	return nil
}

func applyClientInput(c *domain.Client, in ports.ClientInput) {
	if name := strings.TrimSpace(in.Name); name != "" {
		c.Name = name
	}
	if email := normalizeEmail(in.Email); email != "" {
		c.Email = email
	}
	c.Phone = strings.TrimSpace(in.Phone)
	c.Address = strings.TrimSpace(in.Address)
	c.Postcode = strings.ToUpper(strings.TrimSpace(in.Postcode))
	c.Notes = strings.TrimSpace(in.Notes)
}
