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

// UserService manages admin staff accounts.
type UserService struct {
	repo     ports.UserRepository
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, activity ports.ActivityRecorder, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, activity: activity, logger: logger}
}

func (s *UserService) Create(ctx context.Context, actor ports.Actor, in ports.CreateUserInput) (*domain.User, error) {
	if strings.TrimSpace(in.Name) == "" || normalizeEmail(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("create user: %w", domain.ErrInvalidInput)
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("user_id", u.ID).Str("actor_id", actor.ID).Msg("user created")
	record(s.activity, actor, domain.ActionCreate, domain.EntityUser, u.ID, u.Email)
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, filter ports.ListFilter) (*ports.Page[*domain.User], error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return newPage(items, total, filter.Page, filter.Limit), nil
}

func (s *UserService) Update(ctx context.Context, actor ports.Actor, in ports.UpdateUserInput) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if email := normalizeEmail(in.Email); email != "" {
		u.Email = email
	}
	if in.Password != "" {
		if u.PasswordHash, err = hashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	record(s.activity, actor, domain.ActionUpdate, domain.EntityUser, u.ID, "")
	return u, nil
}

// Delete removes an admin account. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if actor.ID == id {
		return fmt.Errorf("delete user: %w", domain.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	record(s.activity, actor, domain.ActionDelete, domain.EntityUser, id, "")
	return nil
}
