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

// DeletionService lets clients and carers ask for their account to be removed
// and lets admins resolve those requests.
type DeletionService struct {
	requests ports.DeleteRequestRepository
	carers   ports.CarerRepository
	clients  ports.ClientRepository
	bookings ports.BookingReleaser
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewDeletionService(
	requests ports.DeleteRequestRepository,
	carers ports.CarerRepository,
	clients ports.ClientRepository,
	bookings ports.BookingReleaser,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *DeletionService {
	return &DeletionService{
		requests: requests,
		carers:   carers,
		clients:  clients,
		bookings: bookings,
		activity: activity,
		logger:   logger,
	}
}

func (s *DeletionService) Request(ctx context.Context, actor ports.Actor, reason string) (*domain.AccountDeleteRequest, error) {
	name, err := s.accountName(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("request deletion: %w", err)
	}

	_, err = s.requests.FindPending(ctx, actor.ID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("request deletion: a request is already pending: %w", domain.ErrDuplicate)
	case !errors.Is(err, domain.ErrDeleteRequestNotFound):
		return nil, fmt.Errorf("request deletion: %w", err)
	}

	now := time.Now().UTC()
	r := &domain.AccountDeleteRequest{
		AccountID:   actor.ID,
		AccountRole: actor.Role,
		AccountName: name,
		Reason:      strings.TrimSpace(reason),
		Status:      domain.DeleteRequestPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.requests.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("request deletion: %w", err)
	}
	record(s.activity, actor, domain.ActionRequestDelete, domain.EntityDeleteRequest, r.ID, actor.Role)
	return r, nil
}

func (s *DeletionService) accountName(ctx context.Context, actor ports.Actor) (string, error) {
	switch actor.Role {
	case domain.RoleCarer:
		c, err := s.carers.FindByID(ctx, actor.ID)
		if err != nil {
			return "", err
		}
		return c.Name, nil
	case domain.RoleClient:
		c, err := s.clients.FindByID(ctx, actor.ID)
		if err != nil {
			return "", err
		}
		return c.Name, nil
	}
	return "", domain.ErrForbidden
}

func (s *DeletionService) List(ctx context.Context, filter ports.DeleteRequestFilter) (*ports.Page[*domain.AccountDeleteRequest], error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list delete requests: %w", err)
	}
	return newPage(items, total, filter.Page, filter.Limit), nil
}

// Approve removes the account. A carer's open bookings go back to pending
// without a carer; a client's open bookings are cancelled.
func (s *DeletionService) Approve(ctx context.Context, actor ports.Actor, id string) (*domain.AccountDeleteRequest, error) {
	r, err := s.pending(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("approve deletion: %w", err)
	}

	if err := s.bookings.ReleaseAccount(ctx, actor, r.AccountRole, r.AccountID); err != nil {
		return nil, fmt.Errorf("approve deletion: %w", err)
	}
	if err := s.deleteAccount(ctx, r); err != nil {
		return nil, fmt.Errorf("approve deletion: %w", err)
	}

	if err := s.resolve(ctx, actor, r, domain.DeleteRequestApproved); err != nil {
		return nil, fmt.Errorf("approve deletion: %w", err)
	}
	s.logger.Info().
		Str("account_id", r.AccountID).
		Str("account_role", r.AccountRole).
		Str("admin_id", actor.ID).
		Msg("account deleted on request")
	record(s.activity, actor, domain.ActionApprove, domain.EntityDeleteRequest, r.ID, r.AccountID)
	return r, nil
}

func (s *DeletionService) Reject(ctx context.Context, actor ports.Actor, id string) (*domain.AccountDeleteRequest, error) {
	r, err := s.pending(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reject deletion: %w", err)
	}
	if err := s.resolve(ctx, actor, r, domain.DeleteRequestRejected); err != nil {
		return nil, fmt.Errorf("reject deletion: %w", err)
	}
	record(s.activity, actor, domain.ActionReject, domain.EntityDeleteRequest, r.ID, r.AccountID)
	return r, nil
}

func (s *DeletionService) pending(ctx context.Context, id string) (*domain.AccountDeleteRequest, error) {
	r, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != domain.DeleteRequestPending {
		return nil, fmt.Errorf("request is %s: %w", r.Status, domain.ErrInvalidTransition)
	}
	return r, nil
}

func (s *DeletionService) resolve(ctx context.Context, actor ports.Actor, r *domain.AccountDeleteRequest, status domain.DeleteRequestStatus) error {
	now := time.Now().UTC()
	r.Status = status
	r.ResolvedBy = actor.ID
	r.ResolvedAt = &now
	r.UpdatedAt = now
	return s.requests.Update(ctx, r)
}

func (s *DeletionService) deleteAccount(ctx context.Context, r *domain.AccountDeleteRequest) error {
	var err error
	switch r.AccountRole {
	case domain.RoleCarer:
		err = s.carers.Delete(ctx, r.AccountID)
	case domain.RoleClient:
		err = s.clients.Delete(ctx, r.AccountID)
	default:
		return fmt.Errorf("account role %q: %w", r.AccountRole, domain.ErrInvalidInput)
	}
	// An account already removed by an admin still lets the request close.
	if isNotFound(err) {
		s.logger.Warn().Str("account_id", r.AccountID).Msg("account already deleted")
		return nil
	}
	return err
}
