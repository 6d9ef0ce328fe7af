package ports

import (
	"context"

	"github.com/carebook/care-services/internal/core/domain"
)

// ActivityRepository stores the audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityLog) error
	List(ctx context.Context, filter ActivityFilter) ([]*domain.ActivityLog, int64, error)
}

// DeleteRequestRepository stores account delete requests.
type DeleteRequestRepository interface {
	Create(ctx context.Context, r *domain.AccountDeleteRequest) error
	FindByID(ctx context.Context, id string) (*domain.AccountDeleteRequest, error)
	// FindPending returns the pending request for accountID or ErrDeleteRequestNotFound.
	FindPending(ctx context.Context, accountID string) (*domain.AccountDeleteRequest, error)
	List(ctx context.Context, filter DeleteRequestFilter) ([]*domain.AccountDeleteRequest, int64, error)
	Update(ctx context.Context, r *domain.AccountDeleteRequest) error
}
