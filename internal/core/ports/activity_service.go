package ports

import (
	"context"

	"github.com/carebook/care-services/internal/core/domain"
)

// ActivityRecorder accepts audit entries without blocking on storage.
type ActivityRecorder interface {
	Record(entry domain.ActivityLog)
}

// ActivityService exposes the audit trail to admins.
type ActivityService interface {
	List(ctx context.Context, filter ActivityFilter) (*Page[*domain.ActivityLog], error)
}

// DeletionService handles account delete requests.
type DeletionService interface {
	// Request raises a deletion request for the actor's own account.
	Request(ctx context.Context, actor Actor, reason string) (*domain.AccountDeleteRequest, error)
	List(ctx context.Context, filter DeleteRequestFilter) (*Page[*domain.AccountDeleteRequest], error)
	// Approve deletes the account and closes the request.
	Approve(ctx context.Context, actor Actor, id string) (*domain.AccountDeleteRequest, error)
	Reject(ctx context.Context, actor Actor, id string) (*domain.AccountDeleteRequest, error)
}
