package ports

import (
	"context"

	"github.com/carebook/care-services/internal/core/domain"
)

// AuthService authenticates admins, carers and clients.
type AuthService interface {
	// Login checks the credentials against the account store for role and
	// returns a signed token for the matching principal.
	Login(ctx context.Context, role, email, password string) (string, *domain.Principal, error)
}
