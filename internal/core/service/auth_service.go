package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
)

// AuthService implements login for the three account types.
type AuthService struct {
	users     ports.UserRepository
	carers    ports.CarerRepository
	clients   ports.ClientRepository
	activity  ports.ActivityRecorder
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(
	users ports.UserRepository,
	carers ports.CarerRepository,
	clients ports.ClientRepository,
	activity ports.ActivityRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		carers:    carers,
		clients:   clients,
		activity:  activity,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Login never reveals whether the email exists: an unknown account and a bad
// password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, role, email, password string) (string, *domain.Principal, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	principal, hash, err := s.lookup(ctx, role, email)
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(principal)
	if err != nil {
		return "", nil, err
	}

	record(s.activity, ports.Actor{ID: principal.ID, Role: principal.Role}, domain.ActionLogin, role, principal.ID, "")
	return token, principal, nil
}

func (s *AuthService) lookup(ctx context.Context, role, email string) (*domain.Principal, string, error) {
	var (
		p    *domain.Principal
		hash string
		err  error
	)
	switch role {
	case domain.RoleAdmin:
		var u *domain.User
		if u, err = s.users.FindByEmail(ctx, email); err == nil {
			p, hash = &domain.Principal{ID: u.ID, Name: u.Name, Email: u.Email, Role: domain.RoleAdmin}, u.PasswordHash
		}
	case domain.RoleCarer:
		var c *domain.Carer
		if c, err = s.carers.FindByEmail(ctx, email); err == nil {
			if !c.Active {
				return nil, "", domain.ErrInvalidCredentials
			}
			p, hash = &domain.Principal{ID: c.ID, Name: c.Name, Email: c.Email, Role: domain.RoleCarer}, c.PasswordHash
		}
	case domain.RoleClient:
		var c *domain.Client
		if c, err = s.clients.FindByEmail(ctx, email); err == nil {
			p, hash = &domain.Principal{ID: c.ID, Name: c.Name, Email: c.Email, Role: domain.RoleClient}, c.PasswordHash
		}
	default:
		return nil, "", domain.ErrInvalidCredentials
	}

	if err != nil {
		if isNotFound(err) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	return p, hash, nil
}

func (s *AuthService) generateToken(p *domain.Principal) (string, error) {
	claims := jwt.MapClaims{
		"sub":  p.ID,
		"role": p.Role,
		"name": p.Name,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrCarerNotFound) ||
		errors.Is(err, domain.ErrClientNotFound)
}
