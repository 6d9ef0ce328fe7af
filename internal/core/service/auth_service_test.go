package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
)

type authFixture struct {
	users   *stubUserRepo
	carers  *stubCarerRepo
	clients *stubClientRepo
	rec     *stubRecorder
	svc     *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:   newStubUserRepo(),
		carers:  newStubCarerRepo(),
		clients: newStubClientRepo(),
		rec:     &stubRecorder{},
	}
	f.svc = NewAuthService(f.users, f.carers, f.clients, f.rec, "secret", time.Hour)
	return f
}

func TestAuthService_Login_Admin(t *testing.T) {
	f := newAuthFixture(t)
	users := NewUserService(f.users, nil, zerolog.Nop())
	if _, err := users.Create(context.Background(), ports.Actor{ID: "root", Role: domain.RoleSystem}, ports.CreateUserInput{
		Name: "Carol", Email: "carol@example.com", Password: "s3cret",
	}); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	token, principal, err := f.svc.Login(context.Background(), domain.RoleAdmin, " Carol@Example.com ", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if principal.Name != "Carol" || principal.Role != domain.RoleAdmin {
		t.Fatalf("unexpected principal: %+v", principal)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %v", domain.RoleAdmin, claims["role"])
	}
	if claims["sub"] != principal.ID {
		t.Fatalf("expected sub %s, got %v", principal.ID, claims["sub"])
	}
	if got := f.rec.actions(); len(got) != 1 || got[0] != domain.ActionLogin {
		t.Fatalf("expected a login activity entry, got %v", got)
	}
}

func TestAuthService_Login_WrongRoleStore(t *testing.T) {
	f := newAuthFixture(t)
	clients := NewClientService(f.clients, nil, nil, zerolog.Nop())
	if _, err := clients.Register(context.Background(), ports.ClientInput{
		Name: "Dave", Email: "dave@example.com", Password: "goodpass",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := f.svc.Login(context.Background(), domain.RoleClient, "dave@example.com", "goodpass"); err != nil {
		t.Fatalf("client login failed: %v", err)
	}
	// A client account cannot sign in through the carer portal.
	if _, _, err := f.svc.Login(context.Background(), domain.RoleCarer, "dave@example.com", "goodpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	f := newAuthFixture(t)
	clients := NewClientService(f.clients, nil, nil, zerolog.Nop())
	_, _ = clients.Register(context.Background(), ports.ClientInput{Name: "Dave", Email: "dave@example.com", Password: "goodpass"})

	if _, _, err := f.svc.Login(context.Background(), domain.RoleClient, "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownAccount(t *testing.T) {
	f := newAuthFixture(t)

	if _, _, err := f.svc.Login(context.Background(), domain.RoleAdmin, "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := f.svc.Login(context.Background(), "root", "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown role, got %v", err)
	}
}

func TestAuthService_Login_InactiveCarer(t *testing.T) {
	f := newAuthFixture(t)
	carers := NewCarerService(f.carers, nil, nil, zerolog.Nop())
	admin := ports.Actor{ID: "adm", Role: domain.RoleAdmin}
	if _, err := carers.Create(context.Background(), admin, ports.CarerInput{
		Name: "Erin", Email: "erin@example.com", Password: "pw", Active: false,
	}); err != nil {
		t.Fatalf("create carer failed: %v", err)
	}

	if _, _, err := f.svc.Login(context.Background(), domain.RoleCarer, "erin@example.com", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive carer, got %v", err)
	}
}
