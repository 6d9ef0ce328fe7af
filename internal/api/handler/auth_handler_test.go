package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, role, email, password string) (string, *domain.Principal, error)
}

func (s *stubAuthService) Login(ctx context.Context, role, email, password string) (string, *domain.Principal, error) {
	return s.loginFn(ctx, role, email, password)
}

type stubClientService struct {
	ports.ClientService
	registerFn func(ctx context.Context, in ports.ClientInput) (*domain.Client, error)
	getFn      func(ctx context.Context, id string) (*domain.Client, error)
	updateFn   func(ctx context.Context, actor ports.Actor, id string, in ports.ClientInput) (*domain.Client, error)
}

func (s *stubClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.getFn(ctx, id)
}

func (s *stubClientService) Update(ctx context.Context, actor ports.Actor, id string, in ports.ClientInput) (*domain.Client, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubClientService) Register(ctx context.Context, in ports.ClientInput) (*domain.Client, error) {
	return s.registerFn(ctx, in)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Login_ReturnsSession(t *testing.T) {
	cases := []struct {
		role    string
		call    func(h *AuthHandler, c echo.Context) error
		session domain.Session
	}{
		{domain.RoleAdmin, (*AuthHandler).AdminLogin, domain.SessionAdmin},
		{domain.RoleClient, (*AuthHandler).ClientLogin, domain.SessionClient},
		{domain.RoleCarer, (*AuthHandler).CarerLogin, domain.SessionCarer},
	}

	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			e := newEcho()
			stub := &stubAuthService{
				loginFn: func(ctx context.Context, role, email, password string) (string, *domain.Principal, error) {
					if role != tc.role || email != "a@example.com" || password != "secret" {
						t.Fatalf("unexpected args: %s %s %s", role, email, password)
					}
					return "tok", &domain.Principal{ID: "id1", Name: "Ann", Role: role}, nil
				},
			}
			h := NewAuthHandler(stub, nil)

			rec := httptest.NewRecorder()
			c := e.NewContext(jsonRequest(http.MethodPost, "/auth/x/login", `{"email":"a@example.com","password":"secret"}`), rec)
			if err := tc.call(h, c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}

			var resp loginResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Token != "tok" || resp.Session != tc.session || resp.User.ID != "id1" {
				t.Fatalf("unexpected response: %+v", resp)
			}
		})
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, role, email, password string) (string, *domain.Principal, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, nil)

	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/admin/login", `{"email":"a@example.com","password":"bad"}`), httptest.NewRecorder())
	if err := h.AdminLogin(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_Validation(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{loginFn: func(context.Context, string, string, string) (string, *domain.Principal, error) {
		t.Fatalf("service must not be called")
		return "", nil, nil
	}}, nil)

	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/admin/login", `{"email":"not-an-email"}`), httptest.NewRecorder())
	err := h.AdminLogin(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	msg := he.Message.(string)
	if !strings.Contains(msg, "email must be a valid email") || !strings.Contains(msg, "password is required") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestAuthHandler_Register(t *testing.T) {
	e := newEcho()
	clients := &stubClientService{
		registerFn: func(ctx context.Context, in ports.ClientInput) (*domain.Client, error) {
			if in.Email != "cara@example.com" || in.Postcode != "SW1A 1AA" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Client{ID: "cli_1", Name: in.Name, Email: in.Email}, nil
		},
	}
	h := NewAuthHandler(nil, clients)

	rec := httptest.NewRecorder()
	body := `{"name":"Cara","email":"cara@example.com","password":"longenough","postcode":"SW1A 1AA"}`
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/client/register", body), rec)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password material leaked: %s", rec.Body.String())
	}
}
