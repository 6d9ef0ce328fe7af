package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carebook/care-services/internal/api/middleware"
	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
	"github.com/carebook/care-services/internal/core/roster"
)

type stubBookingService struct {
	ports.BookingService
	createFn func(ctx context.Context, actor ports.Actor, in ports.CreateBookingInput) (*ports.BookingResult, error)
	rosterFn func(ctx context.Context, carerID string) ([]roster.Group, error)
}

func (s *stubBookingService) Create(ctx context.Context, actor ports.Actor, in ports.CreateBookingInput) (*ports.BookingResult, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubBookingService) Roster(ctx context.Context, carerID string) ([]roster.Group, error) {
	return s.rosterFn(ctx, carerID)
}

func withActor(c echo.Context, id, role string) echo.Context {
	c.Set(middleware.CtxUserID, id)
	c.Set(middleware.CtxRole, role)
	return c
}

func TestBookingHandler_ClientCreate_Idempotent(t *testing.T) {
	seen := map[string]*domain.Booking{}
	stub := &stubBookingService{
		createFn: func(ctx context.Context, actor ports.Actor, in ports.CreateBookingInput) (*ports.BookingResult, error) {
			if in.ClientID != actor.ID {
				t.Fatalf("client id must come from the token, got %q", in.ClientID)
			}
			if b, ok := seen[in.IdempotencyKey]; ok {
				return &ports.BookingResult{Booking: b, AlreadyExisted: true}, nil
			}
			b := &domain.Booking{ID: "bkg_1", ClientID: in.ClientID, ServiceID: in.ServiceID, Date: in.Date}
			seen[in.IdempotencyKey] = b
			return &ports.BookingResult{Booking: b}, nil
		},
	}
	h := NewBookingHandler(stub)
	e := newEcho()

	send := func() *httptest.ResponseRecorder {
		req := jsonRequest(http.MethodPost, "/v1/client/bookings", `{"service_id":"svc_1","date":"2026-10-15","start_time":"09:30"}`)
		req.Header.Set("Idempotency-Key", "abc")
		rec := httptest.NewRecorder()
		if err := h.ClientCreate(withActor(e.NewContext(req, rec), "cli_1", domain.RoleClient)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec
	}

	if rec := send(); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first call, got %d", rec.Code)
	}
	rec := send()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
	var b domain.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if b.ID != "bkg_1" || b.Date == nil || !b.Date.Equal(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected booking: %+v", b)
	}
}

func TestBookingHandler_ClientCreate_Rejections(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{
		createFn: func(context.Context, ports.Actor, ports.CreateBookingInput) (*ports.BookingResult, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})
	e := newEcho()

	// No Auth middleware ran.
	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/client/bookings", `{"service_id":"svc_1"}`), httptest.NewRecorder())
	var he *echo.HTTPError
	if err := h.ClientCreate(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}

	for _, body := range []string{
		`{"service_id":"svc_1","start_time":"9.30"}`,
		`{"service_id":"svc_1","date":"15/10/2026"}`,
		`{"date":"2026-10-15"}`,
	} {
		c := withActor(e.NewContext(jsonRequest(http.MethodPost, "/v1/client/bookings", body), httptest.NewRecorder()), "cli_1", domain.RoleClient)
		if err := h.ClientCreate(c); !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %v", body, err)
		}
	}
}

func TestBookingHandler_Roster_EmptyGroups(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{
		rosterFn: func(ctx context.Context, carerID string) ([]roster.Group, error) {
			if carerID != "car_1" {
				t.Fatalf("unexpected carer: %s", carerID)
			}
			return nil, nil
		},
	})
	e := newEcho()
	rec := httptest.NewRecorder()
	c := withActor(e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/carer/roster", nil), rec), "car_1", domain.RoleCarer)

	if err := h.Roster(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "{\"groups\":[]}\n" {
		t.Fatalf("expected empty groups array, got %q", rec.Body.String())
	}
}

func TestDayRange(t *testing.T) {
	e := newEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?date_from=2026-10-12&date_to=2026-10-18", nil), httptest.NewRecorder())

	from, to, err := dayRange(c)
	if err != nil {
		t.Fatalf("dayRange error: %v", err)
	}
	if !from.Equal(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from: %v", from)
	}
	if !to.Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)) {
		t.Fatalf("expected date_to to cover its whole day, got %v", to)
	}

	bad := e.NewContext(httptest.NewRequest(http.MethodGet, "/?date_from=yesterday", nil), httptest.NewRecorder())
	if _, _, err := dayRange(bad); err == nil {
		t.Fatalf("expected an error for a bad date")
	}
}
