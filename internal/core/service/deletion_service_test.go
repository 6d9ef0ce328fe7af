package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
)

func newDeletionFixture(t *testing.T) (*DeletionService, *bookingFixture, *stubDeleteRequestRepo) {
	t.Helper()
	f := newBookingFixture(t)
	requests := newStubDeleteRequestRepo()
	return NewDeletionService(requests, f.carers, f.clients, f.svc, f.rec, zerolog.Nop()), f, requests
}

func TestDeletionService_Request_OnePending(t *testing.T) {
	svc, _, _ := newDeletionFixture(t)
	ctx := context.Background()

	r, err := svc.Request(ctx, clientA, "moving away")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if r.Status != domain.DeleteRequestPending || r.AccountName != "Ann" || r.AccountRole != domain.RoleClient {
		t.Fatalf("unexpected request: %+v", r)
	}
	if _, err := svc.Request(ctx, clientA, "again"); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if _, err := svc.Request(ctx, admin, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected admins to be refused, got %v", err)
	}
}

// staleDeleteRequestRepo never sees a pending request, the way two
// concurrent callers both pass the FindPending check.
type staleDeleteRequestRepo struct{ *stubDeleteRequestRepo }

func (staleDeleteRequestRepo) FindPending(context.Context, string) (*domain.AccountDeleteRequest, error) {
	return nil, domain.ErrDeleteRequestNotFound
}

func TestDeletionService_Request_ConcurrentInsertIsDuplicate(t *testing.T) {
	f := newBookingFixture(t)
	requests := newStubDeleteRequestRepo()
	svc := NewDeletionService(staleDeleteRequestRepo{requests}, f.carers, f.clients, f.svc, f.rec, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Request(ctx, clientA, "first"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if _, err := svc.Request(ctx, clientA, "second"); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate from the insert, got %v", err)
	}
	if len(requests.requests) != 1 {
		t.Fatalf("expected one stored request, got %d", len(requests.requests))
	}
}

func TestDeletionService_Approve_Client(t *testing.T) {
	svc, f, _ := newDeletionFixture(t)
	ctx := context.Background()
	open, _ := f.svc.Create(ctx, clientA, ports.CreateBookingInput{ClientID: "cli_a", ServiceID: "svc_visit"})

	r, _ := svc.Request(ctx, clientA, "")
	resolved, err := svc.Approve(ctx, admin, r.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if resolved.Status != domain.DeleteRequestApproved || resolved.ResolvedBy != admin.ID || resolved.ResolvedAt == nil {
		t.Fatalf("unexpected request: %+v", resolved)
	}
	if _, ok := f.clients.clients["cli_a"]; ok {
		t.Fatalf("expected client account to be deleted")
	}
	if got := f.bookings.bookings[open.Booking.ID].Status; got != domain.BookingCancelled {
		t.Fatalf("expected open booking cancelled, got %s", got)
	}

	if _, err := svc.Reject(ctx, admin, r.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected resolved request to stay resolved, got %v", err)
	}
}

func TestDeletionService_Approve_CarerReleasesBookings(t *testing.T) {
	svc, f, _ := newDeletionFixture(t)
	ctx := context.Background()
	res, _ := f.svc.Create(ctx, admin, ports.CreateBookingInput{ClientID: "cli_a", ServiceID: "svc_visit", CarerID: "car_on"})

	r, err := svc.Request(ctx, carerOn, "retiring")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if _, err := svc.Approve(ctx, admin, r.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	b := f.bookings.bookings[res.Booking.ID]
	if b.Status != domain.BookingPending || b.CarerID != "" {
		t.Fatalf("expected booking back to pending without a carer, got %s/%q", b.Status, b.CarerID)
	}
}

func TestDeletionService_Reject(t *testing.T) {
	svc, f, _ := newDeletionFixture(t)
	ctx := context.Background()

	r, _ := svc.Request(ctx, clientA, "")
	resolved, err := svc.Reject(ctx, admin, r.ID)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if resolved.Status != domain.DeleteRequestRejected {
		t.Fatalf("expected rejected, got %s", resolved.Status)
	}
	if _, ok := f.clients.clients["cli_a"]; !ok {
		t.Fatalf("expected client account to remain")
	}
	// Once resolved, the account may ask again.
	if _, err := svc.Request(ctx, clientA, "changed my mind"); err != nil {
		t.Fatalf("expected a new request to be allowed, got %v", err)
	}
}
