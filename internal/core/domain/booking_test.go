package domain

import (
	"errors"
	"testing"
	"time"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingCompleted, false},
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingNotCompleted, true},
		{BookingConfirmed, BookingPending, true},
		{BookingCompleted, BookingCancelled, false},
		{BookingCancelled, BookingPending, false},
		{BookingNotCompleted, BookingCompleted, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: want %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	for _, s := range []BookingStatus{BookingCompleted, BookingNotCompleted, BookingCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestBooking_TransitionTo(t *testing.T) {
	b := &Booking{Status: BookingPending}
	if err := b.TransitionTo(BookingCompleted); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if b.Status != BookingPending {
		t.Fatalf("status must not change on a rejected transition, got %s", b.Status)
	}
	if err := b.TransitionTo(BookingConfirmed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != BookingConfirmed {
		t.Fatalf("expected confirmed, got %s", b.Status)
	}
}

func TestSessionFor(t *testing.T) {
	if SessionFor(RoleAdmin) != 1 || SessionFor(RoleClient) != 2 || SessionFor(RoleCarer) != 3 {
		t.Fatal("session discriminators must be admin=1 client=2 carer=3")
	}
	if SessionFor("guest") != 0 {
		t.Fatal("unknown role must map to 0")
	}
}

func TestCalendarDate(t *testing.T) {
	loc := time.FixedZone("plus3", 3*3600)
	got := CalendarDate(time.Date(2026, 3, 9, 23, 30, 0, 0, loc))
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}
