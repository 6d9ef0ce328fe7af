package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending      BookingStatus = "pending"
	BookingConfirmed    BookingStatus = "confirmed"
	BookingCompleted    BookingStatus = "completed"
	BookingNotCompleted BookingStatus = "not_completed"
	BookingCancelled    BookingStatus = "cancelled"
)

// bookingTransitions defines the allowed lifecycle moves.
// confirmed -> pending happens when the carer is unassigned.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingNotCompleted, BookingCancelled, BookingPending},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingNotCompleted, BookingCancelled:
		return true
	}
	return false
}

// Booking is a single appointment between a client and, once assigned, a carer.
//
// Date holds the calendar day at 00:00 UTC; a nil Date means the booking has
// not been scheduled yet.
type Booking struct {
	ID              string        `json:"id" bson:"_id"`
	ClientID        string        `json:"client_id" bson:"client_id"`
	CarerID         string        `json:"carer_id,omitempty" bson:"carer_id,omitempty"`
	ServiceID       string        `json:"service_id" bson:"service_id"`
	Date            *time.Time    `json:"date,omitempty" bson:"date,omitempty"`
	StartTime       string        `json:"start_time,omitempty" bson:"start_time,omitempty"`
	DurationMinutes int           `json:"duration_minutes" bson:"duration_minutes"`
	Status          BookingStatus `json:"status" bson:"status"`
	Notes           string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CompletionNote  string        `json:"completion_note,omitempty" bson:"completion_note,omitempty"`
	IdempotencyKey  string        `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at"`
}

// TransitionTo moves the booking to next or returns ErrInvalidTransition.
func (b *Booking) TransitionTo(next BookingStatus) error {
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w (from %s to %s)", ErrInvalidTransition, b.Status, next)
	}
	b.Status = next
	return nil
}

// CalendarDate truncates t to its calendar day at 00:00 UTC, the form stored
// in Booking.Date.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
