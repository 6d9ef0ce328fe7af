package ports

import "time"

// ListFilter carries the common query parameters of account and catalogue lists.
type ListFilter struct {
	Search string // optional: case-insensitive partial match on name or email
	Page   int    // 1-based
	Limit  int    // rows per page; 0 = no limit
}

// Page is one page of a list result.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BookingFilter carries all query parameters for listing bookings.
type BookingFilter struct {
	ClientID  string
	CarerID   string
	ServiceID string
	Status    string
	DateFrom  time.Time // optional: date >= DateFrom
	DateTo    time.Time // optional: date <= DateTo
	Page      int
	Limit     int
}

// ActivityFilter narrows the activity log.
type ActivityFilter struct {
	ActorID  string
	Entity   string
	DateFrom time.Time
	DateTo   time.Time
	Page     int
	Limit    int
}

// DeleteRequestFilter narrows account delete requests.
type DeleteRequestFilter struct {
	Status      string
	AccountRole string
	Page        int
	Limit       int
}

// Actor identifies who performs a mutation; it ends up in the activity log.
type Actor struct {
	ID   string
	Role string
}
