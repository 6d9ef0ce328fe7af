package roster

import (
	"sort"

	"github.com/carebook/care-services/internal/core/domain"
)

// Group is one non-empty bucket of bookings.
type Group struct {
	Bucket   Bucket            `json:"bucket"`
	Bookings []*domain.Booking `json:"bookings"`
}

// GroupBookings buckets bookings by their calendar date. Groups come back in
// Order with empty buckets omitted; inside a group bookings are sorted by
// date then start time.
func GroupBookings(bookings []*domain.Booking, w Window) []Group {
	byBucket := make(map[Bucket][]*domain.Booking, len(Order))
	for _, b := range bookings {
		bucket := w.BucketDate(b.Date)
		byBucket[bucket] = append(byBucket[bucket], b)
	}

	groups := make([]Group, 0, len(byBucket))
	for _, bucket := range Order {
		items := byBucket[bucket]
		if len(items) == 0 {
			continue
		}
		sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
		groups = append(groups, Group{Bucket: bucket, Bookings: items})
	}
	return groups
}

func less(a, b *domain.Booking) bool {
	if a.Date != nil && b.Date != nil && !a.Date.Equal(*b.Date) {
		return a.Date.Before(*b.Date)
	}
	if a.StartTime != b.StartTime {
		return a.StartTime < b.StartTime
	}
	return a.CreatedAt.Before(b.CreatedAt)
}
