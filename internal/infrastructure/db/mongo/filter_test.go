package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebook/care-services/internal/core/ports"
)

func TestSearchFilter_EscapesInput(t *testing.T) {
	f := searchFilter("a.b+", "name", "email")

	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected two $or clauses, got %#v", f)
	}
	re := or[0].(bson.M)["name"].(primitive.Regex)
	if re.Pattern != `a\.b\+` || re.Options != "i" {
		t.Fatalf("unexpected regex: %+v", re)
	}

	if len(searchFilter("", "name")) != 0 {
		t.Fatalf("expected empty filter for empty search")
	}
}

func TestBookingFilter(t *testing.T) {
	from := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	f := bookingFilter(ports.BookingFilter{CarerID: "c1", Status: "confirmed", DateFrom: from})

	if f["carer_id"] != "c1" || f["status"] != "confirmed" {
		t.Fatalf("unexpected filter: %#v", f)
	}
	if _, ok := f["client_id"]; ok {
		t.Fatalf("empty fields must not be filtered on: %#v", f)
	}
	r := f["date"].(bson.M)
	if r["$gte"] != from {
		t.Fatalf("expected $gte %v, got %#v", from, r)
	}
	if _, ok := r["$lte"]; ok {
		t.Fatalf("expected open upper bound, got %#v", r)
	}
}

func TestServiceFilter_ActiveOnly(t *testing.T) {
	f := serviceFilter(ports.ServiceFilter{ActiveOnly: true})
	if f["active"] != true {
		t.Fatalf("expected active filter, got %#v", f)
	}
}

func TestIndexPlan_OnePendingDeleteRequestPerAccount(t *testing.T) {
	var found bool
	for _, m := range indexPlan()[collectionDeleteRequests] {
		keys := m.Keys.(bson.D)
		if len(keys) != 1 || keys[0].Key != "account_id" {
			continue
		}
		found = true
		if m.Options == nil || m.Options.Unique == nil || !*m.Options.Unique {
			t.Fatalf("expected the account_id index to be unique")
		}
		partial, ok := m.Options.PartialFilterExpression.(bson.M)
		if !ok || partial["status"] != "pending" {
			t.Fatalf("expected the index limited to pending requests, got %#v", m.Options.PartialFilterExpression)
		}
	}
	if !found {
		t.Fatalf("missing unique account_id index on %s", collectionDeleteRequests)
	}
}
