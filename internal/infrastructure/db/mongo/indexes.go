package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carebook/care-services/internal/core/domain"
)

// EnsureIndexes creates the indexes every collection relies on. Unique
// indexes back the ErrEmailTaken and ErrDuplicate mappings.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for name, models := range indexPlan() {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", name, err)
		}
	}
	return nil
}

func indexPlan() map[string][]mongo.IndexModel {
	unique := options.Index().SetUnique(true)
	return map[string][]mongo.IndexModel{
		collectionUsers:    {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		collectionCarers:   {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		collectionClients:  {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		collectionServices: {{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique}},
		collectionBookings: {
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "carer_id", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		collectionActivity: {
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
		collectionDeleteRequests: {
			{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "status", Value: 1}}},
			// At most one pending request per account, even when two requests race
			// past the FindPending check; the loser's insert maps to ErrDuplicate.
			{
				Keys: bson.D{{Key: "account_id", Value: 1}},
				Options: options.Index().
					SetName("account_id_pending_unique").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"status": string(domain.DeleteRequestPending)}),
			},
		},
	}
}
