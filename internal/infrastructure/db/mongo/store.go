package mongo

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// store wraps one collection of T documents keyed by a string _id and maps
// driver errors to domain sentinels.
type store[T any] struct {
	col       *mongo.Collection
	notFound  error
	duplicate error
}

func newStore[T any](db *mongo.Database, name string, notFound, duplicate error) store[T] {
	return store[T]{col: db.Collection(name), notFound: notFound, duplicate: duplicate}
}

func (s store[T]) insert(ctx context.Context, doc *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.col.InsertOne(ctx, doc)
	return s.mapErr(err)
}

func (s store[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc T
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, s.mapErr(err)
	}
	return &doc, nil
}

// find returns one page of matches and the total match count. A zero limit
// returns every match.
func (s store[T]) find(ctx context.Context, filter bson.M, sort bson.D, page, limit int) ([]*T, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(sort)
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * limit)).SetLimit(int64(limit))
	}

	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items := make([]*T, 0)
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		items = append(items, &doc)
	}
	return items, total, cur.Err()
}

func (s store[T]) replace(ctx context.Context, id string, doc *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return s.mapErr(err)
	}
	if res.MatchedCount == 0 {
		return s.notFound
	}
	return nil
}

func (s store[T]) deleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return s.notFound
	}
	return nil
}

func (s store[T]) mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return s.notFound
	case s.duplicate != nil && mongo.IsDuplicateKeyError(err):
		return s.duplicate
	}
	return err
}

// searchFilter matches search case-insensitively anywhere in any of fields.
func searchFilter(search string, fields ...string) bson.M {
	if search == "" {
		return bson.M{}
	}
	re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: re})
	}
	return bson.M{"$or": or}
}
