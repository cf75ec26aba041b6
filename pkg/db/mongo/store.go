package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNoRecord is returned when a keyed read, update or delete matched nothing.
var ErrNoRecord = errors.New("record not found")

// Store is the record-level contract every collection accessor is built on.
// Each call touches exactly one document; there is no multi-record atomicity.
type Store[T any] struct {
	collection   *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

type QueryOptions struct {
	Sort       bson.D
	Projection bson.M
}

func NewStore[T any](db *mongo.Database, collectionName string, readTimeout, writeTimeout time.Duration) *Store[T] {
	return &Store[T]{
		collection:   db.Collection(collectionName),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (s *Store[T]) Collection() *mongo.Collection {
	return s.collection
}

// withTimeout bounds ctx by timeout, never extending an earlier deadline.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (s *Store[T]) GetAll(ctx context.Context, opts *QueryOptions) ([]*T, error) {
	return s.GetFiltered(ctx, bson.M{}, opts)
}

func (s *Store[T]) GetFiltered(ctx context.Context, filter bson.M, opts *QueryOptions) ([]*T, error) {
	ctx, cancel := withTimeout(ctx, s.readTimeout)
	defer cancel()

	findOpts := options.Find()
	if opts != nil {
		if len(opts.Sort) > 0 {
			findOpts.SetSort(opts.Sort)
		}
		if len(opts.Projection) > 0 {
			findOpts.SetProjection(opts.Projection)
		}
	}

	cursor, err := s.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.collection.Name(), err)
	}
	defer cursor.Close(ctx)

	records := make([]*T, 0)
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.collection.Name(), err)
	}

	return records, nil
}

func (s *Store[T]) GetOne(ctx context.Context, id string) (*T, error) {
	ctx, cancel := withTimeout(ctx, s.readTimeout)
	defer cancel()

	var record T
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoRecord
		}
		return nil, fmt.Errorf("failed to find %s record %s: %w", s.collection.Name(), id, err)
	}

	return &record, nil
}

// Put inserts or fully replaces the record stored under id.
func (s *Store[T]) Put(ctx context.Context, id string, record *T) error {
	ctx, cancel := withTimeout(ctx, s.writeTimeout)
	defer cancel()

	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": id}, record, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to put %s record %s: %w", s.collection.Name(), id, err)
	}
	return nil
}

// Update applies mutation to the single document matching filter and returns
// it as it looks after the write. ErrNoRecord means the write was not applied.
func (s *Store[T]) Update(ctx context.Context, filter bson.M, mutation bson.M) (*T, error) {
	ctx, cancel := withTimeout(ctx, s.writeTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated T
	err := s.collection.FindOneAndUpdate(ctx, filter, mutation, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoRecord
		}
		return nil, fmt.Errorf("failed to update %s record: %w", s.collection.Name(), err)
	}

	return &updated, nil
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, s.writeTimeout)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s record %s: %w", s.collection.Name(), id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNoRecord
	}
	return nil
}
