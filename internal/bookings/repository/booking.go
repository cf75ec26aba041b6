package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "mentorbooking/internal/bookings/errors"
	"mentorbooking/pkg/config"
	mongostore "mentorbooking/pkg/db/mongo"
	"mentorbooking/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetAll(ctx context.Context) ([]*model.Booking, error)
	GetAllFiltered(ctx context.Context, filter model.BookingFilter, now time.Time) ([]*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
}

type mongoBookingRepository struct {
	store *mongostore.Store[model.Booking]
}

var byStartTime = &mongostore.QueryOptions{Sort: bson.D{{Key: "start_time", Value: 1}}}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return NewBookingRepository(mongostore.NewStore[model.Booking](db, cfg.BookingsCollection, cfg.StoreReadTimeout, cfg.StoreWriteTimeout))
}

func NewBookingRepository(store *mongostore.Store[model.Booking]) BookingRepository {
	return &mongoBookingRepository{store: store}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if err := r.store.Put(ctx, booking.ID, booking); err != nil {
		return fmt.Errorf("failed to store booking %s: %w", booking.ID, err)
	}
	return nil
}

func (r *mongoBookingRepository) GetAll(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := r.store.GetAll(ctx, byStartTime)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepository) GetAllFiltered(ctx context.Context, filter model.BookingFilter, now time.Time) ([]*model.Booking, error) {
	bookings, err := r.store.GetFiltered(ctx, BuildFilter(filter, now), byStartTime)
	if err != nil {
		return nil, fmt.Errorf("failed to filter bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := r.store.GetOne(ctx, id)
	if errors.Is(err, mongostore.ErrNoRecord) {
		return nil, bookingserrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking %s: %w", id, err)
	}
	return booking, nil
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id string) error {
	err := r.store.Delete(ctx, id)
	if errors.Is(err, mongostore.ErrNoRecord) {
		return bookingserrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	return nil
}

// BuildFilter turns the period into a start_time range relative to now.
func BuildFilter(filter model.BookingFilter, now time.Time) bson.M {
	query := bson.M{}
	switch filter.Period {
	case model.BookingPeriodUpcoming:
		query["start_time"] = bson.M{"$gte": now}
	case model.BookingPeriodHistorical:
		query["start_time"] = bson.M{"$lt": now}
	}
	if filter.StudentEmail != "" {
		query["student_email"] = filter.StudentEmail
	}
	return query
}
