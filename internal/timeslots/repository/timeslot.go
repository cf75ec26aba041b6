package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	timeslotserrors "mentorbooking/internal/timeslots/errors"
	"mentorbooking/pkg/config"
	mongostore "mentorbooking/pkg/db/mongo"
	"mentorbooking/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

type TimeSlotRepository interface {
	GetAll(ctx context.Context) ([]*model.TimeSlot, error)
	GetByID(ctx context.Context, id string) (*model.TimeSlot, error)
	GetActiveByMentor(ctx context.Context, mentorID string, now time.Time) ([]*model.TimeSlot, error)
	// UpdateBooked sets booked on the slot only while it still holds !booked.
	UpdateBooked(ctx context.Context, id string, booked bool) (*model.TimeSlot, error)
	Put(ctx context.Context, slot *model.TimeSlot) error
}

type mongoTimeSlotRepository struct {
	store *mongostore.Store[model.TimeSlot]
}

var byStartTime = &mongostore.QueryOptions{Sort: bson.D{{Key: "start_time", Value: 1}}}

func NewMongoTimeSlotRepository(cfg *config.Config) TimeSlotRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return NewTimeSlotRepository(mongostore.NewStore[model.TimeSlot](db, cfg.TimeSlotsCollection, cfg.StoreReadTimeout, cfg.StoreWriteTimeout))
}

func NewTimeSlotRepository(store *mongostore.Store[model.TimeSlot]) TimeSlotRepository {
	return &mongoTimeSlotRepository{store: store}
}

func (r *mongoTimeSlotRepository) GetAll(ctx context.Context) ([]*model.TimeSlot, error) {
	slots, err := r.store.GetAll(ctx, byStartTime)
	if err != nil {
		return nil, fmt.Errorf("failed to list time slots: %w", err)
	}
	return slots, nil
}

func (r *mongoTimeSlotRepository) GetByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	slot, err := r.store.GetOne(ctx, id)
	if errors.Is(err, mongostore.ErrNoRecord) {
		return nil, timeslotserrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time slot %s: %w", id, err)
	}
	return slot, nil
}

func (r *mongoTimeSlotRepository) GetActiveByMentor(ctx context.Context, mentorID string, now time.Time) ([]*model.TimeSlot, error) {
	slots, err := r.store.GetFiltered(ctx, ActiveFilter(mentorID, now), byStartTime)
	if err != nil {
		return nil, fmt.Errorf("failed to list time slots for mentor %s: %w", mentorID, err)
	}
	return slots, nil
}

func (r *mongoTimeSlotRepository) UpdateBooked(ctx context.Context, id string, booked bool) (*model.TimeSlot, error) {
	slot, err := r.store.Update(ctx, ConditionalBookedFilter(id, booked), bson.M{"$set": bson.M{"booked": booked}})
	if errors.Is(err, mongostore.ErrNoRecord) {
		return nil, timeslotserrors.ErrUpdateNotApplied
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set booked=%t on time slot %s: %w", booked, id, err)
	}
	return slot, nil
}

func (r *mongoTimeSlotRepository) Put(ctx context.Context, slot *model.TimeSlot) error {
	if err := r.store.Put(ctx, slot.ID, slot); err != nil {
		return fmt.Errorf("failed to store time slot %s: %w", slot.ID, err)
	}
	return nil
}

// ActiveFilter selects the mentor's unbooked slots that have not started yet.
func ActiveFilter(mentorID string, now time.Time) bson.M {
	return bson.M{
		"mentor_id":  mentorID,
		"booked":     false,
		"start_time": bson.M{"$gte": now},
	}
}

// ConditionalBookedFilter matches the slot only while its flag is the
// opposite of the value about to be written.
func ConditionalBookedFilter(id string, booked bool) bson.M {
	return bson.M{"_id": id, "booked": !booked}
}
