package repository

import (
	"context"
	"errors"
	"fmt"

	mentorserrors "mentorbooking/internal/mentors/errors"
	"mentorbooking/pkg/config"
	mongostore "mentorbooking/pkg/db/mongo"
	"mentorbooking/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

type MentorRepository interface {
	GetAll(ctx context.Context) ([]*model.Mentor, error)
	GetAllFiltered(ctx context.Context, filter model.MentorFilter) ([]*model.Mentor, error)
	GetByID(ctx context.Context, id string) (*model.Mentor, error)
	Put(ctx context.Context, mentor *model.Mentor) error
}

type mongoMentorRepository struct {
	store *mongostore.Store[model.Mentor]
}

var byName = &mongostore.QueryOptions{Sort: bson.D{{Key: "name", Value: 1}}}

func NewMongoMentorRepository(cfg *config.Config) MentorRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return NewMentorRepository(mongostore.NewStore[model.Mentor](db, cfg.MentorsCollection, cfg.StoreReadTimeout, cfg.StoreWriteTimeout))
}

func NewMentorRepository(store *mongostore.Store[model.Mentor]) MentorRepository {
	return &mongoMentorRepository{store: store}
}

func (r *mongoMentorRepository) GetAll(ctx context.Context) ([]*model.Mentor, error) {
	mentors, err := r.store.GetAll(ctx, byName)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}
	return mentors, nil
}

func (r *mongoMentorRepository) GetAllFiltered(ctx context.Context, filter model.MentorFilter) ([]*model.Mentor, error) {
	mentors, err := r.store.GetFiltered(ctx, BuildFilter(filter), byName)
	if err != nil {
		return nil, fmt.Errorf("failed to filter mentors: %w", err)
	}
	return mentors, nil
}

func (r *mongoMentorRepository) GetByID(ctx context.Context, id string) (*model.Mentor, error) {
	mentor, err := r.store.GetOne(ctx, id)
	if errors.Is(err, mongostore.ErrNoRecord) {
		return nil, mentorserrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mentor %s: %w", id, err)
	}
	return mentor, nil
}

// Put inserts the mentor or overwrites the stored record with the same id.
func (r *mongoMentorRepository) Put(ctx context.Context, mentor *model.Mentor) error {
	if err := r.store.Put(ctx, mentor.ID, mentor); err != nil {
		return fmt.Errorf("failed to store mentor %s: %w", mentor.ID, err)
	}
	return nil
}

// BuildFilter ANDs the set predicates: experience equality and skills
// containment (the mentor has every listed skill).
func BuildFilter(filter model.MentorFilter) bson.M {
	query := bson.M{}
	if filter.Experience != nil {
		query["experience"] = *filter.Experience
	}
	if len(filter.Skills) > 0 {
		query["skills"] = bson.M{"$all": filter.Skills}
	}
	return query
}
