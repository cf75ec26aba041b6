package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorbooking/internal/migrations/mongo/validators"
	"mentorbooking/pkg/logger"
)

var (
	MentorsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "experience", Value: 1}}},
		{Keys: bson.D{{Key: "skills", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	TimeSlotsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "mentor_id", Value: 1},
			{Key: "booked", Value: 1},
			{Key: "start_time", Value: 1},
		}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "student_email", Value: 1},
			{Key: "start_time", Value: 1},
		}},
		{Keys: bson.D{{Key: "time_slot_id", Value: 1}}},
	}
)

// Collections names the three collections the migration manages.
type Collections struct {
	Mentors   string
	TimeSlots string
	Bookings  string
}

type collectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func definitions(names Collections) map[string]collectionDef {
	return map[string]collectionDef{
		names.Mentors: {
			Indexes:   MentorsIndexes,
			Validator: validators.MentorValidator,
		},
		names.TimeSlots: {
			Indexes:   TimeSlotsIndexes,
			Validator: validators.TimeSlotValidator,
		},
		names.Bookings: {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
	}
}

func RunMigration(ctx context.Context, db *mongo.Database, names Collections, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for name, def := range definitions(names) {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
