package main

import (
	"context"
	"time"

	mongoMigration "mentorbooking/internal/migrations/mongo"
	"mentorbooking/pkg/config"
)

const (
	JobName    = "mongo-migration"
	jobTimeout = 120 * time.Second
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")
	if err := mongoMigration.RunMigration(ctx,
		cfg.Client.Mongo.Database(cfg.MongoDatabaseName),
		mongoMigration.Collections{
			Mentors:   cfg.MentorsCollection,
			TimeSlots: cfg.TimeSlotsCollection,
			Bookings:  cfg.BookingsCollection,
		},
		cfg.Log,
	); err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		return
	}
	cfg.Log.Info("Migration completed successfully")
}
