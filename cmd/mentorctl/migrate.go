package main

import (
	mongoMigration "mentorbooking/internal/migrations/mongo"

	"github.com/spf13/cobra"
)

func migrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create collections, validators and indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.mongo()
			return mongoMigration.RunMigration(app.ctx,
				app.cfg.Client.Mongo.Database(app.cfg.MongoDatabaseName),
				mongoMigration.Collections{
					Mentors:   app.cfg.MentorsCollection,
					TimeSlots: app.cfg.TimeSlotsCollection,
					Bookings:  app.cfg.BookingsCollection,
				},
				app.cfg.Log,
			)
		},
	}
}
