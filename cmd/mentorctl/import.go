package main

import (
	"fmt"
	"os"

	importservice "mentorbooking/internal/imports/service"
	"mentorbooking/internal/imports/storage"
	mentorrepo "mentorbooking/internal/mentors/repository"
	"mentorbooking/pkg/validation"

	"github.com/spf13/cobra"
)

func importCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import mentors from a semicolon-separated file",
		Long:  `Reads email;experience;name;skills rows and upserts each valid row as a new mentor.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			app.mongo()
			store, err := storage.NewGridFSStore(app.cfg.Client.Mongo.Database(app.cfg.MongoDatabaseName), app.cfg.ImportBucket)
			if err != nil {
				return err
			}
			importer := importservice.NewImporter(store,
				mentorrepo.NewMongoMentorRepository(app.cfg),
				validation.New(),
				app.cfg.Log,
			)

			result, err := importer.Import(app.ctx, f)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d mentors, %d rows rejected\n", result.SuccessCount, result.ErrorCount)
			return nil
		},
	}
}
