package main

import (
	"encoding/json"
	"fmt"
	"time"

	mentorrepo "mentorbooking/internal/mentors/repository"
	"mentorbooking/internal/seed"
	timeslotrepo "mentorbooking/internal/timeslots/repository"

	"github.com/spf13/cobra"
)

func seedCmd(app *App) *cobra.Command {
	var (
		mentors int
		days    int
		seedVal uint64
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate demo mentors with half-hour slots six months ahead",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seedVal == 0 {
				seedVal = uint64(time.Now().UnixNano())
			}

			data, err := seed.NewGenerator(seedVal).Generate(seed.Options{
				Mentors: mentors,
				Days:    days,
				Day:     seed.DefaultDay(time.Now()),
			})
			if err != nil {
				return err
			}

			if dryRun {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(data)
			}

			app.mongo()
			seeder := seed.NewSeeder(
				mentorrepo.NewMongoMentorRepository(app.cfg),
				timeslotrepo.NewMongoTimeSlotRepository(app.cfg),
				app.cfg.Log,
			)
			if err := seeder.Write(app.ctx, data); err != nil {
				return fmt.Errorf("failed to write seed data: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d mentors and %d time slots (seed %d)\n",
				len(data.Mentors), len(data.TimeSlots), seedVal)
			return nil
		},
	}

	cmd.Flags().IntVar(&mentors, "mentors", 5, "Number of mentors to create")
	cmd.Flags().IntVar(&days, "days", 1, "Number of consecutive days with slots")
	cmd.Flags().Uint64Var(&seedVal, "seed", 0, "Random seed (0 picks one from the clock)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the generated data instead of writing it")
	return cmd
}
