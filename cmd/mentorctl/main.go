package main

import (
	"context"
	"os"

	"mentorbooking/pkg/config"

	"github.com/spf13/cobra"
)

const ServiceName = "mentorctl"

// App holds dependencies shared by the subcommands. Mongo is connected on
// first use so that commands like token work offline.
type App struct {
	cfg *config.Config
	ctx context.Context
}

func (a *App) mongo() {
	if a.cfg.Client.Mongo == nil {
		a.cfg.SetMongo()
	}
}

func main() {
	app := &App{ctx: context.Background()}

	rootCmd := &cobra.Command{
		Use:          "mentorctl",
		Short:        "Operate the mentor booking platform",
		Long:         `Seed demo data, import mentors, run migrations and mint access tokens.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.cfg = config.Load(ServiceName)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.cfg != nil {
				app.cfg.GracefulShutdown()
			}
		},
	}

	rootCmd.AddCommand(seedCmd(app))
	rootCmd.AddCommand(importCmd(app))
	rootCmd.AddCommand(migrateCmd(app))
	rootCmd.AddCommand(tokenCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
