package main

import (
	"fmt"
	"time"

	"mentorbooking/pkg/middleware"

	"github.com/spf13/cobra"
)

func tokenCmd(app *App) *cobra.Command {
	var (
		email string
		role  string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cfg.ValidateAuth(); err != nil {
				return err
			}

			token, err := middleware.NewAuthenticator(app.cfg.JWTSecret, app.cfg.JWTIssuer).
				IssueToken(email, middleware.Role(role), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Requester email")
	cmd.Flags().StringVar(&role, "role", string(middleware.RoleStudent), "Role: student or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
