package cli

import (
	"fmt"

	"github.com/pageza/recipe-realm/backend/internal/database"
	"github.com/pageza/recipe-realm/backend/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd(rt *runtime) *cobra.Command {
	opts := seed.Options{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the starter recipes, optionally with fake reviewers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.New(rt.cfg, rt.logger)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := database.RunMigrations(db, rt.cfg.DBName, rt.logger); err != nil {
				return err
			}

			result, err := seed.New(db, rt.logger).Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d recipes, %d reviews\n",
				result.Users, result.Recipes, result.Reviews)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Password, "password", "password123", "password for every seeded account")
	cmd.Flags().IntVar(&opts.FakeUsers, "fake", 0, "number of fake reviewers to create")
	cmd.Flags().IntVar(&opts.ReviewsPerUser, "reviews", 3, "reviews written by each fake reviewer")
	return cmd
}
