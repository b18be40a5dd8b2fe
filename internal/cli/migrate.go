package cli

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pageza/recipe-realm/backend/internal/database"
	"github.com/spf13/cobra"
)

var errSQLiteMigrations = errors.New("migrate commands need a postgres database; sqlite is auto-migrated on startup")

func newMigrateCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}

	withMigrator := func(fn func(*database.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if rt.cfg.DBDriver == "sqlite" {
				return errSQLiteMigrations
			}
			db, err := sql.Open("postgres", rt.cfg.DatabaseURL())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			migrator, err := database.NewMigrator(db, rt.cfg.DBName, rt.logger)
			if err != nil {
				return err
			}
			return fn(migrator)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  withMigrator(func(m *database.Migrator) error { return m.Up() }),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE:  withMigrator(func(m *database.Migrator) error { return m.Down() }),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(func(m *database.Migrator) error {
					version, dirty, err := m.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
					return nil
				})(cmd, args)
			},
		},
	)
	return cmd
}
