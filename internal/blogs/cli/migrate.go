package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bloglist/internal/blogs/config"
	"bloglist/pkg/db/postgres"
)

func newMigrateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres schema",
	}
	cmd.AddCommand(
		newMigrateUpCmd(opts),
		newMigrateDownCmd(opts),
		newMigrateVersionCmd(opts),
	)
	return cmd
}

func openMigrator(cmd *cobra.Command, opts *options) (*postgres.Migrator, error) {
	cfg, err := opts.load(cmd.Context())
	if err != nil {
		return nil, err
	}
	return newMigrator(cmd, &cfg.Postgres)
}

func newMigrator(cmd *cobra.Command, pg *config.PostgresConfig) (*postgres.Migrator, error) {
	source, err := pg.GetMigrationsSource()
	if err != nil {
		return nil, err
	}
	return postgres.NewMigrator(cmd.Context(), source, pg.GetConnectionURL())
}

func newMigrateUpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mg, err := openMigrator(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = mg.Close() }()

			if err := mg.Up(cmd.Context()); err != nil {
				return err
			}
			return printVersion(cmd, mg)
		},
	}
}

func newMigrateDownCmd(opts *options) *cobra.Command {
	var steps int

	c := &cobra.Command{
		Use:   "down",
		Short: "Revert the latest migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mg, err := openMigrator(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = mg.Close() }()

			if err := mg.Down(cmd.Context(), steps); err != nil {
				return err
			}
			return printVersion(cmd, mg)
		},
	}
	c.Flags().IntVar(&steps, "steps", 1, "number of migrations to revert")
	return c
}

func newMigrateVersionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mg, err := openMigrator(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = mg.Close() }()

			return printVersion(cmd, mg)
		},
	}
}

func printVersion(cmd *cobra.Command, mg *postgres.Migrator) error {
	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty: %t)\n", version, dirty)
	return err
}
