package main

import (
	"database/sql"
	"fmt"
	"os"

	"laundry-hub/config"
	"laundry-hub/internal/adapter/storage/postgres"
	"laundry-hub/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	log        zerolog.Logger
	cfg        *config.Config
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply laundry-hub schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts.cfg = cfg
			opts.log = logger.Component(logger.New(cfg.Log.Level, cfg.Log.Pretty), "migrate")
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")

	for _, name := range []string{"up", "down", "status"} {
		cmd.AddCommand(newGooseCommand(opts, name))
	}
	cmd.AddCommand(newVersionCommand(opts))
	return cmd
}

func newGooseCommand(opts *rootOptions, command string) *cobra.Command {
	return &cobra.Command{
		Use:   command,
		Short: "goose " + command,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(opts, func(db *sql.DB) error {
				return postgres.Migrate(cmd.Context(), db, command)
			})
		},
	}
}

func newVersionCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version <target>",
		Short: "Migrate up or down to the target version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(opts, func(db *sql.DB) error {
				return postgres.MigrateToVersion(cmd.Context(), db, args[0])
			})
		},
	}
}

func withDB(opts *rootOptions, fn func(*sql.DB) error) error {
	db, err := sql.Open("pgx", opts.cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	opts.log.Info().
		Str("host", opts.cfg.Database.Host).
		Str("dbname", opts.cfg.Database.DBName).
		Msg("migrate ready")
	if err := fn(db); err != nil {
		opts.log.Error().Err(err).Msg("migration failed")
		return err
	}
	return nil
}
