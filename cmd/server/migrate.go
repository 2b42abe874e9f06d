package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/and161185/dev-diary/internal/config"
	"github.com/and161185/dev-diary/internal/migrate"
)

var migrateActions = map[string]func(context.Context, string) error{
	"up":     migrate.Up,
	"down":   migrate.Down,
	"status": migrate.Status,
}

func newMigrateCmd(f *rootFlags) *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:       "migrate {up|down|status}",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				cfg, err := config.Read(f.configPath)
				if err != nil {
					return err
				}
				dsn = cfg.DatabaseURL
			}
			if dsn == "" {
				return errors.New("database url is empty")
			}
			return migrateActions[args[0]](cmd.Context(), dsn)
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL DSN (overrides config)")
	return cmd
}
