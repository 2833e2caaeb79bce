package main

import (
	"github.com/spf13/cobra"

	"timesheet/internal/migrate"
)

func newMigrateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.setup(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := cfg.RequireMySQL(); err != nil {
				return err
			}
			if err := migrate.Run(cmd.Context(), cfg.MySQL.DSN, cfg.MySQL.TablePrefix, logger); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}
