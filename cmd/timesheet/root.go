package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"timesheet/internal/app"
	"timesheet/internal/config"
)

type globalFlags struct {
	verbose bool
	envFile string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "timesheet",
		Short:         "Workplace timesheet service",
		Long:          `timesheet records daily working times, checks them against working-time rules and exports monthly spreadsheets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "Optional .env file read before the environment")

	root.AddCommand(newServeCmd(g))
	root.AddCommand(newMigrateCmd(g))
	root.AddCommand(newExportCmd(g))
	root.AddCommand(newOvertimeCmd(g))
	return root
}

// setup loads config and builds the logger shared by every command. Logs
// go to logOut so commands writing data to stdout can move them aside.
func (g *globalFlags) setup(logOut io.Writer) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(g.envFile)
	if err != nil {
		return cfg, nil, err
	}
	level, _ := cfg.Level()
	if g.verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func (g *globalFlags) app(ctx context.Context, logOut io.Writer) (*app.App, *slog.Logger, config.Config, error) {
	cfg, logger, err := g.setup(logOut)
	if err != nil {
		return nil, nil, cfg, err
	}
	a, err := app.New(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to initialize app", slog.String("error", err.Error()))
		return nil, nil, cfg, err
	}
	return a, logger, cfg, nil
}
