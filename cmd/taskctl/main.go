package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/storage"
	appservice "tasktracker/internal/app/service"
	"tasktracker/internal/config"
	"tasktracker/internal/core/history"
	"tasktracker/internal/core/manager"
	"tasktracker/internal/core/ports"
	applogger "tasktracker/internal/logger"
)

var Version = "dev"

type rootOptions struct {
	driver string
	path   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "taskctl",
		Short:         "Inspect and move task tracker snapshots",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := config.LoadConfig()
			// stdout carries command output, so logs stay at warn unless asked
			level := cfg.LogLevel
			if os.Getenv("LOG_LEVEL") == "" {
				level = "warn"
			}
			zap.ReplaceGlobals(applogger.New(applogger.Config{Level: level, File: cfg.LogFile}))
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.driver, "driver", "", "storage driver (overrides STORAGE_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&opts.path, "path", "", "csv or sqlite file (overrides STORAGE_PATH)")

	rootCmd.AddCommand(listCmd(opts))
	rootCmd.AddCommand(prioritizedCmd(opts))
	rootCmd.AddCommand(historyCmd(opts))
	rootCmd.AddCommand(endTimeCmd(opts))
	rootCmd.AddCommand(exportCmd(opts))
	rootCmd.AddCommand(copyCmd(opts))

	return rootCmd
}

// loadConfig applies the command line overrides on top of the environment.
func (o *rootOptions) loadConfig() *config.Config {
	cfg := config.LoadConfig()
	if o.driver != "" {
		cfg = cfg.ForDriver(o.driver)
	}
	if o.path != "" {
		cfg.StoragePath = o.path
	}
	return cfg
}

// openService loads the configured store into a fresh service. The returned
// close function releases the store.
func openService(ctx context.Context, cfg *config.Config) (*appservice.TaskService, func(), error) {
	repository, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	service := appservice.NewTaskService(manager.New(history.NewTracker(cfg.HistoryLimit)), repository)
	closeFn := func() { closeRepository(repository) }
	if err := service.Load(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return service, closeFn, nil
}

func closeRepository(repository ports.SnapshotRepository) {
	if repository == nil {
		return
	}
	if err := repository.Close(); err != nil {
		zap.L().Warn("failed to close storage", zap.Error(err))
	}
}
