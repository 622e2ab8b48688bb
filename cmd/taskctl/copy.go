package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/storage"
	"tasktracker/internal/config"
)

func copyCmd(opts *rootOptions) *cobra.Command {
	var toDriver, toPath, toDSN string
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy the stored snapshot into another store",
		Example: `  taskctl copy --driver csv --path data/tasks.csv --to-driver sqlite3 --to-path data/tasks.db
  taskctl copy --to-driver redis`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			target := opts.loadConfig().ForDriver(toDriver)
			if toPath != "" {
				target.StoragePath = toPath
			}
			target.DbDSN = toDSN

			count, err := copySnapshot(ctx, opts.loadConfig(), target)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "copied %d entities to %s\n", count, toDriver)
			return err
		},
	}

	cmd.Flags().StringVar(&toDriver, "to-driver", "", "target storage driver")
	cmd.Flags().StringVar(&toPath, "to-path", "", "target csv or sqlite file")
	cmd.Flags().StringVar(&toDSN, "to-dsn", "", "target database DSN")
	_ = cmd.MarkFlagRequired("to-driver")

	return cmd
}

// copySnapshot overwrites the target store with the source snapshot and
// returns the number of entities written.
func copySnapshot(ctx context.Context, source, target *config.Config) (int, error) {
	if target.StorageDriver == config.StorageMemory {
		return 0, fmt.Errorf("cannot copy into the memory driver")
	}

	service, closeFn, err := openService(ctx, source)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer closeFn()
	snapshot := service.Snapshot()

	repository, err := storage.Open(ctx, target)
	if err != nil {
		return 0, fmt.Errorf("open target: %w", err)
	}
	defer closeRepository(repository)

	if err := repository.Save(ctx, snapshot); err != nil {
		return 0, err
	}
	zap.L().Info("snapshot copied",
		zap.String("from", source.StorageDriver),
		zap.String("to", target.StorageDriver),
		zap.Int("entities", len(snapshot.All())),
	)
	return len(snapshot.All()), nil
}
