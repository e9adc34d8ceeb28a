package cmd

import (
	"context"
	"log"

	"cloud-sync/core/config"
	"cloud-sync/core/logger"
	"cloud-sync/core/syncer"
	"cloud-sync/feature/status"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var concurrentSync bool

// syncCmd runs a single synchronization pass and exits.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a single sync pass",
	Long: `Runs one synchronization pass between the database and the object store,
logs every state transition, and exits. The diff strategy, error propagation
and store locations come from the environment (see .env.example).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if cmd.Flags().Changed("concurrent") {
			cfg.Sync.Concurrent = concurrentSync
		}
		// A one-shot pass must exit non-zero on failure, so pass-level
		// errors are always propagated regardless of configuration.
		cfg.Sync.PropagateErrors = true

		ctx := cmd.Context()
		engine, err := buildEngine(ctx, cfg, logg)
		if err != nil {
			return err
		}
		defer engine.Dispose(context.Background())

		progress := logProgress(logg)
		logg.Info("Starting sync pass", zap.String("strategy", cfg.Sync.Strategy))
		if cfg.Sync.Concurrent {
			err = engine.SyncConcurrent(ctx, progress)
		} else {
			err = engine.Sync(ctx, progress)
		}
		if err != nil {
			return err
		}
		logg.Info("Sync pass finished")
		return nil
	},
}

// logProgress logs each engine state transition at a level matching its
// severity.
func logProgress(logg *zap.Logger) syncer.ProgressFunc {
	return func(state syncer.State) {
		ev := status.Describe(state)
		fields := []zap.Field{}
		if ev.ItemID != "" {
			fields = append(fields, zap.String("item_id", ev.ItemID))
		}
		if ev.Error != "" {
			fields = append(fields, zap.String("error", ev.Error))
			logg.Warn(ev.State, fields...)
			return
		}
		logg.Info(ev.State, fields...)
	}
}

func init() {
	syncCmd.Flags().BoolVar(&concurrentSync, "concurrent", false, "run both diff directions concurrently (overrides SYNC_CONCURRENT)")
	RootCmd.AddCommand(syncCmd)
}
