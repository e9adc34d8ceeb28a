package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud-sync/core/config"
	"cloud-sync/core/logger"
	"cloud-sync/core/middleware/auth"
	"cloud-sync/core/middleware/rayid"
	"cloud-sync/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// watchCmd runs the auto-sync daemon with the status API.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the auto-sync daemon",
	Long: `Starts the periodic synchronizer and the HTTP status API.
A pass runs every SYNC_INTERVAL_SECONDS; ticks that land while a pass is
still running are skipped. The API exposes progress and a manual trigger.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Wire the engine against both stores
		engine, err := buildEngine(cmd.Context(), cfg, logg)
		if err != nil {
			logg.Fatal("Failed to build sync engine", zap.Error(err))
		}

		svc := status.NewService(logg)
		handler := status.NewHandler(svc, engine)

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// RayID first so everything downstream can be traced.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Use(auth.New(cfg.Server.ApiKey))

		handler.RegisterRoutes(app)

		// 5. Start the periodic synchronizer
		if err := engine.AutoSync(cfg.Sync.Interval(), svc.Progress()); err != nil {
			logg.Fatal("Failed to start auto-sync", zap.Error(err))
		}
		logg.Info("Auto-sync started",
			zap.Duration("interval", cfg.Sync.Interval()),
			zap.String("strategy", cfg.Sync.Strategy),
		)

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := engine.Dispose(ctx); err != nil {
			logg.Warn("Engine disposal did not finish cleanly", zap.Error(err))
		}
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(watchCmd)
}
