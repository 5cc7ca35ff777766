package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cronrunner "moneyball/core/cron"
	"moneyball/core/loader"
	"moneyball/core/logger"
	"moneyball/core/middleware/auth"
	"moneyball/core/middleware/rayid"
	"moneyball/feature/ingest"
	"moneyball/feature/sports"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the ingestion service",
	Long:  `Starts the HTTP server, loads all features and schedules the periodic update cycle.`,
	Run: func(cmd *cobra.Command, args []string) {
		a := bootstrap()
		logg := a.logger
		defer logg.Sync()

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
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

		// 2.5 Health (Public)
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		// 4. Load Features
		mgr := loader.NewManager()
		mgr.Register(sports.NewFeature(a.db, logg))
		mgr.Register(ingest.NewFeature(a.service))
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Schedule the update cycle
		runner := cronrunner.New(logg, context.Background())
		if _, err := runner.Add(a.cfg.Scheduler.Cron, func(ctx context.Context) {
			if err := a.service.RunScheduledUpdate(ctx); err != nil {
				logg.Error("Scheduled update failed", zap.Error(err))
			}
		}); err != nil {
			logg.Fatal("Failed to schedule update cycle", zap.Error(err))
		}
		runner.Start()

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := app.Listen(":" + a.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		runner.Stop()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
