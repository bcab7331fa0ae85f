package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"activities-system/config"
	"activities-system/internal/handlers"
	"activities-system/internal/services"
	"activities-system/monitoring"
	"activities-system/utils"

	"github.com/redis/go-redis/v9"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func Start() error {
	// Load configuration
	cfg := config.LoadConfig()

	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: cfg.DataDir,
		DefaultDev:     cfg.Environment == "development",
	})

	// Initialize Redis (optional; guards the signup sequence when configured)
	var redisClient *redis.Client
	if cfg.LockEnabled() {
		redisClient = utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		defer redisClient.Close()
	}

	// Initialize services
	activityService := services.NewActivityService(app)
	lockService := services.NewLockService(redisClient, cfg.SignupLockTimeout)

	var monitor *monitoring.Monitor
	if cfg.EnableMetrics {
		monitor = monitoring.NewMonitor(app, cfg.MetricsInterval)
	}

	// Initialize handlers
	activityHandler := handlers.NewActivityHandler(app, activityService, lockService, monitor)

	// Create context for background tasks
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	go handleShutdown(cancel)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Schema and seed data must exist before any traffic is served
		if err := services.EnsureSchema(app); err != nil {
			return err
		}
		if err := services.EnsureDefaultActivities(app); err != nil {
			return err
		}

		handlers.BindRoutes(e.Router, cfg, activityHandler, redisClient)

		if monitor != nil {
			go monitor.Run(ctx)
		}

		app.Logger().Info("server routes registered")

		return e.Next()
	})

	return app.Start()
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
