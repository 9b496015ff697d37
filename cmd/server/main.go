package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logging.Setup(cfg.AppEnv)

	if err := run(cfg); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func run(cfg *config.Config) error {
	if err := requireSecrets(cfg); err != nil {
		return err
	}

	if err := database.Connect(cfg); err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}()
	if err := database.Migrate(); err != nil {
		return err
	}

	// ERROR+ records are also batched into system_logs.
	pgLogHandler := logging.NewPGHandler(database.DB)
	defer pgLogHandler.Stop()
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewStdoutHandler(slog.LevelInfo),
		pgLogHandler,
	)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logging.StartCleanup(ctx, database.DB, cfg.LogRetentionDays)

	initSentry(cfg)
	defer sentry.Flush(2 * time.Second)

	app := newApp(cfg)
	routes.Setup(app, cfg, buildHandlers(cfg, database.DB))

	errc := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	return app.ShutdownWithTimeout(shutdownTimeout)
}

func requireSecrets(cfg *config.Config) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if cfg.DBPassword == "" {
		return errors.New("DB_PASSWORD environment variable is required")
	}
	return nil
}

func initSentry(cfg *config.Config) {
	if cfg.SentryDSN == "" {
		return
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		EnableTracing:    true,
		TracesSampleRate: 0.2,
		Environment:      cfg.AppEnv,
	}); err != nil {
		slog.Error("sentry init failed", "error", err)
	}
}

func buildHandlers(cfg *config.Config, db *gorm.DB) routes.Handlers {
	issuer := services.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	users := services.NewUserService(db)

	return routes.Handlers{
		Auth:       handlers.NewAuthHandler(services.NewAuthService(db, cfg, issuer)),
		Health:     handlers.NewHealthHandler(),
		User:       handlers.NewUserHandler(users),
		Admin:      handlers.NewAdminHandler(users, services.NewStatsService(db)),
		Recipe:     handlers.NewRecipeHandler(services.NewRecipeService(db)),
		Ingredient: handlers.NewIngredientHandler(services.NewIngredientService(db)),
		MealPlan:   handlers.NewMealPlanHandler(services.NewMealPlanService(db)),
		DietLog:    handlers.NewDietLogHandler(services.NewDietLogService(db)),
		Feedback:   handlers.NewFeedbackHandler(services.NewFeedbackService(db, services.NewCommentFilter())),
	}
}

// newApp builds the Fiber app with the global middleware chain. recover is
// the outer layer; Sentry sits inside it, reports a panic and re-panics so
// recover can turn it into a 500.
func newApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "nutrition-backend",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(metrics.Middleware())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())
	return app
}
