package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

var errNotConnected = errors.New("database not connected")

// Connect opens the pool. Driver errors are translated so duplicate keys
// surface as gorm.ErrDuplicatedKey.
func Connect(cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel(cfg.AppEnv)),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(min(cfg.DBMaxIdleConns, cfg.DBMaxOpenConns))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	DB = db
	slog.Info("database connected", "host", cfg.DBHost, "db", cfg.DBName, "max_open", cfg.DBMaxOpenConns)
	return nil
}

func gormLogLevel(appEnv string) logger.LogLevel {
	if appEnv == "development" {
		return logger.Info
	}
	return logger.Warn
}

// Migrate creates or updates every table. Foreign keys carry no ON DELETE
// action; deletion rules live in the integrity package.
func Migrate() error {
	if DB == nil {
		return errNotConnected
	}
	if err := DB.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Ping checks connectivity within timeout.
func Ping(ctx context.Context, timeout time.Duration) error {
	if DB == nil {
		return errNotConnected
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
