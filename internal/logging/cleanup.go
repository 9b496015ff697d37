package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"gorm.io/gorm"
)

const cleanupInterval = 24 * time.Hour

// StartCleanup purges system logs past retentionDays once at startup and
// then daily until ctx is cancelled.
func StartCleanup(ctx context.Context, db *gorm.DB, retentionDays int) {
	purge := func() {
		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		if _, err := PurgeBefore(ctx, db, cutoff); err != nil && ctx.Err() == nil {
			slog.Error("log cleanup failed", "action", "log_cleanup", "error", err)
		}
	}

	go func() {
		purge()
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				purge()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// PurgeBefore deletes system log rows older than cutoff.
func PurgeBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Where("timestamp < ?", cutoff).
		Delete(&models.SystemLog{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "action", "log_cleanup", "deleted", result.RowsAffected, "cutoff", cutoff.Format(time.DateOnly))
	}
	return result.RowsAffected, nil
}
