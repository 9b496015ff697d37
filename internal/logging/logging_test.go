package logging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingHandler struct {
	level   slog.Level
	records []slog.Record
	err     error
}

func (h *recordingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return h.err
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestPGHandlerEntryMapsKnownAttributes(t *testing.T) {
	h := (&PGHandler{sink: &pgSink{}}).WithAttrs([]slog.Attr{
		slog.String("request_id", "req-1"),
	}).(*PGHandler)

	record := slog.NewRecord(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), slog.LevelError, "request failed", 0)
	record.AddAttrs(
		slog.String("user_id", "7"),
		slog.String("action", "delete_recipes"),
		slog.String("error", "boom"),
		slog.Float64("latency_ms", 12.6),
		slog.String("method", "DELETE"),
		slog.String("path", "/api/recipes/5"),
		slog.Int("recipe_id", 5),
	)

	entry := h.entry(record)
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "request failed", entry.Message)
	assert.Equal(t, "req-1", entry.RequestID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "7", *entry.UserID)
	assert.Equal(t, "delete_recipes", entry.Action)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, 13, entry.LatencyMs)
	assert.Equal(t, "DELETE", entry.Method)
	assert.Equal(t, "/api/recipes/5", entry.Path)

	var extra map[string]interface{}
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, map[string]interface{}{"recipe_id": float64(5)}, extra)
}

func TestPGHandlerOnlyTakesErrors(t *testing.T) {
	h := &PGHandler{sink: &pgSink{}}
	assert.False(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandlerFansOutByLevel(t *testing.T) {
	info := &recordingHandler{level: slog.LevelInfo, err: errors.New("sink down")}
	errs := &recordingHandler{level: slog.LevelError}
	log := slog.New(NewMultiHandler(info, errs))

	log.Info("hello")
	log.Error("failed")

	assert.Len(t, info.records, 2)
	require.Len(t, errs.records, 1)
	assert.Equal(t, "failed", errs.records[0].Message)
	assert.False(t, NewMultiHandler(errs).Enabled(context.Background(), slog.LevelInfo))
}

func TestPurgeBefore(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cutoff := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "system_logs" WHERE timestamp < \$1`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := PurgeBefore(context.Background(), db, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
