package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestTransactClassifiesErrors(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()
	conflict := apperr.Conflict("taken")
	err := Transact(ctx, db, func(*gorm.DB) error { return conflict })
	assert.Same(t, conflict, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err = Transact(ctx, db, func(*gorm.DB) error { return errors.New("connection reset") })
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))

	mock.ExpectBegin()
	mock.ExpectCommit()
	assert.NoError(t, Transact(ctx, db, func(*gorm.DB) error { return nil }))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationsRunInsideTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "diet_logs" WHERE "recipe_id" IN \(\$1,\$2\) ORDER BY id`).
		WithArgs(5, 6).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(30).AddRow(31))
	mock.ExpectExec(`UPDATE "diet_logs" SET "recipe_id"=NULL WHERE "recipe_id" IN \(\$1,\$2\)`).
		WithArgs(5, 6).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "recipes" WHERE id IN \(\$1,\$2\)`).
		WithArgs(5, 6).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := Transact(ctx, db, func(tx *gorm.DB) error {
		r := NewRelations(tx)
		ids, err := r.ReferencingIDs(ctx, "diet_logs", "recipe_id", []uint{5, 6})
		if err != nil {
			return err
		}
		assert.Equal(t, []uint{30, 31}, ids)
		if err := r.ClearColumn(ctx, "diet_logs", "recipe_id", []uint{5, 6}); err != nil {
			return err
		}
		return r.DeleteIDs(ctx, "recipes", []uint{5, 6})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRowLocks(t *testing.T) {
	db, _ := newMockDB(t)
	dry := db.Session(&gorm.Session{DryRun: true})

	var rows []struct{ ID uint }
	stmt := ForShare(dry).Table("users").Select("id").Where("id = ?", 1).Find(&rows).Statement
	assert.Contains(t, stmt.SQL.String(), "FOR SHARE")

	stmt = ForUpdate(dry).Table("users").Where("id = ?", 1).Find(&rows).Statement
	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")
}
