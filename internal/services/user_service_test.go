package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/authz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "name", "email", "height_cm", "weight_kg", "role"}

func TestUpdateWeightRecordsHistoryAtomically(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "Alice", "alice@example.com", 180, 70.0, "user"))
	mock.ExpectQuery(`INSERT INTO "weight_history" \("user_id","old_weight","new_weight","created_at"\)`).
		WithArgs(1, 70.0, 72.0, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	entry, err := svc.UpdateWeight(context.Background(), userAlice, 1, 72)
	require.NoError(t, err)

	assert.Equal(t, uint(11), entry.ID)
	require.NotNil(t, entry.OldWeight)
	assert.Equal(t, 70.0, *entry.OldWeight)
	assert.Equal(t, 72.0, entry.NewWeight)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWeightRollsBackWhenUserUpdateFails(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "Alice", "alice@example.com", nil, nil, "user"))
	mock.ExpectQuery(`INSERT INTO "weight_history"`).
		WithArgs(1, nil, 65.0, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := svc.UpdateWeight(context.Background(), userAlice, 1, 65)
	require.Error(t, err)
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWeightAuthorization(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	_, err := svc.UpdateWeight(context.Background(), userBob, 1, 72)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	_, err = svc.UpdateWeight(context.Background(), userAlice, 1, 0)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWeightUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectRollback()

	_, err := svc.UpdateWeight(context.Background(), adminEve, 404, 72)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminDeleteBlocksSelf(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	err := svc.AdminDelete(context.Background(), adminEve, adminEve.UserID)
	assert.ErrorIs(t, err, authz.ErrSelfDeletion)

	err = svc.AdminDelete(context.Background(), userAlice, userBob.UserID)
	assert.ErrorIs(t, err, authz.ErrAdminOnly)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSelfOnlyOwnAccount(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	err := svc.DeleteSelf(context.Background(), adminEve, userAlice.UserID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestComputeBMI(t *testing.T) {
	h := 180
	bmi := computeBMI(&h, f64(72))
	require.NotNil(t, bmi)
	assert.Equal(t, 22.22, *bmi)

	assert.Nil(t, computeBMI(nil, f64(72)))
	assert.Nil(t, computeBMI(&h, nil))
	zero := 0
	assert.Nil(t, computeBMI(&zero, f64(72)))
}
