package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var feedbackColumns = []string{"id", "user_id", "recipe_id", "rating", "comments"}

func newFeedbackService(t *testing.T) (*FeedbackService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	return NewFeedbackService(db, NewCommentFilter()), mock
}

func TestAddFeedback(t *testing.T) {
	svc, mock := newFeedbackService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "users" WHERE "users"."id" = \$1 .*FOR SHARE`).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery(`SELECT "id" FROM "recipes" WHERE "recipes"."id" = \$1 .*FOR SHARE`).
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`INSERT INTO "feedback"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectCommit()

	fb, err := svc.Add(context.Background(), userBob, 5, &dto.CreateFeedbackRequest{Rating: 4, Comments: "Tasty"})
	require.NoError(t, err)
	assert.Equal(t, uint(8), fb.ID)
	assert.Equal(t, uint(2), fb.UserID)
	assert.Equal(t, uint(5), fb.RecipeID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFeedbackUnknownRecipe(t *testing.T) {
	svc, mock := newFeedbackService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery(`SELECT "id" FROM "recipes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Add(context.Background(), userBob, 99, &dto.CreateFeedbackRequest{Rating: 4})
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFeedbackForDeletedAccount(t *testing.T) {
	svc, mock := newFeedbackService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Add(context.Background(), userBob, 5, &dto.CreateFeedbackRequest{Rating: 4})
	assert.ErrorIs(t, err, ErrAccountGone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackCommentsAreFilteredBeforeAnyQuery(t *testing.T) {
	svc, mock := newFeedbackService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, userBob, 5, &dto.CreateFeedbackRequest{Rating: 1, Comments: "call 555-123-4567"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Contact information is not allowed in recipe feedback.", err.Error())

	spam := "see https://example.com"
	_, err = svc.Update(ctx, userBob, 8, &dto.UpdateFeedbackRequest{Comments: &spam})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFeedbackOwnership(t *testing.T) {
	rating := 2

	t.Run("other user is forbidden", func(t *testing.T) {
		svc, mock := newFeedbackService(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "feedback" WHERE "feedback"."id" = \$1 .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows(feedbackColumns).AddRow(8, 1, 5, 4, "Tasty"))
		mock.ExpectRollback()

		_, err := svc.Update(context.Background(), userBob, 8, &dto.UpdateFeedbackRequest{Rating: &rating})
		assert.ErrorIs(t, err, authz.ErrForbidden)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("admin may edit", func(t *testing.T) {
		svc, mock := newFeedbackService(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "feedback" WHERE "feedback"."id" = \$1 .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows(feedbackColumns).AddRow(8, 1, 5, 4, "Tasty"))
		mock.ExpectExec(`UPDATE "feedback" SET "comments"=\$1,"rating"=\$2,"updated_at"=\$3 WHERE .*"id" = \$4`).
			WithArgs("Tasty", 2, sqlmock.AnyArg(), 8).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		fb, err := svc.Update(context.Background(), adminEve, 8, &dto.UpdateFeedbackRequest{Rating: &rating})
		require.NoError(t, err)
		assert.Equal(t, 2, fb.Rating)
		assert.Equal(t, uint(1), fb.UserID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteFeedbackOwnership(t *testing.T) {
	t.Run("other user is forbidden", func(t *testing.T) {
		svc, mock := newFeedbackService(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "feedback"`).
			WillReturnRows(sqlmock.NewRows(feedbackColumns).AddRow(8, 1, 5, 4, "Tasty"))
		mock.ExpectRollback()

		err := svc.Delete(context.Background(), userBob, 8)
		assert.ErrorIs(t, err, authz.ErrForbidden)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("admin may delete", func(t *testing.T) {
		svc, mock := newFeedbackService(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "feedback"`).
			WillReturnRows(sqlmock.NewRows(feedbackColumns).AddRow(8, 1, 5, 4, "Tasty"))
		mock.ExpectExec(`DELETE FROM "feedback" WHERE "feedback"."id" = \$1`).
			WithArgs(8).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, svc.Delete(context.Background(), adminEve, 8))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing feedback", func(t *testing.T) {
		svc, mock := newFeedbackService(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "feedback"`).
			WillReturnRows(sqlmock.NewRows(feedbackColumns))
		mock.ExpectRollback()

		err := svc.Delete(context.Background(), userBob, 8)
		assert.ErrorIs(t, err, ErrFeedbackNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
