package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	planColumns = []string{"id", "user_id", "name"}
	linkColumns = []string{"id", "meal_plan_id", "recipe_id", "day_of_plan", "meal_type"}
)

func TestLogDayWritesOneFinishedLogPerRecipe(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMealPlanService(db)
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "meal_plans" WHERE "meal_plans"."id" = \$1 .*FOR SHARE`).
		WillReturnRows(sqlmock.NewRows(planColumns).AddRow(3, 1, "Cutting week"))
	mock.ExpectQuery(`SELECT \* FROM "meal_plan_recipes" WHERE meal_plan_id = \$1 AND day_of_plan = \$2 ORDER BY id FOR SHARE`).
		WithArgs(3, "2024-03-10").
		WillReturnRows(sqlmock.NewRows(linkColumns).
			AddRow(10, 3, 5, day, "Breakfast").
			AddRow(11, 3, 6, day, "Dinner"))
	mock.ExpectQuery(`INSERT INTO "diet_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100).AddRow(101))
	mock.ExpectCommit()

	resp, err := svc.LogDay(context.Background(), userAlice, &dto.LogMealPlanDayRequest{PlanID: 3, Date: "2024-03-10"})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Logged)
	assert.Equal(t, "Logged 2 recipes from meal plan", resp.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogDayWithoutRecipesWritesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMealPlanService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "meal_plans"`).
		WillReturnRows(sqlmock.NewRows(planColumns).AddRow(3, 1, "Cutting week"))
	mock.ExpectQuery(`SELECT \* FROM "meal_plan_recipes"`).
		WillReturnRows(sqlmock.NewRows(linkColumns))
	mock.ExpectRollback()

	_, err := svc.LogDay(context.Background(), userAlice, &dto.LogMealPlanDayRequest{PlanID: 3, Date: "2024-03-11"})
	assert.ErrorIs(t, err, ErrNoRecipesForDay)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogDayOnAnotherUsersPlan(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMealPlanService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "meal_plans"`).
		WillReturnRows(sqlmock.NewRows(planColumns).AddRow(3, 1, "Cutting week"))
	mock.ExpectRollback()

	_, err := svc.LogDay(context.Background(), userBob, &dto.LogMealPlanDayRequest{PlanID: 3, Date: "2024-03-10"})
	assert.ErrorIs(t, err, authz.ErrForbidden)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogDayRejectsBadDate(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMealPlanService(db)

	_, err := svc.LogDay(context.Background(), userAlice, &dto.LogMealPlanDayRequest{PlanID: 3, Date: "10/03/2024"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMealPlanRejectsInvertedRange(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMealPlanService(db)

	start, end := "2024-03-10", "2024-03-01"
	_, err := svc.Create(context.Background(), userAlice, &dto.CreateMealPlanRequest{
		Name: "Backwards", StartDate: &start, EndDate: &end,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end_date")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMealPlanLocksOwner(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMealPlanService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "users" WHERE "users"."id" = \$1 .*FOR SHARE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "meal_plans"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()

	plan, err := svc.Create(context.Background(), userAlice, &dto.CreateMealPlanRequest{Name: "Bulk"})
	require.NoError(t, err)
	assert.Equal(t, uint(12), plan.ID)
	assert.Equal(t, uint(1), plan.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMealPlanForDeletedAccount(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMealPlanService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "users" .*FOR SHARE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), userAlice, &dto.CreateMealPlanRequest{Name: "Bulk"})
	assert.ErrorIs(t, err, ErrAccountGone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUpdatesAnotherUsersPlan(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMealPlanService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "meal_plans" WHERE "meal_plans"."id" = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(planColumns).AddRow(3, 1, "Cutting week"))
	mock.ExpectExec(`UPDATE "meal_plans" SET .*WHERE .*"id" = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	name := "Maintenance"
	plan, err := svc.Update(context.Background(), adminEve, 3, &dto.UpdateMealPlanRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Maintenance", plan.Name)
	assert.Equal(t, uint(1), plan.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePlanForbiddenForOtherUser(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMealPlanService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "meal_plans"`).
		WillReturnRows(sqlmock.NewRows(planColumns).AddRow(3, 1, "Cutting week"))
	mock.ExpectRollback()

	name := "Mine now"
	_, err := svc.Update(context.Background(), userBob, 3, &dto.UpdateMealPlanRequest{Name: &name})
	assert.ErrorIs(t, err, authz.ErrForbidden)
	require.NoError(t, mock.ExpectationsWereMet())
}
