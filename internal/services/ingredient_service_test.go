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

func TestDeleteIngredientInUseRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewIngredientService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "ingredients" WHERE "ingredients"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Oats"))
	mock.ExpectQuery(`SELECT "id" FROM "recipe_ingredients" WHERE "ingredient_id" (= \$1|IN \(\$1\))`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(20))
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), adminEve, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "Cannot delete: ingredient is in use by a recipe", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteIngredientCascadesNutrition(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewIngredientService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "ingredients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Oats"))
	mock.ExpectQuery(`SELECT "id" FROM "recipe_ingredients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT "id" FROM "nutrition_facts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(`DELETE FROM "nutrition_facts" WHERE id IN \(\$1\)`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "ingredients" WHERE id IN \(\$1\)`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), adminEve, 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIngredientWritesAreAdminOnly(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewIngredientService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, userAlice, &dto.CreateIngredientRequest{Name: "Salt", UnitOfMeasure: "g", Category: "Spice"})
	assert.ErrorIs(t, err, authz.ErrAdminOnly)

	name := "Sea salt"
	_, err = svc.Update(ctx, userAlice, 1, &dto.UpdateIngredientRequest{Name: &name})
	assert.ErrorIs(t, err, authz.ErrAdminOnly)

	assert.ErrorIs(t, svc.Delete(ctx, userAlice, 1), authz.ErrAdminOnly)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIngredientWithNutritionIsOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewIngredientService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "ingredients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(`INSERT INTO "nutrition_facts"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), adminEve, &dto.CreateIngredientRequest{
		Name: "Oats", UnitOfMeasure: "g", Category: "Grain",
		Nutrition: &dto.NutritionInput{Calories: f64(389)},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
