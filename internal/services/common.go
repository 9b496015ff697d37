package services

import (
	"context"
	"log/slog"
	"math"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/integrity"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/nutrition"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/store"
	"gorm.io/gorm"
)

// ErrAccountGone rejects writes from a valid token whose user was deleted.
var ErrAccountGone = apperr.Unauthorized("Account no longer exists")

// lockOwner share-locks the user row so the account cannot be deleted
// before the caller's insert commits.
func lockOwner(tx *gorm.DB, userID uint) error {
	var user models.User
	if err := store.ForShare(tx).Select("id").First(&user, userID).Error; err != nil {
		return notFoundAs(err, ErrAccountGone, "user")
	}
	return nil
}

// deleteCascading runs load (which must fetch and authorize the parent) and
// the policy-driven deletion in one transaction.
func deleteCascading(ctx context.Context, db *gorm.DB, table string, id uint, load func(tx *gorm.DB) error) error {
	err := store.Transact(ctx, db, func(tx *gorm.DB) error {
		if err := load(tx); err != nil {
			return err
		}
		return integrity.Default.Delete(ctx, store.NewRelations(tx), table, id)
	})

	switch apperr.KindOf(err) {
	case apperr.KindConflict:
		metrics.RecordDeletion(table, "conflict")
	case apperr.KindStorage:
		metrics.RecordDeletion(table, "error")
		slog.Error("cascading delete failed", "action", "delete_"+table, "error", err)
	}
	if err == nil {
		metrics.RecordDeletion(table, "deleted")
	}
	return err
}

// recipeCalories returns whole-recipe calories for each id. Recipes without
// ingredients are absent from the map.
func recipeCalories(ctx context.Context, db *gorm.DB, recipeIDs []uint) (map[uint]float64, error) {
	if len(recipeIDs) == 0 {
		return map[uint]float64{}, nil
	}
	var rows []nutrition.IngredientCalories
	err := db.WithContext(ctx).
		Table(models.TableRecipeIngredients+" AS ri").
		Select("ri.recipe_id AS recipe_id, ri.quantity AS quantity, n.calories AS calories").
		Joins("LEFT JOIN "+models.TableNutrition+" AS n ON n.ingredient_id = ri.ingredient_id").
		Where("ri.recipe_id IN ?", recipeIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.FromDB(err, "recipe")
	}
	return nutrition.RecipeCalories(rows), nil
}

// computeBMI returns nil unless both height and weight are known.
func computeBMI(heightCm *int, weightKg *float64) *float64 {
	if heightCm == nil || weightKg == nil || *heightCm <= 0 || *weightKg <= 0 {
		return nil
	}
	h := float64(*heightCm) / 100.0
	bmi := math.Round(*weightKg/(h*h)*100) / 100
	return &bmi
}
